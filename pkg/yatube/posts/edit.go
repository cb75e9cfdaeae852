package posts

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yatube/yatube/pkg/yatube/auth"
	"github.com/yatube/yatube/pkg/yatube/forms"
	"github.com/yatube/yatube/pkg/yatube/models"
	"github.com/yatube/yatube/pkg/yatube/policy"
	"github.com/yatube/yatube/pkg/yatube/render"
	"github.com/yatube/yatube/pkg/yatube/routes"
)

func (h *Handler) renderForm(c *gin.Context, form *forms.PostForm, post *models.Post) {
	var groups []models.Group
	if err := h.db.Order("title").Find(&groups).Error; err != nil {
		render.ServerError(c, err)
		return
	}
	render.Page(c, http.StatusOK, "posts/create_post.html", gin.H{
		"form":    form,
		"groups":  groups,
		"is_edit": post != nil,
		"post":    post,
	})
}

func (h *Handler) CreatePage(c *gin.Context) {
	h.renderForm(c, &forms.PostForm{}, nil)
}

// Create publishes a post as the current user
func (h *Handler) Create(c *gin.Context) {
	user := auth.GetUser(c)
	form, err := forms.BindPost(c)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	if !form.Validate(h.db) {
		h.renderForm(c, &form, nil)
		return
	}

	post := models.Post{
		Text:     form.Text,
		AuthorID: user.ID,
		GroupID:  form.GroupID,
	}
	if form.Image != nil {
		if post.Image, err = h.media.SaveUpload(form.Image); err != nil {
			form.Errors.Add("image", err.Error())
			h.renderForm(c, &form, nil)
			return
		}
	}
	if err := h.db.Create(&post).Error; err != nil {
		h.media.Delete(post.Image)
		render.ServerError(c, err)
		return
	}

	h.invalidate()
	c.Redirect(http.StatusFound, routes.Profile(user.Username))
}

func (h *Handler) EditPage(c *gin.Context) {
	post, ok := h.loadPost(c)
	if !ok {
		return
	}
	if h.deny(c, policy.EditPost(auth.GetUser(c), post)) {
		return
	}
	form := forms.PostFormFrom(post)
	h.renderForm(c, &form, post)
}

// Edit changes a post in place. Only its author may do so.
func (h *Handler) Edit(c *gin.Context) {
	post, ok := h.loadPost(c)
	if !ok {
		return
	}
	if h.deny(c, policy.EditPost(auth.GetUser(c), post)) {
		return
	}

	form, err := forms.BindPost(c)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	if !form.Validate(h.db) {
		h.renderForm(c, &form, post)
		return
	}

	oldImage := post.Image
	image := oldImage
	if form.Image != nil {
		if image, err = h.media.SaveUpload(form.Image); err != nil {
			form.Errors.Add("image", err.Error())
			h.renderForm(c, &form, post)
			return
		}
	} else if form.ClearsImage() {
		image = ""
	}

	// post has its group preloaded, gorm would write the old group_id back from it
	err = h.db.Model(&models.Post{ID: post.ID}).Updates(map[string]any{
		"text":     form.Text,
		"group_id": form.GroupID,
		"image":    image,
	}).Error
	if err != nil {
		if image != oldImage {
			h.media.Delete(image)
		}
		render.ServerError(c, err)
		return
	}
	if image != oldImage {
		h.media.Delete(oldImage)
	}

	h.invalidate()
	c.Redirect(http.StatusFound, routes.PostDetail(post.ID))
}

// Delete removes a post with its comments and image
func (h *Handler) Delete(c *gin.Context) {
	post, ok := h.loadPost(c)
	if !ok {
		return
	}
	if h.deny(c, policy.DeletePost(auth.GetUser(c), post)) {
		return
	}

	image, err := models.DeletePost(h.db, post.ID)
	if err != nil {
		render.ServerError(c, err)
		return
	}
	h.media.Delete(image)

	h.invalidate()
	c.Redirect(http.StatusFound, routes.Profile(post.Author.Username))
}
