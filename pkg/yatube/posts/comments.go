package posts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yatube/yatube/pkg/yatube/auth"
	"github.com/yatube/yatube/pkg/yatube/forms"
	"github.com/yatube/yatube/pkg/yatube/models"
	"github.com/yatube/yatube/pkg/yatube/policy"
	"github.com/yatube/yatube/pkg/yatube/render"
	"github.com/yatube/yatube/pkg/yatube/routes"
	"gorm.io/gorm"
)

// AddComment always returns to the post page. An invalid comment is dropped without a message.
func (h *Handler) AddComment(c *gin.Context) {
	post, ok := h.loadPost(c)
	if !ok {
		return
	}
	user := auth.GetUser(c)
	if h.deny(c, policy.Comment(user, post)) {
		return
	}

	form, err := forms.BindComment(c)
	if err == nil && form.Validate() {
		comment := models.Comment{PostID: post.ID, AuthorID: user.ID, Text: form.Text}
		if err := h.db.Create(&comment).Error; err != nil {
			render.ServerError(c, err)
			return
		}
	}
	c.Redirect(http.StatusFound, routes.PostDetail(post.ID))
}

// DeleteComment lets the comment author remove it
func (h *Handler) DeleteComment(c *gin.Context) {
	postID, err1 := strconv.ParseUint(c.Param("post_id"), 10, 64)
	commentID, err2 := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err1 != nil || err2 != nil {
		render.NotFound(c)
		return
	}

	var comment models.Comment
	err := h.db.Where("id = ? AND post_id = ?", commentID, postID).First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		render.NotFound(c)
		return
	} else if err != nil {
		render.ServerError(c, err)
		return
	}
	if h.deny(c, policy.DeleteComment(auth.GetUser(c), &comment)) {
		return
	}

	if err := h.db.Delete(&comment).Error; err != nil {
		render.ServerError(c, err)
		return
	}
	c.Redirect(http.StatusFound, routes.PostDetail(comment.PostID))
}
