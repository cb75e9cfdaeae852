package posts

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yatube/yatube/pkg/yatube/auth"
	"github.com/yatube/yatube/pkg/yatube/database"
	"github.com/yatube/yatube/pkg/yatube/models"
	"github.com/yatube/yatube/pkg/yatube/policy"
	"github.com/yatube/yatube/pkg/yatube/render"
	"github.com/yatube/yatube/pkg/yatube/routes"
)

// FollowIndex is the feed of the authors the current user follows
func (h *Handler) FollowIndex(c *gin.Context) {
	user := auth.GetUser(c)
	followed := h.db.Model(&models.Follow{}).Select("author_id").Where("user_id = ?", user.ID)
	page, err := h.listPosts(c, h.db.Model(&models.Post{}).Where("posts.author_id IN (?)", followed))
	if err != nil {
		render.ServerError(c, err)
		return
	}
	render.Page(c, http.StatusOK, "posts/follow.html", gin.H{
		"page_obj": page,
		"count":    page.Count,
	})
}

// ProfileFollow subscribes the current user to an author. Following twice or following
// yourself changes nothing.
func (h *Handler) ProfileFollow(c *gin.Context) {
	author, ok := h.loadAuthor(c)
	if !ok {
		return
	}
	user := auth.GetUser(c)
	if d := policy.Follow(user, author); d.Allowed {
		following, err := models.IsFollowing(h.db, user.ID, author.ID)
		if err != nil {
			render.ServerError(c, err)
			return
		}
		if !following {
			err := h.db.Create(&models.Follow{AuthorID: author.ID, UserID: user.ID}).Error
			// a concurrent request may have created the pair already
			if err != nil && !database.IsUniqueViolation(err) {
				render.ServerError(c, err)
				return
			}
		}
	} else if d.Redirect != routes.FollowIndex {
		c.Redirect(http.StatusFound, d.Redirect)
		return
	}
	c.Redirect(http.StatusFound, routes.FollowIndex)
}

// ProfileUnfollow removes the subscription and returns to the main page.
// There must be a subscription to remove.
func (h *Handler) ProfileUnfollow(c *gin.Context) {
	author, ok := h.loadAuthor(c)
	if !ok {
		return
	}
	user := auth.GetUser(c)
	result := h.db.Where("author_id = ? AND user_id = ?", author.ID, user.ID).Delete(&models.Follow{})
	if result.Error != nil {
		render.ServerError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		render.NotFound(c)
		return
	}
	c.Redirect(http.StatusFound, routes.Index)
}
