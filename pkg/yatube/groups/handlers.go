package groups

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yatube/yatube/pkg/yatube/database"
	"github.com/yatube/yatube/pkg/yatube/models"
	"github.com/yatube/yatube/pkg/yatube/pagination"
	"github.com/yatube/yatube/pkg/yatube/render"
	"gorm.io/gorm"
)

// Handler handles group-related requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new groups handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// RegisterRoutes registers group routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/group/:slug/", h.GroupPosts)
}

// GroupPosts lists the posts published in a group
func (h *Handler) GroupPosts(c *gin.Context) {
	var group models.Group
	err := h.db.Where("slug = ?", c.Param("slug")).First(&group).Error
	if database.IsNotFound(err) {
		render.NotFound(c)
		return
	} else if err != nil {
		render.ServerError(c, err)
		return
	}

	query := h.db.Model(&models.Post{}).Where("posts.group_id = ?", group.ID)
	page, err := pagination.Paginate[models.Post](query, c.Query("page"), pagination.PerPage, models.WithAuthorAndGroup, models.Newest)
	if err != nil {
		render.ServerError(c, err)
		return
	}

	render.Page(c, http.StatusOK, "posts/group_list.html", gin.H{
		"group":    &group,
		"page_obj": page,
	})
}
