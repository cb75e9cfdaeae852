// Package posts serves the feeds, post pages, comments and subscriptions.
package posts

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yatube/yatube/pkg/yatube/auth"
	"github.com/yatube/yatube/pkg/yatube/cache"
	"github.com/yatube/yatube/pkg/yatube/database"
	"github.com/yatube/yatube/pkg/yatube/forms"
	"github.com/yatube/yatube/pkg/yatube/media"
	"github.com/yatube/yatube/pkg/yatube/models"
	"github.com/yatube/yatube/pkg/yatube/pagination"
	"github.com/yatube/yatube/pkg/yatube/policy"
	"github.com/yatube/yatube/pkg/yatube/render"
	"gorm.io/gorm"
)

// PostsPerPage is the size of every feed page
const PostsPerPage = pagination.PerPage

// Handler handles post requests
type Handler struct {
	db    *gorm.DB
	media *media.Service
	cache *cache.PageCache
}

// NewHandler creates a new posts handler. pageCache may be nil.
func NewHandler(db *gorm.DB, mediaService *media.Service, pageCache *cache.PageCache) *Handler {
	return &Handler{db: db, media: mediaService, cache: pageCache}
}

// RegisterRoutes registers post routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	if h.cache != nil {
		rg.GET("/", h.cache.Middleware(), h.Index)
	} else {
		rg.GET("/", h.Index)
	}
	rg.GET("/profile/:username/", h.Profile)
	rg.GET("/posts/:post_id/", h.Detail)

	private := rg.Group("", auth.LoginRequired())
	private.GET("/create/", h.CreatePage)
	private.POST("/create/", h.Create)
	private.GET("/posts/:post_id/edit/", h.EditPage)
	private.POST("/posts/:post_id/edit/", h.Edit)
	private.POST("/posts/:post_id/delete/", h.Delete)
	private.POST("/posts/:post_id/comment/", h.AddComment)
	private.POST("/posts/:post_id/comments/:comment_id/delete/", h.DeleteComment)
	private.GET("/follow/", h.FollowIndex)
	// following through a link is allowed, but only from this site
	private.GET("/profile/:username/follow/", auth.SameOriginOnly(), h.ProfileFollow)
	private.POST("/profile/:username/follow/", h.ProfileFollow)
	private.GET("/profile/:username/unfollow/", auth.SameOriginOnly(), h.ProfileUnfollow)
	private.POST("/profile/:username/unfollow/", h.ProfileUnfollow)
}

func (h *Handler) invalidate() {
	if h.cache != nil {
		h.cache.Invalidate()
	}
}

func (h *Handler) listPosts(c *gin.Context, query *gorm.DB) (*pagination.Page[models.Post], error) {
	return pagination.Paginate[models.Post](query, c.Query("page"), PostsPerPage, models.WithAuthorAndGroup, models.Newest)
}

// Index is the global feed
func (h *Handler) Index(c *gin.Context) {
	page, err := h.listPosts(c, h.db.Model(&models.Post{}))
	if err != nil {
		render.ServerError(c, err)
		return
	}
	render.Page(c, http.StatusOK, "posts/index.html", gin.H{"page_obj": page})
}

// Profile lists the posts of one author
func (h *Handler) Profile(c *gin.Context) {
	author, ok := h.loadAuthor(c)
	if !ok {
		return
	}
	page, err := h.listPosts(c, h.db.Model(&models.Post{}).Where("posts.author_id = ?", author.ID))
	if err != nil {
		render.ServerError(c, err)
		return
	}

	// nil for anonymous viewers
	var following any
	if user := auth.GetUser(c); user != nil {
		isFollowing, err := models.IsFollowing(h.db, user.ID, author.ID)
		if err != nil {
			render.ServerError(c, err)
			return
		}
		following = isFollowing
	}

	render.Page(c, http.StatusOK, "posts/profile.html", gin.H{
		"author":    author,
		"page_obj":  page,
		"count":     page.Count,
		"following": following,
	})
}

// Detail shows one post with its comments
func (h *Handler) Detail(c *gin.Context) {
	post, ok := h.loadPost(c)
	if !ok {
		return
	}
	count, err := models.CountPostsByAuthor(h.db, post.AuthorID)
	if err != nil {
		render.ServerError(c, err)
		return
	}
	var comments []models.Comment
	if err := h.db.Where("post_id = ?", post.ID).Preload("Author").Scopes(models.NewestComments).Find(&comments).Error; err != nil {
		render.ServerError(c, err)
		return
	}

	render.Page(c, http.StatusOK, "posts/post_detail.html", gin.H{
		"post":     post,
		"count":    count,
		"comments": comments,
		"form":     &forms.CommentForm{},
		"can_edit": policy.EditPost(auth.GetUser(c), post).Allowed,
	})
}

// loadPost finds the post named by :post_id or renders the 404 page
func (h *Handler) loadPost(c *gin.Context) (*models.Post, bool) {
	id, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil {
		render.NotFound(c)
		return nil, false
	}
	var post models.Post
	err = h.db.Scopes(models.WithAuthorAndGroup).First(&post, id).Error
	if database.IsNotFound(err) {
		render.NotFound(c)
		return nil, false
	} else if err != nil {
		render.ServerError(c, err)
		return nil, false
	}
	return &post, true
}

// loadAuthor finds the user named by :username or renders the 404 page
func (h *Handler) loadAuthor(c *gin.Context) (*models.User, bool) {
	var author models.User
	err := h.db.Where("username = ?", c.Param("username")).First(&author).Error
	if database.IsNotFound(err) {
		render.NotFound(c)
		return nil, false
	} else if err != nil {
		render.ServerError(c, err)
		return nil, false
	}
	return &author, true
}

func (h *Handler) deny(c *gin.Context, d policy.Decision) bool {
	if d.Allowed {
		return false
	}
	c.Redirect(http.StatusFound, d.Redirect)
	return true
}
