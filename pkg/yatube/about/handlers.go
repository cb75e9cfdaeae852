// Package about serves the static pages of the site.
package about

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yatube/yatube/pkg/yatube/render"
)

// RegisterRoutes registers the about pages
func RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/author/", Author)
	rg.GET("/tech/", Tech)
}

func Author(c *gin.Context) {
	render.Page(c, http.StatusOK, "about/author.html", nil)
}

func Tech(c *gin.Context) {
	render.Page(c, http.StatusOK, "about/tech.html", nil)
}
