// Package render serves the embedded page templates through gin's HTML renderer.
//
// Every page lives under templates/<app>/<page>.html and defines the "title" and
// "content" blocks of base.html. Pages are addressed by that relative path, e.g.
// "posts/index.html".
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

//go:embed templates
var templateFS embed.FS

const (
	baseTemplate = "base.html"
	// viewerKey is the gin context key auth.Identify stores the current user under
	viewerKey = "user"
)

// Renderer implements gin's render.HTMLRender over the embedded template set
type Renderer struct {
	templates map[string]*template.Template
}

// New parses all pages. funcs are added to (and may override) the default template functions.
func New(funcs template.FuncMap) (*Renderer, error) {
	base := template.New(baseTemplate).Funcs(defaultFuncs())
	if funcs != nil {
		base = base.Funcs(funcs)
	}
	base, err := base.ParseFS(templateFS, "templates/"+baseTemplate, "templates/includes/*.html")
	if err != nil {
		return nil, err
	}

	pages, err := fs.Glob(templateFS, "templates/*/*.html")
	if err != nil {
		return nil, err
	}
	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		name := strings.TrimPrefix(page, "templates/")
		if strings.HasPrefix(name, "includes/") {
			continue
		}
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if t, err = t.ParseFS(templateFS, page); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		r.templates[name] = t
	}
	return r, nil
}

// Names lists the available pages
func (r *Renderer) Names() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	return names
}

func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.templates[name]
	if !ok {
		panic("render: unknown template " + name)
	}
	return render.HTML{Template: t, Name: baseTemplate, Data: data}
}

// Page renders a page template. The template name and the current user are added to data.
func Page(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["template"] = name
	if user, ok := c.Get(viewerKey); ok {
		data["user"] = user
	}
	c.HTML(status, name, data)
}

func NotFound(c *gin.Context) {
	Page(c, http.StatusNotFound, "core/404.html", gin.H{"path": c.Request.URL.Path})
}

func ServerError(c *gin.Context, err error) {
	log.Printf("Internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	Page(c, http.StatusInternalServerError, "core/500.html", nil)
}
