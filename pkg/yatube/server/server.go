// Package server assembles the gin engine serving the whole site.
package server

import (
	"html/template"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
	"github.com/yatube/yatube/pkg/yatube/about"
	"github.com/yatube/yatube/pkg/yatube/auth"
	"github.com/yatube/yatube/pkg/yatube/cache"
	"github.com/yatube/yatube/pkg/yatube/config"
	"github.com/yatube/yatube/pkg/yatube/groups"
	"github.com/yatube/yatube/pkg/yatube/media"
	"github.com/yatube/yatube/pkg/yatube/posts"
	"github.com/yatube/yatube/pkg/yatube/render"
	"gorm.io/gorm"
)

// mediaMaxAge is the browser cache lifetime of uploaded images, in seconds
const mediaMaxAge = 30 * 86400

type Server struct {
	Engine *gin.Engine
	Cache  *cache.PageCache
	Media  *media.Service
	cfg    config.Config
}

// New wires middleware, handlers and templates
func New(cfg config.Config, db *gorm.DB) (*Server, error) {
	mediaService, err := media.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	renderer, err := render.New(template.FuncMap{
		"media": mediaService.URL,
		"thumb": mediaService.ThumbURL,
	})
	if err != nil {
		return nil, err
	}
	auth.SetJWTSecret(cfg.JWTSecret)

	// pages show who is logged in, so they are cached per viewer
	pageCache := cache.New(cache.NewMemoryStore(), cfg.CacheTTL, cache.PerViewer(cache.RequestKey, viewerKey))

	router := gin.Default()
	_ = router.SetTrustedProxies(nil)
	router.HTMLRender = renderer
	if cfg.DebugMode {
		router.Use(ErrorLogMiddleware)
	} else {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/media/"})))
	}
	router.Use(sessions.Sessions(auth.SessionName, auth.NewSessionStore(cfg, db)))
	router.Use(auth.Identify(db))
	router.Use(auth.CrossOriginGuard())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "yatube",
		})
	})

	mediaGroup := router.Group("/media")
	corsConfig := cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{"GET", "HEAD"},
		AllowHeaders: []string{"Origin"},
		MaxAge:       12 * time.Hour,
	}
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	}
	mediaGroup.Use(cors.New(corsConfig))
	mediaGroup.Use(cache.Control(mediaMaxAge))
	mediaGroup.GET("/*path", mediaService.Serve)

	// No cache by default, the page cache lives on the server side
	pages := router.Group("", cache.Control(cache.NoCache))
	auth.NewHandler(db).RegisterRoutes(pages.Group("/auth"))
	about.RegisterRoutes(pages.Group("/about"))
	groups.NewHandler(db).RegisterRoutes(pages)
	posts.NewHandler(db, mediaService, pageCache).RegisterRoutes(pages)

	router.NoRoute(render.NotFound)

	return &Server{
		Engine: router,
		Cache:  pageCache,
		Media:  mediaService,
		cfg:    cfg,
	}, nil
}

func viewerKey(c *gin.Context) string {
	if id, ok := auth.GetUserID(c); ok {
		return "user:" + strconv.FormatUint(uint64(id), 10)
	}
	return "anonymous"
}

// Run serves with automatic TLS certificates when TLS domains are configured
func (s *Server) Run() error {
	if len(s.cfg.TLSDomains) > 0 {
		log.Printf("Starting Yatube with TLS for %v", s.cfg.TLSDomains)
		return autotls.Run(s.Engine, s.cfg.TLSDomains...)
	}
	log.Printf("Starting Yatube on %s", s.cfg.BindAddress)
	return s.Engine.Run(s.cfg.BindAddress)
}
