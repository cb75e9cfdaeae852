package cache

import (
	"bytes"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// KeyFunc builds the cache key of a request. Requests with the same key get the same bytes.
type KeyFunc func(c *gin.Context) string

// RequestKey is method, path and the canonical (sorted) query string
func RequestKey(c *gin.Context) string {
	query := c.Request.URL.Query()
	return c.Request.Method + " " + c.Request.URL.Path + "?" + url.Values(query).Encode()
}

// PerViewer adds the viewer identity to base, so pages are only shared between requests of the same user
func PerViewer(base KeyFunc, viewer func(c *gin.Context) string) KeyFunc {
	return func(c *gin.Context) string {
		return base(c) + "|" + viewer(c)
	}
}

// PageCache caches whole GET responses for TTL
type PageCache struct {
	store Store
	ttl   time.Duration
	key   KeyFunc
	now   func() time.Time
}

// New creates a page cache. A nil key uses RequestKey.
func New(store Store, ttl time.Duration, key KeyFunc) *PageCache {
	if key == nil {
		key = RequestKey
	}
	return &PageCache{store: store, ttl: ttl, key: key, now: time.Now}
}

// Invalidate drops every cached page. Handlers call it after changing posts.
func (p *PageCache) Invalidate() {
	p.store.Clear()
}

type captureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Middleware serves cached 200 responses for GET requests and stores fresh ones.
// A zero TTL disables caching.
func (p *PageCache) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if p.ttl <= 0 || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := p.key(c)
		if entry, ok := p.store.Get(key); ok {
			for name, values := range entry.Header {
				for _, v := range values {
					c.Writer.Header().Add(name, v)
				}
			}
			c.Header("X-Cache", "HIT")
			c.Data(entry.Status, entry.Header.Get("Content-Type"), entry.Body)
			c.Abort()
			return
		}

		writer := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Header("X-Cache", "MISS")
		c.Next()

		if writer.Status() != http.StatusOK {
			return
		}
		header := http.Header{}
		if ct := writer.Header().Get("Content-Type"); ct != "" {
			header.Set("Content-Type", ct)
		}
		p.store.Set(key, &Entry{
			Status:  writer.Status(),
			Header:  header,
			Body:    bytes.Clone(writer.body.Bytes()),
			Expires: p.now().Add(p.ttl),
		})
	}
}

const (
	NoCache     = 0
	CacheCustom = -1
)

// Control sets Cache-Control for the routes it wraps; seconds is NoCache, CacheCustom or max-age
func Control(seconds int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if seconds != CacheCustom {
			if seconds == NoCache {
				c.Header("Cache-Control", "no-cache")
			} else {
				c.Header("Cache-Control", "private, max-age="+strconv.Itoa(seconds))
			}
		}
		c.Next()
	}
}
