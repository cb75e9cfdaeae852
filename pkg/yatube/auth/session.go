package auth

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/gin"
	"github.com/yatube/yatube/pkg/yatube/config"
	"gorm.io/gorm"
)

// SessionName is the cookie holding the session id
const SessionName = "yatube_session"

const userIDKey = "user_id"

// NewSessionStore builds the configured session store. The db store keeps sessions in the main database.
func NewSessionStore(cfg config.Config, db *gorm.DB) sessions.Store {
	var store sessions.Store
	if cfg.SessionStore == config.SessionStoreCookie {
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	} else {
		store = gormsessions.NewStore(db, true, []byte(cfg.SessionSecret))
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   len(cfg.TLSDomains) > 0,
		SameSite: http.SameSiteLaxMode,
	})
	return store
}

type Session struct {
	sessions.Session
}

func LoadSession(c *gin.Context) *Session {
	return &Session{
		Session: sessions.Default(c),
	}
}

// UserID is 0 for anonymous sessions
func (s *Session) UserID() uint {
	id, _ := s.Get(userIDKey).(uint)
	return id
}

func (s *Session) LoginUser(userID uint) error {
	s.Clear()
	s.Set(userIDKey, userID)
	return s.Save()
}

func (s *Session) LogoutUser() error {
	s.Delete(userIDKey)
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	return s.Save()
}
