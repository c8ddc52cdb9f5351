package auth

import (
	"encoding/gob"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const (
	SessionName = "foodhub.sid"

	sessionMaxAge = 24 * 60 * 60

	userKey  = "user"
	stateKey = "oauthState"

	cookieOptionsKey = "sessionCookieOptions"

	// ContextUserKey holds the *SessionUser on the gin context once the
	// session gate has passed.
	ContextUserKey = "sessionUser"

	RoleAdmin = "admin"
)

// SessionUser is the GitHub profile kept in the session cookie.
type SessionUser struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	ProfileURL  string `json:"profileUrl,omitempty"`
	Role        string `json:"role,omitempty"`
}

func init() {
	gob.Register(SessionUser{})
}

// Store is a signed cookie store that remembers its cookie options so the
// logout cookie can be expired with the same attributes.
type Store struct {
	cookie.Store
	options sessions.Options
}

// NewStore returns a signed cookie store. Cookies are HttpOnly, live for a
// day, and are marked Secure when secure is set.
func NewStore(secret string, secure bool) *Store {
	store := &Store{Store: cookie.NewStore([]byte(secret))}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return store
}

func (s *Store) Options(options sessions.Options) {
	s.options = options
	s.Store.Options(options)
}

// Sessions attaches the session to every request.
func Sessions(store sessions.Store) gin.HandlerFunc {
	attach := sessions.Sessions(SessionName, store)
	st, ok := store.(*Store)
	return func(c *gin.Context) {
		if ok {
			c.Set(cookieOptionsKey, st.options)
		}
		attach(c)
	}
}

// CurrentUser returns the logged in user, if any.
func CurrentUser(c *gin.Context) (*SessionUser, bool) {
	v := sessions.Default(c).Get(userKey)
	u, ok := v.(SessionUser)
	if !ok {
		return nil, false
	}
	return &u, true
}

// Login stores u in the session.
func Login(c *gin.Context, u SessionUser) error {
	s := sessions.Default(c)
	s.Set(userKey, u)
	return s.Save()
}

// Logout drops every session value and expires the cookie.
func Logout(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	v, _ := c.Get(cookieOptionsKey)
	options, ok := v.(sessions.Options)
	if !ok {
		options = sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode}
	}
	options.MaxAge = -1
	s.Options(options)
	return s.Save()
}

func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required. Please login at /auth/login",
			})
			return
		}
		c.Set(ContextUserKey, u)
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok || u.Role != RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Forbidden. Admin access required.",
			})
			return
		}
		c.Set(ContextUserKey, u)
		c.Next()
	}
}
