package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

const githubUserURL = "https://api.github.com/user"

var ErrStateMismatch = errors.New("oauth state mismatch")

type Config struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
}

// OAuthHandler runs the GitHub login flow and keeps the result in the session.
type OAuthHandler struct {
	oauth   *oauth2.Config
	userURL string
	logger  *zap.Logger
}

type Option func(*OAuthHandler)

// WithEndpoint points the flow at another authorization server.
func WithEndpoint(endpoint oauth2.Endpoint, userURL string) Option {
	return func(h *OAuthHandler) {
		h.oauth.Endpoint = endpoint
		h.userURL = userURL
	}
}

func NewOAuthHandler(cfg Config, logger *zap.Logger, opts ...Option) *OAuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &OAuthHandler{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Scopes:       []string{"user:email"},
			Endpoint:     github.Endpoint,
		},
		userURL: githubUserURL,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *OAuthHandler) Login(c *gin.Context) {
	state := uuid.NewString()
	s := sessions.Default(c)
	s.Set(stateKey, state)
	if err := s.Save(); err != nil {
		h.logger.Error("failed to save oauth state", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}
	c.Redirect(http.StatusFound, h.oauth.AuthCodeURL(state))
}

func (h *OAuthHandler) Callback(c *gin.Context) {
	s := sessions.Default(c)
	expected, _ := s.Get(stateKey).(string)
	s.Delete(stateKey)

	if expected == "" || c.Query("state") != expected {
		h.logger.Warn("oauth callback rejected", zap.Error(ErrStateMismatch))
		_ = s.Save()
		c.Redirect(http.StatusFound, "/?error=invalid-state")
		return
	}

	user, err := h.exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		h.logger.Warn("oauth exchange failed", zap.Error(err))
		_ = s.Save()
		c.Redirect(http.StatusFound, "/?error=authentication-failed")
		return
	}

	if err := Login(c, *user); err != nil {
		h.logger.Error("failed to save session", zap.Error(err))
		c.Redirect(http.StatusFound, "/?error=session-save-failed")
		return
	}

	h.logger.Info("user authenticated", zap.String("username", user.Username))
	c.Redirect(http.StatusFound, "/")
}

func (h *OAuthHandler) Logout(c *gin.Context) {
	if u, ok := CurrentUser(c); ok {
		h.logger.Info("user logged out", zap.String("username", u.Username))
	}
	if err := Logout(c); err != nil {
		h.logger.Error("failed to clear session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session destruction failed"})
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *OAuthHandler) Status(c *gin.Context) {
	u, ok := CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"isAuthenticated": ok,
		"user":            u,
	})
}

type githubProfile struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
}

func (h *OAuthHandler) exchange(ctx context.Context, code string) (*SessionUser, error) {
	if code == "" {
		return nil, errors.New("missing authorization code")
	}

	token, err := h.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.userURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := h.oauth.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch profile: unexpected status %d", resp.StatusCode)
	}

	var p githubProfile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}

	display := p.Name
	if display == "" {
		display = p.Login
	}
	return &SessionUser{
		ID:          strconv.FormatInt(p.ID, 10),
		Username:    p.Login,
		DisplayName: display,
		Email:       p.Email,
		AvatarURL:   p.AvatarURL,
		ProfileURL:  p.HTMLURL,
	}, nil
}
