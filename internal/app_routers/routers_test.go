package approuters

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodhub/internal/auth"
	"foodhub/internal/configuration"
	"foodhub/internal/db"
	"foodhub/internal/handler"
	"foodhub/internal/hub"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubHandler struct {
	name string
}

func (s stubHandler) reply(op string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"resource": s.name, "op": op, "id": c.Param("id")})
	}
}

func (s stubHandler) List(c *gin.Context)   { s.reply("list")(c) }
func (s stubHandler) Get(c *gin.Context)    { s.reply("get")(c) }
func (s stubHandler) Create(c *gin.Context) { s.reply("create")(c) }
func (s stubHandler) Update(c *gin.Context) { s.reply("update")(c) }
func (s stubHandler) Delete(c *gin.Context) { s.reply("delete")(c) }

var _ handler.ResourceHandler = stubHandler{}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	h := hub.NewHub([]string{"*"}, nil)
	t.Cleanup(h.Stop)

	container := &configuration.Container{
		Users:    stubHandler{"users"},
		Products: stubHandler{"products"},
		Orders:   stubHandler{"orders"},
		Reviews:  stubHandler{"reviews"},
		Monitor:  handler.NewMonitorHandler(hub.NewMonitorService(h)),
		OAuth:    auth.NewOAuthHandler(auth.Config{ClientID: "id", ClientSecret: "secret", CallbackURL: "http://localhost:3000/auth/callback"}, nil),
		Sessions: auth.NewStore("test-secret", false),
		Hub:      h,
		Store:    db.NewHandle(nil),
		Logger:   zap.NewNop(),
		Config: configuration.Config{
			Server: configuration.ServerConfig{AppPort: 3000, Env: configuration.EnvDevelopment},
			Mongo: configuration.MongoConfig{
				UsersCollection:    "users",
				ProductsCollection: "products",
				OrdersCollection:   "orders",
				ReviewsCollection:  "reviews",
			},
			Cors: configuration.CorsConfig{AllowedOrigins: []string{"*"}},
		},
	}
	gin.SetMode(gin.TestMode)
	return NewRouter(container)
}

func serve(r *gin.Engine, method, path string) (*httptest.ResponseRecorder, map[string]any) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestReadsArePublic(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/users", "/products", "/orders", "/reviews"} {
		w, body := serve(r, http.MethodGet, path)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, "list", body["op"])

		w, body = serve(r, http.MethodGet, path+"/abc")
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, "abc", body["id"])
	}
}

func TestWritesNeedSession(t *testing.T) {
	r := newTestRouter(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/users"},
		{http.MethodPut, "/products/abc"},
		{http.MethodDelete, "/orders/abc"},
		{http.MethodPost, "/reviews"},
	} {
		w, body := serve(r, tc.method, tc.path)
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.path)
		assert.Equal(t, "Authentication required. Please login at /auth/login", body["error"])
	}
}

func TestNotFound(t *testing.T) {
	r := newTestRouter(t)

	w, body := serve(r, http.MethodGet, "/nope?x=1")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not Found", body["error"])
	assert.Equal(t, "Cannot GET /nope?x=1", body["message"])
	assert.Contains(t, body["availableEndpoints"], "GET /products")
}

func TestRootAndHealth(t *testing.T) {
	r := newTestRouter(t)

	w, body := serve(r, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["authenticated"])
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	w, body = serve(r, http.MethodGet, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "down", body["database"])
}

func TestAuthStatusAndLoginRedirect(t *testing.T) {
	r := newTestRouter(t)

	w, body := serve(r, http.MethodGet, "/auth/status")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["isAuthenticated"])

	w, _ = serve(r, http.MethodGet, "/auth/login")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "github.com/login/oauth/authorize")
}

func TestMonitorAndFeedRoutes(t *testing.T) {
	r := newTestRouter(t)

	w, body := serve(r, http.MethodGet, "/api/monitor/stats")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "idle", body["status"])

	w, body = serve(r, http.MethodGet, "/ws/events?resource=widgets")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Unknown resource widgets", body["error"])
}

func TestRecoveryAndRequestID(t *testing.T) {
	r := newTestRouter(t)
	r.GET("/boom", func(*gin.Context) { panic("kaboom") })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "req-1", w.Header().Get(RequestIDHeader))
	assert.JSONEq(t, `{"error":"Internal Server Error","message":"kaboom"}`, w.Body.String())
}

func TestAPIDocs(t *testing.T) {
	r := newTestRouter(t)

	w, _ := serve(r, http.MethodGet, "/api-docs")
	assert.GreaterOrEqual(t, w.Code, http.StatusMovedPermanently)
	assert.Less(t, w.Code, http.StatusBadRequest)
	assert.NotEmpty(t, w.Header().Get("Location"))

	w, _ = serve(r, http.MethodGet, "/api-docs/")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, docsIndex, w.Header().Get("Location"))

	w, body := serve(r, http.MethodGet, "/api-docs/doc.json")
	require.Equal(t, http.StatusOK, w.Code)
	info := body["info"].(map[string]any)
	assert.Equal(t, "FoodHub API", info["title"])
	paths := body["paths"].(map[string]any)
	assert.Contains(t, paths, "/{resource}/{id}")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, docsIndex, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "swagger")
}

func TestUnknownMethodIsNotFound(t *testing.T) {
	r := newTestRouter(t)

	w, body := serve(r, http.MethodPatch, "/products")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Cannot PATCH /products", body["message"])
	assert.Contains(t, body["availableEndpoints"], "GET /api-docs")
}
