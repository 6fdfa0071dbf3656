package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"facestudio/models"
	"facestudio/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/me", JWTAuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": UserID(c), "admin": IsAdmin(c), "email": c.GetString(ContextEmail)})
	})

	t.Run("missing header", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := utils.GenerateToken(7, "ana@example.com", models.RoleCustomer, -time.Minute)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := utils.GenerateToken(7, "ana@example.com", models.RoleCustomer, time.Hour)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := serve(r, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":7,"admin":false,"email":"ana@example.com"}`, w.Body.String())
	})
}

func TestAdminMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/admin", JWTAuthMiddleware(), AdminMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	call := func(role string) int {
		token, err := utils.GenerateToken(1, "x@example.com", role, time.Hour)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		return serve(r, req).Code
	}

	assert.Equal(t, http.StatusForbidden, call(models.RoleCustomer))
	assert.Equal(t, http.StatusNoContent, call(models.RoleAdmin))
}

func formRouter(t *testing.T, proxies []string) *gin.Engine {
	t.Helper()
	r := gin.New()
	require.NoError(t, r.SetTrustedProxies(proxies))
	r.POST("/contact", FormRateLimitMiddleware(5), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return r
}

func postFrom(r *gin.Engine, remote, forwarded string) int {
	req := httptest.NewRequest(http.MethodPost, "/contact", nil)
	req.RemoteAddr = remote
	if forwarded != "" {
		req.Header.Set("X-Forwarded-For", forwarded)
	}
	return serve(r, req).Code
}

func TestFormRateLimitMiddleware(t *testing.T) {
	r := formRouter(t, nil)

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusCreated, postFrom(r, "203.0.113.7:5000", ""), "request %d", i+1)
	}
	assert.Equal(t, http.StatusTooManyRequests, postFrom(r, "203.0.113.7:5000", ""))
	assert.Equal(t, http.StatusCreated, postFrom(r, "198.51.100.2:5000", ""), "other visitors keep their own bucket")
}

func TestFormRateLimitIgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	r := formRouter(t, nil)

	accepted := 0
	for i := 0; i < 50; i++ {
		if postFrom(r, "203.0.113.7:5000", fmt.Sprintf("198.51.100.%d", i+1)) == http.StatusCreated {
			accepted++
		}
	}
	assert.Equal(t, 5, accepted)
}

func TestFormRateLimitUsesForwardedForBehindTrustedProxy(t *testing.T) {
	r := formRouter(t, []string{"10.0.0.0/8"})

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusCreated, postFrom(r, "10.0.0.2:5000", "203.0.113.7"))
	}
	assert.Equal(t, http.StatusTooManyRequests, postFrom(r, "10.0.0.2:5000", "203.0.113.7"))
	assert.Equal(t, http.StatusCreated, postFrom(r, "10.0.0.2:5000", "198.51.100.2"), "clients behind the proxy keep their own bucket")
}

func TestRateLimiterStoreForgetsIdleVisitors(t *testing.T) {
	s := newRateLimiterStore(60, 60)
	now := time.Date(2026, 7, 14, 10, 0, 0, 0, time.UTC)
	s.getLimiter("203.0.113.7", now)
	s.getLimiter("198.51.100.2", now.Add(11*time.Minute))
	assert.Len(t, s.limiters, 1)
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware(), RequestLogger())
	r.GET("/", func(c *gin.Context) {
		_, hasLogger := c.Get(ContextLogger)
		assert.True(t, hasLogger)
		c.String(http.StatusOK, c.GetString(ContextRequestID))
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(generated)
	require.NoError(t, err)
	assert.Equal(t, generated, w.Body.String())

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	assert.Equal(t, incoming, serve(r, req).Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	assert.NotEqual(t, "<script>", serve(r, req).Header().Get(RequestIDHeader))
}

func TestNegotiateLanguage(t *testing.T) {
	tests := []struct {
		query, accept, want string
	}{
		{"", "", "hr"},
		{"en", "hr-HR", "en"},
		{"hr", "en-US", "hr"},
		{"de", "en-US,en;q=0.9", "en"},
		{"", "en-GB,en;q=0.8", "en"},
		{"", "hr-HR,hr;q=0.9,en;q=0.8", "hr"},
		{"", "ja", "hr"},
		{"", ";;;", "hr"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, negotiate(tt.query, tt.accept), "query=%q accept=%q", tt.query, tt.accept)
	}
}

func TestLanguageMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/", LanguageMiddleware(), func(c *gin.Context) {
		c.String(http.StatusOK, Language(c))
	})
	req := httptest.NewRequest(http.MethodGet, "/?lang=en", nil)
	assert.Equal(t, "en", serve(r, req).Body.String())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, "hr", Language(c))
}
