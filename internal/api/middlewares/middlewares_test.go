package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alert-relay/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthEngine(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), SharedSecretAuth(cfg))
	r.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func TestSharedSecretAuth(t *testing.T) {
	cfg := &config.Config{AuthSecret: "s3cret", AuthHeader: "Authorization"}

	tests := []struct {
		name   string
		header string
		set    bool
		status int
		body   string
	}{
		{name: "exact match", header: "s3cret", set: true, status: http.StatusOK, body: "ok"},
		{name: "missing", status: http.StatusUnauthorized, body: "Unauthorized"},
		{name: "empty", header: "", set: true, status: http.StatusUnauthorized, body: "Unauthorized"},
		{name: "wrong case", header: "S3CRET", set: true, status: http.StatusUnauthorized, body: "Unauthorized"},
		{name: "bearer prefix", header: "Bearer s3cret", set: true, status: http.StatusUnauthorized, body: "Unauthorized"},
		{name: "prefix only", header: "s3c", set: true, status: http.StatusUnauthorized, body: "Unauthorized"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ok", nil)
			if tt.set {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			newAuthEngine(cfg).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}
}

func TestSharedSecretAuthCustomHeader(t *testing.T) {
	cfg := &config.Config{AuthSecret: "s3cret", AuthHeader: "X-Relay-Secret"}
	r := newAuthEngine(cfg)

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("Authorization", "s3cret")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("X-Relay-Secret", "s3cret")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSharedSecretAuthEmptySecretRejectsAll(t *testing.T) {
	r := newAuthEngine(&config.Config{AuthHeader: "Authorization"})

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())

	var captured string
	r.GET("/", func(c *gin.Context) {
		captured = GetRequestID(c)
		c.Status(http.StatusNoContent)
	})

	t.Run("generates when absent", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NotEmpty(t, rec.Header().Get(HeaderRequestID))
		assert.Equal(t, rec.Header().Get(HeaderRequestID), captured)
	})

	t.Run("reuses inbound id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "trace-123")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, "trace-123", rec.Header().Get(HeaderRequestID))
		assert.Equal(t, "trace-123", captured)
	})

	t.Run("truncates long id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, strings.Repeat("a", 200))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Len(t, captured, maxRequestIDLength)
	})
}

func TestNormalizeRequestID(t *testing.T) {
	assert.Equal(t, "", normalizeRequestID("bad\r\nid"))
	assert.Equal(t, "id", normalizeRequestID("  id  "))
}
