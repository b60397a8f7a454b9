package middleware

import (
	"Inkwell/internal/pkg/security"
	"bytes"
	"context"
	log "log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRevocations struct {
	revoked map[string]bool
}

func (f *fakeRevocations) IsRevoked(_ context.Context, signature string) (bool, error) {
	return f.revoked[signature], nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(revocations RevocationChecker, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(revocations)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		p := GetPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"id": p.ID, "role": p.Role})
	})
	r.GET("/me", handlers...)
	return r
}

func doGet(r *gin.Engine, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	token, err := security.GenerateToken(7, "user")
	require.NoError(t, err)
	sig, err := security.ExtractSignature(token)
	require.NoError(t, err)

	r := newRouter(&fakeRevocations{revoked: map[string]bool{}})
	w := doGet(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7,"role":"user"}`, w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, doGet(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "garbage").Code)

	revokedRouter := newRouter(&fakeRevocations{revoked: map[string]bool{sig: true}})
	assert.Equal(t, http.StatusUnauthorized, doGet(revokedRouter, token).Code)
}

func TestCheckRoles(t *testing.T) {
	userToken, err := security.GenerateToken(7, "user")
	require.NoError(t, err)
	adminToken, err := security.GenerateToken(1, "admin")
	require.NoError(t, err)

	r := newRouter(&fakeRevocations{}, CheckRoles("admin"))
	assert.Equal(t, http.StatusForbidden, doGet(r, userToken).Code)
	assert.Equal(t, http.StatusOK, doGet(r, adminToken).Code)
}

func TestRedact(t *testing.T) {
	assert.Equal(t, `{"email":"a@b.c","password":"***"}`, redact(`{"email":"a@b.c","password":"hunter2"}`))
	assert.Equal(t, `{"data":{"token":"***","user":{"id":1}}}`, redact(`{"data":{"token":"eyJ.a\"b.c","user":{"id":1}}}`))
}

func TestAuditMiddlewareRedactsBodies(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Default()
	log.SetDefault(log.New(log.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { log.SetDefault(prev) })

	const token = "eyJhbGciOiJIUzI1NiJ9.payload.signature"
	r := gin.New()
	r.Use(AuditMiddleware())
	r.POST("/api/auth/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"token": token}})
	})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@b.c","password":"hunter2"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), token)

	logged := buf.String()
	assert.Contains(t, logged, "Send Response")
	assert.NotContains(t, logged, token)
	assert.NotContains(t, logged, "hunter2")
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://blog.example.com/"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://blog.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://blog.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/x", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestTraceMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(TraceMiddleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Trace-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Trace-ID"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Trace-ID", "bad\nvalue")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "bad\nvalue", w.Header().Get("X-Trace-ID"))
	assert.Len(t, w.Header().Get("X-Trace-ID"), 36)
}
