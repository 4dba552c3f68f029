package middleware_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/finreport_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-long-enough"

func signedToken(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/whoami", func(c *gin.Context) {
		subject, _ := middleware.SubjectFromContext(c.Request.Context())
		c.String(http.StatusOK, subject)
	})
	return r
}

func serve(r http.Handler, authHeader string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	valid := signedToken(t, jwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    "finreport",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	expired := signedToken(t, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	noSubject := signedToken(t, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	testCases := []struct {
		name     string
		opts     []jwt.ParserOption
		header   string
		wantCode int
		wantBody string
	}{
		{name: "valid token", header: "Bearer " + valid, wantCode: http.StatusOK, wantBody: "user-1"},
		{name: "matching issuer", opts: []jwt.ParserOption{jwt.WithIssuer("finreport")}, header: "Bearer " + valid, wantCode: http.StatusOK, wantBody: "user-1"},
		{name: "wrong issuer", opts: []jwt.ParserOption{jwt.WithIssuer("someone-else")}, header: "Bearer " + valid, wantCode: http.StatusUnauthorized},
		{name: "missing header", wantCode: http.StatusUnauthorized},
		{name: "malformed header", header: "Token " + valid, wantCode: http.StatusUnauthorized},
		{name: "bearer without token", header: "Bearer", wantCode: http.StatusUnauthorized},
		{name: "token without subject", header: "Bearer " + noSubject, wantCode: http.StatusUnauthorized},
		{name: "expired token", header: "Bearer " + expired, wantCode: http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(newRouter(middleware.AuthMiddleware(testSecret, tc.opts...)), tc.header)
			assert.Equal(t, tc.wantCode, w.Code)
			if tc.wantBody != "" {
				assert.Equal(t, tc.wantBody, w.Body.String())
			}
		})
	}
}

func TestAuthMiddleware_DisabledWithoutSecret(t *testing.T) {
	w := serve(newRouter(middleware.AuthMiddleware("")), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, middleware.AnonymousUserID, w.Body.String())
}

func TestSubjectFromContext(t *testing.T) {
	_, ok := middleware.SubjectFromContext(context.Background())
	assert.False(t, ok)

	_, ok = middleware.SubjectFromContext(middleware.WithSubject(context.Background(), ""))
	assert.False(t, ok)

	subject, ok := middleware.SubjectFromContext(middleware.WithSubject(context.Background(), "user-1"))
	assert.True(t, ok)
	assert.Equal(t, "user-1", subject)
}

func TestPosthogMiddleware_WithoutClient(t *testing.T) {
	r := newRouter(middleware.AuthMiddleware(""), middleware.PosthogMiddleware(nil))
	w := serve(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, middleware.AnonymousUserID, w.Body.String())
}

func TestRateLimit(t *testing.T) {
	limiter, err := middleware.NewRateLimiter("2-M")
	require.NoError(t, err)
	r := newRouter(middleware.RateLimit(limiter))

	assert.Equal(t, http.StatusOK, serve(r, "").Code)
	w := serve(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusTooManyRequests, serve(r, "").Code)
}

func TestNewRateLimiter_InvalidFormat(t *testing.T) {
	_, err := middleware.NewRateLimiter("lots")
	assert.Error(t, err)
}

func TestStructuredLoggingMiddleware_StoresLoggerInRequestContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	base := slog.New(slog.NewTextHandler(io.Discard, nil))

	var fromCtx *slog.Logger
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(base))
	r.GET("/ping", func(c *gin.Context) {
		fromCtx = middleware.GetLoggerFromCtx(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	require.NotNil(t, fromCtx)
	assert.NotSame(t, slog.Default(), fromCtx)
}

func TestGetLoggerFromCtx_Default(t *testing.T) {
	assert.Same(t, slog.Default(), middleware.GetLoggerFromCtx(context.Background()))
}
