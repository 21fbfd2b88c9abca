package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"flashdeals/internal/domain/account"
	appErrors "flashdeals/pkg/errors"
	"flashdeals/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeValidator struct {
	claims *utils.Claims
	err    error
	token  string
}

func (f *fakeValidator) ValidateToken(_ context.Context, token string) (*utils.Claims, error) {
	f.token = token
	return f.claims, f.err
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func authRouter(v TokenValidator, extra ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(v)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		id, ok := GetAccountID(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, id.String())
	})
	router.GET("/me", handlers...)
	return router
}

func TestAuthMiddleware(t *testing.T) {
	accountID := uuid.New()
	sessionID := uuid.New()
	valid := &fakeValidator{claims: &utils.Claims{AccountID: accountID, SessionID: sessionID, Role: "vendor"}}

	tests := []struct {
		name      string
		header    string
		validator *fakeValidator
		want      int
		body      string
	}{
		{"missing header", "", valid, http.StatusUnauthorized, "Authorization header required"},
		{"wrong scheme", "Basic abc", valid, http.StatusUnauthorized, "Invalid authorization header format"},
		{"empty token", "Bearer   ", valid, http.StatusUnauthorized, "Invalid authorization header format"},
		{"revoked session", "Bearer tok", &fakeValidator{err: appErrors.ErrSessionRevoked}, http.StatusUnauthorized, "session is no longer active"},
		{"store failure", "Bearer tok", &fakeValidator{err: errors.New("db down")}, http.StatusInternalServerError, "Internal server error"},
		{"valid", "bearer tok", valid, http.StatusOK, accountID.String()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := serve(authRouter(tt.validator), req)

			assert.Equal(t, tt.want, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
		})
	}

	assert.Equal(t, "tok", valid.token)
}

func TestAuthMiddleware_SetsIdentityKeys(t *testing.T) {
	claims := &utils.Claims{AccountID: uuid.New(), SessionID: uuid.New(), Role: "customer", IsVerified: true}

	var keys map[any]any
	router := gin.New()
	router.GET("/me", AuthMiddleware(&fakeValidator{claims: claims}), func(c *gin.Context) {
		keys = c.Keys
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := serve(router, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[any]any{
		AccountIDKey: claims.AccountID,
		SessionIDKey: claims.SessionID,
		RoleKey:      "customer",
	}, keys)
}

func TestRoleMiddleware(t *testing.T) {
	customer := &fakeValidator{claims: &utils.Claims{AccountID: uuid.New(), SessionID: uuid.New(), Role: string(account.RoleCustomer)}}
	vendor := &fakeValidator{claims: &utils.Claims{AccountID: uuid.New(), SessionID: uuid.New(), Role: string(account.RoleVendor)}}

	req := func() *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/me", nil)
		r.Header.Set("Authorization", "Bearer tok")
		return r
	}

	rec := serve(authRouter(customer, VendorOnly()), req())
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Insufficient permissions")

	rec = serve(authRouter(vendor, VendorOnly()), req())
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(authRouter(vendor, AdminOnly()), req())
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRoleMiddleware_WithoutAuth(t *testing.T) {
	router := gin.New()
	router.GET("/admin", AdminOnly(), func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "client-abc.123")
	rec := serve(router, req)
	assert.Equal(t, "client-abc.123", rec.Body.String())
	assert.Equal(t, "client-abc.123", rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "bad id\nInjected: yes")
	rec = serve(router, req)
	_, err := uuid.Parse(rec.Body.String())
	assert.NoError(t, err, "malformed ids are replaced")

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(0.001, 2)

	assert.True(t, limiter.Allow("1.2.3.4"))
	assert.True(t, limiter.Allow("1.2.3.4"))
	assert.False(t, limiter.Allow("1.2.3.4"))
	assert.True(t, limiter.Allow("5.6.7.8"))
	assert.Equal(t, 2, limiter.Len())

	router := gin.New()
	router.Use(RateLimitMiddleware(NewRateLimiter(0.001, 1)))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(router, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(router, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
}

func TestRateLimiter_PruneDropsFullBuckets(t *testing.T) {
	limiter := NewRateLimiter(1000, 1)
	require.True(t, limiter.Allow("idle"))
	require.Equal(t, 1, limiter.Len())

	assert.Eventually(t, func() bool {
		limiter.prune()
		return limiter.Len() == 0
	}, time.Second, 5*time.Millisecond)
}

func TestRequestSizeLimit(t *testing.T) {
	router := gin.New()
	router.Use(RequestSizeLimitMiddleware(8))
	router.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := serve(router, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = serve(router, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123")))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSecurityHeaders(t *testing.T) {
	router := gin.New()
	router.Use(SecurityHeadersMiddleware(true))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
}
