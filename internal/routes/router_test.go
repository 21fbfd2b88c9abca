package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flashdeals/internal/config"
	"flashdeals/internal/infrastructure/database/memory"
	"flashdeals/internal/storage"
	"flashdeals/internal/usecase/account"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type fakePresigner struct{}

func (fakePresigner) PresignUpload(_ context.Context, kind storage.Kind, _ string) (*storage.Upload, error) {
	if !kind.Valid() {
		return nil, storage.ErrUnknownKind
	}
	return &storage.Upload{URL: "https://minio.local/put", Reference: string(kind) + "/ref", ExpiresAt: time.Now().Add(time.Minute)}, nil
}

type testServer struct {
	router   *gin.Engine
	store    *memory.Store
	services *Services
}

func newTestServer(t *testing.T, presigner storage.Presigner) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server:    config.ServerConfig{Environment: "test"},
		JWT:       config.JWTConfig{Secret: "router-secret", ExpiryHours: 1},
		RateLimit: config.RateLimitConfig{GeneralRPS: 1000, GeneralBurst: 1000},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"*"}},
	}

	store := memory.NewStore()
	deps := &Dependencies{
		Repos: Repositories{
			Accounts: store.Accounts(),
			Sessions: store.Sessions(),
			Offers:   store.Offers(),
			Wishlist: store.Wishlist(),
			Tickets:  store.Tickets(),
		},
		Health:    store,
		Presigner: presigner,
	}

	services := NewServices(cfg, deps)
	return &testServer{router: SetupRoutes(cfg, deps, services), store: store, services: services}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec.Code, env
}

func (s *testServer) signup(t *testing.T, mobile, role string) (string, string) {
	t.Helper()

	code, env := s.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": "User " + mobile, "mobile": mobile, "password": "secret1", "role": role,
	})
	require.Equal(t, http.StatusCreated, code, env.Message)

	return s.login(t, mobile, "secret1")
}

func (s *testServer) login(t *testing.T, mobile, password string) (string, string) {
	t.Helper()

	code, env := s.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"mobile": mobile, "password": password, "device_info": "Pixel 8", "os": "Android",
	})
	require.Equal(t, http.StatusOK, code, env.Message)

	var login struct {
		Token     string `json:"token"`
		SessionID string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	return login.Token, login.SessionID
}

func (s *testServer) seedAdmin(t *testing.T) string {
	t.Helper()

	_, err := s.services.Accounts.EnsureAdmin(context.Background(), &account.EnsureAdminRequest{
		Name: "Staff", Mobile: "+15550109999", Password: "adminpass",
	})
	require.NoError(t, err)

	token, _ := s.login(t, "+15550109999", "adminpass")
	return token
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t, nil)

	code, env := s.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{"name": "Ada", "mobile": "+15550100200", "password": "secret1"})
	require.Equal(t, http.StatusCreated, code)
	assert.True(t, env.Success)

	code, env = s.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{"name": "Ada", "mobile": "+15550100200", "password": "secret1"})
	assert.Equal(t, http.StatusConflict, code)
	assert.False(t, env.Success)

	code, _ = s.do(t, http.MethodPost, "/api/v1/auth/register", "", "not an object")
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"mobile": "+15550100200", "password": "wrong12", "device_info": "d", "os": "o"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "invalid mobile number or password", env.Message)

	token, _ := s.login(t, "+15550100200", "secret1")

	code, env = s.do(t, http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, code)
	var me struct {
		Mobile string `json:"mobile"`
		Role   string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "+15550100200", me.Mobile)
	assert.Equal(t, "customer", me.Role)

	code, _ = s.do(t, http.MethodGet, "/api/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestSessionRevocation(t *testing.T) {
	s := newTestServer(t, nil)

	first, firstSession := s.signup(t, "+15550100200", "")
	second, secondSession := s.login(t, "+15550100200", "secret1")

	code, env := s.do(t, http.MethodGet, "/api/v1/me/sessions", second, nil)
	require.Equal(t, http.StatusOK, code)
	var sessions []struct {
		ID        string `json:"id"`
		IsCurrent bool   `json:"is_current"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &sessions))
	require.Len(t, sessions, 2)
	assert.Equal(t, secondSession, sessions[0].ID)
	assert.True(t, sessions[0].IsCurrent)

	code, env = s.do(t, http.MethodDelete, "/api/v1/me/sessions/"+firstSession, second, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Session revoked", env.Message)

	code, _ = s.do(t, http.MethodGet, "/api/v1/me", first, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env = s.do(t, http.MethodDelete, "/api/v1/me/sessions/"+secondSession, second, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Session revoked, please log in again", env.Message)

	code, _ = s.do(t, http.MethodGet, "/api/v1/me", second, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestOfferWishlistAndTicketFlow(t *testing.T) {
	s := newTestServer(t, nil)

	vendor, _ := s.signup(t, "+15550100200", "vendor")
	shopper, _ := s.signup(t, "+15550100201", "")
	admin := s.seedAdmin(t)

	now := time.Now()
	offerBody := gin.H{
		"title":      "Half price pizza",
		"category":   "Food",
		"image_ref":  "offer_image/2026/10/14/pizza",
		"start_date": now.Add(-time.Hour),
		"end_date":   now.Add(4 * time.Hour),
	}

	code, _ := s.do(t, http.MethodPost, "/api/v1/offers", shopper, offerBody)
	assert.Equal(t, http.StatusForbidden, code)

	code, env := s.do(t, http.MethodPost, "/api/v1/offers", vendor, offerBody)
	require.Equal(t, http.StatusCreated, code, env.Message)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	code, env = s.do(t, http.MethodGet, "/api/v1/offers?category=food", "", nil)
	require.Equal(t, http.StatusOK, code)
	var listed []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	code, env = s.do(t, http.MethodGet, "/api/v1/offers/hot?q=pizza", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(env.Data))

	code, _ = s.do(t, http.MethodGet, "/api/v1/offers/categories", "", nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodGet, "/api/v1/offers/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(t, http.MethodPost, "/api/v1/wishlist/"+created.ID+"/toggle", shopper, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Added to wishlist", env.Message)

	code, env = s.do(t, http.MethodGet, "/api/v1/wishlist/status", shopper, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"offer_ids":["`+created.ID+`"]}`, string(env.Data))

	code, env = s.do(t, http.MethodPost, "/api/v1/tickets", shopper, gin.H{
		"subject": "Coupon not applied", "description": "The pizza deal did not apply", "category": "Billing",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var ticket struct {
		ID       string `json:"id"`
		Code     string `json:"code"`
		Status   string `json:"status"`
		Priority string `json:"priority"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &ticket))
	assert.Regexp(t, `^#FD-\d{4}$`, ticket.Code)
	assert.Equal(t, "Open", ticket.Status)
	assert.Equal(t, "Medium", ticket.Priority)

	code, _ = s.do(t, http.MethodPatch, "/api/v1/admin/tickets/"+ticket.ID+"/status", shopper, gin.H{"status": "In Review"})
	assert.Equal(t, http.StatusForbidden, code)

	code, env = s.do(t, http.MethodPatch, "/api/v1/admin/tickets/"+ticket.ID+"/status", admin, gin.H{"status": "In Review"})
	require.Equal(t, http.StatusOK, code, env.Message)

	code, _ = s.do(t, http.MethodDelete, "/api/v1/offers/"+created.ID, vendor, nil)
	require.Equal(t, http.StatusOK, code)

	code, env = s.do(t, http.MethodGet, "/api/v1/wishlist", shopper, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestVendorApplicationReview(t *testing.T) {
	s := newTestServer(t, nil)

	vendor, _ := s.signup(t, "+15550100200", "vendor")
	admin := s.seedAdmin(t)

	code, env := s.do(t, http.MethodGet, "/api/v1/me", vendor, nil)
	require.Equal(t, http.StatusOK, code)
	var me struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))

	code, env = s.do(t, http.MethodPost, "/api/v1/vendors/"+me.ID+"/application", vendor, gin.H{
		"store_name": "Corner Bakery", "store_address": "12 Main St", "id_type": "passport",
		"id_number": "X123", "doc_ref": "id_document/ref", "geo": gin.H{"latitude": 10.7, "longitude": 106.6},
	})
	require.Equal(t, http.StatusOK, code, env.Message)

	code, env = s.do(t, http.MethodPatch, "/api/v1/admin/vendors/"+me.ID+"/approval", admin, gin.H{"status": "approved"})
	require.Equal(t, http.StatusOK, code, env.Message)

	code, _ = s.do(t, http.MethodPost, "/api/v1/vendors/"+me.ID+"/application", vendor, gin.H{
		"store_name": "Corner Bakery", "store_address": "12 Main St", "id_type": "passport",
		"id_number": "X123", "doc_ref": "id_document/ref",
	})
	assert.Equal(t, http.StatusConflict, code)

	code, env = s.do(t, http.MethodGet, "/api/v1/vendors/"+me.ID+"/offers", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestSeededAdminReachesAdminRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	customer, _ := s.signup(t, "+15550100200", "")
	path := "/api/v1/admin/vendors/8f14e45f-ceea-4676-9bd5-2f1c0f6a6f0e/approval"

	code, _ := s.do(t, http.MethodPatch, path, customer, gin.H{"status": "approved"})
	assert.Equal(t, http.StatusForbidden, code)

	admin := s.seedAdmin(t)

	code, env := s.do(t, http.MethodGet, "/api/v1/me", admin, nil)
	require.Equal(t, http.StatusOK, code)
	var me struct {
		Role       string `json:"role"`
		IsVerified bool   `json:"is_verified"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "admin", me.Role)
	assert.True(t, me.IsVerified)

	code, _ = s.do(t, http.MethodPatch, path, admin, gin.H{"status": "approved"})
	assert.Equal(t, http.StatusNotFound, code, "admin passes the role gate and hits the unknown vendor")
}

func TestUploads(t *testing.T) {
	disabled := newTestServer(t, nil)
	token, _ := disabled.signup(t, "+15550100200", "")
	code, _ := disabled.do(t, http.MethodPost, "/api/v1/uploads/presign", token, gin.H{"kind": "offer_image"})
	assert.Equal(t, http.StatusNotFound, code)

	enabled := newTestServer(t, fakePresigner{})
	token, _ = enabled.signup(t, "+15550100200", "")

	code, env := enabled.do(t, http.MethodPost, "/api/v1/uploads/presign", token, gin.H{"kind": "offer_image", "content_type": "image/jpeg"})
	require.Equal(t, http.StatusOK, code, env.Message)
	var upload struct {
		UploadURL string `json:"upload_url"`
		Reference string `json:"reference"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &upload))
	assert.Equal(t, "offer_image/ref", upload.Reference)

	code, _ = enabled.do(t, http.MethodPost, "/api/v1/uploads/presign", token, gin.H{"kind": "avatar"})
	assert.Equal(t, http.StatusBadRequest, code)
}
