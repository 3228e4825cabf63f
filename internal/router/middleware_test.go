package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/atelier-next/internal/config"
	"github.com/atelier-next/internal/models"
	"github.com/atelier-next/internal/repository"
	"github.com/atelier-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	if strings.TrimSpace(w2.Header().Get(requestIDHeader)) == "" {
		t.Fatalf("generated request id should not be empty")
	}
}

func setupAuthMiddlewareTest(t *testing.T) (*service.AuthService, *service.ShopAuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:middleware_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Admin{},
		&models.AdminSession{},
		&models.ShopUser{},
		&models.ShopSession{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.Session.AdminTTLHours = 1
	cfg.Session.ShopTTLHours = 24
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{
		MinLength:     8,
		RequireLower:  true,
		RequireNumber: true,
	}

	authService := service.NewAuthService(cfg,
		repository.NewAdminRepository(db),
		repository.NewAdminSessionRepository(db))
	shopAuthService := service.NewShopAuthService(cfg,
		repository.NewShopUserRepository(db),
		repository.NewShopSessionRepository(db))
	return authService, shopAuthService, db
}

func adminProtectedRouter(authService *service.AuthService) *gin.Engine {
	r := gin.New()
	r.GET("/admin/ping", AdminAuthMiddleware(authService), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"admin_id": c.GetUint("admin_id")})
	})
	return r
}

func TestAdminAuthMiddlewareRejectsBadTokens(t *testing.T) {
	gin.SetMode(gin.TestMode)
	authService, _, _ := setupAuthMiddlewareTest(t)
	r := adminProtectedRouter(authService)

	headers := []string{"", "Bearer", "Token abc", "Bearer   ", "Bearer no-such-token"}
	for _, header := range headers {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status want 401 got %d", header, w.Code)
		}
	}

	// 服务未装配时直接拒绝
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	adminProtectedRouter(nil).ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("nil service: status want 401 got %d", w.Code)
	}
}

func TestAdminAuthMiddlewareAcceptsValidSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	authService, _, db := setupAuthMiddlewareTest(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	admin := &models.Admin{Username: "admin", PasswordHash: string(hash)}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	_, token, _, err := authService.Login("admin", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	r := adminProtectedRouter(authService)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d body %s", w.Code, w.Body.String())
	}
	var resp struct {
		AdminID uint `json:"admin_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.AdminID != admin.ID {
		t.Fatalf("admin_id want %d got %d", admin.ID, resp.AdminID)
	}

	// 登出后同一 token 失效
	if err := authService.Logout(token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req2.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w2, req2)
	if w2.Code != http.StatusUnauthorized {
		t.Fatalf("revoked token: status want 401 got %d", w2.Code)
	}
}

func TestShopAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, shopAuthService, _ := setupAuthMiddlewareTest(t)

	user, err := shopAuthService.Register(service.ShopRegisterInput{
		Email:    "sara@example.com",
		Password: "secret123",
		FullName: "Sara",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	_, token, _, err := shopAuthService.Login("sara@example.com", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	r := gin.New()
	r.GET("/shop/me", ShopAuthMiddleware(shopAuthService), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":    c.GetUint("user_id"),
			"user_email": c.GetString("user_email"),
		})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/shop/me", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: status want 401 got %d", w.Code)
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/shop/me", nil)
	req2.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w2, req2)
	if w2.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d body %s", w2.Code, w2.Body.String())
	}
	var resp struct {
		UserID    uint   `json:"user_id"`
		UserEmail string `json:"user_email"`
	}
	if err := json.Unmarshal(w2.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.UserID != user.ID || resp.UserEmail != "sara@example.com" {
		t.Fatalf("unexpected identity: %+v", resp)
	}
}

func TestBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc123", "abc123"},
		{"Bearer  abc123 ", "abc123"},
		{"bearer abc123", ""},
		{"Token abc123", ""},
		{"Bearer", ""},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			c.Request.Header.Set("Authorization", tc.header)
		}
		if got := bearerToken(c); got != tc.want {
			t.Fatalf("header %q: token want %q got %q", tc.header, tc.want, got)
		}
	}
}

func TestRateLimitMiddlewareDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	// 无 Redis 客户端时直接放行
	r.GET("/public", RateLimitMiddleware(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 5}, KeyByIP), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 10; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/public", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status want 200 got %d", i, w.Code)
		}
	}
}

func TestKeyByIPAndJSONField(t *testing.T) {
	gin.SetMode(gin.TestMode)

	keyFunc := KeyByIPAndJSONField("email")

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":" Sara@Example.com "}`))
	key := keyFunc(c)
	if !strings.HasPrefix(key, "sara@example.com|") {
		t.Fatalf("key should start with normalized email, got %q", key)
	}

	// 请求体需要可以被后续 handler 再次读取
	body := make([]byte, 64)
	n, _ := c.Request.Body.Read(body)
	if !strings.Contains(string(body[:n]), "Sara@Example.com") {
		t.Fatalf("body should be restored after key extraction, got %q", string(body[:n]))
	}

	c2, _ := gin.CreateTestContext(httptest.NewRecorder())
	c2.Request = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{}`))
	if key := keyFunc(c2); strings.Contains(key, "|") {
		t.Fatalf("missing field should fall back to IP, got %q", key)
	}
}
