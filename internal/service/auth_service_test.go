package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/atelier-next/internal/config"
	"github.com/atelier-next/internal/models"
	"github.com/atelier-next/internal/repository"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func authTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Session.AdminTTLHours = 1
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{
		MinLength:     8,
		RequireLower:  true,
		RequireNumber: true,
	}
	return cfg
}

func setupAuthServiceTest(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}, &models.AdminSession{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewAuthService(authTestConfig(), repository.NewAdminRepository(db), repository.NewAdminSessionRepository(db))
	return svc, db
}

func createTestAdmin(t *testing.T, db *gorm.DB, username, password string) *models.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	admin := &models.Admin{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	return admin
}

func TestAdminLoginIssuesSession(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	createTestAdmin(t, db, "admin", "secret123")

	admin, token, expiresAt, err := svc.Login("admin", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty session token")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("expected future expiry, got %v", expiresAt)
	}
	if admin.LastLoginAt == nil {
		t.Fatalf("expected last_login_at set")
	}

	verified, err := svc.VerifySession(token)
	if err != nil {
		t.Fatalf("verify session failed: %v", err)
	}
	if verified.ID != admin.ID {
		t.Fatalf("expected admin %d, got %d", admin.ID, verified.ID)
	}
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	createTestAdmin(t, db, "admin", "secret123")

	// 用户名不存在与密码错误返回同一错误
	if _, _, _, err := svc.Login("nobody", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
	if _, _, _, err := svc.Login("admin", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
}

func TestAdminVerifySessionRejectsExpiredAndRevoked(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	createTestAdmin(t, db, "admin", "secret123")

	if _, err := svc.VerifySession(""); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid for empty token, got %v", err)
	}
	if _, err := svc.VerifySession("not-a-real-token"); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid for unknown token, got %v", err)
	}

	_, token, _, err := svc.Login("admin", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := db.Model(&models.AdminSession{}).
		Where("token = ?", token).
		Update("expires_at", time.Now().Add(-time.Minute)).Error; err != nil {
		t.Fatalf("expire session failed: %v", err)
	}
	if _, err := svc.VerifySession(token); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid for expired session, got %v", err)
	}

	_, token, _, err = svc.Login("admin", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := svc.Logout(token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := svc.VerifySession(token); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid after logout, got %v", err)
	}

	// 注销保持幂等
	if err := svc.Logout(token); err != nil {
		t.Fatalf("repeated logout failed: %v", err)
	}
	if err := svc.Logout(""); err != nil {
		t.Fatalf("logout with empty token failed: %v", err)
	}
}

func TestAdminChangePasswordRevokesSessions(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	admin := createTestAdmin(t, db, "admin", "secret123")

	_, token, _, err := svc.Login("admin", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.ChangePassword(admin.ID, "wrong-pass", "newsecret1"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if err := svc.ChangePassword(admin.ID, "secret123", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if err := svc.ChangePassword(9999, "secret123", "newsecret1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := svc.ChangePassword(admin.ID, "secret123", "newsecret1"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if _, err := svc.VerifySession(token); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected old session revoked, got %v", err)
	}
	if _, _, _, err := svc.Login("admin", "newsecret1"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestAdminCleanupExpiredSessions(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	admin := createTestAdmin(t, db, "admin", "secret123")

	sessions := []models.AdminSession{
		{AdminID: admin.ID, Token: "expired-1", ExpiresAt: time.Now().Add(-time.Hour), IsActive: true},
		{AdminID: admin.ID, Token: "expired-2", ExpiresAt: time.Now().Add(-time.Minute), IsActive: true},
		{AdminID: admin.ID, Token: "live", ExpiresAt: time.Now().Add(time.Hour), IsActive: true},
	}
	for i := range sessions {
		if err := db.Create(&sessions[i]).Error; err != nil {
			t.Fatalf("create session failed: %v", err)
		}
	}

	deleted, err := svc.CleanupExpiredSessions()
	if err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deleted sessions, got %d", deleted)
	}
	var remaining int64
	if err := db.Model(&models.AdminSession{}).Count(&remaining).Error; err != nil {
		t.Fatalf("count sessions failed: %v", err)
	}
	if remaining != 1 {
		t.Fatalf("expected 1 remaining session, got %d", remaining)
	}
}
