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
	"gorm.io/gorm"
)

func setupShopAuthServiceTest(t *testing.T) (*ShopAuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:shop_auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.ShopUser{}, &models.ShopSession{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cfg := &config.Config{}
	cfg.Session.ShopTTLHours = 24
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{
		MinLength:     8,
		RequireLower:  true,
		RequireNumber: true,
	}
	svc := NewShopAuthService(cfg, repository.NewShopUserRepository(db), repository.NewShopSessionRepository(db))
	return svc, db
}

func TestShopRegisterNormalizesEmail(t *testing.T) {
	svc, _ := setupShopAuthServiceTest(t)

	user, err := svc.Register(ShopRegisterInput{
		FullName: "  Sara Ahmadi ",
		Email:    " Sara@Example.COM ",
		Password: "secret123",
		Phone:    "0912000000",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "sara@example.com" {
		t.Fatalf("expected lowercased email, got %s", user.Email)
	}
	if user.FullName != "Sara Ahmadi" {
		t.Fatalf("expected trimmed full name, got %q", user.FullName)
	}
	if !user.IsActive {
		t.Fatalf("expected new user active")
	}

	// 不同大小写视为同一邮箱
	if _, err := svc.Register(ShopRegisterInput{
		FullName: "Other",
		Email:    "SARA@example.com",
		Password: "secret123",
	}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestShopRegisterValidation(t *testing.T) {
	svc, _ := setupShopAuthServiceTest(t)

	if _, err := svc.Register(ShopRegisterInput{FullName: "Sara", Email: "", Password: "secret123"}); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for empty email, got %v", err)
	}
	if _, err := svc.Register(ShopRegisterInput{FullName: "Sara", Email: "bad-email", Password: "secret123"}); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for malformed email, got %v", err)
	}
	if _, err := svc.Register(ShopRegisterInput{FullName: "Sara", Email: "sara@example.com", Password: "short"}); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestShopLoginAndVerifySession(t *testing.T) {
	svc, db := setupShopAuthServiceTest(t)
	if _, err := svc.Register(ShopRegisterInput{
		FullName: "Sara",
		Email:    "sara@example.com",
		Password: "secret123",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, token, expiresAt, err := svc.Login("SARA@example.com", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" || !expiresAt.After(time.Now()) {
		t.Fatalf("unexpected session: token=%q expires=%v", token, expiresAt)
	}

	verified, err := svc.VerifySession(token)
	if err != nil {
		t.Fatalf("verify session failed: %v", err)
	}
	if verified.ID != user.ID {
		t.Fatalf("expected user %d, got %d", user.ID, verified.ID)
	}

	if _, _, _, err := svc.Login("sara@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	// 停用账号后登录与已有会话同时失效
	if err := db.Model(&models.ShopUser{}).Where("id = ?", user.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate user failed: %v", err)
	}
	if _, _, _, err := svc.Login("sara@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for disabled account, got %v", err)
	}
	if _, err := svc.VerifySession(token); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid for disabled account, got %v", err)
	}
}

func TestShopUpdateProfile(t *testing.T) {
	svc, _ := setupShopAuthServiceTest(t)
	user, err := svc.Register(ShopRegisterInput{
		FullName: "Sara",
		Email:    "sara@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	name := "Sara A."
	phone := " 0912 "
	updated, err := svc.UpdateProfile(user.ID, ShopProfileUpdateInput{
		FullName: &name,
		Phone:    &phone,
	})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if updated.FullName != "Sara A." || updated.Phone != "0912" {
		t.Fatalf("unexpected profile: %+v", updated)
	}

	blank := "   "
	if _, err := svc.UpdateProfile(user.ID, ShopProfileUpdateInput{FullName: &blank}); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for blank name, got %v", err)
	}
	if _, err := svc.UpdateProfile(9999, ShopProfileUpdateInput{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestShopChangePasswordRevokesSessions(t *testing.T) {
	svc, _ := setupShopAuthServiceTest(t)
	user, err := svc.Register(ShopRegisterInput{
		FullName: "Sara",
		Email:    "sara@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	_, token, _, err := svc.Login("sara@example.com", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.ChangePassword(user.ID, "wrong", "newsecret1"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if err := svc.ChangePassword(user.ID, "secret123", "weak"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}

	if err := svc.ChangePassword(user.ID, "secret123", "newsecret1"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if _, err := svc.VerifySession(token); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected session revoked after password change, got %v", err)
	}
	if _, _, _, err := svc.Login("sara@example.com", "newsecret1"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}
