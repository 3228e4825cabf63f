package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/atelier-next/internal/cache"
	"github.com/atelier-next/internal/config"
	"github.com/atelier-next/internal/models"
	"github.com/atelier-next/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// ShopRegisterInput 商城用户注册入参
type ShopRegisterInput struct {
	FullName string
	Email    string
	Password string
	Phone    string
	Address  string
}

// ShopProfileUpdateInput 商城用户资料更新入参
type ShopProfileUpdateInput struct {
	FullName *string
	Phone    *string
	Address  *string
}

// ShopAuthService 商城用户认证服务
type ShopAuthService struct {
	cfg         *config.Config
	userRepo    repository.ShopUserRepository
	sessionRepo repository.ShopSessionRepository
}

// NewShopAuthService 创建商城认证服务实例
func NewShopAuthService(cfg *config.Config, userRepo repository.ShopUserRepository, sessionRepo repository.ShopSessionRepository) *ShopAuthService {
	return &ShopAuthService{
		cfg:         cfg,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
	}
}

func (s *ShopAuthService) sessionTTL() time.Duration {
	hours := 168
	if s.cfg != nil && s.cfg.Session.ShopTTLHours > 0 {
		hours = s.cfg.Session.ShopTTLHours
	}
	return time.Duration(hours) * time.Hour
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register 注册商城用户
func (s *ShopAuthService) Register(input ShopRegisterInput) (*models.ShopUser, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" || strings.TrimSpace(input.FullName) == "" {
		return nil, ErrInvalidParams
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidParams
	}
	if s.cfg != nil {
		if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
			return nil, err
		}
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.ShopUser{
		FullName:     strings.TrimSpace(input.FullName),
		Email:        email,
		PasswordHash: string(hash),
		Phone:        strings.TrimSpace(input.Phone),
		Address:      strings.TrimSpace(input.Address),
		IsActive:     true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 商城用户登录
// 邮箱不存在、密码错误、账号停用均返回同一错误
func (s *ShopAuthService) Login(email, password string) (*models.ShopUser, string, time.Time, error) {
	user, err := s.userRepo.GetByEmail(normalizeEmail(email))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, err := generateSessionToken()
	if err != nil {
		return nil, "", time.Time{}, err
	}
	expiresAt := time.Now().Add(s.sessionTTL())

	session := &models.ShopSession{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: expiresAt,
		IsActive:  true,
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", time.Time{}, err
	}

	_ = cache.SetShopSessionState(context.Background(), token, &cache.ShopSessionState{
		SessionID: session.ID,
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: expiresAt.Unix(),
		UpdatedAt: now.Unix(),
	})

	return user, token, expiresAt, nil
}

// VerifySession 校验商城会话令牌
func (s *ShopAuthService) VerifySession(token string) (*models.ShopUser, error) {
	if token == "" {
		return nil, ErrSessionInvalid
	}

	now := time.Now()
	ctx := context.Background()
	if state, hit, err := cache.GetShopSessionState(ctx, token); err == nil && hit {
		if state.ExpiresAt > now.Unix() && !shopStateRevoked(ctx, state) {
			user, err := s.userRepo.GetByID(state.UserID)
			if err != nil {
				return nil, err
			}
			if user != nil && user.IsActive {
				return user, nil
			}
		}
		_ = cache.DelShopSessionState(ctx, token)
	}

	session, err := s.sessionRepo.GetActiveByToken(token, now)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionInvalid
	}

	user, err := s.userRepo.GetByID(session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrSessionInvalid
	}

	_ = cache.SetShopSessionState(ctx, token, &cache.ShopSessionState{
		SessionID: session.ID,
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: session.ExpiresAt.Unix(),
		UpdatedAt: now.Unix(),
	})

	return user, nil
}

// Logout 注销当前会话，幂等
func (s *ShopAuthService) Logout(token string) error {
	if token == "" {
		return nil
	}
	if _, err := s.sessionRepo.Deactivate(token); err != nil {
		return err
	}
	return cache.DelShopSessionState(context.Background(), token)
}

// UpdateProfile 更新用户资料
func (s *ShopAuthService) UpdateProfile(userID uint, input ShopProfileUpdateInput) (*models.ShopUser, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if input.FullName != nil {
		trimmed := strings.TrimSpace(*input.FullName)
		if trimmed == "" {
			return nil, ErrInvalidParams
		}
		user.FullName = trimmed
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Address != nil {
		user.Address = strings.TrimSpace(*input.Address)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword 修改商城用户密码并吊销全部会话
func (s *ShopAuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidPassword
	}
	if s.cfg != nil {
		if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
			return err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	if err := s.userRepo.Update(user); err != nil {
		return err
	}

	// 吊销全部会话，并让令牌键入的快照失效
	if _, err := s.sessionRepo.DeactivateByUserID(userID); err != nil {
		return err
	}
	return cache.MarkShopSessionsRevoked(context.Background(), userID)
}

// 快照早于主体级吊销时间点时不可信
func shopStateRevoked(ctx context.Context, state *cache.ShopSessionState) bool {
	revokedAt, hit, err := cache.GetShopSessionsRevokedAt(ctx, state.UserID)
	if err != nil || !hit {
		return false
	}
	return revokedAt >= state.UpdatedAt
}

// CleanupExpiredSessions 清理过期会话行
func (s *ShopAuthService) CleanupExpiredSessions() (int64, error) {
	return s.sessionRepo.DeleteExpired(time.Now())
}
