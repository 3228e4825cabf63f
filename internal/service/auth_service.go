package service

import (
	"context"
	"time"

	"github.com/atelier-next/internal/cache"
	"github.com/atelier-next/internal/config"
	"github.com/atelier-next/internal/models"
	"github.com/atelier-next/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AuthService 管理员认证服务
// 登录签发不透明会话令牌，校验走会话表，支持服务端吊销
type AuthService struct {
	cfg         *config.Config
	adminRepo   repository.AdminRepository
	sessionRepo repository.AdminSessionRepository
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg *config.Config, adminRepo repository.AdminRepository, sessionRepo repository.AdminSessionRepository) *AuthService {
	return &AuthService{
		cfg:         cfg,
		adminRepo:   adminRepo,
		sessionRepo: sessionRepo,
	}
}

// HashPassword 使用 bcrypt 加密密码
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 验证密码
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePassword 校验密码是否符合策略
func (s *AuthService) ValidatePassword(password string) error {
	if s == nil || s.cfg == nil {
		return nil
	}
	return validatePassword(s.cfg.Security.PasswordPolicy, password)
}

func (s *AuthService) sessionTTL() time.Duration {
	hours := 24
	if s.cfg != nil && s.cfg.Session.AdminTTLHours > 0 {
		hours = s.cfg.Session.AdminTTLHours
	}
	return time.Duration(hours) * time.Hour
}

// Login 管理员登录
// 用户名不存在与密码错误返回同一错误，避免枚举
func (s *AuthService) Login(username, password string) (*models.Admin, string, time.Time, error) {
	admin, err := s.adminRepo.GetByUsername(username)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if admin == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	if err := s.VerifyPassword(admin.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, err := generateSessionToken()
	if err != nil {
		return nil, "", time.Time{}, err
	}
	expiresAt := time.Now().Add(s.sessionTTL())

	session := &models.AdminSession{
		AdminID:   admin.ID,
		Token:     token,
		ExpiresAt: expiresAt,
		IsActive:  true,
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	admin.LastLoginAt = &now
	if err := s.adminRepo.Update(admin); err != nil {
		return nil, "", time.Time{}, err
	}

	_ = cache.SetAdminSessionState(context.Background(), token, &cache.AdminSessionState{
		SessionID: session.ID,
		AdminID:   admin.ID,
		Username:  admin.Username,
		ExpiresAt: expiresAt.Unix(),
		UpdatedAt: now.Unix(),
	})

	return admin, token, expiresAt, nil
}

// VerifySession 校验会话令牌，返回对应管理员
// 任何失败（令牌不存在、吊销、过期）均返回 ErrSessionInvalid
func (s *AuthService) VerifySession(token string) (*models.Admin, error) {
	if token == "" {
		return nil, ErrSessionInvalid
	}

	now := time.Now()
	ctx := context.Background()
	if state, hit, err := cache.GetAdminSessionState(ctx, token); err == nil && hit {
		if state.ExpiresAt > now.Unix() && !adminStateRevoked(ctx, state) {
			admin, err := s.adminRepo.GetByID(state.AdminID)
			if err != nil {
				return nil, err
			}
			if admin != nil {
				return admin, nil
			}
		}
		// 快照过期、已吊销或管理员不存在，回退数据库校验
		_ = cache.DelAdminSessionState(ctx, token)
	}

	session, err := s.sessionRepo.GetActiveByToken(token, now)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionInvalid
	}

	admin, err := s.adminRepo.GetByID(session.AdminID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrSessionInvalid
	}

	_ = cache.SetAdminSessionState(ctx, token, &cache.AdminSessionState{
		SessionID: session.ID,
		AdminID:   admin.ID,
		Username:  admin.Username,
		ExpiresAt: session.ExpiresAt.Unix(),
		UpdatedAt: now.Unix(),
	})

	return admin, nil
}

// Logout 注销当前会话
// 令牌不存在或已失效也视为成功，注销保持幂等
func (s *AuthService) Logout(token string) error {
	if token == "" {
		return nil
	}
	if _, err := s.sessionRepo.Deactivate(token); err != nil {
		return err
	}
	return cache.DelAdminSessionState(context.Background(), token)
}

// ChangePassword 修改管理员密码并吊销全部会话
func (s *AuthService) ChangePassword(adminID uint, oldPassword, newPassword string) error {
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrNotFound
	}

	if err := s.VerifyPassword(admin.PasswordHash, oldPassword); err != nil {
		return ErrInvalidPassword
	}

	if err := s.ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}

	admin.PasswordHash = hash
	if err := s.adminRepo.Update(admin); err != nil {
		return err
	}

	// 旧会话全部失效，强制重新登录；快照按令牌键入，走主体级吊销标记
	if _, err := s.sessionRepo.DeactivateByAdminID(adminID); err != nil {
		return err
	}
	return cache.MarkAdminSessionsRevoked(context.Background(), adminID)
}

// 快照早于主体级吊销时间点时不可信
func adminStateRevoked(ctx context.Context, state *cache.AdminSessionState) bool {
	revokedAt, hit, err := cache.GetAdminSessionsRevokedAt(ctx, state.AdminID)
	if err != nil || !hit {
		return false
	}
	return revokedAt >= state.UpdatedAt
}

// CleanupExpiredSessions 清理过期会话行
func (s *AuthService) CleanupExpiredSessions() (int64, error) {
	return s.sessionRepo.DeleteExpired(time.Now())
}
