package repository

import (
	"errors"
	"time"

	"github.com/atelier-next/internal/models"

	"gorm.io/gorm"
)

// AdminSessionRepository 管理员会话数据访问接口
type AdminSessionRepository interface {
	Create(session *models.AdminSession) error
	GetActiveByToken(token string, now time.Time) (*models.AdminSession, error)
	Deactivate(token string) (int64, error)
	DeactivateByAdminID(adminID uint) (int64, error)
	DeleteExpired(before time.Time) (int64, error)
}

// GormAdminSessionRepository GORM 实现
type GormAdminSessionRepository struct {
	db *gorm.DB
}

// NewAdminSessionRepository 创建管理员会话仓库
func NewAdminSessionRepository(db *gorm.DB) *GormAdminSessionRepository {
	return &GormAdminSessionRepository{db: db}
}

// Create 创建会话
func (r *GormAdminSessionRepository) Create(session *models.AdminSession) error {
	return r.db.Create(session).Error
}

// GetActiveByToken 根据令牌获取有效会话
// 过期时刻本身视为失效
func (r *GormAdminSessionRepository) GetActiveByToken(token string, now time.Time) (*models.AdminSession, error) {
	var session models.AdminSession
	err := r.db.
		Where("token = ? AND is_active = ? AND expires_at > ?", token, true, now).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// Deactivate 注销指定令牌的会话
func (r *GormAdminSessionRepository) Deactivate(token string) (int64, error) {
	result := r.db.Model(&models.AdminSession{}).
		Where("token = ? AND is_active = ?", token, true).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

// DeactivateByAdminID 注销某管理员的全部会话
func (r *GormAdminSessionRepository) DeactivateByAdminID(adminID uint) (int64, error) {
	result := r.db.Model(&models.AdminSession{}).
		Where("admin_id = ? AND is_active = ?", adminID, true).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

// DeleteExpired 清理过期会话行
func (r *GormAdminSessionRepository) DeleteExpired(before time.Time) (int64, error) {
	result := r.db.Where("expires_at <= ?", before).Delete(&models.AdminSession{})
	return result.RowsAffected, result.Error
}
