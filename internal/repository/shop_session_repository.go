package repository

import (
	"errors"
	"time"

	"github.com/atelier-next/internal/models"

	"gorm.io/gorm"
)

// ShopSessionRepository 商城用户会话数据访问接口
type ShopSessionRepository interface {
	Create(session *models.ShopSession) error
	GetActiveByToken(token string, now time.Time) (*models.ShopSession, error)
	Deactivate(token string) (int64, error)
	DeactivateByUserID(userID uint) (int64, error)
	DeleteExpired(before time.Time) (int64, error)
}

// GormShopSessionRepository GORM 实现
type GormShopSessionRepository struct {
	db *gorm.DB
}

// NewShopSessionRepository 创建商城会话仓库
func NewShopSessionRepository(db *gorm.DB) *GormShopSessionRepository {
	return &GormShopSessionRepository{db: db}
}

// Create 创建会话
func (r *GormShopSessionRepository) Create(session *models.ShopSession) error {
	return r.db.Create(session).Error
}

// GetActiveByToken 根据令牌获取有效会话
func (r *GormShopSessionRepository) GetActiveByToken(token string, now time.Time) (*models.ShopSession, error) {
	var session models.ShopSession
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
func (r *GormShopSessionRepository) Deactivate(token string) (int64, error) {
	result := r.db.Model(&models.ShopSession{}).
		Where("token = ? AND is_active = ?", token, true).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

// DeactivateByUserID 注销某用户的全部会话
func (r *GormShopSessionRepository) DeactivateByUserID(userID uint) (int64, error) {
	result := r.db.Model(&models.ShopSession{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

// DeleteExpired 清理过期会话行
func (r *GormShopSessionRepository) DeleteExpired(before time.Time) (int64, error) {
	result := r.db.Where("expires_at <= ?", before).Delete(&models.ShopSession{})
	return result.RowsAffected, result.Error
}
