package repository

import (
	"errors"
	"strings"

	"github.com/atelier-next/internal/models"

	"gorm.io/gorm"
)

// NewsletterRepository 邮件订阅数据访问接口
type NewsletterRepository interface {
	List(filter NewsletterListFilter) ([]models.NewsletterSubscriber, int64, error)
	GetByEmail(email string) (*models.NewsletterSubscriber, error)
	Create(subscriber *models.NewsletterSubscriber) error
	Update(subscriber *models.NewsletterSubscriber) error
	CountActive() (int64, error)
}

// GormNewsletterRepository GORM 实现
type GormNewsletterRepository struct {
	db *gorm.DB
}

// NewNewsletterRepository 创建邮件订阅仓库
func NewNewsletterRepository(db *gorm.DB) *GormNewsletterRepository {
	return &GormNewsletterRepository{db: db}
}

// List 订阅列表
func (r *GormNewsletterRepository) List(filter NewsletterListFilter) ([]models.NewsletterSubscriber, int64, error) {
	var subscribers []models.NewsletterSubscriber

	query := r.db.Model(&models.NewsletterSubscriber{})
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("subscribed_at DESC").Find(&subscribers).Error; err != nil {
		return nil, 0, err
	}
	return subscribers, total, nil
}

// GetByEmail 根据邮箱获取订阅记录（大小写不敏感）
func (r *GormNewsletterRepository) GetByEmail(email string) (*models.NewsletterSubscriber, error) {
	var subscriber models.NewsletterSubscriber
	normalized := strings.ToLower(strings.TrimSpace(email))
	err := r.db.Where("LOWER(email) = ?", normalized).First(&subscriber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subscriber, nil
}

// Create 创建订阅记录
func (r *GormNewsletterRepository) Create(subscriber *models.NewsletterSubscriber) error {
	return r.db.Create(subscriber).Error
}

// Update 更新订阅记录
func (r *GormNewsletterRepository) Update(subscriber *models.NewsletterSubscriber) error {
	return r.db.Save(subscriber).Error
}

// CountActive 统计有效订阅数量
func (r *GormNewsletterRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.NewsletterSubscriber{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}
