package repository

import (
	"errors"
	"strings"

	"github.com/atelier-next/internal/models"

	"gorm.io/gorm"
)

// ShopUserRepository 商城用户数据访问接口
type ShopUserRepository interface {
	GetByEmail(email string) (*models.ShopUser, error)
	GetByID(id uint) (*models.ShopUser, error)
	List(filter ShopUserListFilter) ([]models.ShopUser, int64, error)
	Create(user *models.ShopUser) error
	Update(user *models.ShopUser) error
}

// GormShopUserRepository GORM 实现
type GormShopUserRepository struct {
	db *gorm.DB
}

// NewShopUserRepository 创建商城用户仓库
func NewShopUserRepository(db *gorm.DB) *GormShopUserRepository {
	return &GormShopUserRepository{db: db}
}

// GetByEmail 根据邮箱获取用户
func (r *GormShopUserRepository) GetByEmail(email string) (*models.ShopUser, error) {
	var user models.ShopUser
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByID 根据 ID 获取用户
func (r *GormShopUserRepository) GetByID(id uint) (*models.ShopUser, error) {
	var user models.ShopUser
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// List 用户列表
func (r *GormShopUserRepository) List(filter ShopUserListFilter) ([]models.ShopUser, int64, error) {
	var users []models.ShopUser

	query := r.db.Model(&models.ShopUser{})
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		like := "%" + keyword + "%"
		operator := likeOperatorByDialect(dbDialectName(r.db))
		query = query.Where("email "+operator+" ? OR full_name "+operator+" ?", like, like)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Create 创建用户
func (r *GormShopUserRepository) Create(user *models.ShopUser) error {
	return r.db.Create(user).Error
}

// Update 更新用户
func (r *GormShopUserRepository) Update(user *models.ShopUser) error {
	return r.db.Save(user).Error
}
