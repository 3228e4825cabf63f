package repository

import (
	"errors"

	"github.com/atelier-next/internal/models"

	"gorm.io/gorm"
)

// ProductImageRepository 商品图片数据访问接口
type ProductImageRepository interface {
	ListByProductID(productID uint) ([]models.ProductImage, error)
	GetByID(id uint) (*models.ProductImage, error)
	Create(image *models.ProductImage) error
	Update(image *models.ProductImage) error
	Delete(id uint) error
	DeleteByProductID(productID uint) error
	ClearPrimary(productID uint) error
	WithTx(tx *gorm.DB) ProductImageRepository
}

// GormProductImageRepository GORM 实现
type GormProductImageRepository struct {
	db *gorm.DB
}

// NewProductImageRepository 创建商品图片仓库
func NewProductImageRepository(db *gorm.DB) *GormProductImageRepository {
	return &GormProductImageRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductImageRepository) WithTx(tx *gorm.DB) ProductImageRepository {
	if tx == nil {
		return r
	}
	return &GormProductImageRepository{db: tx}
}

// ListByProductID 获取商品的全部图片
func (r *GormProductImageRepository) ListByProductID(productID uint) ([]models.ProductImage, error) {
	images := make([]models.ProductImage, 0)
	err := r.db.
		Where("product_id = ?", productID).
		Order("is_primary DESC, display_order ASC, id ASC").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

// GetByID 根据 ID 获取图片
func (r *GormProductImageRepository) GetByID(id uint) (*models.ProductImage, error) {
	var image models.ProductImage
	if err := r.db.First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

// Create 创建图片
func (r *GormProductImageRepository) Create(image *models.ProductImage) error {
	return r.db.Create(image).Error
}

// Update 更新图片
func (r *GormProductImageRepository) Update(image *models.ProductImage) error {
	return r.db.Save(image).Error
}

// Delete 删除图片
func (r *GormProductImageRepository) Delete(id uint) error {
	return r.db.Delete(&models.ProductImage{}, id).Error
}

// DeleteByProductID 删除商品的全部图片
func (r *GormProductImageRepository) DeleteByProductID(productID uint) error {
	return r.db.Where("product_id = ?", productID).Delete(&models.ProductImage{}).Error
}

// ClearPrimary 清除商品当前主图标记
func (r *GormProductImageRepository) ClearPrimary(productID uint) error {
	return r.db.Model(&models.ProductImage{}).
		Where("product_id = ? AND is_primary = ?", productID, true).
		Update("is_primary", false).Error
}
