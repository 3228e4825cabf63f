package repository

import (
	"errors"

	"github.com/atelier-next/internal/models"

	"gorm.io/gorm"
)

// ProductAttributeRepository 商品属性数据访问接口
type ProductAttributeRepository interface {
	ListByProductID(productID uint) ([]models.ProductAttribute, error)
	GetByID(id uint) (*models.ProductAttribute, error)
	Create(attribute *models.ProductAttribute) error
	Update(attribute *models.ProductAttribute) error
	Delete(id uint) error
	DeleteByProductID(productID uint) error
	WithTx(tx *gorm.DB) ProductAttributeRepository
}

// GormProductAttributeRepository GORM 实现
type GormProductAttributeRepository struct {
	db *gorm.DB
}

// NewProductAttributeRepository 创建商品属性仓库
func NewProductAttributeRepository(db *gorm.DB) *GormProductAttributeRepository {
	return &GormProductAttributeRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductAttributeRepository) WithTx(tx *gorm.DB) ProductAttributeRepository {
	if tx == nil {
		return r
	}
	return &GormProductAttributeRepository{db: tx}
}

// ListByProductID 获取商品的全部属性
func (r *GormProductAttributeRepository) ListByProductID(productID uint) ([]models.ProductAttribute, error) {
	attributes := make([]models.ProductAttribute, 0)
	err := r.db.Where("product_id = ?", productID).Order("id ASC").Find(&attributes).Error
	if err != nil {
		return nil, err
	}
	return attributes, nil
}

// GetByID 根据 ID 获取属性
func (r *GormProductAttributeRepository) GetByID(id uint) (*models.ProductAttribute, error) {
	var attribute models.ProductAttribute
	if err := r.db.First(&attribute, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attribute, nil
}

// Create 创建属性
func (r *GormProductAttributeRepository) Create(attribute *models.ProductAttribute) error {
	return r.db.Create(attribute).Error
}

// Update 更新属性
func (r *GormProductAttributeRepository) Update(attribute *models.ProductAttribute) error {
	return r.db.Save(attribute).Error
}

// Delete 删除属性
func (r *GormProductAttributeRepository) Delete(id uint) error {
	return r.db.Delete(&models.ProductAttribute{}, id).Error
}

// DeleteByProductID 删除商品的全部属性
func (r *GormProductAttributeRepository) DeleteByProductID(productID uint) error {
	return r.db.Where("product_id = ?", productID).Delete(&models.ProductAttribute{}).Error
}
