package repository

import (
	"errors"
	"strings"

	"github.com/atelier-next/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	ListByIDs(ids []uint) ([]models.Product, error)
	ListCategories(onlyAvailable bool) ([]string, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	AdjustStock(productID uint, delta int) (int64, error)
	SetStock(productID uint, quantity int) (int64, error)
	DecrementStock(productID uint, quantity int) (int64, error)
	ListLowStock(threshold int) ([]models.Product, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product

	query := r.db.Model(&models.Product{})
	if filter.WithDetails {
		query = query.
			Preload("Attributes", func(db *gorm.DB) *gorm.DB {
				return db.Order("id ASC")
			}).
			Preload("Images", func(db *gorm.DB) *gorm.DB {
				return db.Order("is_primary DESC, display_order ASC, id ASC")
			})
	}
	if filter.OnlyAvailable {
		query = query.Where("is_available = ?", true)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		condition, argCount := buildLocalizedLikeCondition(r.db, []string{"category"}, []string{"name_json", "description_json"})
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetByID 根据 ID 获取商品
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.
		Preload("Attributes", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_primary DESC, display_order ASC, id ASC")
		}).
		First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// ListByIDs 批量获取商品
func (r *GormProductRepository) ListByIDs(ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListCategories 获取去重后的分类列表
func (r *GormProductRepository) ListCategories(onlyAvailable bool) ([]string, error) {
	query := r.db.Model(&models.Product{}).
		Where("category IS NOT NULL AND category != ''").
		Distinct("category").
		Order("category ASC")
	if onlyAvailable {
		query = query.Where("is_available = ?", true)
	}
	categories := make([]string, 0)
	if err := query.Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete 下架商品（软删除），行保留，历史订单仍可按 id 取到
func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Model(&models.Product{}).
		Where("id = ?", id).
		Update("is_available", false).Error
}

// AdjustStock 按增量调整库存，减库存时校验余量充足
func (r *GormProductRepository) AdjustStock(productID uint, delta int) (int64, error) {
	if productID == 0 || delta == 0 {
		return 0, errors.New("invalid stock adjust params")
	}
	query := r.db.Model(&models.Product{}).Where("id = ?", productID)
	if delta < 0 {
		query = query.Where("stock_quantity >= ?", -delta)
	}
	result := query.Update("stock_quantity", gorm.Expr("stock_quantity + ?", delta))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// SetStock 将库存写为绝对数量
func (r *GormProductRepository) SetStock(productID uint, quantity int) (int64, error) {
	if productID == 0 || quantity < 0 {
		return 0, errors.New("invalid stock set params")
	}
	result := r.db.Model(&models.Product{}).
		Where("id = ?", productID).
		Update("stock_quantity", quantity)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DecrementStock 下单扣减库存，余量不足时不更新
func (r *GormProductRepository) DecrementStock(productID uint, quantity int) (int64, error) {
	if productID == 0 || quantity <= 0 {
		return 0, errors.New("invalid stock decrement params")
	}
	result := r.db.Model(&models.Product{}).
		Where("id = ? AND stock_quantity >= ?", productID, quantity).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ListLowStock 获取低库存商品
func (r *GormProductRepository) ListLowStock(threshold int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.
		Where("is_available = ? AND stock_quantity <= ?", true, threshold).
		Order("stock_quantity ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
