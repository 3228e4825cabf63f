package repository

import (
	"strings"

	"github.com/atelier-next/internal/models"

	"gorm.io/gorm"
)

// InventoryHistoryRepository 库存流水数据访问接口
type InventoryHistoryRepository interface {
	List(filter InventoryHistoryFilter) ([]models.InventoryHistory, int64, error)
	Create(history *models.InventoryHistory) error
	WithTx(tx *gorm.DB) InventoryHistoryRepository
}

// GormInventoryHistoryRepository GORM 实现
type GormInventoryHistoryRepository struct {
	db *gorm.DB
}

// NewInventoryHistoryRepository 创建库存流水仓库
func NewInventoryHistoryRepository(db *gorm.DB) *GormInventoryHistoryRepository {
	return &GormInventoryHistoryRepository{db: db}
}

// WithTx 绑定事务
func (r *GormInventoryHistoryRepository) WithTx(tx *gorm.DB) InventoryHistoryRepository {
	if tx == nil {
		return r
	}
	return &GormInventoryHistoryRepository{db: tx}
}

// List 库存流水列表
func (r *GormInventoryHistoryRepository) List(filter InventoryHistoryFilter) ([]models.InventoryHistory, int64, error) {
	var rows []models.InventoryHistory

	query := r.db.Model(&models.InventoryHistory{})
	if filter.ProductID > 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if changeType := strings.TrimSpace(filter.ChangeType); changeType != "" {
		query = query.Where("change_type = ?", changeType)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Create 写入库存流水
func (r *GormInventoryHistoryRepository) Create(history *models.InventoryHistory) error {
	return r.db.Create(history).Error
}
