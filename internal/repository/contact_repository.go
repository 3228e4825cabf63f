package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/atelier-next/internal/models"

	"gorm.io/gorm"
)

// ContactRepository 联系表单数据访问接口
type ContactRepository interface {
	List(filter ContactListFilter) ([]models.Contact, int64, error)
	GetByID(id uint) (*models.Contact, error)
	Create(contact *models.Contact) error
	UpdateStatus(id uint, status string) (int64, error)
	Delete(id uint) (int64, error)
	CountByStatus(status string) (int64, error)
}

// GormContactRepository GORM 实现
type GormContactRepository struct {
	db *gorm.DB
}

// NewContactRepository 创建联系表单仓库
func NewContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// List 联系表单列表
func (r *GormContactRepository) List(filter ContactListFilter) ([]models.Contact, int64, error) {
	var contacts []models.Contact

	query := r.db.Model(&models.Contact{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		operator := likeOperatorByDialect(dbDialectName(r.db))
		query = query.Where(
			"name "+operator+" ? OR email "+operator+" ? OR subject "+operator+" ?",
			like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("created_at DESC").Find(&contacts).Error; err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}

// GetByID 根据 ID 获取联系记录
func (r *GormContactRepository) GetByID(id uint) (*models.Contact, error) {
	var contact models.Contact
	if err := r.db.First(&contact, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &contact, nil
}

// Create 创建联系记录
func (r *GormContactRepository) Create(contact *models.Contact) error {
	return r.db.Create(contact).Error
}

// UpdateStatus 更新处理状态
func (r *GormContactRepository) UpdateStatus(id uint, status string) (int64, error) {
	result := r.db.Model(&models.Contact{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

// Delete 删除联系记录
func (r *GormContactRepository) Delete(id uint) (int64, error) {
	result := r.db.Delete(&models.Contact{}, id)
	return result.RowsAffected, result.Error
}

// CountByStatus 按状态统计数量
func (r *GormContactRepository) CountByStatus(status string) (int64, error) {
	var count int64
	query := r.db.Model(&models.Contact{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
