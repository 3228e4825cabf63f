package repository

import (
	"errors"

	"github.com/atelier-next/internal/models"

	"gorm.io/gorm"
)

// SiteContentRepository 站点内容数据访问接口
type SiteContentRepository interface {
	ListAll() ([]models.SiteContent, error)
	ListBySection(section string) ([]models.SiteContent, error)
	Get(section, key string) (*models.SiteContent, error)
	Upsert(content *models.SiteContent) error
	Delete(section, key string) (int64, error)
}

// GormSiteContentRepository GORM 实现
type GormSiteContentRepository struct {
	db *gorm.DB
}

// NewSiteContentRepository 创建站点内容仓库
func NewSiteContentRepository(db *gorm.DB) *GormSiteContentRepository {
	return &GormSiteContentRepository{db: db}
}

// ListAll 获取全部内容
func (r *GormSiteContentRepository) ListAll() ([]models.SiteContent, error) {
	rows := make([]models.SiteContent, 0)
	err := r.db.Order("section ASC, content_key ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListBySection 获取某区块的全部内容
func (r *GormSiteContentRepository) ListBySection(section string) ([]models.SiteContent, error) {
	rows := make([]models.SiteContent, 0)
	err := r.db.Where("section = ?", section).Order("content_key ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Get 获取单条内容
func (r *GormSiteContentRepository) Get(section, key string) (*models.SiteContent, error) {
	var row models.SiteContent
	err := r.db.Where("section = ? AND content_key = ?", section, key).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Upsert 按 (section, content_key) 创建或更新
func (r *GormSiteContentRepository) Upsert(content *models.SiteContent) error {
	existing, err := r.Get(content.Section, content.ContentKey)
	if err != nil {
		return err
	}
	if existing == nil {
		return r.db.Create(content).Error
	}
	existing.ContentValue = content.ContentValue
	if content.ContentType != "" {
		existing.ContentType = content.ContentType
	}
	if err := r.db.Save(existing).Error; err != nil {
		return err
	}
	*content = *existing
	return nil
}

// Delete 删除单条内容
func (r *GormSiteContentRepository) Delete(section, key string) (int64, error) {
	result := r.db.Where("section = ? AND content_key = ?", section, key).Delete(&models.SiteContent{})
	return result.RowsAffected, result.Error
}
