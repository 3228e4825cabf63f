package repository

import (
	"errors"

	"github.com/atelier-next/internal/models"

	"gorm.io/gorm"
)

// SeoRepository SEO 配置数据访问接口
type SeoRepository interface {
	ListAll() ([]models.SeoSetting, error)
	GetByPage(page string) (*models.SeoSetting, error)
	Upsert(setting *models.SeoSetting) error
	Delete(page string) (int64, error)
}

// GormSeoRepository GORM 实现
type GormSeoRepository struct {
	db *gorm.DB
}

// NewSeoRepository 创建 SEO 配置仓库
func NewSeoRepository(db *gorm.DB) *GormSeoRepository {
	return &GormSeoRepository{db: db}
}

// ListAll 获取全部 SEO 配置
func (r *GormSeoRepository) ListAll() ([]models.SeoSetting, error) {
	settings := make([]models.SeoSetting, 0)
	if err := r.db.Order("page ASC").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// GetByPage 根据页面标识获取 SEO 配置
func (r *GormSeoRepository) GetByPage(page string) (*models.SeoSetting, error) {
	var setting models.SeoSetting
	if err := r.db.Where("page = ?", page).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

// Upsert 按 page 创建或更新
func (r *GormSeoRepository) Upsert(setting *models.SeoSetting) error {
	existing, err := r.GetByPage(setting.Page)
	if err != nil {
		return err
	}
	if existing == nil {
		return r.db.Create(setting).Error
	}
	existing.Title = setting.Title
	existing.Description = setting.Description
	existing.Keywords = setting.Keywords
	existing.OGImage = setting.OGImage
	existing.CanonicalURL = setting.CanonicalURL
	if err := r.db.Save(existing).Error; err != nil {
		return err
	}
	*setting = *existing
	return nil
}

// Delete 删除 SEO 配置
func (r *GormSeoRepository) Delete(page string) (int64, error) {
	result := r.db.Where("page = ?", page).Delete(&models.SeoSetting{})
	return result.RowsAffected, result.Error
}
