package repository

import (
	"errors"

	"github.com/atelier-next/internal/models"

	"gorm.io/gorm"
)

// SitePageRepository 页面数据访问接口
type SitePageRepository interface {
	ListAll() ([]models.SitePage, error)
	ListPublished() ([]models.SitePage, error)
	GetByKey(pageKey string) (*models.SitePage, error)
	Upsert(page *models.SitePage) error
	Delete(pageKey string) (int64, error)
}

// GormSitePageRepository GORM 实现
type GormSitePageRepository struct {
	db *gorm.DB
}

// NewSitePageRepository 创建页面仓库
func NewSitePageRepository(db *gorm.DB) *GormSitePageRepository {
	return &GormSitePageRepository{db: db}
}

// ListAll 获取全部页面
func (r *GormSitePageRepository) ListAll() ([]models.SitePage, error) {
	pages := make([]models.SitePage, 0)
	if err := r.db.Order("page_key ASC").Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

// ListPublished 获取已发布页面
func (r *GormSitePageRepository) ListPublished() ([]models.SitePage, error) {
	pages := make([]models.SitePage, 0)
	err := r.db.Where("is_published = ?", true).Order("page_key ASC").Find(&pages).Error
	if err != nil {
		return nil, err
	}
	return pages, nil
}

// GetByKey 根据页面键获取页面
func (r *GormSitePageRepository) GetByKey(pageKey string) (*models.SitePage, error) {
	var page models.SitePage
	if err := r.db.Where("page_key = ?", pageKey).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &page, nil
}

// Upsert 按 page_key 创建或更新
func (r *GormSitePageRepository) Upsert(page *models.SitePage) error {
	existing, err := r.GetByKey(page.PageKey)
	if err != nil {
		return err
	}
	if existing == nil {
		return r.db.Create(page).Error
	}
	existing.TitleJSON = page.TitleJSON
	existing.ContentJSON = page.ContentJSON
	existing.IsPublished = page.IsPublished
	existing.UpdatedBy = page.UpdatedBy
	if err := r.db.Save(existing).Error; err != nil {
		return err
	}
	*page = *existing
	return nil
}

// Delete 删除页面
func (r *GormSitePageRepository) Delete(pageKey string) (int64, error) {
	result := r.db.Where("page_key = ?", pageKey).Delete(&models.SitePage{})
	return result.RowsAffected, result.Error
}
