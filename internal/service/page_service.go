package service

import (
	"strings"

	"github.com/atelier-next/internal/models"
	"github.com/atelier-next/internal/repository"
)

// SitePageInput 页面写入入参
type SitePageInput struct {
	PageKey     string
	Title       models.JSON
	Content     models.JSON
	IsPublished *bool
	UpdatedBy   *uint
}

// PageService 自定义页面服务
type PageService struct {
	pageRepo repository.SitePageRepository
}

// NewPageService 创建页面服务实例
func NewPageService(pageRepo repository.SitePageRepository) *PageService {
	return &PageService{pageRepo: pageRepo}
}

// ListAll 获取全部页面（含未发布）
func (s *PageService) ListAll() ([]models.SitePage, error) {
	return s.pageRepo.ListAll()
}

// ListPublished 获取已发布页面
func (s *PageService) ListPublished() ([]models.SitePage, error) {
	return s.pageRepo.ListPublished()
}

// GetByKey 获取页面
// publishedOnly 为 true 时未发布页面视为不存在
func (s *PageService) GetByKey(pageKey string, publishedOnly bool) (*models.SitePage, error) {
	page, err := s.pageRepo.GetByKey(strings.TrimSpace(pageKey))
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, ErrNotFound
	}
	if publishedOnly && !page.IsPublished {
		return nil, ErrNotFound
	}
	return page, nil
}

// Upsert 按 page_key 写入页面
func (s *PageService) Upsert(input SitePageInput) (*models.SitePage, error) {
	pageKey := strings.TrimSpace(input.PageKey)
	if pageKey == "" || len(input.Title) == 0 {
		return nil, ErrInvalidParams
	}

	published := true
	if input.IsPublished != nil {
		published = *input.IsPublished
	}
	page := &models.SitePage{
		PageKey:     pageKey,
		TitleJSON:   input.Title,
		ContentJSON: input.Content,
		IsPublished: published,
		UpdatedBy:   input.UpdatedBy,
	}
	if err := s.pageRepo.Upsert(page); err != nil {
		return nil, err
	}
	return page, nil
}

// Delete 删除页面
func (s *PageService) Delete(pageKey string) error {
	affected, err := s.pageRepo.Delete(strings.TrimSpace(pageKey))
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
