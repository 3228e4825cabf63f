package service

import (
	"strings"

	"github.com/atelier-next/internal/models"
	"github.com/atelier-next/internal/repository"
)

// SeoSettingInput SEO 配置写入入参
type SeoSettingInput struct {
	Page         string
	Title        string
	Description  string
	Keywords     models.StringArray
	OGImage      string
	CanonicalURL string
}

// SeoService SEO 配置服务
type SeoService struct {
	seoRepo repository.SeoRepository
}

// NewSeoService 创建 SEO 服务实例
func NewSeoService(seoRepo repository.SeoRepository) *SeoService {
	return &SeoService{seoRepo: seoRepo}
}

// ListAll 获取全部 SEO 配置
func (s *SeoService) ListAll() ([]models.SeoSetting, error) {
	return s.seoRepo.ListAll()
}

// GetByPage 获取页面 SEO 配置
func (s *SeoService) GetByPage(page string) (*models.SeoSetting, error) {
	setting, err := s.seoRepo.GetByPage(strings.TrimSpace(page))
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, ErrNotFound
	}
	return setting, nil
}

// Upsert 按 page 写入 SEO 配置
func (s *SeoService) Upsert(input SeoSettingInput) (*models.SeoSetting, error) {
	page := strings.TrimSpace(input.Page)
	if page == "" {
		return nil, ErrInvalidParams
	}

	setting := &models.SeoSetting{
		Page:         page,
		Title:        strings.TrimSpace(input.Title),
		Description:  strings.TrimSpace(input.Description),
		Keywords:     input.Keywords,
		OGImage:      strings.TrimSpace(input.OGImage),
		CanonicalURL: strings.TrimSpace(input.CanonicalURL),
	}
	if err := s.seoRepo.Upsert(setting); err != nil {
		return nil, err
	}
	return setting, nil
}

// Delete 删除 SEO 配置
func (s *SeoService) Delete(page string) error {
	affected, err := s.seoRepo.Delete(strings.TrimSpace(page))
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
