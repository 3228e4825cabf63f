package service

import (
	"strings"

	"github.com/atelier-next/internal/constants"
	"github.com/atelier-next/internal/models"
	"github.com/atelier-next/internal/repository"
)

// SiteContentInput 站点内容写入入参
type SiteContentInput struct {
	Section      string
	ContentKey   string
	ContentValue string
	ContentType  string
}

// ContentService 站点内容服务
// 按 (section, content_key) 组织键值内容，写入即 upsert
type ContentService struct {
	contentRepo repository.SiteContentRepository
}

// NewContentService 创建站点内容服务实例
func NewContentService(contentRepo repository.SiteContentRepository) *ContentService {
	return &ContentService{contentRepo: contentRepo}
}

func validContentType(contentType string) bool {
	switch contentType {
	case constants.ContentTypeText, constants.ContentTypeHTML, constants.ContentTypeImage, constants.ContentTypeJSON:
		return true
	}
	return false
}

// ListAll 获取全部内容，按区块分组
func (s *ContentService) ListAll() (map[string][]models.SiteContent, error) {
	rows, err := s.contentRepo.ListAll()
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]models.SiteContent)
	for _, row := range rows {
		grouped[row.Section] = append(grouped[row.Section], row)
	}
	return grouped, nil
}

// GetSection 获取某区块内容，返回键值映射
func (s *ContentService) GetSection(section string) (map[string]models.SiteContent, error) {
	section = strings.TrimSpace(section)
	if section == "" {
		return nil, ErrInvalidParams
	}
	rows, err := s.contentRepo.ListBySection(section)
	if err != nil {
		return nil, err
	}
	result := make(map[string]models.SiteContent, len(rows))
	for _, row := range rows {
		result[row.ContentKey] = row
	}
	return result, nil
}

// Upsert 写入内容
func (s *ContentService) Upsert(input SiteContentInput) (*models.SiteContent, error) {
	section := strings.TrimSpace(input.Section)
	key := strings.TrimSpace(input.ContentKey)
	if section == "" || key == "" {
		return nil, ErrInvalidParams
	}
	contentType := strings.TrimSpace(input.ContentType)
	if contentType == "" {
		contentType = constants.ContentTypeText
	}
	if !validContentType(contentType) {
		return nil, ErrInvalidParams
	}

	content := &models.SiteContent{
		Section:      section,
		ContentKey:   key,
		ContentValue: input.ContentValue,
		ContentType:  contentType,
	}
	if err := s.contentRepo.Upsert(content); err != nil {
		return nil, err
	}
	return content, nil
}

// Delete 删除内容
func (s *ContentService) Delete(section, key string) error {
	affected, err := s.contentRepo.Delete(strings.TrimSpace(section), strings.TrimSpace(key))
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
