package repository

import (
	"github.com/atelier-next/internal/models"

	"gorm.io/gorm"
)

// AIConversationRepository AI 对话历史数据访问接口
type AIConversationRepository interface {
	Create(conversation *models.AIConversation) error
	ListRecent(filter AIConversationFilter) ([]models.AIConversation, error)
}

// GormAIConversationRepository GORM 实现
type GormAIConversationRepository struct {
	db *gorm.DB
}

// NewAIConversationRepository 创建 AI 对话仓库
func NewAIConversationRepository(db *gorm.DB) *GormAIConversationRepository {
	return &GormAIConversationRepository{db: db}
}

// Create 写入对话记录
func (r *GormAIConversationRepository) Create(conversation *models.AIConversation) error {
	return r.db.Create(conversation).Error
}

// ListRecent 获取最近的对话记录，按时间倒序
func (r *GormAIConversationRepository) ListRecent(filter AIConversationFilter) ([]models.AIConversation, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	rows := make([]models.AIConversation, 0)
	query := r.db.Model(&models.AIConversation{})
	if filter.AdminID > 0 {
		query = query.Where("admin_id = ?", filter.AdminID)
	}
	err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
