package models

import "time"

// AIConversation AI 对话记录表（只追加）
type AIConversation struct {
	ID         uint      `gorm:"primarykey" json:"id"`                  // 主键
	AdminID    uint      `gorm:"not null;index" json:"admin_id"`        // 发起的管理员
	Message    string    `gorm:"type:text;not null" json:"message"`     // 管理员输入
	Response   string    `gorm:"type:text" json:"response"`             // 模型回复
	Model      string    `gorm:"default:''" json:"model"`               // 使用的模型
	TokensUsed int       `gorm:"not null;default:0" json:"tokens_used"` // 消耗 token 数
	CreatedAt  time.Time `gorm:"index" json:"created_at"`               // 创建时间
}

// TableName 指定表名
func (AIConversation) TableName() string {
	return "ai_conversations"
}
