package models

import "time"

// SitePage 站点页面表
// PageKey 唯一，写入走 upsert 语义
type SitePage struct {
	ID          uint      `gorm:"primarykey" json:"id"`                 // 主键
	PageKey     string    `gorm:"uniqueIndex;not null" json:"page_key"` // 页面标识
	TitleJSON   JSON      `gorm:"type:json;not null" json:"title"`      // 多语言标题
	ContentJSON JSON      `gorm:"type:json" json:"content"`             // 多语言正文
	IsPublished bool      `gorm:"not null" json:"is_published"`         // 是否发布
	UpdatedBy   *uint     `json:"updated_by"`                           // 最后编辑的管理员
	CreatedAt   time.Time `json:"created_at"`                           // 创建时间
	UpdatedAt   time.Time `json:"updated_at"`                           // 更新时间
}

// TableName 指定表名
func (SitePage) TableName() string {
	return "site_pages"
}
