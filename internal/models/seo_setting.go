package models

import "time"

// SeoSetting SEO 设置表，每个逻辑页面一行
type SeoSetting struct {
	ID           uint        `gorm:"primarykey" json:"id"`                   // 主键
	Page         string      `gorm:"uniqueIndex;not null" json:"page"`       // 页面标识
	Title        string      `gorm:"default:''" json:"title"`                // meta title
	Description  string      `gorm:"type:text" json:"description"`           // meta description
	Keywords     StringArray `gorm:"type:json" json:"keywords"`              // 关键词列表
	OGImage      string      `gorm:"type:varchar(500)" json:"og_image"`      // Open Graph 图片
	CanonicalURL string      `gorm:"type:varchar(500)" json:"canonical_url"` // 规范链接
	UpdatedAt    time.Time   `json:"updated_at"`                             // 更新时间
}

// TableName 指定表名
func (SeoSetting) TableName() string {
	return "seo_settings"
}
