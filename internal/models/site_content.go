package models

import "time"

// SiteContent 站点内容块表
// (section, content_key) 组合唯一，写入走 upsert 语义
type SiteContent struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                                 // 主键
	Section      string    `gorm:"not null;uniqueIndex:idx_site_content_section_key" json:"section"`     // 内容区块
	ContentKey   string    `gorm:"not null;uniqueIndex:idx_site_content_section_key" json:"content_key"` // 区块内键名
	ContentValue string    `gorm:"type:text" json:"content_value"`                                       // 内容值
	ContentType  string    `gorm:"not null;default:'text'" json:"content_type"`                          // 内容类型 text/html/image/json
	UpdatedAt    time.Time `json:"updated_at"`                                                           // 更新时间
}

// TableName 指定表名
func (SiteContent) TableName() string {
	return "site_content"
}
