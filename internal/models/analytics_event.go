package models

import "time"

// AnalyticsEvent 访问事件表（只追加，匿名写入）
// EventDataJSON 为不透明载荷，系统不解释其内容
type AnalyticsEvent struct {
	ID            uint      `gorm:"primarykey" json:"id"`                // 主键
	EventType     string    `gorm:"not null;index" json:"event_type"`    // 事件类型
	EventDataJSON JSON      `gorm:"type:json" json:"event_data"`         // 事件载荷
	PageURL       string    `gorm:"type:varchar(500)" json:"page_url"`   // 页面地址
	IPAddress     string    `gorm:"index;default:''" json:"ip_address"`  // 客户端 IP（独立访客近似统计用）
	UserAgent     string    `gorm:"type:varchar(500)" json:"user_agent"` // UA
	CreatedAt     time.Time `gorm:"index" json:"created_at"`             // 创建时间
}

// TableName 指定表名
func (AnalyticsEvent) TableName() string {
	return "analytics_events"
}
