package models

import "time"

// NewsletterSubscriber 邮件订阅表
// 退订保留行并记录时间，重复订阅同一邮箱重新激活
type NewsletterSubscriber struct {
	ID             uint       `gorm:"primarykey" json:"id"`              // 主键
	Email          string     `gorm:"uniqueIndex;not null" json:"email"` // 订阅邮箱
	IsActive       bool       `gorm:"not null" json:"is_active"`         // 订阅状态
	SubscribedAt   time.Time  `json:"subscribed_at"`                     // 订阅时间
	UnsubscribedAt *time.Time `json:"unsubscribed_at"`                   // 退订时间
}

// TableName 指定表名
func (NewsletterSubscriber) TableName() string {
	return "newsletter_subscribers"
}
