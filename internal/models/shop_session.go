package models

import "time"

// ShopSession 商城用户会话表
// 与管理员会话使用独立表，令牌命名空间互不相通
type ShopSession struct {
	ID        uint      `gorm:"primarykey" json:"id"`             // 主键
	UserID    uint      `gorm:"not null;index" json:"user_id"`    // 所属用户
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`    // 会话令牌（不返回给前端）
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"` // 过期时间
	IsActive  bool      `gorm:"not null" json:"-"`                // 是否有效
	CreatedAt time.Time `gorm:"index" json:"created_at"`          // 创建时间
}

// TableName 指定表名
func (ShopSession) TableName() string {
	return "shop_sessions"
}
