package models

import "time"

// AdminSession 管理员会话表
// Token 为不透明高熵凭证，校验时同时检查 is_active 与 expires_at
type AdminSession struct {
	ID        uint      `gorm:"primarykey" json:"id"`             // 主键
	AdminID   uint      `gorm:"not null;index" json:"admin_id"`   // 所属管理员
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`    // 会话令牌（不返回给前端）
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"` // 过期时间
	IsActive  bool      `gorm:"not null" json:"-"`                // 是否有效（登出置为 false）
	CreatedAt time.Time `gorm:"index" json:"created_at"`          // 创建时间
}

// TableName 指定表名
func (AdminSession) TableName() string {
	return "admin_sessions"
}
