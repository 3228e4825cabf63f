package models

import "time"

// ShopUser 商城用户表
type ShopUser struct {
	ID           uint       `gorm:"primarykey" json:"id"`              // 主键
	FullName     string     `gorm:"not null" json:"full_name"`         // 姓名
	Email        string     `gorm:"uniqueIndex;not null" json:"email"` // 邮箱
	PasswordHash string     `gorm:"not null" json:"-"`                 // 密码哈希（不返回给前端）
	Phone        string     `gorm:"default:''" json:"phone"`           // 电话
	Address      string     `gorm:"type:text" json:"address"`          // 收货地址
	IsActive     bool       `gorm:"not null" json:"is_active"`         // 账号状态
	LastLoginAt  *time.Time `json:"last_login_at"`                     // 最后登录时间
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`           // 创建时间
	UpdatedAt    time.Time  `json:"updated_at"`                        // 更新时间
}

// TableName 指定表名
func (ShopUser) TableName() string {
	return "shop_users"
}
