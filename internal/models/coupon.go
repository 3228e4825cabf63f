package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon 优惠券表
type Coupon struct {
	ID            uint           `gorm:"primarykey" json:"id"`                              // 主键
	Code          string         `gorm:"uniqueIndex;not null" json:"code"`                  // 优惠码
	DiscountType  string         `gorm:"not null" json:"discount_type"`                     // 折扣类型 percentage/fixed
	DiscountValue Money          `gorm:"type:decimal(20,2);not null" json:"discount_value"` // 折扣值
	MinPurchase   Money          `gorm:"type:decimal(20,2);default:0" json:"min_purchase"`  // 最低消费金额
	MaxDiscount   *Money         `gorm:"type:decimal(20,2)" json:"max_discount"`            // 最高优惠上限（percentage 生效）
	UsageLimit    *int           `json:"usage_limit"`                                       // 总使用次数上限（nil 不限）
	UsedCount     int            `gorm:"not null;default:0" json:"used_count"`              // 已使用次数
	ValidFrom     *time.Time     `json:"valid_from"`                                        // 生效时间
	ValidUntil    *time.Time     `json:"valid_until"`                                       // 失效时间
	IsActive      bool           `gorm:"not null;index" json:"is_active"`                   // 是否启用
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                           // 创建时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                    // 软删除时间
}

// TableName 指定表名
func (Coupon) TableName() string {
	return "coupons"
}
