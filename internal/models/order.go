package models

import "time"

// Order 订单表
// OrderNumber 全局唯一，格式 ORD-<yyyyMMddHHmmss>-<4 位随机数字>
type Order struct {
	ID              uint        `gorm:"primarykey" json:"id"`                                // 主键
	OrderNumber     string      `gorm:"uniqueIndex;not null" json:"order_number"`            // 订单号
	CustomerName    string      `gorm:"not null" json:"customer_name"`                       // 客户姓名
	CustomerEmail   string      `gorm:"not null;index" json:"customer_email"`                // 客户邮箱
	CustomerPhone   string      `gorm:"default:''" json:"customer_phone"`                    // 客户电话
	ShippingAddress string      `gorm:"type:text" json:"shipping_address"`                   // 收货地址
	TotalAmount     Money       `gorm:"type:decimal(20,2);not null" json:"total_amount"`     // 应付总额（已扣减优惠）
	DiscountAmount  Money       `gorm:"type:decimal(20,2);default:0" json:"discount_amount"` // 优惠金额
	CouponCode      string      `gorm:"default:''" json:"coupon_code"`                       // 使用的优惠码
	PaymentMethod   string      `gorm:"default:''" json:"payment_method"`                    // 支付方式（仅记录，不执行）
	PaymentStatus   string      `gorm:"not null;default:'unpaid'" json:"payment_status"`     // 支付状态
	Status          string      `gorm:"not null;default:'pending';index" json:"status"`      // 订单状态
	Notes           string      `gorm:"type:text" json:"notes"`                              // 备注
	Items           []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedAt       time.Time   `gorm:"index" json:"created_at"` // 创建时间
	UpdatedAt       time.Time   `json:"updated_at"`              // 更新时间
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
