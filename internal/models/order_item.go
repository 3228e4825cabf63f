package models

import "time"

// OrderItem 订单明细表
// 名称与单价为下单时刻的快照，创建后不再更新
type OrderItem struct {
	ID          uint      `gorm:"primarykey" json:"id"`                     // 主键
	OrderID     uint      `gorm:"not null;index" json:"order_id"`           // 所属订单
	ProductID   uint      `gorm:"not null;index" json:"product_id"`         // 商品 ID
	ProductName string    `gorm:"not null" json:"product_name"`             // 商品名称快照
	Quantity    int       `gorm:"not null" json:"quantity"`                 // 数量
	Price       Money     `gorm:"type:decimal(20,2);not null" json:"price"` // 单价快照（服务端权威价格）
	CreatedAt   time.Time `json:"created_at"`                               // 创建时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
