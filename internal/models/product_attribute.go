package models

import "time"

// ProductAttribute 商品规格表（颜色、尺寸等变体）
type ProductAttribute struct {
	ID              uint      `gorm:"primarykey" json:"id"`                                 // 主键
	ProductID       uint      `gorm:"not null;index" json:"product_id"`                     // 所属商品
	Name            string    `gorm:"not null" json:"name"`                                 // 规格名（如 color）
	Value           string    `gorm:"not null" json:"value"`                                // 规格值（如 blue）
	PriceAdjustment Money     `gorm:"type:decimal(20,2);default:0" json:"price_adjustment"` // 价格增减
	StockQuantity   int       `gorm:"not null;default:0" json:"stock_quantity"`             // 规格库存
	SKU             string    `gorm:"default:''" json:"sku"`                                // 规格编码
	IsAvailable     bool      `gorm:"not null;index" json:"is_available"`                   // 上架状态（软删除标记）
	CreatedAt       time.Time `json:"created_at"`                                           // 创建时间
	UpdatedAt       time.Time `json:"updated_at"`                                           // 更新时间
}

// TableName 指定表名
func (ProductAttribute) TableName() string {
	return "product_attributes"
}
