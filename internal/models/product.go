package models

import "time"

// Product 商品表
// NameJSON/DescriptionJSON 为多语言内容（fa 为默认语言，en 可选）
type Product struct {
	ID              uint               `gorm:"primarykey" json:"id"`                     // 主键
	NameJSON        JSON               `gorm:"type:json;not null" json:"name"`           // 多语言名称
	DescriptionJSON JSON               `gorm:"type:json" json:"description"`             // 多语言描述
	Price           Money              `gorm:"type:decimal(20,2);not null" json:"price"` // 单价
	Category        string             `gorm:"index;default:''" json:"category"`         // 分类（自由文本，列表接口去重）
	ImageURL        string             `gorm:"type:varchar(500)" json:"image_url"`       // 主图地址
	StockQuantity   int                `gorm:"not null;default:0" json:"stock_quantity"` // 库存数量
	IsAvailable     bool               `gorm:"not null;index" json:"is_available"`       // 上架状态（软删除标记）
	Attributes      []ProductAttribute `gorm:"foreignKey:ProductID" json:"attributes,omitempty"`
	Images          []ProductImage     `gorm:"foreignKey:ProductID" json:"images,omitempty"`
	CreatedAt       time.Time          `gorm:"index" json:"created_at"` // 创建时间
	UpdatedAt       time.Time          `json:"updated_at"`              // 更新时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// DisplayName 获取展示名称，fa 优先，其次 en
func (p Product) DisplayName() string {
	for _, key := range []string{"fa", "en"} {
		if v, ok := p.NameJSON[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	for _, v := range p.NameJSON {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return ""
}
