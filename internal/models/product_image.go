package models

import "time"

// ProductImage 商品图片表
// 每个商品逻辑上至多一张主图，由服务层在设置时保证
type ProductImage struct {
	ID           uint      `gorm:"primarykey" json:"id"`                     // 主键
	ProductID    uint      `gorm:"not null;index" json:"product_id"`         // 所属商品
	URL          string    `gorm:"type:varchar(500);not null" json:"url"`    // 图片地址
	IsPrimary    bool      `gorm:"not null;default:false" json:"is_primary"` // 是否主图
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`  // 展示顺序
	CreatedAt    time.Time `json:"created_at"`                               // 创建时间
}

// TableName 指定表名
func (ProductImage) TableName() string {
	return "product_images"
}
