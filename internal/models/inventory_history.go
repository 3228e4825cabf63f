package models

import "time"

// InventoryHistory 库存变更流水表（只追加，不更新）
// 不变式：NewQuantity = PreviousQuantity + QuantityChange
type InventoryHistory struct {
	ID               uint      `gorm:"primarykey" json:"id"`              // 主键
	ProductID        uint      `gorm:"not null;index" json:"product_id"`  // 所属商品
	QuantityChange   int       `gorm:"not null" json:"quantity_change"`   // 变更数量（可为负）
	PreviousQuantity int       `gorm:"not null" json:"previous_quantity"` // 变更前库存
	NewQuantity      int       `gorm:"not null" json:"new_quantity"`      // 变更后库存
	ChangeType       string    `gorm:"not null;index" json:"change_type"` // 变更类型 purchase/sale/return/adjustment/initial
	Reference        string    `gorm:"default:''" json:"reference"`       // 关联单据（如订单号）
	Notes            string    `gorm:"type:text" json:"notes"`            // 备注
	CreatedAt        time.Time `gorm:"index" json:"created_at"`           // 创建时间
}

// TableName 指定表名
func (InventoryHistory) TableName() string {
	return "inventory_history"
}
