package service

import (
	"strings"

	"github.com/atelier-next/internal/constants"
	"github.com/atelier-next/internal/models"
	"github.com/atelier-next/internal/repository"

	"gorm.io/gorm"
)

// InventoryAdjustInput 库存调整入参
// NewQuantity 为目标绝对数量，增减量在事务内计算
type InventoryAdjustInput struct {
	ProductID   uint
	NewQuantity int
	ChangeType  string
	Reference   string
	Notes       string
}

// InventoryService 库存服务
// 每次库存变更都记录调整前后数量，形成完整流水链
type InventoryService struct {
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryHistoryRepository
	lowThreshold  int
}

// NewInventoryService 创建库存服务实例
func NewInventoryService(
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryHistoryRepository,
	lowThreshold int,
) *InventoryService {
	if lowThreshold <= 0 {
		lowThreshold = constants.DefaultLowStockThreshold
	}
	return &InventoryService{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		lowThreshold:  lowThreshold,
	}
}

func validChangeType(changeType string) bool {
	for _, t := range constants.StockChangeTypes {
		if t == changeType {
			return true
		}
	}
	return false
}

// Adjust 将库存调整到目标数量并写入流水
func (s *InventoryService) Adjust(input InventoryAdjustInput) (*models.Product, error) {
	if input.ProductID == 0 || input.NewQuantity < 0 {
		return nil, ErrInvalidParams
	}
	changeType := strings.TrimSpace(input.ChangeType)
	if changeType == "" {
		changeType = constants.StockChangeAdjustment
	}
	if !validChangeType(changeType) {
		return nil, ErrInvalidParams
	}

	var updated *models.Product
	err := s.productRepo.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)

		product, err := productRepo.GetByID(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return ErrNotFound
		}
		previous := product.StockQuantity
		delta := input.NewQuantity - previous
		if delta == 0 {
			updated = product
			return nil
		}

		affected, err := productRepo.SetStock(input.ProductID, input.NewQuantity)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrNotFound
		}

		if err := s.inventoryRepo.WithTx(tx).Create(&models.InventoryHistory{
			ProductID:        input.ProductID,
			QuantityChange:   delta,
			PreviousQuantity: previous,
			NewQuantity:      input.NewQuantity,
			ChangeType:       changeType,
			Reference:        strings.TrimSpace(input.Reference),
			Notes:            strings.TrimSpace(input.Notes),
		}); err != nil {
			return err
		}

		updated, err = productRepo.GetByID(input.ProductID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// History 库存流水列表
func (s *InventoryService) History(filter repository.InventoryHistoryFilter) ([]models.InventoryHistory, int64, error) {
	if filter.ProductID > 0 {
		product, err := s.productRepo.GetByID(filter.ProductID)
		if err != nil {
			return nil, 0, err
		}
		if product == nil {
			return nil, 0, ErrNotFound
		}
	}
	return s.inventoryRepo.List(filter)
}

// LowStock 获取低库存商品
func (s *InventoryService) LowStock(threshold int) ([]models.Product, error) {
	if threshold <= 0 {
		threshold = s.lowThreshold
	}
	return s.productRepo.ListLowStock(threshold)
}

// RecordSaleTx 事务内扣减库存并写销售流水（下单用）
func (s *InventoryService) RecordSaleTx(tx *gorm.DB, productID uint, quantity int, orderNumber string) error {
	if productID == 0 || quantity <= 0 {
		return ErrInvalidParams
	}
	productRepo := s.productRepo.WithTx(tx)

	product, err := productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}
	previous := product.StockQuantity

	affected, err := productRepo.DecrementStock(productID, quantity)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInsufficientStock
	}

	return s.inventoryRepo.WithTx(tx).Create(&models.InventoryHistory{
		ProductID:        productID,
		QuantityChange:   -quantity,
		PreviousQuantity: previous,
		NewQuantity:      previous - quantity,
		ChangeType:       constants.StockChangeSale,
		Reference:        orderNumber,
	})
}

// RecordReturnTx 事务内回补库存并写退货流水（订单取消用）
func (s *InventoryService) RecordReturnTx(tx *gorm.DB, productID uint, quantity int, orderNumber string) error {
	if productID == 0 || quantity <= 0 {
		return ErrInvalidParams
	}
	productRepo := s.productRepo.WithTx(tx)

	product, err := productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		// 商品已被删除时跳过回补，订单取消不应失败
		return nil
	}
	previous := product.StockQuantity

	if _, err := productRepo.AdjustStock(productID, quantity); err != nil {
		return err
	}

	return s.inventoryRepo.WithTx(tx).Create(&models.InventoryHistory{
		ProductID:        productID,
		QuantityChange:   quantity,
		PreviousQuantity: previous,
		NewQuantity:      previous + quantity,
		ChangeType:       constants.StockChangeReturn,
		Reference:        orderNumber,
	})
}
