package service

import (
	"strings"

	"github.com/atelier-next/internal/constants"
	"github.com/atelier-next/internal/models"
	"github.com/atelier-next/internal/repository"

	"gorm.io/gorm"
)

// ProductCreateInput 商品创建入参
type ProductCreateInput struct {
	Name          models.JSON
	Description   models.JSON
	Price         models.Money
	Category      string
	ImageURL      string
	StockQuantity int
	IsAvailable   *bool
	Attributes    []ProductAttributeInput
	Images        []ProductImageInput
}

// ProductUpdateInput 商品更新入参
type ProductUpdateInput struct {
	Name        models.JSON
	Description models.JSON
	Price       *models.Money
	Category    *string
	ImageURL    *string
	IsAvailable *bool
}

// ProductAttributeInput 商品属性入参
type ProductAttributeInput struct {
	Name            string
	Value           string
	PriceAdjustment models.Money
	StockQuantity   int
	SKU             string
	IsAvailable     *bool
}

// ProductImageInput 商品图片入参
type ProductImageInput struct {
	URL          string
	IsPrimary    bool
	DisplayOrder int
}

// CatalogService 商品目录服务
// 库存数量变更不走本服务，统一经 InventoryService 留痕
type CatalogService struct {
	productRepo   repository.ProductRepository
	attributeRepo repository.ProductAttributeRepository
	imageRepo     repository.ProductImageRepository
	inventoryRepo repository.InventoryHistoryRepository
}

// NewCatalogService 创建商品目录服务实例
func NewCatalogService(
	productRepo repository.ProductRepository,
	attributeRepo repository.ProductAttributeRepository,
	imageRepo repository.ProductImageRepository,
	inventoryRepo repository.InventoryHistoryRepository,
) *CatalogService {
	return &CatalogService{
		productRepo:   productRepo,
		attributeRepo: attributeRepo,
		imageRepo:     imageRepo,
		inventoryRepo: inventoryRepo,
	}
}

// List 商品列表
func (s *CatalogService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// GetByID 获取商品详情
// onlyAvailable 为 true 时下架商品视为不存在
func (s *CatalogService) GetByID(id uint, onlyAvailable bool) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	if onlyAvailable && !product.IsAvailable {
		return nil, ErrNotFound
	}
	return product, nil
}

// ListCategories 获取分类列表
func (s *CatalogService) ListCategories(onlyAvailable bool) ([]string, error) {
	return s.productRepo.ListCategories(onlyAvailable)
}

// Create 创建商品，初始库存写入流水
func (s *CatalogService) Create(input ProductCreateInput) (*models.Product, error) {
	if len(input.Name) == 0 {
		return nil, ErrInvalidParams
	}
	if input.Price.IsNegative() {
		return nil, ErrInvalidParams
	}
	if input.StockQuantity < 0 {
		return nil, ErrInvalidParams
	}

	product := &models.Product{
		NameJSON:        input.Name,
		DescriptionJSON: input.Description,
		Price:           input.Price,
		Category:        strings.TrimSpace(input.Category),
		ImageURL:        strings.TrimSpace(input.ImageURL),
		StockQuantity:   input.StockQuantity,
		IsAvailable:     true,
	}
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}
	for _, attr := range input.Attributes {
		available := true
		if attr.IsAvailable != nil {
			available = *attr.IsAvailable
		}
		product.Attributes = append(product.Attributes, models.ProductAttribute{
			Name:            attr.Name,
			Value:           attr.Value,
			PriceAdjustment: attr.PriceAdjustment,
			StockQuantity:   attr.StockQuantity,
			SKU:             attr.SKU,
			IsAvailable:     available,
		})
	}
	for _, image := range input.Images {
		product.Images = append(product.Images, models.ProductImage{
			URL:          strings.TrimSpace(image.URL),
			IsPrimary:    image.IsPrimary,
			DisplayOrder: image.DisplayOrder,
		})
	}

	err := s.productRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.WithTx(tx).Create(product); err != nil {
			return err
		}
		if product.StockQuantity > 0 {
			return s.inventoryRepo.WithTx(tx).Create(&models.InventoryHistory{
				ProductID:        product.ID,
				QuantityChange:   product.StockQuantity,
				PreviousQuantity: 0,
				NewQuantity:      product.StockQuantity,
				ChangeType:       constants.StockChangeInitial,
				Notes:            "initial stock",
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(product.ID)
}

// Update 更新商品基础信息
func (s *CatalogService) Update(id uint, input ProductUpdateInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	if input.Name != nil {
		if len(input.Name) == 0 {
			return nil, ErrInvalidParams
		}
		product.NameJSON = input.Name
	}
	if input.Description != nil {
		product.DescriptionJSON = input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, ErrInvalidParams
		}
		product.Price = *input.Price
	}
	if input.Category != nil {
		product.Category = strings.TrimSpace(*input.Category)
	}
	if input.ImageURL != nil {
		product.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(id)
}

// Delete 删除商品（软删除），历史订单明细不受影响
func (s *CatalogService) Delete(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}
	return s.productRepo.Delete(id)
}

// AddAttribute 新增商品属性
func (s *CatalogService) AddAttribute(productID uint, input ProductAttributeInput) (*models.ProductAttribute, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidParams
	}

	available := true
	if input.IsAvailable != nil {
		available = *input.IsAvailable
	}
	attribute := &models.ProductAttribute{
		ProductID:       productID,
		Name:            input.Name,
		Value:           input.Value,
		PriceAdjustment: input.PriceAdjustment,
		StockQuantity:   input.StockQuantity,
		SKU:             input.SKU,
		IsAvailable:     available,
	}
	if err := s.attributeRepo.Create(attribute); err != nil {
		return nil, err
	}
	return attribute, nil
}

// UpdateAttribute 更新商品属性
func (s *CatalogService) UpdateAttribute(productID, attributeID uint, input ProductAttributeInput) (*models.ProductAttribute, error) {
	attribute, err := s.attributeRepo.GetByID(attributeID)
	if err != nil {
		return nil, err
	}
	if attribute == nil || attribute.ProductID != productID {
		return nil, ErrNotFound
	}

	if strings.TrimSpace(input.Name) != "" {
		attribute.Name = input.Name
	}
	attribute.Value = input.Value
	attribute.PriceAdjustment = input.PriceAdjustment
	attribute.StockQuantity = input.StockQuantity
	attribute.SKU = input.SKU
	if input.IsAvailable != nil {
		attribute.IsAvailable = *input.IsAvailable
	}

	if err := s.attributeRepo.Update(attribute); err != nil {
		return nil, err
	}
	return attribute, nil
}

// DeleteAttribute 删除商品属性
func (s *CatalogService) DeleteAttribute(productID, attributeID uint) error {
	attribute, err := s.attributeRepo.GetByID(attributeID)
	if err != nil {
		return err
	}
	if attribute == nil || attribute.ProductID != productID {
		return ErrNotFound
	}
	return s.attributeRepo.Delete(attributeID)
}

// AddImage 新增商品图片，设为主图时清除旧主图
func (s *CatalogService) AddImage(productID uint, input ProductImageInput) (*models.ProductImage, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	url := strings.TrimSpace(input.URL)
	if url == "" {
		return nil, ErrInvalidParams
	}

	if input.IsPrimary {
		if err := s.imageRepo.ClearPrimary(productID); err != nil {
			return nil, err
		}
	}
	image := &models.ProductImage{
		ProductID:    productID,
		URL:          url,
		IsPrimary:    input.IsPrimary,
		DisplayOrder: input.DisplayOrder,
	}
	if err := s.imageRepo.Create(image); err != nil {
		return nil, err
	}
	return image, nil
}

// DeleteImage 删除商品图片
func (s *CatalogService) DeleteImage(productID, imageID uint) error {
	image, err := s.imageRepo.GetByID(imageID)
	if err != nil {
		return err
	}
	if image == nil || image.ProductID != productID {
		return ErrNotFound
	}
	return s.imageRepo.Delete(imageID)
}
