package admin

import (
	"errors"

	"github.com/atelier-next/internal/http/response"
	"github.com/atelier-next/internal/models"
	"github.com/atelier-next/internal/repository"
	"github.com/atelier-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProducts 商品列表（含下架商品）
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := normalizePagination(queryInt(c, "page", 1), queryInt(c, "page_size", 20))
	filter := repository.ProductListFilter{
		Page:        page,
		PageSize:    pageSize,
		Category:    c.Query("category"),
		Search:      c.Query("search"),
		WithDetails: c.Query("with_details") == "true",
	}

	products, total, err := h.CatalogService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "list products failed", err)
		return
	}
	response.SuccessWithPage(c, products, pageMeta(page, pageSize, total))
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.CatalogService.GetByID(id, false)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "fetch product failed", err)
		return
	}
	response.Success(c, product)
}

// ProductCreateRequest 创建商品请求
type ProductCreateRequest struct {
	Name          models.JSON               `json:"name" binding:"required"`
	Description   models.JSON               `json:"description"`
	Price         models.Money              `json:"price"`
	Category      string                    `json:"category"`
	ImageURL      string                    `json:"image_url"`
	StockQuantity int                       `json:"stock_quantity"`
	IsAvailable   *bool                     `json:"is_available"`
	Attributes    []ProductAttributeRequest `json:"attributes"`
	Images        []ProductImageRequest     `json:"images"`
}

// ProductAttributeRequest 商品属性请求
type ProductAttributeRequest struct {
	Name            string       `json:"name" binding:"required"`
	Value           string       `json:"value" binding:"required"`
	PriceAdjustment models.Money `json:"price_adjustment"`
	StockQuantity   int          `json:"stock_quantity"`
	SKU             string       `json:"sku"`
	IsAvailable     *bool        `json:"is_available"`
}

// ProductImageRequest 商品图片请求
type ProductImageRequest struct {
	URL          string `json:"url" binding:"required"`
	IsPrimary    bool   `json:"is_primary"`
	DisplayOrder int    `json:"display_order"`
}

func (r ProductAttributeRequest) toInput() service.ProductAttributeInput {
	return service.ProductAttributeInput{
		Name:            r.Name,
		Value:           r.Value,
		PriceAdjustment: r.PriceAdjustment,
		StockQuantity:   r.StockQuantity,
		SKU:             r.SKU,
		IsAvailable:     r.IsAvailable,
	}
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	input := service.ProductCreateInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Category:      req.Category,
		ImageURL:      req.ImageURL,
		StockQuantity: req.StockQuantity,
		IsAvailable:   req.IsAvailable,
	}
	for _, attr := range req.Attributes {
		input.Attributes = append(input.Attributes, attr.toInput())
	}
	for _, img := range req.Images {
		input.Images = append(input.Images, service.ProductImageInput{
			URL:          img.URL,
			IsPrimary:    img.IsPrimary,
			DisplayOrder: img.DisplayOrder,
		})
	}

	product, err := h.CatalogService.Create(input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidParams) {
			respondError(c, response.CodeBadRequest, err.Error(), nil)
			return
		}
		respondError(c, response.CodeInternal, "create product failed", err)
		return
	}
	requestLog(c).Infow("product_created", "product_id", product.ID)
	response.Created(c, product)
}

// ProductUpdateRequest 更新商品请求
type ProductUpdateRequest struct {
	Name        models.JSON   `json:"name"`
	Description models.JSON   `json:"description"`
	Price       *models.Money `json:"price"`
	Category    *string       `json:"category"`
	ImageURL    *string       `json:"image_url"`
	IsAvailable *bool         `json:"is_available"`
}

// UpdateProduct 更新商品基础信息（库存走库存调整接口）
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ProductUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	product, err := h.CatalogService.Update(id, service.ProductUpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "product not found", nil)
		case errors.Is(err, service.ErrInvalidParams):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		default:
			respondError(c, response.CodeInternal, "update product failed", err)
		}
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品（软删除）
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.CatalogService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "delete product failed", err)
		return
	}
	requestLog(c).Infow("product_deleted", "product_id", id)
	response.SuccessWithMsg(c, "product deleted", nil)
}

// AddProductAttribute 新增商品属性
func (h *Handler) AddProductAttribute(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ProductAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	attribute, err := h.CatalogService.AddAttribute(id, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "product not found", nil)
		case errors.Is(err, service.ErrInvalidParams):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		default:
			respondError(c, response.CodeInternal, "add attribute failed", err)
		}
		return
	}
	response.Created(c, attribute)
}

// UpdateProductAttribute 更新商品属性
func (h *Handler) UpdateProductAttribute(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	attributeID, ok := parseIDParam(c, "attribute_id")
	if !ok {
		return
	}
	var req ProductAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	attribute, err := h.CatalogService.UpdateAttribute(id, attributeID, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "attribute not found", nil)
		case errors.Is(err, service.ErrInvalidParams):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		default:
			respondError(c, response.CodeInternal, "update attribute failed", err)
		}
		return
	}
	response.Success(c, attribute)
}

// DeleteProductAttribute 删除商品属性
func (h *Handler) DeleteProductAttribute(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	attributeID, ok := parseIDParam(c, "attribute_id")
	if !ok {
		return
	}
	if err := h.CatalogService.DeleteAttribute(id, attributeID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "attribute not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "delete attribute failed", err)
		return
	}
	response.SuccessWithMsg(c, "attribute deleted", nil)
}

// AddProductImage 新增商品图片
func (h *Handler) AddProductImage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ProductImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	image, err := h.CatalogService.AddImage(id, service.ProductImageInput{
		URL:          req.URL,
		IsPrimary:    req.IsPrimary,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "product not found", nil)
		case errors.Is(err, service.ErrInvalidParams):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		default:
			respondError(c, response.CodeInternal, "add image failed", err)
		}
		return
	}
	response.Created(c, image)
}

// DeleteProductImage 删除商品图片
func (h *Handler) DeleteProductImage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	imageID, ok := parseIDParam(c, "image_id")
	if !ok {
		return
	}
	if err := h.CatalogService.DeleteImage(id, imageID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "image not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "delete image failed", err)
		return
	}
	response.SuccessWithMsg(c, "image deleted", nil)
}

// ListProductCategories 全部商品分类
func (h *Handler) ListProductCategories(c *gin.Context) {
	categories, err := h.CatalogService.ListCategories(false)
	if err != nil {
		respondError(c, response.CodeInternal, "list categories failed", err)
		return
	}
	response.Success(c, categories)
}
