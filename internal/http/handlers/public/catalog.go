package public

import (
	"errors"

	"github.com/atelier-next/internal/http/response"
	"github.com/atelier-next/internal/repository"
	"github.com/atelier-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProducts 在售商品列表
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := normalizePagination(queryInt(c, "page", 1), queryInt(c, "page_size", 20))
	filter := repository.ProductListFilter{
		Page:          page,
		PageSize:      pageSize,
		Category:      c.Query("category"),
		Search:        c.Query("search"),
		OnlyAvailable: true,
		WithDetails:   c.Query("with_details") == "true",
	}

	products, total, err := h.CatalogService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "list products failed", err)
		return
	}
	response.SuccessWithPage(c, products, pageMeta(page, pageSize, total))
}

// GetProduct 在售商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.CatalogService.GetByID(id, true)
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

// ListCategories 在售商品分类
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CatalogService.ListCategories(true)
	if err != nil {
		respondError(c, response.CodeInternal, "list categories failed", err)
		return
	}
	response.Success(c, categories)
}
