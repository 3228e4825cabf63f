package admin

import (
	"errors"
	"time"

	"github.com/atelier-next/internal/http/response"
	"github.com/atelier-next/internal/repository"
	"github.com/atelier-next/internal/service"

	"github.com/gin-gonic/gin"
)

// InventoryAdjustRequest 库存调整请求
// NewQuantity 为目标绝对数量，0 表示清空库存
type InventoryAdjustRequest struct {
	ProductID   uint   `json:"product_id" binding:"required"`
	NewQuantity *int   `json:"new_quantity" binding:"required"`
	ChangeType  string `json:"change_type"`
	Reference   string `json:"reference"`
	Notes       string `json:"notes"`
}

// AdjustInventory 手工调整库存并记录流水
func (h *Handler) AdjustInventory(c *gin.Context) {
	var req InventoryAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	product, err := h.InventoryService.Adjust(service.InventoryAdjustInput{
		ProductID:   req.ProductID,
		NewQuantity: *req.NewQuantity,
		ChangeType:  req.ChangeType,
		Reference:   req.Reference,
		Notes:       req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "product not found", nil)
		case errors.Is(err, service.ErrInvalidParams):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		default:
			respondError(c, response.CodeInternal, "adjust inventory failed", err)
		}
		return
	}
	requestLog(c).Infow("inventory_adjusted",
		"product_id", req.ProductID,
		"new_quantity", *req.NewQuantity,
		"change_type", req.ChangeType,
	)
	response.Success(c, product)
}

// ListInventoryHistory 库存流水列表
func (h *Handler) ListInventoryHistory(c *gin.Context) {
	page, pageSize := normalizePagination(queryInt(c, "page", 1), queryInt(c, "page_size", 20))
	filter := repository.InventoryHistoryFilter{
		Page:       page,
		PageSize:   pageSize,
		ProductID:  uint(queryInt(c, "product_id", 0)),
		ChangeType: c.Query("change_type"),
	}
	if from := c.Query("created_from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.CreatedFrom = &t
		}
	}
	if to := c.Query("created_to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.CreatedTo = &t
		}
	}

	history, total, err := h.InventoryService.History(filter)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "list inventory history failed", err)
		return
	}
	response.SuccessWithPage(c, history, pageMeta(page, pageSize, total))
}

// ListLowStock 低库存商品列表
func (h *Handler) ListLowStock(c *gin.Context) {
	threshold := queryInt(c, "threshold", 0)
	products, err := h.InventoryService.LowStock(threshold)
	if err != nil {
		respondError(c, response.CodeInternal, "list low stock failed", err)
		return
	}
	response.Success(c, products)
}
