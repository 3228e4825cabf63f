package admin

import (
	"errors"
	"time"

	"github.com/atelier-next/internal/http/response"
	"github.com/atelier-next/internal/repository"
	"github.com/atelier-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListOrders 订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	page, pageSize := normalizePagination(queryInt(c, "page", 1), queryInt(c, "page_size", 20))
	filter := repository.OrderListFilter{
		Page:          page,
		PageSize:      pageSize,
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
		OrderNumber:   c.Query("order_number"),
		CustomerEmail: c.Query("customer_email"),
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

	orders, total, err := h.OrderService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "list orders failed", err)
		return
	}
	response.SuccessWithPage(c, orders, pageMeta(page, pageSize, total))
}

// GetOrder 订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "order not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "fetch order failed", err)
		return
	}
	response.Success(c, order)
}

// OrderStatusRequest 订单状态更新请求
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus 更新订单状态
// 取消订单会回滚库存与优惠券核销
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	order, err := h.OrderService.UpdateStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "order not found", nil)
		case errors.Is(err, service.ErrInvalidParams):
			respondError(c, response.CodeBadRequest, "invalid order status", nil)
		case errors.Is(err, service.ErrOrderStatusInvalid):
			respondError(c, response.CodeBadRequest, "order status transition not allowed", nil)
		default:
			respondError(c, response.CodeInternal, "update order status failed", err)
		}
		return
	}
	requestLog(c).Infow("order_status_updated", "order_id", id, "status", req.Status)
	response.Success(c, order)
}

// OrderPaymentStatusRequest 支付状态更新请求
type OrderPaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// UpdateOrderPaymentStatus 更新订单支付状态
func (h *Handler) UpdateOrderPaymentStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req OrderPaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	order, err := h.OrderService.UpdatePaymentStatus(id, req.PaymentStatus)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "order not found", nil)
		case errors.Is(err, service.ErrInvalidParams):
			respondError(c, response.CodeBadRequest, "invalid payment status", nil)
		default:
			respondError(c, response.CodeInternal, "update payment status failed", err)
		}
		return
	}
	requestLog(c).Infow("order_payment_status_updated", "order_id", id, "payment_status", req.PaymentStatus)
	response.Success(c, order)
}
