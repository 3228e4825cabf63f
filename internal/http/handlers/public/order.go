package public

import (
	"errors"
	"strings"

	"github.com/atelier-next/internal/http/response"
	"github.com/atelier-next/internal/models"
	"github.com/atelier-next/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderItemRequest 订单明细请求（单价由服务端计算）
type OrderItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// OrderCreateRequest 下单请求
// expected_total 可选，用于客户端展示金额一致性校验
type OrderCreateRequest struct {
	CustomerName    string             `json:"customer_name" binding:"required"`
	CustomerEmail   string             `json:"customer_email" binding:"required"`
	CustomerPhone   string             `json:"customer_phone"`
	ShippingAddress string             `json:"shipping_address"`
	PaymentMethod   string             `json:"payment_method"`
	Notes           string             `json:"notes"`
	CouponCode      string             `json:"coupon_code"`
	Items           []OrderItemRequest `json:"items" binding:"required"`
	ExpectedTotal   *models.Money      `json:"expected_total"`
}

// CreateOrder 创建订单
func (h *Handler) CreateOrder(c *gin.Context) {
	var req OrderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	input := service.OrderCreateInput{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
		CouponCode:      req.CouponCode,
		ExpectedTotal:   req.ExpectedTotal,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.OrderService.Create(input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidParams):
			respondError(c, response.CodeBadRequest, "invalid order data", nil)
		case errors.Is(err, service.ErrEmptyOrder):
			respondError(c, response.CodeBadRequest, "order must contain at least one item", nil)
		case errors.Is(err, service.ErrProductUnavailable):
			respondError(c, response.CodeBadRequest, "product not available", nil)
		case errors.Is(err, service.ErrInsufficientStock):
			respondError(c, response.CodeBadRequest, "insufficient stock", nil)
		case errors.Is(err, service.ErrPriceMismatch):
			respondError(c, response.CodeBadRequest, "price changed, please refresh and try again", nil)
		case isCouponError(err):
			respondError(c, response.CodeBadRequest, couponErrorMessage(err), nil)
		default:
			respondError(c, response.CodeInternal, "create order failed", err)
		}
		return
	}
	response.Created(c, order)
}

// LookupOrder 按订单号查询订单，需同时提供下单邮箱
func (h *Handler) LookupOrder(c *gin.Context) {
	orderNumber := strings.TrimSpace(c.Param("order_number"))
	email := strings.TrimSpace(c.Query("email"))
	if orderNumber == "" || email == "" {
		respondError(c, response.CodeBadRequest, "order number and email are required", nil)
		return
	}

	order, err := h.OrderService.GetByOrderNumber(orderNumber)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "order not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "fetch order failed", err)
		return
	}
	if !strings.EqualFold(order.CustomerEmail, email) {
		respondError(c, response.CodeNotFound, "order not found", nil)
		return
	}
	response.Success(c, order)
}

// ListMyOrders 当前登录用户的订单列表
func (h *Handler) ListMyOrders(c *gin.Context) {
	userID, ok := getShopUserID(c)
	if !ok {
		return
	}
	user, err := h.ShopUserRepo.GetByID(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "fetch user failed", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeUnauthorized, "unauthorized", nil)
		return
	}

	page, pageSize := normalizePagination(queryInt(c, "page", 1), queryInt(c, "page_size", 20))
	orders, total, err := h.OrderService.ListByCustomerEmail(user.Email, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "list orders failed", err)
		return
	}
	response.SuccessWithPage(c, orders, pageMeta(page, pageSize, total))
}
