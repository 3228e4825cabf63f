package admin

import (
	"errors"
	"time"

	"github.com/atelier-next/internal/http/response"
	"github.com/atelier-next/internal/models"
	"github.com/atelier-next/internal/repository"
	"github.com/atelier-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListCoupons 优惠券列表
func (h *Handler) ListCoupons(c *gin.Context) {
	page, pageSize := normalizePagination(queryInt(c, "page", 1), queryInt(c, "page_size", 20))
	filter := repository.CouponListFilter{
		Page:     page,
		PageSize: pageSize,
		Code:     c.Query("code"),
	}
	if active := c.Query("is_active"); active != "" {
		isActive := active == "true"
		filter.IsActive = &isActive
	}

	coupons, total, err := h.CouponService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "list coupons failed", err)
		return
	}
	response.SuccessWithPage(c, coupons, pageMeta(page, pageSize, total))
}

// GetCoupon 优惠券详情
func (h *Handler) GetCoupon(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	coupon, err := h.CouponService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "coupon not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "fetch coupon failed", err)
		return
	}
	response.Success(c, coupon)
}

// CouponCreateRequest 创建优惠券请求
type CouponCreateRequest struct {
	Code          string        `json:"code" binding:"required"`
	DiscountType  string        `json:"discount_type" binding:"required"`
	DiscountValue models.Money  `json:"discount_value"`
	MinPurchase   models.Money  `json:"min_purchase"`
	MaxDiscount   *models.Money `json:"max_discount"`
	UsageLimit    *int          `json:"usage_limit"`
	ValidFrom     *time.Time    `json:"valid_from"`
	ValidUntil    *time.Time    `json:"valid_until"`
	IsActive      *bool         `json:"is_active"`
}

// CreateCoupon 创建优惠券
func (h *Handler) CreateCoupon(c *gin.Context) {
	var req CouponCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	coupon, err := h.CouponService.Create(service.CouponCreateInput{
		Code:          req.Code,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		MinPurchase:   req.MinPurchase,
		MaxDiscount:   req.MaxDiscount,
		UsageLimit:    req.UsageLimit,
		ValidFrom:     req.ValidFrom,
		ValidUntil:    req.ValidUntil,
		IsActive:      req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConflict):
			respondError(c, response.CodeConflict, "coupon code already exists", nil)
		case errors.Is(err, service.ErrInvalidParams):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		default:
			respondError(c, response.CodeInternal, "create coupon failed", err)
		}
		return
	}
	requestLog(c).Infow("coupon_created", "coupon_id", coupon.ID, "code", coupon.Code)
	response.Created(c, coupon)
}

// CouponUpdateRequest 更新优惠券请求
type CouponUpdateRequest struct {
	DiscountType  *string       `json:"discount_type"`
	DiscountValue *models.Money `json:"discount_value"`
	MinPurchase   *models.Money `json:"min_purchase"`
	MaxDiscount   *models.Money `json:"max_discount"`
	UsageLimit    *int          `json:"usage_limit"`
	ValidFrom     *time.Time    `json:"valid_from"`
	ValidUntil    *time.Time    `json:"valid_until"`
	IsActive      *bool         `json:"is_active"`
}

// UpdateCoupon 更新优惠券
func (h *Handler) UpdateCoupon(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req CouponUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	coupon, err := h.CouponService.Update(id, service.CouponUpdateInput{
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		MinPurchase:   req.MinPurchase,
		MaxDiscount:   req.MaxDiscount,
		UsageLimit:    req.UsageLimit,
		ValidFrom:     req.ValidFrom,
		ValidUntil:    req.ValidUntil,
		IsActive:      req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "coupon not found", nil)
		case errors.Is(err, service.ErrInvalidParams):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		default:
			respondError(c, response.CodeInternal, "update coupon failed", err)
		}
		return
	}
	response.Success(c, coupon)
}

// DeleteCoupon 删除优惠券
func (h *Handler) DeleteCoupon(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.CouponService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "coupon not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "delete coupon failed", err)
		return
	}
	response.SuccessWithMsg(c, "coupon deleted", nil)
}
