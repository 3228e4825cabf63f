package public

import (
	"errors"

	"github.com/atelier-next/internal/http/response"
	"github.com/atelier-next/internal/models"
	"github.com/atelier-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CouponValidateRequest 优惠券试算请求
type CouponValidateRequest struct {
	Code           string       `json:"code" binding:"required"`
	PurchaseAmount models.Money `json:"purchase_amount"`
}

// ValidateCoupon 校验优惠券并返回折扣试算
func (h *Handler) ValidateCoupon(c *gin.Context) {
	var req CouponValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	quote, err := h.CouponService.Validate(req.Code, req.PurchaseAmount)
	if err != nil {
		if isCouponError(err) {
			respondError(c, response.CodeBadRequest, couponErrorMessage(err), nil)
			return
		}
		respondError(c, response.CodeInternal, "validate coupon failed", err)
		return
	}
	response.Success(c, quote)
}

func isCouponError(err error) bool {
	return errors.Is(err, service.ErrCouponNotFound) ||
		errors.Is(err, service.ErrCouponInactive) ||
		errors.Is(err, service.ErrCouponNotStarted) ||
		errors.Is(err, service.ErrCouponExpired) ||
		errors.Is(err, service.ErrCouponMinAmount) ||
		errors.Is(err, service.ErrCouponExhausted)
}

func couponErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrCouponNotFound):
		return "coupon not found"
	case errors.Is(err, service.ErrCouponInactive):
		return "coupon is not active"
	case errors.Is(err, service.ErrCouponNotStarted):
		return "coupon is not valid yet"
	case errors.Is(err, service.ErrCouponExpired):
		return "coupon has expired"
	case errors.Is(err, service.ErrCouponMinAmount):
		return "purchase amount below coupon minimum"
	case errors.Is(err, service.ErrCouponExhausted):
		return "coupon usage limit reached"
	default:
		return "coupon not valid"
	}
}
