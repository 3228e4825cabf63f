package service

import "errors"

// 服务层通用错误，handler 通过 errors.Is 匹配后映射为响应码
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrWeakPassword       = errors.New("weak password")
	ErrInvalidParams      = errors.New("invalid params")
	ErrConflict           = errors.New("resource conflict")
	ErrEmailTaken         = errors.New("email already registered")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrSessionInvalid     = errors.New("session invalid")

	ErrProductUnavailable = errors.New("product unavailable")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrPriceMismatch      = errors.New("price mismatch")
	ErrEmptyOrder         = errors.New("order has no items")
	ErrOrderStatusInvalid = errors.New("invalid order status transition")

	ErrCouponNotFound   = errors.New("coupon not found")
	ErrCouponInactive   = errors.New("coupon inactive")
	ErrCouponNotStarted = errors.New("coupon not started")
	ErrCouponExpired    = errors.New("coupon expired")
	ErrCouponMinAmount  = errors.New("coupon minimum purchase not met")
	ErrCouponExhausted  = errors.New("coupon usage limit reached")

	ErrAssistDisabled    = errors.New("assistant not configured")
	ErrAssistUnavailable = errors.New("assistant unavailable")

	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrInvalidEmail              = errors.New("invalid email address")
)
