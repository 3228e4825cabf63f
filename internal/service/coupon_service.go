package service

import (
	"strings"
	"time"

	"github.com/atelier-next/internal/constants"
	"github.com/atelier-next/internal/models"
	"github.com/atelier-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CouponCreateInput 优惠券创建入参
type CouponCreateInput struct {
	Code          string
	DiscountType  string
	DiscountValue models.Money
	MinPurchase   models.Money
	MaxDiscount   *models.Money
	UsageLimit    *int
	ValidFrom     *time.Time
	ValidUntil    *time.Time
	IsActive      *bool
}

// CouponUpdateInput 优惠券更新入参
type CouponUpdateInput struct {
	DiscountType  *string
	DiscountValue *models.Money
	MinPurchase   *models.Money
	MaxDiscount   *models.Money
	UsageLimit    *int
	ValidFrom     *time.Time
	ValidUntil    *time.Time
	IsActive      *bool
}

// CouponQuote 优惠券试算结果
type CouponQuote struct {
	Coupon         *models.Coupon `json:"coupon"`
	DiscountAmount models.Money   `json:"discount_amount"`
	FinalAmount    models.Money   `json:"final_amount"`
}

// CouponService 优惠券服务
type CouponService struct {
	couponRepo repository.CouponRepository
}

// NewCouponService 创建优惠券服务实例
func NewCouponService(couponRepo repository.CouponRepository) *CouponService {
	return &CouponService{couponRepo: couponRepo}
}

// List 优惠券列表
func (s *CouponService) List(filter repository.CouponListFilter) ([]models.Coupon, int64, error) {
	return s.couponRepo.List(filter)
}

// GetByID 获取优惠券
func (s *CouponService) GetByID(id uint) (*models.Coupon, error) {
	coupon, err := s.couponRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrNotFound
	}
	return coupon, nil
}

// Create 创建优惠券
func (s *CouponService) Create(input CouponCreateInput) (*models.Coupon, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return nil, ErrInvalidParams
	}
	if input.DiscountType != constants.DiscountTypePercentage && input.DiscountType != constants.DiscountTypeFixed {
		return nil, ErrInvalidParams
	}
	if input.DiscountValue.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidParams
	}
	if input.DiscountType == constants.DiscountTypePercentage &&
		input.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
		return nil, ErrInvalidParams
	}

	existing, err := s.couponRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrConflict
	}

	coupon := &models.Coupon{
		Code:          code,
		DiscountType:  input.DiscountType,
		DiscountValue: input.DiscountValue,
		MinPurchase:   input.MinPurchase,
		MaxDiscount:   input.MaxDiscount,
		UsageLimit:    input.UsageLimit,
		ValidFrom:     input.ValidFrom,
		ValidUntil:    input.ValidUntil,
		IsActive:      true,
	}
	if input.IsActive != nil {
		coupon.IsActive = *input.IsActive
	}
	if err := s.couponRepo.Create(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Update 更新优惠券，券码不可修改
func (s *CouponService) Update(id uint, input CouponUpdateInput) (*models.Coupon, error) {
	coupon, err := s.couponRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrNotFound
	}

	if input.DiscountType != nil {
		if *input.DiscountType != constants.DiscountTypePercentage && *input.DiscountType != constants.DiscountTypeFixed {
			return nil, ErrInvalidParams
		}
		coupon.DiscountType = *input.DiscountType
	}
	if input.DiscountValue != nil {
		if input.DiscountValue.LessThanOrEqual(decimal.Zero) {
			return nil, ErrInvalidParams
		}
		coupon.DiscountValue = *input.DiscountValue
	}
	if coupon.DiscountType == constants.DiscountTypePercentage &&
		coupon.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
		return nil, ErrInvalidParams
	}
	if input.MinPurchase != nil {
		coupon.MinPurchase = *input.MinPurchase
	}
	if input.MaxDiscount != nil {
		coupon.MaxDiscount = input.MaxDiscount
	}
	if input.UsageLimit != nil {
		coupon.UsageLimit = input.UsageLimit
	}
	if input.ValidFrom != nil {
		coupon.ValidFrom = input.ValidFrom
	}
	if input.ValidUntil != nil {
		coupon.ValidUntil = input.ValidUntil
	}
	if input.IsActive != nil {
		coupon.IsActive = *input.IsActive
	}

	if err := s.couponRepo.Update(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Delete 删除优惠券
func (s *CouponService) Delete(id uint) error {
	coupon, err := s.couponRepo.GetByID(id)
	if err != nil {
		return err
	}
	if coupon == nil {
		return ErrNotFound
	}
	return s.couponRepo.Delete(id)
}

// Validate 校验优惠券并试算折扣
// 校验顺序：存在且启用 -> 有效期 -> 最低消费 -> 使用次数
func (s *CouponService) Validate(code string, purchaseAmount models.Money) (*CouponQuote, error) {
	return s.validateAt(code, purchaseAmount, time.Now())
}

func (s *CouponService) validateAt(code string, purchaseAmount models.Money, now time.Time) (*CouponQuote, error) {
	coupon, err := s.couponRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	if !coupon.IsActive {
		return nil, ErrCouponInactive
	}
	if coupon.ValidFrom != nil && now.Before(*coupon.ValidFrom) {
		return nil, ErrCouponNotStarted
	}
	if coupon.ValidUntil != nil && now.After(*coupon.ValidUntil) {
		return nil, ErrCouponExpired
	}
	if purchaseAmount.LessThan(coupon.MinPurchase.Decimal) {
		return nil, ErrCouponMinAmount
	}
	if coupon.UsageLimit != nil && coupon.UsedCount >= *coupon.UsageLimit {
		return nil, ErrCouponExhausted
	}

	discount := s.computeDiscount(coupon, purchaseAmount)
	final := models.NewMoneyFromDecimal(purchaseAmount.Sub(discount.Decimal))
	return &CouponQuote{
		Coupon:         coupon,
		DiscountAmount: discount,
		FinalAmount:    final,
	}, nil
}

// computeDiscount 计算折扣金额
// percentage 受 MaxDiscount 封顶，fixed 不超过订单金额
func (s *CouponService) computeDiscount(coupon *models.Coupon, purchaseAmount models.Money) models.Money {
	var discount decimal.Decimal
	switch coupon.DiscountType {
	case constants.DiscountTypePercentage:
		discount = purchaseAmount.Mul(coupon.DiscountValue.Decimal).Div(decimal.NewFromInt(100))
		if coupon.MaxDiscount != nil && discount.GreaterThan(coupon.MaxDiscount.Decimal) {
			discount = coupon.MaxDiscount.Decimal
		}
	case constants.DiscountTypeFixed:
		discount = coupon.DiscountValue.Decimal
	default:
		discount = decimal.Zero
	}
	if discount.GreaterThan(purchaseAmount.Decimal) {
		discount = purchaseAmount.Decimal
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	return models.NewMoneyFromDecimal(discount)
}

// RedeemTx 事务内核销优惠券
// 并发打满使用上限时返回 ErrCouponExhausted
func (s *CouponService) RedeemTx(tx *gorm.DB, couponID uint) error {
	affected, err := s.couponRepo.WithTx(tx).Redeem(couponID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCouponExhausted
	}
	return nil
}

// ReleaseTx 事务内回滚一次核销
func (s *CouponService) ReleaseTx(tx *gorm.DB, couponID uint) error {
	_, err := s.couponRepo.WithTx(tx).ReleaseUsage(couponID)
	return err
}
