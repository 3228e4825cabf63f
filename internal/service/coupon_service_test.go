package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/atelier-next/internal/constants"
	"github.com/atelier-next/internal/models"
	"github.com/atelier-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCouponServiceTest(t *testing.T) (*CouponService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:coupon_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Coupon{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewCouponService(repository.NewCouponRepository(db)), db
}

func TestCouponCreateNormalizesCodeAndRejectsDuplicate(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)

	coupon, err := svc.Create(CouponCreateInput{
		Code:          "  welcome10 ",
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
	})
	if err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	if coupon.Code != "WELCOME10" {
		t.Fatalf("expected normalized code WELCOME10, got %s", coupon.Code)
	}
	if !coupon.IsActive {
		t.Fatalf("expected coupon active by default")
	}

	_, err = svc.Create(CouponCreateInput{
		Code:          "welcome10",
		DiscountType:  constants.DiscountTypeFixed,
		DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(5)),
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate code, got %v", err)
	}
}

func TestCouponCreateValidation(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)

	cases := []CouponCreateInput{
		{Code: "", DiscountType: constants.DiscountTypeFixed, DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(5))},
		{Code: "BAD", DiscountType: "half-off", DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(5))},
		{Code: "ZERO", DiscountType: constants.DiscountTypeFixed, DiscountValue: models.MoneyZero()},
		{Code: "OVER", DiscountType: constants.DiscountTypePercentage, DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(120))},
	}
	for _, input := range cases {
		if _, err := svc.Create(input); !errors.Is(err, ErrInvalidParams) {
			t.Fatalf("expected ErrInvalidParams for %+v, got %v", input, err)
		}
	}
}

func TestCouponValidatePercentageCappedByMaxDiscount(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)

	maxDiscount := models.NewMoneyFromDecimal(decimal.NewFromInt(1000))
	if _, err := svc.Create(CouponCreateInput{
		Code:          "HALF",
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
		MaxDiscount:   &maxDiscount,
	}); err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	quote, err := svc.Validate("half", models.NewMoneyFromDecimal(decimal.NewFromInt(5000)))
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !quote.DiscountAmount.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected discount 1000, got %s", quote.DiscountAmount.String())
	}
	if !quote.FinalAmount.Equal(decimal.NewFromInt(4000)) {
		t.Fatalf("expected final 4000, got %s", quote.FinalAmount.String())
	}
}

func TestCouponValidateFixedClampedToPurchase(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)

	if _, err := svc.Create(CouponCreateInput{
		Code:          "BIGFIX",
		DiscountType:  constants.DiscountTypeFixed,
		DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
	}); err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	quote, err := svc.Validate("BIGFIX", models.NewMoneyFromDecimal(decimal.NewFromInt(30)))
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !quote.DiscountAmount.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("expected discount clamped to 30, got %s", quote.DiscountAmount.String())
	}
	if !quote.FinalAmount.Equal(decimal.Zero) {
		t.Fatalf("expected final 0, got %s", quote.FinalAmount.String())
	}
}

func TestCouponValidateRejectionOrder(t *testing.T) {
	svc, db := setupCouponServiceTest(t)

	if _, err := svc.Validate("MISSING", models.NewMoneyFromDecimal(decimal.NewFromInt(100))); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("expected ErrCouponNotFound, got %v", err)
	}

	inactive := false
	if _, err := svc.Create(CouponCreateInput{
		Code:          "OFF",
		DiscountType:  constants.DiscountTypeFixed,
		DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(5)),
		IsActive:      &inactive,
	}); err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	if _, err := svc.Validate("OFF", models.NewMoneyFromDecimal(decimal.NewFromInt(100))); !errors.Is(err, ErrCouponInactive) {
		t.Fatalf("expected ErrCouponInactive, got %v", err)
	}

	// 显式 false 必须落库为 false
	var stored models.Coupon
	if err := db.Where("code = ?", "OFF").First(&stored).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if stored.IsActive {
		t.Fatalf("expected stored is_active=false")
	}

	future := time.Now().Add(24 * time.Hour)
	if _, err := svc.Create(CouponCreateInput{
		Code:          "SOON",
		DiscountType:  constants.DiscountTypeFixed,
		DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(5)),
		ValidFrom:     &future,
	}); err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	if _, err := svc.Validate("SOON", models.NewMoneyFromDecimal(decimal.NewFromInt(100))); !errors.Is(err, ErrCouponNotStarted) {
		t.Fatalf("expected ErrCouponNotStarted, got %v", err)
	}

	past := time.Now().Add(-24 * time.Hour)
	if _, err := svc.Create(CouponCreateInput{
		Code:          "GONE",
		DiscountType:  constants.DiscountTypeFixed,
		DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(5)),
		ValidUntil:    &past,
	}); err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	if _, err := svc.Validate("GONE", models.NewMoneyFromDecimal(decimal.NewFromInt(100))); !errors.Is(err, ErrCouponExpired) {
		t.Fatalf("expected ErrCouponExpired, got %v", err)
	}

	if _, err := svc.Create(CouponCreateInput{
		Code:          "MIN50",
		DiscountType:  constants.DiscountTypeFixed,
		DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(5)),
		MinPurchase:   models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
	}); err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	if _, err := svc.Validate("MIN50", models.NewMoneyFromDecimal(decimal.NewFromInt(49))); !errors.Is(err, ErrCouponMinAmount) {
		t.Fatalf("expected ErrCouponMinAmount, got %v", err)
	}

	limit := 1
	used, err := svc.Create(CouponCreateInput{
		Code:          "ONCE",
		DiscountType:  constants.DiscountTypeFixed,
		DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(5)),
		UsageLimit:    &limit,
	})
	if err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	if err := db.Model(&models.Coupon{}).Where("id = ?", used.ID).Update("used_count", 1).Error; err != nil {
		t.Fatalf("update used_count failed: %v", err)
	}
	if _, err := svc.Validate("ONCE", models.NewMoneyFromDecimal(decimal.NewFromInt(100))); !errors.Is(err, ErrCouponExhausted) {
		t.Fatalf("expected ErrCouponExhausted, got %v", err)
	}
}

func TestCouponRedeemAndRelease(t *testing.T) {
	svc, db := setupCouponServiceTest(t)

	limit := 1
	coupon, err := svc.Create(CouponCreateInput{
		Code:          "REDEEM",
		DiscountType:  constants.DiscountTypeFixed,
		DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(5)),
		UsageLimit:    &limit,
	})
	if err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	if err := svc.RedeemTx(db, coupon.ID); err != nil {
		t.Fatalf("first redeem failed: %v", err)
	}
	if err := svc.RedeemTx(db, coupon.ID); !errors.Is(err, ErrCouponExhausted) {
		t.Fatalf("expected ErrCouponExhausted on second redeem, got %v", err)
	}

	if err := svc.ReleaseTx(db, coupon.ID); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	reloaded, err := svc.GetByID(coupon.ID)
	if err != nil {
		t.Fatalf("get coupon failed: %v", err)
	}
	if reloaded.UsedCount != 0 {
		t.Fatalf("expected used_count back to 0, got %d", reloaded.UsedCount)
	}
}

func TestCouponUpdateKeepsCode(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)

	coupon, err := svc.Create(CouponCreateInput{
		Code:          "KEEP",
		DiscountType:  constants.DiscountTypeFixed,
		DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(5)),
	})
	if err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	newValue := models.NewMoneyFromDecimal(decimal.NewFromInt(8))
	inactive := false
	updated, err := svc.Update(coupon.ID, CouponUpdateInput{
		DiscountValue: &newValue,
		IsActive:      &inactive,
	})
	if err != nil {
		t.Fatalf("update coupon failed: %v", err)
	}
	if updated.Code != "KEEP" {
		t.Fatalf("expected code unchanged, got %s", updated.Code)
	}
	if !updated.DiscountValue.Equal(decimal.NewFromInt(8)) {
		t.Fatalf("expected discount value 8, got %s", updated.DiscountValue.String())
	}
	if updated.IsActive {
		t.Fatalf("expected coupon deactivated")
	}

	if _, err := svc.Update(9999, CouponUpdateInput{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing coupon, got %v", err)
	}
}
