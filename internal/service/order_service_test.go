package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/atelier-next/internal/constants"
	"github.com/atelier-next/internal/models"
	"github.com/atelier-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{},
		&models.ProductAttribute{},
		&models.ProductImage{},
		&models.Order{},
		&models.OrderItem{},
		&models.Coupon{},
		&models.InventoryHistory{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	couponService := NewCouponService(repository.NewCouponRepository(db))
	inventoryService := NewInventoryService(productRepo, repository.NewInventoryHistoryRepository(db), 0)
	return NewOrderService(orderRepo, productRepo, couponService, inventoryService, nil), db
}

func createOrderTestProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		NameJSON: models.JSON(map[string]interface{}{
			"en": name,
		}),
		Price:         models.NewMoneyFromFloat(price),
		Category:      "test",
		StockQuantity: stock,
		IsAvailable:   true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestCreateOrderComputesTotalsAndDecrementsStock(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	bowl := createOrderTestProduct(t, db, "Ceramic Bowl", 40, 10)
	bag := createOrderTestProduct(t, db, "Leather Bag", 150, 5)

	order, err := svc.Create(OrderCreateInput{
		CustomerName:  "Sara",
		CustomerEmail: "sara@example.com",
		Items: []OrderItemInput{
			{ProductID: bowl.ID, Quantity: 2},
			{ProductID: bag.ID, Quantity: 1},
			{ProductID: bowl.ID, Quantity: 1}, // 重复行应合并
		},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if !strings.HasPrefix(order.OrderNumber, "ORD-") {
		t.Fatalf("unexpected order number format: %s", order.OrderNumber)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 merged items, got %d", len(order.Items))
	}
	// 3×40 + 1×150 = 270
	if !order.TotalAmount.Equal(decimal.NewFromInt(270)) {
		t.Fatalf("expected total 270, got %s", order.TotalAmount.String())
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", order.Status)
	}
	if order.PaymentStatus != constants.PaymentStatusUnpaid {
		t.Fatalf("expected unpaid status, got %s", order.PaymentStatus)
	}

	var reloaded models.Product
	if err := db.First(&reloaded, bowl.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.StockQuantity != 7 {
		t.Fatalf("expected stock 7 after sale, got %d", reloaded.StockQuantity)
	}

	var history models.InventoryHistory
	if err := db.Where("product_id = ? AND change_type = ?", bowl.ID, constants.StockChangeSale).First(&history).Error; err != nil {
		t.Fatalf("expected sale inventory row: %v", err)
	}
	if history.QuantityChange != -3 || history.PreviousQuantity != 10 || history.NewQuantity != 7 {
		t.Fatalf("unexpected sale history row: %+v", history)
	}
	if history.Reference != order.OrderNumber {
		t.Fatalf("expected history reference %s, got %s", order.OrderNumber, history.Reference)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	product := createOrderTestProduct(t, db, "Necklace", 90, 2)

	if _, err := svc.Create(OrderCreateInput{
		CustomerName:  "Sara",
		CustomerEmail: "sara@example.com",
	}); !errors.Is(err, ErrEmptyOrder) {
		t.Fatalf("expected ErrEmptyOrder, got %v", err)
	}

	if _, err := svc.Create(OrderCreateInput{
		CustomerName:  "Sara",
		CustomerEmail: "not-an-email",
		Items:         []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	}); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for bad email, got %v", err)
	}

	if _, err := svc.Create(OrderCreateInput{
		CustomerName:  "Sara",
		CustomerEmail: "sara@example.com",
		Items:         []OrderItemInput{{ProductID: product.ID, Quantity: 3}},
	}); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Update("is_available", false).Error; err != nil {
		t.Fatalf("update product failed: %v", err)
	}
	if _, err := svc.Create(OrderCreateInput{
		CustomerName:  "Sara",
		CustomerEmail: "sara@example.com",
		Items:         []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	}); !errors.Is(err, ErrProductUnavailable) {
		t.Fatalf("expected ErrProductUnavailable, got %v", err)
	}
}

func TestCreateOrderExpectedTotalMismatch(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	product := createOrderTestProduct(t, db, "Bowl", 42, 10)

	wrong := models.NewMoneyFromFloat(41)
	_, err := svc.Create(OrderCreateInput{
		CustomerName:  "Sara",
		CustomerEmail: "sara@example.com",
		Items:         []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		ExpectedTotal: &wrong,
	})
	if !errors.Is(err, ErrPriceMismatch) {
		t.Fatalf("expected ErrPriceMismatch, got %v", err)
	}

	right := models.NewMoneyFromFloat(42)
	if _, err := svc.Create(OrderCreateInput{
		CustomerName:  "Sara",
		CustomerEmail: "sara@example.com",
		Items:         []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		ExpectedTotal: &right,
	}); err != nil {
		t.Fatalf("expected order to pass with matching total, got %v", err)
	}
}

func TestCreateOrderWithCouponRedeems(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	product := createOrderTestProduct(t, db, "Bag", 100, 10)

	limit := 5
	coupon := &models.Coupon{
		Code:          "SAVE10",
		DiscountType:  constants.DiscountTypeFixed,
		DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		UsageLimit:    &limit,
		IsActive:      true,
	}
	if err := db.Create(coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	order, err := svc.Create(OrderCreateInput{
		CustomerName:  "Sara",
		CustomerEmail: "sara@example.com",
		CouponCode:    "save10",
		Items:         []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if !order.TotalAmount.Equal(decimal.NewFromInt(90)) {
		t.Fatalf("expected total 90, got %s", order.TotalAmount.String())
	}
	if !order.DiscountAmount.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected discount 10, got %s", order.DiscountAmount.String())
	}
	if order.CouponCode != "SAVE10" {
		t.Fatalf("expected stored coupon code SAVE10, got %s", order.CouponCode)
	}

	var reloaded models.Coupon
	if err := db.First(&reloaded, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if reloaded.UsedCount != 1 {
		t.Fatalf("expected used_count 1, got %d", reloaded.UsedCount)
	}
}

func TestCancelOrderRestoresStockAndReleasesCoupon(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	product := createOrderTestProduct(t, db, "Bowl", 50, 10)

	coupon := &models.Coupon{
		Code:          "BACK5",
		DiscountType:  constants.DiscountTypeFixed,
		DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(5)),
		IsActive:      true,
	}
	if err := db.Create(coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	order, err := svc.Create(OrderCreateInput{
		CustomerName:  "Sara",
		CustomerEmail: "sara@example.com",
		CouponCode:    "BACK5",
		Items:         []OrderItemInput{{ProductID: product.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	cancelled, err := svc.UpdateStatus(order.ID, constants.OrderStatusCancelled)
	if err != nil {
		t.Fatalf("cancel order failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected cancelled status, got %s", cancelled.Status)
	}

	var reloadedProduct models.Product
	if err := db.First(&reloadedProduct, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloadedProduct.StockQuantity != 10 {
		t.Fatalf("expected stock restored to 10, got %d", reloadedProduct.StockQuantity)
	}

	var returnRow models.InventoryHistory
	if err := db.Where("product_id = ? AND change_type = ?", product.ID, constants.StockChangeReturn).First(&returnRow).Error; err != nil {
		t.Fatalf("expected return inventory row: %v", err)
	}
	if returnRow.QuantityChange != 2 {
		t.Fatalf("expected return change 2, got %d", returnRow.QuantityChange)
	}

	var reloadedCoupon models.Coupon
	if err := db.First(&reloadedCoupon, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if reloadedCoupon.UsedCount != 0 {
		t.Fatalf("expected coupon usage released, got %d", reloadedCoupon.UsedCount)
	}

	// 取消是终态
	if _, err := svc.UpdateStatus(order.ID, constants.OrderStatusProcessing); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid after cancel, got %v", err)
	}
}

func TestUpdateOrderStatusValidation(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	product := createOrderTestProduct(t, db, "Bowl", 50, 10)

	order, err := svc.Create(OrderCreateInput{
		CustomerName:  "Sara",
		CustomerEmail: "sara@example.com",
		Items:         []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if _, err := svc.UpdateStatus(order.ID, "shipped-to-mars"); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for unknown status, got %v", err)
	}
	if _, err := svc.UpdateStatus(9999, constants.OrderStatusProcessing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	updated, err := svc.UpdateStatus(order.ID, constants.OrderStatusProcessing)
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.Status != constants.OrderStatusProcessing {
		t.Fatalf("expected processing, got %s", updated.Status)
	}
}

func TestUpdateOrderPaymentStatus(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	product := createOrderTestProduct(t, db, "Bowl", 50, 10)

	order, err := svc.Create(OrderCreateInput{
		CustomerName:  "Sara",
		CustomerEmail: "sara@example.com",
		Items:         []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if _, err := svc.UpdatePaymentStatus(order.ID, "refunded"); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for unknown payment status, got %v", err)
	}

	paid, err := svc.UpdatePaymentStatus(order.ID, constants.PaymentStatusPaid)
	if err != nil {
		t.Fatalf("update payment status failed: %v", err)
	}
	if paid.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("expected paid, got %s", paid.PaymentStatus)
	}
}

func TestLookupOrderByNumberAndEmail(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	product := createOrderTestProduct(t, db, "Bowl", 50, 10)

	order, err := svc.Create(OrderCreateInput{
		CustomerName:  "Sara",
		CustomerEmail: "Sara@Example.com",
		Items:         []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	found, err := svc.GetByOrderNumber(order.OrderNumber)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if found.ID != order.ID {
		t.Fatalf("expected order %d, got %d", order.ID, found.ID)
	}

	if _, err := svc.GetByOrderNumber("ORD-00000000000000-0000"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	orders, total, err := svc.ListByCustomerEmail("sara@example.com", 1, 10)
	if err != nil {
		t.Fatalf("list by email failed: %v", err)
	}
	if total != 1 || len(orders) != 1 {
		t.Fatalf("expected 1 order for customer, got total=%d len=%d", total, len(orders))
	}
}
