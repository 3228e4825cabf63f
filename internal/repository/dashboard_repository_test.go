package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/atelier-next/internal/constants"
	"github.com/atelier-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupDashboardRepositoryTest(t *testing.T) (*GormDashboardRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:dashboard_repository_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Contact{},
		&models.NewsletterSubscriber{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewDashboardRepository(db), db
}

func createDashboardTestOrder(t *testing.T, db *gorm.DB, number, status string, total float64, items []models.OrderItem) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNumber:   number,
		CustomerName:  "Sara",
		CustomerEmail: "sara@example.com",
		TotalAmount:   models.NewMoneyFromFloat(total),
		PaymentStatus: constants.PaymentStatusUnpaid,
		Status:        status,
		Items:         items,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestDashboardOverviewExcludesCancelledRevenue(t *testing.T) {
	repo, db := setupDashboardRepositoryTest(t)

	createDashboardTestOrder(t, db, "ORD-1", constants.OrderStatusPending, 100, nil)
	createDashboardTestOrder(t, db, "ORD-2", constants.OrderStatusCompleted, 50, nil)
	createDashboardTestOrder(t, db, "ORD-3", constants.OrderStatusCancelled, 30, nil)

	if err := db.Create(&models.Contact{Name: "Sara", Email: "sara@example.com", Message: "hi", Status: constants.ContactStatusUnread}).Error; err != nil {
		t.Fatalf("create contact failed: %v", err)
	}
	if err := db.Create(&models.NewsletterSubscriber{Email: "sara@example.com", IsActive: true, SubscribedAt: time.Now()}).Error; err != nil {
		t.Fatalf("create subscriber failed: %v", err)
	}

	startAt := time.Now().Add(-time.Hour)
	endAt := time.Now().Add(time.Hour)
	overview, err := repo.GetOverview(startAt, endAt)
	if err != nil {
		t.Fatalf("get overview failed: %v", err)
	}
	if overview.OrdersTotal != 3 {
		t.Fatalf("expected 3 orders, got %d", overview.OrdersTotal)
	}
	if overview.PendingOrders != 1 || overview.CompletedOrders != 1 || overview.CancelledOrders != 1 {
		t.Fatalf("unexpected status counts: %+v", overview)
	}
	if overview.Revenue != 150 {
		t.Fatalf("expected revenue 150 excluding cancelled, got %v", overview.Revenue)
	}
	if overview.UnreadContacts != 1 {
		t.Fatalf("expected 1 unread contact, got %d", overview.UnreadContacts)
	}
	if overview.Subscribers != 1 {
		t.Fatalf("expected 1 active subscriber, got %d", overview.Subscribers)
	}
}

func TestDashboardStockStats(t *testing.T) {
	repo, db := setupDashboardRepositoryTest(t)

	products := []models.Product{
		{NameJSON: models.JSON(map[string]interface{}{"en": "Out"}), Price: models.NewMoneyFromFloat(10), StockQuantity: 0, IsAvailable: true},
		{NameJSON: models.JSON(map[string]interface{}{"en": "Low"}), Price: models.NewMoneyFromFloat(10), StockQuantity: 3, IsAvailable: true},
		{NameJSON: models.JSON(map[string]interface{}{"en": "High"}), Price: models.NewMoneyFromFloat(10), StockQuantity: 50, IsAvailable: true},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			t.Fatalf("create product failed: %v", err)
		}
	}

	stats, err := repo.GetStockStats(10)
	if err != nil {
		t.Fatalf("get stock stats failed: %v", err)
	}
	if stats.OutOfStockProducts != 1 {
		t.Fatalf("expected 1 out of stock, got %d", stats.OutOfStockProducts)
	}
	if stats.LowStockProducts != 1 {
		t.Fatalf("expected 1 low stock, got %d", stats.LowStockProducts)
	}
	if stats.StockUnitsTotal != 53 {
		t.Fatalf("expected 53 stock units, got %d", stats.StockUnitsTotal)
	}
}

func TestDashboardTopProductsExcludeCancelled(t *testing.T) {
	repo, db := setupDashboardRepositoryTest(t)

	createDashboardTestOrder(t, db, "ORD-1", constants.OrderStatusCompleted, 80, []models.OrderItem{
		{ProductID: 1, ProductName: "Bowl", Quantity: 2, Price: models.NewMoneyFromFloat(40)},
	})
	createDashboardTestOrder(t, db, "ORD-2", constants.OrderStatusPending, 40, []models.OrderItem{
		{ProductID: 1, ProductName: "Bowl", Quantity: 1, Price: models.NewMoneyFromFloat(40)},
		{ProductID: 2, ProductName: "Bag", Quantity: 1, Price: models.NewMoneyFromFloat(150)},
	})
	createDashboardTestOrder(t, db, "ORD-3", constants.OrderStatusCancelled, 400, []models.OrderItem{
		{ProductID: 2, ProductName: "Bag", Quantity: 10, Price: models.NewMoneyFromFloat(40)},
	})

	startAt := time.Now().Add(-time.Hour)
	endAt := time.Now().Add(time.Hour)
	rows, err := repo.GetTopProducts(startAt, endAt, 10)
	if err != nil {
		t.Fatalf("get top products failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 ranked products, got %d", len(rows))
	}
	if rows[0].ProductID != 1 || rows[0].Quantity != 3 || rows[0].Orders != 2 {
		t.Fatalf("unexpected top product: %+v", rows[0])
	}
	if rows[1].ProductID != 2 || rows[1].Quantity != 1 {
		t.Fatalf("expected cancelled order excluded from ranking: %+v", rows[1])
	}
}

func TestDashboardRecentOrders(t *testing.T) {
	repo, db := setupDashboardRepositoryTest(t)

	for i := 0; i < 5; i++ {
		createDashboardTestOrder(t, db, fmt.Sprintf("ORD-%d", i), constants.OrderStatusPending, 10, nil)
	}

	orders, err := repo.GetRecentOrders(3)
	if err != nil {
		t.Fatalf("get recent orders failed: %v", err)
	}
	if len(orders) != 3 {
		t.Fatalf("expected 3 recent orders, got %d", len(orders))
	}
}
