package repository

import (
	"time"

	"github.com/atelier-next/internal/constants"
	"github.com/atelier-next/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 仪表盘聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetOverview(startAt, endAt time.Time) (DashboardOverviewRow, error)
	GetOrderTrends(startAt, endAt time.Time) ([]DashboardOrderTrendRow, error)
	GetStatusBreakdown(startAt, endAt time.Time) ([]DashboardStatusCountRow, error)
	GetStockStats(lowStockThreshold int) (DashboardStockStatsRow, error)
	GetTopProducts(startAt, endAt time.Time, limit int) ([]DashboardProductRankingRow, error)
	GetRecentOrders(limit int) ([]models.Order, error)
}

// DashboardOverviewRow 仪表盘总览原始统计结果
type DashboardOverviewRow struct {
	OrdersTotal     int64
	PendingOrders   int64
	CompletedOrders int64
	CancelledOrders int64
	Revenue         float64
	DiscountTotal   float64
	ProductsTotal   int64
	ActiveProducts  int64
	UnreadContacts  int64
	Subscribers     int64
}

// DashboardOrderTrendRow 订单趋势统计
type DashboardOrderTrendRow struct {
	Day         string
	OrdersTotal int64
	Revenue     float64
}

// DashboardStatusCountRow 订单状态分布
type DashboardStatusCountRow struct {
	Status string
	Count  int64
}

// DashboardStockStatsRow 库存统计
type DashboardStockStatsRow struct {
	OutOfStockProducts int64
	LowStockProducts   int64
	StockUnitsTotal    int64
}

// DashboardProductRankingRow 商品销量排行原始行
type DashboardProductRankingRow struct {
	ProductID   uint
	ProductName string
	Orders      int64
	Quantity    int64
	SalesAmount float64
}

// GormDashboardRepository GORM 仪表盘聚合实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// 取消订单不计入销售额
func revenueOrderStatuses() []string {
	return []string{
		constants.OrderStatusPending,
		constants.OrderStatusProcessing,
		constants.OrderStatusCompleted,
	}
}

// GetOverview 获取总览统计
func (r *GormDashboardRepository) GetOverview(startAt, endAt time.Time) (DashboardOverviewRow, error) {
	result := DashboardOverviewRow{}

	orderBase := func() *gorm.DB {
		return r.db.Model(&models.Order{}).
			Where("created_at >= ? AND created_at < ?", startAt, endAt)
	}

	if err := orderBase().Count(&result.OrdersTotal).Error; err != nil {
		return result, err
	}
	if err := orderBase().Where("status = ?", constants.OrderStatusPending).
		Count(&result.PendingOrders).Error; err != nil {
		return result, err
	}
	if err := orderBase().Where("status = ?", constants.OrderStatusCompleted).
		Count(&result.CompletedOrders).Error; err != nil {
		return result, err
	}
	if err := orderBase().Where("status = ?", constants.OrderStatusCancelled).
		Count(&result.CancelledOrders).Error; err != nil {
		return result, err
	}

	type sumRow struct {
		Revenue       float64
		DiscountTotal float64
	}
	var sums sumRow
	err := orderBase().
		Select("COALESCE(SUM(total_amount), 0) AS revenue, COALESCE(SUM(discount_amount), 0) AS discount_total").
		Where("status IN ?", revenueOrderStatuses()).
		Scan(&sums).Error
	if err != nil {
		return result, err
	}
	result.Revenue = sums.Revenue
	result.DiscountTotal = sums.DiscountTotal

	if err := r.db.Model(&models.Product{}).Count(&result.ProductsTotal).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Product{}).
		Where("is_available = ?", true).
		Count(&result.ActiveProducts).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Contact{}).
		Where("status = ?", constants.ContactStatusUnread).
		Count(&result.UnreadContacts).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.NewsletterSubscriber{}).
		Where("is_active = ?", true).
		Count(&result.Subscribers).Error; err != nil {
		return result, err
	}

	return result, nil
}

// GetOrderTrends 获取按天订单趋势
func (r *GormDashboardRepository) GetOrderTrends(startAt, endAt time.Time) ([]DashboardOrderTrendRow, error) {
	rows := make([]DashboardOrderTrendRow, 0)
	dayExpr := dayBucketExpr(r.db, "created_at")
	err := r.db.Model(&models.Order{}).
		Select(dayExpr+" AS day, COUNT(*) AS orders_total, COALESCE(SUM(CASE WHEN status != ? THEN total_amount ELSE 0 END), 0) AS revenue",
			constants.OrderStatusCancelled).
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Group(dayExpr).
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetStatusBreakdown 获取订单状态分布
func (r *GormDashboardRepository) GetStatusBreakdown(startAt, endAt time.Time) ([]DashboardStatusCountRow, error) {
	rows := make([]DashboardStatusCountRow, 0)
	err := r.db.Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetStockStats 获取库存统计
func (r *GormDashboardRepository) GetStockStats(lowStockThreshold int) (DashboardStockStatsRow, error) {
	result := DashboardStockStatsRow{}
	if lowStockThreshold <= 0 {
		lowStockThreshold = constants.DefaultLowStockThreshold
	}

	if err := r.db.Model(&models.Product{}).
		Where("stock_quantity <= 0").
		Count(&result.OutOfStockProducts).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Product{}).
		Where("stock_quantity > 0 AND stock_quantity <= ?", lowStockThreshold).
		Count(&result.LowStockProducts).Error; err != nil {
		return result, err
	}

	type sumRow struct {
		Total int64
	}
	var sums sumRow
	err := r.db.Model(&models.Product{}).
		Select("COALESCE(SUM(stock_quantity), 0) AS total").
		Scan(&sums).Error
	if err != nil {
		return result, err
	}
	result.StockUnitsTotal = sums.Total
	return result, nil
}

// GetTopProducts 获取商品销量排行
func (r *GormDashboardRepository) GetTopProducts(startAt, endAt time.Time, limit int) ([]DashboardProductRankingRow, error) {
	if limit <= 0 {
		limit = 10
	}
	rows := make([]DashboardProductRankingRow, 0)
	err := r.db.Model(&models.OrderItem{}).
		Select("order_items.product_id AS product_id, order_items.product_name AS product_name, COUNT(DISTINCT order_items.order_id) AS orders, COALESCE(SUM(order_items.quantity), 0) AS quantity, COALESCE(SUM(order_items.price * order_items.quantity), 0) AS sales_amount").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.created_at >= ? AND orders.created_at < ? AND orders.status != ?", startAt, endAt, constants.OrderStatusCancelled).
		Group("order_items.product_id, order_items.product_name").
		Order("quantity DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetRecentOrders 获取最近订单
func (r *GormDashboardRepository) GetRecentOrders(limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = 10
	}
	orders := make([]models.Order, 0)
	err := r.db.Model(&models.Order{}).
		Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
