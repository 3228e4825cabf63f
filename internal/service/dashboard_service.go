package service

import (
	"time"

	"github.com/atelier-next/internal/models"
	"github.com/atelier-next/internal/repository"
)

const dashboardDefaultDays = 30

// DashboardOverview 仪表盘总览
type DashboardOverview struct {
	Orders struct {
		Total     int64 `json:"total"`
		Pending   int64 `json:"pending"`
		Completed int64 `json:"completed"`
		Cancelled int64 `json:"cancelled"`
	} `json:"orders"`
	Revenue       float64 `json:"revenue"`
	DiscountTotal float64 `json:"discount_total"`
	Products      struct {
		Total  int64 `json:"total"`
		Active int64 `json:"active"`
	} `json:"products"`
	UnreadContacts int64 `json:"unread_contacts"`
	Subscribers    int64 `json:"subscribers"`
	PeriodDays     int   `json:"period_days"`
}

// SalesReport 销售报表
type SalesReport struct {
	Trends          []repository.DashboardOrderTrendRow     `json:"trends"`
	StatusBreakdown []repository.DashboardStatusCountRow    `json:"status_breakdown"`
	TopProducts     []repository.DashboardProductRankingRow `json:"top_products"`
	PeriodDays      int                                     `json:"period_days"`
}

// StockReport 库存报表
type StockReport struct {
	OutOfStockProducts int64            `json:"out_of_stock_products"`
	LowStockProducts   int64            `json:"low_stock_products"`
	StockUnitsTotal    int64            `json:"stock_units_total"`
	LowStockList       []models.Product `json:"low_stock_list"`
}

// DashboardService 仪表盘服务
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
	productRepo   repository.ProductRepository
	lowThreshold  int
}

// NewDashboardService 创建仪表盘服务实例
func NewDashboardService(
	dashboardRepo repository.DashboardRepository,
	productRepo repository.ProductRepository,
	lowThreshold int,
) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		productRepo:   productRepo,
		lowThreshold:  lowThreshold,
	}
}

func reportWindow(days int) (time.Time, time.Time, int) {
	if days <= 0 {
		days = dashboardDefaultDays
	}
	end := time.Now()
	start := end.AddDate(0, 0, -days)
	return start, end, days
}

// Overview 获取总览
func (s *DashboardService) Overview(days int) (*DashboardOverview, error) {
	start, end, days := reportWindow(days)
	row, err := s.dashboardRepo.GetOverview(start, end)
	if err != nil {
		return nil, err
	}

	overview := &DashboardOverview{
		Revenue:        row.Revenue,
		DiscountTotal:  row.DiscountTotal,
		UnreadContacts: row.UnreadContacts,
		Subscribers:    row.Subscribers,
		PeriodDays:     days,
	}
	overview.Orders.Total = row.OrdersTotal
	overview.Orders.Pending = row.PendingOrders
	overview.Orders.Completed = row.CompletedOrders
	overview.Orders.Cancelled = row.CancelledOrders
	overview.Products.Total = row.ProductsTotal
	overview.Products.Active = row.ActiveProducts
	return overview, nil
}

// Sales 获取销售报表
func (s *DashboardService) Sales(days int) (*SalesReport, error) {
	start, end, days := reportWindow(days)

	trends, err := s.dashboardRepo.GetOrderTrends(start, end)
	if err != nil {
		return nil, err
	}
	breakdown, err := s.dashboardRepo.GetStatusBreakdown(start, end)
	if err != nil {
		return nil, err
	}
	topProducts, err := s.dashboardRepo.GetTopProducts(start, end, 10)
	if err != nil {
		return nil, err
	}

	return &SalesReport{
		Trends:          trends,
		StatusBreakdown: breakdown,
		TopProducts:     topProducts,
		PeriodDays:      days,
	}, nil
}

// Stock 获取库存报表
func (s *DashboardService) Stock() (*StockReport, error) {
	stats, err := s.dashboardRepo.GetStockStats(s.lowThreshold)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.productRepo.ListLowStock(s.lowThreshold)
	if err != nil {
		return nil, err
	}

	return &StockReport{
		OutOfStockProducts: stats.OutOfStockProducts,
		LowStockProducts:   stats.LowStockProducts,
		StockUnitsTotal:    stats.StockUnitsTotal,
		LowStockList:       lowStock,
	}, nil
}

// RecentOrders 获取最近订单
func (s *DashboardService) RecentOrders(limit int) ([]models.Order, error) {
	return s.dashboardRepo.GetRecentOrders(limit)
}
