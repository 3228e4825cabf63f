package admin

import (
	"github.com/atelier-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboardOverview 仪表盘总览
func (h *Handler) GetDashboardOverview(c *gin.Context) {
	overview, err := h.DashboardService.Overview(queryInt(c, "days", 30))
	if err != nil {
		respondError(c, response.CodeInternal, "dashboard overview failed", err)
		return
	}
	response.Success(c, overview)
}

// GetSalesReport 销售报表
func (h *Handler) GetSalesReport(c *gin.Context) {
	report, err := h.DashboardService.Sales(queryInt(c, "days", 30))
	if err != nil {
		respondError(c, response.CodeInternal, "sales report failed", err)
		return
	}
	response.Success(c, report)
}

// GetStockReport 库存报表
func (h *Handler) GetStockReport(c *gin.Context) {
	report, err := h.DashboardService.Stock()
	if err != nil {
		respondError(c, response.CodeInternal, "stock report failed", err)
		return
	}
	response.Success(c, report)
}

// GetRecentOrders 最近订单
func (h *Handler) GetRecentOrders(c *gin.Context) {
	orders, err := h.DashboardService.RecentOrders(queryInt(c, "limit", 10))
	if err != nil {
		respondError(c, response.CodeInternal, "recent orders failed", err)
		return
	}
	response.Success(c, orders)
}
