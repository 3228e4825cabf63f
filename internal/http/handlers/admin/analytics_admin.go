package admin

import (
	"time"

	"github.com/atelier-next/internal/http/response"
	"github.com/atelier-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListAnalyticsEvents 埋点事件列表
func (h *Handler) ListAnalyticsEvents(c *gin.Context) {
	page, pageSize := normalizePagination(queryInt(c, "page", 1), queryInt(c, "page_size", 20))
	filter := repository.AnalyticsEventFilter{
		Page:      page,
		PageSize:  pageSize,
		EventType: c.Query("event_type"),
	}
	if from := c.Query("created_from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.CreatedFrom = &t
		}
	}
	if to := c.Query("created_to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.CreatedTo = &t
		}
	}

	events, total, err := h.AnalyticsService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "list analytics events failed", err)
		return
	}
	response.SuccessWithPage(c, events, pageMeta(page, pageSize, total))
}

// GetAnalyticsSummary 埋点汇总报表
func (h *Handler) GetAnalyticsSummary(c *gin.Context) {
	summary, err := h.AnalyticsService.Summary(queryInt(c, "days", 30))
	if err != nil {
		respondError(c, response.CodeInternal, "analytics summary failed", err)
		return
	}
	response.Success(c, summary)
}
