package public

import (
	"errors"

	"github.com/atelier-next/internal/http/response"
	"github.com/atelier-next/internal/models"
	"github.com/atelier-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AnalyticsTrackRequest 埋点上报请求
type AnalyticsTrackRequest struct {
	EventType string      `json:"event_type" binding:"required"`
	EventData models.JSON `json:"event_data"`
	PageURL   string      `json:"page_url"`
}

// TrackEvent 记录埋点事件
// IP 与 UA 取自请求本身，不信任客户端上报值
func (h *Handler) TrackEvent(c *gin.Context) {
	var req AnalyticsTrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	event, err := h.AnalyticsService.Track(service.AnalyticsTrackInput{
		EventType: req.EventType,
		EventData: req.EventData,
		PageURL:   req.PageURL,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidParams) {
			respondError(c, response.CodeBadRequest, "event_type is required", nil)
			return
		}
		respondError(c, response.CodeInternal, "track event failed", err)
		return
	}
	response.Created(c, gin.H{"id": event.ID})
}
