package admin

import (
	"github.com/atelier-next/internal/http/response"
	"github.com/atelier-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListNewsletterSubscribers 订阅者列表
func (h *Handler) ListNewsletterSubscribers(c *gin.Context) {
	page, pageSize := normalizePagination(queryInt(c, "page", 1), queryInt(c, "page_size", 20))
	filter := repository.NewsletterListFilter{
		Page:       page,
		PageSize:   pageSize,
		OnlyActive: c.Query("only_active") == "true",
	}

	subscribers, total, err := h.NewsletterService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "list subscribers failed", err)
		return
	}
	response.SuccessWithPage(c, subscribers, pageMeta(page, pageSize, total))
}
