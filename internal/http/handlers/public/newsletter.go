package public

import (
	"errors"

	"github.com/atelier-next/internal/http/response"
	"github.com/atelier-next/internal/service"

	"github.com/gin-gonic/gin"
)

// NewsletterRequest 订阅/退订请求
type NewsletterRequest struct {
	Email string `json:"email" binding:"required"`
}

// SubscribeNewsletter 订阅邮件列表
func (h *Handler) SubscribeNewsletter(c *gin.Context) {
	var req NewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	subscriber, err := h.NewsletterService.Subscribe(req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConflict):
			respondError(c, response.CodeConflict, "email already subscribed", nil)
		case errors.Is(err, service.ErrInvalidEmail), errors.Is(err, service.ErrInvalidParams):
			respondError(c, response.CodeBadRequest, "invalid email address", nil)
		default:
			respondError(c, response.CodeInternal, "subscribe failed", err)
		}
		return
	}
	response.Created(c, gin.H{"email": subscriber.Email})
}

// UnsubscribeNewsletter 退订邮件列表
func (h *Handler) UnsubscribeNewsletter(c *gin.Context) {
	var req NewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if err := h.NewsletterService.Unsubscribe(req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "email not subscribed", nil)
		case errors.Is(err, service.ErrInvalidEmail), errors.Is(err, service.ErrInvalidParams):
			respondError(c, response.CodeBadRequest, "invalid email address", nil)
		default:
			respondError(c, response.CodeInternal, "unsubscribe failed", err)
		}
		return
	}
	response.SuccessWithMsg(c, "unsubscribed", nil)
}
