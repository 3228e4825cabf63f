package admin

import (
	"errors"

	"github.com/atelier-next/internal/http/response"
	"github.com/atelier-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AssistChatRequest 智能助手对话请求
type AssistChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// AssistChat 自由对话
func (h *Handler) AssistChat(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	var req AssistChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	conversation, err := h.AssistService.Chat(c.Request.Context(), adminID, req.Message)
	if err != nil {
		h.respondAssistError(c, err)
		return
	}
	response.Success(c, conversation)
}

// AssistSeoRequest SEO 建议请求
type AssistSeoRequest struct {
	Page    string `json:"page" binding:"required"`
	Content string `json:"content"`
}

// AssistSeoSuggestions 生成页面 SEO 建议
func (h *Handler) AssistSeoSuggestions(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	var req AssistSeoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	conversation, err := h.AssistService.SeoSuggestions(c.Request.Context(), adminID, req.Page, req.Content)
	if err != nil {
		h.respondAssistError(c, err)
		return
	}
	response.Success(c, conversation)
}

// AssistMarketingRequest 营销分析请求
type AssistMarketingRequest struct {
	SalesSummary string `json:"sales_summary" binding:"required"`
}

// AssistMarketingInsights 基于销售摘要生成营销建议
func (h *Handler) AssistMarketingInsights(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	var req AssistMarketingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	conversation, err := h.AssistService.MarketingInsights(c.Request.Context(), adminID, req.SalesSummary)
	if err != nil {
		h.respondAssistError(c, err)
		return
	}
	response.Success(c, conversation)
}

// AssistContentRequest 文案润色请求
type AssistContentRequest struct {
	Content string `json:"content" binding:"required"`
}

// AssistContentImprovement 润色站点文案
func (h *Handler) AssistContentImprovement(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	var req AssistContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	conversation, err := h.AssistService.ContentImprovement(c.Request.Context(), adminID, req.Content)
	if err != nil {
		h.respondAssistError(c, err)
		return
	}
	response.Success(c, conversation)
}

// AssistEmailRequest 客服回信草拟请求
type AssistEmailRequest struct {
	CustomerMessage string `json:"customer_message" binding:"required"`
	Tone            string `json:"tone"`
}

// AssistEmailResponse 草拟客服回信
func (h *Handler) AssistEmailResponse(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	var req AssistEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	conversation, err := h.AssistService.EmailResponse(c.Request.Context(), adminID, req.CustomerMessage, req.Tone)
	if err != nil {
		h.respondAssistError(c, err)
		return
	}
	response.Success(c, conversation)
}

// AssistHistory 当前管理员的对话历史
func (h *Handler) AssistHistory(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	history, err := h.AssistService.History(adminID, queryInt(c, "limit", 50))
	if err != nil {
		respondError(c, response.CodeInternal, "assist history failed", err)
		return
	}
	response.Success(c, history)
}

func (h *Handler) respondAssistError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidParams):
		respondError(c, response.CodeBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrAssistDisabled):
		respondError(c, response.CodeBadRequest, "assistant is not configured", nil)
	case errors.Is(err, service.ErrAssistUnavailable):
		respondError(c, response.CodeInternal, "assistant temporarily unavailable", err)
	default:
		respondError(c, response.CodeInternal, "assistant request failed", err)
	}
}
