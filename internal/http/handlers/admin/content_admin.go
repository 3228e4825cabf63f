package admin

import (
	"errors"

	"github.com/atelier-next/internal/http/response"
	"github.com/atelier-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListSiteContent 全部站点内容（按 section 分组）
func (h *Handler) ListSiteContent(c *gin.Context) {
	grouped, err := h.ContentService.ListAll()
	if err != nil {
		respondError(c, response.CodeInternal, "list site content failed", err)
		return
	}
	response.Success(c, grouped)
}

// GetSiteContentSection 指定 section 的内容键值
func (h *Handler) GetSiteContentSection(c *gin.Context) {
	section := c.Param("section")
	contents, err := h.ContentService.GetSection(section)
	if err != nil {
		if errors.Is(err, service.ErrInvalidParams) {
			respondError(c, response.CodeBadRequest, "section is required", nil)
			return
		}
		respondError(c, response.CodeInternal, "fetch site content failed", err)
		return
	}
	response.Success(c, contents)
}

// SiteContentRequest 站点内容写入请求
type SiteContentRequest struct {
	Section      string `json:"section" binding:"required"`
	ContentKey   string `json:"content_key" binding:"required"`
	ContentValue string `json:"content_value"`
	ContentType  string `json:"content_type"`
}

// UpsertSiteContent 写入站点内容（存在即更新）
func (h *Handler) UpsertSiteContent(c *gin.Context) {
	var req SiteContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	content, err := h.ContentService.Upsert(service.SiteContentInput{
		Section:      req.Section,
		ContentKey:   req.ContentKey,
		ContentValue: req.ContentValue,
		ContentType:  req.ContentType,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidParams) {
			respondError(c, response.CodeBadRequest, err.Error(), nil)
			return
		}
		respondError(c, response.CodeInternal, "save site content failed", err)
		return
	}
	response.Success(c, content)
}

// DeleteSiteContent 删除站点内容
func (h *Handler) DeleteSiteContent(c *gin.Context) {
	section := c.Param("section")
	key := c.Param("key")
	if err := h.ContentService.Delete(section, key); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "content not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "delete site content failed", err)
		return
	}
	response.SuccessWithMsg(c, "content deleted", nil)
}
