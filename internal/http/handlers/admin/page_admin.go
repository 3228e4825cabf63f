package admin

import (
	"errors"

	"github.com/atelier-next/internal/http/response"
	"github.com/atelier-next/internal/models"
	"github.com/atelier-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListSitePages 全部自定义页面（含未发布）
func (h *Handler) ListSitePages(c *gin.Context) {
	pages, err := h.PageService.ListAll()
	if err != nil {
		respondError(c, response.CodeInternal, "list pages failed", err)
		return
	}
	response.Success(c, pages)
}

// GetSitePage 页面详情
func (h *Handler) GetSitePage(c *gin.Context) {
	page, err := h.PageService.GetByKey(c.Param("key"), false)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "page not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "fetch page failed", err)
		return
	}
	response.Success(c, page)
}

// SitePageRequest 页面写入请求
type SitePageRequest struct {
	PageKey     string      `json:"page_key" binding:"required"`
	Title       models.JSON `json:"title" binding:"required"`
	Content     models.JSON `json:"content"`
	IsPublished *bool       `json:"is_published"`
}

// UpsertSitePage 写入页面（存在即更新）
func (h *Handler) UpsertSitePage(c *gin.Context) {
	var req SitePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	input := service.SitePageInput{
		PageKey:     req.PageKey,
		Title:       req.Title,
		Content:     req.Content,
		IsPublished: req.IsPublished,
	}
	if adminID, ok := getAdminID(c); ok {
		input.UpdatedBy = &adminID
	}

	page, err := h.PageService.Upsert(input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidParams) {
			respondError(c, response.CodeBadRequest, err.Error(), nil)
			return
		}
		respondError(c, response.CodeInternal, "save page failed", err)
		return
	}
	response.Success(c, page)
}

// DeleteSitePage 删除页面
func (h *Handler) DeleteSitePage(c *gin.Context) {
	if err := h.PageService.Delete(c.Param("key")); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "page not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "delete page failed", err)
		return
	}
	response.SuccessWithMsg(c, "page deleted", nil)
}
