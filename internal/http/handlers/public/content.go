package public

import (
	"errors"

	"github.com/atelier-next/internal/http/response"
	"github.com/atelier-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetSiteContentSection 指定 section 的站点内容
func (h *Handler) GetSiteContentSection(c *gin.Context) {
	contents, err := h.ContentService.GetSection(c.Param("section"))
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

// ListPublishedPages 已发布页面列表
func (h *Handler) ListPublishedPages(c *gin.Context) {
	pages, err := h.PageService.ListPublished()
	if err != nil {
		respondError(c, response.CodeInternal, "list pages failed", err)
		return
	}
	response.Success(c, pages)
}

// GetPublishedPage 已发布页面详情
func (h *Handler) GetPublishedPage(c *gin.Context) {
	page, err := h.PageService.GetByKey(c.Param("key"), true)
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

// GetSeoSetting 指定页面的 SEO 配置
func (h *Handler) GetSeoSetting(c *gin.Context) {
	setting, err := h.SeoService.GetByPage(c.Param("page"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "seo setting not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "fetch seo setting failed", err)
		return
	}
	response.Success(c, setting)
}
