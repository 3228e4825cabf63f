package admin

import (
	"errors"

	"github.com/atelier-next/internal/http/response"
	"github.com/atelier-next/internal/models"
	"github.com/atelier-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListSeoSettings 全部 SEO 配置
func (h *Handler) ListSeoSettings(c *gin.Context) {
	settings, err := h.SeoService.ListAll()
	if err != nil {
		respondError(c, response.CodeInternal, "list seo settings failed", err)
		return
	}
	response.Success(c, settings)
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

// SeoSettingRequest SEO 配置写入请求
type SeoSettingRequest struct {
	Page         string             `json:"page" binding:"required"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Keywords     models.StringArray `json:"keywords"`
	OGImage      string             `json:"og_image"`
	CanonicalURL string             `json:"canonical_url"`
}

// UpsertSeoSetting 写入 SEO 配置（存在即更新）
func (h *Handler) UpsertSeoSetting(c *gin.Context) {
	var req SeoSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	setting, err := h.SeoService.Upsert(service.SeoSettingInput{
		Page:         req.Page,
		Title:        req.Title,
		Description:  req.Description,
		Keywords:     req.Keywords,
		OGImage:      req.OGImage,
		CanonicalURL: req.CanonicalURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidParams) {
			respondError(c, response.CodeBadRequest, err.Error(), nil)
			return
		}
		respondError(c, response.CodeInternal, "save seo setting failed", err)
		return
	}
	response.Success(c, setting)
}

// DeleteSeoSetting 删除 SEO 配置
func (h *Handler) DeleteSeoSetting(c *gin.Context) {
	if err := h.SeoService.Delete(c.Param("page")); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "seo setting not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "delete seo setting failed", err)
		return
	}
	response.SuccessWithMsg(c, "seo setting deleted", nil)
}
