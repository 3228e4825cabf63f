package admin

import (
	"errors"

	"github.com/atelier-next/internal/http/response"
	"github.com/atelier-next/internal/repository"
	"github.com/atelier-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListContacts 联系消息列表
func (h *Handler) ListContacts(c *gin.Context) {
	page, pageSize := normalizePagination(queryInt(c, "page", 1), queryInt(c, "page_size", 20))
	filter := repository.ContactListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
		Search:   c.Query("search"),
	}

	contacts, total, err := h.ContactService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "list contacts failed", err)
		return
	}
	response.SuccessWithPage(c, contacts, pageMeta(page, pageSize, total))
}

// GetContact 联系消息详情
func (h *Handler) GetContact(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	contact, err := h.ContactService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "contact not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "fetch contact failed", err)
		return
	}
	response.Success(c, contact)
}

// ContactStatusRequest 联系消息状态更新请求
type ContactStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateContactStatus 更新联系消息状态
func (h *Handler) UpdateContactStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ContactStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	contact, err := h.ContactService.UpdateStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "contact not found", nil)
		case errors.Is(err, service.ErrInvalidParams):
			respondError(c, response.CodeBadRequest, "invalid contact status", nil)
		default:
			respondError(c, response.CodeInternal, "update contact status failed", err)
		}
		return
	}
	response.Success(c, contact)
}

// DeleteContact 删除联系消息
func (h *Handler) DeleteContact(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ContactService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "contact not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "delete contact failed", err)
		return
	}
	response.SuccessWithMsg(c, "contact deleted", nil)
}
