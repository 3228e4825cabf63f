package public

import (
	"errors"

	"github.com/atelier-next/internal/http/response"
	"github.com/atelier-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ContactSubmitRequest 联系表单提交请求
type ContactSubmitRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// SubmitContact 提交联系表单
func (h *Handler) SubmitContact(c *gin.Context) {
	var req ContactSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	contact, err := h.ContactService.Submit(service.ContactSubmitInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "invalid email address", nil)
		case errors.Is(err, service.ErrInvalidParams):
			respondError(c, response.CodeBadRequest, "name, email and message are required", nil)
		default:
			respondError(c, response.CodeInternal, "submit contact failed", err)
		}
		return
	}
	response.Created(c, gin.H{"id": contact.ID})
}
