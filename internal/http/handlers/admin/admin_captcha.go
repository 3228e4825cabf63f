package admin

import (
	"errors"

	"github.com/atelier-next/internal/http/response"
	"github.com/atelier-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetCaptcha 获取图片验证码挑战
func (h *Handler) GetCaptcha(c *gin.Context) {
	if h.CaptchaService == nil {
		respondError(c, response.CodeInternal, "captcha service unavailable", nil)
		return
	}
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		if errors.Is(err, service.ErrCaptchaConfigInvalid) {
			respondError(c, response.CodeBadRequest, "captcha disabled", nil)
			return
		}
		respondError(c, response.CodeInternal, "generate captcha failed", err)
		return
	}
	response.Success(c, challenge)
}
