package public

import (
	"errors"
	"strings"
	"time"

	"github.com/atelier-next/internal/http/response"
	"github.com/atelier-next/internal/models"
	"github.com/atelier-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ShopRegisterRequest 商城用户注册请求
type ShopRegisterRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// ShopRegister 注册商城账号
func (h *Handler) ShopRegister(c *gin.Context) {
	var req ShopRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	user, err := h.ShopAuthService.Register(service.ShopRegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			respondError(c, response.CodeConflict, "email already registered", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		case errors.Is(err, service.ErrInvalidParams):
			respondError(c, response.CodeBadRequest, "invalid registration data", nil)
		default:
			respondError(c, response.CodeInternal, "register failed", err)
		}
		return
	}
	requestLog(c).Infow("shop_user_registered", "user_id", user.ID)
	response.Created(c, shopUserView(user))
}

// ShopLoginRequest 商城用户登录请求
type ShopLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ShopLogin 商城用户登录
func (h *Handler) ShopLogin(c *gin.Context) {
	var req ShopLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	user, token, expiresAt, err := h.ShopAuthService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, response.CodeUnauthorized, "invalid email or password", nil)
			return
		}
		respondError(c, response.CodeInternal, "login failed", err)
		return
	}
	response.Success(c, gin.H{
		"token":      token,
		"user":       shopUserView(user),
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}

// ShopLogout 商城用户登出
func (h *Handler) ShopLogout(c *gin.Context) {
	token := extractBearerToken(c)
	if err := h.ShopAuthService.Logout(token); err != nil {
		respondError(c, response.CodeInternal, "logout failed", err)
		return
	}
	response.SuccessWithMsg(c, "logged out", nil)
}

// ShopProfile 当前登录用户资料
func (h *Handler) ShopProfile(c *gin.Context) {
	userID, ok := getShopUserID(c)
	if !ok {
		return
	}
	user, err := h.ShopUserRepo.GetByID(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "fetch profile failed", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeUnauthorized, "unauthorized", nil)
		return
	}
	response.Success(c, shopUserView(user))
}

// ShopProfileUpdateRequest 资料更新请求
type ShopProfileUpdateRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
}

// ShopUpdateProfile 更新当前登录用户资料
func (h *Handler) ShopUpdateProfile(c *gin.Context) {
	userID, ok := getShopUserID(c)
	if !ok {
		return
	}
	var req ShopProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	user, err := h.ShopAuthService.UpdateProfile(userID, service.ShopProfileUpdateInput{
		FullName: req.FullName,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeUnauthorized, "unauthorized", nil)
		case errors.Is(err, service.ErrInvalidParams):
			respondError(c, response.CodeBadRequest, "invalid profile data", nil)
		default:
			respondError(c, response.CodeInternal, "update profile failed", err)
		}
		return
	}
	response.Success(c, shopUserView(user))
}

// ShopChangePasswordRequest 修改密码请求
type ShopChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ShopChangePassword 修改当前登录用户密码，成功后所有会话失效
func (h *Handler) ShopChangePassword(c *gin.Context) {
	userID, ok := getShopUserID(c)
	if !ok {
		return
	}
	var req ShopChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if err := h.ShopAuthService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPassword):
			respondError(c, response.CodeBadRequest, "old password incorrect", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeUnauthorized, "unauthorized", nil)
		default:
			respondError(c, response.CodeInternal, "change password failed", err)
		}
		return
	}
	response.SuccessWithMsg(c, "password changed", nil)
}

func shopUserView(user *models.ShopUser) gin.H {
	return gin.H{
		"id":        user.ID,
		"full_name": user.FullName,
		"email":     user.Email,
		"phone":     user.Phone,
		"address":   user.Address,
	}
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
