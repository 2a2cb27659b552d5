package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"singular-attend/backend/internal/dto"
	"singular-attend/backend/internal/service"
	"singular-attend/backend/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login 管理员登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, 11001, "用户名或密码错误")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// RefreshToken 刷新 Token
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefresh) {
			response.Unauthorized(c, 11002, "refresh token 无效")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Logout 管理员登出，当前 access token 加入黑名单
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, expiresAt, ok := GetTokenMeta(c)
	if !ok {
		// 没有 token 元数据也允许登出成功
		response.OK(c, nil)
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), jti, expiresAt); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// Me 当前管理员信息
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	adminID, ok := MustGetAdminID(c)
	if !ok {
		return
	}

	username := ""
	if v, exists := c.Get("username"); exists {
		username, _ = v.(string)
	}

	response.OK(c, dto.AdminResponse{ID: adminID, Username: username})
}

// ChangePassword 修改密码
// POST /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	adminID, ok := MustGetAdminID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), adminID, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrWrongOldPassword):
			response.BadRequest(c, 11003, "原密码错误")
		case errors.Is(err, service.ErrAdminNotFound):
			response.Unauthorized(c, 10002, "未认证")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}
