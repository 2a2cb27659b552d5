package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"singular-attend/backend/internal/dto"
	"singular-attend/backend/internal/service"
	"singular-attend/backend/pkg/response"
)

// UserHandler 员工模块 HTTP 处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// ListUsers 获取员工列表（管理端）
// GET /api/v1/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": users})
}

// ListPortalUsers 获取员工列表（员工门户，无需认证）
// GET /api/v1/portal/users
func (h *UserHandler) ListPortalUsers(c *gin.Context) {
	users, err := h.userSvc.ListPortal(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": users})
}

// GetUser 获取员工详情
// GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "员工ID不能为空")
		return
	}

	user, err := h.userSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleUserError(c, err)
		return
	}
	response.OK(c, user)
}

// CreateUser 创建员工
// POST /api/v1/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.userSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleUserError(c, err)
		return
	}
	response.Created(c, user)
}

// UpdateUser 更新员工
// PUT /api/v1/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "员工ID不能为空")
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.userSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleUserError(c, err)
		return
	}
	response.OK(c, user)
}

// DeleteUser 删除员工
// DELETE /api/v1/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "员工ID不能为空")
		return
	}

	if err := h.userSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleUserError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleUserError 统一处理员工模块业务错误
func (h *UserHandler) handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, "员工不存在")
	case errors.Is(err, service.ErrAMExists):
		response.Conflict(c, 12002, "员工编号已存在")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 12003, "日期格式无效，应为 YYYY-MM-DD")
	case errors.Is(err, service.ErrEndBeforeStart):
		response.UnprocessableEntity(c, 12004, "离职日期不能早于入职日期")
	case errors.Is(err, service.ErrDepartmentNotFound):
		response.BadRequest(c, 12005, "部门不存在")
	default:
		response.InternalError(c)
	}
}
