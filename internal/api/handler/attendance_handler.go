package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"singular-attend/backend/internal/dto"
	"singular-attend/backend/internal/service"
	"singular-attend/backend/pkg/response"
)

// AttendanceHandler 考勤编辑模块 HTTP 处理器
// 同时服务管理端与员工门户：门户路由从路径取 user_id，管理端从请求体
type AttendanceHandler struct {
	attSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attSvc: attSvc}
}

// Cycle 状态循环（管理端）
// POST /api/v1/attendance/cycle
func (h *AttendanceHandler) Cycle(c *gin.Context) {
	var req dto.CycleAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.attSvc.Cycle(c.Request.Context(), req.UserID, req.Date)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}
	response.OK(c, result)
}

// PortalCycle 状态循环（员工门户）
// POST /api/v1/portal/users/:id/attendance/cycle
func (h *AttendanceHandler) PortalCycle(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		response.BadRequest(c, 10001, "员工ID不能为空")
		return
	}

	var req dto.PortalCycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.attSvc.Cycle(c.Request.Context(), userID, req.Date)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}
	response.OK(c, result)
}

// Set 直接指派状态（管理端）
// PUT /api/v1/attendance
func (h *AttendanceHandler) Set(c *gin.Context) {
	var req dto.SetAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.attSvc.Set(c.Request.Context(), &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}
	response.OK(c, result)
}

// Clear 清空状态（管理端）
// DELETE /api/v1/attendance?user_id=xxx&date=YYYY-MM-DD
func (h *AttendanceHandler) Clear(c *gin.Context) {
	userID := c.Query("user_id")
	date := c.Query("date")
	if userID == "" || date == "" {
		response.BadRequest(c, 10001, "user_id 与 date 不能为空")
		return
	}

	if err := h.attSvc.Clear(c.Request.Context(), userID, date); err != nil {
		h.handleAttendanceError(c, err)
		return
	}
	response.OK(c, nil)
}

// GetMonth 员工单月考勤视图（员工门户）
// GET /api/v1/portal/users/:id/attendance?month=YYYY-MM
func (h *AttendanceHandler) GetMonth(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		response.BadRequest(c, 10001, "员工ID不能为空")
		return
	}
	month := c.Query("month")
	if month == "" {
		response.BadRequest(c, 10001, "month 不能为空")
		return
	}

	result, err := h.attSvc.GetMonth(c.Request.Context(), userID, month)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}
	response.OK(c, result)
}

// handleAttendanceError 统一处理考勤模块业务错误
func (h *AttendanceHandler) handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 16001, "员工不存在")
	case errors.Is(err, service.ErrDayBlocked):
		response.UnprocessableEntity(c, 16002, "该日期不可编辑（雇佣期外、周末或公司假日）")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 16003, "日期格式无效，应为 YYYY-MM-DD")
	case errors.Is(err, service.ErrInvalidMonth):
		response.BadRequest(c, 16004, "月份格式不正确，应为 YYYY-MM")
	case errors.Is(err, service.ErrCategoryNotFound):
		response.BadRequest(c, 16005, "考勤类别不存在")
	case errors.Is(err, service.ErrCategoryInactive):
		response.UnprocessableEntity(c, 16006, "该类别已停用，不能指派")
	default:
		response.InternalError(c)
	}
}
