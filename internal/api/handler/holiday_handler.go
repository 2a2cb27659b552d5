package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"singular-attend/backend/internal/dto"
	"singular-attend/backend/internal/service"
	"singular-attend/backend/pkg/response"
)

// HolidayHandler 公司假日模块 HTTP 处理器
type HolidayHandler struct {
	holidaySvc service.HolidayService
}

// NewHolidayHandler 创建 HolidayHandler
func NewHolidayHandler(holidaySvc service.HolidayService) *HolidayHandler {
	return &HolidayHandler{holidaySvc: holidaySvc}
}

// ListHolidays 获取假日列表
// GET /api/v1/holidays
func (h *HolidayHandler) ListHolidays(c *gin.Context) {
	holidays, err := h.holidaySvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": holidays})
}

// CreateHoliday 创建假日
// POST /api/v1/holidays
func (h *HolidayHandler) CreateHoliday(c *gin.Context) {
	var req dto.CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	holiday, err := h.holidaySvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleHolidayError(c, err)
		return
	}
	response.Created(c, holiday)
}

// DeleteHoliday 删除假日
// DELETE /api/v1/holidays/:id
func (h *HolidayHandler) DeleteHoliday(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "假日ID不能为空")
		return
	}

	if err := h.holidaySvc.Delete(c.Request.Context(), id); err != nil {
		h.handleHolidayError(c, err)
		return
	}
	response.OK(c, nil)
}

// ImportICS 从 ICS 日历文件导入假日
// POST /api/v1/holidays/import-ics（multipart 字段名 file）
func (h *HolidayHandler) ImportICS(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "缺少 ICS 文件")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, 15002, "ICS 文件无法读取")
		return
	}
	defer file.Close()

	result, err := h.holidaySvc.ImportICS(c.Request.Context(), file)
	if err != nil {
		h.handleHolidayError(c, err)
		return
	}
	response.OK(c, result)
}

// handleHolidayError 统一处理假日模块业务错误
func (h *HolidayHandler) handleHolidayError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrHolidayExists):
		response.Conflict(c, 15001, "该日期已是公司假日")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 15003, "日期格式无效，应为 YYYY-MM-DD")
	case errors.Is(err, service.ErrICSParseFailed):
		response.UnprocessableEntity(c, 15004, "ICS 日历解析失败")
	case errors.Is(err, service.ErrICSNoHolidays):
		response.UnprocessableEntity(c, 15005, "ICS 日历中没有可导入的全天事件")
	default:
		response.InternalError(c)
	}
}
