package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"singular-attend/backend/internal/dto"
	"singular-attend/backend/internal/service"
	"singular-attend/backend/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler 报表模块 HTTP 处理器
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler 创建 ReportHandler
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// GetMatrix 获取考勤矩阵（JSON，交互网格用）
// GET /api/v1/reports/matrix?from=YYYY-MM-DD&to=YYYY-MM-DD&categoryId=xxx
func (h *ReportHandler) GetMatrix(c *gin.Context) {
	var req dto.ReportRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	m, err := h.reportSvc.BuildMatrix(c.Request.Context(), req.From, req.To, req.CategoryID)
	if err != nil {
		h.handleReportError(c, err)
		return
	}
	response.OK(c, m)
}

// ExportAttendance 导出考勤矩阵为 Excel
// GET /api/v1/reports/attendance?from=YYYY-MM-DD&to=YYYY-MM-DD&categoryId=xxx
func (h *ReportHandler) ExportAttendance(c *gin.Context) {
	var req dto.ReportRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	buf, filename, err := h.reportSvc.ExportMatrix(c.Request.Context(), req.From, req.To, req.CategoryID)
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// handleReportError 统一处理报表模块业务错误
func (h *ReportHandler) handleReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 17001, "日期格式无效，应为 YYYY-MM-DD")
	case errors.Is(err, service.ErrRangeTooLarge):
		response.UnprocessableEntity(c, 17002, "查询区间超出允许的最大天数")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
