package dto

// ── 报表模块 DTO ──

// ReportRangeRequest 报表区间查询参数
// from/to 必填（YYYY-MM-DD）；categoryId 可选，默认 "all"
type ReportRangeRequest struct {
	From       string `form:"from"       binding:"required"`
	To         string `form:"to"         binding:"required"`
	CategoryID string `form:"categoryId"`
}
