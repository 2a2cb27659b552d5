package dto

// ── 考勤编辑模块 DTO ──

// CycleAttendanceRequest 状态循环请求（管理端）
type CycleAttendanceRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Date   string `json:"date"    binding:"required"`
}

// PortalCycleRequest 状态循环请求（员工门户，user_id 取自路径）
type PortalCycleRequest struct {
	Date string `json:"date" binding:"required"`
}

// SetAttendanceRequest 直接指派状态请求
type SetAttendanceRequest struct {
	UserID     string `json:"user_id"     binding:"required,uuid"`
	Date       string `json:"date"        binding:"required"`
	CategoryID string `json:"category_id" binding:"required,uuid"`
}

// CycleResponse 循环结果：Code 为空串表示该日已清空
type CycleResponse struct {
	UserID string `json:"user_id"`
	Date   string `json:"date"`
	Code   string `json:"code"`
}

// MonthAttendanceResponse 员工单月考勤视图
type MonthAttendanceResponse struct {
	UserID string      `json:"user_id"`
	Month  string      `json:"month"`
	Days   []DayStatus `json:"days"`
}

// DayStatus 单日状态与封锁标记
type DayStatus struct {
	Date    string `json:"date"`
	Code    string `json:"code,omitempty"`
	Blocked bool   `json:"blocked"`
	Weekend bool   `json:"weekend"`
	Holiday bool   `json:"holiday"`
}
