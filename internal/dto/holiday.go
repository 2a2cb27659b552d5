package dto

// ── 假日模块 DTO ──

// CreateHolidayRequest 创建假日请求
type CreateHolidayRequest struct {
	Date string `json:"date" binding:"required"`
	Name string `json:"name" binding:"omitempty,max=200"`
}

// HolidayResponse 假日信息响应
type HolidayResponse struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Name string `json:"name,omitempty"`
}

// ImportICSResponse ICS 导入结果响应
type ImportICSResponse struct {
	Imported int               `json:"imported"`
	Holidays []HolidayResponse `json:"holidays"`
}
