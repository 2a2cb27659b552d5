package dto

// ── 考勤类别模块 DTO ──

// CreateCategoryRequest 创建类别请求
type CreateCategoryRequest struct {
	Code      string `json:"code"        binding:"required,max=10"`
	Label     string `json:"label"       binding:"required,max=100"`
	Color     string `json:"color"       binding:"omitempty,max=100"`
	IsWorkDay bool   `json:"is_work_day"`
	SortOrder int    `json:"sort_order"`
}

// UpdateCategoryRequest 更新类别请求
// Code 一旦被考勤记录引用即不可修改
type UpdateCategoryRequest struct {
	Label     *string `json:"label"       binding:"omitempty,max=100"`
	Color     *string `json:"color"       binding:"omitempty,max=100"`
	IsWorkDay *bool   `json:"is_work_day"`
	IsActive  *bool   `json:"is_active"`
	SortOrder *int    `json:"sort_order"`
}

// CategoryResponse 类别信息响应
type CategoryResponse struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Label     string `json:"label"`
	Color     string `json:"color"`
	IsWorkDay bool   `json:"is_work_day"`
	IsActive  bool   `json:"is_active"`
	SortOrder int    `json:"sort_order"`
}
