package dto

// ── 员工模块 DTO ──

// CreateUserRequest 创建员工请求
// 日期一律使用 YYYY-MM-DD
type CreateUserRequest struct {
	AM           string  `json:"am"            binding:"required,max=20"`
	Surname      string  `json:"surname"       binding:"required,max=100"`
	Name         string  `json:"name"          binding:"required,max=100"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
	StartDate    string  `json:"start_date"    binding:"required"`
	EndDate      *string `json:"end_date"`
}

// UpdateUserRequest 更新员工请求
type UpdateUserRequest struct {
	Surname      *string `json:"surname"       binding:"omitempty,max=100"`
	Name         *string `json:"name"          binding:"omitempty,max=100"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
	StartDate    *string `json:"start_date"`
	// EndDate 传空字符串表示清除离职日期
	EndDate *string `json:"end_date"`
}

// UserResponse 员工信息响应
type UserResponse struct {
	ID         string              `json:"id"`
	AM         string              `json:"am"`
	Surname    string              `json:"surname"`
	Name       string              `json:"name"`
	Department *DepartmentResponse `json:"department,omitempty"`
	StartDate  string              `json:"start_date"`
	EndDate    *string             `json:"end_date,omitempty"`
}

// PortalUserResponse 员工门户的精简员工信息
type PortalUserResponse struct {
	ID         string `json:"id"`
	AM         string `json:"am"`
	Surname    string `json:"surname"`
	Name       string `json:"name"`
	Department string `json:"department,omitempty"`
}
