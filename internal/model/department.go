package model

// Department 部门表 — 对应 departments
// 纯查找/标签实体，无业务行为
type Department struct {
	DepartmentID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"department_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	SoftDeleteModel
}

// TableName 指定表名
func (Department) TableName() string { return "departments" }
