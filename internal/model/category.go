package model

// Category 考勤状态类别表 — 对应 categories
// Code 为短码（如 OS=现场办公、T=远程办公），一旦被考勤记录引用即不可变；
// 停用（IsActive=false）只将类别移出循环序列，历史记录保持可读
type Category struct {
	CategoryID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"category_id"`
	Code       string `gorm:"type:varchar(10);not null"                      json:"code"`
	Label      string `gorm:"type:varchar(100);not null"                     json:"label"`
	Color      string `gorm:"type:varchar(100);not null;default:''"          json:"color"`
	IsWorkDay  bool   `gorm:"not null;default:true"                          json:"is_work_day"`
	IsActive   bool   `gorm:"not null;default:true"                          json:"is_active"`
	SortOrder  int    `gorm:"not null;default:0"                             json:"sort_order"`
	SoftDeleteModel
}

// TableName 指定表名
func (Category) TableName() string { return "categories" }
