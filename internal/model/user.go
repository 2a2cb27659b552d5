package model

import "time"

// User 员工表 — 对应 users
// AM 为外部员工编号（唯一）。在职窗口为 [StartDate, EndDate]（闭区间，
// EndDate 为空表示仍在职），按日历日比较，不含时分秒
type User struct {
	UserID       string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	AM           string     `gorm:"column:am;type:varchar(20);not null"            json:"am"`
	Surname      string     `gorm:"type:varchar(100);not null"                     json:"surname"`
	Name         string     `gorm:"type:varchar(100);not null"                     json:"name"`
	DepartmentID *string    `gorm:"type:uuid"                                      json:"department_id,omitempty"`
	StartDate    time.Time  `gorm:"type:date;not null"                             json:"start_date"`
	EndDate      *time.Time `gorm:"type:date"                                      json:"end_date,omitempty"`
	SoftDeleteModel

	// 关联
	Department *Department `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }
