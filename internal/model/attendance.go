package model

import "time"

// Attendance 考勤记录表 — 对应 attendances
// (UserID, Date) 唯一：每人每天至多一条状态，重新指派时覆盖，循环到"清空"时删除
type Attendance struct {
	AttendanceID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"attendance_id"`
	UserID       string    `gorm:"type:uuid;not null;uniqueIndex:uq_attendances_user_date" json:"user_id"`
	Date         time.Time `gorm:"type:date;not null;uniqueIndex:uq_attendances_user_date" json:"date"`
	CategoryID   string    `gorm:"type:uuid;not null"                             json:"category_id"`
	BaseModel

	// 关联
	User     *User     `gorm:"foreignKey:UserID;references:UserID"             json:"user,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID;references:CategoryID"     json:"category,omitempty"`
}

// TableName 指定表名
func (Attendance) TableName() string { return "attendances" }
