package model

import "time"

// Holiday 公司假日表 — 对应 holidays
// 全员非工作日，与具体员工无关
type Holiday struct {
	HolidayID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"holiday_id"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex"                 json:"date"`
	Name      string    `gorm:"type:varchar(200);not null;default:''"          json:"name"`
	BaseModel
}

// TableName 指定表名
func (Holiday) TableName() string { return "holidays" }
