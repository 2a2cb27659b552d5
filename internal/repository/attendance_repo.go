package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"singular-attend/backend/internal/model"
)

// AttendanceRepository 考勤记录数据访问接口
// 每条编辑都是单行 upsert/delete，核心逻辑不需要跨行事务
type AttendanceRepository interface {
	// Upsert 写入某员工某日的状态；已存在则覆盖 category_id
	Upsert(ctx context.Context, userID string, date time.Time, categoryID string) error
	// DeleteByUserDate 清空某员工某日的状态（循环到清空哨兵时调用）
	DeleteByUserDate(ctx context.Context, userID string, date time.Time) error
	// GetByUserDate 读取单日记录，含类别
	GetByUserDate(ctx context.Context, userID string, date time.Time) (*model.Attendance, error)
	// ListByRange 读取区间内全部记录（含类别）；categoryID 为空或 "all" 时不过滤
	ListByRange(ctx context.Context, from, to time.Time, categoryID string) ([]model.Attendance, error)
	// ListByUserRange 读取单个员工区间内的记录（含类别）
	ListByUserRange(ctx context.Context, userID string, from, to time.Time) ([]model.Attendance, error)
}

// attendanceRepo AttendanceRepository 的 GORM 实现
type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Upsert(ctx context.Context, userID string, date time.Time, categoryID string) error {
	record := model.Attendance{
		UserID:     userID,
		Date:       date,
		CategoryID: categoryID,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"category_id", "updated_at"}),
		}).
		Create(&record).Error
}

func (r *attendanceRepo) DeleteByUserDate(ctx context.Context, userID string, date time.Time) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Delete(&model.Attendance{}).Error
}

func (r *attendanceRepo) GetByUserDate(ctx context.Context, userID string, date time.Time) (*model.Attendance, error) {
	var record model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ? AND date = ?", userID, date).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *attendanceRepo) ListByRange(ctx context.Context, from, to time.Time, categoryID string) ([]model.Attendance, error) {
	q := r.db.WithContext(ctx).
		Preload("Category").
		Where("date >= ? AND date <= ?", from, to)
	if categoryID != "" && categoryID != "all" {
		q = q.Where("category_id = ?", categoryID)
	}

	var records []model.Attendance
	err := q.Find(&records).Error
	return records, err
}

func (r *attendanceRepo) ListByUserRange(ctx context.Context, userID string, from, to time.Time) ([]model.Attendance, error) {
	var records []model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Find(&records).Error
	return records, err
}
