package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"singular-attend/backend/internal/model"
)

// HolidayRepository 公司假日数据访问接口
type HolidayRepository interface {
	Create(ctx context.Context, holiday *model.Holiday) error
	GetByDate(ctx context.Context, date time.Time) (*model.Holiday, error)
	List(ctx context.Context) ([]model.Holiday, error)
	Delete(ctx context.Context, id string) error
	// UpsertBatch 批量写入（ICS 导入用），同日期覆盖名称
	UpsertBatch(ctx context.Context, holidays []model.Holiday) error
}

// holidayRepo HolidayRepository 的 GORM 实现
type holidayRepo struct {
	db *gorm.DB
}

// NewHolidayRepo 创建 HolidayRepository 实例
func NewHolidayRepo(db *gorm.DB) HolidayRepository {
	return &holidayRepo{db: db}
}

func (r *holidayRepo) Create(ctx context.Context, holiday *model.Holiday) error {
	return r.db.WithContext(ctx).Create(holiday).Error
}

func (r *holidayRepo) GetByDate(ctx context.Context, date time.Time) (*model.Holiday, error) {
	var holiday model.Holiday
	err := r.db.WithContext(ctx).
		Where("date = ?", date).
		First(&holiday).Error
	if err != nil {
		return nil, err
	}
	return &holiday, nil
}

func (r *holidayRepo) List(ctx context.Context) ([]model.Holiday, error) {
	var holidays []model.Holiday
	err := r.db.WithContext(ctx).
		Order("date ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *holidayRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("holiday_id = ?", id).
		Delete(&model.Holiday{}).Error
}

func (r *holidayRepo) UpsertBatch(ctx context.Context, holidays []model.Holiday) error {
	if len(holidays) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
		}).
		Create(&holidays).Error
}
