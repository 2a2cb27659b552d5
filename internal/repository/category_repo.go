package repository

import (
	"context"

	"gorm.io/gorm"

	"singular-attend/backend/internal/model"
)

// CategoryRepository 考勤类别数据访问接口
type CategoryRepository interface {
	Create(ctx context.Context, cat *model.Category) error
	GetByID(ctx context.Context, id string) (*model.Category, error)
	GetByCode(ctx context.Context, code string) (*model.Category, error)
	// ListActive 返回启用类别，按注册顺序（sort_order，再按创建时间）
	// 该顺序即状态循环顺序
	ListActive(ctx context.Context) ([]model.Category, error)
	ListAll(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, cat *model.Category) error
	// CountReferences 统计引用该类别的考勤记录数，决定能否硬删
	CountReferences(ctx context.Context, categoryID string) (int64, error)
	Delete(ctx context.Context, id string) error
}

// categoryRepo CategoryRepository 的 GORM 实现
type categoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepo 创建 CategoryRepository 实例
func NewCategoryRepo(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(ctx context.Context, cat *model.Category) error {
	return r.db.WithContext(ctx).Create(cat).Error
}

func (r *categoryRepo) GetByID(ctx context.Context, id string) (*model.Category, error) {
	var cat model.Category
	err := r.db.WithContext(ctx).
		Where("category_id = ?", id).
		First(&cat).Error
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *categoryRepo) GetByCode(ctx context.Context, code string) (*model.Category, error) {
	var cat model.Category
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&cat).Error
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *categoryRepo) ListActive(ctx context.Context) ([]model.Category, error) {
	var cats []model.Category
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC, created_at ASC").
		Find(&cats).Error
	return cats, err
}

func (r *categoryRepo) ListAll(ctx context.Context) ([]model.Category, error) {
	var cats []model.Category
	err := r.db.WithContext(ctx).
		Order("sort_order ASC, created_at ASC").
		Find(&cats).Error
	return cats, err
}

func (r *categoryRepo) Update(ctx context.Context, cat *model.Category) error {
	return r.db.WithContext(ctx).Save(cat).Error
}

func (r *categoryRepo) CountReferences(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Attendance{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

func (r *categoryRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("category_id = ?", id).
		Delete(&model.Category{}).Error
}
