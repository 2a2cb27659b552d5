package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"singular-attend/backend/internal/dto"
	"singular-attend/backend/internal/model"
	"singular-attend/backend/internal/repository"
)

// ── 考勤类别模块业务错误 ──

var (
	ErrCategoryNotFound   = errors.New("考勤类别不存在")
	ErrCategoryCodeExists = errors.New("类别短码已存在")
	ErrCategoryReferenced = errors.New("类别已被考勤记录引用，只能停用不能删除")
)

// CategoryService 考勤类别业务接口
type CategoryService interface {
	Create(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error)
	// List 返回全部类别（含停用）；activeOnly 为 true 时仅返回循环序列
	List(ctx context.Context, activeOnly bool) ([]dto.CategoryResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, id string) error
}

type categoryService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCategoryService 创建 CategoryService 实例
func NewCategoryService(repo *repository.Repository, logger *zap.Logger) CategoryService {
	return &categoryService{repo: repo, logger: logger}
}

func (s *categoryService) Create(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	existing, err := s.repo.Category.GetByCode(ctx, req.Code)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询类别失败", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrCategoryCodeExists
	}

	cat := &model.Category{
		Code:      req.Code,
		Label:     req.Label,
		Color:     req.Color,
		IsWorkDay: req.IsWorkDay,
		IsActive:  true,
		SortOrder: req.SortOrder,
	}

	if err := s.repo.Category.Create(ctx, cat); err != nil {
		s.logger.Error("创建类别失败", zap.Error(err))
		return nil, err
	}

	return toCategoryResponse(cat), nil
}

func (s *categoryService) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	cat, err := s.repo.Category.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		s.logger.Error("查询类别失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toCategoryResponse(cat), nil
}

func (s *categoryService) List(ctx context.Context, activeOnly bool) ([]dto.CategoryResponse, error) {
	var cats []model.Category
	var err error
	if activeOnly {
		cats, err = s.repo.Category.ListActive(ctx)
	} else {
		cats, err = s.repo.Category.ListAll(ctx)
	}
	if err != nil {
		s.logger.Error("列出类别失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CategoryResponse, 0, len(cats))
	for i := range cats {
		result = append(result, *toCategoryResponse(&cats[i]))
	}
	return result, nil
}

func (s *categoryService) Update(ctx context.Context, id string, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	cat, err := s.repo.Category.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		s.logger.Error("查询类别失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// Code 不可变：被历史记录引用后改短码会让矩阵失真
	if req.Label != nil {
		cat.Label = *req.Label
	}
	if req.Color != nil {
		cat.Color = *req.Color
	}
	if req.IsWorkDay != nil {
		cat.IsWorkDay = *req.IsWorkDay
	}
	if req.IsActive != nil {
		cat.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		cat.SortOrder = *req.SortOrder
	}

	if err := s.repo.Category.Update(ctx, cat); err != nil {
		s.logger.Error("更新类别失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toCategoryResponse(cat), nil
}

func (s *categoryService) Delete(ctx context.Context, id string) error {
	cat, err := s.repo.Category.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		s.logger.Error("查询类别失败", zap.String("id", id), zap.Error(err))
		return err
	}

	count, err := s.repo.Category.CountReferences(ctx, cat.CategoryID)
	if err != nil {
		s.logger.Error("统计类别引用失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if count > 0 {
		return ErrCategoryReferenced
	}

	if err := s.repo.Category.Delete(ctx, id); err != nil {
		s.logger.Error("删除类别失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助 ──

func toCategoryResponse(cat *model.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:        cat.CategoryID,
		Code:      cat.Code,
		Label:     cat.Label,
		Color:     cat.Color,
		IsWorkDay: cat.IsWorkDay,
		IsActive:  cat.IsActive,
		SortOrder: cat.SortOrder,
	}
}
