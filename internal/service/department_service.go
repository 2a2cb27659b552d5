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

// ── 部门模块业务错误 ──

var (
	ErrDepartmentNameExists = errors.New("部门名称已存在")
	ErrDepartmentHasMembers = errors.New("部门下存在员工，无法删除")
)

// DepartmentService 部门业务接口
type DepartmentService interface {
	Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.DepartmentResponse, error)
	List(ctx context.Context) ([]dto.DepartmentResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type departmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDepartmentService 创建 DepartmentService 实例
func NewDepartmentService(repo *repository.Repository, logger *zap.Logger) DepartmentService {
	return &departmentService{repo: repo, logger: logger}
}

func (s *departmentService) Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	existing, err := s.repo.Department.GetByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询部门失败", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrDepartmentNameExists
	}

	dept := &model.Department{Name: req.Name}
	if err := s.repo.Department.Create(ctx, dept); err != nil {
		s.logger.Error("创建部门失败", zap.Error(err))
		return nil, err
	}

	return s.toDepartmentResponse(ctx, dept), nil
}

func (s *departmentService) GetByID(ctx context.Context, id string) (*dto.DepartmentResponse, error) {
	dept, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		s.logger.Error("查询部门失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toDepartmentResponse(ctx, dept), nil
}

func (s *departmentService) List(ctx context.Context) ([]dto.DepartmentResponse, error) {
	depts, err := s.repo.Department.List(ctx)
	if err != nil {
		s.logger.Error("列出部门失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.DepartmentResponse, 0, len(depts))
	for i := range depts {
		result = append(result, *s.toDepartmentResponse(ctx, &depts[i]))
	}
	return result, nil
}

func (s *departmentService) Update(ctx context.Context, id string, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error) {
	dept, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		s.logger.Error("查询部门失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != dept.Name {
		existing, err := s.repo.Department.GetByName(ctx, req.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, ErrDepartmentNameExists
		}
		dept.Name = req.Name
	}

	if err := s.repo.Department.Update(ctx, dept); err != nil {
		s.logger.Error("更新部门失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toDepartmentResponse(ctx, dept), nil
}

func (s *departmentService) Delete(ctx context.Context, id string) error {
	dept, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDepartmentNotFound
		}
		s.logger.Error("查询部门失败", zap.String("id", id), zap.Error(err))
		return err
	}

	count, err := s.repo.Department.CountMembers(ctx, dept.DepartmentID)
	if err != nil {
		s.logger.Error("统计部门员工数失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if count > 0 {
		return ErrDepartmentHasMembers
	}

	if err := s.repo.Department.Delete(ctx, id); err != nil {
		s.logger.Error("删除部门失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助 ──

func (s *departmentService) toDepartmentResponse(ctx context.Context, dept *model.Department) *dto.DepartmentResponse {
	count, _ := s.repo.Department.CountMembers(ctx, dept.DepartmentID)
	return &dto.DepartmentResponse{
		ID:          dept.DepartmentID,
		Name:        dept.Name,
		MemberCount: count,
	}
}
