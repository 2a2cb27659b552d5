package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"singular-attend/backend/internal/dto"
	"singular-attend/backend/internal/model"
	"singular-attend/backend/internal/repository"
	"singular-attend/backend/pkg/dateutil"
)

// ── 员工模块业务错误 ──

var (
	ErrUserNotFound       = errors.New("员工不存在")
	ErrAMExists           = errors.New("员工编号已存在")
	ErrEndBeforeStart     = errors.New("离职日期不能早于入职日期")
	ErrInvalidDate        = errors.New("日期格式无效，应为 YYYY-MM-DD")
	ErrDepartmentNotFound = errors.New("部门不存在")
)

// UserService 员工业务接口
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	List(ctx context.Context) ([]dto.UserResponse, error)
	// ListPortal 员工门户用的精简列表（无需认证，不暴露在职窗口）
	ListPortal(ctx context.Context) ([]dto.PortalUserResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	// AM 唯一性
	existing, err := s.repo.User.GetByAM(ctx, req.AM)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询员工失败", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrAMExists
	}

	startDate, err := dateutil.ParseDay(req.StartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	user := &model.User{
		AM:        req.AM,
		Surname:   req.Surname,
		Name:      req.Name,
		StartDate: startDate,
	}

	if req.EndDate != nil && *req.EndDate != "" {
		endDate, err := dateutil.ParseDay(*req.EndDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		if endDate.Before(startDate) {
			return nil, ErrEndBeforeStart
		}
		user.EndDate = &endDate
	}

	if req.DepartmentID != nil {
		dept, err := s.repo.Department.GetByID(ctx, *req.DepartmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDepartmentNotFound
			}
			s.logger.Error("查询部门失败", zap.Error(err))
			return nil, err
		}
		user.DepartmentID = &dept.DepartmentID
		user.Department = dept
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建员工失败", zap.Error(err))
		return nil, err
	}

	return toUserResponse(user), nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询员工失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("列出员工失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *toUserResponse(&users[i]))
	}
	return result, nil
}

func (s *userService) ListPortal(ctx context.Context) ([]dto.PortalUserResponse, error) {
	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("列出员工失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.PortalUserResponse, 0, len(users))
	for i := range users {
		item := dto.PortalUserResponse{
			ID:      users[i].UserID,
			AM:      users[i].AM,
			Surname: users[i].Surname,
			Name:    users[i].Name,
		}
		if users[i].Department != nil {
			item.Department = users[i].Department.Name
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询员工失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Surname != nil {
		user.Surname = *req.Surname
	}
	if req.Name != nil {
		user.Name = *req.Name
	}

	if req.DepartmentID != nil {
		dept, err := s.repo.Department.GetByID(ctx, *req.DepartmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDepartmentNotFound
			}
			return nil, err
		}
		user.DepartmentID = &dept.DepartmentID
		user.Department = dept
	}

	if req.StartDate != nil {
		startDate, err := dateutil.ParseDay(*req.StartDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		user.StartDate = startDate
	}

	if req.EndDate != nil {
		if *req.EndDate == "" {
			user.EndDate = nil // 清除离职日期
		} else {
			endDate, err := dateutil.ParseDay(*req.EndDate)
			if err != nil {
				return nil, ErrInvalidDate
			}
			user.EndDate = &endDate
		}
	}

	if user.EndDate != nil && user.EndDate.Before(user.StartDate) {
		return nil, ErrEndBeforeStart
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新员工失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toUserResponse(user), nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.User.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("查询员工失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.User.Delete(ctx, id); err != nil {
		s.logger.Error("删除员工失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助 ──

func toUserResponse(user *model.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:        user.UserID,
		AM:        user.AM,
		Surname:   user.Surname,
		Name:      user.Name,
		StartDate: dateutil.DayString(user.StartDate),
	}
	if user.EndDate != nil {
		end := dateutil.DayString(*user.EndDate)
		resp.EndDate = &end
	}
	if user.Department != nil {
		resp.Department = &dto.DepartmentResponse{
			ID:   user.Department.DepartmentID,
			Name: user.Department.Name,
		}
	}
	return resp
}
