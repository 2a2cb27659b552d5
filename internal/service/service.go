package service

import (
	"go.uber.org/zap"

	"singular-attend/backend/config"
	"singular-attend/backend/internal/repository"
	"singular-attend/backend/pkg/jwt"
	"singular-attend/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	User       UserService
	Category   CategoryService
	Department DepartmentService
	Holiday    HolidayService
	Attendance AttendanceService
	Report     ReportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:       NewUserService(repo, logger),
		Category:   NewCategoryService(repo, logger),
		Department: NewDepartmentService(repo, logger),
		Holiday:    NewHolidayService(repo, logger),
		Attendance: NewAttendanceService(repo, logger),
		Report:     NewReportService(cfg, repo, logger),
	}
}
