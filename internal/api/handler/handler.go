package handler

import "singular-attend/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Category   *CategoryHandler
	Department *DepartmentHandler
	Holiday    *HolidayHandler
	Attendance *AttendanceHandler
	Report     *ReportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		User:       NewUserHandler(svc.User),
		Category:   NewCategoryHandler(svc.Category),
		Department: NewDepartmentHandler(svc.Department),
		Holiday:    NewHolidayHandler(svc.Holiday),
		Attendance: NewAttendanceHandler(svc.Attendance),
		Report:     NewReportHandler(svc.Report),
	}
}
