package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Admin      AdminRepository
	User       UserRepository
	Category   CategoryRepository
	Department DepartmentRepository
	Holiday    HolidayRepository
	Attendance AttendanceRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Admin:      NewAdminRepo(db),
		User:       NewUserRepo(db),
		Category:   NewCategoryRepo(db),
		Department: NewDepartmentRepo(db),
		Holiday:    NewHolidayRepo(db),
		Attendance: NewAttendanceRepo(db),
	}
}
