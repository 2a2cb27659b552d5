package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"singular-attend/backend/internal/dto"
	"singular-attend/backend/internal/matrix"
	"singular-attend/backend/internal/model"
	"singular-attend/backend/internal/repository"
	"singular-attend/backend/pkg/dateutil"
)

// ── 考勤编辑模块业务错误 ──

var (
	ErrDayBlocked       = errors.New("该日期不可编辑（雇佣期外、周末或公司假日）")
	ErrInvalidMonth     = errors.New("月份格式不正确，应为 YYYY-MM")
	ErrCategoryInactive = errors.New("该类别已停用，不能指派")
)

// AttendanceService 考勤编辑业务接口
//
// 状态循环是核心交互：空 → 第一个启用类别 → … → 最后一个 → 清空 → 回到第一个。
// 所有写路径先做封锁校验，被封锁的日期直接拒绝
type AttendanceService interface {
	// Cycle 将某员工某日的状态推进到循环中的下一档
	Cycle(ctx context.Context, userID, date string) (*dto.CycleResponse, error)
	// Set 直接指派某个启用类别
	Set(ctx context.Context, req *dto.SetAttendanceRequest) (*dto.CycleResponse, error)
	// Clear 清空某员工某日的状态
	Clear(ctx context.Context, userID, date string) error
	// GetMonth 员工门户单月视图，带逐日封锁标记
	GetMonth(ctx context.Context, userID, month string) (*dto.MonthAttendanceResponse, error)
}

type attendanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, logger: logger}
}

func (s *attendanceService) Cycle(ctx context.Context, userID, date string) (*dto.CycleResponse, error) {
	user, day, err := s.loadEditableDay(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	// 当前状态：无记录或类别已失联都按空档处理
	currentCode := ""
	record, err := s.repo.Attendance.GetByUserDate(ctx, user.UserID, day)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询考勤记录失败", zap.Error(err))
		return nil, err
	}
	if record != nil && record.Category != nil {
		currentCode = record.Category.Code
	}

	active, err := s.repo.Category.ListActive(ctx)
	if err != nil {
		s.logger.Error("查询启用类别失败", zap.Error(err))
		return nil, err
	}

	next := matrix.NextCategory(currentCode, active)
	if next == nil {
		// 清空哨兵：删除记录即可，无记录时删除是幂等的
		if err := s.repo.Attendance.DeleteByUserDate(ctx, user.UserID, day); err != nil {
			s.logger.Error("清空考勤记录失败", zap.Error(err))
			return nil, err
		}
		return &dto.CycleResponse{UserID: user.UserID, Date: dateutil.DayString(day)}, nil
	}

	if err := s.repo.Attendance.Upsert(ctx, user.UserID, day, next.CategoryID); err != nil {
		s.logger.Error("写入考勤记录失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("考勤状态已更新",
		zap.String("user_id", user.UserID),
		zap.String("date", dateutil.DayString(day)),
		zap.String("code", next.Code))

	return &dto.CycleResponse{
		UserID: user.UserID,
		Date:   dateutil.DayString(day),
		Code:   next.Code,
	}, nil
}

func (s *attendanceService) Set(ctx context.Context, req *dto.SetAttendanceRequest) (*dto.CycleResponse, error) {
	user, day, err := s.loadEditableDay(ctx, req.UserID, req.Date)
	if err != nil {
		return nil, err
	}

	category, err := s.repo.Category.GetByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		s.logger.Error("查询类别失败", zap.Error(err))
		return nil, err
	}
	if !category.IsActive {
		return nil, ErrCategoryInactive
	}

	if err := s.repo.Attendance.Upsert(ctx, user.UserID, day, category.CategoryID); err != nil {
		s.logger.Error("写入考勤记录失败", zap.Error(err))
		return nil, err
	}

	return &dto.CycleResponse{
		UserID: user.UserID,
		Date:   dateutil.DayString(day),
		Code:   category.Code,
	}, nil
}

func (s *attendanceService) Clear(ctx context.Context, userID, date string) error {
	user, day, err := s.loadEditableDay(ctx, userID, date)
	if err != nil {
		return err
	}
	if err := s.repo.Attendance.DeleteByUserDate(ctx, user.UserID, day); err != nil {
		s.logger.Error("清空考勤记录失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *attendanceService) GetMonth(ctx context.Context, userID, month string) (*dto.MonthAttendanceResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询员工失败", zap.Error(err))
		return nil, err
	}

	from, to, err := dateutil.MonthRange(month)
	if err != nil {
		return nil, ErrInvalidMonth
	}

	holidays, err := s.loadHolidaySet(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.Attendance.ListByUserRange(ctx, user.UserID, from, to)
	if err != nil {
		s.logger.Error("查询考勤记录失败", zap.Error(err))
		return nil, err
	}
	codes := matrix.IndexRecords(records)

	resp := &dto.MonthAttendanceResponse{UserID: user.UserID, Month: month}
	for _, day := range dateutil.DaysBetween(from, to) {
		ds := dto.DayStatus{
			Date:    dateutil.DayString(day),
			Weekend: dateutil.IsWeekend(day),
			Holiday: holidays[dateutil.DayString(day)],
			Blocked: matrix.IsBlocked(user, day, holidays),
		}
		// 封锁日即使残留记录也不显示状态
		if !ds.Blocked {
			ds.Code = codes[user.UserID+"_"+ds.Date]
		}
		resp.Days = append(resp.Days, ds)
	}
	return resp, nil
}

// ── 内部辅助 ──

// loadEditableDay 加载员工并校验目标日期可编辑
func (s *attendanceService) loadEditableDay(ctx context.Context, userID, date string) (*model.User, time.Time, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, time.Time{}, ErrUserNotFound
		}
		s.logger.Error("查询员工失败", zap.Error(err))
		return nil, time.Time{}, err
	}

	day, err := dateutil.ParseDay(date)
	if err != nil {
		return nil, time.Time{}, ErrInvalidDate
	}

	holidays, err := s.loadHolidaySet(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}
	if matrix.IsBlocked(user, day, holidays) {
		return nil, time.Time{}, ErrDayBlocked
	}
	return user, day, nil
}

func (s *attendanceService) loadHolidaySet(ctx context.Context) (matrix.HolidaySet, error) {
	holidays, err := s.repo.Holiday.List(ctx)
	if err != nil {
		s.logger.Error("查询假日失败", zap.Error(err))
		return nil, err
	}
	return matrix.NewHolidaySet(holidays), nil
}
