package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"singular-attend/backend/internal/dto"
	"singular-attend/backend/internal/model"
	"singular-attend/backend/internal/repository"
	"singular-attend/backend/pkg/dateutil"
)

// ── 测试辅助 ──

type attendanceFixture struct {
	svc        AttendanceService
	users      *mockUserRepo
	categories *mockCategoryRepo
	holidays   *mockHolidayRepo
	records    *mockAttendanceRepo
}

func setupTestAttendanceService() *attendanceFixture {
	users := newMockUserRepo()
	categories := newMockCategoryRepo()
	holidays := newMockHolidayRepo()
	records := newMockAttendanceRepo(categories)
	repo := &repository.Repository{
		Admin:      newMockAdminRepo(),
		User:       users,
		Category:   categories,
		Department: newMockDepartmentRepo(),
		Holiday:    holidays,
		Attendance: records,
	}
	return &attendanceFixture{
		svc:        NewAttendanceService(repo, zap.NewNop()),
		users:      users,
		categories: categories,
		holidays:   holidays,
		records:    records,
	}
}

func (f *attendanceFixture) addUser(t *testing.T, start, end string) *model.User {
	t.Helper()
	startDay, err := dateutil.ParseDay(start)
	if err != nil {
		t.Fatalf("起始日期无效: %v", err)
	}
	user := &model.User{AM: "1001", Surname: "Doe", Name: "John", StartDate: startDay}
	if end != "" {
		endDay, err := dateutil.ParseDay(end)
		if err != nil {
			t.Fatalf("结束日期无效: %v", err)
		}
		user.EndDate = &endDay
	}
	_ = f.users.Create(context.Background(), user)
	return user
}

func (f *attendanceFixture) addCategories(codes ...string) {
	for _, code := range codes {
		_ = f.categories.Create(context.Background(), &model.Category{
			Code: code, Label: code, IsActive: true,
		})
	}
}

// ── Cycle 测试 ──

func TestAttendanceService_Cycle_FullSequence(t *testing.T) {
	f := setupTestAttendanceService()
	user := f.addUser(t, "2024-01-01", "")
	f.addCategories("OS", "T", "OOO")

	// 2024-01-03 是周三
	const day = "2024-01-03"
	want := []string{"OS", "T", "OOO", "", "OS"}
	for i, expected := range want {
		resp, err := f.svc.Cycle(context.Background(), user.UserID, day)
		if err != nil {
			t.Fatalf("第 %d 次循环应成功: %v", i+1, err)
		}
		if resp.Code != expected {
			t.Errorf("第 %d 次循环: 期望 %q，实际 %q", i+1, expected, resp.Code)
		}
	}

	// 清空档之后记录应真的重新落库
	record, err := f.records.GetByUserDate(context.Background(), user.UserID, mustParseDay(t, day))
	if err != nil {
		t.Fatalf("循环回 OS 后应有记录: %v", err)
	}
	if record.Category == nil || record.Category.Code != "OS" {
		t.Errorf("期望记录类别为 OS，实际 %+v", record.Category)
	}
}

func TestAttendanceService_Cycle_ClearDeletesRecord(t *testing.T) {
	f := setupTestAttendanceService()
	user := f.addUser(t, "2024-01-01", "")
	f.addCategories("OS", "T")

	const day = "2024-01-03"
	for i := 0; i < 2; i++ {
		if _, err := f.svc.Cycle(context.Background(), user.UserID, day); err != nil {
			t.Fatalf("循环应成功: %v", err)
		}
	}

	resp, err := f.svc.Cycle(context.Background(), user.UserID, day)
	if err != nil {
		t.Fatalf("循环到清空档应成功: %v", err)
	}
	if resp.Code != "" {
		t.Errorf("清空档 Code 应为空串，实际 %q", resp.Code)
	}
	if _, err := f.records.GetByUserDate(context.Background(), user.UserID, mustParseDay(t, day)); err == nil {
		t.Error("清空后记录应已删除")
	}
}

func TestAttendanceService_Cycle_WeekendBlocked(t *testing.T) {
	f := setupTestAttendanceService()
	user := f.addUser(t, "2024-01-01", "")
	f.addCategories("OS")

	// 2024-01-06 是周六
	_, err := f.svc.Cycle(context.Background(), user.UserID, "2024-01-06")
	if !errors.Is(err, ErrDayBlocked) {
		t.Errorf("期望 ErrDayBlocked，实际: %v", err)
	}
}

func TestAttendanceService_Cycle_HolidayBlocked(t *testing.T) {
	f := setupTestAttendanceService()
	user := f.addUser(t, "2024-01-01", "")
	f.addCategories("OS")
	_ = f.holidays.Create(context.Background(), &model.Holiday{
		Date: mustParseDay(t, "2024-01-03"), Name: "Company Day",
	})

	_, err := f.svc.Cycle(context.Background(), user.UserID, "2024-01-03")
	if !errors.Is(err, ErrDayBlocked) {
		t.Errorf("期望 ErrDayBlocked，实际: %v", err)
	}
}

func TestAttendanceService_Cycle_OutsideEmploymentBlocked(t *testing.T) {
	f := setupTestAttendanceService()
	user := f.addUser(t, "2024-02-01", "2024-02-29")
	f.addCategories("OS")

	// 入职前
	if _, err := f.svc.Cycle(context.Background(), user.UserID, "2024-01-31"); !errors.Is(err, ErrDayBlocked) {
		t.Errorf("入职前应封锁，实际: %v", err)
	}
	// 离职后
	if _, err := f.svc.Cycle(context.Background(), user.UserID, "2024-03-01"); !errors.Is(err, ErrDayBlocked) {
		t.Errorf("离职后应封锁，实际: %v", err)
	}
	// 离职当日（闭区间）仍可编辑：2024-02-29 是周四
	if _, err := f.svc.Cycle(context.Background(), user.UserID, "2024-02-29"); err != nil {
		t.Errorf("离职当日应可编辑: %v", err)
	}
}

func TestAttendanceService_Cycle_DeactivatedCodeRestarts(t *testing.T) {
	f := setupTestAttendanceService()
	user := f.addUser(t, "2024-01-01", "")
	f.addCategories("OS", "T", "OOO")

	const day = "2024-01-03"
	// 推进到 T
	for i := 0; i < 2; i++ {
		if _, err := f.svc.Cycle(context.Background(), user.UserID, day); err != nil {
			t.Fatalf("循环应成功: %v", err)
		}
	}

	// 停用 T 后，从失联状态重新开始循环
	cat, err := f.categories.GetByCode(context.Background(), "T")
	if err != nil {
		t.Fatalf("查询类别失败: %v", err)
	}
	cat.IsActive = false

	resp, err := f.svc.Cycle(context.Background(), user.UserID, day)
	if err != nil {
		t.Fatalf("循环应成功: %v", err)
	}
	if resp.Code != "OS" {
		t.Errorf("已停用状态应回到第一个启用类别 OS，实际 %q", resp.Code)
	}
}

func TestAttendanceService_Cycle_UserNotFound(t *testing.T) {
	f := setupTestAttendanceService()
	f.addCategories("OS")

	_, err := f.svc.Cycle(context.Background(), "nonexistent", "2024-01-03")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

func TestAttendanceService_Cycle_InvalidDate(t *testing.T) {
	f := setupTestAttendanceService()
	user := f.addUser(t, "2024-01-01", "")

	_, err := f.svc.Cycle(context.Background(), user.UserID, "03/01/2024")
	if !errors.Is(err, ErrInvalidDate) {
		t.Errorf("期望 ErrInvalidDate，实际: %v", err)
	}
}

// ── Set / Clear 测试 ──

func TestAttendanceService_Set_Success(t *testing.T) {
	f := setupTestAttendanceService()
	user := f.addUser(t, "2024-01-01", "")
	f.addCategories("OS", "T")
	cat, _ := f.categories.GetByCode(context.Background(), "T")

	resp, err := f.svc.Set(context.Background(), &dto.SetAttendanceRequest{
		UserID: user.UserID, Date: "2024-01-03", CategoryID: cat.CategoryID,
	})
	if err != nil {
		t.Fatalf("Set 应成功: %v", err)
	}
	if resp.Code != "T" {
		t.Errorf("期望 Code=T，实际 %q", resp.Code)
	}
}

func TestAttendanceService_Set_InactiveCategory(t *testing.T) {
	f := setupTestAttendanceService()
	user := f.addUser(t, "2024-01-01", "")
	_ = f.categories.Create(context.Background(), &model.Category{
		Code: "BT", Label: "Business Trip", IsActive: false,
	})
	cat, _ := f.categories.GetByCode(context.Background(), "BT")

	_, err := f.svc.Set(context.Background(), &dto.SetAttendanceRequest{
		UserID: user.UserID, Date: "2024-01-03", CategoryID: cat.CategoryID,
	})
	if !errors.Is(err, ErrCategoryInactive) {
		t.Errorf("期望 ErrCategoryInactive，实际: %v", err)
	}
}

func TestAttendanceService_Clear_Idempotent(t *testing.T) {
	f := setupTestAttendanceService()
	user := f.addUser(t, "2024-01-01", "")
	f.addCategories("OS")

	if _, err := f.svc.Cycle(context.Background(), user.UserID, "2024-01-03"); err != nil {
		t.Fatalf("循环应成功: %v", err)
	}
	if err := f.svc.Clear(context.Background(), user.UserID, "2024-01-03"); err != nil {
		t.Fatalf("Clear 应成功: %v", err)
	}
	// 无记录时再次清空也不报错
	if err := f.svc.Clear(context.Background(), user.UserID, "2024-01-03"); err != nil {
		t.Errorf("重复 Clear 应幂等: %v", err)
	}
}

// ── GetMonth 测试 ──

func TestAttendanceService_GetMonth(t *testing.T) {
	f := setupTestAttendanceService()
	user := f.addUser(t, "2024-01-10", "")
	f.addCategories("OS")
	_ = f.holidays.Create(context.Background(), &model.Holiday{
		Date: mustParseDay(t, "2024-01-15"), Name: "Company Day",
	})
	if _, err := f.svc.Cycle(context.Background(), user.UserID, "2024-01-11"); err != nil {
		t.Fatalf("循环应成功: %v", err)
	}

	resp, err := f.svc.GetMonth(context.Background(), user.UserID, "2024-01")
	if err != nil {
		t.Fatalf("GetMonth 应成功: %v", err)
	}
	if len(resp.Days) != 31 {
		t.Fatalf("一月应有 31 天，实际 %d", len(resp.Days))
	}

	byDate := make(map[string]dto.DayStatus)
	for _, d := range resp.Days {
		byDate[d.Date] = d
	}
	if !byDate["2024-01-05"].Blocked {
		t.Error("入职前的 2024-01-05 应封锁")
	}
	if !byDate["2024-01-13"].Weekend || !byDate["2024-01-13"].Blocked {
		t.Error("2024-01-13 是周六，应标记周末并封锁")
	}
	if !byDate["2024-01-15"].Holiday || !byDate["2024-01-15"].Blocked {
		t.Error("2024-01-15 是公司假日，应标记并封锁")
	}
	if byDate["2024-01-11"].Code != "OS" {
		t.Errorf("2024-01-11 应为 OS，实际 %q", byDate["2024-01-11"].Code)
	}
}

func TestAttendanceService_GetMonth_InvalidMonth(t *testing.T) {
	f := setupTestAttendanceService()
	user := f.addUser(t, "2024-01-01", "")

	_, err := f.svc.GetMonth(context.Background(), user.UserID, "2024/01")
	if !errors.Is(err, ErrInvalidMonth) {
		t.Errorf("期望 ErrInvalidMonth，实际: %v", err)
	}
}

// ── 内部辅助 ──

func mustParseDay(t *testing.T, s string) time.Time {
	t.Helper()
	day, err := dateutil.ParseDay(s)
	if err != nil {
		t.Fatalf("日期无效 %q: %v", s, err)
	}
	return day
}
