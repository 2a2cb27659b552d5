package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"singular-attend/backend/internal/dto"
	"singular-attend/backend/internal/model"
	"singular-attend/backend/internal/repository"
)

// ── 测试辅助 ──

func setupTestUserService() (UserService, *mockUserRepo, *mockDepartmentRepo) {
	users := newMockUserRepo()
	depts := newMockDepartmentRepo()
	repo := &repository.Repository{
		Admin:      newMockAdminRepo(),
		User:       users,
		Category:   newMockCategoryRepo(),
		Department: depts,
		Holiday:    newMockHolidayRepo(),
		Attendance: newMockAttendanceRepo(nil),
	}
	return NewUserService(repo, zap.NewNop()), users, depts
}

func strPtr(s string) *string { return &s }

// ── Create 测试 ──

func TestUserService_Create_Success(t *testing.T) {
	svc, _, depts := setupTestUserService()
	_ = depts.Create(context.Background(), &model.Department{Name: "R&D"})
	dept, _ := depts.GetByName(context.Background(), "R&D")

	resp, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		AM:           "8818",
		Surname:      "Dembani",
		Name:         "Rachid",
		DepartmentID: &dept.DepartmentID,
		StartDate:    "2024-01-10",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.AM != "8818" || resp.StartDate != "2024-01-10" {
		t.Errorf("响应字段不正确: %+v", resp)
	}
	if resp.Department == nil || resp.Department.Name != "R&D" {
		t.Error("响应应包含部门信息")
	}
	if resp.EndDate != nil {
		t.Error("未设置离职日期时 EndDate 应为空")
	}
}

func TestUserService_Create_DuplicateAM(t *testing.T) {
	svc, _, _ := setupTestUserService()

	req := &dto.CreateUserRequest{AM: "1001", Surname: "Doe", Name: "John", StartDate: "2024-01-01"}
	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Fatalf("首次创建应成功: %v", err)
	}
	if _, err := svc.Create(context.Background(), req); !errors.Is(err, ErrAMExists) {
		t.Errorf("期望 ErrAMExists，实际: %v", err)
	}
}

func TestUserService_Create_EndBeforeStart(t *testing.T) {
	svc, _, _ := setupTestUserService()

	_, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		AM: "1001", Surname: "Doe", Name: "John",
		StartDate: "2024-06-01", EndDate: strPtr("2024-05-01"),
	})
	if !errors.Is(err, ErrEndBeforeStart) {
		t.Errorf("期望 ErrEndBeforeStart，实际: %v", err)
	}
}

func TestUserService_Create_InvalidDate(t *testing.T) {
	svc, _, _ := setupTestUserService()

	_, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		AM: "1001", Surname: "Doe", Name: "John", StartDate: "01/06/2024",
	})
	if !errors.Is(err, ErrInvalidDate) {
		t.Errorf("期望 ErrInvalidDate，实际: %v", err)
	}
}

func TestUserService_Create_UnknownDepartment(t *testing.T) {
	svc, _, _ := setupTestUserService()

	_, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		AM: "1001", Surname: "Doe", Name: "John",
		StartDate: "2024-01-01", DepartmentID: strPtr("dept-missing"),
	})
	if !errors.Is(err, ErrDepartmentNotFound) {
		t.Errorf("期望 ErrDepartmentNotFound，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestUserService_Update_ClearEndDate(t *testing.T) {
	svc, _, _ := setupTestUserService()

	created, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		AM: "1001", Surname: "Doe", Name: "John",
		StartDate: "2024-01-01", EndDate: strPtr("2024-06-30"),
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	// 空字符串清除离职日期
	updated, err := svc.Update(context.Background(), created.ID, &dto.UpdateUserRequest{
		EndDate: strPtr(""),
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if updated.EndDate != nil {
		t.Errorf("离职日期应已清除，实际 %v", *updated.EndDate)
	}
}

func TestUserService_Update_EndBeforeStart(t *testing.T) {
	svc, _, _ := setupTestUserService()

	created, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		AM: "1001", Surname: "Doe", Name: "John", StartDate: "2024-06-01",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	_, err = svc.Update(context.Background(), created.ID, &dto.UpdateUserRequest{
		EndDate: strPtr("2024-05-01"),
	})
	if !errors.Is(err, ErrEndBeforeStart) {
		t.Errorf("期望 ErrEndBeforeStart，实际: %v", err)
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc, _, _ := setupTestUserService()

	_, err := svc.Update(context.Background(), "nonexistent", &dto.UpdateUserRequest{
		Name: strPtr("Jane"),
	})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

// ── List / Delete 测试 ──

func TestUserService_ListPortal(t *testing.T) {
	svc, _, depts := setupTestUserService()
	_ = depts.Create(context.Background(), &model.Department{Name: "Sales"})
	dept, _ := depts.GetByName(context.Background(), "Sales")

	_, _ = svc.Create(context.Background(), &dto.CreateUserRequest{
		AM: "1001", Surname: "Doe", Name: "John",
		DepartmentID: &dept.DepartmentID, StartDate: "2024-01-01",
	})
	_, _ = svc.Create(context.Background(), &dto.CreateUserRequest{
		AM: "8818", Surname: "Dembani", Name: "Rachid", StartDate: "2024-01-01",
	})

	list, err := svc.ListPortal(context.Background())
	if err != nil {
		t.Fatalf("ListPortal 应成功: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("期望 2 名员工，实际 %d", len(list))
	}
	// 按姓氏排序：Dembani 在前
	if list[0].Surname != "Dembani" || list[1].Surname != "Doe" {
		t.Errorf("员工应按姓氏排序: %+v", list)
	}
	if list[1].Department != "Sales" {
		t.Errorf("期望部门 Sales，实际 %q", list[1].Department)
	}
}

func TestUserService_Delete(t *testing.T) {
	svc, _, _ := setupTestUserService()

	created, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		AM: "1001", Surname: "Doe", Name: "John", StartDate: "2024-01-01",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), created.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("删除后查询应返回 ErrUserNotFound，实际: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("重复删除应返回 ErrUserNotFound，实际: %v", err)
	}
}
