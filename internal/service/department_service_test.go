package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"singular-attend/backend/internal/dto"
	"singular-attend/backend/internal/repository"
)

// ── 测试辅助 ──

func setupTestDepartmentService() (DepartmentService, *mockDepartmentRepo) {
	depts := newMockDepartmentRepo()
	repo := &repository.Repository{
		Admin:      newMockAdminRepo(),
		User:       newMockUserRepo(),
		Category:   newMockCategoryRepo(),
		Department: depts,
		Holiday:    newMockHolidayRepo(),
		Attendance: newMockAttendanceRepo(nil),
	}
	return NewDepartmentService(repo, zap.NewNop()), depts
}

// ── CRUD 测试 ──

func TestDepartmentService_Create_Success(t *testing.T) {
	svc, _ := setupTestDepartmentService()

	resp, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{Name: "R&D"})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.Name != "R&D" || resp.MemberCount != 0 {
		t.Errorf("响应字段不正确: %+v", resp)
	}
}

func TestDepartmentService_Create_DuplicateName(t *testing.T) {
	svc, _ := setupTestDepartmentService()

	req := &dto.CreateDepartmentRequest{Name: "HR"}
	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Fatalf("首次创建应成功: %v", err)
	}
	if _, err := svc.Create(context.Background(), req); !errors.Is(err, ErrDepartmentNameExists) {
		t.Errorf("期望 ErrDepartmentNameExists，实际: %v", err)
	}
}

func TestDepartmentService_Update_RenameConflict(t *testing.T) {
	svc, _ := setupTestDepartmentService()

	_, _ = svc.Create(context.Background(), &dto.CreateDepartmentRequest{Name: "Sales"})
	created, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{Name: "Marketing"})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	_, err = svc.Update(context.Background(), created.ID, &dto.UpdateDepartmentRequest{Name: "Sales"})
	if !errors.Is(err, ErrDepartmentNameExists) {
		t.Errorf("期望 ErrDepartmentNameExists，实际: %v", err)
	}
}

func TestDepartmentService_Delete_WithMembersBlocked(t *testing.T) {
	svc, depts := setupTestDepartmentService()

	created, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{Name: "R&D"})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	depts.memberCounts[created.ID] = 2
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, ErrDepartmentHasMembers) {
		t.Errorf("期望 ErrDepartmentHasMembers，实际: %v", err)
	}

	depts.memberCounts[created.ID] = 0
	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Errorf("无成员时 Delete 应成功: %v", err)
	}
}

func TestDepartmentService_Delete_NotFound(t *testing.T) {
	svc, _ := setupTestDepartmentService()

	if err := svc.Delete(context.Background(), "nonexistent"); !errors.Is(err, ErrDepartmentNotFound) {
		t.Errorf("期望 ErrDepartmentNotFound，实际: %v", err)
	}
}
