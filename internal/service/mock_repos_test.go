package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"singular-attend/backend/internal/model"
	"singular-attend/backend/pkg/dateutil"
)

// ── Mock AdminRepository ──

type mockAdminRepo struct {
	admins map[string]*model.Admin
}

func newMockAdminRepo() *mockAdminRepo {
	return &mockAdminRepo{admins: make(map[string]*model.Admin)}
}

func (m *mockAdminRepo) Create(_ context.Context, admin *model.Admin) error {
	if admin.AdminID == "" {
		admin.AdminID = "admin-" + admin.Username
	}
	m.admins[admin.AdminID] = admin
	return nil
}

func (m *mockAdminRepo) GetByID(_ context.Context, id string) (*model.Admin, error) {
	if a, ok := m.admins[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdminRepo) GetByUsername(_ context.Context, username string) (*model.Admin, error) {
	for _, a := range m.admins {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdminRepo) Update(_ context.Context, admin *model.Admin) error {
	m.admins[admin.AdminID] = admin
	return nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByAM(_ context.Context, am string) (*model.User, error) {
	for _, u := range m.users {
		if u.AM == am {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Surname != result[j].Surname {
			return result[i].Surname < result[j].Surname
		}
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].UserID < result[j].UserID
	})
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

// ── Mock CategoryRepository ──

type mockCategoryRepo struct {
	categories map[string]*model.Category
	// refCounts 可由测试直接设置，模拟被考勤记录引用的类别
	refCounts map[string]int64
	seq       int
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{
		categories: make(map[string]*model.Category),
		refCounts:  make(map[string]int64),
	}
}

func (m *mockCategoryRepo) Create(_ context.Context, cat *model.Category) error {
	if cat.CategoryID == "" {
		m.seq++
		cat.CategoryID = fmt.Sprintf("cat-%d", m.seq)
	}
	if cat.SortOrder == 0 {
		cat.SortOrder = m.seq
	}
	m.categories[cat.CategoryID] = cat
	return nil
}

func (m *mockCategoryRepo) GetByID(_ context.Context, id string) (*model.Category, error) {
	if c, ok := m.categories[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCategoryRepo) GetByCode(_ context.Context, code string) (*model.Category, error) {
	for _, c := range m.categories {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCategoryRepo) ListActive(_ context.Context) ([]model.Category, error) {
	var result []model.Category
	for _, c := range m.categories {
		if c.IsActive {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SortOrder < result[j].SortOrder
	})
	return result, nil
}

func (m *mockCategoryRepo) ListAll(_ context.Context) ([]model.Category, error) {
	var result []model.Category
	for _, c := range m.categories {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SortOrder < result[j].SortOrder
	})
	return result, nil
}

func (m *mockCategoryRepo) Update(_ context.Context, cat *model.Category) error {
	m.categories[cat.CategoryID] = cat
	return nil
}

func (m *mockCategoryRepo) CountReferences(_ context.Context, categoryID string) (int64, error) {
	return m.refCounts[categoryID], nil
}

func (m *mockCategoryRepo) Delete(_ context.Context, id string) error {
	delete(m.categories, id)
	return nil
}

// ── Mock DepartmentRepository ──

type mockDepartmentRepo struct {
	departments  map[string]*model.Department
	memberCounts map[string]int64
}

func newMockDepartmentRepo() *mockDepartmentRepo {
	return &mockDepartmentRepo{
		departments:  make(map[string]*model.Department),
		memberCounts: make(map[string]int64),
	}
}

func (m *mockDepartmentRepo) Create(_ context.Context, dept *model.Department) error {
	if dept.DepartmentID == "" {
		dept.DepartmentID = "dept-" + dept.Name
	}
	m.departments[dept.DepartmentID] = dept
	return nil
}

func (m *mockDepartmentRepo) GetByID(_ context.Context, id string) (*model.Department, error) {
	if d, ok := m.departments[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDepartmentRepo) GetByName(_ context.Context, name string) (*model.Department, error) {
	for _, d := range m.departments {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDepartmentRepo) List(_ context.Context) ([]model.Department, error) {
	var result []model.Department
	for _, d := range m.departments {
		result = append(result, *d)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (m *mockDepartmentRepo) Update(_ context.Context, dept *model.Department) error {
	m.departments[dept.DepartmentID] = dept
	return nil
}

func (m *mockDepartmentRepo) Delete(_ context.Context, id string) error {
	delete(m.departments, id)
	return nil
}

func (m *mockDepartmentRepo) CountMembers(_ context.Context, departmentID string) (int64, error) {
	return m.memberCounts[departmentID], nil
}

// ── Mock HolidayRepository ──

type mockHolidayRepo struct {
	holidays map[string]*model.Holiday // 按 YYYY-MM-DD 索引
	seq      int
}

func newMockHolidayRepo() *mockHolidayRepo {
	return &mockHolidayRepo{holidays: make(map[string]*model.Holiday)}
}

func (m *mockHolidayRepo) Create(_ context.Context, holiday *model.Holiday) error {
	if holiday.HolidayID == "" {
		m.seq++
		holiday.HolidayID = fmt.Sprintf("hol-%d", m.seq)
	}
	m.holidays[dateutil.DayString(holiday.Date)] = holiday
	return nil
}

func (m *mockHolidayRepo) GetByDate(_ context.Context, date time.Time) (*model.Holiday, error) {
	if h, ok := m.holidays[dateutil.DayString(date)]; ok {
		return h, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHolidayRepo) List(_ context.Context) ([]model.Holiday, error) {
	var result []model.Holiday
	for _, h := range m.holidays {
		result = append(result, *h)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

func (m *mockHolidayRepo) Delete(_ context.Context, id string) error {
	for day, h := range m.holidays {
		if h.HolidayID == id {
			delete(m.holidays, day)
			return nil
		}
	}
	return nil
}

func (m *mockHolidayRepo) UpsertBatch(_ context.Context, holidays []model.Holiday) error {
	for i := range holidays {
		h := holidays[i]
		day := dateutil.DayString(h.Date)
		if existing, ok := m.holidays[day]; ok {
			existing.Name = h.Name
			continue
		}
		m.seq++
		h.HolidayID = fmt.Sprintf("hol-%d", m.seq)
		m.holidays[day] = &h
	}
	return nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	// records 按 "userID_YYYY-MM-DD" 索引
	records    map[string]*model.Attendance
	categories *mockCategoryRepo // 用于 Preload Category 的等价行为
	seq        int
}

func newMockAttendanceRepo(categories *mockCategoryRepo) *mockAttendanceRepo {
	return &mockAttendanceRepo{
		records:    make(map[string]*model.Attendance),
		categories: categories,
	}
}

func attKey(userID string, date time.Time) string {
	return userID + "_" + dateutil.DayString(date)
}

func (m *mockAttendanceRepo) withCategory(record *model.Attendance) *model.Attendance {
	if m.categories != nil {
		if c, ok := m.categories.categories[record.CategoryID]; ok {
			record.Category = c
		}
	}
	return record
}

func (m *mockAttendanceRepo) Upsert(_ context.Context, userID string, date time.Time, categoryID string) error {
	key := attKey(userID, date)
	if existing, ok := m.records[key]; ok {
		existing.CategoryID = categoryID
		existing.Category = nil
		return nil
	}
	m.seq++
	m.records[key] = &model.Attendance{
		AttendanceID: fmt.Sprintf("att-%d", m.seq),
		UserID:       userID,
		Date:         date,
		CategoryID:   categoryID,
	}
	return nil
}

func (m *mockAttendanceRepo) DeleteByUserDate(_ context.Context, userID string, date time.Time) error {
	delete(m.records, attKey(userID, date))
	return nil
}

func (m *mockAttendanceRepo) GetByUserDate(_ context.Context, userID string, date time.Time) (*model.Attendance, error) {
	if r, ok := m.records[attKey(userID, date)]; ok {
		return m.withCategory(r), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) ListByRange(_ context.Context, from, to time.Time, categoryID string) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, r := range m.records {
		if r.Date.Before(from) || r.Date.After(to) {
			continue
		}
		if categoryID != "" && categoryID != "all" && r.CategoryID != categoryID {
			continue
		}
		result = append(result, *m.withCategory(r))
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListByUserRange(_ context.Context, userID string, from, to time.Time) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, r := range m.records {
		if r.UserID != userID || r.Date.Before(from) || r.Date.After(to) {
			continue
		}
		result = append(result, *m.withCategory(r))
	}
	return result, nil
}
