package matrix

import (
	"sort"
	"time"

	"singular-attend/backend/internal/model"
	"singular-attend/backend/pkg/dateutil"
)

// Cell 矩阵单元格：解析后的状态短码 + 样式标记
type Cell struct {
	Code              string `json:"code"`
	Blocked           bool   `json:"blocked"`
	Weekend           bool   `json:"weekend"`
	Holiday           bool   `json:"holiday"`
	EmploymentBlocked bool   `json:"employment_blocked"`
}

// Row 矩阵行：一名员工的元数据 + 逐日单元格
type Row struct {
	UserID     string `json:"user_id"`
	AM         string `json:"am"`
	Surname    string `json:"surname"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Cells      []Cell `json:"cells"`
}

// Matrix 用户 × 日期考勤矩阵，交互网格与导出共用同一结构
type Matrix struct {
	Days []string `json:"days"` // YYYY-MM-DD 列轴
	Rows []Row    `json:"rows"`
	// OnSiteTotals 逐日"Total On Site"：未封锁且解析短码恰为 OS 的人数
	OnSiteTotals []int `json:"on_site_totals"`
}

// IndexRecords 将考勤记录按 (userID, 日历日) 建索引，单元格 O(1) 查找。
// 记录须预加载 Category；缺失类别的脏数据直接跳过
func IndexRecords(records []model.Attendance) map[string]string {
	index := make(map[string]string, len(records))
	for i := range records {
		if records[i].Category == nil {
			continue
		}
		index[cellKey(records[i].UserID, dateutil.DayString(records[i].Date))] = records[i].Category.Code
	}
	return index
}

func cellKey(userID, day string) string {
	return userID + "_" + day
}

// Build 构建考勤矩阵。
//
//   - [from, to] 为闭区间；to 早于 from 时产出零列日轴，不报错
//   - 行按 姓氏、名、UserID 升序，保证完全确定性
//   - 封锁日单元格强制为空：即使索引中存在残留记录也不显示（记录隐藏，不删除）
//   - records 的类别过滤由调用方先行完成
func Build(users []model.User, from, to time.Time, records map[string]string, holidays HolidaySet) *Matrix {
	days := dateutil.DaysBetween(from, to)

	sorted := make([]model.User, len(users))
	copy(sorted, users)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Surname != sorted[j].Surname {
			return sorted[i].Surname < sorted[j].Surname
		}
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].UserID < sorted[j].UserID
	})

	m := &Matrix{
		Days:         make([]string, len(days)),
		Rows:         make([]Row, 0, len(sorted)),
		OnSiteTotals: make([]int, len(days)),
	}
	for i, d := range days {
		m.Days[i] = dateutil.DayString(d)
	}

	for i := range sorted {
		u := &sorted[i]
		row := Row{
			UserID:  u.UserID,
			AM:      u.AM,
			Surname: u.Surname,
			Name:    u.Name,
			Cells:   make([]Cell, len(days)),
		}
		if u.Department != nil {
			row.Department = u.Department.Name
		}

		for j, d := range days {
			dayStr := m.Days[j]
			cell := Cell{
				Weekend:           dateutil.IsWeekend(d),
				Holiday:           holidays[dayStr],
				EmploymentBlocked: IsEmploymentBlocked(u, d),
			}
			cell.Blocked = cell.EmploymentBlocked || cell.Weekend || cell.Holiday

			if !cell.Blocked {
				cell.Code = records[cellKey(u.UserID, dayStr)]
				if cell.Code == OnSiteCode {
					m.OnSiteTotals[j]++
				}
			}
			row.Cells[j] = cell
		}

		m.Rows = append(m.Rows, row)
	}

	return m
}
