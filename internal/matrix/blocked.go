// Package matrix 实现考勤系统的纯内存核心：
// 在职窗口过滤、状态循环状态机、以及用户 × 日期的考勤矩阵构建。
// 包内不做任何 I/O，编辑路径与报表路径共用同一套判定逻辑。
package matrix

import (
	"time"

	"singular-attend/backend/internal/model"
	"singular-attend/backend/pkg/dateutil"
)

// HolidaySet 假日集合，键为 YYYY-MM-DD
type HolidaySet map[string]bool

// NewHolidaySet 由假日记录构建集合
func NewHolidaySet(holidays []model.Holiday) HolidaySet {
	set := make(HolidaySet, len(holidays))
	for _, h := range holidays {
		set[dateutil.DayString(h.Date)] = true
	}
	return set
}

// IsBlocked 判断某员工在某日历日是否"封锁"（不可指派状态）。
// 封锁条件：在职窗口之外，或周末，或公司假日。
// 在职窗口按 YYYY-MM-DD 字符串比较，避免时区漂移。
// 编辑界面与导出报表必须共用本函数，两侧判定不得分叉。
func IsBlocked(u *model.User, day time.Time, holidays HolidaySet) bool {
	if IsEmploymentBlocked(u, day) {
		return true
	}
	return dateutil.IsWeekend(day) || holidays[dateutil.DayString(day)]
}

// IsEmploymentBlocked 仅判断在职窗口：入职前或离职后均封锁，
// 与周末/假日无关
func IsEmploymentBlocked(u *model.User, day time.Time) bool {
	dayStr := dateutil.DayString(day)
	if dayStr < dateutil.DayString(u.StartDate) {
		return true
	}
	if u.EndDate != nil && dayStr > dateutil.DayString(*u.EndDate) {
		return true
	}
	return false
}
