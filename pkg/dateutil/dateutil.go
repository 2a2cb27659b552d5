package dateutil

import (
	"fmt"
	"time"
)

// DayLayout 日历日统一格式
// 全系统的"某一天"一律用 YYYY-MM-DD 字符串表示与比较，避免时区漂移
const DayLayout = "2006-01-02"

// DayString 将时间截断为日历日字符串
func DayString(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseDay 解析 YYYY-MM-DD 字符串为当日零点（UTC）
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("无效的日期 %q: %w", s, err)
	}
	return t, nil
}

// IsWeekend 判断是否周末（周六或周日）
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// DaysBetween 返回 [from, to] 闭区间内的全部日历日
// to 早于 from 时返回空切片，不报错
func DaysBetween(from, to time.Time) []time.Time {
	var days []time.Time
	for d := StartOfDay(from); !d.After(StartOfDay(to)); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// StartOfDay 返回当日零点
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MonthRange 返回指定月份（YYYY-MM）的首末两天
func MonthRange(month string) (time.Time, time.Time, error) {
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("无效的月份 %q: %w", month, err)
	}
	last := first.AddDate(0, 1, -1)
	return first, last, nil
}
