package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"singular-attend/backend/internal/dto"
	"singular-attend/backend/internal/model"
	"singular-attend/backend/internal/repository"
	"singular-attend/backend/pkg/dateutil"
)

// ── 假日模块业务错误 ──

var (
	ErrHolidayExists   = errors.New("该日期已是公司假日")
	ErrHolidayNotFound = errors.New("假日不存在")
	ErrICSParseFailed  = errors.New("ICS 日历解析失败")
	ErrICSNoHolidays   = errors.New("ICS 日历中没有可导入的全天事件")
)

// icsMaxEventSpanDays 单个事件最多展开的天数，防御畸形日历
const icsMaxEventSpanDays = 62

// HolidayService 公司假日业务接口
//
// 设计说明：
//   - 除手工 CRUD 外支持 ICS 日历导入：每个全天事件按天展开为假日，
//     同日期重复导入时覆盖名称
//   - 带时刻的事件只取其起始所在的日历日
type HolidayService interface {
	Create(ctx context.Context, req *dto.CreateHolidayRequest) (*dto.HolidayResponse, error)
	List(ctx context.Context) ([]dto.HolidayResponse, error)
	Delete(ctx context.Context, id string) error
	// ImportICS 从 ICS 内容导入假日，返回导入结果
	ImportICS(ctx context.Context, reader io.Reader) (*dto.ImportICSResponse, error)
}

type holidayService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewHolidayService 创建 HolidayService 实例
func NewHolidayService(repo *repository.Repository, logger *zap.Logger) HolidayService {
	return &holidayService{repo: repo, logger: logger}
}

func (s *holidayService) Create(ctx context.Context, req *dto.CreateHolidayRequest) (*dto.HolidayResponse, error) {
	date, err := dateutil.ParseDay(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	existing, err := s.repo.Holiday.GetByDate(ctx, date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询假日失败", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrHolidayExists
	}

	holiday := &model.Holiday{Date: date, Name: req.Name}
	if err := s.repo.Holiday.Create(ctx, holiday); err != nil {
		s.logger.Error("创建假日失败", zap.Error(err))
		return nil, err
	}

	return toHolidayResponse(holiday), nil
}

func (s *holidayService) List(ctx context.Context) ([]dto.HolidayResponse, error) {
	holidays, err := s.repo.Holiday.List(ctx)
	if err != nil {
		s.logger.Error("列出假日失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.HolidayResponse, 0, len(holidays))
	for i := range holidays {
		result = append(result, *toHolidayResponse(&holidays[i]))
	}
	return result, nil
}

func (s *holidayService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Holiday.Delete(ctx, id); err != nil {
		s.logger.Error("删除假日失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ═══════════════════════════════════════════════════════════
// ImportICS — 从 ICS 日历导入公司假日
// ═══════════════════════════════════════════════════════════

func (s *holidayService) ImportICS(ctx context.Context, reader io.Reader) (*dto.ImportICSResponse, error) {
	cal, err := ics.ParseCalendar(reader)
	if err != nil {
		s.logger.Warn("ICS 解析失败", zap.Error(err))
		return nil, ErrICSParseFailed
	}

	// 按日期去重：后出现的事件覆盖同日名称
	byDate := make(map[string]model.Holiday)
	for _, evt := range cal.Events() {
		for _, h := range parseHolidayEvent(evt) {
			byDate[dateutil.DayString(h.Date)] = h
		}
	}
	if len(byDate) == 0 {
		return nil, ErrICSNoHolidays
	}

	holidays := make([]model.Holiday, 0, len(byDate))
	for _, h := range byDate {
		holidays = append(holidays, h)
	}

	if err := s.repo.Holiday.UpsertBatch(ctx, holidays); err != nil {
		s.logger.Error("批量写入假日失败", zap.Error(err))
		return nil, err
	}

	// 重新读取，保证响应携带数据库生成的 ID 且有序
	all, err := s.repo.Holiday.List(ctx)
	if err != nil {
		s.logger.Error("列出假日失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.ImportICSResponse{Imported: len(holidays)}
	for i := range all {
		if _, ok := byDate[dateutil.DayString(all[i].Date)]; ok {
			resp.Holidays = append(resp.Holidays, *toHolidayResponse(&all[i]))
		}
	}
	return resp, nil
}

// parseHolidayEvent 将单个 VEVENT 展开为假日列表。
// 全天事件（VALUE=DATE）按 [DTSTART, DTEND) 逐日展开（DTEND 按 RFC 5545 为开区间）；
// 带时刻的事件只取起始日
func parseHolidayEvent(evt *ics.VEvent) []model.Holiday {
	name := ""
	if summary := evt.GetProperty(ics.ComponentPropertySummary); summary != nil {
		name = strings.TrimSpace(summary.Value)
	}

	start, allDay, ok := parseICSDate(evt, ics.ComponentPropertyDtStart)
	if !ok {
		return nil
	}

	if !allDay {
		return []model.Holiday{{Date: dateutil.StartOfDay(start).UTC(), Name: name}}
	}

	end, endAllDay, endOK := parseICSDate(evt, ics.ComponentPropertyDtEnd)
	if !endOK || !endAllDay || !end.After(start) {
		end = start.AddDate(0, 0, 1)
	}

	var holidays []model.Holiday
	for d, n := start, 0; d.Before(end) && n < icsMaxEventSpanDays; d, n = d.AddDate(0, 0, 1), n+1 {
		holidays = append(holidays, model.Holiday{Date: d, Name: name})
	}
	return holidays
}

// parseICSDate 读取日期属性；第二个返回值表示是否为全天（纯日期）格式
func parseICSDate(evt *ics.VEvent, propName ics.ComponentProperty) (time.Time, bool, bool) {
	prop := evt.GetProperty(propName)
	if prop == nil {
		return time.Time{}, false, false
	}
	val := prop.Value

	if t, err := time.Parse("20060102", val); err == nil {
		return t, true, true
	}
	if t, err := time.Parse("20060102T150405Z", val); err == nil {
		return t, false, true
	}
	if t, err := time.Parse("20060102T150405", val); err == nil {
		return t, false, true
	}
	return time.Time{}, false, false
}

// ── 内部辅助 ──

func toHolidayResponse(holiday *model.Holiday) *dto.HolidayResponse {
	return &dto.HolidayResponse{
		ID:   holiday.HolidayID,
		Date: dateutil.DayString(holiday.Date),
		Name: holiday.Name,
	}
}
