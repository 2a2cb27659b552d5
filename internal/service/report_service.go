package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"singular-attend/backend/config"
	"singular-attend/backend/internal/matrix"
	"singular-attend/backend/internal/repository"
	"singular-attend/backend/pkg/dateutil"
)

// ── 报表模块业务错误 ──

var (
	ErrRangeTooLarge      = errors.New("查询区间超出允许的最大天数")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ReportService 报表业务接口
//
// 设计说明：
//   - 矩阵构建与导出共用同一条数据通路：读员工、假日、区间记录，
//     交给纯函数 matrix.Build，保证交互网格与 Excel 内容一致
//   - to 早于 from 按空日轴处理，不报错
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ReportService interface {
	// BuildMatrix 构建员工 × 日期考勤矩阵
	BuildMatrix(ctx context.Context, from, to, categoryID string) (*matrix.Matrix, error)
	// ExportMatrix 导出考勤矩阵为 Excel
	// 返回值：buf（Excel 内容）, filename（建议文件名）, error
	ExportMatrix(ctx context.Context, from, to, categoryID string) (*bytes.Buffer, string, error)
}

type reportService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReportService 创建 ReportService 实例
func NewReportService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ReportService {
	return &reportService{cfg: cfg, repo: repo, logger: logger}
}

func (s *reportService) BuildMatrix(ctx context.Context, from, to, categoryID string) (*matrix.Matrix, error) {
	fromDay, toDay, err := s.parseRange(from, to)
	if err != nil {
		return nil, err
	}

	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("查询员工列表失败", zap.Error(err))
		return nil, err
	}

	holidays, err := s.repo.Holiday.List(ctx)
	if err != nil {
		s.logger.Error("查询假日失败", zap.Error(err))
		return nil, err
	}

	records, err := s.repo.Attendance.ListByRange(ctx, fromDay, toDay, categoryID)
	if err != nil {
		s.logger.Error("查询考勤记录失败", zap.Error(err))
		return nil, err
	}

	return matrix.Build(users, fromDay, toDay, matrix.IndexRecords(records), matrix.NewHolidaySet(holidays)), nil
}

// parseRange 校验区间参数。to 早于 from 合法（空日轴），超长区间拒绝
func (s *reportService) parseRange(from, to string) (time.Time, time.Time, error) {
	fromDay, err := dateutil.ParseDay(from)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	toDay, err := dateutil.ParseDay(to)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	if days := len(dateutil.DaysBetween(fromDay, toDay)); days > s.cfg.Export.MaxRangeDays {
		return time.Time{}, time.Time{}, ErrRangeTooLarge
	}
	return fromDay, toDay, nil
}

// ═══════════════════════════════════════════════════════════
// ExportMatrix — 导出考勤矩阵为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 固定列：AM / Surname / Name / Department
//   - 日期列：每个日历日一列（列头竖排，窄列宽）
//   - 封锁单元格填充灰色：周末/假日浅灰，雇佣期外深灰（深灰优先）
//   - 末行 "Total On Site"：逐日在场人数
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

const (
	exportSheetName     = "Attendance"
	weekendFillColor    = "#D3D3D3"
	employmentFillColor = "#A9A9A9"
)

func (s *reportService) ExportMatrix(ctx context.Context, from, to, categoryID string) (*bytes.Buffer, string, error) {
	m, err := s.BuildMatrix(ctx, from, to, categoryID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(exportSheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 列宽：元数据列宽、日期列窄
	f.SetColWidth(exportSheetName, "A", "A", 10)
	f.SetColWidth(exportSheetName, "B", "C", 20)
	f.SetColWidth(exportSheetName, "D", "D", 15)
	if len(m.Days) > 0 {
		first, _ := excelize.ColumnNumberToName(5)
		last, _ := excelize.ColumnNumberToName(4 + len(m.Days))
		f.SetColWidth(exportSheetName, first, last, 5)
	}

	// 样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	dateHeaderStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "bottom", TextRotation: 90},
	})
	weekendStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{weekendFillColor}, Pattern: 1},
	})
	employmentStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{employmentFillColor}, Pattern: 1},
	})
	centerStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	// 表头
	headers := []string{"AM", "Surname", "Name", "Department"}
	for i, h := range headers {
		f.SetCellValue(exportSheetName, cellRef(i+1, 1), h)
	}
	f.SetCellStyle(exportSheetName, "A1", "D1", headerStyle)
	for i, day := range m.Days {
		ref := cellRef(5+i, 1)
		f.SetCellValue(exportSheetName, ref, day)
		f.SetCellStyle(exportSheetName, ref, ref, dateHeaderStyle)
	}

	// 数据行
	row := 2
	for _, r := range m.Rows {
		f.SetCellValue(exportSheetName, cellRef(1, row), r.AM)
		f.SetCellValue(exportSheetName, cellRef(2, row), r.Surname)
		f.SetCellValue(exportSheetName, cellRef(3, row), r.Name)
		f.SetCellValue(exportSheetName, cellRef(4, row), r.Department)

		for j, c := range r.Cells {
			ref := cellRef(5+j, row)
			switch {
			case c.EmploymentBlocked:
				f.SetCellStyle(exportSheetName, ref, ref, employmentStyle)
			case c.Weekend || c.Holiday:
				f.SetCellStyle(exportSheetName, ref, ref, weekendStyle)
			default:
				f.SetCellStyle(exportSheetName, ref, ref, centerStyle)
				if c.Code != "" {
					f.SetCellValue(exportSheetName, ref, c.Code)
				}
			}
		}
		row++
	}

	// 末行：逐日在场人数
	f.SetCellValue(exportSheetName, cellRef(1, row), "Total On Site")
	f.SetCellStyle(exportSheetName, cellRef(1, row), cellRef(4, row), headerStyle)
	for j, total := range m.OnSiteTotals {
		ref := cellRef(5+j, row)
		f.SetCellValue(exportSheetName, ref, total)
		f.SetCellStyle(exportSheetName, ref, ref, headerStyle)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("Attendance_Matrix_%s_to_%s.xlsx", from, to)
	return buf, filename, nil
}

// ── 辅助函数 ──

func cellRef(col, row int) string {
	ref, _ := excelize.CoordinatesToCellName(col, row)
	return ref
}
