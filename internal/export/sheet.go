// Package export 生成打印用的日誌表格（xlsx）
package export

import (
	"bytes"
	"fmt"
	"strconv"

	"wisefido-carelog/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	LogSheetName    = "日誌"
	VitalsSheetName = "バイタル"
)

// LogSheetHeader 日誌表头
var LogSheetHeader = []string{"日付", "利用者ID", "利用者名", "区分", "内容"}

// VitalsSheetHeader 生命体征表头
var VitalsSheetHeader = []string{"日付", "利用者名", "時刻", "体温", "脈拍", "SpO2", "血圧", "呼吸数"}

// GenerateDailySheet 生成单日的日誌表格
//
// 日誌表每个住户每个有记录的类别一行；生命体征表为每分钟去重后的读数。
// reports 为空时只生成表头。
func GenerateDailySheet(day string, reports []models.SubjectReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", LogSheetName); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(VitalsSheetName); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	wrapStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create wrap style: %w", err)
	}

	if err := writeHeader(f, LogSheetName, LogSheetHeader, headerStyle); err != nil {
		return nil, err
	}
	if err := writeHeader(f, VitalsSheetName, VitalsSheetHeader, headerStyle); err != nil {
		return nil, err
	}

	logRow, vitalsRow := 2, 2
	for _, r := range reports {
		for _, line := range r.Lines {
			values := []any{day, r.Subject.ID, r.Subject.Name, line.Label, line.Text}
			if err := writeRow(f, LogSheetName, logRow, values); err != nil {
				return nil, err
			}
			cell, _ := excelize.CoordinatesToCellName(len(values), logRow)
			if err := f.SetCellStyle(LogSheetName, cell, cell, wrapStyle); err != nil {
				return nil, fmt.Errorf("failed to set wrap style: %w", err)
			}
			logRow++
		}
		for _, v := range r.Vitals {
			values := []any{
				day, r.Subject.Name, models.ClockOf(v.Timestamp),
				numberCell(v.Temperature), numberCell(v.Pulse), numberCell(v.SpO2),
				bloodPressure(v), numberCell(v.RespiratoryRate),
			}
			if err := writeRow(f, VitalsSheetName, vitalsRow, values); err != nil {
				return nil, err
			}
			vitalsRow++
		}
	}

	for sheet, widths := range map[string][]float64{
		LogSheetName:    {12, 12, 16, 16, 60},
		VitalsSheetName: {12, 16, 8, 8, 8, 8, 12, 8},
	} {
		for i, w := range widths {
			col, _ := excelize.ColumnNumberToName(i + 1)
			if err := f.SetColWidth(sheet, col, col, w); err != nil {
				return nil, fmt.Errorf("failed to set column width: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

// numberCell null 写为空单元格
func numberCell(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func bloodPressure(v models.VitalsEntry) string {
	if v.Systolic == nil && v.Diastolic == nil {
		return ""
	}
	return formatOptional(v.Systolic) + "/" + formatOptional(v.Diastolic)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
