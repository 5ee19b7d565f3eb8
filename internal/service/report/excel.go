package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ChaikAndrew/ShiftScheduler-sub000/internal/service/summary"
	"github.com/ChaikAndrew/ShiftScheduler-sub000/internal/storage"
)

type ReportStorage interface {
	GetEntriesByMonth(ctx context.Context, year int, month time.Month) (storage.MonthEntries, error)
}

type ExcelService struct {
	storage ReportStorage
}

func NewExcelService(storage ReportStorage) *ExcelService {
	return &ExcelService{storage: storage}
}

var shiftLabels = map[string]string{
	"first":  "1-я смена (06:00–14:00)",
	"second": "2-я смена (14:00–22:00)",
	"third":  "3-я смена (22:00–06:00)",
}

// GenerateMonthExcel собирает месячный отчёт: по строке на запись, смены
// идут блоками, внизу итоговая строка.
func (g *ExcelService) GenerateMonthExcel(ctx context.Context, year int, month time.Month) ([]byte, error) {
	const op = "service.report.GenerateMonthExcel"

	monthEntries, err := g.storage.GetEntriesByMonth(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch data: %w", op, err)
	}

	entries := summary.Flatten(monthEntries)

	// стабильный порядок строк: смена, станок, дата, время старта
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Shift != b.Shift {
			return a.Shift < b.Shift
		}
		if a.Machine != b.Machine {
			return a.Machine < b.Machine
		}
		return a.StartTime.Before(b.StartTime)
	})

	f := excelize.NewFile()
	defer f.Close()
	sheet := fmt.Sprintf("Отчет %04d-%02d", year, month)
	f.SetSheetName("Sheet1", sheet)

	// --- СТИЛИ ---
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	totalStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Border: []excelize.Border{{Type: "top", Color: "000000", Style: 2}},
	})

	headers := []string{"Дата", "Смена", "Станок", "Оператор", "Начало", "Конец",
		"Задача", "Продукт", "Кол-во", "Работа, мин", "Простой, мин", "Причина", "Комментарий"}

	for i, name := range headers {
		f.SetCellValue(sheet, cellName(i+1, 1), name)
	}
	f.SetCellStyle(sheet, "A1", cellName(len(headers), 1), headerStyle)

	var totalQty, totalWork, totalDown int

	for rowIdx, e := range entries {
		rowNum := rowIdx + 2

		f.SetCellValue(sheet, cellName(1, rowNum), e.DisplayDate.Format("2006-01-02"))
		f.SetCellValue(sheet, cellName(2, rowNum), shiftLabels[e.Shift])
		f.SetCellValue(sheet, cellName(3, rowNum), e.Machine)
		f.SetCellValue(sheet, cellName(4, rowNum), e.Operator)
		f.SetCellValue(sheet, cellName(5, rowNum), e.StartTime.Format("15:04"))
		f.SetCellValue(sheet, cellName(6, rowNum), e.EndTime.Format("15:04"))
		f.SetCellValue(sheet, cellName(7, rowNum), e.Task)
		f.SetCellValue(sheet, cellName(8, rowNum), e.Product)
		f.SetCellValue(sheet, cellName(9, rowNum), e.Quantity)
		f.SetCellValue(sheet, cellName(10, rowNum), e.WorkingTime)
		f.SetCellValue(sheet, cellName(11, rowNum), e.Downtime)
		if e.Reason != nil {
			f.SetCellValue(sheet, cellName(12, rowNum), *e.Reason)
		}
		if e.Comment != nil {
			f.SetCellValue(sheet, cellName(13, rowNum), *e.Comment)
		}

		totalQty += e.Quantity
		totalWork += e.WorkingTime
		totalDown += e.Downtime
	}

	// итоговая строка
	totalRow := len(entries) + 2
	f.SetCellValue(sheet, cellName(1, totalRow), "Итого")
	f.SetCellValue(sheet, cellName(9, totalRow), totalQty)
	f.SetCellValue(sheet, cellName(10, totalRow), totalWork)
	f.SetCellValue(sheet, cellName(11, totalRow), totalDown)
	f.SetCellStyle(sheet, cellName(1, totalRow), cellName(len(headers), totalRow), totalStyle)

	// закрепляем шапку
	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
	})

	f.SetColWidth(sheet, "A", "M", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
