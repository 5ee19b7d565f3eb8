package generate_excel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

type GenerateExcelHandler interface {
	GenerateMonthExcel(ctx context.Context, year int, month time.Month) ([]byte, error)
}

func GenerateReportExcel(log *slog.Logger, gen GenerateExcelHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.GenerateReportExcel"

		now := time.Now().UTC()
		year, month := now.Year(), now.Month()

		if yearStr := r.URL.Query().Get("year"); yearStr != "" {
			y, err := strconv.Atoi(yearStr)
			if err != nil {
				http.Error(w, "invalid year", http.StatusBadRequest)
				return
			}
			year = y
		}
		if monthStr := r.URL.Query().Get("month"); monthStr != "" {
			m, err := strconv.Atoi(monthStr)
			if err != nil || m < 1 || m > 12 {
				http.Error(w, "invalid month", http.StatusBadRequest)
				return
			}
			month = time.Month(m)
		}

		// на Excel можно побольше времени
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		excelBytes, err := gen.GenerateMonthExcel(ctx, year, month)
		if err != nil {
			log.Error("failed to generate excel", "op", op, "err", err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		fileName := fmt.Sprintf("Shift_Report_%04d-%02d.xlsx", year, month)

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		w.Write(excelBytes)
	}
}
