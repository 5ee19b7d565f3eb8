package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"github.com/ChaikAndrew/ShiftScheduler-sub000/internal/service/summary"
)

type SummaryProvider interface {
	MonthSummary(ctx context.Context, year int, month time.Month, filter summary.Filter) (summary.Report, error)
}

// GetMonthSummary — сводка за месяц с необязательными фильтрами
// shift/machine/operator/task/product в query.
func GetMonthSummary(log *slog.Logger, provider SummaryProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.summary.GetMonthSummary"

		year, month, err := parseYearMonth(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		filter := summary.Filter{
			Shift:    r.URL.Query().Get("shift"),
			Machine:  r.URL.Query().Get("machine"),
			Operator: r.URL.Query().Get("operator"),
			Task:     r.URL.Query().Get("task"),
			Product:  r.URL.Query().Get("product"),
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		report, err := provider.MonthSummary(ctx, year, month, filter)
		if err != nil {
			log.Error("Ошибка сборки сводки", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, report)
	}
}

func parseYearMonth(r *http.Request) (int, time.Month, error) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 2000 || year > 2100 {
		return 0, 0, errors.New("некорректный параметр year")
	}

	m, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || m < 1 || m > 12 {
		return 0, 0, errors.New("некорректный параметр month")
	}

	return year, time.Month(m), nil
}
