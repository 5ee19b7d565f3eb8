package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/ChaikAndrew/ShiftScheduler-sub000/internal/storage"
	"github.com/ChaikAndrew/ShiftScheduler-sub000/internal/storage/mysql"
)

type EntryReader interface {
	GetEntry(ctx context.Context, id int64) (*storage.WorkEntry, error)
	GetEntriesByMonth(ctx context.Context, year int, month time.Month) (storage.MonthEntries, error)
}

func GetEntry(log *slog.Logger, reader EntryReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.entries.GetEntry"

		idStr := chi.URLParam(r, "id")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			http.Error(w, "Invalid ID", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		entry, err := reader.GetEntry(ctx, id)
		if err != nil {
			if errors.Is(err, mysql.ErrEntryNotFound) {
				http.Error(w, "Запись не найдена", http.StatusNotFound)
				return
			}
			log.Error("Ошибка получения записи", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, entry)
	}
}

// GetEntriesByMonth отдаёт месяц записей в группировке смена → станок,
// сгруппированной по display date месяца.
func GetEntriesByMonth(log *slog.Logger, reader EntryReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.entries.GetEntriesByMonth"

		year, month, err := parseYearMonth(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		entries, err := reader.GetEntriesByMonth(ctx, year, month)
		if err != nil {
			log.Error("Ошибка получения записей за месяц", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, entries)
	}
}

func parseYearMonth(r *http.Request) (int, time.Month, error) {
	yearStr := r.URL.Query().Get("year")
	monthStr := r.URL.Query().Get("month")

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		return 0, 0, errors.New("некорректный параметр year")
	}

	m, err := strconv.Atoi(monthStr)
	if err != nil || m < 1 || m > 12 {
		return 0, 0, errors.New("некорректный параметр month")
	}

	return year, time.Month(m), nil
}
