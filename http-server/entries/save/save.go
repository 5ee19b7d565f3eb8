package save

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/ChaikAndrew/ShiftScheduler-sub000/internal/constants"
	"github.com/ChaikAndrew/ShiftScheduler-sub000/internal/service/recalc"
	"github.com/ChaikAndrew/ShiftScheduler-sub000/internal/storage"
)

type EntrySaver interface {
	SaveEntry(ctx context.Context, e storage.WorkEntry) (int64, error)
}

type Recalculator interface {
	RecalculateBucket(ctx context.Context, shift, machine string, displayDate time.Time) ([]storage.WorkEntry, []recalc.Issue, error)
}

type Resp struct {
	ID      int64               `json:"id"`
	Entries []storage.WorkEntry `json:"entries"`
	Issues  []recalc.Issue      `json:"issues,omitempty"`
}

// SaveEntryOperation сохраняет новую запись и пересчитывает её бакет:
// одна вставка меняет простои всех записей дня ниже по времени, поэтому в
// ответе весь пересчитанный день, а не только новая запись.
func SaveEntryOperation(log *slog.Logger, saver EntrySaver, service Recalculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.entries.SaveEntryOperation"

		var req storage.SaveEntry
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Некорректный JSON", http.StatusBadRequest)
			return
		}

		if err := validateRefs(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		entry, err := recalc.Normalize(req)
		if err != nil {
			log.Warn("Отклонена запись", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := recalc.ValidateWindow(entry); err != nil {
			log.Warn("Интервал вне окна смены", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id, err := saver.SaveEntry(ctx, entry)
		if err != nil {
			log.Error("Ошибка сохранения записи", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
			return
		}

		entries, issues, err := service.RecalculateBucket(ctx, entry.Shift, entry.Machine, entry.DisplayDate)
		if err != nil {
			log.Error("Ошибка пересчёта бакета", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Resp{
			ID:      id,
			Entries: entries,
			Issues:  issues,
		})
	}
}

func validateRefs(req storage.SaveEntry) error {
	if !constants.Machines[req.Machine] {
		return errors.New("неизвестный станок: " + req.Machine)
	}
	if !constants.Tasks[req.Task] {
		return errors.New("неизвестная задача: " + req.Task)
	}
	if !constants.Products[req.Product] {
		return errors.New("неизвестный продукт: " + req.Product)
	}
	return nil
}
