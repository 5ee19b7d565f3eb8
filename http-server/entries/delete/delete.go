package del

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/ChaikAndrew/ShiftScheduler-sub000/internal/service/recalc"
	"github.com/ChaikAndrew/ShiftScheduler-sub000/internal/storage"
	"github.com/ChaikAndrew/ShiftScheduler-sub000/internal/storage/mysql"
)

type EntryDeleter interface {
	GetEntry(ctx context.Context, id int64) (*storage.WorkEntry, error)
	DeleteEntry(ctx context.Context, id int64) error
}

type Recalculator interface {
	RecalculateBucket(ctx context.Context, shift, machine string, displayDate time.Time) ([]storage.WorkEntry, []recalc.Issue, error)
}

type Resp struct {
	Deleted int64               `json:"deleted"`
	Entries []storage.WorkEntry `json:"entries"`
	Issues  []recalc.Issue      `json:"issues,omitempty"`
}

// DeleteEntryOperation удаляет запись и пересчитывает оставшихся соседей по
// бакету: следующая за удалённой запись теперь меряется от конца новой
// предыдущей.
func DeleteEntryOperation(log *slog.Logger, deleter EntryDeleter, service Recalculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.entries.DeleteEntryOperation"

		idStr := chi.URLParam(r, "id")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			http.Error(w, "Invalid ID", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		entry, err := deleter.GetEntry(ctx, id)
		if err != nil {
			if errors.Is(err, mysql.ErrEntryNotFound) {
				http.Error(w, "Запись не найдена", http.StatusNotFound)
				return
			}
			log.Error("Ошибка чтения записи", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
			return
		}

		if err := deleter.DeleteEntry(ctx, id); err != nil {
			log.Error("Ошибка удаления записи", slog.String("op", op), slog.String("error", err.Error()))
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
			Deleted: id,
			Entries: entries,
			Issues:  issues,
		})
	}
}
