package update

import (
	"context"
	"encoding/json"
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

type EntryUpdater interface {
	GetEntry(ctx context.Context, id int64) (*storage.WorkEntry, error)
	UpdateEntry(ctx context.Context, e storage.WorkEntry) error
}

type Recalculator interface {
	RecalculateBucket(ctx context.Context, shift, machine string, displayDate time.Time) ([]storage.WorkEntry, []recalc.Issue, error)
}

type Resp struct {
	Entries []storage.WorkEntry `json:"entries"`
	Issues  []recalc.Issue      `json:"issues,omitempty"`
}

// UpdateEntryOperation правит запись и пересчитывает затронутые бакеты.
// Если правка перенесла запись на другой станок, смену или display date,
// пересчитываются оба бакета — старый и новый.
func UpdateEntryOperation(log *slog.Logger, updater EntryUpdater, service Recalculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.entries.UpdateEntryOperation"

		idStr := chi.URLParam(r, "id")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			http.Error(w, "Invalid ID", http.StatusBadRequest)
			return
		}

		var req storage.SaveEntry
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Некорректный JSON", http.StatusBadRequest)
			return
		}

		entry, err := recalc.Normalize(req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := recalc.ValidateWindow(entry); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		entry.ID = id

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		old, err := updater.GetEntry(ctx, id)
		if err != nil {
			if errors.Is(err, mysql.ErrEntryNotFound) {
				http.Error(w, "Запись не найдена", http.StatusNotFound)
				return
			}
			log.Error("Ошибка чтения записи", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
			return
		}

		if err := updater.UpdateEntry(ctx, entry); err != nil {
			log.Error("Ошибка обновления записи", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
			return
		}

		entries, issues, err := service.RecalculateBucket(ctx, entry.Shift, entry.Machine, entry.DisplayDate)
		if err != nil {
			log.Error("Ошибка пересчёта бакета", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
			return
		}

		// запись уехала в другой бакет — старый тоже пересчитываем
		if old.Shift != entry.Shift || old.Machine != entry.Machine || !old.DisplayDate.Equal(entry.DisplayDate) {
			if _, _, err := service.RecalculateBucket(ctx, old.Shift, old.Machine, old.DisplayDate); err != nil {
				log.Error("Ошибка пересчёта старого бакета", slog.String("op", op), slog.String("error", err.Error()))
				http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
				return
			}
		}

		render.JSON(w, r, Resp{
			Entries: entries,
			Issues:  issues,
		})
	}
}
