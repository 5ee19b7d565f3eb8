package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/ChaikAndrew/ShiftScheduler-sub000/internal/shiftcal"
	"github.com/ChaikAndrew/ShiftScheduler-sub000/internal/storage"
)

type OperatorWriter interface {
	SaveOperator(ctx context.Context, o storage.SaveOperator) (int64, error)
	UpdateOperator(ctx context.Context, o storage.Operator) error
}

func SaveOperatorAdmin(log *slog.Logger, writer OperatorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.operators.SaveOperatorAdmin"

		var req storage.SaveOperator
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Некорректный JSON", http.StatusBadRequest)
			return
		}

		if req.Name == "" {
			http.Error(w, "Имя оператора обязательно", http.StatusBadRequest)
			return
		}
		if _, err := shiftcal.Parse(req.Shift); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id, err := writer.SaveOperator(ctx, req)
		if err != nil {
			log.Error("Ошибка сохранения оператора", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]interface{}{
			"status": "success",
			"id":     id,
		})
	}
}

func UpdateOperatorAdmin(log *slog.Logger, writer OperatorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.operators.UpdateOperatorAdmin"

		var req storage.Operator
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Некорректный JSON", http.StatusBadRequest)
			return
		}

		if req.ID == 0 {
			http.Error(w, "ID оператора обязателен", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := writer.UpdateOperator(ctx, req); err != nil {
			log.Error("Ошибка обновления оператора", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]interface{}{
			"status": "success",
			"id":     req.ID,
		})
	}
}
