package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/ChaikAndrew/ShiftScheduler-sub000/internal/storage"
)

type OperatorReader interface {
	GetOperators(ctx context.Context) ([]storage.Operator, error)
}

func GetOperators(log *slog.Logger, reader OperatorReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.operators.GetOperators"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		operators, err := reader.GetOperators(ctx)
		if err != nil {
			log.Error("Ошибка получения операторов", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, operators)
	}
}
