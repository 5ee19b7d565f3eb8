package main

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	deleteentry "github.com/ChaikAndrew/ShiftScheduler-sub000/http-server/entries/delete"
	getentries "github.com/ChaikAndrew/ShiftScheduler-sub000/http-server/entries/get"
	saveentry "github.com/ChaikAndrew/ShiftScheduler-sub000/http-server/entries/save"
	upentry "github.com/ChaikAndrew/ShiftScheduler-sub000/http-server/entries/update"
	generate_excel "github.com/ChaikAndrew/ShiftScheduler-sub000/http-server/generate-report/generate-excel"
	getoperators "github.com/ChaikAndrew/ShiftScheduler-sub000/http-server/operators/get"
	saveoperators "github.com/ChaikAndrew/ShiftScheduler-sub000/http-server/operators/save"
	getsummary "github.com/ChaikAndrew/ShiftScheduler-sub000/http-server/summary/get"
	"github.com/ChaikAndrew/ShiftScheduler-sub000/internal/config"
	"github.com/ChaikAndrew/ShiftScheduler-sub000/internal/middleware/auth"
	"github.com/ChaikAndrew/ShiftScheduler-sub000/internal/service/recalc"
	"github.com/ChaikAndrew/ShiftScheduler-sub000/internal/service/report"
	"github.com/ChaikAndrew/ShiftScheduler-sub000/internal/service/summary"
	"github.com/ChaikAndrew/ShiftScheduler-sub000/internal/storage/mysql"
)

func routes(cfg config.Config, log *slog.Logger, storage *mysql.Storage,
	recalcService *recalc.Service, summaryService *summary.Service, excelService *report.ExcelService) *chi.Mux {

	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081", "http://localhost:5173"}, // фронтенд
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// записи смен: каждое изменение пересчитывает бакет станка
	router.Post("/api/entries", saveentry.SaveEntryOperation(log, storage, recalcService))
	router.Put("/api/entries/{id}", upentry.UpdateEntryOperation(log, storage, recalcService))
	router.Delete("/api/entries/{id}", deleteentry.DeleteEntryOperation(log, storage, recalcService))
	router.Get("/api/entries/{id}", getentries.GetEntry(log, storage))

	// месяц в группировке смена → станок
	router.Get("/api/entries", getentries.GetEntriesByMonth(log, storage))

	// сводка за месяц
	router.Get("/api/summary", getsummary.GetMonthSummary(log, summaryService))

	// справочник операторов
	router.Get("/api/operators", getoperators.GetOperators(log, storage))

	// генерация excel
	router.Get("/api/report/excel", generate_excel.GenerateReportExcel(log, excelService))

	// adminPanel
	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Post("/operators", saveoperators.SaveOperatorAdmin(log, storage))
	adminRouter.Put("/operators/update", saveoperators.UpdateOperatorAdmin(log, storage))

	router.Mount("/api/admin", adminRouter)

	return router
}
