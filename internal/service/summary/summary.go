package summary

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ChaikAndrew/ShiftScheduler-sub000/internal/storage"
)

type SummaryStorage interface {
	GetEntriesByMonth(ctx context.Context, year int, month time.Month) (storage.MonthEntries, error)
	GetOperators(ctx context.Context) ([]storage.Operator, error)
}

type Service struct {
	storage SummaryStorage
}

func NewService(storage SummaryStorage) *Service {
	return &Service{storage: storage}
}

// Filter — необязательные срезы по месяцу; пустая строка = без фильтра.
type Filter struct {
	Shift    string
	Machine  string
	Operator string
	Task     string
	Product  string
}

type Totals struct {
	Entries     int `json:"entries"`
	Quantity    int `json:"quantity"`
	WorkingTime int `json:"working_time"`
	Downtime    int `json:"downtime"`
}

type Report struct {
	Total      Totals            `json:"total"`
	ByTask     map[string]Totals `json:"by_task"`
	ByProduct  map[string]Totals `json:"by_product"`
	ByOperator map[string]Totals `json:"by_operator"`
	ByMachine  map[string]Totals `json:"by_machine"`
	ByDay      map[string]Totals `json:"by_day"` // ключ — display date, 2006-01-02
}

// MonthSummary собирает сводку за месяц: записи и справочник операторов
// тянутся из базы параллельно, свёртка чисто в памяти.
func (s *Service) MonthSummary(ctx context.Context, year int, month time.Month, filter Filter) (Report, error) {
	const op = "service.summary.MonthSummary"

	var (
		entries   storage.MonthEntries
		operators []storage.Operator
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = s.storage.GetEntriesByMonth(gCtx, year, month)
		if err != nil {
			return fmt.Errorf("entries: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		operators, err = s.storage.GetOperators(gCtx)
		if err != nil {
			return fmt.Errorf("operators: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Report{}, fmt.Errorf("%s: %w", op, err)
	}

	report := Aggregate(Flatten(entries), filter)

	// операторы без записей тоже видны в сводке, нулевой строкой
	for _, o := range operators {
		if filter.Shift != "" && o.Shift != filter.Shift {
			continue
		}
		if filter.Operator != "" && o.Name != filter.Operator {
			continue
		}
		if _, ok := report.ByOperator[o.Name]; !ok {
			report.ByOperator[o.Name] = Totals{}
		}
	}

	return report, nil
}

// Flatten разворачивает контракт хранилища (смена → станок → записи) в
// плоский список.
func Flatten(m storage.MonthEntries) []storage.WorkEntry {
	var out []storage.WorkEntry
	for _, machines := range m {
		for _, entries := range machines {
			out = append(out, entries...)
		}
	}
	return out
}

// Aggregate — чистая свёртка уже пересчитанных записей. Темпоральной логики
// здесь нет: DisplayDate, WorkingTime и Downtime обязаны быть заполнены
// движком до агрегации.
func Aggregate(entries []storage.WorkEntry, filter Filter) Report {
	report := Report{
		ByTask:     make(map[string]Totals),
		ByProduct:  make(map[string]Totals),
		ByOperator: make(map[string]Totals),
		ByMachine:  make(map[string]Totals),
		ByDay:      make(map[string]Totals),
	}

	for _, e := range entries {
		if !matches(e, filter) {
			continue
		}

		add(&report.Total, e)
		addTo(report.ByTask, e.Task, e)
		addTo(report.ByProduct, e.Product, e)
		addTo(report.ByOperator, e.Operator, e)
		addTo(report.ByMachine, e.Machine, e)
		addTo(report.ByDay, e.DisplayDate.Format("2006-01-02"), e)
	}

	return report
}

func matches(e storage.WorkEntry, f Filter) bool {
	if f.Shift != "" && e.Shift != f.Shift {
		return false
	}
	if f.Machine != "" && e.Machine != f.Machine {
		return false
	}
	if f.Operator != "" && e.Operator != f.Operator {
		return false
	}
	if f.Task != "" && e.Task != f.Task {
		return false
	}
	if f.Product != "" && e.Product != f.Product {
		return false
	}
	return true
}

func add(t *Totals, e storage.WorkEntry) {
	t.Entries++
	t.Quantity += e.Quantity
	t.WorkingTime += e.WorkingTime
	t.Downtime += e.Downtime
}

func addTo(m map[string]Totals, key string, e storage.WorkEntry) {
	t := m[key]
	add(&t, e)
	m[key] = t
}
