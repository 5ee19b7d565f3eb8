package recalc

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ChaikAndrew/ShiftScheduler-sub000/internal/shiftcal"
	"github.com/ChaikAndrew/ShiftScheduler-sub000/internal/storage"
)

// Issue — проблема качества данных в одной записи (битое время, неизвестная
// смена). Запись исключается из пересчёта простоев, остальной бакет
// пересчитывается нормально.
type Issue struct {
	EntryID int64  `json:"entry_id"`
	Reason  string `json:"reason"`
}

// Recalculate пересчитывает DisplayDate, WorkingTime и Downtime для всех
// записей одного станка в рамках одной смены. Вход не мутируется,
// возвращается новый срез в том же порядке.
//
// Простой первой записи дня меряется от номинального старта смены, каждой
// следующей — от конца предыдущей в хронологическом порядке. Порядок входа
// значения не имеет: движок сортирует сам.
func Recalculate(entries []storage.WorkEntry) ([]storage.WorkEntry, []Issue) {
	if len(entries) == 0 {
		return []storage.WorkEntry{}, nil
	}

	out := make([]storage.WorkEntry, len(entries))
	copy(out, entries)

	var issues []Issue

	// группировка по display date; индексы, чтобы не плодить копии
	groups := make(map[time.Time][]int)

	for i := range out {
		e := &out[i]

		shift, err := shiftcal.Parse(e.Shift)
		if err != nil {
			issues = append(issues, Issue{EntryID: e.ID, Reason: err.Error()})
			continue
		}
		if e.StartTime.IsZero() || e.EndTime.IsZero() {
			issues = append(issues, Issue{EntryID: e.ID, Reason: "отсутствует время начала или конца"})
			continue
		}
		if e.EndTime.Before(e.StartTime) {
			issues = append(issues, Issue{
				EntryID: e.ID,
				Reason:  fmt.Sprintf("конец %s раньше начала %s", e.EndTime.Format(time.RFC3339), e.StartTime.Format(time.RFC3339)),
			})
			continue
		}

		// display date выводится заново из сырых данных: в базе лежит только
		// смена и инстанты, после правок пересбор обязан давать тот же день
		e.DisplayDate = shiftcal.ResolveDisplayDate(shift, e.StartTime)
		e.WorkingTime = gapMinutes(e.StartTime, e.EndTime)

		groups[e.DisplayDate] = append(groups[e.DisplayDate], i)
	}

	for displayDate, idx := range groups {
		sort.SliceStable(idx, func(a, b int) bool {
			return out[idx[a]].StartTime.Before(out[idx[b]].StartTime)
		})

		for pos, i := range idx {
			e := &out[i]
			if pos == 0 {
				nominal := shiftcal.NominalStartOn(shiftcal.Shift(e.Shift), displayDate)
				e.Downtime = gapMinutes(nominal, e.StartTime)
			} else {
				prev := out[idx[pos-1]]
				e.Downtime = gapMinutes(prev.EndTime, e.StartTime)
			}
		}
	}

	return out, issues
}

// gapMinutes возвращает max(0, to−from) в целых минутах. Равенство даёт
// строгий ноль без вычитания инстантов.
func gapMinutes(from, to time.Time) int {
	if !to.After(from) {
		return 0
	}
	return int(to.Sub(from) / time.Minute)
}

// EntryStorage — часть хранилища, нужная движку: выборка бакета вокруг
// display date и сохранение пересчитанных полей.
type EntryStorage interface {
	GetEntriesByRange(ctx context.Context, shift, machine string, from, to time.Time) ([]storage.WorkEntry, error)
	UpdateComputed(ctx context.Context, entries []storage.WorkEntry) error
}

type Service struct {
	storage EntryStorage
}

func NewService(storage EntryStorage) *Service {
	return &Service{storage: storage}
}

// RecalculateBucket перечитывает из базы полный бакет (станок + смена)
// вокруг display date, прогоняет движок и сохраняет пересчитанные значения
// записей этого display date. Вызывается после каждого create/update/delete:
// одна вставка сдвигает простои всех записей ниже по дню, поэтому частичных
// пересчётов нет.
func (s *Service) RecalculateBucket(ctx context.Context, shift, machine string, displayDate time.Time) ([]storage.WorkEntry, []Issue, error) {
	const op = "service.recalc.RecalculateBucket"

	day := shiftcal.DateOf(displayDate)

	// хвост ночной смены лежит на следующей календарной дате, до конца
	// окна третьей смены
	from := day
	_, to := shiftcal.WindowOn(shiftcal.ShiftThird, day)

	bucket, err := s.storage.GetEntriesByRange(ctx, shift, machine, from, to)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: ошибка выборки бакета: %w", op, err)
	}

	recalced, issues := Recalculate(bucket)

	// в выборку мог попасть хвост предыдущего display date (ночные записи
	// до 06:00) — его группа неполная, сохраняем только свой день
	var affected []storage.WorkEntry
	for _, e := range recalced {
		if e.DisplayDate.Equal(day) {
			affected = append(affected, e)
		}
	}

	if len(affected) > 0 {
		if err := s.storage.UpdateComputed(ctx, affected); err != nil {
			return nil, nil, fmt.Errorf("%s: ошибка сохранения пересчёта: %w", op, err)
		}
	}

	return affected, issues, nil
}
