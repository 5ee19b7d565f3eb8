package recalc

import (
	"fmt"
	"time"

	"github.com/ChaikAndrew/ShiftScheduler-sub000/internal/shiftcal"
	"github.com/ChaikAndrew/ShiftScheduler-sub000/internal/storage"
)

// ValidationError — запись нарушает окно своей смены или пришла с кривой
// формой. Такая запись не сохраняется, хендлер отдаёт 400.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Normalize собирает абсолютные инстанты старта и конца из сырой формы.
// Вся работа с полуночью здесь: утреннее клоковое время старта на третьей
// смене значит, что оператор логирует хвост смены, начавшейся накануне
// вечером — старт сдвигается на сутки вперёд; клоковое время конца раньше
// старта значит, что сам интервал пересёк полночь — конец сдвигается на
// сутки. Display date выводится в shiftcal.
func Normalize(req storage.SaveEntry) (storage.WorkEntry, error) {
	shift, err := shiftcal.Parse(req.Shift)
	if err != nil {
		return storage.WorkEntry{}, &ValidationError{Reason: err.Error()}
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		return storage.WorkEntry{}, &ValidationError{Reason: fmt.Sprintf("некорректная дата %q", req.Date)}
	}

	startH, startM, err := parseClock(req.StartTime)
	if err != nil {
		return storage.WorkEntry{}, &ValidationError{Reason: err.Error()}
	}
	endH, endM, err := parseClock(req.EndTime)
	if err != nil {
		return storage.WorkEntry{}, &ValidationError{Reason: err.Error()}
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), startH, startM, 0, 0, time.UTC)
	if shiftcal.IsNightTail(shift, startH) {
		// хвост ночной смены: оператор выбрал дату утра, сдвигаем на сутки
		start = start.AddDate(0, 0, 1)
	}

	// конец собирается от исходной даты, до сдвига старта
	end := time.Date(date.Year(), date.Month(), date.Day(), endH, endM, 0, 0, time.UTC)
	if end.Before(start) {
		end = end.AddDate(0, 0, 1)
	}

	entry := storage.WorkEntry{
		Shift:       string(shift),
		Machine:     req.Machine,
		Operator:    req.Operator,
		Date:        date,
		DisplayDate: shiftcal.ResolveDisplayDate(shift, start),
		StartTime:   start,
		EndTime:     end,
		Task:        req.Task,
		Product:     req.Product,
		Quantity:    req.Quantity,
		WorkingTime: gapMinutes(start, end),
	}
	if req.Reason != "" {
		entry.Reason = &req.Reason
	}
	if req.Comment != "" {
		entry.Comment = &req.Comment
	}

	return entry, nil
}

// ValidateWindow отклоняет запись, чьи инстанты вылезают за 8-часовое окно
// заявленной смены. Проверка отделена от Normalize: правило «всегда сдвигай
// конец» иначе молча глотало бы опечатку конец-раньше-начала на дневной
// смене.
func ValidateWindow(entry storage.WorkEntry) error {
	shift, err := shiftcal.Parse(entry.Shift)
	if err != nil {
		return &ValidationError{Reason: err.Error()}
	}

	winStart, winEnd := shiftcal.WindowOn(shift, entry.DisplayDate)
	if entry.StartTime.Before(winStart) || entry.EndTime.After(winEnd) {
		return &ValidationError{Reason: fmt.Sprintf(
			"интервал %s–%s вне окна смены %q (%s–%s)",
			entry.StartTime.Format("15:04"), entry.EndTime.Format("15:04"),
			shift, winStart.Format("15:04"), winEnd.Format("15:04"),
		)}
	}

	if entry.Quantity < 0 {
		return &ValidationError{Reason: "количество не может быть отрицательным"}
	}

	return nil
}

func parseClock(s string) (int, int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, 0, fmt.Errorf("некорректное время %q, ожидается HH:MM", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("некорректное время %q, ожидается HH:MM", s)
	}
	return h, m, nil
}
