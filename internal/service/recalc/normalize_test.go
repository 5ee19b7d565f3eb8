package recalc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ChaikAndrew/ShiftScheduler-sub000/internal/storage"
)

func form(shift, date, start, end string) storage.SaveEntry {
	return storage.SaveEntry{
		Shift:     shift,
		Machine:   "DTG-1",
		Operator:  "Kowalski",
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Task:      "pod",
		Product:   "T-shirt",
		Quantity:  5,
	}
}

func TestNormalize_DayShift(t *testing.T) {
	entry, err := Normalize(form("first", "2024-05-10", "06:00", "09:30"))

	assert.NoError(t, err)
	assert.True(t, entry.StartTime.Equal(time.Date(2024, 5, 10, 6, 0, 0, 0, time.UTC)))
	assert.True(t, entry.EndTime.Equal(time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)))
	assert.True(t, entry.DisplayDate.Equal(day(2024, 5, 10)))
	assert.Equal(t, 210, entry.WorkingTime)
}

func TestNormalize_NightShiftEveningPart(t *testing.T) {
	entry, err := Normalize(form("third", "2024-05-10", "22:00", "23:00"))

	assert.NoError(t, err)
	assert.True(t, entry.StartTime.Equal(time.Date(2024, 5, 10, 22, 0, 0, 0, time.UTC)))
	assert.True(t, entry.DisplayDate.Equal(day(2024, 5, 10)))
}

// Хвост ночной смены: дата 2024-05-10 и клоковое время 02:00 дают инстант
// 2024-05-11 02:00, а display date — 2024-05-10, день старта смены.
func TestNormalize_NightShiftTail(t *testing.T) {
	entry, err := Normalize(form("third", "2024-05-10", "02:00", "03:00"))

	assert.NoError(t, err)
	assert.True(t, entry.StartTime.Equal(time.Date(2024, 5, 11, 2, 0, 0, 0, time.UTC)))
	assert.True(t, entry.EndTime.Equal(time.Date(2024, 5, 11, 3, 0, 0, 0, time.UTC)))
	assert.True(t, entry.DisplayDate.Equal(day(2024, 5, 10)))
}

func TestNormalize_MidnightStraddle(t *testing.T) {
	entry, err := Normalize(form("third", "2024-05-10", "23:30", "00:30"))

	assert.NoError(t, err)
	assert.True(t, entry.StartTime.Equal(time.Date(2024, 5, 10, 23, 30, 0, 0, time.UTC)))
	assert.True(t, entry.EndTime.Equal(time.Date(2024, 5, 11, 0, 30, 0, 0, time.UTC)))
	assert.True(t, entry.DisplayDate.Equal(day(2024, 5, 10)))
	assert.Equal(t, 60, entry.WorkingTime)
}

func TestNormalize_BadInput(t *testing.T) {
	tests := []struct {
		name string
		req  storage.SaveEntry
	}{
		{"unknown shift", form("fourth", "2024-05-10", "06:00", "07:00")},
		{"bad date", form("first", "10.05.2024", "06:00", "07:00")},
		{"bad start clock", form("first", "2024-05-10", "6am", "07:00")},
		{"out of range clock", form("first", "2024-05-10", "25:00", "07:00")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.req)
			assert.Error(t, err)

			var vErr *ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}
}

func TestValidateWindow(t *testing.T) {
	ok, err := Normalize(form("first", "2024-05-10", "06:00", "14:00"))
	assert.NoError(t, err)
	assert.NoError(t, ValidateWindow(ok))

	// опечатка на дневной смене: конец "раньше" начала уехал на завтра и
	// вылетел из окна — отклоняем, а не молча сдвигаем
	typo, err := Normalize(form("first", "2024-05-10", "09:00", "08:00"))
	assert.NoError(t, err)
	assert.Error(t, ValidateWindow(typo))

	// легитимный ночной переход через полночь окно не нарушает
	night, err := Normalize(form("third", "2024-05-10", "23:30", "00:30"))
	assert.NoError(t, err)
	assert.NoError(t, ValidateWindow(night))

	late, err := Normalize(form("second", "2024-05-10", "13:00", "15:00"))
	assert.NoError(t, err)
	assert.Error(t, ValidateWindow(late))
}

func TestValidateWindow_NegativeQuantity(t *testing.T) {
	entry, err := Normalize(form("first", "2024-05-10", "06:00", "07:00"))
	assert.NoError(t, err)

	entry.Quantity = -1
	assert.Error(t, ValidateWindow(entry))
}
