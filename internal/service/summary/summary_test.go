package summary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ChaikAndrew/ShiftScheduler-sub000/internal/storage"
)

func entry(operator, machine, task, product string, qty, working, downtime int) storage.WorkEntry {
	return storage.WorkEntry{
		Shift:       "first",
		Machine:     machine,
		Operator:    operator,
		DisplayDate: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		Task:        task,
		Product:     product,
		Quantity:    qty,
		WorkingTime: working,
		Downtime:    downtime,
	}
}

func TestAggregate(t *testing.T) {
	entries := []storage.WorkEntry{
		entry("Kowalski", "DTG-1", "pod", "T-shirt", 100, 120, 10),
		entry("Kowalski", "DTG-1", "pod", "Hoodie", 50, 60, 0),
		entry("Nowak", "DTG-2", "test", "T-shirt", 5, 30, 45),
	}

	report := Aggregate(entries, Filter{})

	assert.Equal(t, Totals{Entries: 3, Quantity: 155, WorkingTime: 210, Downtime: 55}, report.Total)
	assert.Equal(t, Totals{Entries: 2, Quantity: 150, WorkingTime: 180, Downtime: 10}, report.ByTask["pod"])
	assert.Equal(t, Totals{Entries: 2, Quantity: 105, WorkingTime: 150, Downtime: 55}, report.ByProduct["T-shirt"])
	assert.Equal(t, Totals{Entries: 1, Quantity: 5, WorkingTime: 30, Downtime: 45}, report.ByOperator["Nowak"])
	assert.Equal(t, Totals{Entries: 3, Quantity: 155, WorkingTime: 210, Downtime: 55}, report.ByDay["2024-05-10"])
}

func TestAggregate_Filter(t *testing.T) {
	entries := []storage.WorkEntry{
		entry("Kowalski", "DTG-1", "pod", "T-shirt", 100, 120, 10),
		entry("Nowak", "DTG-2", "test", "T-shirt", 5, 30, 45),
	}

	report := Aggregate(entries, Filter{Machine: "DTG-2"})

	assert.Equal(t, 1, report.Total.Entries)
	assert.Equal(t, 5, report.Total.Quantity)
	assert.NotContains(t, report.ByOperator, "Kowalski")
}

type MockSummaryStorage struct {
	mock.Mock
}

func (m *MockSummaryStorage) GetEntriesByMonth(ctx context.Context, year int, month time.Month) (storage.MonthEntries, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(storage.MonthEntries), args.Error(1)
}

func (m *MockSummaryStorage) GetOperators(ctx context.Context) ([]storage.Operator, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.Operator), args.Error(1)
}

func TestMonthSummary(t *testing.T) {
	mockStorage := new(MockSummaryStorage)

	month := storage.MonthEntries{
		"first": {
			"DTG-1": {entry("Kowalski", "DTG-1", "pod", "T-shirt", 100, 120, 10)},
		},
	}
	operators := []storage.Operator{
		{ID: 1, Name: "Kowalski", Shift: "first"},
		{ID: 2, Name: "Nowak", Shift: "first"},
	}

	mockStorage.On("GetEntriesByMonth", mock.Anything, 2024, time.May).Return(month, nil)
	mockStorage.On("GetOperators", mock.Anything).Return(operators, nil)

	service := NewService(mockStorage)

	report, err := service.MonthSummary(context.Background(), 2024, time.May, Filter{})

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Total.Entries)

	// оператор без записей виден нулевой строкой
	assert.Equal(t, Totals{}, report.ByOperator["Nowak"])
	assert.Equal(t, 100, report.ByOperator["Kowalski"].Quantity)

	mockStorage.AssertExpectations(t)
}

func TestMonthSummary_StorageError(t *testing.T) {
	mockStorage := new(MockSummaryStorage)

	mockStorage.On("GetEntriesByMonth", mock.Anything, 2024, time.May).
		Return(nil, errors.New("база недоступна"))
	mockStorage.On("GetOperators", mock.Anything).
		Return([]storage.Operator{}, nil)

	service := NewService(mockStorage)

	_, err := service.MonthSummary(context.Background(), 2024, time.May, Filter{})
	assert.Error(t, err)
}
