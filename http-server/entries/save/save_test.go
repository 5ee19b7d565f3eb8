package save

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ChaikAndrew/ShiftScheduler-sub000/internal/service/recalc"
	"github.com/ChaikAndrew/ShiftScheduler-sub000/internal/storage"
)

type MockEntrySaver struct {
	mock.Mock
}

func (m *MockEntrySaver) SaveEntry(ctx context.Context, e storage.WorkEntry) (int64, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(int64), args.Error(1)
}

type MockRecalculator struct {
	mock.Mock
}

func (m *MockRecalculator) RecalculateBucket(ctx context.Context, shift, machine string, displayDate time.Time) ([]storage.WorkEntry, []recalc.Issue, error) {
	args := m.Called(ctx, shift, machine, displayDate)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]storage.WorkEntry), nil, args.Error(2)
}

func body(t *testing.T, req storage.SaveEntry) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(req)
	assert.NoError(t, err)
	return bytes.NewBuffer(b)
}

func validForm() storage.SaveEntry {
	return storage.SaveEntry{
		Shift:     "third",
		Machine:   "DTG-1",
		Operator:  "Kowalski",
		Date:      "2024-05-10",
		StartTime: "22:00",
		EndTime:   "23:00",
		Task:      "pod",
		Product:   "T-shirt",
		Quantity:  25,
	}
}

func TestSaveEntryOperation_Success(t *testing.T) {
	mockSaver := new(MockEntrySaver)
	mockRecalc := new(MockRecalculator)

	displayDate := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	mockSaver.On("SaveEntry", mock.Anything, mock.MatchedBy(func(e storage.WorkEntry) bool {
		return e.Shift == "third" && e.DisplayDate.Equal(displayDate) && e.WorkingTime == 60
	})).Return(int64(7), nil)

	mockRecalc.On("RecalculateBucket", mock.Anything, "third", "DTG-1", displayDate).
		Return([]storage.WorkEntry{{ID: 7, Downtime: 0}}, nil, nil)

	handler := SaveEntryOperation(slog.Default(), mockSaver, mockRecalc)

	req := httptest.NewRequest(http.MethodPost, "/api/entries", body(t, validForm()))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp Resp
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Len(t, resp.Entries, 1)

	mockSaver.AssertExpectations(t)
	mockRecalc.AssertExpectations(t)
}

func TestSaveEntryOperation_WindowViolation(t *testing.T) {
	mockSaver := new(MockEntrySaver)
	mockRecalc := new(MockRecalculator)

	form := validForm()
	form.Shift = "first"
	form.StartTime = "15:00" // вторая смена, а заявлена первая
	form.EndTime = "16:00"

	handler := SaveEntryOperation(slog.Default(), mockSaver, mockRecalc)

	req := httptest.NewRequest(http.MethodPost, "/api/entries", body(t, form))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// запись не должна была сохраниться
	mockSaver.AssertNotCalled(t, "SaveEntry")
	mockRecalc.AssertNotCalled(t, "RecalculateBucket")
}

func TestSaveEntryOperation_UnknownMachine(t *testing.T) {
	mockSaver := new(MockEntrySaver)
	mockRecalc := new(MockRecalculator)

	form := validForm()
	form.Machine = "DTG-99"

	handler := SaveEntryOperation(slog.Default(), mockSaver, mockRecalc)

	req := httptest.NewRequest(http.MethodPost, "/api/entries", body(t, form))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "неизвестный станок")
	mockSaver.AssertNotCalled(t, "SaveEntry")
}

func TestSaveEntryOperation_BadJSON(t *testing.T) {
	handler := SaveEntryOperation(slog.Default(), new(MockEntrySaver), new(MockRecalculator))

	req := httptest.NewRequest(http.MethodPost, "/api/entries", strings.NewReader("{не json"))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSaveEntryOperation_StorageError(t *testing.T) {
	mockSaver := new(MockEntrySaver)
	mockRecalc := new(MockRecalculator)

	mockSaver.On("SaveEntry", mock.Anything, mock.Anything).
		Return(int64(0), errors.New("база недоступна"))

	handler := SaveEntryOperation(slog.Default(), mockSaver, mockRecalc)

	req := httptest.NewRequest(http.MethodPost, "/api/entries", body(t, validForm()))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	mockRecalc.AssertNotCalled(t, "RecalculateBucket")
}
