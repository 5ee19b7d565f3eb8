package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ChaikAndrew/ShiftScheduler-sub000/internal/storage"
)

var ErrEntryNotFound = errors.New("запись не найдена")

const entryColumns = `id, shift, machine, operator, date, display_date, start_time, end_time,
		task, product, quantity, working_time, downtime, reason, comment`

func (s *Storage) SaveEntry(ctx context.Context, e storage.WorkEntry) (int64, error) {
	const op = "storage.mysql.SaveEntry"

	stmt := `
		INSERT INTO shift_entries
			(shift, machine, operator, date, display_date, start_time, end_time,
			 task, product, quantity, working_time, downtime, reason, comment)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := s.db.ExecContext(ctx, stmt,
		e.Shift, e.Machine, e.Operator, e.Date, e.DisplayDate, e.StartTime, e.EndTime,
		e.Task, e.Product, e.Quantity, e.WorkingTime, e.Downtime, e.Reason, e.Comment,
	)
	if err != nil {
		return 0, fmt.Errorf("%s: ошибка вставки записи: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) UpdateEntry(ctx context.Context, e storage.WorkEntry) error {
	const op = "storage.mysql.UpdateEntry"

	stmt := `
		UPDATE shift_entries
		SET shift = ?, machine = ?, operator = ?, date = ?, display_date = ?,
			start_time = ?, end_time = ?, task = ?, product = ?, quantity = ?,
			working_time = ?, downtime = ?, reason = ?, comment = ?
		WHERE id = ?
	`

	res, err := s.db.ExecContext(ctx, stmt,
		e.Shift, e.Machine, e.Operator, e.Date, e.DisplayDate, e.StartTime, e.EndTime,
		e.Task, e.Product, e.Quantity, e.WorkingTime, e.Downtime, e.Reason, e.Comment,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("%s: ошибка обновления записи: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: id=%d: %w", op, e.ID, ErrEntryNotFound)
	}

	return nil
}

func (s *Storage) DeleteEntry(ctx context.Context, id int64) error {
	const op = "storage.mysql.DeleteEntry"

	res, err := s.db.ExecContext(ctx, `DELETE FROM shift_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: ошибка удаления записи: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: id=%d: %w", op, id, ErrEntryNotFound)
	}

	return nil
}

func (s *Storage) GetEntry(ctx context.Context, id int64) (*storage.WorkEntry, error) {
	const op = "storage.mysql.GetEntry"

	stmt := `SELECT ` + entryColumns + ` FROM shift_entries WHERE id = ?`

	var e storage.WorkEntry
	err := s.db.QueryRowContext(ctx, stmt, id).Scan(
		&e.ID, &e.Shift, &e.Machine, &e.Operator, &e.Date, &e.DisplayDate,
		&e.StartTime, &e.EndTime, &e.Task, &e.Product, &e.Quantity,
		&e.WorkingTime, &e.Downtime, &e.Reason, &e.Comment,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: id=%d: %w", op, id, ErrEntryNotFound)
		}
		return nil, fmt.Errorf("%s: ошибка запроса: %w", op, err)
	}

	return &e, nil
}

// GetEntriesByRange — бакет для пересчёта: все записи одного станка в рамках
// одной смены со стартом в [from, to). Порядок не гарантируется, движок
// сортирует сам.
func (s *Storage) GetEntriesByRange(ctx context.Context, shift, machine string, from, to time.Time) ([]storage.WorkEntry, error) {
	const op = "storage.mysql.GetEntriesByRange"

	stmt := `
		SELECT ` + entryColumns + `
		FROM shift_entries
		WHERE shift = ? AND machine = ? AND start_time >= ? AND start_time < ?
	`

	rows, err := s.db.QueryContext(ctx, stmt, shift, machine, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка выполнения запроса: %w", op, err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return entries, nil
}

// GetEntriesByMonth возвращает месяц записей в виде смена → станок → записи
// (группировка по display_date месяца).
func (s *Storage) GetEntriesByMonth(ctx context.Context, year int, month time.Month) (storage.MonthEntries, error) {
	const op = "storage.mysql.GetEntriesByMonth"

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	stmt := `
		SELECT ` + entryColumns + `
		FROM shift_entries
		WHERE display_date >= ? AND display_date < ?
	`

	rows, err := s.db.QueryContext(ctx, stmt, first, next)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка выполнения запроса: %w", op, err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make(storage.MonthEntries)
	for _, e := range entries {
		if result[e.Shift] == nil {
			result[e.Shift] = make(map[string][]storage.WorkEntry)
		}
		result[e.Shift][e.Machine] = append(result[e.Shift][e.Machine], e)
	}

	return result, nil
}

// UpdateComputed пишет пересчитанные движком поля одним батчем в транзакции:
// либо весь бакет, либо ничего.
func (s *Storage) UpdateComputed(ctx context.Context, entries []storage.WorkEntry) error {
	const op = "storage.mysql.UpdateComputed"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: ошибка открытия транзакции: %w", op, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		UPDATE shift_entries
		SET display_date = ?, working_time = ?, downtime = ?
		WHERE id = ?
	`)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.DisplayDate, e.WorkingTime, e.Downtime, e.ID); err != nil {
			return fmt.Errorf("%s: ошибка обновления id=%d: %w", op, e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: ошибка коммита: %w", op, err)
	}

	return nil
}

func scanEntries(rows *sql.Rows) ([]storage.WorkEntry, error) {
	var entries []storage.WorkEntry

	for rows.Next() {
		var e storage.WorkEntry
		err := rows.Scan(
			&e.ID, &e.Shift, &e.Machine, &e.Operator, &e.Date, &e.DisplayDate,
			&e.StartTime, &e.EndTime, &e.Task, &e.Product, &e.Quantity,
			&e.WorkingTime, &e.Downtime, &e.Reason, &e.Comment,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации: %w", err)
	}

	return entries, nil
}
