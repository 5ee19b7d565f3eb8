package mysql

import (
	"context"
	"fmt"

	"github.com/ChaikAndrew/ShiftScheduler-sub000/internal/storage"
)

func (s *Storage) GetOperators(ctx context.Context) ([]storage.Operator, error) {
	const op = "storage.mysql.GetOperators"

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, shift FROM operators ORDER BY shift, name`)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка выполнения запроса: %w", op, err)
	}
	defer rows.Close()

	var operators []storage.Operator
	for rows.Next() {
		var o storage.Operator
		if err := rows.Scan(&o.ID, &o.Name, &o.Shift); err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования оператора: %w", op, err)
		}
		operators = append(operators, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка при итерации: %w", op, err)
	}

	return operators, nil
}

func (s *Storage) SaveOperator(ctx context.Context, o storage.SaveOperator) (int64, error) {
	const op = "storage.mysql.SaveOperator"

	res, err := s.db.ExecContext(ctx, `INSERT INTO operators (name, shift) VALUES (?, ?)`, o.Name, o.Shift)
	if err != nil {
		return 0, fmt.Errorf("%s: ошибка вставки оператора: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) UpdateOperator(ctx context.Context, o storage.Operator) error {
	const op = "storage.mysql.UpdateOperator"

	_, err := s.db.ExecContext(ctx, `UPDATE operators SET name = ?, shift = ? WHERE id = ?`, o.Name, o.Shift, o.ID)
	if err != nil {
		return fmt.Errorf("%s: ошибка обновления оператора: %w", op, err)
	}

	return nil
}
