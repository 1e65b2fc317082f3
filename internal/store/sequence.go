package store

import (
	"context"
	"database/sql"
	"fmt"
)

// sequence is one counter shared by the request log and the run history,
// so entries of both tables read in a single order. Each increment is a
// single UPDATE ... RETURNING statement.
type sequence struct {
	db *sql.DB
}

func (s sequence) next(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx,
		`UPDATE sequence_counter SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return n, nil
}
