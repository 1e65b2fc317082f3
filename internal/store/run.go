package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type runRepo struct {
	db  *sql.DB
	seq sequence
}

func (r *runRepo) Save(ctx context.Context, run *Run) error {
	if run.Sequence == 0 {
		seqNum, err := r.seq.next(ctx)
		if err != nil {
			return err
		}
		run.Sequence = seqNum
	}
	if run.Timestamp.IsZero() {
		run.Timestamp = time.Now()
	}
	data := run.Data
	if len(data) == 0 {
		data = []byte("{}")
	}

	res, err := r.db.ExecContext(ctx, `INSERT INTO grading_runs
		(run_id, sequence, created_at, theme, total, offline, data)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Sequence, run.Timestamp.UnixMilli(), run.Theme, run.Total,
		run.Offline, string(data),
	)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		run.ID = int(id)
	}
	return nil
}

const runColumns = `id, run_id, sequence, created_at, theme, total, offline, data`

func (r *runRepo) Recent(ctx context.Context, limit int) ([]Run, error) {
	q := "SELECT " + runColumns + " FROM grading_runs ORDER BY sequence DESC"
	var args []any
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *run)
	}
	return out, rows.Err()
}

func (r *runRepo) Get(ctx context.Context, runID string) (*Run, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+runColumns+" FROM grading_runs WHERE run_id = ?", runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return run, err
}

func (r *runRepo) Prune(ctx context.Context, keep int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM grading_runs WHERE sequence NOT IN
		(SELECT sequence FROM grading_runs ORDER BY sequence DESC LIMIT ?)`, keep)
	if err != nil {
		return fmt.Errorf("prune runs: %w", err)
	}
	return nil
}

func scanRun(s scanner) (*Run, error) {
	var (
		run     Run
		created int64
		data    string
	)
	err := s.Scan(&run.ID, &run.RunID, &run.Sequence, &created, &run.Theme,
		&run.Total, &run.Offline, &data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan run: %w", err)
	}
	run.Timestamp = time.UnixMilli(created)
	run.Data = []byte(data)
	return &run, nil
}
