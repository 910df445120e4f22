package postgres

import (
    "context"

    "github.com/jackc/pgx/v5"

    "github.com/OmriYahav/Netools/internal/domain"
)

// RunRepository
func (db *DB) RecordRun(ctx context.Context, run domain.Run) error {
    _, err := db.Pool.Exec(ctx, `
        INSERT INTO diagnostic_runs (id, operation, target, port, outcome, error_kind, duration_ms, created_at)
        VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8)
    `, run.ID, run.Operation, run.Target, run.Port, run.Outcome, run.ErrorKind, run.DurationMs, run.CreatedAt)
    return err
}

// ListRuns returns the newest runs first; an empty target matches all.
func (db *DB) ListRuns(ctx context.Context, target string, limit int) ([]domain.Run, error) {
    rows, err := db.Pool.Query(ctx, `
        SELECT id::text, operation, target, port, outcome, error_kind, duration_ms, created_at
        FROM diagnostic_runs
        WHERE $1 = '' OR target = $1
        ORDER BY created_at DESC
        LIMIT $2
    `, target, limit)
    if err != nil {
        return nil, err
    }
    runs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Run, error) {
        var r domain.Run
        err := row.Scan(&r.ID, &r.Operation, &r.Target, &r.Port, &r.Outcome, &r.ErrorKind, &r.DurationMs, &r.CreatedAt)
        return r, err
    })
    if err != nil {
        return nil, err
    }
    if runs == nil {
        runs = []domain.Run{}
    }
    return runs, nil
}
