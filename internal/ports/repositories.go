package ports

import (
    "context"

    "github.com/OmriYahav/Netools/internal/domain"
)

// RunRepository stores the audit trail of diagnostic invocations.
type RunRepository interface {
    RecordRun(ctx context.Context, run domain.Run) error
    ListRuns(ctx context.Context, target string, limit int) ([]domain.Run, error)
}
