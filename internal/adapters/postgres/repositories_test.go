package postgres

import (
    "context"
    "os"
    "testing"
    "time"

    "github.com/google/uuid"

    "github.com/OmriYahav/Netools/internal/domain"
)

// Runs against a real database when TEST_DATABASE_URL is set.
func testDB(t *testing.T) *DB {
    t.Helper()
    url := os.Getenv("TEST_DATABASE_URL")
    if url == "" {
        t.Skip("TEST_DATABASE_URL not set")
    }
    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    db, err := Connect(ctx, url)
    if err != nil { t.Fatalf("connect: %v", err) }
    t.Cleanup(db.Close)
    if err := db.Migrate(ctx); err != nil { t.Fatalf("migrate: %v", err) }
    return db
}

func TestRuns_RoundTrip(t *testing.T) {
    db := testDB(t)
    ctx := context.Background()
    target := "198.51.100." + time.Now().Format("150405")

    port := 443
    kind := string(domain.KindProbeRefused)
    older := domain.Run{ID: uuid.NewString(), Operation: "check-port", Target: target, Port: &port, Outcome: "refused", ErrorKind: &kind, DurationMs: 3, CreatedAt: time.Now().Add(-time.Minute).UTC()}
    newer := domain.Run{ID: uuid.NewString(), Operation: "ping", Target: target, Outcome: "reachable", DurationMs: 40, CreatedAt: time.Now().UTC()}
    for _, r := range []domain.Run{older, newer} {
        if err := db.RecordRun(ctx, r); err != nil { t.Fatalf("record: %v", err) }
    }

    runs, err := db.ListRuns(ctx, target, 10)
    if err != nil { t.Fatalf("list: %v", err) }
    if len(runs) != 2 {
        t.Fatalf("got %d runs", len(runs))
    }
    if runs[0].ID != newer.ID || runs[1].ID != older.ID {
        t.Fatalf("order: %s, %s", runs[0].ID, runs[1].ID)
    }
    if runs[0].Port != nil || runs[0].ErrorKind != nil {
        t.Fatalf("nullable columns should scan as nil: %+v", runs[0])
    }
    if runs[1].Port == nil || *runs[1].Port != 443 || *runs[1].ErrorKind != kind {
        t.Fatalf("older run: %+v", runs[1])
    }

    none, err := db.ListRuns(ctx, "203.0.113.254-nope", 10)
    if err != nil || none == nil || len(none) != 0 {
        t.Fatalf("unknown target: %v %v", none, err)
    }
}
