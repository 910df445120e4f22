package main

import (
    "path/filepath"
    "strings"
    "testing"
)

func TestRun_StartupFailureIsReturned(t *testing.T) {
    t.Setenv("DATABASE_URL", "")
    t.Setenv("GEO_PROVIDER", "mmdb")
    t.Setenv("GEOIP_CITY_DB", filepath.Join(t.TempDir(), "missing.mmdb"))
    t.Setenv("LOG_LEVEL", "error")

    err := run()
    if err == nil || !strings.Contains(err.Error(), "open city database") {
        t.Fatalf("expected the geo database error back from run, got %v", err)
    }
}

func TestRun_InvalidConfiguration(t *testing.T) {
    t.Setenv("GEO_PROVIDER", "nope")
    t.Setenv("LOG_LEVEL", "error")

    err := run()
    if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
        t.Fatalf("got %v", err)
    }
}
