package geoip

import (
    "context"
    "os"
    "path/filepath"
    "testing"

    "github.com/OmriYahav/Netools/internal/domain"
)

func TestOpen_MissingFile(t *testing.T) {
    missing := filepath.Join(t.TempDir(), "GeoLite2-City.mmdb")
    if _, err := OpenCity(missing); err == nil {
        t.Fatal("expected an error for a missing city database")
    }
    if _, err := OpenASN(missing); err == nil {
        t.Fatal("expected an error for a missing asn database")
    }
}

func TestOpen_NotADatabase(t *testing.T) {
    path := filepath.Join(t.TempDir(), "junk.mmdb")
    if err := os.WriteFile(path, []byte("not a maxmind database"), 0o600); err != nil {
        t.Fatal(err)
    }
    if _, err := OpenCity(path); err == nil {
        t.Fatal("expected an error for a corrupt database")
    }
}

// Runs against a real GeoLite2 download when GEOIP_TEST_CITY_DB points at one.
func TestCityDB_Live(t *testing.T) {
    path := os.Getenv("GEOIP_TEST_CITY_DB")
    if path == "" {
        t.Skip("GEOIP_TEST_CITY_DB not set")
    }
    db, err := OpenCity(path)
    if err != nil { t.Fatal(err) }
    defer db.Close()

    addr, _ := domain.ParseAddress("8.8.8.8")
    rec, err := db.Geolocate(context.Background(), addr)
    if err != nil { t.Fatal(err) }
    if rec["status"] != "success" || rec["countryCode"] != "US" || rec["query"] != "8.8.8.8" {
        t.Fatalf("unexpected record %v", rec)
    }

    private, _ := domain.ParseAddress("10.0.0.1")
    if _, err := db.Geolocate(context.Background(), private); domain.KindOf(err) != domain.KindUpstream {
        t.Fatalf("private address should miss with upstream_error, got %v", err)
    }
}
