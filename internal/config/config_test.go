package config

import (
    "strings"
    "testing"
    "time"
)

func TestFromEnv_Defaults(t *testing.T) {
    for _, k := range []string{"APP_ENV", "LISTEN_ADDR", "DATABASE_URL", "CORS_ORIGINS", "PORT_TIMEOUT", "PING_COUNT", "GEO_PROVIDER", "SWEEP_WORKERS"} {
        t.Setenv(k, "")
    }
    cfg, err := FromEnv()
    if err != nil { t.Fatalf("defaults must validate: %v", err) }
    if cfg.ListenAddr != ":8000" || cfg.Env != "development" {
        t.Fatalf("unexpected defaults: %+v", cfg)
    }
    if cfg.DatabaseURL != "" {
        t.Fatalf("database must be optional")
    }
    if cfg.PortTimeout != 3*time.Second || cfg.PingCount != 4 || cfg.PingTimeout != 2*time.Second {
        t.Fatalf("probe defaults: %+v", cfg)
    }
    if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
        t.Fatalf("cors default: %v", cfg.CORSOrigins)
    }
    if cfg.GeoProvider != GeoProviderIPAPI {
        t.Fatalf("geo provider default: %q", cfg.GeoProvider)
    }
}

func TestFromEnv_Overrides(t *testing.T) {
    t.Setenv("PORT_TIMEOUT", "750ms")
    t.Setenv("PING_TIMEOUT", "1.5")
    t.Setenv("PING_PRIVILEGED", "true")
    t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
    t.Setenv("GEO_PROVIDER", "MMDB")
    cfg, err := FromEnv()
    if err != nil { t.Fatal(err) }
    if cfg.PortTimeout != 750*time.Millisecond {
        t.Fatalf("port timeout %s", cfg.PortTimeout)
    }
    if cfg.PingTimeout != 1500*time.Millisecond {
        t.Fatalf("ping timeout %s", cfg.PingTimeout)
    }
    if !cfg.PingPrivileged {
        t.Fatalf("privileged flag not read")
    }
    if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
        t.Fatalf("origins %v", cfg.CORSOrigins)
    }
    if cfg.GeoProvider != GeoProviderMMDB {
        t.Fatalf("provider %q", cfg.GeoProvider)
    }
}

func TestFromEnv_RejectsBadValues(t *testing.T) {
    t.Setenv("GEO_PROVIDER", "maxmind-cloud")
    t.Setenv("PING_COUNT", "0")
    _, err := FromEnv()
    if err == nil { t.Fatal("expected validation error") }
    for _, want := range []string{"GEO_PROVIDER", "PING_COUNT"} {
        if !strings.Contains(err.Error(), want) {
            t.Fatalf("error %q should mention %s", err, want)
        }
    }
}

func TestGetenvInt_FallsBack(t *testing.T) {
    t.Setenv("SWEEP_WORKERS", "lots")
    if got := getenvInt("SWEEP_WORKERS", 4); got != 4 {
        t.Fatalf("got %d", got)
    }
}
