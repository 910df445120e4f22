package config

import (
    "errors"
    "fmt"
    "io/fs"
    "os"
    "strconv"
    "strings"
    "time"

    "github.com/joho/godotenv"
)

type Config struct {
    Env               string
    ListenAddr        string
    LogLevel          string
    DatabaseURL       string
    CORSOrigins       []string
    TrustProxyHeaders bool

    PortTimeout    time.Duration
    PingCount      int
    PingTimeout    time.Duration
    PingPrivileged bool
    SweepWorkers   int

    GeoProvider string
    GeoBaseURL  string
    GeoTimeout  time.Duration
    GeoIPCityDB string
    GeoIPASNDB  string

    RDAPBaseURL string
    RDAPTimeout time.Duration
}

const (
    GeoProviderIPAPI = "ipapi"
    GeoProviderMMDB  = "mmdb"
)

func getenv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

// Load reads a .env file when present, then the environment. An empty
// DATABASE_URL is allowed and disables run history.
func Load() (Config, error) {
    if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
        return Config{}, fmt.Errorf("load .env: %w", err)
    }
    return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (Config, error) {
    cfg := Config{
        Env:               getenv("APP_ENV", "development"),
        ListenAddr:        getenv("LISTEN_ADDR", ":8000"),
        LogLevel:          getenv("LOG_LEVEL", "info"),
        DatabaseURL:       os.Getenv("DATABASE_URL"),
        CORSOrigins:       splitList(getenv("CORS_ORIGINS", "*")),
        TrustProxyHeaders: getenvBool("TRUST_PROXY_HEADERS", false),

        PortTimeout:    getenvDuration("PORT_TIMEOUT", 3*time.Second),
        PingCount:      getenvInt("PING_COUNT", 4),
        PingTimeout:    getenvDuration("PING_TIMEOUT", 2*time.Second),
        PingPrivileged: getenvBool("PING_PRIVILEGED", false),
        SweepWorkers:   getenvInt("SWEEP_WORKERS", 4),

        GeoProvider: strings.ToLower(getenv("GEO_PROVIDER", GeoProviderIPAPI)),
        GeoBaseURL:  getenv("GEO_BASE_URL", "http://ip-api.com/json"),
        GeoTimeout:  getenvDuration("GEO_TIMEOUT", 5*time.Second),
        GeoIPCityDB: getenv("GEOIP_CITY_DB", "/usr/share/GeoIP/GeoLite2-City.mmdb"),
        GeoIPASNDB:  os.Getenv("GEOIP_ASN_DB"),

        RDAPBaseURL: os.Getenv("RDAP_BASE_URL"),
        RDAPTimeout: getenvDuration("RDAP_TIMEOUT", 10*time.Second),
    }
    return cfg, cfg.Validate()
}

func (c Config) Validate() error {
    var errs []error
    if c.GeoProvider != GeoProviderIPAPI && c.GeoProvider != GeoProviderMMDB {
        errs = append(errs, fmt.Errorf("GEO_PROVIDER must be %q or %q, got %q", GeoProviderIPAPI, GeoProviderMMDB, c.GeoProvider))
    }
    if c.PortTimeout <= 0 { errs = append(errs, errors.New("PORT_TIMEOUT must be positive")) }
    if c.PingTimeout <= 0 { errs = append(errs, errors.New("PING_TIMEOUT must be positive")) }
    if c.GeoTimeout <= 0 { errs = append(errs, errors.New("GEO_TIMEOUT must be positive")) }
    if c.RDAPTimeout <= 0 { errs = append(errs, errors.New("RDAP_TIMEOUT must be positive")) }
    if c.PingCount < 1 || c.PingCount > 20 {
        errs = append(errs, fmt.Errorf("PING_COUNT must be between 1 and 20, got %d", c.PingCount))
    }
    if c.SweepWorkers < 1 {
        errs = append(errs, fmt.Errorf("SWEEP_WORKERS must be at least 1, got %d", c.SweepWorkers))
    }
    return errors.Join(errs...)
}

func getenvInt(key string, def int) int {
    if v := os.Getenv(key); v != "" {
        var out int
        _, err := fmt.Sscanf(v, "%d", &out)
        if err == nil { return out }
    }
    return def
}

// getenvDuration accepts Go durations ("750ms") or plain seconds ("3", "2.5").
func getenvDuration(key string, def time.Duration) time.Duration {
    v := strings.TrimSpace(os.Getenv(key))
    if v == "" { return def }
    if d, err := time.ParseDuration(v); err == nil {
        return d
    }
    if secs, err := strconv.ParseFloat(v, 64); err == nil {
        return time.Duration(secs * float64(time.Second))
    }
    return def
}

func getenvBool(key string, def bool) bool {
    if v := os.Getenv(key); v != "" {
        if b, err := strconv.ParseBool(v); err == nil { return b }
    }
    return def
}

func splitList(s string) []string {
    var out []string
    for _, part := range strings.Split(s, ",") {
        if part = strings.TrimSpace(part); part != "" {
            out = append(out, part)
        }
    }
    return out
}
