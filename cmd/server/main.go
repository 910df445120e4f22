package main

import (
    "context"
    "errors"
    "fmt"
    "log/slog"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/go-chi/chi/v5"

    "github.com/OmriYahav/Netools/internal/adapters/geoip"
    httpadapter "github.com/OmriYahav/Netools/internal/adapters/http"
    "github.com/OmriYahav/Netools/internal/adapters/ipapi"
    pg "github.com/OmriYahav/Netools/internal/adapters/postgres"
    "github.com/OmriYahav/Netools/internal/adapters/rdap"
    "github.com/OmriYahav/Netools/internal/config"
    "github.com/OmriYahav/Netools/internal/logging"
    "github.com/OmriYahav/Netools/internal/ports"
    "github.com/OmriYahav/Netools/internal/probe"
    "github.com/OmriYahav/Netools/internal/services/diagnostics"
    whoissvc "github.com/OmriYahav/Netools/internal/services/whois"
)

func main() {
    if err := run(); err != nil {
        slog.Error("server exited", "err", err)
        os.Exit(1)
    }
}

// run owns every resource opened at startup, so deferred closes also run
// when a later step fails.
func run() error {
    cfg, err := config.Load()
    logger := logging.Setup(cfg.LogLevel, cfg.Env)
    if err != nil {
        return fmt.Errorf("invalid configuration: %w", err)
    }

    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()

    // Optional run history
    var runs ports.RunRepository
    if cfg.DatabaseURL != "" {
        db, err := pg.Connect(ctx, cfg.DatabaseURL)
        if err != nil {
            return fmt.Errorf("db connect: %w", err)
        }
        defer db.Close()
        if err := db.Migrate(ctx); err != nil {
            return fmt.Errorf("db migrate: %w", err)
        }
        runs = db
        logger.Info("run history enabled")
    }

    var geo ports.Geolocator
    switch cfg.GeoProvider {
    case config.GeoProviderMMDB:
        city, err := geoip.OpenCity(cfg.GeoIPCityDB)
        if err != nil {
            return err
        }
        defer city.Close()
        geo = city
    default:
        geo = ipapi.New(cfg.GeoBaseURL, cfg.GeoTimeout, nil)
    }

    var asn ports.ASNSource
    if cfg.GeoIPASNDB != "" {
        db, err := geoip.OpenASN(cfg.GeoIPASNDB)
        if err != nil {
            logger.Warn("asn database unavailable, continuing without it", "path", cfg.GeoIPASNDB, "err", err)
        } else {
            defer db.Close()
            asn = db
        }
    }

    registry, err := rdap.New(cfg.RDAPBaseURL, cfg.RDAPTimeout, nil, asn, logger)
    if err != nil {
        return err
    }
    whois := whoissvc.New(registry, logger)
    svc := diagnostics.New(
        probe.NewTCPProber(),
        probe.NewICMPProber(cfg.PingPrivileged, logger),
        geo,
        whois,
        runs,
        diagnostics.Options{
            PortTimeout:  cfg.PortTimeout,
            PingCount:    cfg.PingCount,
            PingTimeout:  cfg.PingTimeout,
            SweepWorkers: cfg.SweepWorkers,
        },
        logger,
    )

    srv := httpadapter.New(svc, httpadapter.Options{
        CORSOrigins:       cfg.CORSOrigins,
        TrustProxyHeaders: cfg.TrustProxyHeaders,
    }, logger)
    r := chi.NewRouter()
    r.Mount("/", srv.Routes())

    httpServer := &http.Server{
        Addr:              cfg.ListenAddr,
        Handler:           r,
        ReadHeaderTimeout: 5 * time.Second,
        // the slowest route (check-ports) may run several probe rounds
        WriteTimeout: 2 * time.Minute,
        IdleTimeout:  60 * time.Second,
        ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
    }

    errCh := make(chan error, 1)
    go func() { errCh <- httpServer.ListenAndServe() }()
    logger.Info("listening", "addr", cfg.ListenAddr, "env", cfg.Env, "geo_provider", cfg.GeoProvider)

    select {
    case <-ctx.Done():
        logger.Info("shutting down")
        shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
        defer cancel()
        if err := httpServer.Shutdown(shutdownCtx); err != nil {
            return fmt.Errorf("graceful shutdown: %w", err)
        }
        return nil
    case err := <-errCh:
        if errors.Is(err, http.ErrServerClosed) {
            return nil
        }
        return fmt.Errorf("server error: %w", err)
    }
}
