package logging

import (
    "io"
    "log/slog"
    "os"
    "strings"
)

// Setup installs the process-wide logger. Production uses JSON lines,
// everything else the text handler.
func Setup(level, env string) *slog.Logger {
    l := New(os.Stderr, level, env)
    slog.SetDefault(l)
    return l
}

func New(w io.Writer, level, env string) *slog.Logger {
    opts := &slog.HandlerOptions{Level: ParseLevel(level)}
    if strings.EqualFold(env, "production") {
        return slog.New(slog.NewJSONHandler(w, opts))
    }
    return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
    switch strings.ToLower(strings.TrimSpace(level)) {
    case "debug":
        return slog.LevelDebug
    case "warn", "warning":
        return slog.LevelWarn
    case "error":
        return slog.LevelError
    default:
        return slog.LevelInfo
    }
}
