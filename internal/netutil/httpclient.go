package netutil

import (
    "context"
    "crypto/tls"
    "errors"
    "net"
    "net/http"
    "os"
    "time"
)

// NewHTTPClient returns a client for single-shot upstream lookups. The
// per-request bound comes from the caller's context; timeout is a backstop.
func NewHTTPClient(timeout time.Duration) *http.Client {
    dialer := &net.Dialer{
        Timeout:   6 * time.Second,
        KeepAlive: 15 * time.Second,
    }
    transport := &http.Transport{
        Proxy:               http.ProxyFromEnvironment,
        DialContext:         dialer.DialContext,
        TLSClientConfig:     &tls.Config{MinVersion: tls.VersionTLS12},
        TLSHandshakeTimeout: 5 * time.Second,
        MaxIdleConnsPerHost: 4,
        IdleConnTimeout:     30 * time.Second,
    }
    return &http.Client{
        Timeout:   timeout,
        Transport: transport,
    }
}

// IsTimeout reports whether err came from an elapsed deadline, either the
// context's or the client's.
func IsTimeout(err error) bool {
    if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
        return true
    }
    var netErr net.Error
    return errors.As(err, &netErr) && netErr.Timeout()
}
