package netutil

import (
    "context"
    "errors"
    "fmt"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"
)

func TestIsTimeout(t *testing.T) {
    if !IsTimeout(fmt.Errorf("get: %w", context.DeadlineExceeded)) {
        t.Fatal("wrapped deadline must count as timeout")
    }
    if IsTimeout(errors.New("connection reset")) || IsTimeout(context.Canceled) {
        t.Fatal("non-deadline errors must not count as timeout")
    }
}

func TestNewHTTPClient_TimeoutSurfaces(t *testing.T) {
    release := make(chan struct{})
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        select {
        case <-release:
        case <-r.Context().Done():
        }
    }))
    defer srv.Close()
    defer close(release)

    _, err := NewHTTPClient(100 * time.Millisecond).Get(srv.URL)
    if err == nil || !IsTimeout(err) {
        t.Fatalf("expected a timeout, got %v", err)
    }
}
