package sweep

import (
    "context"
    "sync"
    "sync/atomic"
    "testing"
    "time"

    "github.com/OmriYahav/Netools/internal/domain"
)

type countingProber struct {
    inFlight atomic.Int32
    peak     atomic.Int32
    mu       sync.Mutex
    seen     []domain.Port
}

func (c *countingProber) ProbePort(ctx context.Context, addr domain.Address, port domain.Port, timeout time.Duration) domain.PortProbeResult {
    n := c.inFlight.Add(1)
    for {
        p := c.peak.Load()
        if n <= p || c.peak.CompareAndSwap(p, n) { break }
    }
    time.Sleep(10 * time.Millisecond)
    c.inFlight.Add(-1)
    c.mu.Lock()
    c.seen = append(c.seen, port)
    c.mu.Unlock()
    if port%2 == 0 {
        return domain.PortProbeResult{Outcome: domain.PortOpen}
    }
    return domain.PortProbeResult{Outcome: domain.PortRefused, Detail: "connection refused"}
}

func TestRun_OrderAndConcurrency(t *testing.T) {
    addr, _ := domain.ParseAddress("192.0.2.1")
    list := []domain.Port{80, 443, 554, 8080, 5000, 9000, 21, 23}
    p := &countingProber{}
    res := Run(context.Background(), p, addr, list, 3, time.Second)
    if len(res) != len(list) {
        t.Fatalf("len=%d", len(res))
    }
    for i, r := range res {
        if r.Port != list[i] {
            t.Fatalf("result %d is port %d, want %d", i, r.Port, list[i])
        }
        want := domain.PortOpen
        if list[i]%2 == 1 { want = domain.PortRefused }
        if r.Result.Outcome != want {
            t.Fatalf("port %d: %s", r.Port, r.Result.Outcome)
        }
    }
    if peak := p.peak.Load(); peak > 3 {
        t.Fatalf("peak concurrency %d exceeds 3", peak)
    }
    if len(p.seen) != len(list) {
        t.Fatalf("probed %d ports, want %d", len(p.seen), len(list))
    }
}

func TestRun_Cancelled(t *testing.T) {
    addr, _ := domain.ParseAddress("192.0.2.1")
    ctx, cancel := context.WithCancel(context.Background())
    cancel()
    res := Run(ctx, &countingProber{}, addr, []domain.Port{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 1, time.Second)
    if len(res) != 10 {
        t.Fatalf("len=%d", len(res))
    }
    for _, r := range res {
        if r.Result.Outcome == "" {
            t.Fatalf("every port needs an outcome")
        }
    }
}

func TestRun_Empty(t *testing.T) {
    addr, _ := domain.ParseAddress("192.0.2.1")
    if res := Run(context.Background(), &countingProber{}, addr, nil, 4, time.Second); len(res) != 0 {
        t.Fatalf("expected no results")
    }
}
