package sweep

import (
    "context"
    "sync"
    "time"

    "github.com/OmriYahav/Netools/internal/domain"
    "github.com/OmriYahav/Netools/internal/ports"
)

const DefaultConcurrency = 4

// Job is one port of a sweep; Index is its position in the request.
type Job struct {
    Index int
    Port  domain.Port
}

type Result struct {
    Port   domain.Port
    Result domain.PortProbeResult
}

// Run probes every port of addr with at most concurrency probes in flight.
// Results come back in input order. Ports not yet dispatched when ctx ends
// are reported as cancelled errors.
func Run(ctx context.Context, prober ports.PortProber, addr domain.Address, portList []domain.Port, concurrency int, timeout time.Duration) []Result {
    if concurrency < 1 { concurrency = DefaultConcurrency }
    if concurrency > len(portList) { concurrency = len(portList) }

    results := make([]Result, len(portList))
    for i, p := range portList {
        results[i] = Result{Port: p, Result: domain.PortProbeResult{Outcome: domain.PortError, Detail: "probe cancelled"}}
    }
    if len(portList) == 0 { return results }

    jobsCh := make(chan Job, concurrency)

    // dispatcher
    go func() {
        defer close(jobsCh)
        for i, p := range portList {
            select {
            case <-ctx.Done():
                return
            case jobsCh <- Job{Index: i, Port: p}:
            }
        }
    }()

    // workers
    var wg sync.WaitGroup
    for i := 0; i < concurrency; i++ {
        wg.Add(1)
        go func() {
            defer wg.Done()
            for job := range jobsCh {
                res := prober.ProbePort(ctx, addr, job.Port, timeout)
                // each index is written by exactly one worker
                results[job.Index] = Result{Port: job.Port, Result: res}
            }
        }()
    }
    wg.Wait()
    return results
}
