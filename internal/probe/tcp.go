// Package probe implements the active network probes: a single TCP connect
// attempt per call and batches of ICMP echo requests.
package probe

import (
    "context"
    "errors"
    "net"
    "os"
    "syscall"
    "time"

    "github.com/OmriYahav/Netools/internal/domain"
)

const DefaultPortTimeout = 3 * time.Second

// DialFunc matches net.Dialer.DialContext.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// TCPProber opens exactly one socket per ProbePort call and never retries.
type TCPProber struct {
    // Dial overrides the dialer; nil uses a net.Dialer bounded by the timeout.
    Dial DialFunc
}

func NewTCPProber() *TCPProber { return &TCPProber{} }

// ProbePort connects to addr:port within timeout and closes the connection
// immediately on success. No data is exchanged.
func (p *TCPProber) ProbePort(ctx context.Context, addr domain.Address, port domain.Port, timeout time.Duration) domain.PortProbeResult {
    if timeout <= 0 {
        timeout = DefaultPortTimeout
    }
    ctx, cancel := context.WithTimeout(ctx, timeout)
    defer cancel()

    dial := p.Dial
    if dial == nil {
        d := &net.Dialer{Timeout: timeout}
        dial = d.DialContext
    }
    conn, err := dial(ctx, "tcp", net.JoinHostPort(addr.String(), port.String()))
    if err == nil {
        _ = conn.Close()
        return domain.PortProbeResult{Outcome: domain.PortOpen}
    }
    return classifyDialError(err)
}

// classifyDialError applies the outcome priority: timeout, resolution,
// refusal, unreachable, anything else.
func classifyDialError(err error) domain.PortProbeResult {
    var (
        netErr  net.Error
        dnsErr  *net.DNSError
        addrErr *net.AddrError
    )
    switch {
    case errors.Is(err, context.DeadlineExceeded),
        errors.Is(err, os.ErrDeadlineExceeded),
        errors.As(err, &netErr) && netErr.Timeout():
        return domain.PortProbeResult{Outcome: domain.PortTimedOut, Detail: "connection timed out"}
    case errors.As(err, &dnsErr), errors.As(err, &addrErr):
        return domain.PortProbeResult{Outcome: domain.PortDNSFailed, Detail: err.Error()}
    case errors.Is(err, syscall.ECONNREFUSED):
        return domain.PortProbeResult{Outcome: domain.PortRefused, Detail: "connection refused"}
    case errors.Is(err, syscall.EHOSTUNREACH),
        errors.Is(err, syscall.ENETUNREACH),
        errors.Is(err, syscall.EHOSTDOWN):
        return domain.PortProbeResult{Outcome: domain.PortClosed, Detail: "destination unreachable"}
    case errors.Is(err, context.Canceled):
        return domain.PortProbeResult{Outcome: domain.PortError, Detail: "probe cancelled"}
    default:
        return domain.PortProbeResult{Outcome: domain.PortError, Detail: err.Error()}
    }
}
