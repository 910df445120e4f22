package probe

import (
    "bytes"
    "context"
    "crypto/rand"
    "encoding/binary"
    "errors"
    "fmt"
    "log/slog"
    "net"
    "net/netip"
    "os"
    "time"

    "golang.org/x/net/icmp"
    "golang.org/x/net/ipv4"
    "golang.org/x/net/ipv6"

    "github.com/OmriYahav/Netools/internal/domain"
)

const (
    DefaultPingCount   = 4
    DefaultPingTimeout = 2 * time.Second
    MaxPingCount       = 20

    protocolICMP     = 1
    protocolIPv6ICMP = 58
)

// ICMPProber sends echo requests sequentially over one socket per call.
//
// Unprivileged mode uses datagram ICMP sockets (Linux ping_group_range,
// macOS); privileged mode uses raw sockets and needs CAP_NET_RAW or root.
// Replies are matched on sequence number, peer and a per-call random
// payload, so concurrent calls never consume each other's replies.
type ICMPProber struct {
    Privileged bool
    Logger     *slog.Logger
}

func NewICMPProber(privileged bool, logger *slog.Logger) *ICMPProber {
    if logger == nil { logger = slog.Default() }
    return &ICMPProber{Privileged: privileged, Logger: logger}
}

type icmpFamily struct {
    network string
    listen  string
    proto   int
    request icmp.Type
    reply   icmp.Type
}

func (p *ICMPProber) family(addr domain.Address) icmpFamily {
    if addr.Is4() {
        f := icmpFamily{network: "udp4", listen: "0.0.0.0", proto: protocolICMP, request: ipv4.ICMPTypeEcho, reply: ipv4.ICMPTypeEchoReply}
        if p.Privileged { f.network = "ip4:icmp" }
        return f
    }
    f := icmpFamily{network: "udp6", listen: "::", proto: protocolIPv6ICMP, request: ipv6.ICMPTypeEchoRequest, reply: ipv6.ICMPTypeEchoReply}
    if p.Privileged { f.network = "ip6:ipv6-icmp" }
    return f
}

// ProbeLatency sends count echoes, each bounded by timeout. Worst-case total
// time is count*timeout.
func (p *ICMPProber) ProbeLatency(ctx context.Context, addr domain.Address, count int, timeout time.Duration) domain.LatencyProbeResult {
    if count <= 0 { count = DefaultPingCount }
    if count > MaxPingCount { count = MaxPingCount }
    if timeout <= 0 { timeout = DefaultPingTimeout }

    fam := p.family(addr)
    conn, err := icmp.ListenPacket(fam.network, fam.listen)
    if err != nil {
        if errors.Is(err, os.ErrPermission) {
            err = fmt.Errorf("icmp socket not permitted (need raw socket privilege or ping_group_range): %w", err)
        }
        return domain.LatencyProbeResult{Error: err.Error()}
    }
    defer conn.Close()

    // Unblock a pending read when the caller goes away.
    stop := context.AfterFunc(ctx, func() { _ = conn.SetReadDeadline(time.Now()) })
    defer stop()

    var dst net.Addr = &net.UDPAddr{IP: addr.Addr().AsSlice()}
    if p.Privileged {
        dst = &net.IPAddr{IP: addr.Addr().AsSlice()}
    }

    nonce := make([]byte, 8)
    if _, err := rand.Read(nonce); err != nil {
        return domain.LatencyProbeResult{Error: err.Error()}
    }
    id := int(binary.BigEndian.Uint16(nonce[:2]))

    var (
        rtts    []time.Duration
        sent    int
        lastErr error
    )
    for seq := 1; seq <= count; seq++ {
        if ctx.Err() != nil { break }
        sent++
        rtt, err := p.echo(ctx, conn, fam, dst, addr, id, seq, nonce, timeout)
        if err != nil {
            p.Logger.Debug("icmp echo failed", "target", addr.String(), "seq", seq, "err", err)
            if !isTimeout(err) { lastErr = err }
            continue
        }
        rtts = append(rtts, rtt)
    }
    res := summarize(sent, rtts)
    if !res.Reachable && lastErr != nil {
        res.Error = lastErr.Error()
    }
    return res
}

func (p *ICMPProber) echo(ctx context.Context, conn *icmp.PacketConn, fam icmpFamily, dst net.Addr, target domain.Address, id, seq int, nonce []byte, timeout time.Duration) (time.Duration, error) {
    msg := icmp.Message{
        Type: fam.request,
        Code: 0,
        Body: &icmp.Echo{ID: id, Seq: seq, Data: nonce},
    }
    wb, err := msg.Marshal(nil)
    if err != nil { return 0, err }

    deadline := time.Now().Add(timeout)
    if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
        deadline = d
    }
    if err := conn.SetReadDeadline(deadline); err != nil { return 0, err }

    start := time.Now()
    if _, err := conn.WriteTo(wb, dst); err != nil {
        return 0, err
    }
    rb := make([]byte, 1500)
    for {
        n, peer, err := conn.ReadFrom(rb)
        if err != nil { return 0, err }
        rtt := time.Since(start)
        rm, err := icmp.ParseMessage(fam.proto, rb[:n])
        if err != nil || rm.Type != fam.reply {
            continue
        }
        echo, ok := rm.Body.(*icmp.Echo)
        // Datagram sockets rewrite the ID, so it is only checked on raw sockets.
        if !ok || echo.Seq != seq || !bytes.Equal(echo.Data, nonce) {
            continue
        }
        if p.Privileged && echo.ID != id {
            continue
        }
        if !samePeer(peer, target) {
            continue
        }
        return rtt, nil
    }
}

// summarize computes reachability and the mean RTT over successful echoes.
func summarize(sent int, rtts []time.Duration) domain.LatencyProbeResult {
    res := domain.LatencyProbeResult{Sent: sent, Received: len(rtts)}
    if len(rtts) == 0 {
        return res
    }
    var total time.Duration
    for _, d := range rtts {
        total += d
    }
    avg := float64(total) / float64(len(rtts)) / float64(time.Millisecond)
    res.Reachable = true
    res.AverageRTTMs = &avg
    return res
}

func samePeer(peer net.Addr, target domain.Address) bool {
    var ip net.IP
    switch v := peer.(type) {
    case *net.UDPAddr:
        ip = v.IP
    case *net.IPAddr:
        ip = v.IP
    default:
        return false
    }
    a, ok := netip.AddrFromSlice(ip)
    return ok && a.Unmap() == target.Addr()
}

func isTimeout(err error) bool {
    var netErr net.Error
    return errors.Is(err, os.ErrDeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout())
}
