package diagnostics

import (
    "context"
    "log/slog"
    "net"
    "strconv"
    "strings"
    "time"

    "github.com/google/uuid"
    "golang.org/x/sync/errgroup"

    "github.com/OmriYahav/Netools/internal/domain"
    "github.com/OmriYahav/Netools/internal/ports"
    "github.com/OmriYahav/Netools/internal/workers/sweep"
)

// Operation names, as recorded in the run history.
const (
    OpCheckPort  = "check-port"
    OpCheckPorts = "check-ports"
    OpPing       = "ping"
    OpGeolocate  = "geolocate"
    OpWhois      = "whois"
    OpCheck      = "check"

    MaxSweepPorts      = 64
    DefaultHistorySize = 50
    MaxHistorySize     = 500
)

// SuggestedPorts are the ports most often checked by people testing port
// forwarding: web, RTSP cameras and common dev servers.
var SuggestedPorts = []int{80, 443, 554, 8080, 5000, 9000}

type Options struct {
    PortTimeout  time.Duration
    PingCount    int
    PingTimeout  time.Duration
    SweepWorkers int
}

// Service is the single entry point for every diagnostic. Each method
// validates its input before any I/O and returns either a component result
// or a *domain.DiagnosticError.
type Service struct {
    portProber ports.PortProber
    latency    ports.LatencyProber
    geo        ports.Geolocator
    whois      ports.WhoisResolver
    runs       ports.RunRepository
    opts       Options
    logger     *slog.Logger
}

// New wires the façade. runs may be nil, in which case nothing is recorded.
func New(portProber ports.PortProber, latency ports.LatencyProber, geo ports.Geolocator, whois ports.WhoisResolver, runs ports.RunRepository, opts Options, logger *slog.Logger) *Service {
    if logger == nil { logger = slog.Default() }
    return &Service{portProber: portProber, latency: latency, geo: geo, whois: whois, runs: runs, opts: opts, logger: logger}
}

// CheckPort validates ip and port, then makes one TCP connect attempt. The
// returned error is non-nil only for invalid input.
func (s *Service) CheckPort(ctx context.Context, rawIP string, rawPort int) (domain.PortProbeResult, error) {
    addr, port, err := validateTarget(rawIP, rawPort)
    if err != nil {
        s.rejected(ctx, OpCheckPort, rawIP, &rawPort, err)
        return domain.PortProbeResult{}, err
    }
    return s.probePort(ctx, addr, port), nil
}

func (s *Service) probePort(ctx context.Context, addr domain.Address, port domain.Port) domain.PortProbeResult {
    start := time.Now()
    var res domain.PortProbeResult
    if err := contain(func() error {
        res = s.portProber.ProbePort(ctx, addr, port, s.opts.PortTimeout)
        return nil
    }); err != nil {
        res = domain.PortProbeResult{Outcome: domain.PortError, Detail: err.Error()}
    }
    p := port.Int()
    s.finish(ctx, OpCheckPort, addr.String(), &p, string(res.Outcome), res.Err(), start)
    return res
}

// Ping validates ip and sends the configured number of ICMP echoes.
// Probe failures are reported in-band in the result.
func (s *Service) Ping(ctx context.Context, rawIP string) (domain.LatencyProbeResult, error) {
    addr, err := domain.ParseAddress(rawIP)
    if err != nil {
        s.rejected(ctx, OpPing, rawIP, nil, err)
        return domain.LatencyProbeResult{}, err
    }
    return s.ping(ctx, addr), nil
}

func (s *Service) ping(ctx context.Context, addr domain.Address) domain.LatencyProbeResult {
    start := time.Now()
    var res domain.LatencyProbeResult
    if err := contain(func() error {
        res = s.latency.ProbeLatency(ctx, addr, s.opts.PingCount, s.opts.PingTimeout)
        return nil
    }); err != nil {
        res = domain.LatencyProbeResult{Error: err.Error()}
    }
    outcome := "unreachable"
    var failure error
    switch {
    case res.Reachable:
        outcome = "reachable"
    case res.Error != "":
        outcome = "error"
        failure = domain.NewError(domain.KindUnclassified, res.Error)
    }
    s.finish(ctx, OpPing, addr.String(), nil, outcome, failure, start)
    return res
}

// Geolocate validates ip and asks the geolocation provider once.
func (s *Service) Geolocate(ctx context.Context, rawIP string) (domain.GeoRecord, error) {
    addr, err := domain.ParseAddress(rawIP)
    if err != nil {
        s.rejected(ctx, OpGeolocate, rawIP, nil, err)
        return nil, err
    }
    return s.geolocate(ctx, addr)
}

func (s *Service) geolocate(ctx context.Context, addr domain.Address) (domain.GeoRecord, error) {
    start := time.Now()
    var rec domain.GeoRecord
    err := contain(func() error {
        var err error
        rec, err = s.geo.Geolocate(ctx, addr)
        return err
    })
    err = asDiagnostic(err)
    s.finish(ctx, OpGeolocate, addr.String(), nil, outcomeOf(err, "ok"), err, start)
    if err != nil {
        return nil, err
    }
    return rec, nil
}

// Whois validates ip and resolves its registration, short-circuiting
// private and reserved ranges.
func (s *Service) Whois(ctx context.Context, rawIP string) (domain.WhoisResult, error) {
    addr, err := domain.ParseAddress(rawIP)
    if err != nil {
        s.rejected(ctx, OpWhois, rawIP, nil, err)
        return domain.WhoisResult{}, err
    }
    start := time.Now()
    var res domain.WhoisResult
    err = contain(func() error {
        var err error
        res, err = s.whois.Lookup(ctx, addr)
        return err
    })
    err = asDiagnostic(err)
    outcome := "ok"
    if res.Private { outcome = "private" }
    s.finish(ctx, OpWhois, addr.String(), nil, outcomeOf(err, outcome), err, start)
    if err != nil {
        return domain.WhoisResult{}, err
    }
    return res, nil
}

// MyAddress reports the caller's transport peer address. remote is in
// host:port form as seen by the server; anything unparseable is echoed.
func (s *Service) MyAddress(remote string) string {
    host := strings.TrimSpace(remote)
    if h, _, err := net.SplitHostPort(host); err == nil {
        host = h
    }
    if addr, err := domain.ParseAddress(host); err == nil {
        return addr.String()
    }
    return host
}

type PortCheck struct {
    Port   domain.Port
    Result domain.PortProbeResult
}

// CheckReport bundles the three probes the client runs side by side.
type CheckReport struct {
    Address domain.Address
    Port    *PortCheck
    Ping    domain.LatencyProbeResult
    Geo     domain.GeoRecord
    GeoErr  *domain.DiagnosticError
}

// Check validates once, then runs port check (when rawPort is set), ping and
// geolocation concurrently. Only validation can fail the whole call.
func (s *Service) Check(ctx context.Context, rawIP string, rawPort *int) (CheckReport, error) {
    addr, err := domain.ParseAddress(rawIP)
    if err != nil {
        s.rejected(ctx, OpCheck, rawIP, rawPort, err)
        return CheckReport{}, err
    }
    var port domain.Port
    if rawPort != nil {
        if port, err = domain.NewPort(*rawPort); err != nil {
            s.rejected(ctx, OpCheck, rawIP, rawPort, err)
            return CheckReport{}, err
        }
    }

    start := time.Now()
    report := CheckReport{Address: addr}
    var g errgroup.Group
    if rawPort != nil {
        g.Go(func() error {
            report.Port = &PortCheck{Port: port, Result: s.probePort(ctx, addr, port)}
            return nil
        })
    }
    g.Go(func() error {
        report.Ping = s.ping(ctx, addr)
        return nil
    })
    g.Go(func() error {
        rec, err := s.geolocate(ctx, addr)
        report.Geo = rec
        if err != nil {
            report.GeoErr = domain.AsDiagnostic(err)
        }
        return nil
    })
    _ = g.Wait()
    s.finish(ctx, OpCheck, addr.String(), rawPort, report.summary(), nil, start)
    return report, nil
}

// summary condenses the report into the run history outcome, e.g.
// "port=open ping=reachable geo=ok".
func (r CheckReport) summary() string {
    var parts []string
    if r.Port != nil {
        parts = append(parts, "port="+string(r.Port.Result.Outcome))
    }
    ping := "unreachable"
    switch {
    case r.Ping.Reachable:
        ping = "reachable"
    case r.Ping.Error != "":
        ping = "error"
    }
    parts = append(parts, "ping="+ping)
    if r.GeoErr != nil {
        parts = append(parts, "geo="+string(r.GeoErr.Kind))
    } else {
        parts = append(parts, "geo=ok")
    }
    return strings.Join(parts, " ")
}

// CheckPorts probes a list of ports (the suggested ports when empty) through
// the sweep worker pool. Every port is validated before the first probe.
func (s *Service) CheckPorts(ctx context.Context, rawIP string, rawPorts []string) ([]PortCheck, error) {
    addr, err := domain.ParseAddress(rawIP)
    if err != nil {
        s.rejected(ctx, OpCheckPorts, rawIP, nil, err)
        return nil, err
    }
    list, err := parsePortList(rawPorts)
    if err != nil {
        s.rejected(ctx, OpCheckPorts, rawIP, nil, err)
        return nil, err
    }

    start := time.Now()
    results := sweep.Run(ctx, guardedProber{s.portProber}, addr, list, s.opts.SweepWorkers, s.opts.PortTimeout)
    out := make([]PortCheck, 0, len(results))
    open := 0
    for _, r := range results {
        if r.Result.Outcome == domain.PortOpen { open++ }
        out = append(out, PortCheck{Port: r.Port, Result: r.Result})
    }
    s.finish(ctx, OpCheckPorts, addr.String(), nil, strconv.Itoa(open)+"/"+strconv.Itoa(len(out))+" open", nil, start)
    return out, nil
}

// History lists recorded runs, newest first. rawIP may be empty.
func (s *Service) History(ctx context.Context, rawIP string, limit int) ([]domain.Run, error) {
    target := ""
    if strings.TrimSpace(rawIP) != "" {
        addr, err := domain.ParseAddress(rawIP)
        if err != nil { return nil, err }
        target = addr.String()
    }
    if limit <= 0 { limit = DefaultHistorySize }
    if limit > MaxHistorySize { limit = MaxHistorySize }
    if s.runs == nil {
        return []domain.Run{}, nil
    }
    runs, err := s.runs.ListRuns(ctx, target, limit)
    if err != nil {
        return nil, domain.Wrap(domain.KindUnclassified, err)
    }
    return runs, nil
}

func validateTarget(rawIP string, rawPort int) (domain.Address, domain.Port, error) {
    addr, err := domain.ParseAddress(rawIP)
    if err != nil { return domain.Address{}, 0, err }
    port, err := domain.NewPort(rawPort)
    if err != nil { return domain.Address{}, 0, err }
    return addr, port, nil
}

// parsePortList accepts "80", "80,443" and repeated values alike and drops
// duplicates while keeping the first occurrence's position.
func parsePortList(raw []string) ([]domain.Port, error) {
    var tokens []string
    for _, r := range raw {
        for _, tok := range strings.Split(r, ",") {
            if tok = strings.TrimSpace(tok); tok != "" {
                tokens = append(tokens, tok)
            }
        }
    }
    if len(tokens) == 0 {
        out := make([]domain.Port, 0, len(SuggestedPorts))
        for _, p := range SuggestedPorts {
            out = append(out, domain.Port(p))
        }
        return out, nil
    }
    seen := map[domain.Port]bool{}
    var out []domain.Port
    for _, tok := range tokens {
        p, err := domain.ParsePort(tok)
        if err != nil { return nil, err }
        if seen[p] { continue }
        seen[p] = true
        out = append(out, p)
    }
    if len(out) > MaxSweepPorts {
        return nil, domain.Errorf(domain.KindInvalidPort, "at most %d ports per sweep, got %d", MaxSweepPorts, len(out))
    }
    return out, nil
}

// guardedProber keeps a panicking prober from taking a sweep worker down.
type guardedProber struct{ next ports.PortProber }

func (g guardedProber) ProbePort(ctx context.Context, addr domain.Address, port domain.Port, timeout time.Duration) domain.PortProbeResult {
    var res domain.PortProbeResult
    if err := contain(func() error {
        res = g.next.ProbePort(ctx, addr, port, timeout)
        return nil
    }); err != nil {
        return domain.PortProbeResult{Outcome: domain.PortError, Detail: err.Error()}
    }
    return res
}

// contain runs fn and turns a panic inside a component into an
// unclassified error.
func contain(fn func() error) (err error) {
    defer func() {
        if r := recover(); r != nil {
            err = domain.Errorf(domain.KindUnclassified, "internal fault: %v", r)
        }
    }()
    return fn()
}

func asDiagnostic(err error) error {
    if err == nil { return nil }
    return domain.AsDiagnostic(err)
}

func outcomeOf(err error, ok string) string {
    if err != nil { return "error" }
    return ok
}

func (s *Service) rejected(ctx context.Context, op, rawIP string, rawPort *int, err error) {
    s.logger.Debug("diagnostic rejected", "op", op, "target", rawIP, "err", err)
    s.record(ctx, op, strings.TrimSpace(rawIP), rawPort, "invalid", err, 0)
}

func (s *Service) finish(ctx context.Context, op, target string, port *int, outcome string, err error, start time.Time) {
    elapsed := time.Since(start)
    attrs := []any{"op", op, "target", target, "outcome", outcome, "elapsed", elapsed}
    if port != nil { attrs = append(attrs, "port", *port) }
    if err != nil {
        s.logger.Warn("diagnostic failed", append(attrs, "kind", domain.KindOf(err), "err", err)...)
    } else {
        s.logger.Info("diagnostic", attrs...)
    }
    s.record(ctx, op, target, port, outcome, err, elapsed)
}

// record writes the audit row. Failures are logged and never reach the
// caller; a cancelled request still gets its row.
func (s *Service) record(ctx context.Context, op, target string, port *int, outcome string, err error, elapsed time.Duration) {
    if s.runs == nil { return }
    run := domain.Run{
        ID:         uuid.NewString(),
        Operation:  op,
        Target:     target,
        Port:       port,
        Outcome:    outcome,
        DurationMs: elapsed.Milliseconds(),
        CreatedAt:  time.Now().UTC(),
    }
    if err != nil {
        k := string(domain.KindOf(err))
        run.ErrorKind = &k
    }
    ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
    defer cancel()
    if rerr := s.runs.RecordRun(ctx, run); rerr != nil {
        s.logger.Warn("run history write failed", "op", op, "err", rerr)
    }
}
