package httpadapter

import (
    "encoding/json"
    "errors"
    "log/slog"
    "net/http"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/go-chi/chi/v5/middleware"
    "github.com/go-chi/cors"

    api "github.com/OmriYahav/Netools/internal/api"
    "github.com/OmriYahav/Netools/internal/domain"
    "github.com/OmriYahav/Netools/internal/services/diagnostics"
)

type Options struct {
    CORSOrigins       []string
    TrustProxyHeaders bool
}

// Server implements the generated ServerInterface on top of the
// diagnostics service.
type Server struct {
    svc    *diagnostics.Service
    opts   Options
    logger *slog.Logger
}

var _ api.ServerInterface = (*Server)(nil)

func New(svc *diagnostics.Service, opts Options, logger *slog.Logger) *Server {
    if logger == nil { logger = slog.Default() }
    if len(opts.CORSOrigins) == 0 { opts.CORSOrigins = []string{"*"} }
    return &Server{svc: svc, opts: opts, logger: logger}
}

// Routes returns a chi.Router mounting the generated handlers.
func (s *Server) Routes() chi.Router {
    r := chi.NewRouter()
    r.Use(middleware.RequestID)
    if s.opts.TrustProxyHeaders {
        r.Use(middleware.RealIP)
    }
    r.Use(requestLogger(s.logger))
    r.Use(middleware.Recoverer)
    r.Use(cors.Handler(cors.Options{
        AllowedOrigins: s.opts.CORSOrigins,
        AllowedMethods: []string{http.MethodGet, http.MethodOptions},
        AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
        ExposedHeaders: []string{"X-Request-Id"},
        MaxAge:         300,
    }))
    api.HandlerWithOptions(s, api.ChiServerOptions{
        BaseRouter:       r,
        ErrorHandlerFunc: s.paramError,
    })
    return r
}

func (s *Server) GetHealthz(w http.ResponseWriter, r *http.Request) {
    writeJSON(w, http.StatusOK, api.HealthResponse{Status: "ok"})
}

func (s *Server) GetCheckPort(w http.ResponseWriter, r *http.Request, params api.GetCheckPortParams) {
    res, err := s.svc.CheckPort(r.Context(), params.Ip, params.Port)
    if err != nil {
        s.writeError(w, r, err)
        return
    }
    writeJSON(w, http.StatusOK, portCheck(nil, res))
}

func (s *Server) GetPing(w http.ResponseWriter, r *http.Request, params api.GetPingParams) {
    res, err := s.svc.Ping(r.Context(), params.Ip)
    if err != nil {
        s.writeError(w, r, err)
        return
    }
    writeJSON(w, http.StatusOK, pingResponse(res))
}

func (s *Server) GetGeolocate(w http.ResponseWriter, r *http.Request, params api.GetGeolocateParams) {
    rec, err := s.svc.Geolocate(r.Context(), params.Ip)
    if err != nil {
        s.writeError(w, r, err)
        return
    }
    writeJSON(w, http.StatusOK, api.GeoRecord(rec))
}

func (s *Server) GetWhois(w http.ResponseWriter, r *http.Request, params api.GetWhoisParams) {
    res, err := s.svc.Whois(r.Context(), params.Ip)
    if err != nil {
        s.writeError(w, r, err)
        return
    }
    if res.Private || res.Record == nil {
        writeJSON(w, http.StatusOK, api.PrivateNotice{Private: true, Message: res.Message})
        return
    }
    rec := res.Record
    writeJSON(w, http.StatusOK, api.WhoisResponse{
        Asn:         rec.ASN,
        NetworkName: rec.NetworkName,
        Org:         rec.Organization,
        Country:     rec.Country,
        Emails:      rec.Emails,
    })
}

func (s *Server) GetMyIp(w http.ResponseWriter, r *http.Request) {
    writeJSON(w, http.StatusOK, api.MyIPResponse{YourIp: s.svc.MyAddress(r.RemoteAddr)})
}

func (s *Server) GetCheck(w http.ResponseWriter, r *http.Request, params api.GetCheckParams) {
    report, err := s.svc.Check(r.Context(), params.Ip, params.Port)
    if err != nil {
        s.writeError(w, r, err)
        return
    }
    resp := api.CheckResponse{
        Ip:   report.Address.String(),
        Ping: pingResponse(report.Ping),
    }
    if report.Port != nil {
        pc := portCheck(&report.Port.Port, report.Port.Result)
        resp.Port = &pc
    }
    if report.GeoErr != nil {
        resp.GeoError = errorBody(report.GeoErr)
    } else if report.Geo != nil {
        geo := api.GeoRecord(report.Geo)
        resp.Geo = &geo
    }
    writeJSON(w, http.StatusOK, resp)
}

func (s *Server) GetSuggestedPorts(w http.ResponseWriter, r *http.Request) {
    writeJSON(w, http.StatusOK, api.SuggestedPortsResponse{Ports: append([]int(nil), diagnostics.SuggestedPorts...)})
}

func (s *Server) GetCheckPorts(w http.ResponseWriter, r *http.Request, params api.GetCheckPortsParams) {
    var raw []string
    if params.Ports != nil { raw = []string{*params.Ports} }
    results, err := s.svc.CheckPorts(r.Context(), params.Ip, raw)
    if err != nil {
        s.writeError(w, r, err)
        return
    }
    addr, _ := domain.ParseAddress(params.Ip)
    resp := api.PortSweepResponse{Ip: addr.String(), Results: make([]api.PortCheckResponse, 0, len(results))}
    for _, pc := range results {
        resp.Results = append(resp.Results, portCheck(&pc.Port, pc.Result))
    }
    writeJSON(w, http.StatusOK, resp)
}

func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request, params api.GetHistoryParams) {
    ip, limit := "", 0
    if params.Ip != nil { ip = *params.Ip }
    if params.Limit != nil { limit = *params.Limit }
    runs, err := s.svc.History(r.Context(), ip, limit)
    if err != nil {
        s.writeError(w, r, err)
        return
    }
    resp := api.HistoryResponse{Runs: make([]api.Run, 0, len(runs))}
    for _, run := range runs {
        var kind *string
        if run.ErrorKind != nil {
            k := *run.ErrorKind
            kind = &k
        }
        resp.Runs = append(resp.Runs, api.Run{
            Id:         run.ID,
            Operation:  run.Operation,
            Target:     run.Target,
            Port:       run.Port,
            Outcome:    run.Outcome,
            ErrorKind:  kind,
            DurationMs: run.DurationMs,
            CreatedAt:  run.CreatedAt,
        })
    }
    writeJSON(w, http.StatusOK, resp)
}

func portCheck(port *domain.Port, res domain.PortProbeResult) api.PortCheckResponse {
    out := api.PortCheckResponse{
        Status:  api.PortCheckResponseStatus(res.Status()),
        Outcome: api.PortCheckResponseOutcome(res.Outcome),
    }
    if port != nil {
        p := port.Int()
        out.Port = &p
    }
    if res.Detail != "" {
        reason := res.Detail
        out.Reason = &reason
    }
    return out
}

func pingResponse(res domain.LatencyProbeResult) api.PingResponse {
    sent, received := res.Sent, res.Received
    out := api.PingResponse{
        Reachable:    res.Reachable,
        AvgLatencyMs: res.AverageRTTMs,
        Sent:         &sent,
        Received:     &received,
    }
    if res.Error != "" {
        msg := res.Error
        out.Error = &msg
    }
    return out
}

func errorBody(err error) *api.ErrorResponse {
    de := domain.AsDiagnostic(err)
    return &api.ErrorResponse{Error: de.Error(), Kind: string(de.Kind)}
}

// statusFor maps a failure kind to the HTTP status of a failed call.
func statusFor(err error) int {
    switch domain.KindOf(err) {
    case domain.KindInvalidAddress, domain.KindInvalidPort:
        return http.StatusBadRequest
    case domain.KindProbeTimedOut:
        return http.StatusGatewayTimeout
    case domain.KindUpstream:
        return http.StatusBadGateway
    default:
        return http.StatusInternalServerError
    }
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
    status := statusFor(err)
    if status >= http.StatusInternalServerError {
        s.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "err", err, "request_id", middleware.GetReqID(r.Context()))
    }
    writeJSON(w, status, errorBody(err))
}

// paramError answers query binding failures from the generated wrapper in
// the same shape as validation errors raised by the service.
func (s *Server) paramError(w http.ResponseWriter, r *http.Request, err error) {
    name := ""
    var required *api.RequiredParamError
    var format *api.InvalidParamFormatError
    switch {
    case errors.As(err, &required):
        name = required.ParamName
    case errors.As(err, &format):
        name = format.ParamName
    }
    switch name {
    case "port", "ports":
        writeJSON(w, http.StatusBadRequest, errorBody(domain.Wrap(domain.KindInvalidPort, err)))
    case "limit":
        writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: err.Error(), Kind: "invalid_request"})
    default:
        writeJSON(w, http.StatusBadRequest, errorBody(domain.Wrap(domain.KindInvalidAddress, err)))
    }
}

func writeJSON(w http.ResponseWriter, status int, v any) {
    w.Header().Set("Content-Type", "application/json; charset=utf-8")
    w.WriteHeader(status)
    _ = json.NewEncoder(w).Encode(v)
}

// requestLogger records one line per request once the handler returns.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
            start := time.Now()
            defer func() {
                logger.InfoContext(r.Context(), "http request",
                    "method", r.Method,
                    "path", r.URL.Path,
                    "status", ww.Status(),
                    "bytes", ww.BytesWritten(),
                    "duration_ms", time.Since(start).Milliseconds(),
                    "request_id", middleware.GetReqID(r.Context()),
                )
            }()
            next.ServeHTTP(ww, r)
        })
    }
}
