package whois

import (
    "context"
    "log/slog"

    "github.com/OmriYahav/Netools/internal/domain"
    "github.com/OmriYahav/Netools/internal/ports"
)

type Service struct {
    rdap   ports.RDAPSource
    logger *slog.Logger
}

func New(rdap ports.RDAPSource, logger *slog.Logger) *Service {
    if logger == nil { logger = slog.Default() }
    return &Service{rdap: rdap, logger: logger}
}

// Lookup short-circuits private and reserved addresses without touching the
// network. Any resolution or parse failure comes back as KindUpstream.
func (s *Service) Lookup(ctx context.Context, addr domain.Address) (domain.WhoisResult, error) {
    if addr.IsPrivate() {
        return domain.PrivateWhois(addr), nil
    }
    doc, err := s.rdap.LookupIP(ctx, addr)
    if err != nil {
        return domain.WhoisResult{}, lookupFailed(err)
    }
    rec, err := Parse(doc)
    if err != nil {
        s.logger.Warn("whois document rejected", "target", addr.String(), "err", err)
        return domain.WhoisResult{}, lookupFailed(err)
    }
    return domain.WhoisResult{Record: &rec}, nil
}

func lookupFailed(err error) error {
    return &domain.DiagnosticError{
        Kind:    domain.KindUpstream,
        Message: "whois lookup failed: " + err.Error(),
        Err:     err,
    }
}
