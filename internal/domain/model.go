package domain

import (
    "fmt"
    "time"
)

// Core domain models used internally. API types are generated from OpenAPI and
// sit in internal/api; keep these decoupled where helpful.

// PortOutcome classifies a single TCP connect attempt.
type PortOutcome string

const (
    PortOpen      PortOutcome = "open"
    PortClosed    PortOutcome = "closed"
    PortTimedOut  PortOutcome = "timed_out"
    PortDNSFailed PortOutcome = "dns_failed"
    PortRefused   PortOutcome = "refused"
    PortError     PortOutcome = "error"
)

type PortProbeResult struct {
    Outcome PortOutcome
    Detail  string
}

// Status collapses the outcome into the coarse open|closed|error answer
// exposed by check-port. Refusals and timeouts mean the port is closed from
// the caller's point of view; resolution and transport failures do not say
// anything about the port.
func (r PortProbeResult) Status() string {
    switch r.Outcome {
    case PortOpen:
        return "open"
    case PortClosed, PortRefused, PortTimedOut:
        return "closed"
    default:
        return "error"
    }
}

// Err returns the taxonomy error for a non-open outcome, nil otherwise.
func (r PortProbeResult) Err() error {
    switch r.Outcome {
    case PortOpen, PortClosed:
        return nil
    case PortTimedOut:
        return NewError(KindProbeTimedOut, r.Detail)
    case PortRefused:
        return NewError(KindProbeRefused, r.Detail)
    case PortDNSFailed:
        return NewError(KindResolutionFailed, r.Detail)
    default:
        return NewError(KindUnclassified, r.Detail)
    }
}

// LatencyProbeResult aggregates a batch of ICMP echoes. AverageRTTMs is nil
// unless at least one echo was answered.
type LatencyProbeResult struct {
    Reachable    bool
    AverageRTTMs *float64
    Sent         int
    Received     int
    Error        string
}

// GeoRecord is the provider's JSON object, passed through untouched.
type GeoRecord map[string]any

// NotAvailable is the placeholder used for absent WHOIS text fields.
const NotAvailable = "N/A"

type WhoisRecord struct {
    ASN          *string
    NetworkName  string
    Organization string
    Country      string
    // Emails is deduplicated and sorted.
    Emails []string
}

// WhoisResult is either a parsed record or the private address notice.
type WhoisResult struct {
    Private bool
    Message string
    Record  *WhoisRecord
}

// PrivateWhois builds the short-circuit answer for non-routable addresses.
func PrivateWhois(addr Address) WhoisResult {
    return WhoisResult{
        Private: true,
        Message: fmt.Sprintf("%s is a private or reserved address, no WHOIS available", addr),
    }
}

// Run is one recorded façade invocation.
type Run struct {
    ID         string
    Operation  string
    Target     string
    Port       *int
    Outcome    string
    ErrorKind  *string
    DurationMs int64
    CreatedAt  time.Time
}
