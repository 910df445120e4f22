package ports

import (
    "context"
    "time"

    "github.com/OmriYahav/Netools/internal/domain"
)

// PortProber attempts a single TCP connection and classifies the outcome.
type PortProber interface {
    ProbePort(ctx context.Context, addr domain.Address, port domain.Port, timeout time.Duration) domain.PortProbeResult
}

// LatencyProber sends ICMP echoes and aggregates round-trip times.
type LatencyProber interface {
    ProbeLatency(ctx context.Context, addr domain.Address, count int, timeout time.Duration) domain.LatencyProbeResult
}

// Geolocator looks an address up at a geolocation provider.
type Geolocator interface {
    Geolocate(ctx context.Context, addr domain.Address) (domain.GeoRecord, error)
}

// WhoisResolver resolves registration metadata for an address.
type WhoisResolver interface {
    Lookup(ctx context.Context, addr domain.Address) (domain.WhoisResult, error)
}

// RDAPSource is the external RDAP capability. It returns the lookup document
// (asn, network, objects) as raw JSON for defensive parsing.
type RDAPSource interface {
    LookupIP(ctx context.Context, addr domain.Address) ([]byte, error)
}

// ASNSource maps an address to its origin AS, when known.
type ASNSource interface {
    ASN(addr domain.Address) (asn string, ok bool)
}
