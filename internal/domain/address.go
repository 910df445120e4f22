package domain

import (
    "net/netip"
    "strconv"
    "strings"
)

// Address is a validated IPv4 or IPv6 literal. The zero value is invalid;
// values are only produced by ParseAddress.
type Address struct {
    ip netip.Addr
}

// ParseAddress accepts IPv4 and IPv6 textual forms. Surrounding whitespace is
// ignored, zones are rejected and IPv4-mapped IPv6 addresses are unmapped so
// String is canonical and stable under repeated parsing.
func ParseAddress(raw string) (Address, error) {
    s := strings.TrimSpace(raw)
    if s == "" {
        return Address{}, NewError(KindInvalidAddress, "ip address is required")
    }
    ip, err := netip.ParseAddr(s)
    if err != nil {
        return Address{}, Errorf(KindInvalidAddress, "%q is not a valid IPv4 or IPv6 address", raw)
    }
    if ip.Zone() != "" {
        return Address{}, Errorf(KindInvalidAddress, "%q: scoped addresses are not supported", raw)
    }
    return Address{ip: ip.Unmap()}, nil
}

func (a Address) String() string { return a.ip.String() }

func (a Address) Addr() netip.Addr { return a.ip }

func (a Address) Is4() bool { return a.ip.Is4() }

var reservedPrefixes = mustPrefixes(
    "0.0.0.0/8",
    "100.64.0.0/10",
    "192.0.0.0/24",
    "192.0.2.0/24",
    "198.18.0.0/15",
    "198.51.100.0/24",
    "203.0.113.0/24",
    "240.0.0.0/4",
    "64:ff9b:1::/48",
    "100::/64",
    "2001:db8::/32",
)

// IsPrivate reports whether the address is outside the globally routed space:
// RFC 1918 / ULA, loopback, link-local, multicast, unspecified, CGNAT and the
// documentation and benchmarking ranges.
func (a Address) IsPrivate() bool {
    ip := a.ip
    if ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() ||
        ip.IsLinkLocalMulticast() || ip.IsInterfaceLocalMulticast() ||
        ip.IsMulticast() || ip.IsUnspecified() {
        return true
    }
    for _, p := range reservedPrefixes {
        if p.Contains(ip) { return true }
    }
    return false
}

func mustPrefixes(ss ...string) []netip.Prefix {
    out := make([]netip.Prefix, 0, len(ss))
    for _, s := range ss {
        out = append(out, netip.MustParsePrefix(s))
    }
    return out
}

// Port is a TCP port in [1, 65535]. Zero is rejected on purpose.
type Port uint16

const (
    MinPort = 1
    MaxPort = 65535
)

func NewPort(n int) (Port, error) {
    if n < MinPort || n > MaxPort {
        return 0, Errorf(KindInvalidPort, "port %d is out of range [%d, %d]", n, MinPort, MaxPort)
    }
    return Port(n), nil
}

// ParsePort validates a decimal port string.
func ParsePort(raw string) (Port, error) {
    s := strings.TrimSpace(raw)
    n, err := strconv.Atoi(s)
    if err != nil {
        return 0, Errorf(KindInvalidPort, "%q is not a port number", raw)
    }
    return NewPort(n)
}

func (p Port) Int() int { return int(p) }

func (p Port) String() string { return strconv.Itoa(int(p)) }
