package domain

import (
    "errors"
    "testing"
)

func TestParseAddress_Invalid(t *testing.T) {
    bad := []string{
        "",
        "   ",
        "example.com",
        "256.1.1.1",
        "1.2.3",
        "1.2.3.4.5",
        "01.2.3.4",
        "1.2.3.4:80",
        "[::1]",
        "fe80::1%eth0",
        "::g",
        "1.2.3.-1",
    }
    for _, raw := range bad {
        _, err := ParseAddress(raw)
        if err == nil {
            t.Fatalf("ParseAddress(%q): expected error", raw)
        }
        if KindOf(err) != KindInvalidAddress {
            t.Fatalf("ParseAddress(%q): kind=%s want %s", raw, KindOf(err), KindInvalidAddress)
        }
    }
}

func TestParseAddress_CanonicalIdempotent(t *testing.T) {
    cases := map[string]string{
        "8.8.8.8":            "8.8.8.8",
        " 93.184.216.34 ":    "93.184.216.34",
        "2001:DB8:0:0::1":    "2001:db8::1",
        "::ffff:192.168.1.1": "192.168.1.1",
        "::1":                "::1",
    }
    for raw, want := range cases {
        a, err := ParseAddress(raw)
        if err != nil {
            t.Fatalf("ParseAddress(%q): %v", raw, err)
        }
        if a.String() != want {
            t.Fatalf("ParseAddress(%q)=%q want %q", raw, a.String(), want)
        }
        again, err := ParseAddress(a.String())
        if err != nil {
            t.Fatalf("reparse %q: %v", a.String(), err)
        }
        if again != a {
            t.Fatalf("reparse of %q not stable: %v != %v", raw, again, a)
        }
    }
}

func TestAddress_IsPrivate(t *testing.T) {
    private := []string{"10.0.0.5", "172.16.0.1", "192.168.1.1", "127.0.0.1", "169.254.1.1", "100.64.0.1", "0.0.0.0", "::1", "fe80::1", "fd00::1", "224.0.0.1"}
    for _, s := range private {
        a, err := ParseAddress(s)
        if err != nil { t.Fatal(err) }
        if !a.IsPrivate() {
            t.Fatalf("%s: expected private", s)
        }
    }
    public := []string{"8.8.8.8", "93.184.216.34", "172.32.0.1", "2606:4700:4700::1111"}
    for _, s := range public {
        a, err := ParseAddress(s)
        if err != nil { t.Fatal(err) }
        if a.IsPrivate() {
            t.Fatalf("%s: expected public", s)
        }
    }
}

func TestNewPort(t *testing.T) {
    for _, n := range []int{0, -1, 65536, 100000} {
        _, err := NewPort(n)
        if KindOf(err) != KindInvalidPort {
            t.Fatalf("NewPort(%d): kind=%q want %q", n, KindOf(err), KindInvalidPort)
        }
    }
    for _, n := range []int{1, 22, 80, 443, 8080, 65535} {
        p, err := NewPort(n)
        if err != nil {
            t.Fatalf("NewPort(%d): %v", n, err)
        }
        if p.Int() != n {
            t.Fatalf("NewPort(%d)=%d", n, p.Int())
        }
    }
}

func TestParsePort(t *testing.T) {
    if _, err := ParsePort("http"); KindOf(err) != KindInvalidPort {
        t.Fatalf("expected invalid port, got %v", err)
    }
    p, err := ParsePort(" 443 ")
    if err != nil || p != 443 {
        t.Fatalf("ParsePort: %v %v", p, err)
    }
}

func TestAsDiagnostic(t *testing.T) {
    err := AsDiagnostic(errors.New("boom"))
    if err.Kind != KindUnclassified || err.Message != "boom" {
        t.Fatalf("unexpected %+v", err)
    }
    orig := NewError(KindProbeRefused, "nope")
    wrapped := Wrap(KindUpstream, orig)
    if !errors.Is(wrapped, &DiagnosticError{Kind: KindUpstream}) {
        t.Fatalf("expected upstream kind match")
    }
    if AsDiagnostic(wrapped) != wrapped {
        t.Fatalf("AsDiagnostic should return the outermost diagnostic")
    }
    if AsDiagnostic(nil) != nil {
        t.Fatalf("nil in, nil out")
    }
}

func TestPortProbeResult_Status(t *testing.T) {
    cases := map[PortOutcome]string{
        PortOpen:      "open",
        PortClosed:    "closed",
        PortRefused:   "closed",
        PortTimedOut:  "closed",
        PortDNSFailed: "error",
        PortError:     "error",
    }
    for o, want := range cases {
        if got := (PortProbeResult{Outcome: o}).Status(); got != want {
            t.Fatalf("%s: status=%s want %s", o, got, want)
        }
    }
    if KindOf(PortProbeResult{Outcome: PortTimedOut}.Err()) != KindProbeTimedOut {
        t.Fatalf("timed_out must map to probe_timed_out")
    }
}
