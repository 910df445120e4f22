package ipapi

import (
    "context"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "strings"
    "time"

    "github.com/OmriYahav/Netools/internal/domain"
    "github.com/OmriYahav/Netools/internal/netutil"
)

const (
    DefaultBaseURL = "http://ip-api.com/json"
    DefaultTimeout = 5 * time.Second

    maxBody = 1 << 20
)

// Client looks addresses up at an ip-api.com compatible endpoint
// (GET {base}/{ip}) and passes the JSON object through.
type Client struct {
    baseURL string
    timeout time.Duration
    http    *http.Client
}

func New(baseURL string, timeout time.Duration, client *http.Client) *Client {
    if baseURL == "" { baseURL = DefaultBaseURL }
    if timeout <= 0 { timeout = DefaultTimeout }
    if client == nil { client = netutil.NewHTTPClient(timeout + time.Second) }
    return &Client{baseURL: strings.TrimRight(baseURL, "/"), timeout: timeout, http: client}
}

// Geolocate makes exactly one request. Timeouts map to KindProbeTimedOut,
// everything else the provider does wrong maps to KindUpstream.
func (c *Client) Geolocate(ctx context.Context, addr domain.Address) (domain.GeoRecord, error) {
    ctx, cancel := context.WithTimeout(ctx, c.timeout)
    defer cancel()

    req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+url.PathEscape(addr.String()), nil)
    if err != nil {
        return nil, domain.Wrap(domain.KindUnclassified, err)
    }
    req.Header.Set("Accept", "application/json")

    resp, err := c.http.Do(req)
    if err != nil {
        return nil, c.transportError(err)
    }
    defer resp.Body.Close()

    body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
    if err != nil {
        return nil, c.transportError(err)
    }
    if resp.StatusCode < 200 || resp.StatusCode > 299 {
        return nil, domain.Errorf(domain.KindUpstream, "geolocation provider returned %d: %s", resp.StatusCode, snippet(body))
    }

    var rec domain.GeoRecord
    if err := json.Unmarshal(body, &rec); err != nil || rec == nil {
        return nil, domain.Errorf(domain.KindUpstream, "geolocation provider sent a non-object response: %s", snippet(body))
    }
    // ip-api reports lookup failures in-band with 200 OK.
    if status, _ := rec["status"].(string); status == "fail" {
        msg, _ := rec["message"].(string)
        if msg == "" { msg = "lookup failed" }
        return nil, domain.Errorf(domain.KindUpstream, "geolocation provider: %s", msg)
    }
    return rec, nil
}

func (c *Client) transportError(err error) error {
    if netutil.IsTimeout(err) {
        return &domain.DiagnosticError{
            Kind:    domain.KindProbeTimedOut,
            Message: fmt.Sprintf("geolocation provider did not respond within %s", c.timeout),
            Err:     err,
        }
    }
    return domain.Wrap(domain.KindUpstream, err)
}

func snippet(b []byte) string {
    s := strings.TrimSpace(string(b))
    if len(s) > 200 {
        s = s[:200] + "..."
    }
    if s == "" { s = "(empty body)" }
    return s
}
