// Package rdap resolves IP network registrations with openrdap and flattens
// them into the lookup document read by the whois service:
//
//   {"asn": "15169", "network": {"name": ..., "country": ...},
//    "objects": {"<handle>": {"contact": {"name": ..., "email": [{"value": ...}]}}}}
//
// objects keeps the order in which entities appear in the registry response.
package rdap

import (
    "bytes"
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "log/slog"
    "net"
    "net/http"
    "net/url"
    "strconv"
    "strings"
    "time"

    "github.com/openrdap/rdap"
    "github.com/openrdap/rdap/bootstrap"

    "github.com/OmriYahav/Netools/internal/domain"
    "github.com/OmriYahav/Netools/internal/netutil"
    "github.com/OmriYahav/Netools/internal/ports"
)

const DefaultTimeout = 10 * time.Second

// Client queries the authoritative registry found through IANA bootstrap,
// or a fixed server when one is configured.
type Client struct {
    server  *url.URL
    timeout time.Duration
    rdap    *rdap.Client
    asn     ports.ASNSource
}

// New builds a client. An empty server selects IANA bootstrap.
func New(server string, timeout time.Duration, client *http.Client, asn ports.ASNSource, logger *slog.Logger) (*Client, error) {
    if timeout <= 0 { timeout = DefaultTimeout }
    if client == nil { client = netutil.NewHTTPClient(timeout + time.Second) }
    if logger == nil { logger = slog.Default() }

    c := &Client{timeout: timeout, asn: asn}
    if server = strings.TrimSpace(server); server != "" {
        u, err := url.Parse(server)
        if err != nil || u.Scheme == "" || u.Host == "" {
            return nil, fmt.Errorf("invalid rdap server %q", server)
        }
        c.server = u
    }
    verbose := func(text string) { logger.Debug("rdap", "msg", strings.TrimSpace(text)) }
    c.rdap = &rdap.Client{
        HTTP:      client,
        Bootstrap: &bootstrap.Client{HTTP: client, Verbose: verbose},
        Verbose:   verbose,
    }
    return c, nil
}

// LookupIP implements ports.RDAPSource.
func (c *Client) LookupIP(ctx context.Context, addr domain.Address) ([]byte, error) {
    ctx, cancel := context.WithTimeout(ctx, c.timeout)
    defer cancel()

    req := rdap.NewIPRequest(net.IP(addr.Addr().AsSlice())).WithContext(ctx)
    if c.server != nil {
        req = req.WithServer(c.server)
    }
    resp, err := c.rdap.Do(req)
    if err != nil {
        if errors.Is(ctx.Err(), context.DeadlineExceeded) || netutil.IsTimeout(err) {
            return nil, fmt.Errorf("rdap query timed out after %s: %w", c.timeout, err)
        }
        return nil, fmt.Errorf("rdap query: %w", err)
    }

    switch obj := resp.Object.(type) {
    case *rdap.IPNetwork:
        return json.Marshal(c.flatten(addr, obj, responseBody(resp)))
    case *rdap.Error:
        return nil, fmt.Errorf("rdap server error: %s", errorText(obj))
    default:
        return nil, fmt.Errorf("rdap response is not an ip network (%T)", resp.Object)
    }
}

type lookupDoc struct {
    ASN     *string        `json:"asn"`
    Network networkDoc     `json:"network"`
    Objects orderedObjects `json:"objects"`
}

type networkDoc struct {
    Handle    string `json:"handle,omitempty"`
    Name      string `json:"name,omitempty"`
    Country   string `json:"country,omitempty"`
    StartAddr string `json:"start_address,omitempty"`
    EndAddr   string `json:"end_address,omitempty"`
}

type objectDoc struct {
    Handle  string     `json:"handle"`
    Roles   []string   `json:"roles,omitempty"`
    Contact contactDoc `json:"contact"`
}

type contactDoc struct {
    Name  string     `json:"name,omitempty"`
    Kind  string     `json:"kind,omitempty"`
    Email []emailDoc `json:"email,omitempty"`
}

type emailDoc struct {
    Type  string `json:"type,omitempty"`
    Value string `json:"value"`
}

type namedObject struct {
    handle string
    obj    objectDoc
}

// orderedObjects marshals as a JSON object with keys in insertion order.
type orderedObjects []namedObject

func (o orderedObjects) MarshalJSON() ([]byte, error) {
    var buf bytes.Buffer
    buf.WriteByte('{')
    for i, n := range o {
        if i > 0 { buf.WriteByte(',') }
        k, err := json.Marshal(n.handle)
        if err != nil { return nil, err }
        v, err := json.Marshal(n.obj)
        if err != nil { return nil, err }
        buf.Write(k)
        buf.WriteByte(':')
        buf.Write(v)
    }
    buf.WriteByte('}')
    return buf.Bytes(), nil
}

func (c *Client) flatten(addr domain.Address, nw *rdap.IPNetwork, body []byte) lookupDoc {
    doc := lookupDoc{
        Network: networkDoc{
            Handle:    strings.TrimSpace(nw.Handle),
            Name:      strings.TrimSpace(nw.Name),
            Country:   strings.TrimSpace(nw.Country),
            StartAddr: nw.StartAddress,
            EndAddr:   nw.EndAddress,
        },
        Objects: orderedObjects{},
    }
    if asn, ok := originASN(body); ok {
        doc.ASN = &asn
    } else if c.asn != nil {
        if asn, ok := c.asn.ASN(addr); ok {
            doc.ASN = &asn
        }
    }

    seen := map[string]bool{}
    var walk func(list []rdap.Entity)
    walk = func(list []rdap.Entity) {
        for i := range list {
            ent := &list[i]
            handle := strings.TrimSpace(ent.Handle)
            if handle == "" {
                handle = "entity-" + strconv.Itoa(len(doc.Objects)+1)
            }
            if !seen[handle] {
                seen[handle] = true
                doc.Objects = append(doc.Objects, namedObject{handle: handle, obj: objectDoc{
                    Handle:  handle,
                    Roles:   ent.Roles,
                    Contact: contactOf(ent.VCard),
                }})
            }
            walk(ent.Entities)
        }
    }
    walk(nw.Entities)
    return doc
}

func contactOf(v *rdap.VCard) contactDoc {
    var out contactDoc
    if v == nil { return out }
    out.Name = strings.TrimSpace(v.Name())
    if p := v.GetFirst("kind"); p != nil {
        if vals := p.Values(); len(vals) > 0 {
            out.Kind = vals[0]
        }
    }
    // Email only returns the first address; contacts often carry several.
    for _, p := range v.Get("email") {
        for _, val := range p.Values() {
            if val = strings.TrimSpace(val); val == "" { continue }
            out.Email = append(out.Email, emailDoc{Type: strings.Join(p.Parameters["type"], ","), Value: val})
        }
    }
    return out
}

// responseBody returns the body of the response that was decoded.
func responseBody(resp *rdap.Response) []byte {
    for i := len(resp.HTTP) - 1; i >= 0; i-- {
        if hr := resp.HTTP[i]; hr != nil && hr.Error == nil && len(hr.Body) > 0 {
            return hr.Body
        }
    }
    return nil
}

// originASN reads ARIN's arin_originas0 extension, which openrdap leaves
// undecoded.
func originASN(body []byte) (string, bool) {
    if len(body) == 0 { return "", false }
    var ext struct {
        Origin []json.RawMessage `json:"arin_originas0_originautnums"`
    }
    if json.Unmarshal(body, &ext) != nil { return "", false }
    for _, raw := range ext.Origin {
        var n int64
        if json.Unmarshal(raw, &n) == nil && n > 0 {
            return strconv.FormatInt(n, 10), true
        }
        var s string
        if json.Unmarshal(raw, &s) == nil {
            if s = strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "AS"); s != "" {
                return s, true
            }
        }
    }
    return "", false
}

func errorText(e *rdap.Error) string {
    text := strings.TrimSpace(e.Title + " " + strings.Join(e.Description, " "))
    if text == "" && e.ErrorCode != nil {
        text = "error code " + strconv.Itoa(int(*e.ErrorCode))
    }
    return text
}
