package whois

import (
    "bytes"
    "encoding/json"
    "errors"
    "fmt"
    "sort"
    "strings"

    "github.com/OmriYahav/Netools/internal/domain"
)

type shape int

const (
    shapeAbsent shape = iota
    shapeSingle
    shapeList
)

// field holds a registry value whose shape is not under our control: it may
// be missing, null, a single value or a list. Every read goes through items.
type field struct {
    shape shape
    raw   []json.RawMessage
}

func (f *field) UnmarshalJSON(b []byte) error {
    b = bytes.TrimSpace(b)
    if len(b) == 0 || bytes.Equal(b, []byte("null")) {
        *f = field{}
        return nil
    }
    if b[0] == '[' {
        var list []json.RawMessage
        if err := json.Unmarshal(b, &list); err != nil { return err }
        kept := list[:0]
        for _, item := range list {
            if t := bytes.TrimSpace(item); len(t) > 0 && !bytes.Equal(t, []byte("null")) {
                kept = append(kept, t)
            }
        }
        *f = field{shape: shapeList, raw: kept}
        return nil
    }
    *f = field{shape: shapeSingle, raw: []json.RawMessage{append(json.RawMessage(nil), b...)}}
    return nil
}

func (f field) items() []json.RawMessage {
    switch f.shape {
    case shapeSingle, shapeList:
        return f.raw
    default:
        return nil
    }
}

// text returns the first non-empty scalar in the field.
func (f field) text() (string, bool) {
    for _, item := range f.items() {
        if s, ok := scalar(item); ok {
            return s, true
        }
    }
    return "", false
}

// scalar renders a JSON string or number as trimmed text.
func scalar(raw json.RawMessage) (string, bool) {
    var s string
    if json.Unmarshal(raw, &s) == nil {
        s = strings.TrimSpace(s)
        return s, s != ""
    }
    var n json.Number
    if json.Unmarshal(raw, &n) == nil {
        return n.String(), true
    }
    return "", false
}

// str renders a JSON string as trimmed text; other kinds are rejected.
func str(raw json.RawMessage) (string, bool) {
    var s string
    if json.Unmarshal(raw, &s) != nil { return "", false }
    s = strings.TrimSpace(s)
    return s, s != ""
}

type lookupDocument struct {
    ASN     field           `json:"asn"`
    Network json.RawMessage `json:"network"`
    Objects json.RawMessage `json:"objects"`
}

type networkRecord struct {
    Name    field `json:"name"`
    Country field `json:"country"`
}

type objectRecord struct {
    Contact *contactRecord `json:"contact"`
}

type contactRecord struct {
    Name  field `json:"name"`
    Email field `json:"email"`
}

// emailRecord is one entry of a contact's email field. Registries disagree
// on the key that carries the address, so both are read.
type emailRecord struct {
    Email field `json:"email"`
    Value field `json:"value"`
}

// Parse extracts a WhoisRecord from a lookup document. Only a document that
// is not a JSON object is an error; every missing or oddly shaped part
// degrades to its default.
func Parse(doc []byte) (domain.WhoisRecord, error) {
    rec := domain.WhoisRecord{
        NetworkName:  domain.NotAvailable,
        Organization: domain.NotAvailable,
        Country:      domain.NotAvailable,
        Emails:       []string{},
    }
    trimmed := bytes.TrimSpace(doc)
    if len(trimmed) == 0 || trimmed[0] != '{' {
        return rec, errors.New("lookup document is not a JSON object")
    }
    var d lookupDocument
    if err := json.Unmarshal(trimmed, &d); err != nil {
        return rec, fmt.Errorf("decode lookup document: %w", err)
    }

    if asn, ok := d.ASN.text(); ok {
        rec.ASN = &asn
    }

    var nw networkRecord
    if json.Unmarshal(d.Network, &nw) == nil {
        if s, ok := nw.Name.text(); ok { rec.NetworkName = s }
        if s, ok := nw.Country.text(); ok { rec.Country = s }
    }

    contacts := orderedContacts(d.Objects)
    if len(contacts) > 0 && contacts[0] != nil {
        if s, ok := contacts[0].Name.text(); ok {
            rec.Organization = s
        }
    }

    set := map[string]struct{}{}
    for _, c := range contacts {
        if c == nil { continue }
        for _, e := range collectEmails(c.Email) {
            set[e] = struct{}{}
        }
    }
    for e := range set {
        rec.Emails = append(rec.Emails, e)
    }
    sort.Strings(rec.Emails)
    return rec, nil
}

// orderedContacts decodes the objects container in document order. An
// object container is keyed by handle; a list is accepted too. Entries that
// do not decode are returned as nil so "first" stays positional.
func orderedContacts(raw json.RawMessage) []*contactRecord {
    raw = bytes.TrimSpace(raw)
    if len(raw) == 0 { return nil }

    var values []json.RawMessage
    switch raw[0] {
    case '[':
        if json.Unmarshal(raw, &values) != nil { return nil }
    case '{':
        dec := json.NewDecoder(bytes.NewReader(raw))
        if _, err := dec.Token(); err != nil { return nil }
        for dec.More() {
            if _, err := dec.Token(); err != nil { break }
            var v json.RawMessage
            if err := dec.Decode(&v); err != nil { break }
            values = append(values, v)
        }
    default:
        return nil
    }

    out := make([]*contactRecord, 0, len(values))
    for _, v := range values {
        var obj objectRecord
        if json.Unmarshal(v, &obj) != nil {
            out = append(out, nil)
            continue
        }
        out = append(out, obj.Contact)
    }
    return out
}

// collectEmails normalizes a contact's email field. Items may be records
// with an email or value key, or bare strings. Only non-empty JSON strings
// count as addresses.
func collectEmails(f field) []string {
    var out []string
    for _, item := range f.items() {
        if s, ok := str(item); ok {
            out = append(out, s)
            continue
        }
        var er emailRecord
        if json.Unmarshal(item, &er) != nil { continue }
        for _, inner := range []field{er.Email, er.Value} {
            for _, v := range inner.items() {
                if s, ok := str(v); ok {
                    out = append(out, s)
                }
            }
        }
    }
    return out
}
