package whois

import (
    "context"
    "errors"
    "reflect"
    "testing"

    "github.com/OmriYahav/Netools/internal/domain"
)

type fakeRDAP struct {
    doc   string
    err   error
    calls int
}

func (f *fakeRDAP) LookupIP(context.Context, domain.Address) ([]byte, error) {
    f.calls++
    return []byte(f.doc), f.err
}

func addr(t *testing.T, s string) domain.Address {
    t.Helper()
    a, err := domain.ParseAddress(s)
    if err != nil { t.Fatal(err) }
    return a
}

func TestLookup_PrivateShortCircuit(t *testing.T) {
    src := &fakeRDAP{err: errors.New("must not be called")}
    svc := New(src, nil)
    for _, ip := range []string{"10.0.0.5", "172.16.0.1", "192.168.1.1", "127.0.0.1"} {
        res, err := svc.Lookup(context.Background(), addr(t, ip))
        if err != nil {
            t.Fatalf("%s: %v", ip, err)
        }
        if !res.Private || res.Record != nil || res.Message == "" {
            t.Fatalf("%s: expected private notice, got %+v", ip, res)
        }
    }
    if src.calls != 0 {
        t.Fatalf("rdap called %d times for private addresses", src.calls)
    }
}

func TestParse_EmailKeysAndDedup(t *testing.T) {
    doc := `{
      "asn": "15169",
      "network": {"name": "GOGL", "country": "US"},
      "objects": {
        "A": {"contact": {"name": "Google LLC", "email": [{"value": "a@x.com"}]}},
        "B": {"contact": {"name": "Other", "email": [{"email": "a@x.com"}, {"email": "b@x.com"}]}}
      }
    }`
    rec, err := Parse([]byte(doc))
    if err != nil { t.Fatal(err) }
    if !reflect.DeepEqual(rec.Emails, []string{"a@x.com", "b@x.com"}) {
        t.Fatalf("emails=%v", rec.Emails)
    }
    if rec.ASN == nil || *rec.ASN != "15169" {
        t.Fatalf("asn=%v", rec.ASN)
    }
    if rec.NetworkName != "GOGL" || rec.Country != "US" || rec.Organization != "Google LLC" {
        t.Fatalf("record=%+v", rec)
    }
}

func TestParse_Defaults(t *testing.T) {
    for _, doc := range []string{`{}`, `{"asn": null, "network": null, "objects": null}`, `{"network": "weird", "objects": "weird"}`} {
        rec, err := Parse([]byte(doc))
        if err != nil {
            t.Fatalf("%s: %v", doc, err)
        }
        if rec.ASN != nil {
            t.Fatalf("%s: asn should be nil", doc)
        }
        if rec.NetworkName != "N/A" || rec.Organization != "N/A" || rec.Country != "N/A" {
            t.Fatalf("%s: defaults missing: %+v", doc, rec)
        }
        if rec.Emails == nil || len(rec.Emails) != 0 {
            t.Fatalf("%s: emails should be empty, got %v", doc, rec.Emails)
        }
    }
}

func TestParse_EmailsMustBeStrings(t *testing.T) {
    doc := `{"asn": 64500, "objects": {
      "A": {"contact": {"email": [{"value": 5}, {"email": true}, 7, {"value": "ok@x.com"}]}},
      "B": {"contact": {"email": {"email": 12.5}}}
    }}`
    rec, err := Parse([]byte(doc))
    if err != nil { t.Fatal(err) }
    if !reflect.DeepEqual(rec.Emails, []string{"ok@x.com"}) {
        t.Fatalf("emails=%v", rec.Emails)
    }
    if rec.ASN == nil || *rec.ASN != "64500" {
        t.Fatalf("numeric asn must still be read, got %v", rec.ASN)
    }
}

func TestParse_EmailShapes(t *testing.T) {
    doc := `{"objects": {
      "single":  {"contact": {"email": {"value": "single@x.com"}}},
      "bare":    {"contact": {"email": "bare@x.com"}},
      "absent":  {"contact": {"name": "No Mail"}},
      "nulls":   {"contact": {"email": [null, {"value": null}, {"email": ""}, {"value": "  "}]}},
      "both":    {"contact": {"email": [{"email": "k1@x.com", "value": "k2@x.com"}]}},
      "nested":  {"contact": {"email": [{"value": ["l1@x.com", "l2@x.com"]}]}},
      "nocontact": {"roles": ["abuse"]},
      "broken":  "not an object"
    }}`
    rec, err := Parse([]byte(doc))
    if err != nil { t.Fatal(err) }
    want := []string{"bare@x.com", "k1@x.com", "k2@x.com", "l1@x.com", "l2@x.com", "single@x.com"}
    if !reflect.DeepEqual(rec.Emails, want) {
        t.Fatalf("emails=%v want %v", rec.Emails, want)
    }
    for _, e := range rec.Emails {
        if e == "" {
            t.Fatalf("empty email collected")
        }
    }
}

func TestParse_OrganizationFromFirstObjectInDocumentOrder(t *testing.T) {
    // Handles sort differently from document order on purpose.
    doc := `{"objects": {"ZZZ": {"contact": {"name": "Registrant Org"}}, "AAA": {"contact": {"name": "Tech Contact"}}}}`
    for i := 0; i < 5; i++ {
        rec, err := Parse([]byte(doc))
        if err != nil { t.Fatal(err) }
        if rec.Organization != "Registrant Org" {
            t.Fatalf("organization=%q", rec.Organization)
        }
    }
}

func TestParse_FirstObjectWithoutName(t *testing.T) {
    doc := `{"objects": {"A": {"contact": null}, "B": {"contact": {"name": "Second"}}}}`
    rec, err := Parse([]byte(doc))
    if err != nil { t.Fatal(err) }
    if rec.Organization != "N/A" {
        t.Fatalf("organization=%q, expected the first object only", rec.Organization)
    }
}

func TestParse_ObjectsAsList(t *testing.T) {
    rec, err := Parse([]byte(`{"asn": 64500, "objects": [{"contact": {"name": "Listed", "email": [{"value": "l@x.com"}]}}]}`))
    if err != nil { t.Fatal(err) }
    if rec.Organization != "Listed" || len(rec.Emails) != 1 || *rec.ASN != "64500" {
        t.Fatalf("record=%+v", rec)
    }
}

func TestParse_Malformed(t *testing.T) {
    for _, doc := range []string{``, `null`, `[]`, `"text"`, `{"asn": `} {
        if _, err := Parse([]byte(doc)); err == nil {
            t.Fatalf("%q: expected error", doc)
        }
    }
}

func TestLookup_FailuresAreUpstream(t *testing.T) {
    svc := New(&fakeRDAP{err: errors.New("connection reset")}, nil)
    _, err := svc.Lookup(context.Background(), addr(t, "8.8.8.8"))
    if domain.KindOf(err) != domain.KindUpstream {
        t.Fatalf("kind=%s", domain.KindOf(err))
    }

    svc = New(&fakeRDAP{doc: "<html>"}, nil)
    _, err = svc.Lookup(context.Background(), addr(t, "8.8.8.8"))
    if domain.KindOf(err) != domain.KindUpstream {
        t.Fatalf("malformed document: kind=%s", domain.KindOf(err))
    }
}

func TestLookup_Success(t *testing.T) {
    svc := New(&fakeRDAP{doc: `{"network": {"name": "NET"}, "objects": {}}`}, nil)
    res, err := svc.Lookup(context.Background(), addr(t, "8.8.8.8"))
    if err != nil { t.Fatal(err) }
    if res.Private || res.Record == nil || res.Record.NetworkName != "NET" {
        t.Fatalf("result=%+v", res)
    }
}
