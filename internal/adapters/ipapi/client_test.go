package ipapi

import (
    "context"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/OmriYahav/Netools/internal/domain"
)

func addr(t *testing.T, s string) domain.Address {
    t.Helper()
    a, err := domain.ParseAddress(s)
    if err != nil { t.Fatal(err) }
    return a
}

func TestGeolocate_PassThrough(t *testing.T) {
    var gotPath string
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        gotPath = r.URL.Path
        w.Header().Set("Content-Type", "application/json")
        _, _ = w.Write([]byte(`{"status":"success","country":"United States","regionName":"Massachusetts","city":"Norwell","isp":"Edgecast","lat":42.15,"lon":-70.82,"query":"93.184.216.34","custom":{"nested":true}}`))
    }))
    defer srv.Close()

    rec, err := New(srv.URL+"/json/", time.Second, nil).Geolocate(context.Background(), addr(t, "93.184.216.34"))
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if gotPath != "/json/93.184.216.34" {
        t.Fatalf("path=%s", gotPath)
    }
    if rec["city"] != "Norwell" || rec["isp"] != "Edgecast" {
        t.Fatalf("fields not passed through: %v", rec)
    }
    if _, ok := rec["custom"].(map[string]any); !ok {
        t.Fatalf("unknown provider fields must survive: %v", rec)
    }
}

func TestGeolocate_Timeout(t *testing.T) {
    release := make(chan struct{})
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        select {
        case <-release:
        case <-r.Context().Done():
        }
    }))
    defer srv.Close()
    defer close(release)

    start := time.Now()
    _, err := New(srv.URL, 100*time.Millisecond, nil).Geolocate(context.Background(), addr(t, "8.8.8.8"))
    if domain.KindOf(err) != domain.KindProbeTimedOut {
        t.Fatalf("expected timeout kind, got %v", err)
    }
    if time.Since(start) > 2*time.Second {
        t.Fatalf("timeout not honored")
    }
}

func TestGeolocate_UpstreamErrors(t *testing.T) {
    cases := map[string]http.HandlerFunc{
        "status": func(w http.ResponseWriter, r *http.Request) {
            http.Error(w, "quota exceeded", http.StatusTooManyRequests)
        },
        "malformed": func(w http.ResponseWriter, r *http.Request) {
            _, _ = w.Write([]byte(`<html>oops</html>`))
        },
        "array": func(w http.ResponseWriter, r *http.Request) {
            _, _ = w.Write([]byte(`[1,2]`))
        },
        "inband": func(w http.ResponseWriter, r *http.Request) {
            _, _ = w.Write([]byte(`{"status":"fail","message":"reserved range","query":"8.8.8.8"}`))
        },
    }
    for name, h := range cases {
        t.Run(name, func(t *testing.T) {
            srv := httptest.NewServer(h)
            defer srv.Close()
            _, err := New(srv.URL, time.Second, nil).Geolocate(context.Background(), addr(t, "8.8.8.8"))
            if domain.KindOf(err) != domain.KindUpstream {
                t.Fatalf("expected upstream error, got %v", err)
            }
        })
    }
}

func TestGeolocate_CarriesProviderText(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        http.Error(w, "quota exceeded", http.StatusTooManyRequests)
    }))
    defer srv.Close()
    _, err := New(srv.URL, time.Second, nil).Geolocate(context.Background(), addr(t, "8.8.8.8"))
    if err == nil || !strings.Contains(err.Error(), "quota exceeded") || !strings.Contains(err.Error(), "429") {
        t.Fatalf("provider text lost: %v", err)
    }
}
