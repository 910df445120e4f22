// Package geoip answers geolocation and ASN questions from local MaxMind
// GeoLite2 databases.
package geoip

import (
    "context"
    "fmt"
    "net"

    "github.com/oschwald/geoip2-golang"

    "github.com/OmriYahav/Netools/internal/domain"
)

// CityDB implements ports.Geolocator on a GeoLite2-City database. The record
// mimics the ip-api.com field names so clients see one shape.
type CityDB struct {
    db *geoip2.Reader
}

func OpenCity(path string) (*CityDB, error) {
    db, err := geoip2.Open(path)
    if err != nil {
        return nil, fmt.Errorf("open city database %s: %w", path, err)
    }
    return &CityDB{db: db}, nil
}

func (c *CityDB) Close() error { return c.db.Close() }

func (c *CityDB) Geolocate(_ context.Context, addr domain.Address) (domain.GeoRecord, error) {
    rec, err := c.db.City(net.IP(addr.Addr().AsSlice()))
    if err != nil {
        return nil, domain.Wrap(domain.KindUpstream, err)
    }
    if rec.Country.IsoCode == "" && rec.City.GeoNameID == 0 {
        return nil, domain.Errorf(domain.KindUpstream, "no geolocation data for %s", addr)
    }
    out := domain.GeoRecord{
        "status":      "success",
        "query":       addr.String(),
        "country":     rec.Country.Names["en"],
        "countryCode": rec.Country.IsoCode,
        "city":        rec.City.Names["en"],
        "lat":         rec.Location.Latitude,
        "lon":         rec.Location.Longitude,
        "timezone":    rec.Location.TimeZone,
        "zip":         rec.Postal.Code,
    }
    if len(rec.Subdivisions) > 0 {
        out["region"] = rec.Subdivisions[0].IsoCode
        out["regionName"] = rec.Subdivisions[0].Names["en"]
    }
    return out, nil
}

// ASNDB implements ports.ASNSource on a GeoLite2-ASN database.
type ASNDB struct {
    db *geoip2.Reader
}

func OpenASN(path string) (*ASNDB, error) {
    db, err := geoip2.Open(path)
    if err != nil {
        return nil, fmt.Errorf("open asn database %s: %w", path, err)
    }
    return &ASNDB{db: db}, nil
}

func (a *ASNDB) Close() error { return a.db.Close() }

// ASN returns the decimal AS number, or ok=false when the database has none.
func (a *ASNDB) ASN(addr domain.Address) (string, bool) {
    rec, err := a.db.ASN(net.IP(addr.Addr().AsSlice()))
    if err != nil || rec == nil || rec.AutonomousSystemNumber == 0 {
        return "", false
    }
    return fmt.Sprintf("%d", rec.AutonomousSystemNumber), true
}
