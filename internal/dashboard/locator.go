package dashboard

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/kelvins/geocoder"
)

// StaticLocator always reports the same position.
type StaticLocator struct {
	Lat, Lon float64
}

func (l StaticLocator) Locate(context.Context) (float64, float64, error) {
	return l.Lat, l.Lon, nil
}

// geocodeFunc matches geocoder.Geocoding.
type geocodeFunc func(geocoder.Address) (geocoder.Location, error)

// geocoderKeyMu guards the package-level key of the geocoder library.
var geocoderKeyMu sync.Mutex

// GeocoderLocator resolves a configured address with the Google geocoding
// API. It stands in for device geolocation on a terminal.
type GeocoderLocator struct {
	apiKey  string
	address geocoder.Address
	geocode geocodeFunc
}

// NewGeocoderLocator parses address as "city[, state][, country]".
func NewGeocoderLocator(apiKey, address string) *GeocoderLocator {
	return &GeocoderLocator{
		apiKey:  apiKey,
		address: parseAddress(address),
		geocode: geocoder.Geocoding,
	}
}

func (l *GeocoderLocator) Locate(ctx context.Context) (float64, float64, error) {
	if l.apiKey == "" || l.address.City == "" {
		return 0, 0, fmt.Errorf("%w: geocoder is not configured", ErrGeolocationDenied)
	}

	type result struct {
		loc geocoder.Location
		err error
	}
	done := make(chan result, 1)

	go func() {
		geocoderKeyMu.Lock()
		defer geocoderKeyMu.Unlock()

		geocoder.ApiKey = l.apiKey
		loc, err := l.geocode(l.address)
		done <- result{loc: loc, err: err}
	}()

	select {
	case <-ctx.Done():
		return 0, 0, fmt.Errorf("%w: %v", ErrGeolocationDenied, ctx.Err())
	case r := <-done:
		if r.err != nil {
			return 0, 0, fmt.Errorf("%w: %v", ErrGeolocationDenied, r.err)
		}
		return r.loc.Latitude, r.loc.Longitude, nil
	}
}

func parseAddress(s string) geocoder.Address {
	var parts []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}

	var addr geocoder.Address
	switch len(parts) {
	case 0:
	case 1:
		addr.City = parts[0]
	case 2:
		addr.City, addr.Country = parts[0], parts[1]
	default:
		addr.City = parts[0]
		addr.State = strings.Join(parts[1:len(parts)-1], ", ")
		addr.Country = parts[len(parts)-1]
	}
	return addr
}
