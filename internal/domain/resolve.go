package domain

import (
	"context"
	"log/slog"
)

// FallbackPlace is returned when reverse geocoding yields nothing usable.
const FallbackPlace = "India"

// Address holds the fields of a reverse-geocoding result relevant to
// place-name resolution.
type Address struct {
	City        string
	State       string
	County      string
	DisplayName string // full formatted address
}

// Geocoder converts coordinates into address details.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (Address, error)
}

// ResolvePlace converts coordinates into a place name. Address fields are
// tried in priority order and the first non-empty one wins; a nil geocoder,
// a geocoding error, or an all-empty result resolves to [FallbackPlace] so
// resolution never fails the caller.
func ResolvePlace(ctx context.Context, lat, lon float64, geocoder Geocoder, logger *slog.Logger) string {
	if geocoder == nil {
		return FallbackPlace
	}

	addr, err := geocoder.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		logger.Warn("reverse geocoding failed, using fallback place",
			"lat", lat,
			"lon", lon,
			"error", err,
		)
		return FallbackPlace
	}

	for _, candidate := range []string{addr.City, addr.State, addr.County, addr.DisplayName} {
		if candidate != "" {
			return candidate
		}
	}
	return FallbackPlace
}
