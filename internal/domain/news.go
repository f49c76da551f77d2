package domain

import (
	"errors"
	"math"
	"time"
)

// ErrMissingLocation is the single caller error: neither a location name
// nor a coordinate pair was supplied.
var ErrMissingLocation = errors.New("either a location name or coordinates must be provided")

// LocationQuery describes one news lookup. Either Location is non-empty or
// both Lat and Lon are set; Validate enforces this before any downstream
// call is made.
type LocationQuery struct {
	Location     string
	Lat          *float64
	Lon          *float64
	LookbackDays int
	MaxResults   int
}

// Validate returns ErrMissingLocation when the query identifies no place.
func (q LocationQuery) Validate() error {
	if q.Location == "" && (q.Lat == nil || q.Lon == nil) {
		return ErrMissingLocation
	}
	return nil
}

// HasCoordinates reports whether both latitude and longitude are present.
func (q LocationQuery) HasCoordinates() bool {
	return q.Lat != nil && q.Lon != nil
}

// RawEntry is one syndicated feed entry before filtering and
// classification. Published is nil when the feed carried no parseable
// publish time.
type RawEntry struct {
	Title     string
	Link      string
	Published *time.Time
}

// NewsItem is one classified headline in the response list. Immutable once
// assembled; the JSON keys are the service's public wire format.
type NewsItem struct {
	Headline  string     `json:"headline"`
	Link      string     `json:"link"`
	Published *time.Time `json:"published"`
	Sentiment string     `json:"sentiment"`
	Score     float64    `json:"score"`
	Source    Source     `json:"model"`
}

// RoundScore rounds a confidence score to 3 decimals for output.
func RoundScore(s float64) float64 {
	return math.Round(s*1000) / 1000
}
