package nominatim

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelsprite/news-sentiment-service/internal/domain"
)

// --- mock for cache tests ---

type countingGeocoder struct {
	calls int
	addr  domain.Address
	err   error
}

func (m *countingGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (domain.Address, error) {
	m.calls++
	return m.addr, m.err
}

// --- CachedGeocoder tests ---

func TestCachedGeocoder_CacheHit(t *testing.T) {
	inner := &countingGeocoder{addr: domain.Address{City: "Panaji", DisplayName: "Panaji, Goa, India"}}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	a1, err := cached.ReverseGeocode(context.Background(), 15.4909, 73.8278)
	require.NoError(t, err)
	assert.Equal(t, "Panaji", a1.City)

	a2, err := cached.ReverseGeocode(context.Background(), 15.4909, 73.8278)
	require.NoError(t, err)
	assert.Equal(t, a1, a2)

	assert.Equal(t, 1, inner.calls, "should only call inner once")
}

func TestCachedGeocoder_DistinctCoordinatesMiss(t *testing.T) {
	inner := &countingGeocoder{addr: domain.Address{City: "Panaji"}}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	_, err := cached.ReverseGeocode(context.Background(), 15.4909, 73.8278)
	require.NoError(t, err)
	_, err = cached.ReverseGeocode(context.Background(), 19.0760, 72.8777)
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedGeocoder_EmptyResultNotCached(t *testing.T) {
	inner := &countingGeocoder{}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	_, err := cached.ReverseGeocode(context.Background(), 0.0, 0.0)
	require.NoError(t, err)
	_, err = cached.ReverseGeocode(context.Background(), 0.0, 0.0)
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls, "empty results should be retried")
}

func TestCachedGeocoder_ErrorNotCached(t *testing.T) {
	inner := &countingGeocoder{err: errors.New("network down")}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	_, err := cached.ReverseGeocode(context.Background(), 15.4909, 73.8278)
	require.Error(t, err)
	_, err = cached.ReverseGeocode(context.Background(), 15.4909, 73.8278)
	require.Error(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedGeocoder_EvictsLeastRecentlyUsed(t *testing.T) {
	inner := &countingGeocoder{addr: domain.Address{City: "Somewhere"}}
	cached := NewCachedGeocoder(inner, 2, testMetrics())

	ctx := context.Background()
	_, _ = cached.ReverseGeocode(ctx, 1.0, 1.0) // miss, cached
	_, _ = cached.ReverseGeocode(ctx, 2.0, 2.0) // miss, cached
	_, _ = cached.ReverseGeocode(ctx, 1.0, 1.0) // hit, 1.0 now MRU
	_, _ = cached.ReverseGeocode(ctx, 3.0, 3.0) // miss, evicts 2.0
	_, _ = cached.ReverseGeocode(ctx, 2.0, 2.0) // miss again

	assert.Equal(t, 4, inner.calls)
}
