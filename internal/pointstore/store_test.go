package pointstore_test

import (
	"testing"
	"time"

	"github.com/chaisql/locationhistory/internal/filter"
	"github.com/chaisql/locationhistory/internal/pointstore"
	"github.com/chaisql/locationhistory/protocol"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2021, 6, 1, 10, 0, 0, 0, time.UTC)

func entryAt(d time.Duration, lng, lat float32) *protocol.Entry {
	return &protocol.Entry{
		Location: protocol.Location{
			Timestamp: base.Add(d),
			Longitude: lng,
			Latitude:  lat,
			Accuracy:  int32(d / time.Minute),
		},
		Source: protocol.SourceWifi,
	}
}

func openStore(t *testing.T, batchSize int) *pointstore.Store {
	t.Helper()

	s, err := pointstore.Open("", &pointstore.Options{InMemory: true, BatchSize: batchSize})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func scanAll(t *testing.T, s *pointstore.Store, r filter.Range) []pointstore.Point {
	t.Helper()

	var points []pointstore.Point
	err := s.Scan(r, func(p *pointstore.Point) error {
		points = append(points, *p)
		return nil
	})
	require.NoError(t, err)
	return points
}

func TestStorePutScan(t *testing.T) {
	s := openStore(t, 0)

	// inserted out of order
	require.NoError(t, s.Put(entryAt(2*time.Minute, 18.2, 59.2)))
	require.NoError(t, s.Put(entryAt(0, 18.0, 59.0)))
	require.NoError(t, s.Put(entryAt(time.Minute, 18.1, 59.1)))

	// not flushed yet
	n, err := s.Count(filter.Range{})
	require.NoError(t, err)
	require.Zero(t, n)

	require.NoError(t, s.Flush())

	points := scanAll(t, s, filter.Range{})
	require.Len(t, points, 3)
	for i, p := range points {
		require.True(t, base.Add(time.Duration(i)*time.Minute).Equal(p.Time))
		require.Equal(t, int32(i), p.Accuracy)
		require.Equal(t, protocol.SourceWifi, p.Source)
	}
	require.Equal(t, protocol.LngLat{Lng: 18.1, Lat: 59.1}, points[1].LngLat)
}

func TestStoreRange(t *testing.T) {
	s := openStore(t, 0)
	for i := 0; i < 10; i++ {
		require.NoError(t, s.Put(entryAt(time.Duration(i)*time.Minute, 1, 1)))
	}
	require.NoError(t, s.Flush())

	r := filter.Range{Since: base.Add(2 * time.Minute), Until: base.Add(5 * time.Minute)}
	points := scanAll(t, s, r)
	require.Len(t, points, 3)
	require.Equal(t, int32(2), points[0].Accuracy)
	require.Equal(t, int32(4), points[2].Accuracy)

	n, err := s.Count(filter.Range{Since: base.Add(8 * time.Minute)})
	require.NoError(t, err)
	require.Equal(t, 2, n)

	n, err = s.Count(filter.Range{Until: base})
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestStoreIdempotent(t *testing.T) {
	s := openStore(t, 2)

	for round := 0; round < 2; round++ {
		require.NoError(t, s.Put(entryAt(0, 1, 1)))
		require.NoError(t, s.Put(entryAt(0, 2, 2)))
		require.NoError(t, s.Put(entryAt(time.Minute, 1, 1)))
	}
	require.NoError(t, s.Flush())

	n, err := s.Count(filter.Range{})
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

func TestStoreKeepsOffset(t *testing.T) {
	s := openStore(t, 0)

	e := entryAt(0, 1, 1)
	e.Timestamp = time.Date(2021, 6, 1, 12, 0, 0, 123456000, time.FixedZone("", 2*3600))
	require.NoError(t, s.Put(e))

	e = entryAt(time.Hour, -1, -1)
	e.Timestamp = time.Date(2021, 6, 1, 3, 0, 0, 0, time.FixedZone("", -8*3600))
	require.NoError(t, s.Put(e))
	require.NoError(t, s.Flush())

	points := scanAll(t, s, filter.Range{})
	require.Len(t, points, 2)
	require.Equal(t, 12, points[0].Time.Hour())
	require.Equal(t, 123456000, points[0].Time.Nanosecond())
	require.Equal(t, 3, points[1].Time.Hour())
	_, offset := points[1].Time.Zone()
	require.Equal(t, -8*3600, offset)
}

func TestStoreScanStops(t *testing.T) {
	s := openStore(t, 0)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Put(entryAt(time.Duration(i)*time.Minute, 1, 1)))
	}
	require.NoError(t, s.Flush())

	stop := errors.New("stop")
	var calls int
	err := s.Scan(filter.Range{}, func(*pointstore.Point) error {
		calls++
		return stop
	})
	require.ErrorIs(t, err, stop)
	require.Equal(t, 1, calls)
}

func TestStoreClosed(t *testing.T) {
	s, err := pointstore.Open("", &pointstore.Options{InMemory: true})
	require.NoError(t, err)
	require.NoError(t, s.Put(entryAt(0, 1, 1)))
	require.NoError(t, s.Close())

	require.ErrorIs(t, s.Put(entryAt(0, 1, 1)), pointstore.ErrClosed)
	_, err = s.Count(filter.Range{})
	require.ErrorIs(t, err, pointstore.ErrClosed)
	require.ErrorIs(t, s.Close(), pointstore.ErrClosed)
}

func TestStoreReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := pointstore.Open(dir, nil)
	require.NoError(t, err)
	require.NoError(t, s.Put(entryAt(0, 1, 1)))
	require.NoError(t, s.Close())

	s, err = pointstore.Open(dir, nil)
	require.NoError(t, err)
	defer s.Close()

	n, err := s.Count(filter.Range{})
	require.NoError(t, err)
	require.Equal(t, 1, n)
}
