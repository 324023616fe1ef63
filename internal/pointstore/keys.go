package pointstore

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/chaisql/locationhistory/protocol"
	"github.com/cockroachdb/errors"
)

const (
	pointPrefix byte = 'p'

	// prefix, timestamp, fingerprint
	keySize = 1 + 8 + 8
	// lng, lat, accuracy, source, utc offset
	valueSize = 4 + 4 + 4 + 1 + 4
)

var errCorrupted = errors.New("corrupted point")

// appendInt64 appends x so that encoded values sort like the integers.
func appendInt64(buf []byte, x int64) []byte {
	return binary.BigEndian.AppendUint64(buf, uint64(x)+math.MaxInt64+1)
}

func decodeInt64(buf []byte) int64 {
	return int64(binary.BigEndian.Uint64(buf) - math.MaxInt64 - 1)
}

// timeKey returns the smallest key of the points recorded at t or later.
func timeKey(t time.Time) []byte {
	return appendInt64([]byte{pointPrefix}, t.UnixMicro())
}

// fingerprint identifies the entries of a given instant, so indexing the
// same export twice stores each point once.
func fingerprint(e *protocol.Entry) uint64 {
	var buf [12]byte
	binary.BigEndian.PutUint32(buf[0:], math.Float32bits(e.Longitude))
	binary.BigEndian.PutUint32(buf[4:], math.Float32bits(e.Latitude))
	binary.BigEndian.PutUint32(buf[8:], uint32(e.DeviceTag))
	return xxhash.Sum64(buf[:])
}

func encodeKey(buf []byte, e *protocol.Entry) []byte {
	buf = append(buf, pointPrefix)
	buf = appendInt64(buf, e.Timestamp.UnixMicro())
	return binary.BigEndian.AppendUint64(buf, fingerprint(e))
}

func encodeValue(buf []byte, e *protocol.Entry) []byte {
	_, offset := e.Timestamp.Zone()

	buf = binary.BigEndian.AppendUint32(buf, math.Float32bits(e.Longitude))
	buf = binary.BigEndian.AppendUint32(buf, math.Float32bits(e.Latitude))
	buf = binary.BigEndian.AppendUint32(buf, uint32(e.Accuracy))
	buf = append(buf, byte(e.Source))
	return binary.BigEndian.AppendUint32(buf, uint32(int32(offset)))
}

func decodePoint(k, v []byte) (Point, error) {
	if len(k) != keySize || k[0] != pointPrefix || len(v) != valueSize {
		return Point{}, errors.WithStack(errCorrupted)
	}

	var p Point
	offset := int(int32(binary.BigEndian.Uint32(v[13:])))
	p.Time = time.UnixMicro(decodeInt64(k[1:])).In(zone(offset))
	p.LngLat.Lng = math.Float32frombits(binary.BigEndian.Uint32(v[0:]))
	p.LngLat.Lat = math.Float32frombits(binary.BigEndian.Uint32(v[4:]))
	p.Accuracy = int32(binary.BigEndian.Uint32(v[8:]))
	p.Source = protocol.Source(v[12])
	return p, nil
}

func zone(offset int) *time.Location {
	if offset == 0 {
		return time.UTC
	}
	return time.FixedZone("", offset)
}
