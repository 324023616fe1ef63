package protocol

import (
	"time"

	"github.com/chaisql/locationhistory/decode"
)

// LngLat is a geographic point, in degrees.
type LngLat struct {
	Lng float32
	Lat float32
}

// Location is a timestamped position fix.
type Location struct {
	Timestamp time.Time
	// Latitude in degrees, decoded from latitudeE7.
	Latitude float32
	// Longitude in degrees, decoded from longitudeE7.
	Longitude float32
	// Accuracy radius, in meters.
	Accuracy int32
}

var locationFields = []decode.Field{
	decode.RequiredField("timestamp"),
	decode.RequiredField("latitudeE7"),
	decode.RequiredField("longitudeE7"),
	decode.RequiredField("accuracy"),
}

var locationShape = decode.NewShape("Location", decode.Strict, locationFields...)

// LngLat returns the position of the fix.
func (l *Location) LngLat() LngLat {
	return LngLat{Lng: l.Longitude, Lat: l.Latitude}
}

// Decode reads a location object from src.
func (l *Location) Decode(src decode.Source) error {
	*l = Location{}

	return locationShape.Decode(src, func(field string) error {
		return l.decodeField(src, field)
	})
}

func (l *Location) decodeField(src decode.Source, field string) (err error) {
	switch field {
	case "timestamp":
		l.Timestamp, err = readTimestamp(src)
	case "latitudeE7":
		l.Latitude, err = readE7(src)
	case "longitudeE7":
		l.Longitude, err = readE7(src)
	case "accuracy":
		l.Accuracy, err = decode.Int[int32](src)
	default:
		err = src.Skip()
	}

	return err
}
