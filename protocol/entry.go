package protocol

import (
	"time"

	"github.com/chaisql/locationhistory/decode"
)

// Entry is one element of the locations array.
//
// Optional fields are nil when absent or null.
type Entry struct {
	Location

	// Velocity in meters per second.
	Velocity *uint32
	// Heading in degrees.
	Heading           *uint16
	Source            Source
	DeviceTag         int32
	Activity          []Activity
	Altitude          *int32
	VerticalAccuracy  *int32
	DeviceDesignation *DeviceDesignation
	ActiveWifiScan    *WifiScan
	PlatformType      *PlatformType
	OSLevel           *uint8
	ServerTimestamp   *time.Time
	DeviceTimestamp   *time.Time
	BatteryCharging   *bool
	FormFactor        *FormFactor
	LocationMetadata  []LocationMetadata
	InferredLocation  []Location
	PlaceID           *string
}

var entryShape = decode.NewShape("Entry", decode.Strict, append(locationFields,
	decode.OptionalField("velocity"),
	decode.OptionalField("heading"),
	decode.RequiredField("source"),
	decode.RequiredField("deviceTag"),
	decode.OptionalField("activity"),
	decode.OptionalField("altitude"),
	decode.OptionalField("verticalAccuracy"),
	decode.OptionalField("deviceDesignation"),
	decode.OptionalField("activeWifiScan"),
	decode.OptionalField("platformType"),
	decode.OptionalField("osLevel"),
	decode.OptionalField("serverTimestamp"),
	decode.OptionalField("deviceTimestamp"),
	decode.OptionalField("batteryCharging"),
	decode.OptionalField("formFactor"),
	decode.OptionalField("locationMetadata"),
	decode.OptionalField("inferredLocation"),
	decode.OptionalField("placeId"),
)...)

// Decode reads an entry object from src, replacing the content of e.
func (e *Entry) Decode(src decode.Source) error {
	*e = Entry{}

	return entryShape.Decode(src, func(field string) error {
		return e.decodeField(src, field)
	})
}

func (e *Entry) decodeField(src decode.Source, field string) (err error) {
	switch field {
	case "timestamp", "latitudeE7", "longitudeE7", "accuracy":
		err = e.Location.decodeField(src, field)
	case "velocity":
		err = decode.Optional(src, &e.Velocity, decode.Uint[uint32])
	case "heading":
		err = decode.Optional(src, &e.Heading, decode.Uint[uint16])
	case "source":
		e.Source, err = sourceVariants.Decode(src)
	case "deviceTag":
		e.DeviceTag, err = decode.Int[int32](src)
	case "activity":
		e.Activity, err = decode.OptionalSlice(src, (*Activity).Decode)
	case "altitude":
		err = decode.Optional(src, &e.Altitude, decode.Int[int32])
	case "verticalAccuracy":
		err = decode.Optional(src, &e.VerticalAccuracy, decode.Int[int32])
	case "deviceDesignation":
		err = decode.Optional(src, &e.DeviceDesignation, deviceDesignationVariants.Decode)
	case "activeWifiScan":
		err = decode.OptionalStruct(src, &e.ActiveWifiScan, (*WifiScan).Decode)
	case "platformType":
		err = decode.Optional(src, &e.PlatformType, platformTypeVariants.Decode)
	case "osLevel":
		err = decode.Optional(src, &e.OSLevel, decode.Uint[uint8])
	case "serverTimestamp":
		err = decode.Optional(src, &e.ServerTimestamp, readTimestamp)
	case "deviceTimestamp":
		err = decode.Optional(src, &e.DeviceTimestamp, readTimestamp)
	case "batteryCharging":
		err = decode.Optional(src, &e.BatteryCharging, decode.Bool)
	case "formFactor":
		err = decode.Optional(src, &e.FormFactor, formFactorVariants.Decode)
	case "locationMetadata":
		e.LocationMetadata, err = decode.OptionalSlice(src, (*LocationMetadata).Decode)
	case "inferredLocation":
		e.InferredLocation, err = decode.OptionalSlice(src, (*Location).Decode)
	case "placeId":
		err = decode.Optional(src, &e.PlaceID, decode.String)
	default:
		err = src.Skip()
	}

	return err
}
