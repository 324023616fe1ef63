package protocol

import (
	"time"

	"github.com/chaisql/locationhistory/decode"
)

// LocationMetadata holds the wifi scans made around the time of a fix.
type LocationMetadata struct {
	WifiScan       *WifiScan
	ActiveWifiScan *WifiScan
	Timestamp      time.Time
}

var locationMetadataShape = decode.NewShape("LocationMetadata", decode.Strict,
	decode.OptionalField("wifiScan"),
	decode.OptionalField("activeWifiScan"),
	decode.RequiredField("timestamp"),
)

// Decode reads a location metadata object from src.
func (m *LocationMetadata) Decode(src decode.Source) error {
	*m = LocationMetadata{}

	return locationMetadataShape.Decode(src, func(field string) (err error) {
		switch field {
		case "wifiScan":
			err = decode.OptionalStruct(src, &m.WifiScan, (*WifiScan).Decode)
		case "activeWifiScan":
			err = decode.OptionalStruct(src, &m.ActiveWifiScan, (*WifiScan).Decode)
		case "timestamp":
			m.Timestamp, err = readTimestamp(src)
		}
		return err
	})
}
