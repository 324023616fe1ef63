package protocol

import (
	"github.com/chaisql/locationhistory/decode"
)

// AccessPoint is a wifi access point seen during a scan.
type AccessPoint struct {
	Mac MacAddr
	// Signal strength, in dBm.
	Strength     int8
	FrequencyMHz uint16
	IsConnected  bool
}

// WifiScan is the result of a wifi scan.
type WifiScan struct {
	// AccessPoints is nil when the scan carries no access point list.
	AccessPoints []AccessPoint
}

var accessPointShape = decode.NewShape("AccessPoint", decode.Strict,
	decode.RequiredField("mac"),
	decode.RequiredField("strength"),
	decode.RequiredField("frequencyMhz"),
	decode.OptionalField("isConnected"),
)

var wifiScanShape = decode.NewShape("WifiScan", decode.Permissive,
	decode.OptionalField("accessPoints"),
)

// Decode reads an access point object from src.
func (ap *AccessPoint) Decode(src decode.Source) error {
	*ap = AccessPoint{}

	return accessPointShape.Decode(src, func(field string) (err error) {
		switch field {
		case "mac":
			ap.Mac, err = readMacAddr(src)
		case "strength":
			ap.Strength, err = decode.Int[int8](src)
		case "frequencyMhz":
			ap.FrequencyMHz, err = decode.Uint[uint16](src)
		case "isConnected":
			ap.IsConnected, err = decode.Bool(src)
		}
		return err
	})
}

// Decode reads a wifi scan object from src.
func (w *WifiScan) Decode(src decode.Source) error {
	*w = WifiScan{}

	return wifiScanShape.Decode(src, func(field string) (err error) {
		if field == "accessPoints" {
			w.AccessPoints, err = decode.OptionalSlice(src, (*AccessPoint).Decode)
		}
		return err
	})
}
