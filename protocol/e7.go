package protocol

import (
	"github.com/chaisql/locationhistory/decode"
)

// e7Scale is the fixed-point factor of latitudeE7 and longitudeE7.
const e7Scale = 10_000_000

// E7ToDegrees converts a fixed-point coordinate to degrees.
func E7ToDegrees(v int32) float32 {
	return float32(v) / e7Scale
}

func readE7(src decode.Source) (float32, error) {
	v, err := decode.Int[int32](src)
	if err != nil {
		return 0, err
	}

	return E7ToDegrees(v), nil
}
