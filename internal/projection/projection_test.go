package projection_test

import (
	"testing"

	"github.com/chaisql/locationhistory/internal/projection"
	"github.com/chaisql/locationhistory/protocol"
	"github.com/stretchr/testify/require"
)

var stockholm = projection.CroppedWebMercator{
	Width:     3840,
	Height:    2160,
	LngLeft:   17.7499,
	LngRight:  18.3808,
	LatBottom: 59.2226,
}

func TestProject(t *testing.T) {
	x, y := stockholm.Project(protocol.LngLat{Lng: 17.7499, Lat: 59.2226})
	require.InDelta(t, 0, x, 1e-3)
	require.InDelta(t, 2160, y, 1e-3)

	x, _ = stockholm.Project(protocol.LngLat{Lng: (17.7499 + 18.3808) / 2, Lat: 59.3})
	require.InDelta(t, 1920, x, 0.5)

	// north is up
	_, y1 := stockholm.Project(protocol.LngLat{Lng: 18, Lat: 59.3})
	_, y2 := stockholm.Project(protocol.LngLat{Lng: 18, Lat: 59.4})
	require.Less(t, y2, y1)
}

func TestProjectInt(t *testing.T) {
	tests := []struct {
		name string
		p    protocol.LngLat
		ok   bool
	}{
		{"inside", protocol.LngLat{Lng: 18.0686, Lat: 59.3293}, true},
		{"bottom edge", protocol.LngLat{Lng: 18, Lat: 59.2226}, false},
		{"west", protocol.LngLat{Lng: 17.7, Lat: 59.3}, false},
		{"east", protocol.LngLat{Lng: 18.4, Lat: 59.3}, false},
		{"south", protocol.LngLat{Lng: 18, Lat: 59.2}, false},
		{"north", protocol.LngLat{Lng: 18, Lat: 60}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := stockholm.ProjectInt(tt.p)
			require.Equal(t, tt.ok, ok)
			if ok {
				require.GreaterOrEqual(t, x, 0)
				require.Less(t, x, stockholm.Width)
				require.GreaterOrEqual(t, y, 0)
				require.Less(t, y, stockholm.Height)
			}
		})
	}
}
