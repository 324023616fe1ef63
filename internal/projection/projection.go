// Package projection maps geographic coordinates to image pixels.
package projection

import (
	"math"

	"github.com/chaisql/locationhistory/protocol"
)

// CroppedWebMercator is a Web Mercator projection cropped to a rectangle.
// The left and right edges are given by longitudes and the bottom edge by a
// latitude. The top edge follows from the aspect ratio of the image.
type CroppedWebMercator struct {
	Width     int
	Height    int
	LngLeft   float32
	LngRight  float32
	LatBottom float32
}

func lnSin(lat float64) float64 {
	s := math.Sin(lat * math.Pi / 180)
	return math.Log((1 + s) / (1 - s))
}

// Project returns the pixel coordinates of p. The origin is the top-left
// corner of the image; the result can lie outside of it.
func (m *CroppedWebMercator) Project(p protocol.LngLat) (x, y float32) {
	pxPerDegree := float64(m.Width) / float64(m.LngRight-m.LngLeft)
	worldWidth := pxPerDegree * 360 / (2 * math.Pi)
	offsetY := worldWidth / 2 * lnSin(float64(m.LatBottom))

	x = float32((float64(p.Lng) - float64(m.LngLeft)) * pxPerDegree)
	y = float32(float64(m.Height) - (worldWidth/2*lnSin(float64(p.Lat)) - offsetY))
	return x, y
}

// ProjectInt is like Project but truncates the result to a pixel.
// It returns false if p falls outside of the image.
func (m *CroppedWebMercator) ProjectInt(p protocol.LngLat) (x, y int, ok bool) {
	fx, fy := m.Project(p)
	if fx < 0 || fx >= float32(m.Width) || fy < 0 || fy >= float32(m.Height) {
		return 0, 0, false
	}

	return int(fx), int(fy), true
}
