// Package render draws positions on map images.
package render

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/chaisql/locationhistory/internal/pointstore"
	"github.com/chaisql/locationhistory/internal/projection"
	"github.com/chaisql/locationhistory/protocol"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const secondsPerDay = 24 * 60 * 60

// View is an image of a map rectangle.
type View struct {
	Name       string
	projection projection.CroppedWebMercator
	image      *image.RGBA
	drawn      int
}

// NewView returns a blank white view drawn with p.
func NewView(name string, p projection.CroppedWebMercator) *View {
	img := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	return &View{
		Name:       name,
		projection: p,
		image:      img,
	}
}

// Image returns the image of the view.
func (v *View) Image() *image.RGBA {
	return v.image
}

// Drawn returns the number of positions that fell inside the view.
func (v *View) Drawn() int {
	return v.drawn
}

// Put draws a cross at pos, coloured by the time of day of t in its own
// location. It reports whether pos is inside the view.
func (v *View) Put(pos protocol.LngLat, t time.Time) bool {
	x, y, ok := v.projection.ProjectInt(pos)
	if !ok {
		return false
	}

	h, m, s := t.Clock()
	c := rainbow.at(float64(h*3600+m*60+s) / secondsPerDay)
	drawCross(v.image, x, y, c)
	v.drawn++
	return true
}

// PutEntry draws the position of e.
func (v *View) PutEntry(e *protocol.Entry) bool {
	return v.Put(e.LngLat(), e.Timestamp)
}

// PutPoint draws a point read from a point store.
func (v *View) PutPoint(p *pointstore.Point) bool {
	return v.Put(p.LngLat, p.Time)
}

// drawCross colours the pixel at x, y and its four neighbours. Pixels outside
// of the image are left out.
func drawCross(img *image.RGBA, x, y int, c color.RGBA) {
	img.SetRGBA(x, y, c)
	img.SetRGBA(x-1, y, c)
	img.SetRGBA(x+1, y, c)
	img.SetRGBA(x, y-1, c)
	img.SetRGBA(x, y+1, c)
}

// WritePNG encodes the view to path.
func (v *View) WritePNG(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() {
		err = errors.CombineErrors(err, f.Close())
	}()

	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	return errors.Wrapf(enc.Encode(f, v.image), "encode %s", path)
}

// Views are drawn together.
type Views []*View

// PutEntry draws e on every view.
func (vs Views) PutEntry(e *protocol.Entry) {
	for _, v := range vs {
		v.PutEntry(e)
	}
}

// PutPoint draws p on every view.
func (vs Views) PutPoint(p *pointstore.Point) {
	for _, v := range vs {
		v.PutPoint(p)
	}
}

// FileName returns the name of the image of the i-th view.
func (vs Views) FileName(i int) string {
	name := vs[i].Name
	if name == "" {
		name = strconv.Itoa(i)
	}
	return name + ".png"
}

// Save writes every view to dir, creating it if needed, and returns the
// written paths. Views are encoded concurrently.
func (vs Views) Save(ctx context.Context, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.WithStack(err)
	}

	paths := make([]string, len(vs))
	g, ctx := errgroup.WithContext(ctx)
	for i, v := range vs {
		i, v := i, v
		paths[i] = filepath.Join(dir, vs.FileName(i))

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			if err := v.WritePNG(paths[i]); err != nil {
				return err
			}

			log.Info().Str("view", v.Name).Int("points", v.drawn).Str("path", paths[i]).Msg("saved view")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
