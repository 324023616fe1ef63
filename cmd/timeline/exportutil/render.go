package exportutil

import (
	"context"

	"github.com/chaisql/locationhistory/internal/config"
	"github.com/chaisql/locationhistory/internal/filter"
	"github.com/chaisql/locationhistory/internal/pointstore"
	"github.com/chaisql/locationhistory/internal/render"
	"github.com/chaisql/locationhistory/protocol"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
)

// RenderOptions configure Render.
type RenderOptions struct {
	ReadOptions
	// Input is the export to draw. It is ignored when Store is set.
	Input string
	// Store is the path of a point store built by Index.
	Store string
	// Output is the directory receiving the images.
	Output string
	Views  []config.View
}

// NewViews returns a blank view for every view configuration.
func NewViews(cfgs []config.View) render.Views {
	views := make(render.Views, len(cfgs))
	for i := range cfgs {
		views[i] = render.NewView(cfgs[i].Name, cfgs[i].Projection())
	}
	return views
}

// Render draws the entries of an export, or the points of a store, on every
// view and saves the images. It returns the paths of the images.
func Render(ctx context.Context, opts RenderOptions) ([]string, error) {
	if len(opts.Views) == 0 {
		return nil, errors.New("no view to render")
	}
	views := NewViews(opts.Views)

	if opts.Store != "" {
		if err := renderStore(ctx, opts.Store, opts.Range, views); err != nil {
			return nil, err
		}
	} else {
		_, err := ReadFile(ctx, opts.Input, opts.ReadOptions, func(e *protocol.Entry) error {
			views.PutEntry(e)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	log.Info().Str("dir", opts.Output).Msg("saving images")
	return views.Save(ctx, opts.Output)
}

func renderStore(ctx context.Context, path string, r filter.Range, views render.Views) (err error) {
	s, err := pointstore.Open(path, nil)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.CombineErrors(err, s.Close())
	}()

	var n int
	err = s.Scan(r, func(p *pointstore.Point) error {
		n++
		if n%cancelCheck == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		views.PutPoint(p)
		return nil
	})
	if err != nil {
		return err
	}

	log.Info().Int("points", n).Str("store", path).Msg("read points")
	return nil
}
