// Package exportutil implements the timeline commands on top of the decoder.
package exportutil

import (
	"context"
	"time"

	"github.com/chaisql/locationhistory"
	"github.com/chaisql/locationhistory/internal/filter"
	"github.com/chaisql/locationhistory/internal/input"
	"github.com/chaisql/locationhistory/internal/observability"
	"github.com/chaisql/locationhistory/protocol"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
)

// ProgressInterval is the minimum delay between two progress lines.
var ProgressInterval = 5 * time.Second

// cancelCheck is the number of entries decoded between two checks of the context.
const cancelCheck = 4096

// ReadOptions configure ReadFile.
type ReadOptions struct {
	// Range drops the entries recorded outside of it.
	Range filter.Range
	// Metrics is optional.
	Metrics *observability.Metrics
}

// ReadFile decodes the export at path, "-" being the standard input, and calls
// fn for every entry within the range. Decoding stops when ctx is canceled.
func ReadFile(ctx context.Context, path string, opts ReadOptions, fn func(*protocol.Entry) error) (observability.Summary, error) {
	in, err := input.Open(path)
	if err != nil {
		return observability.Summary{}, err
	}
	defer in.Close()

	log.Info().Str("path", path).Stringer("format", in.Format()).Msg("reading")

	tr := observability.Track(opts.Metrics, in.BytesRead, ProgressInterval)

	var n int
	err = locationhistory.ReadJSONEntries(in, func(e *protocol.Entry) error {
		tr.Entry(e)

		n++
		if n%cancelCheck == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		if !opts.Range.Contains(e.Timestamp) {
			return nil
		}
		return fn(e)
	})
	s := tr.Done(err)
	if err != nil {
		return s, errors.Wrapf(err, "read %s", path)
	}

	log.Info().Msg(s.String())
	return s, nil
}
