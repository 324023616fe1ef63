// Package pointstore persists decoded positions in a Pebble database, ordered
// by time, so maps can be redrawn without decoding the export again.
package pointstore

import (
	"time"

	"github.com/chaisql/locationhistory/internal/filter"
	"github.com/chaisql/locationhistory/protocol"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/rs/zerolog/log"
)

// ErrClosed is returned when using a closed store.
var ErrClosed = errors.New("store is closed")

// DefaultBatchSize is the number of points written by a single commit.
const DefaultBatchSize = 10_000

// Point is the position of an entry.
type Point struct {
	// Time of the fix, in the offset it was recorded with, to the microsecond.
	Time     time.Time
	LngLat   protocol.LngLat
	Accuracy int32
	Source   protocol.Source
}

// Options configure a Store.
type Options struct {
	// InMemory keeps the database in memory. The path is ignored.
	InMemory bool
	// BatchSize defaults to DefaultBatchSize.
	BatchSize int
}

// Store is a time-ordered point database.
// It is not safe for concurrent use.
type Store struct {
	db        *pebble.DB
	batch     *pebble.Batch
	batchSize int
	key       []byte
	value     []byte
}

// Open opens or creates the store at path.
func Open(path string, opts *Options) (*Store, error) {
	var o Options
	if opts != nil {
		o = *opts
	}
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}

	popts := pebble.Options{
		Logger: pebbleLogger{},
	}
	if o.InMemory {
		path = ""
		popts.FS = vfs.NewMem()
	}

	db, err := pebble.Open(path, &popts)
	if err != nil {
		return nil, errors.Wrapf(err, "open point store %s", path)
	}

	return &Store{
		db:        db,
		batchSize: o.BatchSize,
	}, nil
}

// Put adds the position of e. Points are buffered and written by batches;
// call Flush to write the pending ones.
func (s *Store) Put(e *protocol.Entry) error {
	if s.db == nil {
		return errors.WithStack(ErrClosed)
	}

	if s.batch == nil {
		s.batch = s.db.NewBatch()
	}

	s.key = encodeKey(s.key[:0], e)
	s.value = encodeValue(s.value[:0], e)
	if err := s.batch.Set(s.key, s.value, nil); err != nil {
		return errors.WithStack(err)
	}

	if int(s.batch.Count()) >= s.batchSize {
		return s.Flush()
	}
	return nil
}

// Flush writes the pending points.
func (s *Store) Flush() error {
	if s.batch == nil {
		return nil
	}

	b := s.batch
	s.batch = nil
	defer b.Close()

	n := b.Count()
	if n == 0 {
		return nil
	}
	if err := b.Commit(pebble.Sync); err != nil {
		return errors.Wrap(err, "commit points")
	}

	log.Debug().Uint32("points", n).Msg("flushed points")
	return nil
}

func (s *Store) iterator(r filter.Range) *pebble.Iterator {
	opts := pebble.IterOptions{
		LowerBound: []byte{pointPrefix},
		UpperBound: []byte{pointPrefix + 1},
	}
	if !r.Since.IsZero() {
		opts.LowerBound = timeKey(r.Since)
	}
	if !r.Until.IsZero() {
		opts.UpperBound = timeKey(r.Until)
	}

	return s.db.NewIter(&opts)
}

// Scan calls fn for every written point within r, in time order. Pending
// points are not visible until flushed. If fn returns an error, Scan stops
// and returns it.
func (s *Store) Scan(r filter.Range, fn func(p *Point) error) (err error) {
	if s.db == nil {
		return errors.WithStack(ErrClosed)
	}

	it := s.iterator(r)
	defer func() {
		err = errors.CombineErrors(err, it.Close())
	}()

	var p Point
	for it.First(); it.Valid(); it.Next() {
		p, err = decodePoint(it.Key(), it.Value())
		if err != nil {
			return err
		}
		if err := fn(&p); err != nil {
			return err
		}
	}

	return errors.WithStack(it.Error())
}

// Count returns the number of written points within r.
func (s *Store) Count(r filter.Range) (n int, err error) {
	if s.db == nil {
		return 0, errors.WithStack(ErrClosed)
	}

	it := s.iterator(r)
	defer func() {
		err = errors.CombineErrors(err, it.Close())
	}()

	for it.First(); it.Valid(); it.Next() {
		n++
	}
	return n, errors.WithStack(it.Error())
}

// Close flushes the pending points and closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return errors.WithStack(ErrClosed)
	}

	err := s.Flush()
	err = errors.CombineErrors(err, s.db.Close())
	s.db = nil
	return err
}

// pebbleLogger forwards the database logs to zerolog.
type pebbleLogger struct{}

func (pebbleLogger) Infof(format string, args ...interface{}) {
	log.Debug().Msgf(format, args...)
}

func (pebbleLogger) Errorf(format string, args ...interface{}) {
	log.Error().Msgf(format, args...)
}

func (pebbleLogger) Fatalf(format string, args ...interface{}) {
	log.Fatal().Msgf(format, args...)
}
