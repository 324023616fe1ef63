package observability

import (
	"fmt"
	"time"

	"github.com/chaisql/locationhistory/protocol"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Summary describes a finished decoding.
type Summary struct {
	Entries int
	Bytes   uint64
	Elapsed time.Duration
}

// Rate returns the number of entries decoded per second.
func (s Summary) Rate() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Entries) / s.Elapsed.Seconds()
}

func (s Summary) String() string {
	return fmt.Sprintf("read %d entries in %s (%.2f entries/s)", s.Entries, s.Elapsed.Round(time.Millisecond), s.Rate())
}

// Tracker follows the decoding of one input. It updates the metrics and logs
// a progress line at most once per interval.
type Tracker struct {
	metrics  *Metrics
	bytes    func() uint64
	interval time.Duration
	logger   zerolog.Logger
	now      func() time.Time

	start    time.Time
	last     time.Time
	entries  int
	reported uint64
}

// Track starts tracking an input. bytes returns the number of bytes read so
// far from the input; it can be nil. metrics can be nil.
func Track(m *Metrics, bytes func() uint64, interval time.Duration) *Tracker {
	t := Tracker{
		metrics:  m,
		bytes:    bytes,
		interval: interval,
		logger:   log.Logger,
		now:      time.Now,
	}
	t.start = t.now()
	t.last = t.start
	return &t
}

// Entry records a decoded entry.
func (t *Tracker) Entry(e *protocol.Entry) {
	t.entries++
	if t.metrics != nil {
		t.metrics.ObserveEntry(e)
	}

	// checking the clock on every entry is measurable on large inputs
	if t.interval <= 0 || t.entries%1024 != 0 {
		return
	}
	now := t.now()
	if now.Sub(t.last) < t.interval {
		return
	}
	t.last = now

	s := t.summary(now)
	t.logger.Info().
		Int("entries", s.Entries).
		Uint64("bytes", s.Bytes).
		Float64("rate", s.Rate()).
		Msg("decoding")
}

// Done records the end of the decoding and returns its summary.
func (t *Tracker) Done(err error) Summary {
	s := t.summary(t.now())
	if t.metrics != nil {
		t.metrics.DecodeDuration.Observe(s.Elapsed.Seconds())
		if err != nil {
			t.metrics.ObserveError(err)
		}
	}
	return s
}

func (t *Tracker) summary(now time.Time) Summary {
	s := Summary{Entries: t.entries, Elapsed: now.Sub(t.start)}
	if t.bytes != nil {
		s.Bytes = t.bytes()
		if t.metrics != nil {
			t.metrics.InputBytes.Add(float64(s.Bytes - t.reported))
		}
		t.reported = s.Bytes
	}
	return s
}
