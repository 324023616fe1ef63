package exportutil

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/chaisql/locationhistory/protocol"
)

// Stats summarizes the content of an export.
type Stats struct {
	Entries int
	First   time.Time
	Last    time.Time
	Sources map[protocol.Source]int
	// Activities counts the most likely activity of every activity record.
	Activities   map[protocol.ActivityType]int
	Devices      map[int32]int
	AccessPoints map[protocol.MacAddr]struct{}
	WithAltitude int
	Inferred     int
}

// NewStats returns empty statistics.
func NewStats() *Stats {
	return &Stats{
		Sources:      make(map[protocol.Source]int),
		Activities:   make(map[protocol.ActivityType]int),
		Devices:      make(map[int32]int),
		AccessPoints: make(map[protocol.MacAddr]struct{}),
	}
}

// Add accounts for e.
func (s *Stats) Add(e *protocol.Entry) error {
	s.Entries++
	if s.First.IsZero() || e.Timestamp.Before(s.First) {
		s.First = e.Timestamp
	}
	if s.Last.IsZero() || e.Timestamp.After(s.Last) {
		s.Last = e.Timestamp
	}

	s.Sources[e.Source]++
	s.Devices[e.DeviceTag]++
	for i := range e.Activity {
		if best, ok := e.Activity[i].MostLikely(); ok {
			s.Activities[best.Type]++
		}
	}

	s.addScan(e.ActiveWifiScan)
	for i := range e.LocationMetadata {
		s.addScan(e.LocationMetadata[i].WifiScan)
		s.addScan(e.LocationMetadata[i].ActiveWifiScan)
	}

	if e.Altitude != nil {
		s.WithAltitude++
	}
	s.Inferred += len(e.InferredLocation)
	return nil
}

func (s *Stats) addScan(w *protocol.WifiScan) {
	if w == nil {
		return
	}
	for _, ap := range w.AccessPoints {
		s.AccessPoints[ap.Mac] = struct{}{}
	}
}

// ReadStats computes the statistics of the export at path.
func ReadStats(ctx context.Context, path string, opts ReadOptions) (*Stats, error) {
	s := NewStats()
	_, err := ReadFile(ctx, path, opts, s.Add)
	if err != nil {
		return nil, err
	}
	return s, nil
}

type count[K comparable] struct {
	key K
	n   int
}

// sorted returns the counts of m by decreasing count.
func sorted[K comparable](m map[K]int, less func(a, b K) bool) []count[K] {
	out := make([]count[K], 0, len(m))
	for k, n := range m {
		out = append(out, count[K]{k, n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].n != out[j].n {
			return out[i].n > out[j].n
		}
		return less(out[i].key, out[j].key)
	})
	return out
}

// WriteTo writes the statistics as a table.
func (s *Stats) WriteTo(w io.Writer) (int64, error) {
	cw := countingWriter{w: w}
	tw := tabwriter.NewWriter(&cw, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "entries\t%d\n", s.Entries)
	if s.Entries > 0 {
		fmt.Fprintf(tw, "first\t%s\n", s.First.Format(time.RFC3339))
		fmt.Fprintf(tw, "last\t%s\n", s.Last.Format(time.RFC3339))
	}
	fmt.Fprintf(tw, "devices\t%d\n", len(s.Devices))
	fmt.Fprintf(tw, "access points\t%d\n", len(s.AccessPoints))
	fmt.Fprintf(tw, "with altitude\t%d\n", s.WithAltitude)
	fmt.Fprintf(tw, "inferred locations\t%d\n", s.Inferred)

	for _, c := range sorted(s.Sources, func(a, b protocol.Source) bool { return a < b }) {
		fmt.Fprintf(tw, "source %s\t%d\n", c.key, c.n)
	}
	for _, c := range sorted(s.Activities, func(a, b protocol.ActivityType) bool { return a < b }) {
		fmt.Fprintf(tw, "activity %s\t%d\n", c.key, c.n)
	}

	err := tw.Flush()
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
