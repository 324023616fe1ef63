// Package filter selects entries by time.
package filter

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dromara/carbon/v2"
)

// A Range is a half-open time interval. A zero bound is unbounded.
type Range struct {
	Since time.Time
	Until time.Time
}

// ParseTime parses a date or date-time, in any layout understood by carbon.
// Values without an offset are read as UTC.
func ParseTime(s string) (time.Time, error) {
	c := carbon.Parse(s, "UTC")
	if c.Error != nil {
		return time.Time{}, errors.Wrapf(c.Error, "invalid time %q", s)
	}

	return c.StdTime(), nil
}

// ParseRange builds a Range from optional bounds. Empty strings are unbounded.
func ParseRange(since, until string) (Range, error) {
	var r Range
	var err error

	if s := strings.TrimSpace(since); s != "" {
		r.Since, err = ParseTime(s)
		if err != nil {
			return Range{}, errors.Wrap(err, "since")
		}
	}
	if s := strings.TrimSpace(until); s != "" {
		r.Until, err = ParseTime(s)
		if err != nil {
			return Range{}, errors.Wrap(err, "until")
		}
	}

	if !r.Since.IsZero() && !r.Until.IsZero() && !r.Since.Before(r.Until) {
		return Range{}, errors.Newf("empty time range: %s is not before %s", r.Since.Format(time.RFC3339), r.Until.Format(time.RFC3339))
	}

	return r, nil
}

// IsZero reports whether the range is unbounded on both sides.
func (r Range) IsZero() bool {
	return r.Since.IsZero() && r.Until.IsZero()
}

// Contains reports whether t is within the range.
func (r Range) Contains(t time.Time) bool {
	if !r.Since.IsZero() && t.Before(r.Since) {
		return false
	}

	return r.Until.IsZero() || t.Before(r.Until)
}
