package protocol

import (
	"time"

	"github.com/chaisql/locationhistory/decode"
	"github.com/cockroachdb/errors"
)

// ParseTimestamp parses an RFC 3339 date-time. The offset of the input is
// kept in the returned time's location.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "invalid timestamp %q", s)
	}

	return t, nil
}

func readTimestamp(src decode.Source) (time.Time, error) {
	s, err := decode.String(src)
	if err != nil {
		return time.Time{}, err
	}

	t, err := ParseTimestamp(s)
	if err != nil {
		return time.Time{}, decode.NewFormatError(err)
	}
	return t, nil
}
