package locationhistory

import (
	"io"

	"github.com/chaisql/locationhistory/decode"
	"github.com/chaisql/locationhistory/protocol"
)

// ReadEntries decodes every entry of the document read by src and calls fn
// for each of them, in document order.
//
// The entry passed to fn is only valid until fn returns. If fn returns an
// error, decoding stops and that error is returned. Otherwise the first
// decoding error is returned, after fn has been called for every entry that
// preceded it.
func ReadEntries(src decode.Source, fn func(e *protocol.Entry) error) error {
	d := NewDecoder(src)
	for d.Next() {
		if err := fn(d.Entry()); err != nil {
			return err
		}
	}

	return d.Err()
}

// ReadJSONEntries is like ReadEntries, reading a JSON document from r.
// Syntax errors wrap the error returned by encoding/json.
func ReadJSONEntries(r io.Reader, fn func(e *protocol.Entry) error) error {
	return ReadEntries(decode.NewJSONStream(r), fn)
}

// ReadJSONBytes is like ReadEntries, reading a JSON document held in memory.
func ReadJSONBytes(data []byte, fn func(e *protocol.Entry) error) error {
	return ReadEntries(decode.NewJSONBytes(data), fn)
}
