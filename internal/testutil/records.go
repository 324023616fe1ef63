// Package testutil builds location history exports for tests.
package testutil

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// EntryJSON returns a minimal valid entry. Its accuracy is i modulo 100 and
// its coordinates derive from i.
func EntryJSON(i int) string {
	return fmt.Sprintf(`{"timestamp": "2014-01-01T00:00:00Z", "latitudeE7": %d, "longitudeE7": %d, "accuracy": %d, "source": "GPS", "deviceTag": 0}`, i, -i, i%100)
}

// Records returns an export of n entries built by EntryJSON. extra is
// inserted in the envelope, before the locations field.
func Records(n int, extra string) string {
	var b strings.Builder
	b.WriteString(`{`)
	if extra != "" {
		b.WriteString(extra)
		b.WriteString(`, `)
	}
	b.WriteString(`"locations": [`)
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(`, `)
		}
		b.WriteString(EntryJSON(i))
	}
	b.WriteString(`]}`)
	return b.String()
}

// WriteFile writes content to a file named name in a temporary directory and
// returns its path.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// RecordsReader generates the export of Records(n, "") without holding it in
// memory.
type RecordsReader struct {
	n, i int
	buf  bytes.Buffer
	done bool
}

// NewRecordsReader returns a reader of an export of n entries.
func NewRecordsReader(n int) *RecordsReader {
	return &RecordsReader{n: n}
}

func (r *RecordsReader) Read(p []byte) (int, error) {
	for r.buf.Len() < len(p) && !r.done {
		switch {
		case r.i == 0:
			r.buf.WriteString(`{"locations": [`)
		case r.i > r.n:
			r.buf.WriteString(`]}`)
			r.done = true
			continue
		case r.i > 1:
			r.buf.WriteString(`, `)
		}
		if r.i >= 1 && r.i <= r.n {
			r.buf.WriteString(EntryJSON(r.i - 1))
		}
		r.i++
	}

	if r.buf.Len() == 0 {
		return 0, io.EOF
	}
	return r.buf.Read(p)
}
