package locationhistory_test

import (
	"encoding/json"
	"runtime"
	"strings"
	"testing"

	"github.com/chaisql/locationhistory"
	"github.com/chaisql/locationhistory/decode"
	"github.com/chaisql/locationhistory/internal/testutil"
	"github.com/chaisql/locationhistory/protocol"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

var readers = []struct {
	name string
	read func(string, func(*protocol.Entry) error) error
}{
	{"stream", func(s string, fn func(*protocol.Entry) error) error {
		return locationhistory.ReadJSONEntries(strings.NewReader(s), fn)
	}},
	{"bytes", func(s string, fn func(*protocol.Entry) error) error {
		return locationhistory.ReadJSONBytes([]byte(s), fn)
	}},
}

// collect returns the accuracies of the decoded entries, in order.
func collect(t *testing.T, read func(string, func(*protocol.Entry) error) error, input string) ([]int32, error) {
	t.Helper()

	var got []int32
	err := read(input, func(e *protocol.Entry) error {
		got = append(got, e.Accuracy)
		return nil
	})
	return got, err
}

func TestReadEntries(t *testing.T) {
	for _, r := range readers {
		t.Run(r.name, func(t *testing.T) {
			t.Run("in order", func(t *testing.T) {
				var lats []float32
				err := r.read(testutil.Records(5, ""), func(e *protocol.Entry) error {
					lats = append(lats, e.Latitude)
					return nil
				})
				require.NoError(t, err)
				require.Len(t, lats, 5)
				for i, lat := range lats {
					require.Equal(t, protocol.E7ToDegrees(int32(i)), lat)
				}
			})

			t.Run("empty array", func(t *testing.T) {
				got, err := collect(t, r.read, `{"locations": []}`)
				require.NoError(t, err)
				require.Empty(t, got)
			})

			t.Run("missing locations", func(t *testing.T) {
				got, err := collect(t, r.read, `{"version": 2}`)
				require.NoError(t, err)
				require.Empty(t, got)
			})

			t.Run("other top-level fields", func(t *testing.T) {
				got, err := collect(t, r.read, testutil.Records(2, `"meta": {"locations": [1, 2, 3], "x": [{}]}, "n": null`))
				require.NoError(t, err)
				require.Equal(t, []int32{0, 1}, got)
			})

			t.Run("fields after locations", func(t *testing.T) {
				input := strings.TrimSuffix(testutil.Records(2, ""), "}") + `, "trailer": {"a": true}}`
				got, err := collect(t, r.read, input)
				require.NoError(t, err)
				require.Equal(t, []int32{0, 1}, got)
			})

			t.Run("duplicate locations", func(t *testing.T) {
				input := strings.TrimSuffix(testutil.Records(2, ""), "}") + `, "locations": []}`
				got, err := collect(t, r.read, input)
				require.ErrorIs(t, err, decode.ErrDuplicateField)
				require.EqualError(t, err, `duplicate field "locations"`)
				require.Equal(t, []int32{0, 1}, got)
			})

			t.Run("locations not an array", func(t *testing.T) {
				_, err := collect(t, r.read, `{"locations": {}}`)
				require.ErrorIs(t, err, decode.ErrInvalidType)
			})

			t.Run("top level not an object", func(t *testing.T) {
				_, err := collect(t, r.read, `[]`)
				require.ErrorIs(t, err, decode.ErrInvalidType)
			})

			t.Run("error after entries", func(t *testing.T) {
				input := `{"locations": [` + testutil.EntryJSON(1) + `, ` + testutil.EntryJSON(2) + `, {"accuracy": 1}]}`
				got, err := collect(t, r.read, input)
				require.ErrorIs(t, err, decode.ErrMissingField)
				require.Equal(t, []int32{1, 2}, got)

				var derr *decode.Error
				require.ErrorAs(t, err, &derr)
				require.Equal(t, "locations[2]", derr.Path)
				require.Equal(t, "timestamp", derr.Field)
			})

			t.Run("nested error path", func(t *testing.T) {
				bad := strings.TrimSuffix(testutil.EntryJSON(0), "}") + `, "activeWifiScan": {"accessPoints": [{"mac": "x", "strength": 0, "frequencyMhz": 0}]}}`
				input := `{"locations": [` + testutil.EntryJSON(0) + `, ` + bad + `]}`
				_, err := collect(t, r.read, input)
				require.ErrorIs(t, err, decode.ErrInvalidFormat)
				require.Contains(t, err.Error(), `locations[1].activeWifiScan.accessPoints[0]: invalid value for field "mac"`)
			})

			t.Run("sink error", func(t *testing.T) {
				stop := errors.New("stop")
				var calls int
				err := r.read(testutil.Records(10, ""), func(e *protocol.Entry) error {
					calls++
					if calls == 3 {
						return stop
					}
					return nil
				})
				require.Equal(t, stop, err)
				require.Equal(t, 3, calls)
			})

			t.Run("syntax error", func(t *testing.T) {
				got, err := collect(t, r.read, `{"locations": [`+testutil.EntryJSON(7)+`, {"accuracy" 1}]}`)
				require.ErrorIs(t, err, decode.ErrSyntax)
				require.Equal(t, []int32{7}, got)
			})
		})
	}
}

func TestReadJSONEntriesSyntaxError(t *testing.T) {
	err := locationhistory.ReadJSONEntries(strings.NewReader(`{"locations": [}`), func(*protocol.Entry) error {
		return nil
	})
	require.ErrorIs(t, err, decode.ErrSyntax)

	var serr *json.SyntaxError
	require.ErrorAs(t, err, &serr)
}

func TestDecoder(t *testing.T) {
	d := locationhistory.NewDecoder(decode.NewJSONStream(strings.NewReader(testutil.Records(3, ""))))

	var first *protocol.Entry
	for d.Next() {
		if first == nil {
			first = d.Entry()
		}
		// the entry is reused
		require.Same(t, first, d.Entry())
		require.Equal(t, int32(d.Count()-1), d.Entry().Accuracy)
	}
	require.NoError(t, d.Err())
	require.Equal(t, 3, d.Count())
	require.False(t, d.Next())
}

func TestDecoderStopsOnError(t *testing.T) {
	d := locationhistory.NewDecoder(decode.NewJSONBytes([]byte(`{"locations": [` + testutil.EntryJSON(0) + `, 12]}`)))

	require.True(t, d.Next())
	require.False(t, d.Next())
	require.ErrorIs(t, d.Err(), decode.ErrInvalidType)
	require.False(t, d.Next())
	require.Equal(t, 1, d.Count())
}

func TestReadEntriesBoundedMemory(t *testing.T) {
	if testing.Short() {
		t.Skip("long")
	}

	const n = 1_000_000
	const maxHeap = 50 << 20

	var (
		count int
		ms    runtime.MemStats
		peak  uint64
	)
	err := locationhistory.ReadJSONEntries(testutil.NewRecordsReader(n), func(e *protocol.Entry) error {
		count++
		if count%100_000 == 0 {
			runtime.GC()
			runtime.ReadMemStats(&ms)
			peak = max(peak, ms.HeapAlloc)
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, n, count)
	require.Less(t, peak, uint64(maxHeap))
}
