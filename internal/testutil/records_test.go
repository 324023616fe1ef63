package testutil

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordsReader(t *testing.T) {
	for _, n := range []int{0, 1, 3, 500} {
		got, err := io.ReadAll(NewRecordsReader(n))
		require.NoError(t, err)
		require.Equal(t, Records(n, ""), string(got))
	}
}
