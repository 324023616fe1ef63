package decode_test

import (
	"testing"

	"github.com/chaisql/locationhistory/decode"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestErrorPath(t *testing.T) {
	err := decode.NewFormatError(errors.New("bad"))
	err = decode.AtField(err, "mac")
	err = decode.AtIndex(err, 0)
	err = decode.AtField(err, "accessPoints")
	err = decode.AtField(err, "activeWifiScan")
	err = decode.AtIndex(err, 12)
	err = decode.AtField(err, "locations")

	var derr *decode.Error
	require.ErrorAs(t, err, &derr)
	require.Equal(t, "mac", derr.Field)
	require.Equal(t, "locations[12].activeWifiScan.accessPoints[0]", derr.Path)
	require.EqualError(t, err, `locations[12].activeWifiScan.accessPoints[0]: invalid value for field "mac": bad`)
}

func TestErrorPathForeign(t *testing.T) {
	orig := errors.New("sink failed")
	require.Equal(t, orig, decode.AtField(decode.AtIndex(orig, 1), "x"))
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  decode.Error
		want string
	}{
		{decode.Error{Kind: decode.KindDuplicateField, Field: "locations"}, `duplicate field "locations"`},
		{decode.Error{Kind: decode.KindMissingField, Path: "[3]", Field: "timestamp"}, `[3]: missing field "timestamp"`},
		{decode.Error{Kind: decode.KindUnknownField, Field: "x"}, `unknown field "x", there are no fields`},
		{decode.Error{Kind: decode.KindUnknownField, Field: "x", Expected: []string{"a"}}, `unknown field "x", expected "a"`},
		{decode.Error{Kind: decode.KindUnknownVariant, Field: "type", Token: "BICYCLE", Expected: []string{"ON_BICYCLE", "STILL"}},
			`unknown variant "BICYCLE" for field "type", expected one of "ON_BICYCLE", "STILL"`},
		{decode.Error{Kind: decode.KindSyntax, Err: errors.New("unexpected EOF")}, `syntax error: unexpected EOF`},
	}

	for _, tt := range tests {
		t.Run(tt.err.Kind.String(), func(t *testing.T) {
			err := tt.err
			require.EqualError(t, &err, tt.want)
		})
	}
}

func TestErrorIs(t *testing.T) {
	sentinels := map[decode.ErrorKind]error{
		decode.KindSyntax:         decode.ErrSyntax,
		decode.KindDuplicateField: decode.ErrDuplicateField,
		decode.KindMissingField:   decode.ErrMissingField,
		decode.KindUnknownField:   decode.ErrUnknownField,
		decode.KindUnknownVariant: decode.ErrUnknownVariant,
		decode.KindInvalidFormat:  decode.ErrInvalidFormat,
		decode.KindInvalidType:    decode.ErrInvalidType,
	}

	for kind, sentinel := range sentinels {
		err := errors.Wrap(&decode.Error{Kind: kind}, "context")
		require.ErrorIs(t, err, sentinel)
		require.Equal(t, kind, decode.KindOf(err))

		for other, s := range sentinels {
			if other != kind {
				require.NotErrorIs(t, err, s)
			}
		}
	}

	require.Zero(t, decode.KindOf(errors.New("plain")))
}
