package decode_test

import (
	"testing"

	"github.com/chaisql/locationhistory/decode"
	"github.com/stretchr/testify/require"
)

func TestInt(t *testing.T) {
	tests := []struct {
		input   string
		want    int8
		errKind decode.ErrorKind
	}{
		{`0`, 0, 0},
		{`127`, 127, 0},
		{`-128`, -128, 0},
		{`128`, 0, decode.KindInvalidFormat},
		{`-129`, 0, decode.KindInvalidFormat},
		{`99999999999999999999`, 0, decode.KindInvalidFormat},
		{`1.5`, 0, decode.KindInvalidType},
		{`1e3`, 0, decode.KindInvalidType},
		{`"5"`, 0, decode.KindInvalidType},
		{`true`, 0, decode.KindInvalidType},
	}

	for _, s := range sources {
		for _, tt := range tests {
			t.Run(s.name+"/"+tt.input, func(t *testing.T) {
				got, err := decode.Int[int8](s.open(tt.input))
				if tt.errKind != 0 {
					require.Error(t, err)
					require.Equal(t, tt.errKind, decode.KindOf(err))
					return
				}
				require.NoError(t, err)
				require.Equal(t, tt.want, got)
			})
		}
	}
}

func TestUint(t *testing.T) {
	tests := []struct {
		input   string
		want    uint8
		errKind decode.ErrorKind
	}{
		{`0`, 0, 0},
		{`255`, 255, 0},
		{`256`, 0, decode.KindInvalidFormat},
		{`-1`, 0, decode.KindInvalidFormat},
		{`-1.5`, 0, decode.KindInvalidType},
		{`null`, 0, decode.KindInvalidType},
	}

	for _, s := range sources {
		for _, tt := range tests {
			t.Run(s.name+"/"+tt.input, func(t *testing.T) {
				got, err := decode.Uint[uint8](s.open(tt.input))
				if tt.errKind != 0 {
					require.Error(t, err)
					require.Equal(t, tt.errKind, decode.KindOf(err))
					return
				}
				require.NoError(t, err)
				require.Equal(t, tt.want, got)
			})
		}
	}
}

func TestIntRangeMessage(t *testing.T) {
	_, err := decode.Int[int32](decode.NewJSONBytes([]byte(`3000000000`)))
	require.EqualError(t, err, "invalid value: integer 3000000000 out of range for int32")
}

type color uint8

const (
	red color = iota
	green
)

var colors = decode.Variants[color]{
	{Token: "RED", Value: red},
	{Token: "GREEN", Value: green},
}

func TestVariants(t *testing.T) {
	for _, s := range sources {
		t.Run(s.name, func(t *testing.T) {
			c, err := colors.Decode(s.open(`"GREEN"`))
			require.NoError(t, err)
			require.Equal(t, green, c)

			_, err = colors.Decode(s.open(`"green"`))
			require.ErrorIs(t, err, decode.ErrUnknownVariant)

			var derr *decode.Error
			require.ErrorAs(t, err, &derr)
			require.Equal(t, "green", derr.Token)
			require.Equal(t, []string{"RED", "GREEN"}, derr.Expected)

			_, err = colors.Decode(s.open(`1`))
			require.ErrorIs(t, err, decode.ErrInvalidType)
		})
	}

	require.Equal(t, "RED", colors.Token(red))
	require.Equal(t, "", colors.Token(color(9)))
}

func TestBoolAndString(t *testing.T) {
	for _, s := range sources {
		t.Run(s.name, func(t *testing.T) {
			b, err := decode.Bool(s.open(`false`))
			require.NoError(t, err)
			require.False(t, b)

			_, err = decode.Bool(s.open(`"false"`))
			require.ErrorIs(t, err, decode.ErrInvalidType)

			str, err := decode.String(s.open(`"a\nbA"`))
			require.NoError(t, err)
			require.Equal(t, "a\nbA", str)

			_, err = decode.String(s.open(`12`))
			require.ErrorIs(t, err, decode.ErrInvalidType)
		})
	}
}
