package decode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"
)

// String reads a string.
func String(src Source) (string, error) {
	k, err := src.Peek()
	if err != nil {
		return "", err
	}
	if k != KindString {
		return "", NewTypeError(KindString.String(), k)
	}

	return src.String()
}

// Bool reads a boolean.
func Bool(src Source) (bool, error) {
	k, err := src.Peek()
	if err != nil {
		return false, err
	}
	if k != KindBool {
		return false, NewTypeError(KindBool.String(), k)
	}

	return src.Bool()
}

func number(src Source, typ string) (string, error) {
	k, err := src.Peek()
	if err != nil {
		return "", err
	}
	if k != KindNumber {
		return "", NewTypeError(typ, k)
	}

	return src.Number()
}

// Int reads a signed integer that must fit in T.
func Int[T constraints.Signed](src Source) (T, error) {
	var zero T
	typ := fmt.Sprintf("%T", zero)

	lit, err := number(src, typ)
	if err != nil {
		return zero, err
	}

	v, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return zero, numberError(lit, typ, err)
	}

	t := T(v)
	if int64(t) != v {
		return zero, NewFormatError(errors.Newf("integer %s out of range for %s", lit, typ))
	}
	return t, nil
}

// Uint reads an unsigned integer that must fit in T.
func Uint[T constraints.Unsigned](src Source) (T, error) {
	var zero T
	typ := fmt.Sprintf("%T", zero)

	lit, err := number(src, typ)
	if err != nil {
		return zero, err
	}

	if strings.HasPrefix(lit, "-") {
		if _, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return zero, NewFormatError(errors.Newf("integer %s out of range for %s", lit, typ))
		}
	}

	v, err := strconv.ParseUint(lit, 10, 64)
	if err != nil {
		return zero, numberError(lit, typ, err)
	}

	t := T(v)
	if uint64(t) != v {
		return zero, NewFormatError(errors.Newf("integer %s out of range for %s", lit, typ))
	}
	return t, nil
}

func numberError(lit, typ string, err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return NewFormatError(errors.Newf("integer %s out of range for %s", lit, typ))
	}

	if _, ferr := strconv.ParseFloat(lit, 64); ferr == nil {
		return newError(&Error{
			Kind: KindInvalidType,
			Err:  errors.Newf("expected %s, found floating point %s", typ, lit),
		})
	}

	return NewFormatError(errors.Newf("invalid number %q", lit))
}

// Variant maps a wire token to a value.
type Variant[T comparable] struct {
	Token string
	Value T
}

// Variants is the closed set of tokens of an enumeration. Tokens are matched
// exactly, case included.
type Variants[T comparable] []Variant[T]

// Decode reads a string and returns the value of the matching variant.
func (vs Variants[T]) Decode(src Source) (T, error) {
	var zero T

	s, err := String(src)
	if err != nil {
		return zero, err
	}

	for _, v := range vs {
		if v.Token == s {
			return v.Value, nil
		}
	}

	return zero, newError(&Error{Kind: KindUnknownVariant, Token: s, Expected: vs.Tokens()})
}

// Token returns the wire token of v, or an empty string if v is not part of the set.
func (vs Variants[T]) Token(v T) string {
	for _, vv := range vs {
		if vv.Value == v {
			return vv.Token
		}
	}

	return ""
}

// Tokens returns every wire token, in declaration order.
func (vs Variants[T]) Tokens() []string {
	tokens := make([]string, len(vs))
	for i, v := range vs {
		tokens[i] = v.Token
	}
	return tokens
}
