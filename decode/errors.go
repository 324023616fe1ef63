package decode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Sentinel errors, one per ErrorKind. An *Error matches the sentinel of its
// kind with errors.Is.
var (
	// ErrSyntax is returned when the input could not be tokenized.
	ErrSyntax = errors.New("syntax error")

	// ErrDuplicateField is returned when a field appears twice in the same object.
	ErrDuplicateField = errors.New("duplicate field")

	// ErrMissingField is returned when a required field is absent.
	ErrMissingField = errors.New("missing field")

	// ErrUnknownField is returned when a strict object contains an undeclared field.
	ErrUnknownField = errors.New("unknown field")

	// ErrUnknownVariant is returned when an enumerated value is not one of its wire tokens.
	ErrUnknownVariant = errors.New("unknown variant")

	// ErrInvalidFormat is returned when a scalar is present but cannot be converted.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidType is returned when a value is not of the expected kind.
	ErrInvalidType = errors.New("invalid type")
)

// ErrorKind classifies decoding failures.
type ErrorKind uint8

// List of error kinds.
const (
	KindSyntax ErrorKind = iota + 1
	KindDuplicateField
	KindMissingField
	KindUnknownField
	KindUnknownVariant
	KindInvalidFormat
	KindInvalidType
)

func (k ErrorKind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindDuplicateField:
		return "duplicate_field"
	case KindMissingField:
		return "missing_field"
	case KindUnknownField:
		return "unknown_field"
	case KindUnknownVariant:
		return "unknown_variant"
	case KindInvalidFormat:
		return "invalid_format"
	case KindInvalidType:
		return "invalid_type"
	}

	return "kind(" + strconv.Itoa(int(k)) + ")"
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindSyntax:
		return ErrSyntax
	case KindDuplicateField:
		return ErrDuplicateField
	case KindMissingField:
		return ErrMissingField
	case KindUnknownField:
		return ErrUnknownField
	case KindUnknownVariant:
		return ErrUnknownVariant
	case KindInvalidFormat:
		return ErrInvalidFormat
	case KindInvalidType:
		return ErrInvalidType
	}

	return nil
}

// Error describes why and where decoding failed.
type Error struct {
	Kind ErrorKind
	// Path locates the object holding the failing field, e.g. "locations[3].activity[0]".
	Path string
	// Field is the name of the field involved, if any.
	Field string
	// Token is the offending wire token of an unknown variant.
	Token string
	// Expected lists the accepted field names or variant tokens.
	Expected []string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder

	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}

	switch e.Kind {
	case KindSyntax:
		b.WriteString("syntax error")
	case KindDuplicateField:
		fmt.Fprintf(&b, "duplicate field %q", e.Field)
	case KindMissingField:
		fmt.Fprintf(&b, "missing field %q", e.Field)
	case KindUnknownField:
		fmt.Fprintf(&b, "unknown field %q, %s", e.Field, expecting(e.Expected, "there are no fields"))
	case KindUnknownVariant:
		fmt.Fprintf(&b, "unknown variant %q", e.Token)
		if e.Field != "" {
			fmt.Fprintf(&b, " for field %q", e.Field)
		}
		b.WriteString(", ")
		b.WriteString(expecting(e.Expected, "there are no variants"))
	case KindInvalidFormat:
		b.WriteString("invalid value")
		if e.Field != "" {
			fmt.Fprintf(&b, " for field %q", e.Field)
		}
	case KindInvalidType:
		b.WriteString("invalid type")
		if e.Field != "" {
			fmt.Fprintf(&b, " for field %q", e.Field)
		}
	default:
		b.WriteString(e.Kind.String())
	}

	if e.Err != nil && e.Kind != KindUnknownField && e.Kind != KindUnknownVariant {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

func expecting(names []string, none string) string {
	switch len(names) {
	case 0:
		return none
	case 1:
		return "expected " + strconv.Quote(names[0])
	}

	var b strings.Builder
	b.WriteString("expected one of ")
	for i, n := range names {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Quote(n))
	}
	return b.String()
}

func newError(e *Error) error {
	return errors.WithStack(e)
}

// NewSyntaxError wraps a tokenizer failure.
func NewSyntaxError(cause error) error {
	return newError(&Error{Kind: KindSyntax, Err: cause})
}

// NewFormatError reports a scalar that could not be converted to its target value.
func NewFormatError(cause error) error {
	return newError(&Error{Kind: KindInvalidFormat, Err: cause})
}

// NewTypeError reports a value of kind found where expected was required.
func NewTypeError(expected string, found Kind) error {
	return newError(&Error{
		Kind: KindInvalidType,
		Err:  errors.Newf("expected %s, found %s", expected, found),
	})
}

// NewDuplicateFieldError reports a field that appeared twice.
func NewDuplicateFieldError(field string) error {
	return newError(&Error{Kind: KindDuplicateField, Field: field})
}

// AtField records that err happened while decoding the given field.
// Errors that are not *Error are returned unchanged.
func AtField(err error, field string) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}

	if e.Field == "" && e.Path == "" {
		e.Field = field
	} else {
		e.Path = joinPath(field, e.Path)
	}
	return err
}

// AtIndex records that err happened while decoding the i-th element of an array.
func AtIndex(err error, i int) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}

	e.Path = joinPath("["+strconv.Itoa(i)+"]", e.Path)
	return err
}

func joinPath(head, tail string) string {
	if tail == "" || tail[0] == '[' {
		return head + tail
	}
	return head + "." + tail
}

// KindOf returns the kind of the first *Error found in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
