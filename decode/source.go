package decode

import "fmt"

// Kind is the kind of a value as reported by a Source.
type Kind uint8

// List of value kinds.
const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "sequence"
	case KindObject:
		return "map"
	}

	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Source is a self-describing structured input that can be consumed one
// value at a time.
//
// Implementations are not safe for concurrent use. Methods that read a value
// of a given kind fail with an ErrInvalidType error when the next value is of
// another kind, and with an ErrSyntax error when the input cannot be
// tokenized.
type Source interface {
	// Peek reports the kind of the next value without consuming it.
	Peek() (Kind, error)

	// BeginObject consumes the opening of an object.
	BeginObject() error
	// NextField returns the name of the next field of the current object.
	// The caller must consume the field value before calling NextField again.
	// It returns false once the end of the object has been consumed.
	NextField() (string, bool, error)

	// BeginArray consumes the opening of an array.
	BeginArray() error
	// NextElement reports whether the current array has another element.
	// The caller must consume the element before calling NextElement again.
	// It returns false once the end of the array has been consumed.
	NextElement() (bool, error)

	// String reads a string value.
	String() (string, error)
	// Number reads a number and returns its literal text.
	Number() (string, error)
	// Bool reads a boolean value.
	Bool() (bool, error)
	// Null reads a null value.
	Null() error

	// Skip consumes the next value, whatever its kind.
	Skip() error
}
