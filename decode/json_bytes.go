package decode

import (
	"github.com/buger/jsonparser"
	"github.com/cockroachdb/errors"
)

// JSONBytes is a Source walking an in-memory JSON document.
//
// Values are located with jsonparser, which only checks that skipped
// objects and arrays have balanced delimiters: malformed content inside a
// skipped value is not reported.
type JSONBytes struct {
	data []byte
	pos  int
	// one entry per open container, true until its first member is read.
	first []bool
}

var _ Source = (*JSONBytes)(nil)

// NewJSONBytes returns a Source reading data. data must not be modified
// while the Source is in use.
func NewJSONBytes(data []byte) *JSONBytes {
	return &JSONBytes{data: data}
}

func (s *JSONBytes) skipSpace() {
	for s.pos < len(s.data) {
		switch s.data[s.pos] {
		case ' ', '\t', '\n', '\r':
			s.pos++
		default:
			return
		}
	}
}

func (s *JSONBytes) syntaxError(format string, args ...interface{}) error {
	return NewSyntaxError(errors.Newf("offset %d: "+format, append([]interface{}{s.pos}, args...)...))
}

func (s *JSONBytes) Peek() (Kind, error) {
	s.skipSpace()
	if s.pos >= len(s.data) {
		return KindInvalid, s.syntaxError("unexpected end of input")
	}

	switch c := s.data[s.pos]; c {
	case '{':
		return KindObject, nil
	case '[':
		return KindArray, nil
	case '"':
		return KindString, nil
	case 't', 'f':
		return KindBool, nil
	case 'n':
		return KindNull, nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return KindNumber, nil
	default:
		return KindInvalid, s.syntaxError("invalid character %q looking for beginning of value", c)
	}
}

// value reads the next value, which must be of kind want, and returns its
// raw bytes. String values are returned without their quotes.
func (s *JSONBytes) value(want Kind) ([]byte, error) {
	k, err := s.Peek()
	if err != nil {
		return nil, err
	}
	if k != want {
		return nil, NewTypeError(want.String(), k)
	}

	v, _, end, err := jsonparser.Get(s.data[s.pos:])
	if err != nil {
		return nil, s.syntaxError("%v", err)
	}

	s.pos += end
	return v, nil
}

func (s *JSONBytes) open(want Kind) error {
	k, err := s.Peek()
	if err != nil {
		return err
	}
	if k != want {
		return NewTypeError(want.String(), k)
	}

	s.pos++
	s.first = append(s.first, true)
	return nil
}

// member positions the cursor on the next member of the innermost container.
// It returns false after consuming the closing delimiter.
func (s *JSONBytes) member(closing byte) (bool, error) {
	if len(s.first) == 0 {
		return false, s.syntaxError("no open container")
	}

	s.skipSpace()
	if s.pos >= len(s.data) {
		return false, s.syntaxError("unexpected end of input")
	}

	top := len(s.first) - 1
	if s.data[s.pos] == closing {
		s.pos++
		s.first = s.first[:top]
		return false, nil
	}

	if !s.first[top] {
		if s.data[s.pos] != ',' {
			return false, s.syntaxError("invalid character %q after member", s.data[s.pos])
		}
		s.pos++
		s.skipSpace()
	}
	s.first[top] = false

	return true, nil
}

func (s *JSONBytes) BeginObject() error {
	return s.open(KindObject)
}

func (s *JSONBytes) NextField() (string, bool, error) {
	ok, err := s.member('}')
	if err != nil || !ok {
		return "", false, err
	}

	if s.pos >= len(s.data) || s.data[s.pos] != '"' {
		return "", false, s.syntaxError("expected field name")
	}

	raw, err := s.value(KindString)
	if err != nil {
		return "", false, err
	}
	name, err := jsonparser.ParseString(raw)
	if err != nil {
		return "", false, s.syntaxError("%v", err)
	}

	s.skipSpace()
	if s.pos >= len(s.data) || s.data[s.pos] != ':' {
		return "", false, s.syntaxError("expected ':' after field name")
	}
	s.pos++

	return name, true, nil
}

func (s *JSONBytes) BeginArray() error {
	return s.open(KindArray)
}

func (s *JSONBytes) NextElement() (bool, error) {
	return s.member(']')
}

func (s *JSONBytes) String() (string, error) {
	raw, err := s.value(KindString)
	if err != nil {
		return "", err
	}

	v, err := jsonparser.ParseString(raw)
	if err != nil {
		return "", s.syntaxError("%v", err)
	}
	return v, nil
}

func (s *JSONBytes) Number() (string, error) {
	raw, err := s.value(KindNumber)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (s *JSONBytes) Bool() (bool, error) {
	raw, err := s.value(KindBool)
	if err != nil {
		return false, err
	}

	b, err := jsonparser.ParseBoolean(raw)
	if err != nil {
		return false, s.syntaxError("%v", err)
	}
	return b, nil
}

func (s *JSONBytes) Null() error {
	_, err := s.value(KindNull)
	return err
}

func (s *JSONBytes) Skip() error {
	k, err := s.Peek()
	if err != nil {
		return err
	}

	_, err = s.value(k)
	return err
}
