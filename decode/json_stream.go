package decode

import (
	"encoding/json"
	"io"

	"github.com/cockroachdb/errors"
)

// JSONStream is a Source reading a JSON document from an io.Reader.
// Memory use is bounded by the largest single token, independently of the
// size of the document.
type JSONStream struct {
	dec    *json.Decoder
	tok    json.Token
	peeked bool
}

var _ Source = (*JSONStream)(nil)

// NewJSONStream returns a Source reading from r. The reader is buffered
// internally and is never closed.
func NewJSONStream(r io.Reader) *JSONStream {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	return &JSONStream{dec: dec}
}

func (s *JSONStream) peek() (json.Token, error) {
	if s.peeked {
		return s.tok, nil
	}

	t, err := s.dec.Token()
	if err != nil {
		return nil, streamError(err)
	}

	s.tok, s.peeked = t, true
	return t, nil
}

func (s *JSONStream) next() (json.Token, error) {
	t, err := s.peek()
	if err != nil {
		return nil, err
	}

	s.tok, s.peeked = nil, false
	return t, nil
}

// streamError separates tokenizer failures from failures of the underlying reader.
func streamError(err error) error {
	var serr *json.SyntaxError
	switch {
	case errors.As(err, &serr):
		return NewSyntaxError(err)
	case err == io.EOF, err == io.ErrUnexpectedEOF:
		return NewSyntaxError(io.ErrUnexpectedEOF)
	}

	return errors.Wrap(err, "failed to read input")
}

func tokenKind(t json.Token) Kind {
	switch v := t.(type) {
	case json.Delim:
		switch v {
		case '{':
			return KindObject
		case '[':
			return KindArray
		}
	case string:
		return KindString
	case json.Number:
		return KindNumber
	case bool:
		return KindBool
	case nil:
		return KindNull
	}

	return KindInvalid
}

func (s *JSONStream) Peek() (Kind, error) {
	t, err := s.peek()
	if err != nil {
		return KindInvalid, err
	}

	k := tokenKind(t)
	if k == KindInvalid {
		return k, NewSyntaxError(errors.Newf("unexpected %v", t))
	}
	return k, nil
}

func (s *JSONStream) expect(want Kind) (json.Token, error) {
	t, err := s.next()
	if err != nil {
		return nil, err
	}

	if k := tokenKind(t); k != want {
		return nil, NewTypeError(want.String(), k)
	}
	return t, nil
}

func (s *JSONStream) BeginObject() error {
	_, err := s.expect(KindObject)
	return err
}

func (s *JSONStream) NextField() (string, bool, error) {
	t, err := s.next()
	if err != nil {
		return "", false, err
	}

	switch v := t.(type) {
	case string:
		return v, true, nil
	case json.Delim:
		if v == '}' {
			return "", false, nil
		}
	}

	return "", false, NewSyntaxError(errors.Newf("unexpected %v, expected field name", t))
}

func (s *JSONStream) BeginArray() error {
	_, err := s.expect(KindArray)
	return err
}

func (s *JSONStream) NextElement() (bool, error) {
	t, err := s.peek()
	if err != nil {
		return false, err
	}

	if d, ok := t.(json.Delim); ok && d == ']' {
		s.tok, s.peeked = nil, false
		return false, nil
	}
	return true, nil
}

func (s *JSONStream) String() (string, error) {
	t, err := s.expect(KindString)
	if err != nil {
		return "", err
	}
	return t.(string), nil
}

func (s *JSONStream) Number() (string, error) {
	t, err := s.expect(KindNumber)
	if err != nil {
		return "", err
	}
	return string(t.(json.Number)), nil
}

func (s *JSONStream) Bool() (bool, error) {
	t, err := s.expect(KindBool)
	if err != nil {
		return false, err
	}
	return t.(bool), nil
}

func (s *JSONStream) Null() error {
	_, err := s.expect(KindNull)
	return err
}

func (s *JSONStream) Skip() error {
	t, err := s.next()
	if err != nil {
		return err
	}

	d, ok := t.(json.Delim)
	if !ok {
		return nil
	}
	if d != '{' && d != '[' {
		return NewSyntaxError(errors.Newf("unexpected %v", d))
	}

	// the decoder checks that delimiters are balanced,
	// so only the depth needs tracking.
	for depth := 1; depth > 0; {
		t, err := s.next()
		if err != nil {
			return err
		}

		if d, ok := t.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			default:
				depth--
			}
		}
	}

	return nil
}
