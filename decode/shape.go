package decode

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Policy controls how an object treats fields it does not declare.
type Policy uint8

const (
	// Permissive objects skip undeclared fields.
	Permissive Policy = iota
	// Strict objects fail with ErrUnknownField on undeclared fields.
	Strict
)

func (p Policy) String() string {
	if p == Strict {
		return "strict"
	}
	return "permissive"
}

// Field declares one field of a Shape.
type Field struct {
	Name     string
	Required bool
}

// RequiredField declares a field that must be present.
func RequiredField(name string) Field {
	return Field{Name: name, Required: true}
}

// OptionalField declares a field that may be absent.
func OptionalField(name string) Field {
	return Field{Name: name}
}

// Shape describes the fields of a structure and its unknown-field policy.
// A Shape is immutable and can be shared.
type Shape struct {
	name   string
	policy Policy
	fields []Field
	names  []string
	index  map[string]int
}

// NewShape declares a structure. It panics if a field is declared twice or if
// there are more than 64 fields.
func NewShape(name string, policy Policy, fields ...Field) *Shape {
	if len(fields) > 64 {
		panic(fmt.Sprintf("shape %s: too many fields", name))
	}

	s := Shape{
		name:   name,
		policy: policy,
		fields: fields,
		names:  make([]string, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if _, ok := s.index[f.Name]; ok {
			panic(fmt.Sprintf("shape %s: field %q declared twice", name, f.Name))
		}
		s.index[f.Name] = i
		s.names[i] = f.Name
	}

	return &s
}

// Name of the structure.
func (s *Shape) Name() string {
	return s.name
}

// Policy of the structure.
func (s *Shape) Policy() Policy {
	return s.policy
}

// Fields returns the declared field names, in declaration order.
func (s *Shape) Fields() []string {
	return s.names
}

// Decode reads an object from src. fn is called once for every declared field
// present in the object and must consume its value. Errors returned by fn are
// annotated with the field name.
//
// Undeclared fields are skipped or rejected according to the policy. A field
// present twice fails with ErrDuplicateField and missing required fields fail
// with ErrMissingField once the whole object has been read.
func (s *Shape) Decode(src Source, fn func(field string) error) error {
	k, err := src.Peek()
	if err != nil {
		return err
	}
	if k != KindObject {
		return NewTypeError("struct "+s.name, k)
	}

	if err := src.BeginObject(); err != nil {
		return err
	}

	var seen uint64
	for {
		name, ok, err := src.NextField()
		if err != nil {
			return err
		}
		if !ok {
			break
		}

		i, declared := s.index[name]
		if !declared {
			if s.policy == Strict {
				return newError(&Error{Kind: KindUnknownField, Field: name, Expected: s.names})
			}
			if err := src.Skip(); err != nil {
				return AtField(err, name)
			}
			continue
		}

		bit := uint64(1) << i
		if seen&bit != 0 {
			return NewDuplicateFieldError(name)
		}
		seen |= bit

		if err := fn(name); err != nil {
			return AtField(err, name)
		}
	}

	for i, f := range s.fields {
		if f.Required && seen&(uint64(1)<<i) == 0 {
			return newError(&Error{Kind: KindMissingField, Field: f.Name})
		}
	}

	return nil
}

// Array reads an array from src, calling fn for every element. fn must
// consume the element. Errors returned by fn are annotated with the index.
func Array(src Source, fn func(i int) error) error {
	k, err := src.Peek()
	if err != nil {
		return err
	}
	if k != KindArray {
		return NewTypeError(KindArray.String(), k)
	}

	if err := src.BeginArray(); err != nil {
		return err
	}

	for i := 0; ; i++ {
		ok, err := src.NextElement()
		if err != nil {
			return AtIndex(err, i)
		}
		if !ok {
			return nil
		}

		if err := fn(i); err != nil {
			return AtIndex(err, i)
		}
	}
}

// Slice reads an array whose elements are decoded by fn.
// An empty array yields an empty, non-nil slice.
func Slice[T any](src Source, fn func(*T, Source) error) ([]T, error) {
	out := []T{}
	err := Array(src, func(int) error {
		var v T
		if err := fn(&v, src); err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// OptionalSlice is like Slice but a null value yields a nil slice.
func OptionalSlice[T any](src Source, fn func(*T, Source) error) ([]T, error) {
	null, err := consumeNull(src)
	if err != nil || null {
		return nil, err
	}

	return Slice(src, fn)
}

// Optional decodes a nullable value with read. A null value sets *dst to nil.
func Optional[T any](src Source, dst **T, read func(Source) (T, error)) error {
	null, err := consumeNull(src)
	if err != nil {
		return err
	}
	if null {
		*dst = nil
		return nil
	}

	v, err := read(src)
	if err != nil {
		return err
	}

	*dst = &v
	return nil
}

// OptionalStruct decodes a nullable structure in place with fn.
func OptionalStruct[T any](src Source, dst **T, fn func(*T, Source) error) error {
	null, err := consumeNull(src)
	if err != nil {
		return err
	}
	if null {
		*dst = nil
		return nil
	}

	var v T
	if err := fn(&v, src); err != nil {
		return err
	}

	*dst = &v
	return nil
}

func consumeNull(src Source) (bool, error) {
	k, err := src.Peek()
	if err != nil {
		return false, err
	}
	if k != KindNull {
		return false, nil
	}

	return true, errors.WithStack(src.Null())
}
