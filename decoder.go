package locationhistory

import (
	"github.com/chaisql/locationhistory/decode"
	"github.com/chaisql/locationhistory/protocol"
)

// LocationsField is the name of the envelope field holding the entries.
const LocationsField = "locations"

type state uint8

const (
	stateStart state = iota
	stateEnvelope
	stateLocations
	stateDone
)

// A Decoder reads location entries from a Source, one at a time.
//
// The Entry returned by Entry is owned by the Decoder and overwritten by the
// next call to Next.
type Decoder struct {
	src   decode.Source
	state state
	seen  bool
	entry protocol.Entry
	count int
	err   error
}

// NewDecoder returns a Decoder reading from src.
func NewDecoder(src decode.Source) *Decoder {
	return &Decoder{src: src}
}

// Next decodes the next entry. It returns false when the document has been
// fully read or when an error occurred; Err tells them apart.
func (d *Decoder) Next() bool {
	if d.err != nil || d.state == stateDone {
		return false
	}

	for {
		switch d.state {
		case stateStart:
			k, err := d.src.Peek()
			if err != nil {
				return d.fail(err)
			}
			if k != decode.KindObject {
				return d.fail(decode.NewTypeError("map", k))
			}
			if err := d.src.BeginObject(); err != nil {
				return d.fail(err)
			}
			d.state = stateEnvelope

		case stateEnvelope:
			name, ok, err := d.src.NextField()
			if err != nil {
				return d.fail(err)
			}
			if !ok {
				d.state = stateDone
				return false
			}

			if name != LocationsField {
				if err := d.src.Skip(); err != nil {
					return d.fail(decode.AtField(err, name))
				}
				continue
			}

			if d.seen {
				return d.fail(decode.NewDuplicateFieldError(LocationsField))
			}
			d.seen = true

			k, err := d.src.Peek()
			if err != nil {
				return d.fail(decode.AtField(err, LocationsField))
			}
			if k != decode.KindArray {
				return d.fail(decode.AtField(decode.NewTypeError("a sequence of location entries", k), LocationsField))
			}
			if err := d.src.BeginArray(); err != nil {
				return d.fail(decode.AtField(err, LocationsField))
			}
			d.state = stateLocations

		case stateLocations:
			ok, err := d.src.NextElement()
			if err != nil {
				return d.fail(d.atEntry(err))
			}
			if !ok {
				d.state = stateEnvelope
				continue
			}

			if err := d.entry.Decode(d.src); err != nil {
				return d.fail(d.atEntry(err))
			}
			d.count++
			return true

		default:
			return false
		}
	}
}

func (d *Decoder) atEntry(err error) error {
	return decode.AtField(decode.AtIndex(err, d.count), LocationsField)
}

func (d *Decoder) fail(err error) bool {
	d.err = err
	return false
}

// Entry returns the entry decoded by the last call to Next.
func (d *Decoder) Entry() *protocol.Entry {
	return &d.entry
}

// Count returns the number of entries decoded so far.
func (d *Decoder) Count() int {
	return d.count
}

// Err returns the first error encountered by Next.
func (d *Decoder) Err() error {
	return d.err
}
