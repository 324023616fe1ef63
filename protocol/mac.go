package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/chaisql/locationhistory/decode"
	"github.com/cockroachdb/errors"
)

// ErrMacAddrRange is returned when a hardware address does not fit in 48 bits.
var ErrMacAddrRange = errors.New("value exceeds 48 bits")

// MacAddr is a 48-bit hardware address, most significant byte first.
type MacAddr [6]byte

// ParseMacAddr parses the decimal representation of a hardware address, as
// found in the export.
func ParseMacAddr(s string) (MacAddr, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return MacAddr{}, errors.Wrapf(err, "invalid mac address %q", s)
	}

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], n)
	if buf[0] != 0 || buf[1] != 0 {
		return MacAddr{}, errors.Wrapf(ErrMacAddrRange, "mac address %s", s)
	}

	var m MacAddr
	copy(m[:], buf[2:])
	return m, nil
}

// Uint64 returns the address as an integer, the way it is encoded in the export.
func (m MacAddr) Uint64() uint64 {
	var buf [8]byte
	copy(buf[2:], m[:])
	return binary.BigEndian.Uint64(buf[:])
}

// Compare orders addresses byte by byte. It returns -1, 0 or +1.
func (m MacAddr) Compare(o MacAddr) int {
	return bytes.Compare(m[:], o[:])
}

func (m MacAddr) String() string {
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", m[0], m[1], m[2], m[3], m[4], m[5])
}

func readMacAddr(src decode.Source) (MacAddr, error) {
	s, err := decode.String(src)
	if err != nil {
		return MacAddr{}, err
	}

	m, err := ParseMacAddr(s)
	if err != nil {
		return MacAddr{}, decode.NewFormatError(err)
	}
	return m, nil
}
