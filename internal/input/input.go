// Package input opens location history exports, decompressing them if needed.
package input

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"
)

// Stdin is the path designating the standard input.
const Stdin = "-"

// Format is the compression format of an input.
type Format uint8

// List of supported formats.
const (
	Plain Format = iota
	Gzip
	Zstd
	S2
)

func (f Format) String() string {
	switch f {
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case S2:
		return "s2"
	}
	return "plain"
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	// s2 streams start with a stream identifier chunk. Snappy framed streams
	// use the same chunk and are read by the s2 reader too.
	s2Magic     = []byte("\xff\x06\x00\x00S2sTwO")
	snappyMagic = []byte("\xff\x06\x00\x00sNaPpY")
)

const bufferSize = 256 << 10

// Reader reads the decompressed content of an export.
type Reader struct {
	r       io.Reader
	format  Format
	counter *counter
	closers []func() error
}

// counter counts the bytes read from the underlying input.
type counter struct {
	r io.Reader
	n atomic.Uint64
}

func (c *counter) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n.Add(uint64(n))
	return n, err
}

// Open opens the export at path. Stdin is read when path is "-".
func Open(path string) (*Reader, error) {
	if path == Stdin {
		return NewReader(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	r, err := NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "open %s", path)
	}
	r.closers = append(r.closers, f.Close)

	log.Debug().Str("path", path).Stringer("format", r.format).Msg("opened input")
	return r, nil
}

// NewReader detects the compression format of r and returns a reader of the
// decompressed content. Closing the returned Reader does not close r.
func NewReader(r io.Reader) (*Reader, error) {
	c := &counter{r: r}
	br := bufio.NewReaderSize(c, bufferSize)

	// a short input cannot hold a compressed stream
	head, err := br.Peek(len(s2Magic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.WithStack(err)
	}

	rd := Reader{r: br, counter: c}
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, errors.Wrap(err, "gzip")
		}
		rd.r, rd.format = zr, Gzip
		rd.closers = append(rd.closers, zr.Close)
	case bytes.HasPrefix(head, zstdMagic):
		zr, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, errors.Wrap(err, "zstd")
		}
		rd.r, rd.format = zr, Zstd
		rd.closers = append(rd.closers, func() error {
			zr.Close()
			return nil
		})
	case bytes.HasPrefix(head, s2Magic), bytes.HasPrefix(head, snappyMagic):
		rd.r, rd.format = s2.NewReader(br), S2
	}

	return &rd, nil
}

// Read reads decompressed bytes.
func (r *Reader) Read(p []byte) (int, error) {
	return r.r.Read(p)
}

// Format returns the detected compression format.
func (r *Reader) Format() Format {
	return r.format
}

// BytesRead returns the number of bytes read so far from the underlying
// input, before decompression. It is safe to call concurrently with Read.
func (r *Reader) BytesRead() uint64 {
	return r.counter.n.Load()
}

// Close releases the decompressor and closes the file opened by Open.
func (r *Reader) Close() error {
	var err error
	for i := len(r.closers) - 1; i >= 0; i-- {
		err = errors.CombineErrors(err, r.closers[i]())
	}
	r.closers = nil
	return err
}
