package binarycookies

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrTruncated reports a field that extends past the end of its page buffer.
// Wrapped errors carry the offending offset; match with errors.Is.
var ErrTruncated = errors.New("truncated record")

// cursor is a bounds-checked view over one page buffer. Every field read is
// validated against the buffer length before touching memory, so a corrupt
// offset surfaces as ErrTruncated instead of an out-of-range access.
type cursor struct {
	buf []byte
}

func (c cursor) uint32At(off int) (uint32, error) {
	if off < 0 || off+4 > len(c.buf) {
		return 0, fmt.Errorf("%w: uint32 at offset %d of %d bytes", ErrTruncated, off, len(c.buf))
	}
	return binary.LittleEndian.Uint32(c.buf[off:]), nil
}

func (c cursor) float64At(off int) (float64, error) {
	if off < 0 || off+8 > len(c.buf) {
		return 0, fmt.Errorf("%w: float64 at offset %d of %d bytes", ErrTruncated, off, len(c.buf))
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(c.buf[off:])), nil
}

// stringAt scans forward from off to the next NUL byte and decodes the bytes
// between lossily. A missing terminator is a truncation.
func (c cursor) stringAt(off int) (string, error) {
	if off < 0 || off > len(c.buf) {
		return "", fmt.Errorf("%w: string at offset %d of %d bytes", ErrTruncated, off, len(c.buf))
	}
	for end := off; end < len(c.buf); end++ {
		if c.buf[end] == 0 {
			return lossyString(c.buf[off:end]), nil
		}
	}
	return "", fmt.Errorf("%w: unterminated string at offset %d", ErrTruncated, off)
}
