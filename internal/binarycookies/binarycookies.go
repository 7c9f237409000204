// Package binarycookies decodes Safari's proprietary Cookies.binarycookies
// container. The format has no public schema: a file magic, a big-endian page
// size table, and little-endian pages whose records are addressed through an
// offset table. All record reads go through a bounds-checked cursor so that a
// corrupt offset skips a single record rather than the whole file.
package binarycookies

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrBadMagic reports a file that does not start with the container magic.
var ErrBadMagic = errors.New("not a binarycookies file")

var (
	fileMagic = []byte("cook")
	pageMagic = []byte{0x00, 0x00, 0x01, 0x00}
)

// Record field positions relative to the record start.
const (
	flagsOffset  = 8
	domainOffset = 16
	nameOffset   = 20
	pathOffset   = 24
	valueOffset  = 28
	expiryOffset = 40
)

// Cookie flag bits.
const (
	flagSecure   = 1 << 0
	flagHTTPOnly = 1 << 2
)

// Cookie is one decoded record. Expiry is raw Mac absolute time (fractional
// seconds since 2001-01-01); zero means a session cookie.
type Cookie struct {
	Domain   string
	Name     string
	Value    string
	Path     string
	Expiry   float64
	Secure   bool
	HTTPOnly bool
}

// Parse reads a whole container from r. Pages are read one at a time per the
// size table; the full file is never buffered. A bad file magic fails the
// file; a bad page is skipped; a bad record is skipped.
func Parse(r io.Reader) ([]Cookie, error) {
	magic := make([]byte, 4)
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadMagic, err)
	}
	if !bytes.Equal(magic, fileMagic) {
		return nil, ErrBadMagic
	}

	var pageCount uint32
	if err := binary.Read(r, binary.BigEndian, &pageCount); err != nil {
		return nil, fmt.Errorf("reading page count: %w", err)
	}
	sizes := make([]uint32, pageCount)
	for i := range sizes {
		if err := binary.Read(r, binary.BigEndian, &sizes[i]); err != nil {
			return nil, fmt.Errorf("reading page size table: %w", err)
		}
	}

	var cookies []Cookie
	for _, size := range sizes {
		page := make([]byte, size)
		if _, err := io.ReadFull(r, page); err != nil {
			// Truncated page table; everything decoded so far stands.
			return cookies, fmt.Errorf("reading page of %d bytes: %w", size, err)
		}
		cookies = append(cookies, ParsePage(page)...)
	}
	return cookies, nil
}

// ParsePage decodes every recoverable record in one page. A page whose magic
// does not match yields no records. Records are independent: a decode failure
// in one does not affect the rest of the page.
func ParsePage(page []byte) []Cookie {
	if len(page) < 8 || !bytes.Equal(page[:4], pageMagic) {
		return nil
	}
	c := cursor{buf: page}
	count, err := c.uint32At(4)
	if err != nil {
		return nil
	}

	var cookies []Cookie
	for i := 0; i < int(count); i++ {
		off, err := c.uint32At(8 + i*4)
		if err != nil {
			// Offset table itself is truncated; no further entries exist.
			break
		}
		ck, err := parseRecord(c, int(off))
		if err != nil {
			continue
		}
		cookies = append(cookies, ck)
	}
	return cookies
}

// parseRecord decodes the record starting at off. String offsets are relative
// to the record start and resolved against the remainder of the page, the way
// the vendor writes them.
func parseRecord(page cursor, off int) (Cookie, error) {
	if off < 0 || off > len(page.buf) {
		return Cookie{}, fmt.Errorf("%w: record offset %d of %d bytes", ErrTruncated, off, len(page.buf))
	}
	rec := cursor{buf: page.buf[off:]}

	flags, err := rec.uint32At(flagsOffset)
	if err != nil {
		return Cookie{}, err
	}
	var strOffs [4]uint32
	for i, fieldOff := range []int{domainOffset, nameOffset, pathOffset, valueOffset} {
		if strOffs[i], err = rec.uint32At(fieldOff); err != nil {
			return Cookie{}, err
		}
	}
	expiry, err := rec.float64At(expiryOffset)
	if err != nil {
		return Cookie{}, err
	}

	var fields [4]string
	for i, so := range strOffs {
		if fields[i], err = rec.stringAt(int(so)); err != nil {
			return Cookie{}, err
		}
	}

	return Cookie{
		Domain:   fields[0],
		Name:     fields[1],
		Path:     fields[2],
		Value:    fields[3],
		Expiry:   expiry,
		Secure:   flags&flagSecure != 0,
		HTTPOnly: flags&flagHTTPOnly != 0,
	}, nil
}

func lossyString(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}
