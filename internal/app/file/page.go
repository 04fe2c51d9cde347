package file

import (
	"encoding/binary"
	"fmt"
	"math"

	"quilldb/internal/app/dberr"
)

// Page is an in-memory buffer exactly one block in size, with typed
// get/set access at arbitrary byte offsets. Integers are two's-complement
// little-endian (spec §6); strings are stored as a 4-byte big-endian
// length prefix (the encoded byte count) followed by the UTF-8 payload.
type Page struct {
	contents []byte
}

// NewPage allocates a zeroed page of blockSize bytes.
func NewPage(blockSize int) *Page {
	return &Page{contents: make([]byte, blockSize)}
}

// NewPageFromBytes wraps an existing byte slice as a page without copying.
// The caller must not mutate buf through another reference afterward.
func NewPageFromBytes(buf []byte) *Page {
	return &Page{contents: buf}
}

// Contents returns the page's backing byte slice.
func (p *Page) Contents() []byte { return p.contents }

// Len returns the size of the page in bytes.
func (p *Page) Len() int { return len(p.contents) }

// Clear zeroes the entire page.
func (p *Page) Clear() {
	for i := range p.contents {
		p.contents[i] = 0
	}
}

// GetInt8 reads a signed 1-byte integer at offset.
func (p *Page) GetInt8(offset int) int8 { return int8(p.contents[offset]) }

// SetInt8 writes a signed 1-byte integer at offset.
func (p *Page) SetInt8(offset int, v int8) { p.contents[offset] = byte(v) }

// GetUint8 reads an unsigned 1-byte integer at offset.
func (p *Page) GetUint8(offset int) uint8 { return p.contents[offset] }

// SetUint8 writes an unsigned 1-byte integer at offset.
func (p *Page) SetUint8(offset int, v uint8) { p.contents[offset] = v }

// GetInt16 reads a signed 2-byte little-endian integer at offset.
func (p *Page) GetInt16(offset int) int16 {
	return int16(binary.LittleEndian.Uint16(p.contents[offset : offset+2]))
}

// SetInt16 writes a signed 2-byte little-endian integer at offset.
func (p *Page) SetInt16(offset int, v int16) {
	binary.LittleEndian.PutUint16(p.contents[offset:offset+2], uint16(v))
}

// GetUint16 reads an unsigned 2-byte little-endian integer at offset.
func (p *Page) GetUint16(offset int) uint16 {
	return binary.LittleEndian.Uint16(p.contents[offset : offset+2])
}

// SetUint16 writes an unsigned 2-byte little-endian integer at offset.
func (p *Page) SetUint16(offset int, v uint16) {
	binary.LittleEndian.PutUint16(p.contents[offset:offset+2], v)
}

// GetInt reads a signed 4-byte little-endian integer at offset. This is
// the workhorse accessor used throughout the record/log/B-tree layers.
func (p *Page) GetInt(offset int) int32 {
	return int32(binary.LittleEndian.Uint32(p.contents[offset : offset+4]))
}

// SetInt writes a signed 4-byte little-endian integer at offset.
func (p *Page) SetInt(offset int, v int32) {
	binary.LittleEndian.PutUint32(p.contents[offset:offset+4], uint32(v))
}

// GetUint32 reads an unsigned 4-byte little-endian integer at offset.
func (p *Page) GetUint32(offset int) uint32 {
	return binary.LittleEndian.Uint32(p.contents[offset : offset+4])
}

// SetUint32 writes an unsigned 4-byte little-endian integer at offset.
func (p *Page) SetUint32(offset int, v uint32) {
	binary.LittleEndian.PutUint32(p.contents[offset:offset+4], v)
}

// GetInt64 reads a signed 8-byte little-endian integer at offset.
func (p *Page) GetInt64(offset int) int64 {
	return int64(binary.LittleEndian.Uint64(p.contents[offset : offset+8]))
}

// SetInt64 writes a signed 8-byte little-endian integer at offset.
func (p *Page) SetInt64(offset int, v int64) {
	binary.LittleEndian.PutUint64(p.contents[offset:offset+8], uint64(v))
}

// GetUint64 reads an unsigned 8-byte little-endian integer at offset.
func (p *Page) GetUint64(offset int) uint64 {
	return binary.LittleEndian.Uint64(p.contents[offset : offset+8])
}

// SetUint64 writes an unsigned 8-byte little-endian integer at offset.
func (p *Page) SetUint64(offset int, v uint64) {
	binary.LittleEndian.PutUint64(p.contents[offset:offset+8], v)
}

// GetFloat32 reads an IEEE-754 single-precision float at offset.
func (p *Page) GetFloat32(offset int) float32 {
	return math.Float32frombits(p.GetUint32(offset))
}

// SetFloat32 writes an IEEE-754 single-precision float at offset.
func (p *Page) SetFloat32(offset int, v float32) {
	p.SetUint32(offset, math.Float32bits(v))
}

// GetFloat64 reads an IEEE-754 double-precision float at offset.
func (p *Page) GetFloat64(offset int) float64 {
	return math.Float64frombits(p.GetUint64(offset))
}

// SetFloat64 writes an IEEE-754 double-precision float at offset.
func (p *Page) SetFloat64(offset int, v float64) {
	p.SetUint64(offset, math.Float64bits(v))
}

// PayloadLen reads the raw 4-byte big-endian length prefix written by
// SetBytes at offset, without the defensive clamping GetBytes applies.
// Used by callers that need to know how many bytes a length-prefixed
// value occupies (e.g. the log manager skipping past a record).
func (p *Page) PayloadLen(offset int) int {
	return int(binary.BigEndian.Uint32(p.contents[offset : offset+4]))
}

// GetBytes reads a length-prefixed byte slice written by SetBytes. A
// length prefix that is negative or larger than the page is treated as
// corrupt/uninitialized data and yields an empty slice rather than
// panicking (spec §6: defensive read).
func (p *Page) GetBytes(offset int) []byte {
	length := int(binary.BigEndian.Uint32(p.contents[offset : offset+4]))
	if length <= 0 || length > len(p.contents) {
		return nil
	}
	b := make([]byte, length)
	copy(b, p.contents[offset+4:offset+4+length])
	return b
}

// SetBytes writes a 4-byte big-endian length prefix followed by b.
func (p *Page) SetBytes(offset int, b []byte) {
	binary.BigEndian.PutUint32(p.contents[offset:offset+4], uint32(len(b)))
	copy(p.contents[offset+4:offset+4+len(b)], b)
}

// GetString reads a length-prefixed UTF-8 string written by SetString.
func (p *Page) GetString(offset int) string {
	return string(p.GetBytes(offset))
}

// SetString writes s as a length-prefixed UTF-8 string at offset. cap is
// the reserved capacity in bytes for the field (as returned by
// MaxLength); if the encoded string would not fit, SetString fails with
// dberr.ErrInvalidValue and leaves the page unmodified.
func (p *Page) SetString(offset int, s string, cap int) error {
	b := []byte(s)
	if 4+len(b) > cap {
		return fmt.Errorf("string %q needs %d bytes, field reserves %d: %w", s, 4+len(b), cap, dberr.ErrInvalidValue)
	}
	p.SetBytes(offset, b)
	return nil
}

// MaxLength returns the number of bytes needed to store a string of at
// most strlen characters, assuming one byte per character (the fixed
// encoding this database uses for VARCHAR fields).
func MaxLength(strlen int) int {
	return 4 + strlen
}
