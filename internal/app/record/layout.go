package record

import (
	"quilldb/internal/app/file"
)

// intBytes is the on-page width of an INTEGER field: Page stores ints as
// fixed 4-byte little-endian values (file.Page.GetInt/SetInt), so this
// must not vary by platform the way unsafe.Sizeof(int(0)) would.
const intBytes = 4

// Layout describes the physical placement of a schema's fields within a
// fixed-size record slot: a leading empty/in-use flag followed by each
// field at a fixed byte offset.
type Layout struct {
	schema   *Schema
	offsets  map[string]int
	slotSize int
}

// NewLayout computes field offsets for schema, for use when a table is
// first created.
func NewLayout(schema *Schema) *Layout {
	offsets := make(map[string]int)

	pos := intBytes // empty/in-use flag

	for _, fieldName := range schema.Fields() {
		offsets[fieldName] = pos
		pos += lengthInBytes(schema, fieldName)
	}

	return &Layout{
		schema:   schema,
		offsets:  offsets,
		slotSize: pos,
	}
}

// NewLayoutWithOffsets reconstructs a layout from metadata already
// stored in the catalog.
func NewLayoutWithOffsets(schema *Schema, offsets map[string]int, slotSize int) *Layout {
	return &Layout{
		schema:   schema,
		offsets:  offsets,
		slotSize: slotSize,
	}
}

func (l *Layout) Schema() *Schema {
	return l.schema
}

// Offset returns the byte offset of fieldname within a slot, or -1 if
// the field isn't in this layout's schema.
func (l *Layout) Offset(fieldname string) int {
	offset, exists := l.offsets[fieldname]
	if !exists {
		return -1
	}
	return offset
}

// SlotSize returns the fixed size, in bytes, of one record slot.
func (l *Layout) SlotSize() int {
	return l.slotSize
}

func lengthInBytes(schema *Schema, fieldname string) int {
	fieldType := schema.DataType(fieldname)
	if fieldType == INTEGER {
		return intBytes
	}
	return file.MaxLength(schema.Length(fieldname))
}
