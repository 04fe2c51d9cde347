package embedded

import "quilldb/internal/app/record"

// EmbeddedMetaData describes the shape of an EmbeddedResultSet's rows.
type EmbeddedMetaData struct {
	sch *record.Schema
}

func NewEmbeddedMetaData(sch *record.Schema) *EmbeddedMetaData {
	return &EmbeddedMetaData{
		sch: sch,
	}
}

func (emd *EmbeddedMetaData) GetColumnCount() int {
	return len(emd.sch.Fields())
}

func (emd *EmbeddedMetaData) GetColumnName(column int) string {
	return emd.sch.Fields()[column-1]
}

func (emd *EmbeddedMetaData) GetColumnType(column int) int {
	fldName := emd.GetColumnName(column)
	return int(emd.sch.DataType(fldName))
}

// GetColumnSize returns the display width for column: a fixed 6 for
// integers, the declared length otherwise, widened to fit the field
// name if needed.
func (emd *EmbeddedMetaData) GetColumnSize(column int) int {
	fldName := emd.GetColumnName(column)
	fldType := emd.sch.DataType(fldName)
	var fldLength int

	if fldType == record.INTEGER {
		fldLength = 6
	} else {
		fldLength = emd.sch.Length(fldName)
	}

	return max(len(fldName), fldLength) + 1
}
