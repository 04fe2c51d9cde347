package metadata

import (
	"quilldb/internal/app/index"
	"quilldb/internal/app/index/hash"
	"quilldb/internal/app/record"
	"quilldb/internal/app/tx"
)

// IndexInfo holds enough about one index to estimate its cost and to
// open it: the layout of its index records and the statistics of the
// table it indexes.
type IndexInfo struct {
	idxName     string
	fldName     string
	tx          *tx.Transaction
	tableSchema *record.Schema
	idxLayout   *record.Layout
	si          *StatInfo
}

func NewIndexInfo(idxName string, fldName string, tableSchema *record.Schema, t *tx.Transaction, si *StatInfo) *IndexInfo {
	ii := &IndexInfo{
		idxName:     idxName,
		fldName:     fldName,
		tx:          t,
		tableSchema: tableSchema,
		si:          si,
	}
	ii.idxLayout = ii.createIdxLayout()
	return ii
}

// Open creates a new hash index instance over this index's bucket
// tables.
func (ii *IndexInfo) Open() index.Index {
	return hash.NewHashIndex(ii.tx, ii.idxName, ii.idxLayout)
}

// BlocksAccessed estimates the block accesses needed to find all index
// entries for one search key: the hash index's search cost over the
// index records. Reading the matching data records is not included.
func (ii *IndexInfo) BlocksAccessed() int {
	rpb := ii.tx.BlockSize() / ii.idxLayout.SlotSize()
	numBlocks := ii.si.RecordsOutput() / rpb
	return hash.SearchCost(numBlocks, rpb)
}

// RecordsOutput estimates the number of records matching one search
// key, the table's record count spread evenly over the field's
// distinct values.
func (ii *IndexInfo) RecordsOutput() int {
	return ii.si.RecordsOutput() / ii.si.DistinctValues(ii.fldName)
}

// DistinctValues returns 1 for the indexed field itself (a search key
// names exactly one value), else defers to the table's statistics.
func (ii *IndexInfo) DistinctValues(fname string) int {
	if ii.fldName == fname {
		return 1
	}
	return ii.si.DistinctValues(fname)
}

func (ii *IndexInfo) createIdxLayout() *record.Layout {
	schema := record.NewSchema()
	schema.AddIntField("block")
	schema.AddIntField("id")

	if ii.tableSchema.DataType(ii.fldName) == record.INTEGER {
		schema.AddIntField("dataval")
	} else {
		fldLen := ii.tableSchema.Length(ii.fldName)
		schema.AddStringField("dataval", fldLen)
	}

	return record.NewLayout(schema)
}
