package plan

import (
	"quilldb/internal/app/interfaces"
	"quilldb/internal/app/metadata"
	"quilldb/internal/app/record"
	"quilldb/internal/app/tx"
)

// TablePlan is the leaf plan node for a single table: opening it just
// opens a table scan, and its cost estimates come straight from the
// catalog's cached statistics.
type TablePlan struct {
	tx        *tx.Transaction
	tableName string
	layout    *record.Layout
	si        *metadata.StatInfo
}

func NewTablePlan(t *tx.Transaction, tableName string, md *metadata.MetaDataManager) (interfaces.Plan, error) {
	layout, err := md.GetLayout(tableName, t)
	if err != nil {
		return nil, err
	}
	si, err := md.GetStatInfo(tableName, layout, t)
	if err != nil {
		return nil, err
	}

	return &TablePlan{
		tx:        t,
		tableName: tableName,
		layout:    layout,
		si:        &si,
	}, nil
}

func (tp *TablePlan) Open() (interfaces.Scan, error) {
	return record.NewTableScan(tp.tx, tp.tableName, tp.layout)
}

func (tp *TablePlan) BlocksAccessed() int {
	return tp.si.BlocksAccessed()
}

func (tp *TablePlan) RecordsOutput() int {
	return tp.si.RecordsOutput()
}

func (tp *TablePlan) DistinctValues(fieldName string) int {
	return tp.si.DistinctValues(fieldName)
}

func (tp *TablePlan) Schema() *record.Schema {
	return tp.layout.Schema()
}
