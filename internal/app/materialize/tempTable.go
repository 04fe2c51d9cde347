package materialize

import (
	"strconv"
	"sync"

	"quilldb/internal/app/record"
	"quilldb/internal/app/tx"
)

// TempTable is a system-named table used to hold intermediate results
// during query processing (sorting, grouping, materializing a join
// side). It is tied to a single transaction and never appears in the
// catalog.
type TempTable struct {
	tx        *tx.Transaction
	tableName string
	layout    *record.Layout
}

var nextTableNum int64
var nameMutex sync.Mutex

func NewTempTable(t *tx.Transaction, sch *record.Schema) *TempTable {
	return &TempTable{
		tx:        t,
		tableName: generateTableName(),
		layout:    record.NewLayout(sch),
	}
}

func (tt *TempTable) Open() (*record.TableScan, error) {
	return record.NewTableScan(tt.tx, tt.tableName, tt.layout)
}

func (tt *TempTable) TableName() string {
	return tt.tableName
}

func (tt *TempTable) GetLayout() *record.Layout {
	return tt.layout
}

func generateTableName() string {
	nameMutex.Lock()
	defer nameMutex.Unlock()

	nextTableNum++
	return "temp" + strconv.FormatInt(nextTableNum, 10)
}
