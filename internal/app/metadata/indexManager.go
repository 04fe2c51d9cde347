package metadata

import (
	"quilldb/internal/app/record"
	"quilldb/internal/app/tx"
)

// IndexManager stores (index name, table name, field name) triples in
// the idxcat catalog table, and builds IndexInfo for every index on a
// given table on request.
type IndexManager struct {
	layout *record.Layout
	tm     *TableManager
	sm     *StatManager
}

func NewIndexManager(isNew bool, tm *TableManager, sm *StatManager, t *tx.Transaction) (*IndexManager, error) {
	if isNew {
		schema := record.NewSchema()
		schema.AddStringField("indexname", MaxName)
		schema.AddStringField("tablename", MaxName)
		schema.AddStringField("fieldname", MaxName)
		if err := tm.CreateTable("idxcat", schema, t); err != nil {
			return nil, err
		}
	}

	layout, err := tm.GetLayout("idxcat", t)
	if err != nil {
		return nil, err
	}

	return &IndexManager{
		tm:     tm,
		sm:     sm,
		layout: layout,
	}, nil
}

func (im *IndexManager) CreateIndex(idxName string, tableName string, fieldName string, t *tx.Transaction) error {
	ts, err := record.NewTableScan(t, "idxcat", im.layout)
	if err != nil {
		return err
	}
	defer ts.Close()

	if err := ts.Insert(); err != nil {
		return err
	}
	if err := ts.SetString("indexname", idxName); err != nil {
		return err
	}
	if err := ts.SetString("tablename", tableName); err != nil {
		return err
	}
	return ts.SetString("fieldname", fieldName)
}

// GetIndexInfo returns, keyed by field name, the IndexInfo for every
// index defined on tableName.
func (im *IndexManager) GetIndexInfo(tableName string, t *tx.Transaction) (map[string]IndexInfo, error) {
	result := make(map[string]IndexInfo)

	ts, err := record.NewTableScan(t, "idxcat", im.layout)
	if err != nil {
		return nil, err
	}
	defer ts.Close()

	for {
		ok, err := ts.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		tblName, err := ts.GetString("tablename")
		if err != nil {
			return nil, err
		}
		if tblName != tableName {
			continue
		}
		idxName, err := ts.GetString("indexname")
		if err != nil {
			return nil, err
		}
		fldName, err := ts.GetString("fieldname")
		if err != nil {
			return nil, err
		}

		tableLayout, err := im.tm.GetLayout(tableName, t)
		if err != nil {
			return nil, err
		}
		tableStat, err := im.sm.GetStatInfo(tableName, tableLayout, t)
		if err != nil {
			return nil, err
		}

		indexInfo := *NewIndexInfo(idxName, fldName, tableLayout.Schema(), t, &tableStat)
		result[fldName] = indexInfo
	}

	return result, nil
}
