package metadata

import (
	"quilldb/internal/app/record"
	"quilldb/internal/app/tx"
)

// MetaDataManager is the single entry point plans and statements use
// to reach the table, view, index and statistics catalogs.
type MetaDataManager struct {
	tm *TableManager
	vm *ViewManager
	sm *StatManager
	im *IndexManager
}

func NewMetaDataManager(isNew bool, t *tx.Transaction) (*MetaDataManager, error) {
	tm, err := NewTableManager(isNew, t)
	if err != nil {
		return nil, err
	}
	vm, err := NewViewManager(isNew, tm, t)
	if err != nil {
		return nil, err
	}
	sm, err := NewStatManager(tm, t)
	if err != nil {
		return nil, err
	}
	im, err := NewIndexManager(isNew, tm, sm, t)
	if err != nil {
		return nil, err
	}

	return &MetaDataManager{
		tm: tm,
		vm: vm,
		sm: sm,
		im: im,
	}, nil
}

func (mm *MetaDataManager) CreateTable(tableName string, schema *record.Schema, t *tx.Transaction) error {
	return mm.tm.CreateTable(tableName, schema, t)
}

func (mm *MetaDataManager) GetLayout(tableName string, t *tx.Transaction) (*record.Layout, error) {
	return mm.tm.GetLayout(tableName, t)
}

func (mm *MetaDataManager) CreateView(viewName string, viewDef string, t *tx.Transaction) error {
	return mm.vm.CreateView(viewName, viewDef, t)
}

func (mm *MetaDataManager) GetViewDef(viewName string, t *tx.Transaction) (string, error) {
	return mm.vm.GetViewDef(viewName, t)
}

func (mm *MetaDataManager) CreateIndex(idxName string, tableName string, fieldName string, t *tx.Transaction) error {
	return mm.im.CreateIndex(idxName, tableName, fieldName, t)
}

func (mm *MetaDataManager) GetIndexInfo(tableName string, t *tx.Transaction) (map[string]IndexInfo, error) {
	return mm.im.GetIndexInfo(tableName, t)
}

func (mm *MetaDataManager) GetStatInfo(tableName string, layout *record.Layout, t *tx.Transaction) (StatInfo, error) {
	return mm.sm.GetStatInfo(tableName, layout, t)
}
