package metadata

import (
	"quilldb/internal/app/record"
	"quilldb/internal/app/tx"
)

// MaxViewDef bounds the stored length of a view's defining query text.
const MaxViewDef = 100

// ViewManager stores view definitions (their defining query text) in
// the viewcat catalog table, keyed by view name.
type ViewManager struct {
	tm *TableManager
}

func NewViewManager(isNew bool, tableMgr *TableManager, t *tx.Transaction) (*ViewManager, error) {
	vm := &ViewManager{tm: tableMgr}

	if isNew {
		schema := record.NewSchema()
		schema.AddStringField("viewname", MaxName)
		schema.AddStringField("viewdef", MaxViewDef)
		if err := tableMgr.CreateTable("viewcat", schema, t); err != nil {
			return nil, err
		}
	}
	return vm, nil
}

func (vm *ViewManager) CreateView(viewName string, viewdef string, t *tx.Transaction) error {
	layout, err := vm.tm.GetLayout("viewcat", t)
	if err != nil {
		return err
	}

	ts, err := record.NewTableScan(t, "viewcat", layout)
	if err != nil {
		return err
	}
	defer ts.Close()

	if err := ts.Insert(); err != nil {
		return err
	}
	if err := ts.SetString("viewname", viewName); err != nil {
		return err
	}
	return ts.SetString("viewdef", viewdef)
}

// GetViewDef returns viewName's defining query text, or "" if no such
// view exists.
func (vm *ViewManager) GetViewDef(viewName string, t *tx.Transaction) (string, error) {
	layout, err := vm.tm.GetLayout("viewcat", t)
	if err != nil {
		return "", err
	}

	ts, err := record.NewTableScan(t, "viewcat", layout)
	if err != nil {
		return "", err
	}
	defer ts.Close()

	for {
		ok, err := ts.Next()
		if err != nil {
			return "", err
		}
		if !ok {
			break
		}
		name, err := ts.GetString("viewname")
		if err != nil {
			return "", err
		}
		if name == viewName {
			return ts.GetString("viewdef")
		}
	}

	return "", nil
}
