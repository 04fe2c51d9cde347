package plan

import (
	"fmt"

	"quilldb/internal/app/interfaces"
	"quilldb/internal/app/metadata"
	"quilldb/internal/app/parse"
	"quilldb/internal/app/tx"
)

// BasicUpdatePlanner executes every non-query statement directly
// against a table plan and selection, with no optimization.
type BasicUpdatePlanner struct {
	mdm *metadata.MetaDataManager
}

func NewBasicUpdatePlanner(mdm *metadata.MetaDataManager) *BasicUpdatePlanner {
	return &BasicUpdatePlanner{
		mdm: mdm,
	}
}

func (bup *BasicUpdatePlanner) ExecuteDelete(data *parse.DeleteData, t *tx.Transaction) (int, error) {
	p, err := NewTablePlan(t, data.TableName(), bup.mdm)
	if err != nil {
		return 0, err
	}
	sp := NewSelectPlan(p, data.Pred())

	scan, err := sp.Open()
	if err != nil {
		return 0, err
	}
	us, ok := scan.(interfaces.UpdateScan)
	if !ok {
		return 0, fmt.Errorf("delete target is not updatable")
	}
	defer us.Close()

	count := 0
	for {
		ok, err := us.Next()
		if err != nil {
			return 0, err
		}
		if !ok {
			break
		}
		if err := us.Delete(); err != nil {
			return 0, err
		}
		count++
	}

	return count, nil
}

func (bup *BasicUpdatePlanner) ExecuteModify(data *parse.ModifyData, t *tx.Transaction) (int, error) {
	p, err := NewTablePlan(t, data.TableName(), bup.mdm)
	if err != nil {
		return 0, err
	}
	sp := NewSelectPlan(p, data.Pred())

	scan, err := sp.Open()
	if err != nil {
		return 0, err
	}
	us, ok := scan.(interfaces.UpdateScan)
	if !ok {
		return 0, fmt.Errorf("modify target is not updatable")
	}
	defer us.Close()

	count := 0
	for {
		ok, err := us.Next()
		if err != nil {
			return 0, err
		}
		if !ok {
			break
		}
		val, err := data.NewValue().Evaluate(us)
		if err != nil {
			return 0, err
		}
		if err := us.SetVal(data.TargetField(), val); err != nil {
			return 0, err
		}
		count++
	}

	return count, nil
}

func (bup *BasicUpdatePlanner) ExecuteInsert(data *parse.InsertData, t *tx.Transaction) (int, error) {
	p, err := NewTablePlan(t, data.TableName(), bup.mdm)
	if err != nil {
		return 0, err
	}

	scan, err := p.Open()
	if err != nil {
		return 0, err
	}
	us, ok := scan.(interfaces.UpdateScan)
	if !ok {
		return 0, fmt.Errorf("insert target is not updatable")
	}
	defer us.Close()

	if err := us.Insert(); err != nil {
		return 0, err
	}

	for i, fieldName := range data.Fields() {
		val := data.Values()[i]
		if err := us.SetVal(fieldName, val); err != nil {
			return 0, err
		}
	}

	return 1, nil
}

func (bup *BasicUpdatePlanner) ExecuteCreateTable(data *parse.CreateTableData, t *tx.Transaction) (int, error) {
	if err := bup.mdm.CreateTable(data.TableName(), data.NewSchema(), t); err != nil {
		return 0, err
	}
	return 0, nil
}

func (bup *BasicUpdatePlanner) ExecuteCreateView(data *parse.CreateViewData, t *tx.Transaction) (int, error) {
	if err := bup.mdm.CreateView(data.ViewName(), data.ViewDef(), t); err != nil {
		return 0, err
	}
	return 0, nil
}

func (bup *BasicUpdatePlanner) ExecuteCreateIndex(data *parse.CreateIndexData, t *tx.Transaction) (int, error) {
	if err := bup.mdm.CreateIndex(data.IndexName(), data.TableName(), data.FieldName(), t); err != nil {
		return 0, err
	}
	return 0, nil
}
