package planner

import (
	"fmt"

	"quilldb/internal/app/index"
	"quilldb/internal/app/interfaces"
	"quilldb/internal/app/metadata"
	"quilldb/internal/app/parse"
	"quilldb/internal/app/plan"
	"quilldb/internal/app/tx"
)

// IndexUpdatePlanner is BasicUpdatePlanner's index-aware counterpart:
// every insert/delete/modify also maintains the indexes defined on the
// affected fields.
type IndexUpdatePlanner struct {
	mdm *metadata.MetaDataManager
}

func NewIndexUpdatePlanner(mdm *metadata.MetaDataManager) *IndexUpdatePlanner {
	return &IndexUpdatePlanner{
		mdm: mdm,
	}
}

func (iup *IndexUpdatePlanner) ExecuteInsert(data *parse.InsertData, t *tx.Transaction) (int, error) {
	tableName := data.TableName()

	p, err := plan.NewTablePlan(t, tableName, iup.mdm)
	if err != nil {
		return 0, err
	}

	scan, err := p.Open()
	if err != nil {
		return 0, err
	}
	s, ok := scan.(interfaces.UpdateScan)
	if !ok {
		return 0, fmt.Errorf("insert target is not updatable")
	}
	defer s.Close()

	if err := s.Insert(); err != nil {
		return 0, err
	}
	rid, err := s.GetRID()
	if err != nil {
		return 0, err
	}

	indexes, err := iup.mdm.GetIndexInfo(tableName, t)
	if err != nil {
		return 0, err
	}

	fields := data.Fields()
	values := data.Values()
	if len(fields) != len(values) {
		return 0, fmt.Errorf("field/value count mismatch in insert operation")
	}

	for i, fieldName := range fields {
		val := values[i]
		if err := s.SetVal(fieldName, val); err != nil {
			return 0, err
		}

		if ii, exists := indexes[fieldName]; exists {
			idx := ii.Open()
			if err := idx.Insert(val, rid); err != nil {
				idx.Close()
				return 0, err
			}
			if err := idx.Close(); err != nil {
				return 0, err
			}
		}
	}

	return 1, nil
}

func (iup *IndexUpdatePlanner) ExecuteDelete(data *parse.DeleteData, t *tx.Transaction) (int, error) {
	tableName := data.TableName()

	p, err := plan.NewTablePlan(t, tableName, iup.mdm)
	if err != nil {
		return 0, err
	}
	sp := plan.NewSelectPlan(p, data.Pred())

	indexes, err := iup.mdm.GetIndexInfo(tableName, t)
	if err != nil {
		return 0, err
	}

	scan, err := sp.Open()
	if err != nil {
		return 0, err
	}
	s, ok := scan.(interfaces.UpdateScan)
	if !ok {
		return 0, fmt.Errorf("delete target is not updatable")
	}
	defer s.Close()

	count := 0
	for {
		ok, err := s.Next()
		if err != nil {
			return 0, err
		}
		if !ok {
			break
		}

		rid, err := s.GetRID()
		if err != nil {
			return 0, err
		}

		for fldName, ii := range indexes {
			val, err := s.GetVal(fldName)
			if err != nil {
				return 0, err
			}
			idx := ii.Open()
			if err := idx.Delete(val, rid); err != nil {
				idx.Close()
				return 0, err
			}
			if err := idx.Close(); err != nil {
				return 0, err
			}
		}

		if err := s.Delete(); err != nil {
			return 0, err
		}
		count++
	}

	return count, nil
}

func (iup *IndexUpdatePlanner) ExecuteModify(data *parse.ModifyData, t *tx.Transaction) (int, error) {
	tableName := data.TableName()
	fieldName := data.TargetField()

	p, err := plan.NewTablePlan(t, tableName, iup.mdm)
	if err != nil {
		return 0, err
	}
	sp := plan.NewSelectPlan(p, data.Pred())

	indexes, err := iup.mdm.GetIndexInfo(tableName, t)
	if err != nil {
		return 0, err
	}
	ii, hasIndex := indexes[fieldName]
	var idx index.Index
	if hasIndex {
		idx = ii.Open()
		defer idx.Close()
	}

	scan, err := sp.Open()
	if err != nil {
		return 0, err
	}
	s, ok := scan.(interfaces.UpdateScan)
	if !ok {
		return 0, fmt.Errorf("modify target is not updatable")
	}
	defer s.Close()

	count := 0
	for {
		ok, err := s.Next()
		if err != nil {
			return 0, err
		}
		if !ok {
			break
		}

		newVal, err := data.NewValue().Evaluate(s)
		if err != nil {
			return 0, err
		}
		oldVal, err := s.GetVal(fieldName)
		if err != nil {
			return 0, err
		}
		if err := s.SetVal(fieldName, newVal); err != nil {
			return 0, err
		}

		if hasIndex {
			rid, err := s.GetRID()
			if err != nil {
				return 0, err
			}
			if err := idx.Delete(oldVal, rid); err != nil {
				return 0, err
			}
			if err := idx.Insert(newVal, rid); err != nil {
				return 0, err
			}
		}
		count++
	}

	return count, nil
}

func (iup *IndexUpdatePlanner) ExecuteCreateTable(data *parse.CreateTableData, t *tx.Transaction) (int, error) {
	if err := iup.mdm.CreateTable(data.TableName(), data.NewSchema(), t); err != nil {
		return 0, err
	}
	return 0, nil
}

func (iup *IndexUpdatePlanner) ExecuteCreateView(data *parse.CreateViewData, t *tx.Transaction) (int, error) {
	if err := iup.mdm.CreateView(data.ViewName(), data.ViewDef(), t); err != nil {
		return 0, err
	}
	return 0, nil
}

func (iup *IndexUpdatePlanner) ExecuteCreateIndex(data *parse.CreateIndexData, t *tx.Transaction) (int, error) {
	if err := iup.mdm.CreateIndex(data.IndexName(), data.TableName(), data.FieldName(), t); err != nil {
		return 0, err
	}
	return 0, nil
}
