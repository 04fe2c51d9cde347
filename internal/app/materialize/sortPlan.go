package materialize

import (
	"quilldb/internal/app/interfaces"
	"quilldb/internal/app/record"
	"quilldb/internal/app/tx"
)

// SortPlan sorts its source plan's output via external merge sort:
// split into sorted runs, merge pairs of runs each iteration until one
// or two remain, and let SortScan merge those on demand.
type SortPlan struct {
	tx   *tx.Transaction
	p    interfaces.Plan
	sch  *record.Schema
	comp *RecordComparator
}

func newSortPlan(t *tx.Transaction, p interfaces.Plan, sortFields []string) *SortPlan {
	return &SortPlan{
		tx:   t,
		p:    p,
		sch:  p.Schema(),
		comp: NewRecordComparator(sortFields),
	}
}

func (sp *SortPlan) Open() (interfaces.Scan, error) {
	src, err := sp.p.Open()
	if err != nil {
		return nil, err
	}
	runs, err := sp.SplitIntoRuns(src)
	if err != nil {
		src.Close()
		return nil, err
	}
	if err := src.Close(); err != nil {
		return nil, err
	}

	for len(runs) > 2 {
		runs, err = sp.doMergeIteration(runs)
		if err != nil {
			return nil, err
		}
	}

	return NewSortScan(runs, sp.comp)
}

// BlocksAccessed excludes the temp blocks used while sorting: the same
// as materializing the results.
func (sp *SortPlan) BlocksAccessed() int {
	mp := NewMaterializePlan(sp.tx, sp.p)
	return mp.BlocksAccessed()
}

func (sp *SortPlan) RecordsOutput() int {
	return sp.p.RecordsOutput()
}

func (sp *SortPlan) DistinctValues(fldname string) int {
	return sp.p.DistinctValues(fldname)
}

func (sp *SortPlan) Schema() *record.Schema {
	return sp.sch
}

// SplitIntoRuns divides src into runs, each stored in a temp table and
// sorted, starting a new run whenever the order would be violated.
func (sp *SortPlan) SplitIntoRuns(src interfaces.Scan) ([]*TempTable, error) {
	var runs []*TempTable
	if err := src.BeforeFirst(); err != nil {
		return nil, err
	}

	ok, err := src.Next()
	if err != nil {
		return nil, err
	}
	if !ok {
		return runs, nil
	}

	currentTemp := NewTempTable(sp.tx, sp.sch)
	runs = append(runs, currentTemp)
	currentScan, err := currentTemp.Open()
	if err != nil {
		return nil, err
	}

	for {
		if err := sp.copyRecord(src, currentScan); err != nil {
			return nil, err
		}

		ok, err := src.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		cmp, err := sp.comp.Compare(src, currentScan)
		if err != nil {
			return nil, err
		}
		if cmp < 0 {
			currentScan.Close()
			currentTemp = NewTempTable(sp.tx, sp.sch)
			runs = append(runs, currentTemp)
			currentScan, err = currentTemp.Open()
			if err != nil {
				return nil, err
			}
		}
	}

	currentScan.Close()
	return runs, nil
}

func (sp *SortPlan) doMergeIteration(runs []*TempTable) ([]*TempTable, error) {
	var result []*TempTable
	for len(runs) > 1 {
		p1 := runs[0]
		p2 := runs[1]
		runs = runs[2:]

		merged, err := sp.mergeTwoRuns(p1, p2)
		if err != nil {
			return nil, err
		}
		result = append(result, merged)
	}

	if len(runs) == 1 {
		result = append(result, runs[0])
	}

	return result, nil
}

func (sp *SortPlan) mergeTwoRuns(p1, p2 *TempTable) (*TempTable, error) {
	src1, err := p1.Open()
	if err != nil {
		return nil, err
	}
	src2, err := p2.Open()
	if err != nil {
		src1.Close()
		return nil, err
	}
	defer src1.Close()
	defer src2.Close()

	result := NewTempTable(sp.tx, sp.sch)
	dest, err := result.Open()
	if err != nil {
		return nil, err
	}
	defer dest.Close()

	hasMore1, err := src1.Next()
	if err != nil {
		return nil, err
	}
	hasMore2, err := src2.Next()
	if err != nil {
		return nil, err
	}

	for hasMore1 && hasMore2 {
		cmp, err := sp.comp.Compare(src1, src2)
		if err != nil {
			return nil, err
		}
		if cmp < 0 {
			hasMore1, err = sp.copyRecordNext(src1, dest)
		} else {
			hasMore2, err = sp.copyRecordNext(src2, dest)
		}
		if err != nil {
			return nil, err
		}
	}

	for hasMore1 {
		hasMore1, err = sp.copyRecordNext(src1, dest)
		if err != nil {
			return nil, err
		}
	}
	for hasMore2 {
		hasMore2, err = sp.copyRecordNext(src2, dest)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (sp *SortPlan) copyRecord(src interfaces.Scan, dest *record.TableScan) error {
	if err := dest.Insert(); err != nil {
		return err
	}
	for _, fieldName := range sp.sch.Fields() {
		val, err := src.GetVal(fieldName)
		if err != nil {
			return err
		}
		if err := dest.SetVal(fieldName, val); err != nil {
			return err
		}
	}
	return nil
}

func (sp *SortPlan) copyRecordNext(src interfaces.Scan, dest *record.TableScan) (bool, error) {
	if err := sp.copyRecord(src, dest); err != nil {
		return false, err
	}
	return src.Next()
}
