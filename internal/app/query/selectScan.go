package query

import (
	"errors"

	"quilldb/internal/app/interfaces"
	"quilldb/internal/app/record"
	"quilldb/internal/app/types"
)

var errNotUpdatable = errors.New("underlying scan does not support updates")

// SelectScan filters an underlying scan down to the records satisfying
// a predicate. If the underlying scan is itself updatable, SelectScan
// forwards writes to it.
type SelectScan struct {
	s    interfaces.Scan
	pred *Predicate
}

func NewSelectScan(s interfaces.Scan, pred *Predicate) *SelectScan {
	return &SelectScan{s: s, pred: pred}
}

func (ss *SelectScan) BeforeFirst() error {
	return ss.s.BeforeFirst()
}

// Next advances the underlying scan until a record satisfies the
// predicate, or the underlying scan is exhausted.
func (ss *SelectScan) Next() (bool, error) {
	for {
		ok, err := ss.s.Next()
		if err != nil || !ok {
			return false, err
		}
		satisfied, err := ss.pred.IsSatisfied(ss.s)
		if err != nil {
			return false, err
		}
		if satisfied {
			return true, nil
		}
	}
}

func (ss *SelectScan) GetInt(fieldName string) (int, error) {
	return ss.s.GetInt(fieldName)
}

func (ss *SelectScan) GetString(fieldName string) (string, error) {
	return ss.s.GetString(fieldName)
}

func (ss *SelectScan) GetVal(fieldName string) (types.Constant, error) {
	return ss.s.GetVal(fieldName)
}

func (ss *SelectScan) HasField(fieldName string) bool {
	return ss.s.HasField(fieldName)
}

func (ss *SelectScan) Close() error {
	return ss.s.Close()
}

func (ss *SelectScan) asUpdatable() (interfaces.UpdateScan, error) {
	us, ok := ss.s.(interfaces.UpdateScan)
	if !ok {
		return nil, errNotUpdatable
	}
	return us, nil
}

func (ss *SelectScan) SetInt(fieldName string, val int) error {
	us, err := ss.asUpdatable()
	if err != nil {
		return err
	}
	return us.SetInt(fieldName, val)
}

func (ss *SelectScan) SetString(fieldName string, val string) error {
	us, err := ss.asUpdatable()
	if err != nil {
		return err
	}
	return us.SetString(fieldName, val)
}

func (ss *SelectScan) SetVal(fieldName string, val types.Constant) error {
	us, err := ss.asUpdatable()
	if err != nil {
		return err
	}
	return us.SetVal(fieldName, val)
}

func (ss *SelectScan) Delete() error {
	us, err := ss.asUpdatable()
	if err != nil {
		return err
	}
	return us.Delete()
}

// Insert creates a new record via the underlying scan. The caller is
// responsible for then writing values that satisfy this select's
// predicate, mirroring the way an update planner uses a select scan to
// target an insert.
func (ss *SelectScan) Insert() error {
	us, err := ss.asUpdatable()
	if err != nil {
		return err
	}
	return us.Insert()
}

func (ss *SelectScan) GetRID() (record.RID, error) {
	us, err := ss.asUpdatable()
	if err != nil {
		return record.RID{}, err
	}
	return us.GetRID()
}

func (ss *SelectScan) MoveToRID(rid record.RID) error {
	us, err := ss.asUpdatable()
	if err != nil {
		return err
	}
	return us.MoveToRID(rid)
}
