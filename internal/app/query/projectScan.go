package query

import (
	"errors"

	"quilldb/internal/app/interfaces"
	"quilldb/internal/app/types"
)

var ErrFieldNotFound = errors.New("field not found")

// ProjectScan narrows an underlying scan down to a fixed list of
// visible fields.
type ProjectScan struct {
	s         interfaces.Scan
	fieldList []string
}

func NewProjectScan(s interfaces.Scan, fieldList []string) *ProjectScan {
	return &ProjectScan{s: s, fieldList: fieldList}
}

func (ps *ProjectScan) BeforeFirst() error {
	return ps.s.BeforeFirst()
}

func (ps *ProjectScan) Next() (bool, error) {
	return ps.s.Next()
}

func (ps *ProjectScan) GetInt(fieldName string) (int, error) {
	if !ps.HasField(fieldName) {
		return 0, ErrFieldNotFound
	}
	return ps.s.GetInt(fieldName)
}

func (ps *ProjectScan) GetString(fieldName string) (string, error) {
	if !ps.HasField(fieldName) {
		return "", ErrFieldNotFound
	}
	return ps.s.GetString(fieldName)
}

func (ps *ProjectScan) GetVal(fieldName string) (types.Constant, error) {
	if !ps.HasField(fieldName) {
		return types.Constant{}, ErrFieldNotFound
	}
	return ps.s.GetVal(fieldName)
}

func (ps *ProjectScan) HasField(fieldName string) bool {
	for _, f := range ps.fieldList {
		if f == fieldName {
			return true
		}
	}
	return false
}

func (ps *ProjectScan) Close() error {
	return ps.s.Close()
}
