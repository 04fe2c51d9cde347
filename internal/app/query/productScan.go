package query

import (
	"quilldb/internal/app/interfaces"
	"quilldb/internal/app/types"
)

// ProductScan computes the Cartesian product of two scans: for each
// record of s1, every record of s2.
type ProductScan struct {
	s1 interfaces.Scan
	s2 interfaces.Scan
}

func NewProductScan(s1, s2 interfaces.Scan) (*ProductScan, error) {
	ps := &ProductScan{s1: s1, s2: s2}
	if _, err := s1.Next(); err != nil {
		return nil, err
	}
	return ps, nil
}

func (ps *ProductScan) BeforeFirst() error {
	if err := ps.s1.BeforeFirst(); err != nil {
		return err
	}
	if _, err := ps.s1.Next(); err != nil {
		return err
	}
	return ps.s2.BeforeFirst()
}

// Next advances s2; once s2 is exhausted it is reset and s1 advances
// one record, positioning at s2's first row under the new s1 record.
func (ps *ProductScan) Next() (bool, error) {
	ok, err := ps.s2.Next()
	if err != nil || ok {
		return ok, err
	}

	if err := ps.s2.BeforeFirst(); err != nil {
		return false, err
	}
	s2ok, err := ps.s2.Next()
	if err != nil || !s2ok {
		return false, err
	}
	return ps.s1.Next()
}

func (ps *ProductScan) GetInt(fieldName string) (int, error) {
	if ps.s1.HasField(fieldName) {
		return ps.s1.GetInt(fieldName)
	}
	return ps.s2.GetInt(fieldName)
}

func (ps *ProductScan) GetString(fieldName string) (string, error) {
	if ps.s1.HasField(fieldName) {
		return ps.s1.GetString(fieldName)
	}
	return ps.s2.GetString(fieldName)
}

func (ps *ProductScan) GetVal(fieldName string) (types.Constant, error) {
	if ps.s1.HasField(fieldName) {
		return ps.s1.GetVal(fieldName)
	}
	return ps.s2.GetVal(fieldName)
}

func (ps *ProductScan) HasField(fieldName string) bool {
	return ps.s1.HasField(fieldName) || ps.s2.HasField(fieldName)
}

func (ps *ProductScan) Close() error {
	if err := ps.s1.Close(); err != nil {
		return err
	}
	return ps.s2.Close()
}
