package embedded

import (
	"fmt"
	"strings"

	"quilldb/internal/app/interfaces"
	"quilldb/internal/app/record"
)

type EmbeddedResultSet struct {
	s    interfaces.Scan
	sch  *record.Schema
	conn *EmbeddedConnection
}

func NewEmbeddedResultSet(plan interfaces.Plan, conn *EmbeddedConnection) (*EmbeddedResultSet, error) {
	s, err := plan.Open()
	if err != nil {
		return nil, err
	}
	return &EmbeddedResultSet{
		s:    s,
		sch:  plan.Schema(),
		conn: conn,
	}, nil
}

func (ers *EmbeddedResultSet) Next() (success bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			success = false
			ers.conn.rollback()
			err = fmt.Errorf("panic recovered in Next(): %v", r)
		}
	}()

	success, err = ers.s.Next()
	if err != nil {
		ers.conn.rollback()
		return false, err
	}
	return success, nil
}

func (ers *EmbeddedResultSet) GetInt(fldName string) (result int, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = 0
			ers.conn.rollback()
			err = fmt.Errorf("panic in GetInt for field %s: %v", fldName, r)
		}
	}()

	if ers == nil || ers.s == nil {
		return 0, fmt.Errorf("null pointer: resultSet is not initialized")
	}

	fldName = strings.ToLower(fldName)
	result, err = ers.s.GetInt(fldName)
	if err != nil {
		ers.conn.rollback()
		return 0, err
	}

	return result, nil
}

func (ers *EmbeddedResultSet) GetString(fldName string) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = ""
			ers.conn.rollback()
			err = fmt.Errorf("panic in GetString for field %s: %v", fldName, r)
		}
	}()

	if ers == nil || ers.s == nil {
		return "", fmt.Errorf("null pointer: resultSet is not initialized")
	}

	fldName = strings.ToLower(fldName)
	result, err = ers.s.GetString(fldName)
	if err != nil {
		ers.conn.rollback()
		return "", err
	}

	return result, nil
}

func (ers *EmbeddedResultSet) GetMetaData() *EmbeddedMetaData {
	return NewEmbeddedMetaData(ers.sch)
}

func (ers *EmbeddedResultSet) Close() error {
	if err := ers.s.Close(); err != nil {
		return err
	}
	return ers.conn.commit()
}
