package metadata

import (
	"quilldb/internal/app/record"
	"quilldb/internal/app/tx"
)

// MaxName bounds the length of table and field names stored in the
// catalog tables.
const MaxName = 16

// TableManager owns the two bootstrap catalog tables — tblcat (one row
// per table, its slot size) and fldcat (one row per field, its type,
// length and offset) — and builds Layouts for any table by reading them
// back out.
type TableManager struct {
	tcatLayout *record.Layout
	fcatLayout *record.Layout
}

// NewTableManager builds the catalog layouts and, if isNew, creates the
// catalog tables themselves so they can in turn describe themselves.
func NewTableManager(isNew bool, t *tx.Transaction) (*TableManager, error) {
	tcatSchema := record.NewSchema()
	tcatSchema.AddStringField("tblname", MaxName)
	tcatSchema.AddIntField("slotsize")
	tcatLayout := record.NewLayout(tcatSchema)

	fcatSchema := record.NewSchema()
	fcatSchema.AddStringField("tblname", MaxName)
	fcatSchema.AddStringField("fldname", MaxName)
	fcatSchema.AddIntField("type")
	fcatSchema.AddIntField("length")
	fcatSchema.AddIntField("offset")
	fcatLayout := record.NewLayout(fcatSchema)

	tm := &TableManager{
		tcatLayout: tcatLayout,
		fcatLayout: fcatLayout,
	}

	if isNew {
		if err := tm.CreateTable("tblcat", tcatSchema, t); err != nil {
			return nil, err
		}
		if err := tm.CreateTable("fldcat", fcatSchema, t); err != nil {
			return nil, err
		}
	}

	return tm, nil
}

// CreateTable registers tablename's schema in both catalog tables.
func (tm *TableManager) CreateTable(tablename string, schema *record.Schema, t *tx.Transaction) error {
	layout := record.NewLayout(schema)

	tcat, err := record.NewTableScan(t, "tblcat", tm.tcatLayout)
	if err != nil {
		return err
	}
	if err := tcat.Insert(); err != nil {
		return err
	}
	if err := tcat.SetString("tblname", tablename); err != nil {
		return err
	}
	if err := tcat.SetInt("slotsize", layout.SlotSize()); err != nil {
		return err
	}
	if err := tcat.Close(); err != nil {
		return err
	}

	fcat, err := record.NewTableScan(t, "fldcat", tm.fcatLayout)
	if err != nil {
		return err
	}
	for _, fieldname := range schema.Fields() {
		if err := fcat.Insert(); err != nil {
			return err
		}
		if err := fcat.SetString("tblname", tablename); err != nil {
			return err
		}
		if err := fcat.SetString("fldname", fieldname); err != nil {
			return err
		}
		if err := fcat.SetInt("type", int(schema.DataType(fieldname))); err != nil {
			return err
		}
		if err := fcat.SetInt("length", schema.Length(fieldname)); err != nil {
			return err
		}
		if err := fcat.SetInt("offset", layout.Offset(fieldname)); err != nil {
			return err
		}
	}
	return fcat.Close()
}

// GetLayout reconstructs tablename's Layout by scanning both catalog
// tables for the rows describing it.
func (tm *TableManager) GetLayout(tablename string, t *tx.Transaction) (*record.Layout, error) {
	size := -1

	tcat, err := record.NewTableScan(t, "tblcat", tm.tcatLayout)
	if err != nil {
		return nil, err
	}
	for {
		ok, err := tcat.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		name, err := tcat.GetString("tblname")
		if err != nil {
			return nil, err
		}
		if name == tablename {
			size, err = tcat.GetInt("slotsize")
			if err != nil {
				return nil, err
			}
			break
		}
	}
	if err := tcat.Close(); err != nil {
		return nil, err
	}

	schema := record.NewSchema()
	offsets := make(map[string]int)

	fcat, err := record.NewTableScan(t, "fldcat", tm.fcatLayout)
	if err != nil {
		return nil, err
	}
	for {
		ok, err := fcat.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		name, err := fcat.GetString("tblname")
		if err != nil {
			return nil, err
		}
		if name != tablename {
			continue
		}
		fieldname, err := fcat.GetString("fldname")
		if err != nil {
			return nil, err
		}
		fieldType, err := fcat.GetInt("type")
		if err != nil {
			return nil, err
		}
		fieldLen, err := fcat.GetInt("length")
		if err != nil {
			return nil, err
		}
		offset, err := fcat.GetInt("offset")
		if err != nil {
			return nil, err
		}

		offsets[fieldname] = offset
		schema.AddField(fieldname, record.FieldType(fieldType), fieldLen)
	}
	if err := fcat.Close(); err != nil {
		return nil, err
	}

	return record.NewLayoutWithOffsets(schema, offsets, size), nil
}
