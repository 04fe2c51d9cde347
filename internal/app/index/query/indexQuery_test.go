package query

import (
	"testing"

	"quilldb/internal/app/buffer"
	"quilldb/internal/app/file"
	"quilldb/internal/app/log"
	"quilldb/internal/app/metadata"
	"quilldb/internal/app/record"
	"quilldb/internal/app/tx"
	"quilldb/internal/app/types"
	"quilldb/internal/applog"
	"quilldb/internal/metrics"
)

func newIndexQueryTestTx(t *testing.T) (*tx.Transaction, *metadata.MetaDataManager) {
	t.Helper()
	dbDir := t.TempDir()

	fm, err := file.NewFileManager(dbDir, 400, applog.Nop())
	if err != nil {
		t.Fatalf("NewFileManager failed: %v", err)
	}
	lm, err := log.NewLogManager(fm, "testlog", applog.Nop())
	if err != nil {
		t.Fatalf("NewLogManager failed: %v", err)
	}
	reg := metrics.New()
	bm := buffer.NewManager(fm, lm, 8, reg, applog.Nop())
	lockTable := tx.NewLockTable(reg, applog.Nop())

	txn, err := tx.NewTransaction(fm, lm, bm, lockTable, reg, applog.Nop())
	if err != nil {
		t.Fatalf("NewTransaction failed: %v", err)
	}
	mdm, err := metadata.NewMetaDataManager(true, txn)
	if err != nil {
		t.Fatalf("NewMetaDataManager failed: %v", err)
	}
	return txn, mdm
}

// buildOrdersTable creates an "orders" table with fields custid and
// amount, an index on custid, and inserts n rows with custid cycling
// through 0..cycle-1.
func buildOrdersTable(t *testing.T, txn *tx.Transaction, mdm *metadata.MetaDataManager, n, cycle int) (*record.Layout, metadata.IndexInfo) {
	t.Helper()

	sch := record.NewSchema()
	sch.AddIntField("custid")
	sch.AddIntField("amount")
	if err := mdm.CreateTable("orders", sch, txn); err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}
	if err := mdm.CreateIndex("custid_idx", "orders", "custid", txn); err != nil {
		t.Fatalf("CreateIndex failed: %v", err)
	}

	layout, err := mdm.GetLayout("orders", txn)
	if err != nil {
		t.Fatalf("GetLayout failed: %v", err)
	}
	ts, err := record.NewTableScan(txn, "orders", layout)
	if err != nil {
		t.Fatalf("NewTableScan failed: %v", err)
	}
	defer ts.Close()

	indexes, err := mdm.GetIndexInfo("orders", txn)
	if err != nil {
		t.Fatalf("GetIndexInfo failed: %v", err)
	}
	ii := indexes["custid"]
	idx := ii.Open()
	defer idx.Close()

	for i := 0; i < n; i++ {
		if err := ts.Insert(); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		custid := i % cycle
		if err := ts.SetInt("custid", custid); err != nil {
			t.Fatalf("SetInt(custid) failed: %v", err)
		}
		if err := ts.SetInt("amount", i*10); err != nil {
			t.Fatalf("SetInt(amount) failed: %v", err)
		}
		rid, err := ts.GetRID()
		if err != nil {
			t.Fatalf("GetRID failed: %v", err)
		}
		if err := idx.Insert(types.NewConstantInt(custid), rid); err != nil {
			t.Fatalf("Insert into index failed: %v", err)
		}
	}

	return layout, ii
}

func TestIndexSelectScan_ReturnsOnlyMatchingRows(t *testing.T) {
	txn, mdm := newIndexQueryTestTx(t)
	defer txn.Commit()

	layout, ii := buildOrdersTable(t, txn, mdm, 6, 3)

	ts, err := record.NewTableScan(txn, "orders", layout)
	if err != nil {
		t.Fatalf("NewTableScan failed: %v", err)
	}

	idx := ii.Open()
	scan, err := NewIndexSelectScan(ts, idx, types.NewConstantInt(1))
	if err != nil {
		t.Fatalf("NewIndexSelectScan failed: %v", err)
	}
	defer scan.Close()

	count := 0
	for {
		ok, err := scan.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if !ok {
			break
		}
		custid, err := scan.GetInt("custid")
		if err != nil {
			t.Fatalf("GetInt failed: %v", err)
		}
		if custid != 1 {
			t.Errorf("GetInt(custid) = %d, want 1", custid)
		}
		count++
	}
	if count != 2 {
		t.Errorf("matched row count = %d, want 2", count)
	}
}

func TestIndexSelectScan_BeforeFirstResetsPosition(t *testing.T) {
	txn, mdm := newIndexQueryTestTx(t)
	defer txn.Commit()

	layout, ii := buildOrdersTable(t, txn, mdm, 4, 2)

	ts, err := record.NewTableScan(txn, "orders", layout)
	if err != nil {
		t.Fatalf("NewTableScan failed: %v", err)
	}
	idx := ii.Open()
	scan, err := NewIndexSelectScan(ts, idx, types.NewConstantInt(0))
	if err != nil {
		t.Fatalf("NewIndexSelectScan failed: %v", err)
	}
	defer scan.Close()

	first := 0
	for {
		ok, err := scan.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if !ok {
			break
		}
		first++
	}

	if err := scan.BeforeFirst(); err != nil {
		t.Fatalf("BeforeFirst failed: %v", err)
	}
	second := 0
	for {
		ok, err := scan.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if !ok {
			break
		}
		second++
	}
	if first != second {
		t.Errorf("row count before BeforeFirst = %d, after = %d, want equal", first, second)
	}
}

func TestIndexJoinScan_JoinsEachLhsRowThroughIndex(t *testing.T) {
	txn, mdm := newIndexQueryTestTx(t)
	defer txn.Commit()

	ordersLayout, ii := buildOrdersTable(t, txn, mdm, 6, 3)

	custSch := record.NewSchema()
	custSch.AddIntField("custid")
	custSch.AddStringField("name", 10)
	if err := mdm.CreateTable("customers", custSch, txn); err != nil {
		t.Fatalf("CreateTable(customers) failed: %v", err)
	}
	custLayout, err := mdm.GetLayout("customers", txn)
	if err != nil {
		t.Fatalf("GetLayout(customers) failed: %v", err)
	}
	custTS, err := record.NewTableScan(txn, "customers", custLayout)
	if err != nil {
		t.Fatalf("NewTableScan(customers) failed: %v", err)
	}
	defer custTS.Close()

	names := []string{"ann", "bo", "cy"}
	for i, name := range names {
		if err := custTS.Insert(); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		if err := custTS.SetInt("custid", i); err != nil {
			t.Fatalf("SetInt(custid) failed: %v", err)
		}
		if err := custTS.SetString("name", name); err != nil {
			t.Fatalf("SetString(name) failed: %v", err)
		}
	}
	if err := custTS.BeforeFirst(); err != nil {
		t.Fatalf("BeforeFirst failed: %v", err)
	}

	ordersTS, err := record.NewTableScan(txn, "orders", ordersLayout)
	if err != nil {
		t.Fatalf("NewTableScan(orders) failed: %v", err)
	}

	idx := ii.Open()
	join, err := NewIndexJoinScan(custTS, idx, "custid", ordersTS)
	if err != nil {
		t.Fatalf("NewIndexJoinScan failed: %v", err)
	}
	defer join.Close()

	count := 0
	for {
		ok, err := join.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if !ok {
			break
		}
		custid, err := join.GetInt("custid")
		if err != nil {
			t.Fatalf("GetInt(custid) failed: %v", err)
		}
		name, err := join.GetString("name")
		if err != nil {
			t.Fatalf("GetString(name) failed: %v", err)
		}
		if names[custid] != name {
			t.Errorf("joined row custid=%d name=%q, want %q", custid, name, names[custid])
		}
		count++
	}
	if count != 6 {
		t.Errorf("joined row count = %d, want 6 (every order joined to its customer)", count)
	}
}
