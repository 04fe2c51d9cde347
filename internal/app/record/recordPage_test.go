package record

import (
	"testing"

	"quilldb/internal/app/buffer"
	"quilldb/internal/app/file"
	"quilldb/internal/app/log"
	"quilldb/internal/app/tx"
	"quilldb/internal/applog"
	"quilldb/internal/metrics"
)

func newRecordPageTestTx(t *testing.T) *tx.Transaction {
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
	return txn
}

func newTestLayout() *Layout {
	sch := NewSchema()
	sch.AddIntField("id")
	sch.AddStringField("name", 10)
	return NewLayout(sch)
}

func TestRecordPage_FormatInsertGetSet(t *testing.T) {
	txn := newRecordPageTestTx(t)
	defer txn.Commit()

	layout := newTestLayout()
	block, err := txn.Append("recfile")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	rp, err := NewRecordPage(txn, block, layout)
	if err != nil {
		t.Fatalf("NewRecordPage failed: %v", err)
	}
	if err := rp.Format(); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	slot, err := rp.InsertAfter(-1)
	if err != nil {
		t.Fatalf("InsertAfter failed: %v", err)
	}
	if slot != 0 {
		t.Fatalf("first InsertAfter(-1) = %d, want 0", slot)
	}

	if err := rp.SetInt(slot, "id", 42); err != nil {
		t.Fatalf("SetInt failed: %v", err)
	}
	if err := rp.SetString(slot, "name", "alice"); err != nil {
		t.Fatalf("SetString failed: %v", err)
	}

	gotID, err := rp.GetInt(slot, "id")
	if err != nil {
		t.Fatalf("GetInt failed: %v", err)
	}
	if gotID != 42 {
		t.Errorf("GetInt(id) = %d, want 42", gotID)
	}

	gotName, err := rp.GetString(slot, "name")
	if err != nil {
		t.Fatalf("GetString failed: %v", err)
	}
	if gotName != "alice" {
		t.Errorf("GetString(name) = %q, want %q", gotName, "alice")
	}
}

func TestRecordPage_DeleteThenNextAfterSkipsIt(t *testing.T) {
	txn := newRecordPageTestTx(t)
	defer txn.Commit()

	layout := newTestLayout()
	block, err := txn.Append("recfile2")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	rp, err := NewRecordPage(txn, block, layout)
	if err != nil {
		t.Fatalf("NewRecordPage failed: %v", err)
	}
	if err := rp.Format(); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	slot0, err := rp.InsertAfter(-1)
	if err != nil || slot0 < 0 {
		t.Fatalf("InsertAfter failed: slot=%d err=%v", slot0, err)
	}
	slot1, err := rp.InsertAfter(slot0)
	if err != nil || slot1 < 0 {
		t.Fatalf("InsertAfter failed: slot=%d err=%v", slot1, err)
	}

	if err := rp.Delete(slot0); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	next, err := rp.NextAfter(-1)
	if err != nil {
		t.Fatalf("NextAfter failed: %v", err)
	}
	if next != slot1 {
		t.Errorf("NextAfter(-1) after deleting slot0 = %d, want %d", next, slot1)
	}
}

func TestRecordPage_InsertAfterReturnsMinusOneWhenFull(t *testing.T) {
	txn := newRecordPageTestTx(t)
	defer txn.Commit()

	layout := newTestLayout()
	block, err := txn.Append("recfile3")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	rp, err := NewRecordPage(txn, block, layout)
	if err != nil {
		t.Fatalf("NewRecordPage failed: %v", err)
	}
	if err := rp.Format(); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	slot := -1
	for {
		next, err := rp.InsertAfter(slot)
		if err != nil {
			t.Fatalf("InsertAfter failed: %v", err)
		}
		if next < 0 {
			break
		}
		slot = next
	}

	again, err := rp.InsertAfter(slot)
	if err != nil {
		t.Fatalf("InsertAfter failed: %v", err)
	}
	if again != -1 {
		t.Errorf("InsertAfter on a full block = %d, want -1", again)
	}
}
