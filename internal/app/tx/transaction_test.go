package tx_test

import (
	"testing"

	"quilldb/internal/app/buffer"
	"quilldb/internal/app/file"
	"quilldb/internal/app/log"
	"quilldb/internal/app/tx"
	"quilldb/internal/applog"
	"quilldb/internal/metrics"
)

func newTransactionTestDeps(t *testing.T) (*file.FileManager, *log.LogManager, *buffer.Manager, *tx.LockTable) {
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
	return fm, lm, bm, lockTable
}

func newTestTransaction(t *testing.T) *tx.Transaction {
	t.Helper()
	fm, lm, bm, lockTable := newTransactionTestDeps(t)
	reg := metrics.New()
	txn, err := tx.NewTransaction(fm, lm, bm, lockTable, reg, applog.Nop())
	if err != nil {
		t.Fatalf("NewTransaction failed: %v", err)
	}
	return txn
}

func TestTransaction_SetGetIntRoundTrip(t *testing.T) {
	txn := newTestTransaction(t)
	defer txn.Commit()

	block, err := txn.Append("txfile")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := txn.Pin(block); err != nil {
		t.Fatalf("Pin failed: %v", err)
	}

	if err := txn.SetInt(block, 0, 123, true); err != nil {
		t.Fatalf("SetInt failed: %v", err)
	}

	got, err := txn.GetInt(block, 0)
	if err != nil {
		t.Fatalf("GetInt failed: %v", err)
	}
	if got != 123 {
		t.Errorf("GetInt = %d, want 123", got)
	}
}

func TestTransaction_SetGetStringRoundTrip(t *testing.T) {
	txn := newTestTransaction(t)
	defer txn.Commit()

	block, err := txn.Append("txfile2")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := txn.Pin(block); err != nil {
		t.Fatalf("Pin failed: %v", err)
	}

	if err := txn.SetString(block, 0, "hello", true); err != nil {
		t.Fatalf("SetString failed: %v", err)
	}

	got, err := txn.GetString(block, 0)
	if err != nil {
		t.Fatalf("GetString failed: %v", err)
	}
	if got != "hello" {
		t.Errorf("GetString = %q, want %q", got, "hello")
	}
}

func TestTransaction_SizeAfterAppend(t *testing.T) {
	txn := newTestTransaction(t)
	defer txn.Commit()

	before, err := txn.Size("txfile3")
	if err != nil {
		t.Fatalf("Size failed: %v", err)
	}
	if _, err := txn.Append("txfile3"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	after, err := txn.Size("txfile3")
	if err != nil {
		t.Fatalf("Size failed: %v", err)
	}
	if after != before+1 {
		t.Errorf("Size after one Append = %d, want %d", after, before+1)
	}
}

func TestTransaction_CommitPersistsWrites(t *testing.T) {
	fm, lm, bm, lockTable := newTransactionTestDeps(t)
	reg := metrics.New()

	txn1, err := tx.NewTransaction(fm, lm, bm, lockTable, reg, applog.Nop())
	if err != nil {
		t.Fatalf("NewTransaction failed: %v", err)
	}
	block, err := txn1.Append("txfile4")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := txn1.Pin(block); err != nil {
		t.Fatalf("Pin failed: %v", err)
	}
	if err := txn1.SetInt(block, 0, 77, true); err != nil {
		t.Fatalf("SetInt failed: %v", err)
	}
	if err := txn1.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	txn2, err := tx.NewTransaction(fm, lm, bm, lockTable, reg, applog.Nop())
	if err != nil {
		t.Fatalf("NewTransaction failed: %v", err)
	}
	defer txn2.Commit()
	if err := txn2.Pin(block); err != nil {
		t.Fatalf("Pin failed: %v", err)
	}
	got, err := txn2.GetInt(block, 0)
	if err != nil {
		t.Fatalf("GetInt failed: %v", err)
	}
	if got != 77 {
		t.Errorf("GetInt after commit = %d, want 77", got)
	}
}

func TestTransaction_RollbackUndoesWrites(t *testing.T) {
	fm, lm, bm, lockTable := newTransactionTestDeps(t)
	reg := metrics.New()

	setup, err := tx.NewTransaction(fm, lm, bm, lockTable, reg, applog.Nop())
	if err != nil {
		t.Fatalf("NewTransaction failed: %v", err)
	}
	block, err := setup.Append("txfile5")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := setup.Pin(block); err != nil {
		t.Fatalf("Pin failed: %v", err)
	}
	if err := setup.SetInt(block, 0, 1, true); err != nil {
		t.Fatalf("SetInt failed: %v", err)
	}
	if err := setup.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	txn, err := tx.NewTransaction(fm, lm, bm, lockTable, reg, applog.Nop())
	if err != nil {
		t.Fatalf("NewTransaction failed: %v", err)
	}
	if err := txn.Pin(block); err != nil {
		t.Fatalf("Pin failed: %v", err)
	}
	if err := txn.SetInt(block, 0, 999, true); err != nil {
		t.Fatalf("SetInt failed: %v", err)
	}
	if err := txn.Rollback(); err != nil {
		t.Fatalf("Rollback failed: %v", err)
	}

	verify, err := tx.NewTransaction(fm, lm, bm, lockTable, reg, applog.Nop())
	if err != nil {
		t.Fatalf("NewTransaction failed: %v", err)
	}
	defer verify.Commit()
	if err := verify.Pin(block); err != nil {
		t.Fatalf("Pin failed: %v", err)
	}
	got, err := verify.GetInt(block, 0)
	if err != nil {
		t.Fatalf("GetInt failed: %v", err)
	}
	if got != 1 {
		t.Errorf("GetInt after rollback = %d, want 1 (the pre-rollback committed value)", got)
	}
}

func TestTransaction_TxNumbersAreDistinct(t *testing.T) {
	fm, lm, bm, lockTable := newTransactionTestDeps(t)
	reg := metrics.New()

	t1, err := tx.NewTransaction(fm, lm, bm, lockTable, reg, applog.Nop())
	if err != nil {
		t.Fatalf("NewTransaction failed: %v", err)
	}
	defer t1.Commit()
	t2, err := tx.NewTransaction(fm, lm, bm, lockTable, reg, applog.Nop())
	if err != nil {
		t.Fatalf("NewTransaction failed: %v", err)
	}
	defer t2.Commit()

	if t1.TxNumber() == t2.TxNumber() {
		t.Error("distinct transactions should get distinct transaction numbers")
	}
}
