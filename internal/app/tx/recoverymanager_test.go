package tx

import (
	"testing"

	"quilldb/internal/app/buffer"
	"quilldb/internal/app/file"
	"quilldb/internal/app/log"
	"quilldb/internal/applog"
	"quilldb/internal/metrics"
)

func TestRecoveryManager_RecoverUndoesUncommittedWrites(t *testing.T) {
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
	lockTable := NewLockTable(reg, applog.Nop())

	committer, err := NewTransaction(fm, lm, bm, lockTable, reg, applog.Nop())
	if err != nil {
		t.Fatalf("NewTransaction failed: %v", err)
	}
	block, err := committer.Append("recoverfile")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := committer.Pin(block); err != nil {
		t.Fatalf("Pin failed: %v", err)
	}
	if err := committer.SetInt(block, 0, 5, true); err != nil {
		t.Fatalf("SetInt failed: %v", err)
	}
	if err := committer.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	crashed, err := NewTransaction(fm, lm, bm, lockTable, reg, applog.Nop())
	if err != nil {
		t.Fatalf("NewTransaction failed: %v", err)
	}
	if err := crashed.Pin(block); err != nil {
		t.Fatalf("Pin failed: %v", err)
	}
	if err := crashed.SetInt(block, 0, 999, true); err != nil {
		t.Fatalf("SetInt failed: %v", err)
	}
	// simulate a crash: neither Commit nor Rollback is ever called for
	// this transaction, so Recover must undo its write.

	recoverer, err := NewTransaction(fm, lm, bm, lockTable, reg, applog.Nop())
	if err != nil {
		t.Fatalf("NewTransaction failed: %v", err)
	}
	if err := recoverer.Recover(); err != nil {
		t.Fatalf("Recover failed: %v", err)
	}

	verify, err := NewTransaction(fm, lm, bm, lockTable, reg, applog.Nop())
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
	if got != 5 {
		t.Errorf("GetInt after Recover = %d, want 5 (the last committed value)", got)
	}
}
