package tx

import (
	"testing"

	"quilldb/internal/app/file"
)

func TestConcurrencyManager_SLockIdempotent(t *testing.T) {
	cm := NewConcurrencyManager(newTestLockTable())
	block := file.NewBlockID("f", 0)

	if err := cm.SLock(block); err != nil {
		t.Fatalf("first SLock failed: %v", err)
	}
	if err := cm.SLock(block); err != nil {
		t.Fatalf("second SLock on the same block should be a no-op, got: %v", err)
	}
	if cm.held[block] != modeShared {
		t.Errorf("held mode = %v, want modeShared", cm.held[block])
	}
}

func TestConcurrencyManager_XLockUpgradesFromShared(t *testing.T) {
	cm := NewConcurrencyManager(newTestLockTable())
	block := file.NewBlockID("f", 0)

	if err := cm.SLock(block); err != nil {
		t.Fatalf("SLock failed: %v", err)
	}
	if err := cm.XLock(block); err != nil {
		t.Fatalf("XLock failed: %v", err)
	}
	if cm.held[block] != modeExclusive {
		t.Errorf("held mode after XLock = %v, want modeExclusive", cm.held[block])
	}
}

func TestConcurrencyManager_XLockDirect(t *testing.T) {
	cm := NewConcurrencyManager(newTestLockTable())
	block := file.NewBlockID("f", 1)

	if err := cm.XLock(block); err != nil {
		t.Fatalf("XLock failed: %v", err)
	}
	if cm.held[block] != modeExclusive {
		t.Errorf("held mode = %v, want modeExclusive", cm.held[block])
	}
}

func TestConcurrencyManager_Release(t *testing.T) {
	lt := newTestLockTable()
	cm := NewConcurrencyManager(lt)
	block := file.NewBlockID("f", 2)

	if err := cm.XLock(block); err != nil {
		t.Fatalf("XLock failed: %v", err)
	}
	cm.Release()

	if len(cm.held) != 0 {
		t.Errorf("held map after Release has %d entries, want 0", len(cm.held))
	}
	if lt.locks[block] != 0 {
		t.Errorf("lock table entry for block after Release = %d, want 0", lt.locks[block])
	}
}
