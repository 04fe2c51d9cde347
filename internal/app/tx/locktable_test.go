package tx

import (
	"errors"
	"sync"
	"testing"
	"time"

	"quilldb/internal/app/dberr"
	"quilldb/internal/app/file"
	"quilldb/internal/applog"
	"quilldb/internal/metrics"
)

func newTestLockTable() *LockTable {
	return NewLockTable(metrics.New(), applog.Nop())
}

func TestNewLockTable(t *testing.T) {
	lt := newTestLockTable()
	if lt.locks == nil {
		t.Error("locks map was not initialized")
	}
}

func TestSLock(t *testing.T) {
	lt := newTestLockTable()
	block := file.NewBlockID("test.db", 1)

	t.Run("Basic SLock", func(t *testing.T) {
		if err := lt.SLock(block); err != nil {
			t.Errorf("Failed to acquire SLock: %v", err)
		}
		if lt.locks[block] != 1 {
			t.Errorf("Expected lock value 1, got %d", lt.locks[block])
		}
	})

	t.Run("Multiple SLocks", func(t *testing.T) {
		if err := lt.SLock(block); err != nil {
			t.Errorf("Failed to acquire second SLock: %v", err)
		}
		if lt.locks[block] != 2 {
			t.Errorf("Expected lock value 2, got %d", lt.locks[block])
		}
	})

	t.Run("SLock Timeout with XLock", func(t *testing.T) {
		lt := newTestLockTable()
		lt.maxWait = 50 * time.Millisecond
		block2 := file.NewBlockID("test.db", 2)

		if err := lt.XLock(block2); err != nil {
			t.Errorf("Failed to acquire XLock: %v", err)
		}

		err := lt.SLock(block2)
		if !errors.Is(err, dberr.ErrLockAbort) {
			t.Errorf("Expected lock abort error, got %v", err)
		}
	})
}

func TestXLock(t *testing.T) {
	lt := newTestLockTable()
	block := file.NewBlockID("test.db", 1)

	t.Run("Basic XLock", func(t *testing.T) {
		if err := lt.XLock(block); err != nil {
			t.Errorf("Failed to acquire XLock: %v", err)
		}
		if lt.locks[block] != -1 {
			t.Errorf("Expected lock value -1, got %d", lt.locks[block])
		}
	})

	t.Run("XLock Timeout with SLock", func(t *testing.T) {
		lt := newTestLockTable()
		lt.maxWait = 50 * time.Millisecond
		block2 := file.NewBlockID("test.db", 2)

		// Another holder's S lock plus the caller's own: XLock has to
		// wait for the other holder to leave.
		if err := lt.SLock(block2); err != nil {
			t.Errorf("Failed to acquire other holder's SLock: %v", err)
		}
		if err := lt.SLock(block2); err != nil {
			t.Errorf("Failed to acquire SLock: %v", err)
		}

		err := lt.XLock(block2)
		if !errors.Is(err, dberr.ErrLockAbort) {
			t.Errorf("Expected lock abort error, got %v", err)
		}
	})
}

func TestUnlock(t *testing.T) {
	lt := newTestLockTable()
	block := file.NewBlockID("test.db", 1)

	t.Run("Unlock Single SLock", func(t *testing.T) {
		if err := lt.SLock(block); err != nil {
			t.Errorf("Failed to acquire SLock: %v", err)
		}
		lt.Unlock(block)
		if lt.locks[block] != 0 {
			t.Errorf("Expected lock value 0 got %d", lt.locks[block])
		}
	})

	t.Run("Unlock Multiple SLocks", func(t *testing.T) {
		if err := lt.SLock(block); err != nil {
			t.Errorf("Failed to acquire first SLock: %v", err)
		}
		if err := lt.SLock(block); err != nil {
			t.Errorf("Failed to acquire second SLock: %v", err)
		}

		lt.Unlock(block)
		if lt.locks[block] != 1 {
			t.Errorf("Expected lock value 1, got %d", lt.locks[block])
		}
	})

	t.Run("Unlock XLock", func(t *testing.T) {
		block2 := file.NewBlockID("test.db", 2)
		if err := lt.XLock(block2); err != nil {
			t.Errorf("Failed to acquire XLock: %v", err)
		}

		lt.Unlock(block2)
		if lt.locks[block2] != 0 {
			t.Errorf("Expected lock value 0, got %d", lt.locks[block2])
		}
	})
}

func TestLockTable_Concurrency(t *testing.T) {
	lt := newTestLockTable()
	block := file.NewBlockID("test.db", 1)
	const numGoroutines = 10

	t.Run("Concurrent SLocks", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < numGoroutines; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := lt.SLock(block); err != nil {
					t.Errorf("Failed to acquire concurrent SLock: %v", err)
				}
			}()
		}
		wg.Wait()

		if lt.locks[block] != numGoroutines {
			t.Errorf("Expected %d SLocks, got %d", numGoroutines, lt.locks[block])
		}
	})

	t.Run("Concurrent Unlocks", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < numGoroutines; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				lt.Unlock(block)
			}()
		}
		wg.Wait()

		if lt.locks[block] != 0 {
			t.Errorf("Expected 0 locks after concurrent unlocks, got %d", lt.locks[block])
		}
	})

	t.Run("XLock Blocks Concurrent SLock Until Released", func(t *testing.T) {
		lt := newTestLockTable()
		lt.maxWait = 200 * time.Millisecond
		if err := lt.XLock(block); err != nil {
			t.Errorf("Failed to acquire XLock: %v", err)
		}

		errorChan := make(chan error, numGoroutines)
		var wg sync.WaitGroup
		for i := 0; i < numGoroutines; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errorChan <- lt.SLock(block)
			}()
		}

		go func() {
			time.Sleep(20 * time.Millisecond)
			lt.Unlock(block)
		}()

		wg.Wait()
		close(errorChan)

		for err := range errorChan {
			if err != nil && !errors.Is(err, dberr.ErrLockAbort) {
				t.Errorf("Unexpected error during concurrent access: %v", err)
			}
		}
	})
}
