// Package tx composes block-granularity strict two-phase locking
// (LockTable, ConcurrencyManager), undo-only recovery (RecoveryManager
// and its log records), and the per-transaction API that ties them to
// the buffer pool (Transaction) — spec §4.5-§4.7.
package tx

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"quilldb/internal/app/dberr"
	"quilldb/internal/app/file"
	"quilldb/internal/metrics"
)

// DefaultLockWait is the maximum time a lock request waits on a
// conflicting holder before aborting (spec §4.5).
const DefaultLockWait = 10 * time.Second

// LockTable is the process-wide map of block to lock state: 0 means no
// lock, a positive count means that many shared holders, -1 means one
// exclusive holder. A single mutex/condition variable guards it.
type LockTable struct {
	mu   sync.Mutex
	cond *sync.Cond

	locks   map[file.BlockID]int
	maxWait time.Duration
	metrics *metrics.Registry
	log     zerolog.Logger
}

// NewLockTable creates an empty, process-wide lock table.
func NewLockTable(reg *metrics.Registry, log zerolog.Logger) *LockTable {
	lt := &LockTable{
		locks:   make(map[file.BlockID]int),
		maxWait: DefaultLockWait,
		metrics: reg,
		log:     log,
	}
	lt.cond = sync.NewCond(&lt.mu)
	return lt
}

// SLock acquires a shared lock on block, waiting out any exclusive
// holder up to the configured timeout.
func (lt *LockTable) SLock(block file.BlockID) error {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	deadline := time.Now().Add(lt.maxWait)
	waited := false
	for lt.hasXLock(block) {
		if time.Now().After(deadline) {
			lt.metrics.LockTimeouts.Inc()
			return fmt.Errorf("slock on %v: %w", block, dberr.ErrLockAbort)
		}
		if !waited {
			lt.metrics.LockWaits.Inc()
			waited = true
		}
		lt.waitUntil(deadline)
	}

	lt.locks[block] = lt.locks[block] + 1
	return nil
}

// XLock upgrades block to an exclusive lock. The caller must already
// hold an S lock on block (spec §4.5).
func (lt *LockTable) XLock(block file.BlockID) error {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	deadline := time.Now().Add(lt.maxWait)
	waited := false
	for lt.locks[block] > 1 {
		if time.Now().After(deadline) {
			lt.metrics.LockTimeouts.Inc()
			return fmt.Errorf("xlock on %v: %w", block, dberr.ErrLockAbort)
		}
		if !waited {
			lt.metrics.LockWaits.Inc()
			waited = true
		}
		lt.waitUntil(deadline)
	}

	lt.locks[block] = -1
	return nil
}

// Unlock releases one holder's lock on block.
func (lt *LockTable) Unlock(block file.BlockID) {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	val := lt.locks[block]
	if val > 1 {
		lt.locks[block] = val - 1
		return
	}
	delete(lt.locks, block)
	lt.cond.Broadcast()
}

func (lt *LockTable) hasXLock(block file.BlockID) bool {
	return lt.locks[block] < 0
}

func (lt *LockTable) waitUntil(deadline time.Time) {
	remaining := time.Until(deadline)
	if remaining <= 0 {
		return
	}
	timer := time.AfterFunc(remaining, func() {
		lt.mu.Lock()
		lt.cond.Broadcast()
		lt.mu.Unlock()
	})
	defer timer.Stop()
	lt.cond.Wait()
}
