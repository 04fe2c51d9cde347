package tx

import "quilldb/internal/app/file"

type lockMode int

const (
	modeShared lockMode = iota
	modeExclusive
)

// ConcurrencyManager tracks the locks a single transaction holds and
// mediates its requests through the shared LockTable. slock is
// idempotent; xlock auto-upgrades by first taking S, then promoting
// (spec §4.5).
type ConcurrencyManager struct {
	lockTable *LockTable
	held      map[file.BlockID]lockMode
}

// NewConcurrencyManager returns a per-transaction concurrency manager
// backed by the shared lock table lt.
func NewConcurrencyManager(lt *LockTable) *ConcurrencyManager {
	return &ConcurrencyManager{
		lockTable: lt,
		held:      make(map[file.BlockID]lockMode),
	}
}

// SLock obtains a shared lock on block if this transaction does not
// already hold a lock on it.
func (cm *ConcurrencyManager) SLock(block file.BlockID) error {
	if _, ok := cm.held[block]; ok {
		return nil
	}
	if err := cm.lockTable.SLock(block); err != nil {
		return err
	}
	cm.held[block] = modeShared
	return nil
}

// XLock obtains an exclusive lock on block, upgrading from shared if
// necessary.
func (cm *ConcurrencyManager) XLock(block file.BlockID) error {
	if cm.held[block] == modeExclusive {
		return nil
	}
	if err := cm.SLock(block); err != nil {
		return err
	}
	if err := cm.lockTable.XLock(block); err != nil {
		return err
	}
	cm.held[block] = modeExclusive
	return nil
}

// Release drops every lock this transaction holds. Called exactly once,
// at commit or rollback (strict 2PL).
func (cm *ConcurrencyManager) Release() {
	for block := range cm.held {
		cm.lockTable.Unlock(block)
	}
	cm.held = make(map[file.BlockID]lockMode)
}
