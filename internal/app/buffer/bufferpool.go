package buffer

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"quilldb/internal/app/dberr"
	"quilldb/internal/app/file"
	"quilldb/internal/app/log"
	"quilldb/internal/metrics"
)

// DefaultMaxWait is the default time a pin waits for a free buffer
// before aborting (spec §4.3, §5).
const DefaultMaxWait = 10 * time.Second

// Manager is the bounded buffer pool: a fixed-size array of buffer
// slots, pinned to blocks on demand, replaced naive-first-unpinned, and
// guarded by a single mutex + condition variable (spec §4.3, §5).
type Manager struct {
	mu   sync.Mutex
	cond *sync.Cond

	pool         []*Buffer
	numAvailable int
	maxWait      time.Duration

	metrics *metrics.Registry
	log     zerolog.Logger
}

// NewManager allocates numBuffs buffer slots backed by fm/lm.
func NewManager(fm *file.FileManager, lm *log.LogManager, numBuffs int, reg *metrics.Registry, log zerolog.Logger) *Manager {
	m := &Manager{
		pool:         make([]*Buffer, numBuffs),
		numAvailable: numBuffs,
		maxWait:      DefaultMaxWait,
		metrics:      reg,
		log:          log,
	}
	m.cond = sync.NewCond(&m.mu)
	for i := range m.pool {
		m.pool[i] = newBuffer(fm, lm)
	}
	return m
}

// Available returns the number of currently unpinned buffer slots.
func (m *Manager) Available() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.numAvailable
}

// FlushAll flushes every buffer last modified by txnum.
func (m *Manager) FlushAll(txnum int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range m.pool {
		if b.ModifyingTx() == txnum {
			if err := b.flush(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Unpin releases one pin on buff. If it becomes fully unpinned, waiters
// are woken.
func (m *Manager) Unpin(buff *Buffer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	buff.unpin()
	if !buff.IsPinned() {
		m.numAvailable++
		m.metrics.BufferPinned.Dec()
		m.cond.Broadcast()
	}
}

// Pin pins block to a buffer, waiting for an available slot if
// necessary, up to the configured max wait. Returns dberr.ErrBufferAbort
// on timeout.
func (m *Manager) Pin(block file.BlockID) (*Buffer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	deadline := time.Now().Add(m.maxWait)

	buff, err := m.tryToPin(block)
	if err != nil {
		return nil, err
	}

	waited := false
	for buff == nil {
		if time.Now().After(deadline) {
			m.metrics.BufferTimeouts.Inc()
			m.log.Error().Interface("block", block).Msg("buffer pin timed out")
			return nil, fmt.Errorf("pin block %v: %w", block, dberr.ErrBufferAbort)
		}
		if !waited {
			m.metrics.BufferWaits.Inc()
			m.log.Warn().Interface("block", block).Msg("waiting for a free buffer")
			waited = true
		}
		m.waitUntil(deadline)

		buff, err = m.tryToPin(block)
		if err != nil {
			return nil, err
		}
	}

	return buff, nil
}

// waitUntil blocks on the condition variable until woken or deadline
// passes, re-checking the deadline itself (spurious wakeups are handled
// by the caller's loop condition).
func (m *Manager) waitUntil(deadline time.Time) {
	remaining := time.Until(deadline)
	if remaining <= 0 {
		return
	}

	timer := time.AfterFunc(remaining, func() {
		m.mu.Lock()
		m.cond.Broadcast()
		m.mu.Unlock()
	})
	defer timer.Stop()

	m.cond.Wait()
}

// PinNew allocates a fresh block in filename, lets formatter initialize
// its page, and pins it.
func (m *Manager) PinNew(filename string, formatter func(*file.Page)) (*Buffer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	buff := m.chooseUnpinnedBuffer()
	if buff == nil {
		return nil, fmt.Errorf("allocate block in %s: %w", filename, dberr.ErrBufferAbort)
	}

	if err := buff.flush(); err != nil {
		return nil, err
	}

	formatter(buff.contents)

	blk, err := buff.fm.Append(filename, buff.contents)
	if err != nil {
		return nil, err
	}
	buff.block = blk
	buff.bound = true
	buff.pins = 0

	m.numAvailable--
	buff.pin()
	m.metrics.BufferPinned.Inc()
	return buff, nil
}

func (m *Manager) tryToPin(block file.BlockID) (*Buffer, error) {
	buff := m.findExistingBuffer(block)
	if buff == nil {
		buff = m.chooseUnpinnedBuffer()
		if buff == nil {
			m.metrics.BufferMisses.Inc()
			return nil, nil
		}
		if err := buff.assignToBlock(block); err != nil {
			return nil, err
		}
		m.metrics.BufferMisses.Inc()
	} else {
		m.metrics.BufferHits.Inc()
	}

	if !buff.IsPinned() {
		m.numAvailable--
		m.metrics.BufferPinned.Inc()
	}
	buff.pin()
	return buff, nil
}

func (m *Manager) findExistingBuffer(block file.BlockID) *Buffer {
	for _, b := range m.pool {
		if b.bound && b.block == block {
			return b
		}
	}
	return nil
}

func (m *Manager) chooseUnpinnedBuffer() *Buffer {
	for _, b := range m.pool {
		if !b.IsPinned() {
			return b
		}
	}
	return nil
}
