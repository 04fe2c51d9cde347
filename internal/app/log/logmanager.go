// Package log implements the append-only write-ahead log: variable-length
// records chained by back-pointer within a block so they can be replayed
// in reverse (spec §3 "Log record", §4.4, §6).
package log

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"quilldb/internal/app/dberr"
	"quilldb/internal/app/file"
)

// LogManager appends variable-length log records and flushes them to
// disk on demand. Every call is atomic with respect to every other call
// (single mutex, spec §5).
//
// Wire format (spec §3, §6): offset 0 of the current block holds a
// 4-byte tail pointer — the offset of the most recently written record's
// header (0 if the block holds no record yet). Each record is written as
// a 4-byte big-endian length prefix, the payload bytes, and a trailing
// 4-byte little-endian back-pointer to the previous record's header (0
// terminates the chain). The LSN of a record is defined as the block
// number it was written into.
type LogManager struct {
	mu sync.Mutex

	fm      *file.FileManager
	logfile string
	log     zerolog.Logger

	page         *file.Page
	currentBlock file.BlockID
	currentPos   int // next free offset in page
	lastTailPtr  int // header offset of the most recent record in page

	lastSavedLSN int // highest LSN (block number) known durable
}

// NewLogManager opens (or creates) logfile within fm's database
// directory and positions the in-memory tail page at the log's current
// end.
func NewLogManager(fm *file.FileManager, logfile string, log zerolog.Logger) (*LogManager, error) {
	lm := &LogManager{
		fm:      fm,
		logfile: logfile,
		log:     log,
		page:    file.NewPage(fm.BlockSize()),
	}

	size, err := fm.Size(logfile)
	if err != nil {
		return nil, fmt.Errorf("size of log file: %w", err)
	}

	if size == 0 {
		blk, err := lm.appendNewBlock()
		if err != nil {
			return nil, err
		}
		lm.currentBlock = blk
	} else {
		lm.currentBlock = file.NewBlockID(logfile, size-1)
		if err := fm.Read(lm.currentBlock, lm.page); err != nil {
			return nil, fmt.Errorf("read last log block: %w", err)
		}
		lm.lastTailPtr = int(lm.page.GetInt(0))
		lm.currentPos = lm.recordEnd(lm.lastTailPtr)
		lm.lastSavedLSN = lm.currentBlock.Number()
	}

	return lm, nil
}

// recordEnd returns the offset just past the record whose header is at
// headerPos, i.e. the next free byte in the page. headerPos == 0 means
// "no record yet", so the next free byte is right after the tail pointer
// field.
func (lm *LogManager) recordEnd(headerPos int) int {
	if headerPos == 0 {
		return 4
	}
	payloadLen := lm.page.PayloadLen(headerPos)
	return headerPos + 4 + payloadLen + 4
}

// Append writes rec as a new log record and returns its LSN (the block
// number it landed in). LSNs are monotonically nondecreasing.
func (lm *LogManager) Append(rec []byte) (int, error) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	needed := 4 + len(rec) + 4 // length prefix + payload + back-pointer
	if needed > lm.fm.BlockSize()-4 {
		return 0, fmt.Errorf("log record of %d bytes exceeds block capacity: %w", len(rec), dberr.ErrProgrammer)
	}

	if lm.currentPos+needed > lm.fm.BlockSize() {
		if err := lm.flushLocked(); err != nil {
			return 0, err
		}
		blk, err := lm.appendNewBlock()
		if err != nil {
			return 0, err
		}
		lm.currentBlock = blk
	}

	recPos := lm.currentPos
	lm.page.SetBytes(recPos, rec)
	backPtrPos := recPos + 4 + len(rec)
	lm.page.SetInt(backPtrPos, int32(lm.lastTailPtr))

	lm.lastTailPtr = recPos
	lm.page.SetInt(0, int32(recPos))
	lm.currentPos = backPtrPos + 4

	lm.log.Debug().Int("lsn", lm.currentBlock.Number()).Int("bytes", len(rec)).Msg("log record appended")
	return lm.currentBlock.Number(), nil
}

func (lm *LogManager) appendNewBlock() (file.BlockID, error) {
	lm.page.Clear()
	lm.page.SetInt(0, 0)
	blk, err := lm.fm.Append(lm.logfile, lm.page)
	if err != nil {
		return file.BlockID{}, fmt.Errorf("append log block: %w", err)
	}
	lm.currentPos = 4
	lm.lastTailPtr = 0
	return blk, nil
}

// Flush forces every record with LSN <= lsn to disk.
func (lm *LogManager) Flush(lsn int) error {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	if lsn >= lm.lastSavedLSN {
		return lm.flushLocked()
	}
	return nil
}

func (lm *LogManager) flushLocked() error {
	if err := lm.fm.Write(lm.currentBlock, lm.page); err != nil {
		return fmt.Errorf("flush log block: %w", err)
	}
	lm.lastSavedLSN = lm.currentBlock.Number()
	return nil
}

// Iterator flushes the log and returns a cursor over its records in
// reverse chronological order, starting from the most recently written
// record.
func (lm *LogManager) Iterator() (*Iterator, error) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	if err := lm.flushLocked(); err != nil {
		return nil, err
	}
	return newIterator(lm.fm, lm.currentBlock)
}
