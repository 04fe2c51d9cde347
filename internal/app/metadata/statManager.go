package metadata

import (
	"sync"

	"quilldb/internal/app/record"
	"quilldb/internal/app/tx"
)

// StatManager caches per-table statistics, refreshing all of them every
// 100 calls to GetStatInfo rather than recomputing on every query.
type StatManager struct {
	tm         *TableManager
	tableStats map[string]StatInfo
	numCalls   int
	mu         sync.Mutex
}

func NewStatManager(tm *TableManager, t *tx.Transaction) (*StatManager, error) {
	sm := &StatManager{
		tm:         tm,
		tableStats: make(map[string]StatInfo),
	}
	if err := sm.refreshStatistics(t); err != nil {
		return nil, err
	}
	return sm, nil
}

// GetStatInfo returns tablename's cached statistics, computing them on
// first use and triggering a full refresh every 100th call.
func (sm *StatManager) GetStatInfo(tablename string, layout *record.Layout, t *tx.Transaction) (StatInfo, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.numCalls++
	if sm.numCalls >= 100 {
		if err := sm.refreshStatistics(t); err != nil {
			return StatInfo{}, err
		}
	}

	si, exists := sm.tableStats[tablename]
	if !exists {
		var err error
		si, err = sm.calcTableStats(tablename, layout, t)
		if err != nil {
			return StatInfo{}, err
		}
		sm.tableStats[tablename] = si
	}
	return si, nil
}

// RefreshStatistics forces an immediate recomputation of every table's
// statistics.
func (sm *StatManager) RefreshStatistics(t *tx.Transaction) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.refreshStatistics(t)
}

func (sm *StatManager) refreshStatistics(t *tx.Transaction) error {
	sm.tableStats = make(map[string]StatInfo)
	sm.numCalls = 0

	tcatLayout, err := sm.tm.GetLayout("tblcat", t)
	if err != nil {
		return err
	}

	ts, err := record.NewTableScan(t, "tblcat", tcatLayout)
	if err != nil {
		return err
	}
	defer ts.Close()

	for {
		ok, err := ts.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		tableName, err := ts.GetString("tblname")
		if err != nil {
			return err
		}
		layout, err := sm.tm.GetLayout(tableName, t)
		if err != nil {
			return err
		}
		stats, err := sm.calcTableStats(tableName, layout, t)
		if err != nil {
			return err
		}
		sm.tableStats[tableName] = stats
	}
	return nil
}

func (sm *StatManager) calcTableStats(tablename string, layout *record.Layout, t *tx.Transaction) (StatInfo, error) {
	numRecs := 0
	numBlocks := 0

	ts, err := record.NewTableScan(t, tablename, layout)
	if err != nil {
		return StatInfo{}, err
	}
	defer ts.Close()

	for {
		ok, err := ts.Next()
		if err != nil {
			return StatInfo{}, err
		}
		if !ok {
			break
		}
		numRecs++
		rid, err := ts.GetRID()
		if err != nil {
			return StatInfo{}, err
		}
		if rid.BlockNumber()+1 > numBlocks {
			numBlocks = rid.BlockNumber() + 1
		}
	}

	return *NewStatInfo(numBlocks, numRecs), nil
}
