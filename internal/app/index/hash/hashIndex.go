package hash

import (
	"fmt"

	"quilldb/internal/app/index"
	"quilldb/internal/app/record"
	"quilldb/internal/app/tx"
	"quilldb/internal/app/types"
)

// NumBuckets is the number of hash buckets a key's hash code is reduced
// into; each bucket is its own table, named "{idxname}{bucket}".
const NumBuckets = 100

// HashIndex implements index.Index with static hashing: a search key's
// hash code selects one of NumBuckets tables, and that whole table is
// scanned linearly for matching entries.
type HashIndex struct {
	tx        *tx.Transaction
	idxName   string
	layout    *record.Layout
	searchKey types.Constant
	ts        *record.TableScan
}

func NewHashIndex(t *tx.Transaction, idxName string, layout *record.Layout) index.Index {
	return &HashIndex{
		tx:      t,
		idxName: idxName,
		layout:  layout,
	}
}

// BeforeFirst positions the index at the start of searchKey's bucket
// table, creating the table if this is its first use.
func (hi *HashIndex) BeforeFirst(searchKey types.Constant) error {
	if err := hi.Close(); err != nil {
		return err
	}
	hi.searchKey = searchKey
	bucket := searchKey.HashCode() % NumBuckets
	tableName := fmt.Sprintf("%s%d", hi.idxName, bucket)
	ts, err := record.NewTableScan(hi.tx, tableName, hi.layout)
	if err != nil {
		return err
	}
	hi.ts = ts
	return nil
}

// Next scans forward through the bucket table for the next entry whose
// dataval equals the search key.
func (hi *HashIndex) Next() (bool, error) {
	for {
		ok, err := hi.ts.Next()
		if err != nil || !ok {
			return false, err
		}
		val, err := hi.ts.GetVal("dataval")
		if err != nil {
			return false, err
		}
		if val.Equals(hi.searchKey) {
			return true, nil
		}
	}
}

func (hi *HashIndex) GetDataRid() (record.RID, error) {
	blockNum, err := hi.ts.GetInt("block")
	if err != nil {
		return record.RID{}, err
	}
	id, err := hi.ts.GetInt("id")
	if err != nil {
		return record.RID{}, err
	}
	return record.NewRID(blockNum, id), nil
}

// Insert appends a new entry for (val, rid) to val's bucket table.
func (hi *HashIndex) Insert(val types.Constant, rid record.RID) error {
	if err := hi.BeforeFirst(val); err != nil {
		return err
	}
	if err := hi.ts.Insert(); err != nil {
		return err
	}
	if err := hi.ts.SetInt("block", rid.BlockNumber()); err != nil {
		return err
	}
	if err := hi.ts.SetInt("id", rid.Slot()); err != nil {
		return err
	}
	return hi.ts.SetVal("dataval", val)
}

// Delete scans val's bucket table for the entry matching rid and
// removes it.
func (hi *HashIndex) Delete(val types.Constant, rid record.RID) error {
	if err := hi.BeforeFirst(val); err != nil {
		return err
	}
	for {
		ok, err := hi.Next()
		if err != nil || !ok {
			return err
		}
		dataRid, err := hi.GetDataRid()
		if err != nil {
			return err
		}
		if dataRid == rid {
			return hi.ts.Delete()
		}
	}
}

func (hi *HashIndex) Close() error {
	if hi.ts != nil {
		if err := hi.ts.Close(); err != nil {
			return err
		}
		hi.ts = nil
	}
	return nil
}

// SearchCost estimates the block accesses needed to find all entries
// for one key under a uniform hash distribution: the bucket table's
// share of the index's total blocks.
func SearchCost(numBlocks int, rpb int) int {
	return numBlocks / NumBuckets
}
