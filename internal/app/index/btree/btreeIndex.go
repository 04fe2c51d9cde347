package btree

import (
	"math"

	"quilldb/internal/app/file"
	"quilldb/internal/app/record"
	"quilldb/internal/app/tx"
	"quilldb/internal/app/types"
)

// BTreeIndex implements index.Index as a two-file B-tree: a directory
// file ("{idxname}dir", root always at block 0, directory-page flag =
// its level) and a leaf file ("{idxname}leaf", leaf-page flag = -1, or
// the block number of an overflow chain continuation for blocks whose
// entries all share one key) — spec §5.
type BTreeIndex struct {
	tx         *tx.Transaction
	dirLayout  *record.Layout
	leafLayout *record.Layout
	leaftbl    string
	leaf       *BTreeLeaf
	rootBlock  file.BlockID
}

// NewBTreeIndex opens idxname's directory and leaf files, creating and
// formatting both (with a single minimum-key root entry) if they don't
// exist yet.
func NewBTreeIndex(t *tx.Transaction, idxname string, leafLayout *record.Layout) (*BTreeIndex, error) {
	idx := &BTreeIndex{
		tx:         t,
		leafLayout: leafLayout,
		leaftbl:    idxname + "leaf",
	}

	size, err := t.Size(idx.leaftbl)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		block, err := t.Append(idx.leaftbl)
		if err != nil {
			return nil, err
		}
		node, err := NewBTPage(t, block, leafLayout)
		if err != nil {
			return nil, err
		}
		if err := node.Format(block, -1); err != nil {
			return nil, err
		}
	}

	dirsch := record.NewSchema()
	dirsch.Add("block", leafLayout.Schema())
	dirsch.Add("dataval", leafLayout.Schema())
	dirtbl := idxname + "dir"
	idx.dirLayout = record.NewLayout(dirsch)
	idx.rootBlock = file.NewBlockID(dirtbl, 0)

	dirSize, err := t.Size(dirtbl)
	if err != nil {
		return nil, err
	}
	if dirSize == 0 {
		if _, err := t.Append(dirtbl); err != nil {
			return nil, err
		}
		node, err := NewBTPage(t, idx.rootBlock, idx.dirLayout)
		if err != nil {
			return nil, err
		}
		if err := node.Format(idx.rootBlock, 0); err != nil {
			return nil, err
		}

		var minval types.Constant
		if dirsch.DataType("dataval") == record.INTEGER {
			minval = types.NewConstantInt(math.MinInt32)
		} else {
			minval = types.NewConstantString("")
		}
		if err := node.InsertDir(0, minval, 0); err != nil {
			return nil, err
		}
		node.Close()
	}

	return idx, nil
}

// BeforeFirst descends the directory to the leaf block that could hold
// searchKey and positions a leaf cursor there.
func (idx *BTreeIndex) BeforeFirst(searchKey types.Constant) error {
	idx.Close()
	root, err := NewBTreeDir(idx.tx, idx.rootBlock, idx.dirLayout)
	if err != nil {
		return err
	}
	blockNum, err := root.Search(searchKey)
	root.Close()
	if err != nil {
		return err
	}
	leafBlock := file.NewBlockID(idx.leaftbl, blockNum)
	leaf, err := NewBTreeLeaf(idx.tx, leafBlock, idx.leafLayout, searchKey)
	if err != nil {
		return err
	}
	idx.leaf = leaf
	return nil
}

func (idx *BTreeIndex) Next() (bool, error) {
	return idx.leaf.Next()
}

func (idx *BTreeIndex) GetDataRid() (record.RID, error) {
	return idx.leaf.GetDataRid()
}

// Insert navigates to dataval's leaf and inserts an entry for datarid,
// propagating any split up through the directory and, if it reaches
// the root, growing the tree by one level.
func (idx *BTreeIndex) Insert(dataval types.Constant, datarid record.RID) error {
	if err := idx.BeforeFirst(dataval); err != nil {
		return err
	}
	e, err := idx.leaf.Insert(datarid)
	idx.leaf.Close()
	if err != nil {
		return err
	}
	if e == nil {
		return nil
	}

	root, err := NewBTreeDir(idx.tx, idx.rootBlock, idx.dirLayout)
	if err != nil {
		return err
	}
	defer root.Close()
	e2, err := root.Insert(e)
	if err != nil {
		return err
	}
	if e2 != nil {
		return root.MakeNewRoot(e2)
	}
	return nil
}

func (idx *BTreeIndex) Delete(dataval types.Constant, datarid record.RID) error {
	if err := idx.BeforeFirst(dataval); err != nil {
		return err
	}
	if err := idx.leaf.Delete(datarid); err != nil {
		idx.leaf.Close()
		return err
	}
	idx.leaf.Close()
	return nil
}

func (idx *BTreeIndex) Close() error {
	if idx.leaf != nil {
		idx.leaf.Close()
		idx.leaf = nil
	}
	return nil
}

// SearchCost estimates the block accesses needed to find all entries
// for one key: the directory's height plus one leaf access.
func SearchCost(numBlocks int, rpb int) int {
	height := 0
	for n := rpb; rpb > 1 && n <= numBlocks; n *= rpb {
		height++
	}
	return 1 + height
}
