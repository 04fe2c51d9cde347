package record

import "fmt"

// RID identifies a record by the block it lives in and its slot within
// that block's page.
type RID struct {
	blockNum int
	slot     int
}

func NewRID(blocknum int, slot int) RID {
	return RID{blockNum: blocknum, slot: slot}
}

func (rid RID) BlockNumber() int { return rid.blockNum }
func (rid RID) Slot() int        { return rid.slot }

func (rid RID) String() string {
	return fmt.Sprintf("[%d, %d]", rid.blockNum, rid.slot)
}
