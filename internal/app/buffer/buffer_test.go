package buffer

import (
	"os"
	"testing"

	"quilldb/internal/app/file"
	"quilldb/internal/app/log"
	"quilldb/internal/applog"
)

func testSetup(t *testing.T) (*file.FileManager, *log.LogManager, func()) {
	dbDir, err := os.MkdirTemp("", "buffer_test_db_*")
	if err != nil {
		t.Fatalf("Failed to create test directory: %v", err)
	}

	fm, err := file.NewFileManager(dbDir, 400, applog.Nop())
	if err != nil {
		t.Fatalf("Failed to create FileManager: %v", err)
	}
	lm, err := log.NewLogManager(fm, "testlog", applog.Nop())
	if err != nil {
		t.Fatalf("Failed to create LogManager: %v", err)
	}

	cleanup := func() {
		os.RemoveAll(dbDir)
	}

	return fm, lm, cleanup
}

func TestBuffer_NewBuffer(t *testing.T) {
	fm, lm, cleanup := testSetup(t)
	defer cleanup()

	buf := newBuffer(fm, lm)

	if buf.IsPinned() {
		t.Error("New buffer should have 0 pins")
	}
	if buf.ModifyingTx() != -1 {
		t.Errorf("New buffer should have txnum -1, got %d", buf.ModifyingTx())
	}
	if buf.bound {
		t.Error("New buffer should not be bound to a block")
	}
}

func Test_PinUnpin(t *testing.T) {
	fm, lm, cleanup := testSetup(t)
	defer cleanup()

	buf := newBuffer(fm, lm)

	buf.pin()
	if !buf.IsPinned() {
		t.Error("Buffer should be pinned after pin()")
	}
	if buf.pins != 1 {
		t.Errorf("Expected pins to be 1, got %d", buf.pins)
	}

	buf.pin()
	if buf.pins != 2 {
		t.Errorf("Expected pins to be 2, got %d", buf.pins)
	}

	buf.unpin()
	if buf.pins != 1 {
		t.Errorf("Expected pins to be 1, got %d", buf.pins)
	}
	if !buf.IsPinned() {
		t.Error("Buffer should still be pinned")
	}

	buf.unpin()
	if buf.IsPinned() {
		t.Error("Buffer should not be pinned")
	}
}

func TestBuffer_AssignToBlock(t *testing.T) {
	fm, lm, cleanup := testSetup(t)
	defer cleanup()

	buf := newBuffer(fm, lm)

	filename := "testfile"
	block := file.NewBlockID(filename, 1)

	buf.pin()
	if err := buf.assignToBlock(block); err != nil {
		t.Fatalf("assignToBlock failed: %v", err)
	}

	page := buf.Contents()
	if err := page.SetString(0, "test data", file.MaxLength(9)); err != nil {
		t.Fatalf("SetString failed: %v", err)
	}
	buf.SetModified(1, 1)

	buf.unpin()

	newBlock := file.NewBlockID("testfile2", 1)
	if err := buf.assignToBlock(newBlock); err != nil {
		t.Fatalf("assignToBlock failed: %v", err)
	}

	if buf.Block() != newBlock {
		t.Error("Buffer should be assigned to the new block")
	}
	if buf.pins != 0 {
		t.Errorf("Pins should be reset to 0, got %d", buf.pins)
	}
	if buf.ModifyingTx() != -1 {
		t.Error("Modified flag should be reset")
	}
}

func TestBuffer_SetModified(t *testing.T) {
	fm, lm, cleanup := testSetup(t)
	defer cleanup()

	buf := newBuffer(fm, lm)
	buf.SetModified(1, 100)

	if buf.ModifyingTx() != 1 {
		t.Errorf("Expecting modifying tx to be 1, got %d", buf.ModifyingTx())
	}
	if buf.lsn != 100 {
		t.Errorf("LSN should be 100, got %d", buf.lsn)
	}
}

func TestBuffer_Flush(t *testing.T) {
	fm, lm, cleanup := testSetup(t)
	defer cleanup()

	buf := newBuffer(fm, lm)

	block := file.NewBlockID("testfile", 1)
	if err := buf.assignToBlock(block); err != nil {
		t.Fatalf("assignToBlock failed: %v", err)
	}

	page := buf.Contents()
	if err := page.SetString(0, "test data", file.MaxLength(9)); err != nil {
		t.Fatalf("SetString failed: %v", err)
	}
	buf.SetModified(1, 100)

	if err := buf.flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}

	if buf.ModifyingTx() != -1 {
		t.Error("Buffer should not be marked as modified after flush")
	}

	newBuf := newBuffer(fm, lm)
	if err := newBuf.assignToBlock(block); err != nil {
		t.Fatalf("assignToBlock failed: %v", err)
	}
	if newBuf.Contents().GetString(0) != "test data" {
		t.Error("Data was not persisted after flush")
	}
}
