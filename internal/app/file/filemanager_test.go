package file

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"quilldb/internal/applog"
)

func setupTestDir(t *testing.T) string {
	dir, err := os.MkdirTemp("", "filemanager_test_*")
	if err != nil {
		t.Fatalf("Failed to create test directory: %v", err)
	}
	return dir
}

func cleanupTestDir(t *testing.T, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		t.Errorf("Failed to cleanup test directory: %v", err)
	}
}

func TestNewFileManager(t *testing.T) {
	testDir := setupTestDir(t)
	defer cleanupTestDir(t, testDir)

	dbPath := filepath.Join(testDir, "testdb_new")
	fm, err := NewFileManager(dbPath, 400, applog.Nop())
	if err != nil {
		t.Fatalf("NewFileManager() error = %v", err)
	}

	if !fm.IsNew() {
		t.Error("Expected IsNew() to be true for new directory")
	}
	if fm.BlockSize() != 400 {
		t.Errorf("BlockSize() = %v, want 400", fm.BlockSize())
	}
}

func TestFileManager_ReadWrite(t *testing.T) {
	testDir := setupTestDir(t)
	defer cleanupTestDir(t, testDir)

	blockSize := 400
	fm, err := NewFileManager(testDir, blockSize, applog.Nop())
	if err != nil {
		t.Fatalf("Failed to create FileManager: %v", err)
	}
	defer fm.Close()

	testData := make([]byte, blockSize)
	for i := range testData {
		testData[i] = byte(i % 256)
	}

	page := NewPageFromBytes(testData)
	blockID := NewBlockID("test.db", 0)

	if err := fm.Write(blockID, page); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	readPage := NewPageFromBytes(make([]byte, blockSize))
	if err := fm.Read(blockID, readPage); err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	for i := 0; i < blockSize; i++ {
		if page.Contents()[i] != readPage.Contents()[i] {
			t.Errorf("Data mismatch at position %d: got %v, want %v",
				i, readPage.Contents()[i], page.Contents()[i])
		}
	}
}

func TestFileManager_Append(t *testing.T) {
	testDir := setupTestDir(t)
	defer cleanupTestDir(t, testDir)

	blockSize := 400
	fm, err := NewFileManager(testDir, blockSize, applog.Nop())
	if err != nil {
		t.Fatalf("Failed to create FileManager: %v", err)
	}
	defer fm.Close()

	filename := "test.db"
	page := NewPage(blockSize)

	for i := 0; i < 3; i++ {
		blk, err := fm.Append(filename, page)
		if err != nil {
			t.Fatalf("Append failed: %v", err)
		}

		if blk.Number() != i {
			t.Errorf("Block number = %d, want %d", blk.Number(), i)
		}
	}

	length, err := fm.Size(filename)
	if err != nil {
		t.Fatalf("Size check failed: %v", err)
	}
	if length != 3 {
		t.Errorf("File length = %d, want 3", length)
	}
}

func TestFileManager_Size(t *testing.T) {
	testDir := setupTestDir(t)
	defer cleanupTestDir(t, testDir)

	blockSize := 400
	fm, err := NewFileManager(testDir, blockSize, applog.Nop())
	if err != nil {
		t.Fatalf("Failed to create FileManager: %v", err)
	}
	defer fm.Close()

	filename := "test.db"

	length, err := fm.Size(filename)
	if err != nil {
		t.Fatalf("Size check failed: %v", err)
	}
	if length != 0 {
		t.Errorf("Initial file length = %d, want 0", length)
	}

	if _, err := fm.Append(filename, NewPage(blockSize)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	length, err = fm.Size(filename)
	if err != nil {
		t.Fatalf("Size check failed: %v", err)
	}
	if length != 1 {
		t.Errorf("File length after append = %d, want 1", length)
	}
}

func TestFileManager_ConcurrentAccess(t *testing.T) {
	testDir := setupTestDir(t)
	defer cleanupTestDir(t, testDir)

	blockSize := 400
	fm, err := NewFileManager(testDir, blockSize, applog.Nop())
	if err != nil {
		t.Fatalf("Failed to create FileManager: %v", err)
	}
	defer fm.Close()

	const numGoroutines = 10
	done := make(chan error, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(n int) {
			filename := fmt.Sprintf("test%d.db", n)
			_, err := fm.Append(filename, NewPage(blockSize))
			done <- err
		}(i)
	}

	for i := 0; i < numGoroutines; i++ {
		if err := <-done; err != nil {
			t.Errorf("Concurrent append failed: %v", err)
		}
	}
}
