package log

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"quilldb/internal/app/file"
	"quilldb/internal/applog"
)

func setupTest(t *testing.T) (*LogManager, string, func()) {
	tempDir, err := os.MkdirTemp("", "logmanager_test_*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	fm, err := file.NewFileManager(tempDir, 400, applog.Nop())
	if err != nil {
		t.Fatalf("failed to create file manager: %v", err)
	}

	logFile := "test.log"
	lm, err := NewLogManager(fm, logFile, applog.Nop())
	if err != nil {
		t.Fatalf("failed to create log manager: %v", err)
	}

	cleanup := func() {
		os.RemoveAll(tempDir)
	}

	return lm, logFile, cleanup
}

func TestLogManager_Append(t *testing.T) {
	lm, _, cleanup := setupTest(t)
	defer cleanup()

	tests := []struct {
		name   string
		record []byte
	}{
		{name: "simple append", record: []byte("test record")},
		{name: "empty record", record: []byte{}},
		{name: "large record", record: bytes.Repeat([]byte("a"), 350)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lsn, err := lm.Append(tt.record)
			if err != nil {
				t.Errorf("Append() error = %v", err)
				return
			}
			if lsn < 0 {
				t.Errorf("Append() returned invalid LSN = %d", lsn)
			}
		})
	}
}

func TestLogManager_FlushAndIterator(t *testing.T) {
	lm, _, cleanup := setupTest(t)
	defer cleanup()

	testRecords := [][]byte{
		[]byte("record1"),
		[]byte("record2"),
		[]byte("record3"),
	}

	var lastLSN int
	for _, record := range testRecords {
		lsn, err := lm.Append(record)
		if err != nil {
			t.Fatalf("failed to append record: %v", err)
		}
		lastLSN = lsn
	}

	if err := lm.Flush(lastLSN); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	iter, err := lm.Iterator()
	if err != nil {
		t.Fatalf("Iterator() error = %v", err)
	}

	count := len(testRecords) - 1
	for iter.HasNext() {
		record, err := iter.Next()
		if err != nil {
			t.Fatalf("Iterator.Next() error = %v", err)
		}

		if !bytes.Equal(record, testRecords[count]) {
			t.Errorf("Iterator.Next() = %v, want %v", record, testRecords[count])
		}
		count--
	}

	if count != -1 {
		t.Errorf("Iterator didn't return all records, remaining: %d", count+1)
	}
}

func TestLogManager_ConcurrentOperations(t *testing.T) {
	lm, _, cleanup := setupTest(t)
	defer cleanup()

	const numGoroutines = 3
	const recordsPerGoroutine = 5

	errChan := make(chan error, numGoroutines*recordsPerGoroutine)
	var wg sync.WaitGroup

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(routineID int) {
			defer func() {
				wg.Done()
				if r := recover(); r != nil {
					errChan <- fmt.Errorf("goroutine %d panicked: %v", routineID, r)
				}
			}()

			for j := 0; j < recordsPerGoroutine; j++ {
				select {
				case <-ctx.Done():
					return
				default:
					record := []byte(fmt.Sprintf("test-%d-%d", routineID, j))

					lsn, err := lm.Append(record)
					if err != nil {
						select {
						case errChan <- fmt.Errorf("append error in routine %d: %v", routineID, err):
						default:
						}
						return
					}
					if err := lm.Flush(lsn); err != nil {
						select {
						case errChan <- fmt.Errorf("flush error in routine %d: %v", routineID, err):
						default:
						}
						return
					}
				}
			}
		}(i)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		t.Fatal("Test timed out")
		return
	case <-done:
	}

	iter, err := lm.Iterator()
	if err != nil {
		t.Fatalf("Failed to create iterator: %v", err)
	}

	count := 0
	for iter.HasNext() {
		if _, err := iter.Next(); err != nil {
			t.Fatalf("Failed to read record: %v", err)
		}
		count++
	}

	expected := numGoroutines * recordsPerGoroutine
	if count != expected {
		t.Errorf("Record count mismatch: got %d, want %d", count, expected)
	}

	close(errChan)
	for err := range errChan {
		t.Error(err)
	}
}
