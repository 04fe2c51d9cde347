package file

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"quilldb/internal/app/dberr"
)

// FileManager owns a database directory and serializes all block-level
// I/O against it behind a single mutex (spec §4.1, §5 "shared-resource
// policy"). On startup it creates the directory if absent (marking the
// database new) or removes every file named temp* if it already existed.
type FileManager struct {
	mu sync.Mutex

	dbDirectory string
	blockSize   int
	isNew       bool
	openFiles   map[string]*os.File
	log         zerolog.Logger
}

// NewFileManager opens (or creates) dbDirectory as a database home using
// blockSize-byte blocks.
func NewFileManager(dbDirectory string, blockSize int, log zerolog.Logger) (*FileManager, error) {
	fm := &FileManager{
		dbDirectory: dbDirectory,
		blockSize:   blockSize,
		openFiles:   make(map[string]*os.File),
		log:         log,
	}

	info, err := os.Stat(dbDirectory)
	switch {
	case os.IsNotExist(err):
		fm.isNew = true
		if err := os.MkdirAll(dbDirectory, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory %s: %w: %w", dbDirectory, err, dberr.ErrIO)
		}
	case err != nil:
		return nil, fmt.Errorf("stat db directory %s: %w: %w", dbDirectory, err, dberr.ErrIO)
	case !info.IsDir():
		return nil, fmt.Errorf("%s is not a directory: %w", dbDirectory, dberr.ErrIO)
	}

	if !fm.isNew {
		if err := fm.removeTempFiles(); err != nil {
			return nil, err
		}
	}

	fm.log.Info().Str("dir", dbDirectory).Int("block_size", blockSize).Bool("new", fm.isNew).Msg("file manager ready")
	return fm, nil
}

func (fm *FileManager) removeTempFiles() error {
	entries, err := os.ReadDir(fm.dbDirectory)
	if err != nil {
		return fmt.Errorf("read db directory %s: %w: %w", fm.dbDirectory, err, dberr.ErrIO)
	}

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), "temp") {
			path := filepath.Join(fm.dbDirectory, entry.Name())
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("remove temp file %s: %w: %w", path, err, dberr.ErrIO)
			}
		}
	}
	return nil
}

// BlockSize returns the fixed block size for this database.
func (fm *FileManager) BlockSize() int { return fm.blockSize }

// IsNew reports whether the database directory was created by this call
// to NewFileManager.
func (fm *FileManager) IsNew() bool { return fm.isNew }

// Read fills p's contents from blk's location on disk. Bytes that lie
// past the end of the file read as zero.
func (fm *FileManager) Read(blk BlockID, p *Page) error {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	f, err := fm.getFile(blk.FileName())
	if err != nil {
		return err
	}

	offset := int64(blk.Number()) * int64(fm.blockSize)
	n, err := f.ReadAt(p.contents, offset)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read block %v: %w: %w", blk, err, dberr.ErrIO)
	}
	clear(p.contents[n:])
	return nil
}

// Write persists p's contents to blk's location on disk.
func (fm *FileManager) Write(blk BlockID, p *Page) error {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	f, err := fm.getFile(blk.FileName())
	if err != nil {
		return err
	}

	offset := int64(blk.Number()) * int64(fm.blockSize)
	if _, err := f.WriteAt(p.contents, offset); err != nil {
		return fmt.Errorf("write block %v: %w: %w", blk, err, dberr.ErrIO)
	}
	return nil
}

// Append writes p as a new block at the end of filename and returns its
// identity.
func (fm *FileManager) Append(filename string, p *Page) (BlockID, error) {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	n, err := fm.size(filename)
	if err != nil {
		return BlockID{}, err
	}

	blk := NewBlockID(filename, n)
	f, err := fm.getFile(filename)
	if err != nil {
		return BlockID{}, err
	}

	offset := int64(blk.Number()) * int64(fm.blockSize)
	if _, err := f.WriteAt(p.contents, offset); err != nil {
		return BlockID{}, fmt.Errorf("append block %v: %w: %w", blk, err, dberr.ErrIO)
	}
	return blk, nil
}

// Size returns the number of blocks currently stored in filename.
func (fm *FileManager) Size(filename string) (int, error) {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	return fm.size(filename)
}

func (fm *FileManager) size(filename string) (int, error) {
	f, err := fm.getFile(filename)
	if err != nil {
		return 0, err
	}
	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat file %s: %w: %w", filename, err, dberr.ErrIO)
	}
	return int((info.Size() + int64(fm.blockSize) - 1) / int64(fm.blockSize)), nil
}

func (fm *FileManager) getFile(filename string) (*os.File, error) {
	if f, ok := fm.openFiles[filename]; ok {
		return f, nil
	}

	path := filepath.Join(fm.dbDirectory, filename)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open file %s: %w: %w", path, err, dberr.ErrIO)
	}
	fm.openFiles[filename] = f
	return f, nil
}

// Close closes every file handle opened by this manager.
func (fm *FileManager) Close() error {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	var firstErr error
	for name, f := range fm.openFiles {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close file %s: %w: %w", name, err, dberr.ErrIO)
		}
		delete(fm.openFiles, name)
	}
	return firstErr
}
