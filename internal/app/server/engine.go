package server

import (
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"quilldb/internal/app/buffer"
	"quilldb/internal/app/file"
	indexplanner "quilldb/internal/app/index/planner"
	"quilldb/internal/app/log"
	"quilldb/internal/app/metadata"
	"quilldb/internal/app/optimization"
	"quilldb/internal/app/plan"
	"quilldb/internal/app/tx"
	"quilldb/internal/applog"
	"quilldb/internal/config"
	"quilldb/internal/metrics"
)

// Engine is a single-process database instance: the managers for one
// data directory, its catalog, and the planner used to run SQL against
// it.
type Engine struct {
	fm        *file.FileManager
	bm        *buffer.Manager
	lm        *log.LogManager
	lockTable *tx.LockTable
	mdm       *metadata.MetaDataManager
	planner   *plan.Planner
	metrics   *metrics.Registry
	log       zerolog.Logger
	mu        sync.RWMutex
}

// NewEngineWithConfig opens (or creates) a database at cfg.DataDir.
func NewEngineWithConfig(cfg config.Config, lg zerolog.Logger) (*Engine, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	reg := metrics.New()

	fm, err := file.NewFileManager(cfg.DataDir, cfg.BlockSize, lg)
	if err != nil {
		return nil, fmt.Errorf("initializing file manager: %w", err)
	}

	lm, err := log.NewLogManager(fm, cfg.LogFile, lg)
	if err != nil {
		return nil, fmt.Errorf("initializing log manager: %w", err)
	}

	bm := buffer.NewManager(fm, lm, cfg.BufferSize, reg, lg)
	lockTable := tx.NewLockTable(reg, lg)

	db := &Engine{
		fm:        fm,
		bm:        bm,
		lm:        lm,
		lockTable: lockTable,
		metrics:   reg,
		log:       lg,
	}

	t, err := db.NewTx()
	if err != nil {
		return nil, fmt.Errorf("starting bootstrap transaction: %w", err)
	}

	isNew := fm.IsNew()
	if isNew {
		lg.Info().Str("dataDir", cfg.DataDir).Msg("creating new database")
	} else {
		lg.Info().Str("dataDir", cfg.DataDir).Msg("recovering existing database")
		if err := t.Recover(); err != nil {
			return nil, fmt.Errorf("recovering database: %w", err)
		}
	}

	mdm, err := metadata.NewMetaDataManager(isNew, t)
	if err != nil {
		return nil, fmt.Errorf("initializing catalog: %w", err)
	}
	db.mdm = mdm

	qp := optimization.NewHeuristicQueryPlanner(mdm)
	up := indexplanner.NewIndexUpdatePlanner(mdm)
	db.planner = plan.NewPlanner(qp, up)

	if err := t.Commit(); err != nil {
		return nil, fmt.Errorf("committing bootstrap transaction: %w", err)
	}

	return db, nil
}

// NewEngine opens a database at dirName using config.Default with
// dataDir overridden.
func NewEngine(dirName string) (*Engine, error) {
	cfg := config.Default()
	cfg.DataDir = dirName
	return NewEngineWithConfig(cfg, applog.Nop())
}

func (db *Engine) NewTx() (*tx.Transaction, error) {
	return tx.NewTransaction(db.fm, db.lm, db.bm, db.lockTable, db.metrics, db.log)
}

func (db *Engine) MdMgr() *metadata.MetaDataManager {
	return db.mdm
}

func (db *Engine) Planner() *plan.Planner {
	return db.planner
}

func (db *Engine) FileMgr() *file.FileManager {
	return db.fm
}

func (db *Engine) LogMgr() *log.LogManager {
	return db.lm
}

func (db *Engine) BufferMgr() *buffer.Manager {
	return db.bm
}

func (db *Engine) Metrics() *metrics.Registry {
	return db.metrics
}
