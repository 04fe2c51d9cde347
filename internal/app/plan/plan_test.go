package plan

import (
	"testing"

	"quilldb/internal/app/buffer"
	"quilldb/internal/app/file"
	"quilldb/internal/app/log"
	"quilldb/internal/app/metadata"
	"quilldb/internal/app/tx"
	"quilldb/internal/applog"
	"quilldb/internal/metrics"
)

func newPlanTestTx(t *testing.T) (*tx.Transaction, *metadata.MetaDataManager) {
	t.Helper()
	dbDir := t.TempDir()

	fm, err := file.NewFileManager(dbDir, 400, applog.Nop())
	if err != nil {
		t.Fatalf("NewFileManager failed: %v", err)
	}
	lm, err := log.NewLogManager(fm, "testlog", applog.Nop())
	if err != nil {
		t.Fatalf("NewLogManager failed: %v", err)
	}
	reg := metrics.New()
	bm := buffer.NewManager(fm, lm, 8, reg, applog.Nop())
	lockTable := tx.NewLockTable(reg, applog.Nop())

	txn, err := tx.NewTransaction(fm, lm, bm, lockTable, reg, applog.Nop())
	if err != nil {
		t.Fatalf("NewTransaction failed: %v", err)
	}
	mdm, err := metadata.NewMetaDataManager(true, txn)
	if err != nil {
		t.Fatalf("NewMetaDataManager failed: %v", err)
	}
	return txn, mdm
}

func newTestPlanner(mdm *metadata.MetaDataManager) *Planner {
	return NewPlanner(NewBasicQueryPlanner(mdm), NewBasicUpdatePlanner(mdm))
}

func TestPlanner_CreateTableInsertAndQuery(t *testing.T) {
	txn, mdm := newPlanTestTx(t)
	defer txn.Commit()
	planner := newTestPlanner(mdm)

	if _, err := planner.ExecuteUpdate("create table cats (id int, name varchar(10))", txn); err != nil {
		t.Fatalf("create table failed: %v", err)
	}
	if _, err := planner.ExecuteUpdate("insert into cats (id, name) values (1, 'milo')", txn); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if _, err := planner.ExecuteUpdate("insert into cats (id, name) values (2, 'oreo')", txn); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	p, err := planner.CreateQueryPlan("select id, name from cats where name = 'milo'", txn)
	if err != nil {
		t.Fatalf("CreateQueryPlan failed: %v", err)
	}
	scan, err := p.Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer scan.Close()

	count := 0
	for {
		ok, err := scan.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if !ok {
			break
		}
		name, err := scan.GetString("name")
		if err != nil {
			t.Fatalf("GetString failed: %v", err)
		}
		if name != "milo" {
			t.Errorf("GetString(name) = %q, want %q", name, "milo")
		}
		count++
	}
	if count != 1 {
		t.Errorf("matched row count = %d, want 1", count)
	}
}

func TestPlanner_ExecuteDelete(t *testing.T) {
	txn, mdm := newPlanTestTx(t)
	defer txn.Commit()
	planner := newTestPlanner(mdm)

	if _, err := planner.ExecuteUpdate("create table dogs (id int)", txn); err != nil {
		t.Fatalf("create table failed: %v", err)
	}
	if _, err := planner.ExecuteUpdate("insert into dogs (id) values (1)", txn); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if _, err := planner.ExecuteUpdate("insert into dogs (id) values (2)", txn); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	n, err := planner.ExecuteUpdate("delete from dogs where id = 1", txn)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted row count = %d, want 1", n)
	}

	p, err := planner.CreateQueryPlan("select id from dogs", txn)
	if err != nil {
		t.Fatalf("CreateQueryPlan failed: %v", err)
	}
	scan, err := p.Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer scan.Close()

	remaining := 0
	for {
		ok, err := scan.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if !ok {
			break
		}
		remaining++
	}
	if remaining != 1 {
		t.Errorf("remaining row count = %d, want 1", remaining)
	}
}

func TestPlanner_RejectsEmptyFieldName(t *testing.T) {
	txn, mdm := newPlanTestTx(t)
	defer txn.Commit()
	planner := newTestPlanner(mdm)

	if _, err := planner.ExecuteUpdate("create table birds (id int)", txn); err != nil {
		t.Fatalf("create table failed: %v", err)
	}

	if _, err := planner.CreateQueryPlan("select , id from birds", txn); err == nil {
		t.Error("expected an error for a malformed field list")
	}
}
