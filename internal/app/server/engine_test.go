package server

import (
	"testing"
)

func TestNewEngine(t *testing.T) {
	dir := t.TempDir()

	db, err := NewEngine(dir)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	if db.MdMgr() == nil {
		t.Error("MdMgr() should not be nil")
	}
	if db.Planner() == nil {
		t.Error("Planner() should not be nil")
	}
	if db.FileMgr() == nil {
		t.Error("FileMgr() should not be nil")
	}
	if db.Metrics() == nil {
		t.Error("Metrics() should not be nil")
	}
}

func TestEngine_CreateInsertQuery(t *testing.T) {
	dir := t.TempDir()

	db, err := NewEngine(dir)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	txn, err := db.NewTx()
	if err != nil {
		t.Fatalf("NewTx() error = %v", err)
	}

	planner := db.Planner()

	if _, err := planner.ExecuteUpdate("create table accounts (id int, name varchar(10))", txn); err != nil {
		t.Fatalf("create table failed: %v", err)
	}

	rows := []string{
		"insert into accounts (id, name) values (1, 'alice')",
		"insert into accounts (id, name) values (2, 'bob')",
	}
	for _, cmd := range rows {
		if _, err := planner.ExecuteUpdate(cmd, txn); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	plan, err := planner.CreateQueryPlan("select id, name from accounts where id = 2", txn)
	if err != nil {
		t.Fatalf("CreateQueryPlan failed: %v", err)
	}

	scan, err := plan.Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer scan.Close()

	hasNext, err := scan.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if !hasNext {
		t.Fatal("expected a matching row for id = 2")
	}

	name, err := scan.GetString("name")
	if err != nil {
		t.Fatalf("GetString failed: %v", err)
	}
	if name != "bob" {
		t.Errorf("name = %q, want %q", name, "bob")
	}

	hasNext, err = scan.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if hasNext {
		t.Error("expected only one matching row for id = 2")
	}

	if err := txn.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
}

func TestEngine_ReopenRecovers(t *testing.T) {
	dir := t.TempDir()

	db, err := NewEngine(dir)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	txn, err := db.NewTx()
	if err != nil {
		t.Fatalf("NewTx() error = %v", err)
	}

	planner := db.Planner()
	if _, err := planner.ExecuteUpdate("create table widgets (id int)", txn); err != nil {
		t.Fatalf("create table failed: %v", err)
	}
	if _, err := planner.ExecuteUpdate("insert into widgets (id) values (7)", txn); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := txn.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	db2, err := NewEngine(dir)
	if err != nil {
		t.Fatalf("reopening engine failed: %v", err)
	}

	txn2, err := db2.NewTx()
	if err != nil {
		t.Fatalf("NewTx() error = %v", err)
	}
	defer txn2.Commit()

	plan, err := db2.Planner().CreateQueryPlan("select id from widgets", txn2)
	if err != nil {
		t.Fatalf("CreateQueryPlan failed: %v", err)
	}
	scan, err := plan.Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer scan.Close()

	hasNext, err := scan.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if !hasNext {
		t.Fatal("expected the previously committed row to survive reopen")
	}

	id, err := scan.GetInt("id")
	if err != nil {
		t.Fatalf("GetInt failed: %v", err)
	}
	if id != 7 {
		t.Errorf("id = %d, want 7", id)
	}
}
