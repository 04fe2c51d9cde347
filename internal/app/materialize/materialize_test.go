package materialize

import (
	"testing"

	"quilldb/internal/app/buffer"
	"quilldb/internal/app/file"
	"quilldb/internal/app/log"
	"quilldb/internal/app/metadata"
	"quilldb/internal/app/plan"
	"quilldb/internal/app/record"
	"quilldb/internal/app/tx"
	"quilldb/internal/applog"
	"quilldb/internal/metrics"
)

func newMaterializeTestTx(t *testing.T) (*tx.Transaction, *metadata.MetaDataManager) {
	t.Helper()
	dbDir := t.TempDir()

	fm, err := file.NewFileManager(dbDir, 400, applog.Nop())
	if err != nil {
		t.Fatalf("Failed to create file manager: %v", err)
	}
	lm, err := log.NewLogManager(fm, "testlog", applog.Nop())
	if err != nil {
		t.Fatalf("Failed to create log manager: %v", err)
	}
	reg := metrics.New()
	bm := buffer.NewManager(fm, lm, 8, reg, applog.Nop())
	lockTable := tx.NewLockTable(reg, applog.Nop())

	txn, err := tx.NewTransaction(fm, lm, bm, lockTable, reg, applog.Nop())
	if err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}

	mdm, err := metadata.NewMetaDataManager(true, txn)
	if err != nil {
		t.Fatalf("Failed to create metadata manager: %v", err)
	}

	return txn, mdm
}

func populateScores(t *testing.T, txn *tx.Transaction, mdm *metadata.MetaDataManager) {
	t.Helper()

	sch := record.NewSchema()
	sch.AddStringField("player", 10)
	sch.AddIntField("score")

	if err := mdm.CreateTable("scores", sch, txn); err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}

	layout, err := mdm.GetLayout("scores", txn)
	if err != nil {
		t.Fatalf("GetLayout failed: %v", err)
	}

	ts, err := record.NewTableScan(txn, "scores", layout)
	if err != nil {
		t.Fatalf("NewTableScan failed: %v", err)
	}
	defer ts.Close()

	rows := []struct {
		player string
		score  int
	}{
		{"amari", 42}, {"beth", 17}, {"amari", 99}, {"cole", 60}, {"beth", 5},
	}
	for _, row := range rows {
		if err := ts.Insert(); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		if err := ts.SetString("player", row.player); err != nil {
			t.Fatalf("SetString failed: %v", err)
		}
		if err := ts.SetInt("score", row.score); err != nil {
			t.Fatalf("SetInt failed: %v", err)
		}
	}
}

func TestMaterializePlan_CopiesSource(t *testing.T) {
	txn, mdm := newMaterializeTestTx(t)
	defer txn.Commit()

	populateScores(t, txn, mdm)

	tp, err := plan.NewTablePlan(txn, "scores", mdm)
	if err != nil {
		t.Fatalf("NewTablePlan failed: %v", err)
	}

	mp := NewMaterializePlan(txn, tp)
	scan, err := mp.Open()
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
		count++
	}

	if count != 5 {
		t.Errorf("materialized row count = %d, want 5", count)
	}
}

func TestGroupByPlan_MaxPerPlayer(t *testing.T) {
	txn, mdm := newMaterializeTestTx(t)
	defer txn.Commit()

	populateScores(t, txn, mdm)

	tp, err := plan.NewTablePlan(txn, "scores", mdm)
	if err != nil {
		t.Fatalf("NewTablePlan failed: %v", err)
	}

	gp := NewGroupPlan(txn, tp, []string{"player"}, []AggregateFunction{NewMaxFn("score")})
	scan, err := gp.Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer scan.Close()

	maxByPlayer := map[string]int{}
	for {
		ok, err := scan.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if !ok {
			break
		}
		player, err := scan.GetString("player")
		if err != nil {
			t.Fatalf("GetString failed: %v", err)
		}
		maxScore, err := scan.GetInt("maxofscore")
		if err != nil {
			t.Fatalf("GetInt failed: %v", err)
		}
		maxByPlayer[player] = maxScore
	}

	want := map[string]int{"amari": 99, "beth": 17, "cole": 60}
	for player, expected := range want {
		if maxByPlayer[player] != expected {
			t.Errorf("max score for %s = %d, want %d", player, maxByPlayer[player], expected)
		}
	}
}
