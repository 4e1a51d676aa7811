package storage

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenAppliesMigrations(t *testing.T) {
	db := openTestDB(t)
	v, err := db.CurrentVersion()
	if err != nil {
		t.Fatal(err)
	}
	if v != len(migrations) {
		t.Errorf("CurrentVersion() = %d, want %d", v, len(migrations))
	}

	// Reopening must not re-apply anything.
	again, err := Open(db.Path())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer again.Close()
	if v, _ := again.CurrentVersion(); v != len(migrations) {
		t.Errorf("after reopen CurrentVersion() = %d", v)
	}
}

func TestRunRoundTrip(t *testing.T) {
	repo := NewRunRepository(openTestDB(t))

	started := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	in := Run{
		StartedAt:  started,
		Duration:   90 * time.Second,
		Workers:    8,
		DiameterBL: 10,
		DiameterBR: 10,
		CrossLo:    0,
		CrossHi:    190080,
		Total:      1000,
		AppVersion: "test",
		Counts:     []int64{3, 0, 500, 497},
	}

	id, err := repo.Create(in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id == "" {
		t.Fatal("Create returned an empty id")
	}

	got, err := repo.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil for a stored run")
	}

	if !got.StartedAt.Equal(started) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, started)
	}
	if got.Duration != in.Duration {
		t.Errorf("Duration = %v, want %v", got.Duration, in.Duration)
	}
	if got.Workers != 8 || got.DiameterBL != 10 || got.DiameterBR != 10 {
		t.Errorf("run = %+v", got)
	}
	if got.CrossHi != 190080 || got.Total != 1000 || got.AppVersion != "test" {
		t.Errorf("run = %+v", got)
	}
	if len(got.Counts) != len(in.Counts) {
		t.Fatalf("Counts = %v, want %v", got.Counts, in.Counts)
	}
	for i := range in.Counts {
		if got.Counts[i] != in.Counts[i] {
			t.Errorf("Counts[%d] = %d, want %d", i, got.Counts[i], in.Counts[i])
		}
	}
}

func TestGetMissing(t *testing.T) {
	repo := NewRunRepository(openTestDB(t))
	got, err := repo.Get("no-such-run")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Errorf("Get = %+v, want nil", got)
	}
}

func TestGetRejectsBadTimestamp(t *testing.T) {
	db := openTestDB(t)
	repo := NewRunRepository(db)
	id, err := repo.Create(Run{StartedAt: time.Now(), Workers: 1})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`UPDATE runs SET started_at = 'yesterday' WHERE run_id = ?`, id); err != nil {
		t.Fatal(err)
	}

	if _, err := repo.Get(id); err == nil {
		t.Error("Get should fail on an unparseable started_at")
	}
	if _, err := repo.List(10); err == nil {
		t.Error("List should fail on an unparseable started_at")
	}
}

func TestListNewestFirst(t *testing.T) {
	repo := NewRunRepository(openTestDB(t))
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := repo.Create(Run{StartedAt: base.Add(time.Duration(i) * time.Hour), Workers: i + 1})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}

	runs, err := repo.List(2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("List(2) returned %d runs", len(runs))
	}
	if runs[0].RunID != ids[2] || runs[1].RunID != ids[1] {
		t.Errorf("List order = [%s %s], want [%s %s]", runs[0].RunID, runs[1].RunID, ids[2], ids[1])
	}
	if runs[0].Counts != nil {
		t.Errorf("List should not load counts, got %v", runs[0].Counts)
	}
}
