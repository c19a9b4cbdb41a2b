package db

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := OpenAt(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("OpenAt() error = %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestRecordRun(t *testing.T) {
	database := openTestDB(t)

	run := Run{
		FromDate:      "2025-06-01",
		ToDate:        "2025-06-30",
		ProjectFilter: "myapp",
		TotalSessions: 12,
		TotalMessages: 340,
		WorkMinutes:   480,
		ProjectCount:  2,
		Format:        "markdown",
	}
	if err := database.RecordRun(&run); err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}
	if run.ID == 0 {
		t.Error("RecordRun() did not assign an ID")
	}
	if run.CreatedAt.IsZero() {
		t.Error("RecordRun() did not set CreatedAt")
	}

	count, err := database.RunCount()
	if err != nil {
		t.Fatalf("RunCount() error = %v", err)
	}
	if count != 1 {
		t.Errorf("RunCount() = %d, want 1", count)
	}
}

func TestRecentRunsNewestFirst(t *testing.T) {
	database := openTestDB(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		run := Run{
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			Format:    "json",
		}
		if err := database.RecordRun(&run); err != nil {
			t.Fatalf("RecordRun() error = %v", err)
		}
	}

	runs, err := database.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("RecentRuns(2) returned %d runs", len(runs))
	}
	if !runs[0].CreatedAt.After(runs[1].CreatedAt) {
		t.Errorf("runs not newest first: %v then %v", runs[0].CreatedAt, runs[1].CreatedAt)
	}
}

func TestRecentRunsEmpty(t *testing.T) {
	database := openTestDB(t)

	runs, err := database.RecentRuns(5)
	if err != nil {
		t.Fatalf("RecentRuns() error = %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("RecentRuns() on empty database = %v", runs)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	first, err := OpenAt(path)
	if err != nil {
		t.Fatalf("OpenAt() error = %v", err)
	}
	if err := first.RecordRun(&Run{Format: "markdown"}); err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}
	first.Close()

	second, err := OpenAt(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer second.Close()

	count, err := second.RunCount()
	if err != nil {
		t.Fatalf("RunCount() error = %v", err)
	}
	if count != 1 {
		t.Errorf("RunCount() after reopen = %d, want 1", count)
	}
}
