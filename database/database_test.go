package database

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreateUser(t *testing.T) {
	db := newTestDB(t)

	if err := db.CreateUser("alice", "hash1"); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	// Duplicate username fails and leaves the original hash alone
	err := db.CreateUser("alice", "hash2")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("CreateUser() error = %v; want ErrUsernameTaken", err)
	}

	hash, err := db.GetPasswordHash("alice")
	if err != nil {
		t.Fatalf("GetPasswordHash() error = %v", err)
	}
	if hash != "hash1" {
		t.Errorf("stored hash = %q; want %q", hash, "hash1")
	}
}

func TestGetPasswordHashUnknownUser(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetPasswordHash("nobody")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetPasswordHash() error = %v; want ErrUserNotFound", err)
	}
}

func TestUpdatePasswordHash(t *testing.T) {
	db := newTestDB(t)

	if err := db.CreateUser("alice", "legacy"); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if err := db.UpdatePasswordHash("alice", "upgraded"); err != nil {
		t.Fatalf("UpdatePasswordHash() error = %v", err)
	}

	hash, err := db.GetPasswordHash("alice")
	if err != nil {
		t.Fatalf("GetPasswordHash() error = %v", err)
	}
	if hash != "upgraded" {
		t.Errorf("stored hash = %q; want %q", hash, "upgraded")
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	db := newTestDB(t)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	db.now = func() time.Time { return base }
	if err := db.RecordExplanation("bob", "Imagine", "John Lennon", "about peace"); err != nil {
		t.Fatalf("RecordExplanation() error = %v", err)
	}

	db.now = func() time.Time { return base.Add(time.Minute) }
	if err := db.RecordExplanation("bob", "Yesterday", "The Beatles", "about loss"); err != nil {
		t.Fatalf("RecordExplanation() error = %v", err)
	}

	records, err := db.GetHistory("bob")
	if err != nil {
		t.Fatalf("GetHistory() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("GetHistory() returned %d records; want 2", len(records))
	}
	if records[0].SongTitle != "Yesterday" || records[1].SongTitle != "Imagine" {
		t.Errorf("order = [%s, %s]; want [Yesterday, Imagine]", records[0].SongTitle, records[1].SongTitle)
	}
	if records[0].Timestamp != "2025-03-01 12:01" {
		t.Errorf("timestamp = %q; want minute precision", records[0].Timestamp)
	}
}

func TestHistorySameMinuteOrdering(t *testing.T) {
	db := newTestDB(t)

	fixed := time.Date(2025, 3, 1, 12, 0, 30, 0, time.UTC)
	db.now = func() time.Time { return fixed }

	for _, title := range []string{"first", "second", "third"} {
		if err := db.RecordExplanation("bob", title, "", "..."); err != nil {
			t.Fatalf("RecordExplanation() error = %v", err)
		}
	}

	records, err := db.GetHistory("bob")
	if err != nil {
		t.Fatalf("GetHistory() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("GetHistory() returned %d records; want 3", len(records))
	}
	if records[0].SongTitle != "third" || records[2].SongTitle != "first" {
		t.Errorf("same-minute order = [%s, %s, %s]; want reverse insertion",
			records[0].SongTitle, records[1].SongTitle, records[2].SongTitle)
	}
}

func TestHistoryEmptyForUnknownUser(t *testing.T) {
	db := newTestDB(t)

	records, err := db.GetHistory("ghost")
	if err != nil {
		t.Fatalf("GetHistory() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("GetHistory() returned %d records; want 0", len(records))
	}
}

func TestHistoryIsolatedPerUser(t *testing.T) {
	db := newTestDB(t)

	if err := db.RecordExplanation("alice", "Song A", "Artist A", "..."); err != nil {
		t.Fatalf("RecordExplanation() error = %v", err)
	}
	if err := db.RecordExplanation("bob", "Song B", "Artist B", "..."); err != nil {
		t.Fatalf("RecordExplanation() error = %v", err)
	}

	records, err := db.GetHistory("alice")
	if err != nil {
		t.Fatalf("GetHistory() error = %v", err)
	}
	if len(records) != 1 || records[0].SongTitle != "Song A" {
		t.Errorf("alice history = %+v; want only Song A", records)
	}
}
