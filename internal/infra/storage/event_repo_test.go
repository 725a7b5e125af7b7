package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestEventLedgerAppendAndQuery(t *testing.T) {
	db, err := InitSQLite(filepath.Join(t.TempDir(), "pet.db"))
	if err != nil {
		t.Fatalf("failed to init sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	repo := NewSQLiteEventRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	records := []EventRecord{
		{ID: uuid.NewString(), Timestamp: base, EventType: "HATCH", Stage: "hatching", Age: 0},
		{ID: uuid.NewString(), Timestamp: base.Add(2 * time.Second), EventType: "TIME_TICK", Stage: "alive", Age: 1},
		{ID: uuid.NewString(), Timestamp: base.Add(7 * time.Second), EventType: "TIME_TICK", Stage: "alive", Age: 2},
		{ID: uuid.NewString(), Timestamp: base.Add(9 * time.Second), EventType: "FEED", Stage: "alive", Age: 2},
	}
	for _, rec := range records {
		if err := repo.Append(ctx, rec); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	ticks, err := repo.GetByType(ctx, "TIME_TICK")
	if err != nil {
		t.Fatalf("GetByType failed: %v", err)
	}
	if len(ticks) != 2 {
		t.Fatalf("expected 2 tick records, got %d", len(ticks))
	}
	if ticks[0].Age != 1 || ticks[1].Age != 2 {
		t.Fatalf("expected ticks ordered oldest first, got ages %d, %d", ticks[0].Age, ticks[1].Age)
	}

	recent, err := repo.GetRecent(ctx, 2)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 recent records, got %d", len(recent))
	}
	if recent[0].EventType != "FEED" {
		t.Fatalf("expected newest record first, got %s", recent[0].EventType)
	}
}
