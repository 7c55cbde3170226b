package tracking

import (
	"testing"
)

func TestAggregateStore_Rebuild(t *testing.T) {
	store, roster := newTestPipeline(t)
	if err := roster.Add("test-uuid"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := store.Write("test-uuid", "01-03-25", bedwarsPayload(t, 10, 5, 3, 1)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := store.Write("test-uuid", "02-03-25", bedwarsPayload(t, 14, 6, 6, 2)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	aggregates := NewAggregateStore(store, roster)
	if err := aggregates.Rebuild("test-uuid"); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}

	records, ok := aggregates.Table("test-uuid", "bedwars")
	if !ok {
		t.Fatal("Expected a bedwars table after rebuild")
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].Date != "01-03-25" || records[1].Date != "02-03-25" {
		t.Errorf("Expected chronological order, got %s then %s", records[0].Date, records[1].Date)
	}
	if v, _ := records[1].Number("Kills"); v != 14 {
		t.Errorf("Expected lifetime totals in the table, got %v kills", v)
	}
}

func TestAggregateStore_RebuildSkipsBadSnapshots(t *testing.T) {
	store, roster := newTestPipeline(t)
	if err := roster.Add("test-uuid"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := store.Write("test-uuid", "01-03-25", bedwarsPayload(t, 10, 5, 3, 1)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	// A throttled-day snapshot and a truncated file must be skipped, not
	// abort the rebuild.
	if err := store.Write("test-uuid", "02-03-25", []byte(`{"success":false,"cause":"throttle"}`)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := store.Write("test-uuid", "03-03-25", []byte(`{"succ`)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := store.Write("test-uuid", "04-03-25", bedwarsPayload(t, 12, 5, 4, 1)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	aggregates := NewAggregateStore(store, roster)
	if err := aggregates.Rebuild("test-uuid"); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}

	records, ok := aggregates.Table("test-uuid", "bedwars")
	if !ok {
		t.Fatal("Expected a bedwars table after rebuild")
	}
	if len(records) != 2 {
		t.Errorf("Expected bad snapshots skipped, got %d records", len(records))
	}
}

func TestAggregateStore_RebuildIsIdempotent(t *testing.T) {
	store, roster := newTestPipeline(t)
	if err := roster.Add("test-uuid"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Write("test-uuid", "01-03-25", bedwarsPayload(t, 10, 5, 3, 1)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	aggregates := NewAggregateStore(store, roster)
	for i := 0; i < 3; i++ {
		if err := aggregates.Rebuild("test-uuid"); err != nil {
			t.Fatalf("Rebuild %d failed: %v", i, err)
		}
	}

	records, ok := aggregates.Table("test-uuid", "bedwars")
	if !ok || len(records) != 1 {
		t.Errorf("Expected 1 record after repeated rebuilds, got %d", len(records))
	}
}

func TestAggregateStore_TableUnknownPlayer(t *testing.T) {
	store, roster := newTestPipeline(t)
	aggregates := NewAggregateStore(store, roster)

	if _, ok := aggregates.Table("nobody", "bedwars"); ok {
		t.Error("Expected no table for an unknown player")
	}
}

func TestAggregateStore_RebuildAll(t *testing.T) {
	store, roster := newTestPipeline(t)
	for _, p := range []string{"uuid-1", "uuid-2"} {
		if err := roster.Add(p); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if err := store.Write(p, "01-03-25", bedwarsPayload(t, 10, 5, 3, 1)); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}

	aggregates := NewAggregateStore(store, roster)
	if err := aggregates.RebuildAll(2); err != nil {
		t.Fatalf("RebuildAll failed: %v", err)
	}

	players := aggregates.Players()
	if len(players) != 2 {
		t.Errorf("Expected 2 rebuilt players, got %v", players)
	}
}
