package tracking

import (
	"context"
	"testing"

	apperrors "github.com/SamOutabrae/Sprocket-hypixel/errors"
	"github.com/SamOutabrae/Sprocket-hypixel/gamemodes"
	"github.com/SamOutabrae/Sprocket-hypixel/utils"
)

func TestDeltaEngine_Delta(t *testing.T) {
	store, _ := newTestPipeline(t)

	if err := store.Write("test-uuid", "01-03-25", bedwarsPayload(t, 10, 5, 3, 1)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := store.Write("test-uuid", "02-03-25", bedwarsPayload(t, 14, 6, 6, 2)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	engine := NewDeltaEngine(store, &mockAPIClient{})
	mode, _ := gamemodes.ByName("bedwars")

	delta, err := engine.Delta("test-uuid", mode, "01-03-25", "02-03-25")
	if err != nil {
		t.Fatalf("Delta failed: %v", err)
	}
	if v, _ := delta.Number("Kills"); v != 4 {
		t.Errorf("Expected 4 kills, got %v", v)
	}
	if v, _ := delta.Number("Deaths"); v != 1 {
		t.Errorf("Expected 1 death, got %v", v)
	}
	if v, _ := delta.Number("K/D Ratio"); v != 4 {
		t.Errorf("Expected K/D 4, got %v", v)
	}
}

func TestDeltaEngine_On(t *testing.T) {
	store, _ := newTestPipeline(t)

	if err := store.Write("test-uuid", "01-03-25", bedwarsPayload(t, 10, 5, 3, 1)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := store.Write("test-uuid", "02-03-25", bedwarsPayload(t, 14, 6, 6, 2)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	engine := NewDeltaEngine(store, &mockAPIClient{})
	mode, _ := gamemodes.ByName("bedwars")

	t.Run("Single date is the delta against the previous day", func(t *testing.T) {
		rec, err := engine.On("test-uuid", mode, "02-03-25")
		if err != nil {
			t.Fatalf("On failed: %v", err)
		}
		if v, _ := rec.Number("Wins"); v != 3 {
			t.Errorf("Expected 3 wins gained, got %v", v)
		}
	})

	t.Run("Malformed date is a validation error", func(t *testing.T) {
		_, err := engine.On("test-uuid", mode, "2025-03-02")
		if !apperrors.IsValidation(err) {
			t.Errorf("Expected validation error, got: %v", err)
		}
	})

	t.Run("Date with no snapshot is not found", func(t *testing.T) {
		_, err := engine.On("test-uuid", mode, "10-03-25")
		if !apperrors.IsNotFound(err) {
			t.Errorf("Expected not-found error, got: %v", err)
		}
	})
}

func TestDeltaEngine_OnMappedDate(t *testing.T) {
	store, _ := newTestPipeline(t)

	if err := store.Write("test-uuid", "01-03-25", bedwarsPayload(t, 10, 5, 3, 1)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := store.Remap("test-uuid", "02-03-25", "01-03-25"); err != nil {
		t.Fatalf("Remap failed: %v", err)
	}

	engine := NewDeltaEngine(store, &mockAPIClient{})
	mode, _ := gamemodes.ByName("bedwars")

	// A no-op day's delta against its source day is all zeros.
	rec, err := engine.On("test-uuid", mode, "02-03-25")
	if err != nil {
		t.Fatalf("On failed: %v", err)
	}
	for _, name := range []string{"Kills", "Deaths", "Wins", "Losses"} {
		if v, _ := rec.Number(name); v != 0 {
			t.Errorf("Expected %s to be 0 on a no-op day, got %v", name, v)
		}
	}
}

func TestDeltaEngine_UnsuccessfulSnapshotIsNotFound(t *testing.T) {
	store, _ := newTestPipeline(t)

	if err := store.Write("test-uuid", "01-03-25", []byte(`{"success":false,"cause":"Invalid API key"}`)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	engine := NewDeltaEngine(store, &mockAPIClient{})
	mode, _ := gamemodes.ByName("bedwars")

	_, err := engine.RecordAt("test-uuid", "01-03-25", mode)
	if !apperrors.IsNotFound(err) {
		t.Errorf("Expected unsuccessful snapshot to read as not-found, got: %v", err)
	}
}

func TestDeltaEngine_Today(t *testing.T) {
	store, _ := newTestPipeline(t)
	mode, _ := gamemodes.ByName("bedwars")

	live := &mockAPIClient{raw: map[string][]byte{
		"test-uuid": bedwarsPayload(t, 14, 6, 6, 2),
	}}
	engine := NewDeltaEngine(store, live)

	t.Run("Baseline is today's snapshot when present", func(t *testing.T) {
		if err := store.Write("test-uuid", utils.TodayKey(), bedwarsPayload(t, 10, 5, 3, 1)); err != nil {
			t.Fatalf("Write failed: %v", err)
		}

		rec, err := engine.Today(context.Background(), "test-uuid", mode)
		if err != nil {
			t.Fatalf("Today failed: %v", err)
		}
		if v, _ := rec.Number("Kills"); v != 4 {
			t.Errorf("Expected 4 kills since this morning, got %v", v)
		}
	})

	t.Run("Falls back to yesterday's snapshot", func(t *testing.T) {
		store2, _ := newTestPipeline(t)
		engine2 := NewDeltaEngine(store2, live)

		if err := store2.Write("test-uuid", utils.YesterdayKey(), bedwarsPayload(t, 12, 5, 4, 1)); err != nil {
			t.Fatalf("Write failed: %v", err)
		}

		rec, err := engine2.Today(context.Background(), "test-uuid", mode)
		if err != nil {
			t.Fatalf("Today failed: %v", err)
		}
		if v, _ := rec.Number("Kills"); v != 2 {
			t.Errorf("Expected 2 kills against yesterday's baseline, got %v", v)
		}
	})

	t.Run("No baseline at all is not found", func(t *testing.T) {
		store3, _ := newTestPipeline(t)
		engine3 := NewDeltaEngine(store3, live)

		_, err := engine3.Today(context.Background(), "test-uuid", mode)
		if !apperrors.IsNotFound(err) {
			t.Errorf("Expected not-found error, got: %v", err)
		}
	})
}

func TestDeltaEngine_DisplaynameAt(t *testing.T) {
	store, _ := newTestPipeline(t)

	if err := store.Write("test-uuid", "01-03-25", bedwarsPayload(t, 1, 1, 1, 1)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	engine := NewDeltaEngine(store, &mockAPIClient{})
	name, err := engine.DisplaynameAt("test-uuid", "01-03-25")
	if err != nil {
		t.Fatalf("DisplaynameAt failed: %v", err)
	}
	if name != "Tester" {
		t.Errorf("Expected Tester, got %s", name)
	}
}
