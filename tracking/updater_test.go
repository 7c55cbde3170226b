package tracking

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/SamOutabrae/Sprocket-hypixel/api"
	"github.com/SamOutabrae/Sprocket-hypixel/storage"
)

// mockAPIClient serves canned payloads per player UUID.
type mockAPIClient struct {
	raw      map[string][]byte
	resp     map[string]*api.PlayerResponse
	uuids    map[string]string
	fetchErr error
}

func (m *mockAPIClient) GetPlayer(ctx context.Context, uuid string) (*api.PlayerResponse, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	if resp, ok := m.resp[uuid]; ok {
		return resp, nil
	}
	raw, ok := m.raw[uuid]
	if !ok {
		return nil, context.Canceled
	}
	return api.ParsePlayerResponse(raw)
}

func (m *mockAPIClient) FetchPlayerRaw(ctx context.Context, uuid string) ([]byte, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	raw, ok := m.raw[uuid]
	if !ok {
		return nil, context.Canceled
	}
	return raw, nil
}

func (m *mockAPIClient) ResolveUUID(ctx context.Context, username string) (string, error) {
	return m.uuids[username], nil
}

func (m *mockAPIClient) ValidateKey(ctx context.Context) error {
	return nil
}

// bedwarsPayload builds a raw snapshot with a complete Bedwars block.
func bedwarsPayload(t *testing.T, kills, deaths, wins, losses float64) []byte {
	t.Helper()
	payload := map[string]interface{}{
		"success": true,
		"player": map[string]interface{}{
			"uuid":         "test-uuid",
			"displayname":  "Tester",
			"achievements": map[string]float64{"bedwars_level": 100},
			"stats": map[string]interface{}{
				"Bedwars": map[string]interface{}{
					"kills_bedwars":        kills,
					"deaths_bedwars":       deaths,
					"void_deaths_bedwars":  float64(1),
					"final_kills_bedwars":  float64(10),
					"final_deaths_bedwars": float64(5),
					"beds_broken_bedwars":  float64(8),
					"games_played_bedwars": wins + losses,
					"wins_bedwars":         wins,
					"losses_bedwars":       losses,
					"winstreak":            float64(2),
				},
			},
		},
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Failed to build payload: %v", err)
	}
	return raw
}

func newTestPipeline(t *testing.T) (*storage.SnapshotStore, *storage.TrackedPlayers) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewSnapshotStore(dir)
	if err != nil {
		t.Fatalf("Failed to create snapshot store: %v", err)
	}
	roster, err := storage.NewTrackedPlayers(dir)
	if err != nil {
		t.Fatalf("Failed to create roster: %v", err)
	}
	return store, roster
}

func TestUpdater_RunOnceFirstSnapshot(t *testing.T) {
	store, roster := newTestPipeline(t)
	if err := roster.Add("test-uuid"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	client := &mockAPIClient{raw: map[string][]byte{
		"test-uuid": bedwarsPayload(t, 10, 5, 3, 1),
	}}
	updater := NewUpdater(client, store, roster)

	summary, err := updater.RunOnce(context.Background(), "01-03-25")
	if err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}
	if summary.Written != 1 || summary.Remapped != 0 || summary.Failed != 0 {
		t.Errorf("Expected 1 written, got %+v", summary)
	}
	if !store.Has("test-uuid", "01-03-25") {
		t.Error("Expected snapshot file for 01-03-25")
	}
}

func TestUpdater_RunOnceUnchangedRemaps(t *testing.T) {
	store, roster := newTestPipeline(t)
	if err := roster.Add("test-uuid"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	payload := bedwarsPayload(t, 10, 5, 3, 1)
	if err := store.Write("test-uuid", "01-03-25", payload); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	// Same data, different formatting: still a duplicate.
	var v interface{}
	if err := json.Unmarshal(payload, &v); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	reserialized, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	client := &mockAPIClient{raw: map[string][]byte{"test-uuid": reserialized}}
	updater := NewUpdater(client, store, roster)

	summary, err := updater.RunOnce(context.Background(), "02-03-25")
	if err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}
	if summary.Remapped != 1 || summary.Written != 0 {
		t.Errorf("Expected 1 remapped, got %+v", summary)
	}

	mapping, err := store.Mapping("test-uuid")
	if err != nil {
		t.Fatalf("Mapping failed: %v", err)
	}
	if mapping["02-03-25"] != "01-03-25" {
		t.Errorf("Expected 02-03-25 -> 01-03-25, got %v", mapping)
	}

	dates, err := store.Dates("test-uuid")
	if err != nil {
		t.Fatalf("Dates failed: %v", err)
	}
	if len(dates) != 1 {
		t.Errorf("Expected a single snapshot file, got %v", dates)
	}
}

func TestUpdater_RunOnceChangedWrites(t *testing.T) {
	store, roster := newTestPipeline(t)
	if err := roster.Add("test-uuid"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Write("test-uuid", "01-03-25", bedwarsPayload(t, 10, 5, 3, 1)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	client := &mockAPIClient{raw: map[string][]byte{
		"test-uuid": bedwarsPayload(t, 14, 6, 6, 2),
	}}
	updater := NewUpdater(client, store, roster)

	summary, err := updater.RunOnce(context.Background(), "02-03-25")
	if err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}
	if summary.Written != 1 || summary.Remapped != 0 {
		t.Errorf("Expected 1 written, got %+v", summary)
	}
	if !store.Has("test-uuid", "02-03-25") {
		t.Error("Expected snapshot file for 02-03-25")
	}
}

func TestUpdater_RunOnceAgainstRemappedYesterday(t *testing.T) {
	store, roster := newTestPipeline(t)
	if err := roster.Add("test-uuid"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	// 01-03-25 holds the data; 02-03-25 was a no-op day. An unchanged
	// fetch on 03-03-25 must compare against the mapped payload and
	// land as another redirect.
	payload := bedwarsPayload(t, 10, 5, 3, 1)
	if err := store.Write("test-uuid", "01-03-25", payload); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := store.Remap("test-uuid", "02-03-25", "01-03-25"); err != nil {
		t.Fatalf("Remap failed: %v", err)
	}

	client := &mockAPIClient{raw: map[string][]byte{"test-uuid": payload}}
	updater := NewUpdater(client, store, roster)

	summary, err := updater.RunOnce(context.Background(), "03-03-25")
	if err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}
	if summary.Remapped != 1 {
		t.Errorf("Expected remap against mapped yesterday, got %+v", summary)
	}

	mapping, err := store.Mapping("test-uuid")
	if err != nil {
		t.Fatalf("Mapping failed: %v", err)
	}
	if mapping["03-03-25"] != "01-03-25" {
		t.Errorf("Expected terminal target 01-03-25, got %v", mapping)
	}
}

func TestUpdater_RunOnceIsolatesFailures(t *testing.T) {
	store, roster := newTestPipeline(t)
	for _, p := range []string{"good-uuid", "bad-uuid"} {
		if err := roster.Add(p); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	// bad-uuid has no canned payload, so its fetch fails.
	client := &mockAPIClient{raw: map[string][]byte{
		"good-uuid": bedwarsPayload(t, 1, 1, 1, 1),
	}}
	updater := NewUpdater(client, store, roster)

	summary, err := updater.RunOnce(context.Background(), "01-03-25")
	if err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}
	if summary.Written != 1 || summary.Failed != 1 {
		t.Errorf("Expected 1 written and 1 failed, got %+v", summary)
	}
	if !store.Has("good-uuid", "01-03-25") {
		t.Error("Expected the good player's snapshot despite the bad one failing")
	}
}
