package tracking

import (
	"fmt"
	"sync"

	"github.com/SamOutabrae/Sprocket-hypixel/api"
	apperrors "github.com/SamOutabrae/Sprocket-hypixel/errors"
	"github.com/SamOutabrae/Sprocket-hypixel/gamemodes"
	"github.com/SamOutabrae/Sprocket-hypixel/interfaces"
	"github.com/SamOutabrae/Sprocket-hypixel/models"
	"github.com/SamOutabrae/Sprocket-hypixel/performance"
	"github.com/SamOutabrae/Sprocket-hypixel/utils"
)

// AggregateStore holds the per-player, per-mode history of normalized
// records, rebuilt wholesale from the snapshot store. The snapshot
// files remain the source of truth; everything here is derived and
// safe to throw away.
type AggregateStore struct {
	store  interfaces.SnapshotRepository
	roster interfaces.PlayerRoster

	mu     sync.RWMutex
	tables map[string]map[string][]models.Record
}

func NewAggregateStore(store interfaces.SnapshotRepository, roster interfaces.PlayerRoster) *AggregateStore {
	return &AggregateStore{
		store:  store,
		roster: roster,
		tables: make(map[string]map[string][]models.Record),
	}
}

// Rebuild recomputes every mode's table for one player from all of
// their stored snapshots, in date order. Snapshots with success=false
// and snapshots a mode cannot normalize are skipped, not fatal.
func (s *AggregateStore) Rebuild(player string) error {
	dates, err := s.store.Dates(player)
	if err != nil {
		return err
	}

	type parsedSnapshot struct {
		date string
		resp *api.PlayerResponse
	}
	parsed := make([]parsedSnapshot, 0, len(dates))
	skipped := 0
	for _, date := range dates {
		raw, err := s.store.Read(player, date)
		if err != nil {
			utils.Warn("Rebuild for %s: cannot read %s: %v", player, date, err)
			skipped++
			continue
		}
		resp, err := api.ParsePlayerResponse(raw)
		if err != nil {
			utils.Warn("Rebuild for %s: snapshot %s is not valid JSON: %v", player, date, err)
			skipped++
			continue
		}
		if !resp.Success {
			skipped++
			continue
		}
		parsed = append(parsed, parsedSnapshot{date: date, resp: resp})
	}

	modeTables := make(map[string][]models.Record, len(gamemodes.All))
	for _, mode := range gamemodes.All {
		buf := performance.GetRecordSlice()
		for _, ps := range parsed {
			rec, err := mode.Normalize(ps.date, ps.resp)
			if err != nil {
				utils.Debug("Rebuild for %s: %s snapshot %s: %v", player, mode.Name(), ps.date, err)
				continue
			}
			*buf = append(*buf, rec)
		}
		table := make([]models.Record, len(*buf))
		copy(table, *buf)
		modeTables[mode.Name()] = table
		performance.PutRecordSlice(buf)
	}

	s.mu.Lock()
	s.tables[player] = modeTables
	s.mu.Unlock()

	utils.Info("Rebuilt aggregates for %s: %d dates, %d skipped", player, len(dates), skipped)
	return nil
}

// RebuildAll rebuilds every tracked player's tables with a bounded
// worker fan-out. Individual player failures are logged and counted,
// never propagated.
func (s *AggregateStore) RebuildAll(workers int) error {
	players, err := s.roster.List()
	if err != nil {
		return err
	}

	sem := performance.GetSemaphoreChannel(workers)
	defer performance.PutSemaphoreChannel(sem)

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed int
	)
	for _, player := range players {
		wg.Add(1)
		sem <- struct{}{}
		go func(player string) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := s.Rebuild(player); err != nil {
				utils.Error("Rebuild failed for %s: %v", player, err)
				mu.Lock()
				failed++
				mu.Unlock()
			}
		}(player)
	}
	wg.Wait()

	if failed > 0 {
		return apperrors.NewSystemError("REBUILD_PARTIAL",
			fmt.Sprintf("aggregate rebuild failed for %d of %d players", failed, len(players)), nil)
	}
	return nil
}

// Table returns the record history for (player, mode), oldest first.
// The second return is false when the player has no rebuilt table.
func (s *AggregateStore) Table(player, mode string) ([]models.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	modes, ok := s.tables[player]
	if !ok {
		return nil, false
	}
	records, ok := modes[mode]
	if !ok || len(records) == 0 {
		return nil, false
	}
	out := make([]models.Record, len(records))
	copy(out, records)
	return out, true
}

// Players lists players with rebuilt tables.
func (s *AggregateStore) Players() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]string, 0, len(s.tables))
	for p := range s.tables {
		players = append(players, p)
	}
	return players
}
