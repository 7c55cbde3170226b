// Package tracking implements the daily snapshot pipeline: fetching
// and persisting raw payloads, deduplicating unchanged days through
// date remapping, rebuilding per-player aggregate tables, and
// computing deltas between dates.
package tracking

import (
	"context"
	"encoding/json"
	"reflect"
	"sync"
	"time"

	apperrors "github.com/SamOutabrae/Sprocket-hypixel/errors"
	"github.com/SamOutabrae/Sprocket-hypixel/interfaces"
	"github.com/SamOutabrae/Sprocket-hypixel/performance"
	"github.com/SamOutabrae/Sprocket-hypixel/utils"
)

// Updater runs the once-per-day snapshot cycle over every tracked
// player. Each player is fetched, compared against the previous day's
// effective payload, and either stored as a new snapshot or recorded
// as a date redirect.
type Updater struct {
	api     interfaces.APIClient
	store   interfaces.SnapshotRepository
	roster  interfaces.PlayerRoster
	limiter *performance.AdaptiveConcurrencyManager
}

func NewUpdater(api interfaces.APIClient, store interfaces.SnapshotRepository, roster interfaces.PlayerRoster) *Updater {
	return &Updater{
		api:     api,
		store:   store,
		roster:  roster,
		limiter: performance.NewAdaptiveConcurrencyManager(),
	}
}

// UpdateSummary reports one update cycle's outcome.
type UpdateSummary struct {
	Players  int
	Written  int
	Remapped int
	Failed   int
	Duration time.Duration
}

// RunOnce executes a full update cycle for the given date key. Player
// failures are isolated: one bad fetch never stops the rest of the
// roster.
func (u *Updater) RunOnce(ctx context.Context, date string) (UpdateSummary, error) {
	start := time.Now()

	players, err := u.roster.List()
	if err != nil {
		return UpdateSummary{}, err
	}
	utils.Info("Starting update cycle for %s: %d tracked players", date, len(players))

	limit := u.limiter.GetCurrentLimit()
	sem := performance.GetSemaphoreChannel(limit)
	defer performance.PutSemaphoreChannel(sem)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		written  int
		remapped int
		failed   int
	)
	for _, player := range players {
		wg.Add(1)
		sem <- struct{}{}
		go func(player string) {
			defer wg.Done()
			defer func() { <-sem }()

			outcome, err := u.updatePlayer(ctx, player, date)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				utils.Error("Update failed for %s: %v", player, err)
				return
			}
			if outcome == outcomeRemapped {
				remapped++
			} else {
				written++
			}
		}(player)
	}
	wg.Wait()

	summary := UpdateSummary{
		Players:  len(players),
		Written:  written,
		Remapped: remapped,
		Failed:   failed,
		Duration: time.Since(start),
	}
	utils.Info("Update cycle for %s finished in %v: %d written, %d remapped, %d failed",
		date, summary.Duration.Round(time.Millisecond), written, remapped, failed)
	return summary, nil
}

type updateOutcome int

const (
	outcomeWritten updateOutcome = iota
	outcomeRemapped
)

// updatePlayer fetches one player's payload and stores it, or remaps
// the date when the payload matches the previous day's.
func (u *Updater) updatePlayer(ctx context.Context, player, date string) (updateOutcome, error) {
	fetchStart := time.Now()
	raw, err := u.api.FetchPlayerRaw(ctx, player)
	u.limiter.RecordResponseTime(time.Since(fetchStart))
	if err != nil {
		return 0, err
	}

	yesterday, err := utils.PreviousDayKey(date)
	if err != nil {
		return 0, err
	}

	prevRaw, err := u.store.Read(player, yesterday)
	switch {
	case err == nil:
		if payloadsEqual(raw, prevRaw) {
			utils.Debug("Payload for %s unchanged since %s, remapping %s", player, yesterday, date)
			if err := u.store.Remap(player, date, yesterday); err != nil {
				return 0, err
			}
			return outcomeRemapped, nil
		}
	case apperrors.IsNotFound(err):
		// First snapshot for this player, or a gap in the history.
	default:
		return 0, err
	}

	if err := u.store.Write(player, date, raw); err != nil {
		return 0, err
	}
	return outcomeWritten, nil
}

// payloadsEqual compares two raw payloads structurally, so key order
// and whitespace differences do not defeat deduplication.
func payloadsEqual(a, b []byte) bool {
	var va, vb interface{}
	if err := json.Unmarshal(a, &va); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &vb); err != nil {
		return false
	}
	return reflect.DeepEqual(va, vb)
}
