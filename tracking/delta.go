package tracking

import (
	"context"
	"fmt"

	"github.com/SamOutabrae/Sprocket-hypixel/api"
	"github.com/SamOutabrae/Sprocket-hypixel/constants"
	apperrors "github.com/SamOutabrae/Sprocket-hypixel/errors"
	"github.com/SamOutabrae/Sprocket-hypixel/gamemodes"
	"github.com/SamOutabrae/Sprocket-hypixel/interfaces"
	"github.com/SamOutabrae/Sprocket-hypixel/models"
	"github.com/SamOutabrae/Sprocket-hypixel/utils"
)

// DeltaEngine answers "stats between date A and date B" questions.
// Dates resolve through the snapshot store's mapping fallback, so
// no-op days answer with the payload of the day that holds their data.
type DeltaEngine struct {
	store interfaces.SnapshotRepository
	api   interfaces.APIClient
}

func NewDeltaEngine(store interfaces.SnapshotRepository, apiClient interfaces.APIClient) *DeltaEngine {
	return &DeltaEngine{store: store, api: apiClient}
}

// RecordAt normalizes the stored snapshot for one date. Unsuccessful
// snapshots count as absent.
func (e *DeltaEngine) RecordAt(player, date string, mode gamemodes.Normalizer) (models.Record, error) {
	resp, err := e.snapshotAt(player, date)
	if err != nil {
		return models.Record{}, err
	}
	return mode.Normalize(date, resp)
}

// DisplaynameAt reads the display name recorded in a date's snapshot.
func (e *DeltaEngine) DisplaynameAt(player, date string) (string, error) {
	resp, err := e.snapshotAt(player, date)
	if err != nil {
		return "", err
	}
	return resp.Player.Displayname, nil
}

func (e *DeltaEngine) snapshotAt(player, date string) (*api.PlayerResponse, error) {
	raw, err := e.store.Read(player, date)
	if err != nil {
		return nil, err
	}
	resp, err := api.ParsePlayerResponse(raw)
	if err != nil {
		return nil, apperrors.NewSystemError("SNAPSHOT_CORRUPT",
			fmt.Sprintf("snapshot %s/%s is not valid JSON", player, date), err)
	}
	if !resp.Success || resp.Player == nil {
		return nil, apperrors.NewNotFoundError("SNAPSHOT_UNSUCCESSFUL",
			fmt.Sprintf("snapshot %s/%s recorded a failed fetch", player, date),
			constants.MsgNoData)
	}
	return resp, nil
}

// Delta returns stats at dateB minus stats at dateA: counters
// subtracted pairwise, gauges carried from dateB, ratios recomputed
// from the subtracted counters.
func (e *DeltaEngine) Delta(player string, mode gamemodes.Normalizer, dateA, dateB string) (models.Record, error) {
	recA, err := e.RecordAt(player, dateA, mode)
	if err != nil {
		return models.Record{}, err
	}
	recB, err := e.RecordAt(player, dateB, mode)
	if err != nil {
		return models.Record{}, err
	}
	return mode.Schema().Subtract(recA, recB), nil
}

// On returns what changed on a single date: the delta between that
// date and the day before it.
func (e *DeltaEngine) On(player string, mode gamemodes.Normalizer, date string) (models.Record, error) {
	prev, err := utils.PreviousDayKey(date)
	if err != nil {
		return models.Record{}, apperrors.NewValidationError("BAD_DATE",
			fmt.Sprintf("invalid date key %q", date), constants.MsgBadDate)
	}
	return e.Delta(player, mode, prev, date)
}

// Today returns stats gained since the morning snapshot: a live fetch
// minus today's stored snapshot. When today's snapshot has not been
// taken yet, yesterday's is the baseline.
func (e *DeltaEngine) Today(ctx context.Context, player string, mode gamemodes.Normalizer) (models.Record, error) {
	today := utils.TodayKey()

	base, err := e.RecordAt(player, today, mode)
	if apperrors.IsNotFound(err) {
		base, err = e.RecordAt(player, utils.YesterdayKey(), mode)
	}
	if err != nil {
		return models.Record{}, err
	}

	live, err := e.Live(ctx, player, mode)
	if err != nil {
		return models.Record{}, err
	}
	return mode.Schema().Subtract(base, live), nil
}

// Live normalizes a player's current stats from a fresh fetch.
func (e *DeltaEngine) Live(ctx context.Context, player string, mode gamemodes.Normalizer) (models.Record, error) {
	resp, err := e.api.GetPlayer(ctx, player)
	if err != nil {
		return models.Record{}, err
	}
	return mode.Normalize(utils.TodayKey(), resp)
}
