package gamemodes

import (
	"github.com/SamOutabrae/Sprocket-hypixel/api"
	apperrors "github.com/SamOutabrae/Sprocket-hypixel/errors"
	"github.com/SamOutabrae/Sprocket-hypixel/models"
)

// bridgePrefixes are the Duels sub-mode key prefixes summed per stat.
var bridgePrefixes = []string{
	"bridge_duel",
	"bridge_doubles",
	"bridge_threes",
	"bridge_four",
	"bridge_3v3v3v3",
}

// Bridge normalizes the Bridge duels stats, summing over every bridge
// sub-mode. Absent sub-mode keys count as zero, so fresh players get a
// valid all-zero record as long as the Duels block itself exists.
type Bridge struct{}

var bridgeSchema = &models.Schema{
	Mode: "bridge",
	Fields: []models.FieldSpec{
		{Name: "Wins", Kind: models.Counter},
		{Name: "Losses", Kind: models.Counter},
		{Name: "Win Rate", Kind: models.Ratio, Numer: "Wins", Denom: "Losses", DenomAdd: "Wins", Percent: true},
		{Name: "Kills", Kind: models.Counter},
		{Name: "Deaths", Kind: models.Counter},
		{Name: "K/D Ratio", Kind: models.Ratio, Numer: "Kills", Denom: "Deaths"},
		{Name: "Goals", Kind: models.Counter},
		{Name: "Blocks Placed", Kind: models.Counter},
		{Name: "Winstreak", Kind: models.Gauge},
		{Name: "Highest Winstreak", Kind: models.Gauge},
	},
}

var bridgeSums = []struct {
	suffix string
	name   string
}{
	{"wins", "Wins"},
	{"losses", "Losses"},
	{"bridge_kills", "Kills"},
	{"bridge_deaths", "Deaths"},
	{"goals", "Goals"},
	{"blocks_placed", "Blocks Placed"},
}

func (Bridge) Name() string           { return "bridge" }
func (Bridge) Schema() *models.Schema { return bridgeSchema }

func (b Bridge) Normalize(date string, resp *api.PlayerResponse) (models.Record, error) {
	duels, err := duelsBlock(resp, "BRIDGE")
	if err != nil {
		return models.Record{}, err
	}

	rec := models.NewRecord(date)
	for _, s := range bridgeSums {
		rec.Fields[s.name] = models.Num(api.SumStats(duels, bridgePrefixes, s.suffix))
	}
	rec.Fields["Winstreak"] = winstreakValue(duels, "current_bridge_winstreak")
	rec.Fields["Highest Winstreak"] = winstreakValue(duels, "best_bridge_winstreak")

	return bridgeSchema.Recompute(rec), nil
}

// duelsBlock pulls the Duels stat map out of a snapshot, failing
// normalization when it is absent entirely.
func duelsBlock(resp *api.PlayerResponse, mode string) (map[string]interface{}, error) {
	if resp == nil || resp.Player == nil {
		return nil, apperrors.NewNormalizationError(mode+"_NO_PLAYER",
			"snapshot has no player object", nil)
	}
	duels := resp.Player.Stats.Duels
	if duels == nil {
		return nil, apperrors.NewNormalizationError(mode+"_NO_STATS",
			"player has no Duels stat block", nil)
	}
	return duels, nil
}

func winstreakValue(duels map[string]interface{}, key string) models.StatValue {
	if v, ok := api.StatNumber(duels, key); ok {
		return models.Num(v)
	}
	return models.Txt(HiddenWinstreak)
}
