package gamemodes

import (
	"fmt"

	"github.com/SamOutabrae/Sprocket-hypixel/api"
	apperrors "github.com/SamOutabrae/Sprocket-hypixel/errors"
	"github.com/SamOutabrae/Sprocket-hypixel/models"
)

// Bedwars normalizes the Bedwars stat block. Every raw field is
// mandatory except the winstreak, which the API omits for players who
// hide it.
type Bedwars struct{}

var bedwarsSchema = &models.Schema{
	Mode: "bedwars",
	Fields: []models.FieldSpec{
		{Name: "Bedwars Level", Kind: models.Gauge},
		{Name: "Kills", Kind: models.Counter},
		{Name: "Deaths", Kind: models.Counter},
		{Name: "Void Deaths", Kind: models.Counter},
		{Name: "K/D Ratio", Kind: models.Ratio, Numer: "Kills", Denom: "Deaths"},
		{Name: "Final Kills", Kind: models.Counter},
		{Name: "Final Deaths", Kind: models.Counter},
		{Name: "Final K/D Ratio", Kind: models.Ratio, Numer: "Final Kills", Denom: "Final Deaths"},
		{Name: "Beds Broken", Kind: models.Counter},
		{Name: "Games Played", Kind: models.Counter},
		{Name: "Wins", Kind: models.Counter},
		{Name: "Losses", Kind: models.Counter},
		{Name: "Win Rate", Kind: models.Ratio, Numer: "Wins", Denom: "Losses", DenomAdd: "Wins", Percent: true},
		{Name: "Winstreak", Kind: models.Gauge},
	},
}

// Raw Bedwars keys and the output fields they feed.
var bedwarsRawFields = []struct {
	key  string
	name string
}{
	{"kills_bedwars", "Kills"},
	{"deaths_bedwars", "Deaths"},
	{"void_deaths_bedwars", "Void Deaths"},
	{"final_kills_bedwars", "Final Kills"},
	{"final_deaths_bedwars", "Final Deaths"},
	{"beds_broken_bedwars", "Beds Broken"},
	{"games_played_bedwars", "Games Played"},
	{"wins_bedwars", "Wins"},
	{"losses_bedwars", "Losses"},
}

func (Bedwars) Name() string           { return "bedwars" }
func (Bedwars) Schema() *models.Schema { return bedwarsSchema }

func (b Bedwars) Normalize(date string, resp *api.PlayerResponse) (models.Record, error) {
	if resp == nil || resp.Player == nil {
		return models.Record{}, apperrors.NewNormalizationError("BEDWARS_NO_PLAYER",
			"snapshot has no player object", nil)
	}
	stats := resp.Player.Stats.Bedwars
	if stats == nil {
		return models.Record{}, apperrors.NewNormalizationError("BEDWARS_NO_STATS",
			"player has no Bedwars stat block", nil)
	}

	rec := models.NewRecord(date)
	for _, f := range bedwarsRawFields {
		v, ok := api.StatNumber(stats, f.key)
		if !ok {
			return models.Record{}, apperrors.NewNormalizationError("BEDWARS_MISSING_FIELD",
				fmt.Sprintf("mandatory field %q missing", f.key), nil)
		}
		rec.Fields[f.name] = models.Num(v)
	}

	level, ok := resp.Player.Achievements["bedwars_level"]
	if !ok {
		return models.Record{}, apperrors.NewNormalizationError("BEDWARS_MISSING_LEVEL",
			"achievement bedwars_level missing", nil)
	}
	rec.Fields["Bedwars Level"] = models.Num(level)

	if ws, ok := api.StatNumber(stats, "winstreak"); ok {
		rec.Fields["Winstreak"] = models.Num(ws)
	} else {
		rec.Fields["Winstreak"] = models.Txt(HiddenWinstreak)
	}

	return bedwarsSchema.Recompute(rec), nil
}
