package gamemodes

import (
	"github.com/SamOutabrae/Sprocket-hypixel/api"
	"github.com/SamOutabrae/Sprocket-hypixel/models"
)

// UHC normalizes the UHC duels stats. There is a single uhc_duel
// sub-mode, so fields read directly with missing keys treated as zero.
type UHC struct{}

var uhcSchema = &models.Schema{
	Mode: "uhc",
	Fields: []models.FieldSpec{
		{Name: "Wins", Kind: models.Counter},
		{Name: "Losses", Kind: models.Counter},
		{Name: "Win Rate", Kind: models.Ratio, Numer: "Wins", Denom: "Losses", DenomAdd: "Wins", Percent: true},
		{Name: "Kills", Kind: models.Counter},
		{Name: "Deaths", Kind: models.Counter},
		{Name: "K/D Ratio", Kind: models.Ratio, Numer: "Kills", Denom: "Deaths"},
		{Name: "Games Played", Kind: models.Counter},
		{Name: "Golden Apples Eaten", Kind: models.Counter},
		{Name: "Blocks Placed", Kind: models.Counter},
		{Name: "Bow Hits", Kind: models.Counter},
		{Name: "Bow Shots", Kind: models.Counter},
		{Name: "Bow Accuracy", Kind: models.Ratio, Numer: "Bow Hits", Denom: "Bow Shots", DenomAdd: "Bow Hits", Percent: true},
		{Name: "Winstreak", Kind: models.Gauge},
		{Name: "Highest Winstreak", Kind: models.Gauge},
	},
}

var uhcRawFields = []struct {
	key  string
	name string
}{
	{"uhc_duel_wins", "Wins"},
	{"uhc_duel_losses", "Losses"},
	{"uhc_duel_kills", "Kills"},
	{"uhc_duel_deaths", "Deaths"},
	{"uhc_duel_rounds_played", "Games Played"},
	{"uhc_duel_golden_apples_eaten", "Golden Apples Eaten"},
	{"uhc_duel_blocks_placed", "Blocks Placed"},
	{"uhc_duel_bow_hits", "Bow Hits"},
	{"uhc_duel_bow_shots", "Bow Shots"},
}

func (UHC) Name() string           { return "uhc" }
func (UHC) Schema() *models.Schema { return uhcSchema }

func (u UHC) Normalize(date string, resp *api.PlayerResponse) (models.Record, error) {
	duels, err := duelsBlock(resp, "UHC")
	if err != nil {
		return models.Record{}, err
	}

	rec := models.NewRecord(date)
	for _, f := range uhcRawFields {
		v, _ := api.StatNumber(duels, f.key)
		rec.Fields[f.name] = models.Num(v)
	}
	rec.Fields["Winstreak"] = winstreakValue(duels, "current_uhc_winstreak")
	rec.Fields["Highest Winstreak"] = winstreakValue(duels, "best_uhc_winstreak")

	return uhcSchema.Recompute(rec), nil
}
