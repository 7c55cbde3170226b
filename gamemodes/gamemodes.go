// Package gamemodes normalizes raw Hypixel player payloads into flat
// per-mode stat records.
package gamemodes

import (
	"strings"

	"github.com/SamOutabrae/Sprocket-hypixel/api"
	"github.com/SamOutabrae/Sprocket-hypixel/models"
)

// HiddenWinstreak is the placeholder recorded when a player hides their
// winstreak via API privacy settings.
const HiddenWinstreak = "Hidden"

// Normalizer converts one snapshot into a flat record for one game mode.
type Normalizer interface {
	// Name is the canonical mode name used as an aggregate-table key.
	Name() string
	// Schema describes the record layout: field order, counter vs gauge
	// vs ratio, and ratio operands.
	Schema() *models.Schema
	// Normalize builds the record for the given snapshot date. It fails
	// with a normalization error when mandatory raw fields are absent;
	// callers skip the snapshot and move on.
	Normalize(date string, resp *api.PlayerResponse) (models.Record, error)
}

// All lists every supported mode, in aggregate-table order.
var All = []Normalizer{
	Bedwars{},
	Bridge{},
	UHC{},
}

var aliases = map[string]string{
	"bw":      "bedwars",
	"bedwars": "bedwars",
	"bridge":  "bridge",
	"uhc":     "uhc",
}

// ByName resolves a user-supplied mode name or alias.
func ByName(name string) (Normalizer, bool) {
	canonical, ok := aliases[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	for _, mode := range All {
		if mode.Name() == canonical {
			return mode, true
		}
	}
	return nil, false
}

// DuelModes lists the duels sub-modes accepted by the !duels command.
func DuelModes() []string {
	return []string{"bridge", "uhc"}
}
