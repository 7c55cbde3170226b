package api

import (
	"encoding/json"
	"fmt"
)

// PlayerResponse is the top-level Hypixel /player payload. Only the parts
// the normalizers need are typed; the stats maps stay loose because field
// sets vary per player and Hypixel adds keys without notice.
type PlayerResponse struct {
	Success bool    `json:"success"`
	Cause   string  `json:"cause,omitempty"`
	Player  *Player `json:"player"`
}

// Player is the nested player document.
type Player struct {
	UUID         string             `json:"uuid"`
	Displayname  string             `json:"displayname"`
	Achievements map[string]float64 `json:"achievements"`
	Stats        PlayerStats        `json:"stats"`
}

// PlayerStats holds the per-game stat blobs.
type PlayerStats struct {
	Bedwars map[string]interface{} `json:"Bedwars"`
	Duels   map[string]interface{} `json:"Duels"`
}

// ParsePlayerResponse decodes a raw snapshot payload. It does not check
// the success flag; unsuccessful payloads are valid parses that callers
// filter out.
func ParsePlayerResponse(raw []byte) (*PlayerResponse, error) {
	var resp PlayerResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse player response: %w", err)
	}
	return &resp, nil
}

// StatNumber reads a numeric stat from a loose stats map. ok is false
// when the key is absent, null, or not a number.
func StatNumber(stats map[string]interface{}, key string) (float64, bool) {
	if stats == nil {
		return 0, false
	}
	v, exists := stats[key]
	if !exists || v == nil {
		return 0, false
	}
	n, isNumber := v.(float64)
	return n, isNumber
}

// SumStats adds <prefix>_<suffix> across a set of prefixes, treating
// missing or null entries as zero. Used for duels sub-mode totals.
func SumStats(stats map[string]interface{}, prefixes []string, suffix string) float64 {
	var total float64
	for _, p := range prefixes {
		if v, ok := StatNumber(stats, p+"_"+suffix); ok {
			total += v
		}
	}
	return total
}
