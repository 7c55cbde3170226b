// Package interfaces declares the seams between the bot's layers so
// commands and the tracking pipeline can be tested against mocks.
package interfaces

import (
	"context"

	"github.com/SamOutabrae/Sprocket-hypixel/api"
)

// APIClient is the upstream surface the bot depends on: Hypixel player
// lookups plus Mojang username resolution.
type APIClient interface {
	// GetPlayer fetches and parses a player's current stats, failing on
	// success=false payloads.
	GetPlayer(ctx context.Context, uuid string) (*api.PlayerResponse, error)
	// FetchPlayerRaw returns the raw response body verbatim, including
	// success=false payloads. Never served from cache.
	FetchPlayerRaw(ctx context.Context, uuid string) ([]byte, error)
	// ResolveUUID turns a username or UUID into an undashed lowercase
	// UUID.
	ResolveUUID(ctx context.Context, username string) (string, error)
	// ValidateKey probes the Hypixel key and fails fast on a 403.
	ValidateKey(ctx context.Context) error
}

// CacheReporter exposes cache health for the !cache command and the
// health endpoint.
type CacheReporter interface {
	GetCacheStats() api.CacheMetrics
	ClearCache()
}
