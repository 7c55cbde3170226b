package bot

import (
	"github.com/SamOutabrae/Sprocket-hypixel/config"
	"github.com/SamOutabrae/Sprocket-hypixel/interfaces"
	"github.com/SamOutabrae/Sprocket-hypixel/telemetry"
	"github.com/SamOutabrae/Sprocket-hypixel/tracking"
)

// CommandDependencies bundles everything the command handlers need.
type CommandDependencies struct {
	Config     *config.Config
	APIClient  interfaces.APIClient
	Cache      interfaces.CacheReporter
	Roster     interfaces.PlayerRoster
	Links      interfaces.AccountLinker
	Engine     *tracking.DeltaEngine
	Aggregates *tracking.AggregateStore
	Metrics    *telemetry.Client
}

// NewCommandDependencies wires a CommandDependencies instance.
func NewCommandDependencies(
	cfg *config.Config,
	apiClient interfaces.APIClient,
	cache interfaces.CacheReporter,
	roster interfaces.PlayerRoster,
	links interfaces.AccountLinker,
	engine *tracking.DeltaEngine,
	aggregates *tracking.AggregateStore,
	metrics *telemetry.Client,
) *CommandDependencies {
	return &CommandDependencies{
		Config:     cfg,
		APIClient:  apiClient,
		Cache:      cache,
		Roster:     roster,
		Links:      links,
		Engine:     engine,
		Aggregates: aggregates,
		Metrics:    metrics,
	}
}
