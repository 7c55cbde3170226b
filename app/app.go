package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/SamOutabrae/Sprocket-hypixel/api"
	"github.com/SamOutabrae/Sprocket-hypixel/bot"
	"github.com/SamOutabrae/Sprocket-hypixel/config"
	"github.com/SamOutabrae/Sprocket-hypixel/constants"
	"github.com/SamOutabrae/Sprocket-hypixel/scheduler"
	"github.com/SamOutabrae/Sprocket-hypixel/storage"
	"github.com/SamOutabrae/Sprocket-hypixel/telemetry"
	"github.com/SamOutabrae/Sprocket-hypixel/tracking"
	"github.com/SamOutabrae/Sprocket-hypixel/utils"
)

// Application ties together every component of the bot: configuration,
// the Hypixel client, the snapshot stores, the tracking pipeline, the
// Discord session and the scheduler.
type Application struct {
	config     *config.Config
	session    *discordgo.Session
	apiClient  *api.CachedClient
	snapshots  *storage.SnapshotStore
	roster     *storage.TrackedPlayers
	links      *storage.AccountLinks
	updater    *tracking.Updater
	aggregates *tracking.AggregateStore
	engine     *tracking.DeltaEngine
	metrics    *telemetry.Client
	handler    *bot.CommandHandler
	scheduler  *scheduler.Scheduler
}

// New builds a fully wired Application ready to Run.
func New() (*Application, error) {
	app := &Application{}

	if err := app.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := app.initializeDependencies(); err != nil {
		return nil, fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	if err := app.initializeDiscord(); err != nil {
		return nil, fmt.Errorf("failed to initialize discord: %w", err)
	}

	app.setupHandlers()
	app.initializeScheduler()

	return app, nil
}

func (a *Application) loadConfig() error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.config = cfg
	return nil
}

func (a *Application) initializeDependencies() error {
	a.apiClient = api.NewCachedClient(a.config.Hypixel.APIKey)

	ctx, cancel := context.WithTimeout(context.Background(), constants.APITimeout)
	defer cancel()
	if err := a.apiClient.ValidateKey(ctx); err != nil {
		// A bad key makes every fetch fail. Keep the bot up for the
		// commands that do not need Hypixel, but stop the pipeline.
		utils.Error("Hypixel API key validation failed, disabling tracking: %v", err)
		a.config.Tracking.Enabled = false
	}

	snapshots, err := storage.NewSnapshotStore(a.config.Tracking.DataPath)
	if err != nil {
		return err
	}
	roster, err := storage.NewTrackedPlayers(a.config.Tracking.DataPath)
	if err != nil {
		return err
	}
	links, err := storage.NewAccountLinks(a.config.Tracking.DataPath)
	if err != nil {
		return err
	}
	a.snapshots = snapshots
	a.roster = roster
	a.links = links

	a.updater = tracking.NewUpdater(a.apiClient, a.snapshots, a.roster)
	a.aggregates = tracking.NewAggregateStore(a.snapshots, a.roster)
	a.engine = tracking.NewDeltaEngine(a.snapshots, a.apiClient)

	projectID := ""
	if a.config.Telemetry.Enabled {
		projectID = a.config.Telemetry.ProjectID
	}
	a.metrics = telemetry.NewClient(projectID)

	return nil
}

func (a *Application) initializeDiscord() error {
	session, err := discordgo.New("Bot " + a.config.Discord.Token)
	if err != nil {
		return err
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent
	a.session = session
	return nil
}

func (a *Application) setupHandlers() {
	deps := bot.NewCommandDependencies(
		a.config,
		a.apiClient,
		a.apiClient,
		a.roster,
		a.links,
		a.engine,
		a.aggregates,
		a.metrics,
	)
	a.handler = bot.NewCommandHandler(deps)

	a.session.AddHandler(a.handler.HandleMessage)
	a.session.AddHandler(a.handleReady)
}

func (a *Application) initializeScheduler() {
	a.scheduler = scheduler.NewScheduler(a.config, a.updater, a.aggregates, a.metrics)
}

func (a *Application) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	utils.Info("Logged in as %s#%s", r.User.Username, r.User.Discriminator)
	if err := s.UpdateGameStatus(0, constants.BotStatusMessage); err != nil {
		utils.Warn("Failed to set bot status: %v", err)
	}
	a.warmupCache()
}

// warmupCache pre-fetches every tracked player so the first commands of
// the day hit the cache instead of the Hypixel API.
func (a *Application) warmupCache() {
	players, err := a.roster.List()
	if err != nil {
		utils.Warn("Cache warmup skipped, roster unavailable: %v", err)
		return
	}
	if len(players) == 0 {
		return
	}
	utils.Info("Warming up cache for %d tracked players", len(players))
	a.apiClient.WarmupCache(players)
}

// Start opens the Discord session and kicks off the tracking pipeline.
func (a *Application) Start() error {
	if err := a.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}

	if a.config.Tracking.Enabled {
		a.scheduler.Start()

		go func() {
			if a.updateMissedToday() {
				utils.Info("No snapshots for today yet, running a catch-up update")
				a.scheduler.RunNow()
			}

			start := time.Now()
			if err := a.aggregates.RebuildAll(constants.MaxConcurrentRequests); err != nil {
				utils.Warn("Initial aggregate rebuild incomplete: %v", err)
			}
			utils.Info("Initial aggregate rebuild finished in %v", time.Since(start))
		}()
	}

	a.printStartupMessage()
	return nil
}

// updateMissedToday reports whether today's scheduled update should
// have run already but left no snapshots behind, which happens when
// the bot was down at update time.
func (a *Application) updateMissedToday() bool {
	now := time.Now()
	scheduled := time.Date(now.Year(), now.Month(), now.Day(),
		a.config.Tracking.UpdateHour, a.config.Tracking.UpdateMinute, 0, 0, now.Location())
	if now.Before(scheduled) {
		return false
	}

	players, err := a.roster.List()
	if err != nil || len(players) == 0 {
		return false
	}
	today := utils.TodayKey()
	for _, player := range players {
		if a.snapshots.Has(player, today) {
			return false
		}
	}
	return true
}

func (a *Application) printStartupMessage() {
	utils.Info("Sprocket is up. Tracking enabled: %v, update time: %02d:%02d",
		a.config.Tracking.Enabled, a.config.Tracking.UpdateHour, a.config.Tracking.UpdateMinute)
	if a.config.IsDebugMode() {
		utils.Debug("Debug mode active, data path: %s", a.config.Tracking.DataPath)
	}
}

// Run starts the application and blocks until SIGINT or SIGTERM.
func (a *Application) Run() error {
	if err := a.Start(); err != nil {
		return err
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	utils.Info("Shutdown signal received")
	return a.Stop()
}

func (a *Application) printCacheStats() {
	stats := a.apiClient.GetCacheStats()
	utils.Info("Cache stats at shutdown: %d calls, %d hits, %d misses (%.1f%% hit rate)",
		stats.TotalCalls, stats.CacheHits, stats.CacheMisses, stats.HitRate)
}

// Stop shuts every component down in reverse start order.
func (a *Application) Stop() error {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}

	a.printCacheStats()

	if a.metrics != nil {
		a.metrics.Close()
	}
	if a.apiClient != nil {
		a.apiClient.Close()
	}
	if a.session != nil {
		if err := a.session.Close(); err != nil {
			return fmt.Errorf("failed to close discord session: %w", err)
		}
	}

	utils.Info("Sprocket stopped")
	return nil
}
