// Package scheduler runs the daily snapshot update at a configured
// local time.
package scheduler

import (
	"context"
	"time"

	"github.com/SamOutabrae/Sprocket-hypixel/config"
	"github.com/SamOutabrae/Sprocket-hypixel/constants"
	"github.com/SamOutabrae/Sprocket-hypixel/telemetry"
	"github.com/SamOutabrae/Sprocket-hypixel/tracking"
	"github.com/SamOutabrae/Sprocket-hypixel/utils"
)

// Scheduler waits until the configured update time, runs one snapshot
// cycle plus an aggregate rebuild, then repeats every 24 hours.
type Scheduler struct {
	config     *config.Config
	updater    *tracking.Updater
	aggregates *tracking.AggregateStore
	telemetry  *telemetry.Client
	ticker     *time.Ticker
	stopChan   chan struct{}
}

func NewScheduler(cfg *config.Config, updater *tracking.Updater, aggregates *tracking.AggregateStore, tel *telemetry.Client) *Scheduler {
	return &Scheduler{
		config:     cfg,
		updater:    updater,
		aggregates: aggregates,
		telemetry:  tel,
		stopChan:   make(chan struct{}),
	}
}

// Start arms the scheduler. The first run fires at the next occurrence
// of the configured hour and minute; later runs follow daily.
func (s *Scheduler) Start() {
	hour := s.config.Tracking.UpdateHour
	minute := s.config.Tracking.UpdateMinute

	now := time.Now()
	nextRun := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !nextRun.After(now) {
		nextRun = nextRun.Add(constants.SchedulerInterval)
	}
	duration := nextRun.Sub(now)

	go func() {
		select {
		case <-time.After(duration):
			s.runUpdateCycle()
		case <-s.stopChan:
			return
		}

		s.ticker = time.NewTicker(constants.SchedulerInterval)
		defer s.ticker.Stop()

		for {
			select {
			case <-s.ticker.C:
				s.runUpdateCycle()
			case <-s.stopChan:
				return
			}
		}
	}()

	utils.Info("Daily update scheduler set to run at %02d:%02d (first run in %v)",
		hour, minute, duration.Round(time.Second))
}

// RunNow triggers an immediate cycle outside the schedule, used at
// startup when today's snapshots are missing.
func (s *Scheduler) RunNow() {
	s.runUpdateCycle()
}

func (s *Scheduler) runUpdateCycle() {
	date := utils.TodayKey()
	summary, err := s.updater.RunOnce(context.Background(), date)
	if err != nil {
		utils.Error("Daily update cycle for %s failed: %v", date, err)
		return
	}
	if s.telemetry != nil {
		s.telemetry.RecordUpdateCycle(summary)
	}

	if err := s.aggregates.RebuildAll(constants.MaxConcurrentRequests); err != nil {
		utils.Error("Aggregate rebuild after update failed: %v", err)
	}
}

// Stop halts future runs. A cycle already in flight finishes.
func (s *Scheduler) Stop() {
	if s.ticker != nil {
		s.ticker.Stop()
	}
	close(s.stopChan)
	utils.Info("Scheduler stopped")
}
