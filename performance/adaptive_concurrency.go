// Package performance holds the adaptive fan-out limiter and object
// pools used by the daily update cycle and aggregate rebuilds.
package performance

import (
	"sync"
	"time"

	"github.com/SamOutabrae/Sprocket-hypixel/constants"
)

// AdaptiveConcurrencyManager tunes how many Hypixel requests run in
// parallel based on observed response times, backing off before the
// API starts rate limiting.
type AdaptiveConcurrencyManager struct {
	mutex               sync.RWMutex
	currentLimit        int
	minLimit            int
	maxLimit            int
	responseTimeWindow  []time.Duration
	windowSize          int
	adjustmentThreshold time.Duration
	decreaseThreshold   time.Duration
	lastAdjustment      time.Time
	adjustmentCooldown  time.Duration
	successiveIncreases int
	successiveDecreases int
}

func NewAdaptiveConcurrencyManager() *AdaptiveConcurrencyManager {
	return &AdaptiveConcurrencyManager{
		currentLimit:        constants.MaxConcurrentRequests,
		minLimit:            constants.AdaptiveConcurrencyMinLimit,
		maxLimit:            constants.AdaptiveConcurrencyMaxLimit,
		responseTimeWindow:  make([]time.Duration, 0, constants.ResponseTimeWindowSize),
		windowSize:          constants.ResponseTimeWindowSize,
		adjustmentThreshold: constants.ConcurrencyAdjustmentThreshold,
		decreaseThreshold:   constants.ConcurrencyDecreaseThreshold,
		adjustmentCooldown:  constants.ConcurrencyAdjustmentCooldown,
		lastAdjustment:      time.Now(),
	}
}

// GetCurrentLimit returns the limit fan-out loops should size their
// semaphores with.
func (manager *AdaptiveConcurrencyManager) GetCurrentLimit() int {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()
	return manager.currentLimit
}

// RecordResponseTime feeds one upstream request duration into the
// window and adjusts the limit once enough samples accumulate and the
// cooldown has passed.
func (manager *AdaptiveConcurrencyManager) RecordResponseTime(responseTime time.Duration) {
	manager.mutex.Lock()
	defer manager.mutex.Unlock()

	manager.responseTimeWindow = append(manager.responseTimeWindow, responseTime)
	if len(manager.responseTimeWindow) > manager.windowSize {
		manager.responseTimeWindow = manager.responseTimeWindow[1:]
	}

	if len(manager.responseTimeWindow) >= constants.MinResponseTimeWindowSize &&
		time.Since(manager.lastAdjustment) > manager.adjustmentCooldown {
		manager.adjustConcurrency()
	}
}

// adjustConcurrency must be called with the write lock held.
func (manager *AdaptiveConcurrencyManager) adjustConcurrency() {
	avgResponseTime := manager.calculateAverageResponseTime()
	p95ResponseTime := manager.calculateP95ResponseTime()

	oldLimit := manager.currentLimit

	if p95ResponseTime > manager.decreaseThreshold || avgResponseTime > manager.adjustmentThreshold {
		if manager.currentLimit > manager.minLimit {
			manager.currentLimit = max(manager.minLimit, manager.currentLimit-1)
			manager.successiveDecreases++
			manager.successiveIncreases = 0
		}
	} else if avgResponseTime < manager.adjustmentThreshold/2 {
		if manager.currentLimit < manager.maxLimit && manager.successiveDecreases == 0 {
			if manager.successiveIncreases < constants.MaxSuccessiveIncreases {
				manager.currentLimit = min(manager.maxLimit, manager.currentLimit+1)
				manager.successiveIncreases++
			}
		}
		manager.successiveDecreases = 0
	}

	if oldLimit != manager.currentLimit {
		manager.lastAdjustment = time.Now()
	}
}

// calculateAverageResponseTime must be called with the lock held.
func (manager *AdaptiveConcurrencyManager) calculateAverageResponseTime() time.Duration {
	if len(manager.responseTimeWindow) == 0 {
		return 0
	}
	var total time.Duration
	for _, responseTime := range manager.responseTimeWindow {
		total += responseTime
	}
	return total / time.Duration(len(manager.responseTimeWindow))
}

// calculateP95ResponseTime approximates the 95th percentile without
// sorting. Must be called with the lock held.
func (manager *AdaptiveConcurrencyManager) calculateP95ResponseTime() time.Duration {
	if len(manager.responseTimeWindow) == 0 {
		return 0
	}
	var maxTime time.Duration
	for _, responseTime := range manager.responseTimeWindow {
		if responseTime > maxTime {
			maxTime = responseTime
		}
	}
	return time.Duration(float64(maxTime) * constants.P95PercentileRatio)
}

// ConcurrencyStats is a point-in-time view of the limiter.
type ConcurrencyStats struct {
	CurrentLimit    int
	MinLimit        int
	MaxLimit        int
	AverageResponse time.Duration
	P95Response     time.Duration
	WindowSize      int
	LastAdjustment  time.Time
	SuccessiveInc   int
	SuccessiveDec   int
}

func (manager *AdaptiveConcurrencyManager) GetStats() ConcurrencyStats {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()

	return ConcurrencyStats{
		CurrentLimit:    manager.currentLimit,
		MinLimit:        manager.minLimit,
		MaxLimit:        manager.maxLimit,
		AverageResponse: manager.calculateAverageResponseTime(),
		P95Response:     manager.calculateP95ResponseTime(),
		WindowSize:      len(manager.responseTimeWindow),
		LastAdjustment:  manager.lastAdjustment,
		SuccessiveInc:   manager.successiveIncreases,
		SuccessiveDec:   manager.successiveDecreases,
	}
}
