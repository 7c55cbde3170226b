package constants

import "time"

// Adaptive concurrency tuning for upstream fetch fan-out.
const (
	AdaptiveConcurrencyMinLimit = 2
	AdaptiveConcurrencyMaxLimit = 20

	ResponseTimeWindowSize    = 20
	MinResponseTimeWindowSize = 5

	ConcurrencyAdjustmentThreshold = 500 * time.Millisecond
	ConcurrencyDecreaseThreshold   = 1 * time.Second
	ConcurrencyAdjustmentCooldown  = 5 * time.Second
	MaxSuccessiveIncreases         = 3

	P95PercentileRatio = 0.95
)

// Cache cleanup tuning
const (
	CacheCleanupBatchSize   = 100
	MaxCacheCleanupDuration = 50 * time.Millisecond
)

// Pool sizing for rebuild result collection.
const (
	RecordSliceInitialCapacity = 64
	MaxPoolSliceCapacity       = 1024
	MaxPoolSemaphoreSize       = AdaptiveConcurrencyMaxLimit
	MaxStringBuilderSize       = 64 * 1024
)
