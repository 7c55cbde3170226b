package performance

import (
	"strings"
	"sync"

	"github.com/SamOutabrae/Sprocket-hypixel/constants"
	"github.com/SamOutabrae/Sprocket-hypixel/models"
)

var (
	// RecordSlicePool recycles the per-player record slices built
	// during aggregate rebuilds.
	RecordSlicePool = sync.Pool{
		New: func() interface{} {
			slice := make([]models.Record, 0, constants.RecordSliceInitialCapacity)
			return &slice
		},
	}

	// SemaphoreChanPool recycles the fan-out semaphores sized by the
	// adaptive limiter.
	SemaphoreChanPool = sync.Pool{
		New: func() interface{} {
			return make(chan struct{}, constants.MaxPoolSemaphoreSize)
		},
	}

	// StringBuilderPool recycles builders used for embed and log
	// assembly.
	StringBuilderPool = sync.Pool{
		New: func() interface{} {
			return &strings.Builder{}
		},
	}
)

// GetRecordSlice returns an empty record slice, reusing capacity where
// possible.
func GetRecordSlice() *[]models.Record {
	slice := RecordSlicePool.Get().(*[]models.Record)
	*slice = (*slice)[:0]
	return slice
}

// PutRecordSlice returns a slice to the pool. Oversized slices are
// dropped so the pool does not pin large allocations.
func PutRecordSlice(slice *[]models.Record) {
	if cap(*slice) <= constants.MaxPoolSliceCapacity {
		RecordSlicePool.Put(slice)
	}
}

// GetSemaphoreChannel returns a drained semaphore channel whose
// capacity is exactly the requested size, so the channel itself
// enforces the limit. Only full-size channels come from the pool; any
// other size gets a fresh channel.
func GetSemaphoreChannel(size int) chan struct{} {
	if size == constants.MaxPoolSemaphoreSize {
		ch := SemaphoreChanPool.Get().(chan struct{})
		for {
			select {
			case <-ch:
			default:
				return ch
			}
		}
	}
	return make(chan struct{}, size)
}

// PutSemaphoreChannel drains the channel and returns it to the pool.
// Channels of other capacities are dropped so the pool never hands out
// a mis-sized semaphore.
func PutSemaphoreChannel(ch chan struct{}) {
	if cap(ch) == constants.MaxPoolSemaphoreSize {
		for {
			select {
			case <-ch:
			default:
				SemaphoreChanPool.Put(ch)
				return
			}
		}
	}
}

// GetStringBuilder returns a reset builder from the pool.
func GetStringBuilder() *strings.Builder {
	sb := StringBuilderPool.Get().(*strings.Builder)
	sb.Reset()
	return sb
}

// PutStringBuilder returns a builder unless it has grown past the cap.
func PutStringBuilder(sb *strings.Builder) {
	if sb.Cap() <= constants.MaxStringBuilderSize {
		StringBuilderPool.Put(sb)
	}
}
