package performance

import (
	"testing"

	"github.com/SamOutabrae/Sprocket-hypixel/constants"
)

// admit tries a non-blocking semaphore acquire and reports whether it
// was admitted.
func admit(sem chan struct{}) bool {
	select {
	case sem <- struct{}{}:
		return true
	default:
		return false
	}
}

func TestGetSemaphoreChannel_CapacityMatchesRequestedSize(t *testing.T) {
	// Seed the pool with a full-size channel first, the way a completed
	// update cycle would, so a smaller request could wrongly reuse it.
	PutSemaphoreChannel(GetSemaphoreChannel(constants.MaxPoolSemaphoreSize))

	const limit = 5
	sem := GetSemaphoreChannel(limit)
	defer PutSemaphoreChannel(sem)

	if cap(sem) != limit {
		t.Fatalf("Expected capacity %d, got %d", limit, cap(sem))
	}

	admitted := 0
	for admit(sem) {
		admitted++
	}
	if admitted != limit {
		t.Errorf("Expected %d workers admitted, got %d", limit, admitted)
	}
}

func TestGetSemaphoreChannel_PooledChannelIsDrained(t *testing.T) {
	size := constants.MaxPoolSemaphoreSize

	sem := GetSemaphoreChannel(size)
	sem <- struct{}{}
	sem <- struct{}{}
	PutSemaphoreChannel(sem)

	reused := GetSemaphoreChannel(size)
	defer PutSemaphoreChannel(reused)

	admitted := 0
	for admit(reused) {
		admitted++
	}
	if admitted != size {
		t.Errorf("Expected a drained channel admitting %d, got %d", size, admitted)
	}
}

func TestPutSemaphoreChannel_DropsMismatchedCapacity(t *testing.T) {
	// A channel that is not full-size must never enter the pool.
	PutSemaphoreChannel(make(chan struct{}, 3))

	sem := GetSemaphoreChannel(constants.MaxPoolSemaphoreSize)
	defer PutSemaphoreChannel(sem)

	if cap(sem) != constants.MaxPoolSemaphoreSize {
		t.Errorf("Expected capacity %d from the pool, got %d",
			constants.MaxPoolSemaphoreSize, cap(sem))
	}
}
