package alloc

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Stats contains allocation statistics.
type Stats struct {
	Allocations    uint64 // Number of successful allocations
	Frees          uint64 // Number of buffers returned
	Failures       uint64 // Number of rejected requests
	BytesAllocated uint64 // Total bytes handed out
	BytesFreed     uint64 // Total bytes returned
	LargestAlloc   uint64 // Largest single allocation
}

// LiveBytes returns the number of bytes currently handed out.
func (s Stats) LiveBytes() uint64 {
	return s.BytesAllocated - s.BytesFreed
}

// tracker records statistics and metrics for one allocator.
type tracker struct {
	name string

	mu    sync.Mutex
	stats Stats
}

func newTracker(name string) *tracker {
	return &tracker{name: name}
}

func (t *tracker) allocated(n int) {
	t.mu.Lock()
	t.stats.Allocations++
	t.stats.BytesAllocated += uint64(n)
	if uint64(n) > t.stats.LargestAlloc {
		t.stats.LargestAlloc = uint64(n)
	}
	t.mu.Unlock()

	allocBytes.WithLabelValues(t.name).Add(float64(n))
	liveBytes.WithLabelValues(t.name).Add(float64(n))
	log.Debug().Str("allocator", t.name).Int("bytes", n).Msg("allocate")
}

func (t *tracker) freed(n int) {
	t.mu.Lock()
	t.stats.Frees++
	t.stats.BytesFreed += uint64(n)
	t.mu.Unlock()

	frees.WithLabelValues(t.name).Inc()
	liveBytes.WithLabelValues(t.name).Sub(float64(n))
	log.Debug().Str("allocator", t.name).Int("bytes", n).Msg("free")
}

func (t *tracker) failed(n int, err error) {
	t.mu.Lock()
	t.stats.Failures++
	t.mu.Unlock()

	failures.WithLabelValues(t.name).Inc()
	log.Debug().Err(err).Str("allocator", t.name).Int("bytes", n).Msg("allocation failed")
}

// Stats returns a snapshot of the statistics.
func (t *tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats
}
