package parallel

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFor(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 8}
	var counter int64
	For(1000, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)
	assert.Equal(t, int64(1000), counter)
}

func TestRangeCoversDisjointChunks(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 3, MinChunkSize: 10}
	seen := make([]int32, 100)
	var mu sync.Mutex
	var chunks int
	Range(len(seen), func(lo, hi int) {
		mu.Lock()
		chunks++
		mu.Unlock()
		for i := lo; i < hi; i++ {
			atomic.AddInt32(&seen[i], 1)
		}
	}, cfg)

	assert.Equal(t, 3, chunks)
	for i, n := range seen {
		assert.Equal(t, int32(1), n, "index %d", i)
	}
}

func TestRangeSequential(t *testing.T) {
	var calls [][2]int
	Range(100, func(lo, hi int) {
		calls = append(calls, [2]int{lo, hi})
	}, Config{Enabled: false})
	assert.Equal(t, [][2]int{{0, 100}}, calls)

	calls = nil
	cfg := DefaultConfig()
	Range(cfg.MinChunkSize, func(lo, hi int) {
		calls = append(calls, [2]int{lo, hi})
	}, cfg)
	assert.Equal(t, [][2]int{{0, cfg.MinChunkSize}}, calls)
}

func TestRangeEmpty(t *testing.T) {
	Range(0, func(_, _ int) {
		t.Fatal("called for empty range")
	}, DefaultConfig())
}

func BenchmarkRange(b *testing.B) {
	data := make([]float64, 1<<20)
	fill := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			data[i] = 1
		}
	}
	b.Run("parallel", func(b *testing.B) {
		cfg := DefaultConfig()
		for i := 0; i < b.N; i++ {
			Range(len(data), fill, cfg)
		}
	})
	b.Run("sequential", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			Range(len(data), fill, Config{})
		}
	})
}
