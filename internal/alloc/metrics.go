package alloc

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	allocBytes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ndarray_alloc_bytes_total",
		Help: "Total number of bytes allocated for array buffers",
	}, []string{"allocator"})

	frees = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ndarray_alloc_frees_total",
		Help: "Total number of array buffers returned to their allocator",
	}, []string{"allocator"})

	failures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ndarray_alloc_failures_total",
		Help: "Total number of rejected allocation requests",
	}, []string{"allocator"})

	liveBytes = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "ndarray_alloc_live_bytes",
		Help: "Current number of bytes held by array buffers",
	}, []string{"allocator"})
)
