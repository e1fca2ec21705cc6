package stream

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	activeSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "strata_stream_active_subscribers",
		Help: "Currently connected data stream subscribers",
	})
	batchesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "strata_stream_batches_total",
		Help: "Data batches sent to subscribers",
	})
	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "strata_stream_cache_hit",
		Help: "Reader cache hits",
	}, []string{"cache"})
	cacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "strata_stream_cache_miss",
		Help: "Reader cache misses",
	}, []string{"cache"})
)
