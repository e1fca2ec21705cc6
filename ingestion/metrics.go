package ingestion

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	blocksIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "strata_ingestion_blocks_total",
		Help: "Blocks downloaded and staged",
	})
	segmentsSealed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "strata_ingestion_segments_total",
		Help: "Segments sealed into durable storage",
	})
	groupsSealed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "strata_ingestion_groups_total",
		Help: "Segment groups sealed into durable storage",
	})
	snapshotRevision = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "strata_snapshot_revision",
		Help: "Revision of the last published snapshot",
	})
)
