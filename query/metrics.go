package query

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cafedesk",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Reads served from a cached entry, per entity kind.",
	}, []string{"kind"})

	cacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cafedesk",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Reads that required a synchronous fetch, per entity kind.",
	}, []string{"kind"})

	cacheRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cafedesk",
		Subsystem: "cache",
		Name:      "refreshes_total",
		Help:      "Background refreshes triggered by reads past the staleness window.",
	}, []string{"kind"})

	cacheInvalidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cafedesk",
		Subsystem: "cache",
		Name:      "invalidations_total",
		Help:      "Segment invalidations issued after successful mutations.",
	}, []string{"kind"})
)
