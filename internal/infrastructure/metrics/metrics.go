// Package metrics holds the Prometheus collectors of the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_query_cache_hits_total",
		Help: "Fresh reads served from the query cache, by query kind.",
	}, []string{"kind"})
	cacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_query_cache_misses_total",
		Help: "Reads that required a fetch, by query kind.",
	}, []string{"kind"})
	cacheCoalesced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_query_cache_coalesced_total",
		Help: "Fetch requests joined to one already in flight, by query kind.",
	}, []string{"kind"})
	cacheDiscarded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_query_cache_discarded_total",
		Help: "Fetch completions discarded because they were superseded, by query kind.",
	}, []string{"kind"})
	cacheInvalidated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_query_cache_invalidated_total",
		Help: "Entries marked stale by invalidation, by query kind.",
	}, []string{"kind"})
	cacheEvicted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blog_query_cache_evicted_total",
		Help: "Entries removed by garbage collection.",
	})
	fetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "blog_query_fetch_duration_seconds",
		Help:    "Duration of fetches started by the query cache.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind", "outcome"})

	mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_mutations_total",
		Help: "Blog and comment mutations, by operation and outcome.",
	}, []string{"operation", "outcome"})

	snapshotOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_snapshot_store_operations_total",
		Help: "Redis snapshot mirror operations, by operation and result.",
	}, []string{"operation", "result"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_api_http_requests_total",
		Help: "Requests served by the blog API, by method, route and status.",
	}, []string{"method", "route", "status"})
	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "blog_api_http_request_duration_seconds",
		Help:    "Latency of requests served by the blog API.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

func IncCacheHit(kind string)         { cacheHits.WithLabelValues(kind).Inc() }
func IncCacheMiss(kind string)        { cacheMisses.WithLabelValues(kind).Inc() }
func IncCacheCoalesced(kind string)   { cacheCoalesced.WithLabelValues(kind).Inc() }
func IncCacheDiscarded(kind string)   { cacheDiscarded.WithLabelValues(kind).Inc() }
func IncCacheInvalidated(kind string) { cacheInvalidated.WithLabelValues(kind).Inc() }
func AddCacheEvicted(n int)           { cacheEvicted.Add(float64(n)) }

// ObserveFetch records how long a fetch took and whether it succeeded.
func ObserveFetch(kind string, seconds float64, err error) {
	fetchDuration.WithLabelValues(kind, outcome(err)).Observe(seconds)
}

// IncMutation counts a mutation by its outcome.
func IncMutation(operation string, err error) {
	mutations.WithLabelValues(operation, outcome(err)).Inc()
}

func IncSnapshotOp(operation, result string) {
	snapshotOps.WithLabelValues(operation, result).Inc()
}

// ObserveHTTPRequest records one request served by the API router.
func ObserveHTTPRequest(method, route, status string, seconds float64) {
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(seconds)
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
