// metrics — счётчики агрегационного ядра шлюза.
// Регистрируются в дефолтном реестре; отдаются promhttp в main.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OutboundCalls — исходящие вызовы по бэкендам и исходам.
	OutboundCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gateway",
		Name:      "outbound_calls_total",
		Help:      "Outbound upstream calls by backend and outcome.",
	}, []string{"backend", "outcome"})

	// MergeApplied — интеракционные записи, нашедшие свой пост.
	MergeApplied = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gateway",
		Name:      "merge_applied_total",
		Help:      "Interaction records merged into a matching post.",
	})

	// MergeOrphaned — записи без парного поста, отброшенные merge-joinом.
	MergeOrphaned = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gateway",
		Name:      "merge_orphaned_total",
		Help:      "Interaction records dropped for lack of a matching post.",
	})

	// FanoutSize — размеры волн по-элементного обогащения.
	FanoutSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gateway",
		Name:      "fanout_size",
		Help:      "Per-item enrichment wave sizes.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100},
	})

	// PageTruncated — страницы, обрезанные до потолка размера волны.
	PageTruncated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gateway",
		Name:      "page_truncated_total",
		Help:      "Pages clipped to the enrichment wave size cap.",
	})

	// CacheHits — попадания в кеш интеракционных записей.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gateway",
		Name:      "stats_cache_total",
		Help:      "Interaction stats cache lookups by outcome (hit/miss/error).",
	}, []string{"outcome"})
)
