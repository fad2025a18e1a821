package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// CompletionLatency records wall-clock latency of completion calls by provider and outcome.
	CompletionLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mentor_completion_latency_seconds",
		Help:    "Latency of chat-completion calls.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
	}, []string{"provider", "outcome"})

	CompletionTokens = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mentor_completion_tokens_total",
		Help: "Tokens reported by the completion endpoint.",
	}, []string{"provider"})

	// ContextSliceFailures counts context slices that failed and were treated as empty.
	ContextSliceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mentor_context_slice_failures_total",
		Help: "Context slices degraded to empty because their query failed.",
	}, []string{"slice"})

	MemoriesCaptured = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mentor_memories_captured_total",
		Help: "Conversation memories persisted by the extractor.",
	}, []string{"memory_type"})

	MemoryFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mentor_memory_write_failures_total",
		Help: "Memory writes that failed and were dropped.",
	})

	MemoryQueueDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mentor_memory_queue_dropped_total",
		Help: "Exchanges dropped because the memory queue was full or closed.",
	})

	ChatTurns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mentor_chat_turns_total",
		Help: "Chat turns by outcome.",
	}, []string{"outcome"})

	RoadmapFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mentor_roadmap_fallbacks_total",
		Help: "Roadmaps served from the static fallback, by reason.",
	}, []string{"reason"})

	// StoreLatency is observed by the record store wrapper for every operation.
	StoreLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mentor_store_latency_seconds",
		Help:    "Latency of record store operations.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
)

// ObserveStore records the latency of a store operation started at start.
func ObserveStore(op string, start time.Time) {
	StoreLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func Handler() http.Handler {
	return promhttp.Handler()
}
