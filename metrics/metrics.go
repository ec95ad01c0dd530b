package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	stageLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rag_stage_latency_ms",
		Help:    "Latency of pipeline stages in milliseconds",
		Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2000, 5000, 10000},
	}, []string{"stage"})

	llmCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rag_llm_calls_total",
		Help: "LLM calls issued, by purpose",
	}, []string{"purpose"})

	retrievedResults = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "rag_retrieved_results",
		Help:    "Number of matches returned per vector query",
		Buckets: []float64{0, 1, 2, 3, 5, 10},
	})

	insufficientContext = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rag_insufficient_context_total",
		Help: "Requests short-circuited for insufficient context",
	})

	translationFallback = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rag_translation_fallback_total",
		Help: "Translations where the labeled output line could not be parsed",
	})

	pipelineErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rag_pipeline_errors_total",
		Help: "Pipeline errors by kind",
	}, []string{"kind"})

	detectedScript = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rag_detected_script_total",
		Help: "Query script classification outcomes",
	}, []string{"script"})
)

func ensureRegistered() {
	once.Do(func() {
		prometheus.MustRegister(stageLatency, llmCalls, retrievedResults,
			insufficientContext, translationFallback, pipelineErrors, detectedScript)
	})
}

// ObserveStage records the latency of one pipeline stage.
func ObserveStage(stage string, start time.Time) {
	ensureRegistered()
	stageLatency.WithLabelValues(stage).Observe(float64(time.Since(start).Milliseconds()))
}

// IncLLMCall counts one LLM invocation ("translation" or "generation").
func IncLLMCall(purpose string) {
	ensureRegistered()
	llmCalls.WithLabelValues(purpose).Inc()
}

// ObserveRetrieved records the match count of one vector query.
func ObserveRetrieved(n int) {
	ensureRegistered()
	retrievedResults.Observe(float64(n))
}

// IncInsufficientContext counts a short-circuited request.
func IncInsufficientContext() {
	ensureRegistered()
	insufficientContext.Inc()
}

// IncTranslationFallback counts a whole-output translation fallback.
func IncTranslationFallback() {
	ensureRegistered()
	translationFallback.Inc()
}

// IncError counts a pipeline error ("embedding", "retrieval", "generation", "internal").
func IncError(kind string) {
	ensureRegistered()
	pipelineErrors.WithLabelValues(kind).Inc()
}

// IncScript counts one script classification outcome.
func IncScript(script string) {
	ensureRegistered()
	detectedScript.WithLabelValues(script).Inc()
}
