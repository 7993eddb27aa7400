package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var documentsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "documents_processed_total",
	Help: "Documents that completed the extraction pipeline, by classified type",
}, []string{"document_type"})

var resultCacheHits = promauto.NewCounter(prometheus.CounterOpts{
	Name: "result_cache_hits_total",
	Help: "Pipeline runs answered from the extraction result cache",
})

var extractionParseFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "extraction_parse_failures_total",
	Help: "Extraction replies that were not valid JSON and degraded to an empty field map",
})

type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func DocumentProcessed(documentType string) {
	documentsProcessed.WithLabelValues(documentType).Inc()
}

func ResultCacheHit() {
	resultCacheHits.Inc()
}

func ExtractionParseFailure() {
	extractionParseFailures.Inc()
}

var pipelineDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "pipeline_duration_seconds",
	Help:    "Total time spent in one document pipeline run.",
	Buckets: []float64{.1, .5, 1, 2, 5, 10, 30},
}, []string{"status"})

var dependencyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "dependency_latency_seconds",
	Help:    "Latency of external service calls.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10},
}, []string{"service"})

func CaptureExecutionMetrics(label string, timeElapsed time.Duration) {
	dependencyLatency.WithLabelValues(label).Observe(timeElapsed.Seconds())
}

func CapturePipelineMetrics(label string, timeElapsed time.Duration) {
	pipelineDuration.WithLabelValues(label).Observe(timeElapsed.Seconds())
}
