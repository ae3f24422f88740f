package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	extractionDirectTotal atomic.Uint64
	extractionVisionTotal atomic.Uint64
	extractionFailedTotal atomic.Uint64

	parseHybridTotal atomic.Uint64
	parseLocalTotal  atomic.Uint64
	parseLLMTotal    atomic.Uint64

	atsAnalysesTotal atomic.Uint64
	atsFailedTotal   atomic.Uint64

	generationsTotal       atomic.Uint64
	generationsFailedTotal atomic.Uint64

	providerCallsTotal    atomic.Uint64
	providerFailuresTotal atomic.Uint64

	providerCallDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncExtraction increments the extraction counter for the given method
// ("direct" or "vision").
func IncExtraction(method string) {
	switch method {
	case "vision":
		extractionVisionTotal.Add(1)
	default:
		extractionDirectTotal.Add(1)
	}
}

// IncExtractionFailed increments the failed-extraction counter.
func IncExtractionFailed() {
	extractionFailedTotal.Add(1)
}

// IncParse increments the parse counter for the given parsing source
// ("hybrid", "local" or "llm").
func IncParse(source string) {
	switch source {
	case "hybrid":
		parseHybridTotal.Add(1)
	case "llm":
		parseLLMTotal.Add(1)
	default:
		parseLocalTotal.Add(1)
	}
}

// IncATSAnalysis increments the completed ATS analysis counter.
func IncATSAnalysis() {
	atsAnalysesTotal.Add(1)
}

// IncATSFailed increments the failed ATS analysis counter.
func IncATSFailed() {
	atsFailedTotal.Add(1)
}

// IncGeneration increments the completed resume generation counter.
func IncGeneration() {
	generationsTotal.Add(1)
}

// IncGenerationFailed increments the failed resume generation counter.
func IncGenerationFailed() {
	generationsFailedTotal.Add(1)
}

// IncProviderCall increments the LLM provider call counter.
func IncProviderCall() {
	providerCallsTotal.Add(1)
}

// IncProviderFailure increments the LLM provider failure counter.
func IncProviderFailure() {
	providerFailuresTotal.Add(1)
}

// ObserveProviderCallMs records an LLM provider call duration in milliseconds.
func ObserveProviderCallMs(value float64) {
	if value < 0 {
		value = 0
	}
	providerCallDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeLabeledCounter(&buf, "extractions_total", "Total text extractions by method", []labeledValue{
		{`method="direct"`, extractionDirectTotal.Load()},
		{`method="vision"`, extractionVisionTotal.Load()},
	})
	writeCounter(&buf, "extractions_failed_total", "Total failed text extractions", extractionFailedTotal.Load())
	writeLabeledCounter(&buf, "parse_requests_total", "Total resume parses by source", []labeledValue{
		{`source="hybrid"`, parseHybridTotal.Load()},
		{`source="local"`, parseLocalTotal.Load()},
		{`source="llm"`, parseLLMTotal.Load()},
	})
	writeCounter(&buf, "ats_analyses_total", "Total ATS analyses completed", atsAnalysesTotal.Load())
	writeCounter(&buf, "ats_analyses_failed_total", "Total ATS analyses failed", atsFailedTotal.Load())
	writeCounter(&buf, "generations_total", "Total resume generations completed", generationsTotal.Load())
	writeCounter(&buf, "generations_failed_total", "Total resume generations failed", generationsFailedTotal.Load())
	writeCounter(&buf, "provider_calls_total", "Total LLM provider calls", providerCallsTotal.Load())
	writeCounter(&buf, "provider_failures_total", "Total LLM provider call failures", providerFailuresTotal.Load())
	writeHistogram(&buf, "provider_call_duration_ms", "LLM provider call duration in milliseconds", providerCallDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

type labeledValue struct {
	labels string
	value  uint64
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeLabeledCounter(buf *bytes.Buffer, name, help string, values []labeledValue) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	for _, v := range values {
		fmt.Fprintf(buf, "%s{%s} %d\n", name, v.labels, v.value)
	}
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
