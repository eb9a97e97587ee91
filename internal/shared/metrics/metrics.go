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
	candidatesScoredTotal atomic.Uint64
	scoreOverridesTotal   atomic.Uint64
	stageChangesTotal     atomic.Uint64
	batchScoreRunsTotal   atomic.Uint64

	batchScoredSize = newHistogram([]float64{1, 5, 10, 25, 50, 100, 250, 500, 1000})
)

// IncCandidateScored increments the auto-scored counter.
func IncCandidateScored() {
	candidatesScoredTotal.Add(1)
}

// IncScoreOverride increments the manual-override counter.
func IncScoreOverride() {
	scoreOverridesTotal.Add(1)
}

// IncStageChange increments the stage-change counter.
func IncStageChange() {
	stageChangesTotal.Add(1)
}

// IncBatchScoreRun increments the batch-run counter.
func IncBatchScoreRun() {
	batchScoreRunsTotal.Add(1)
}

// ObserveBatchScored records how many candidates a batch run scored.
func ObserveBatchScored(scored int) {
	if scored < 0 {
		scored = 0
	}
	batchScoredSize.Observe(float64(scored))
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
	writeCounter(&buf, "candidates_scored_total", "Total candidates auto-scored", candidatesScoredTotal.Load())
	writeCounter(&buf, "score_overrides_total", "Total manual score overrides", scoreOverridesTotal.Load())
	writeCounter(&buf, "stage_changes_total", "Total pipeline stage changes", stageChangesTotal.Load())
	writeCounter(&buf, "batch_score_runs_total", "Total batch scoring runs", batchScoreRunsTotal.Load())
	writeHistogram(&buf, "batch_scored_size", "Candidates scored per batch run", batchScoredSize.Snapshot())
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

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
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
