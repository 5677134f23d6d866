package analyzer

import (
	"fmt"
	"sync/atomic"

	"github.com/penwyp/go-nfc-checklist/internal/util"
)

// RunStats accumulates counts over every run of an Analyzer. Watch mode
// reuses one Analyzer, so the totals span all reruns.
type RunStats struct {
	runs         int64
	detections   int64
	assigned     int64
	buckets      int64
	hours        int64
	exportedRows int64
}

// NewRunStats creates a new RunStats instance
func NewRunStats() *RunStats {
	return &RunStats{}
}

// Record adds the counts of one completed run.
func (rs *RunStats) Record(detections, assigned, buckets, hours int) {
	atomic.AddInt64(&rs.runs, 1)
	atomic.AddInt64(&rs.detections, int64(detections))
	atomic.AddInt64(&rs.assigned, int64(assigned))
	atomic.AddInt64(&rs.buckets, int64(buckets))
	atomic.AddInt64(&rs.hours, int64(hours))
}

// RecordExport adds exported rows.
func (rs *RunStats) RecordExport(rows int) {
	atomic.AddInt64(&rs.exportedRows, int64(rows))
}

// GetStats returns the totals so far.
func (rs *RunStats) GetStats() (runs, detections, assigned, buckets, hours, exportedRows int64) {
	return atomic.LoadInt64(&rs.runs),
		atomic.LoadInt64(&rs.detections),
		atomic.LoadInt64(&rs.assigned),
		atomic.LoadInt64(&rs.buckets),
		atomic.LoadInt64(&rs.hours),
		atomic.LoadInt64(&rs.exportedRows)
}

// Filtered is the number of detections left out by the time filter.
func (rs *RunStats) Filtered() int64 {
	return atomic.LoadInt64(&rs.detections) - atomic.LoadInt64(&rs.assigned)
}

// PrintFinalStats logs the totals.
func (rs *RunStats) PrintFinalStats() {
	runs, detections, assigned, buckets, hours, exported := rs.GetStats()
	util.LogInfo(fmt.Sprintf("Run statistics: %d runs, %d detections (%d assigned, %d filtered), %d buckets, %d reported hours, %d exported rows",
		runs, detections, assigned, rs.Filtered(), buckets, hours, exported))
}
