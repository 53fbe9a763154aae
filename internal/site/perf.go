package site

import (
	"log/slog"
	"time"
)

// PerformanceEntry is one measured operation.
type PerformanceEntry struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"duration"`
}

// ObservePerformance logs a warning for entries slower than the threshold.
// It is diagnostic only and reports whether the entry was slow.
func (v *View) ObservePerformance(entry PerformanceEntry) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.observePerformance(entry)
}

func (v *View) observePerformance(entry PerformanceEntry) bool {
	if !v.perf {
		return false
	}
	return WarnIfSlow(v.log, entry, v.timings.SlowThreshold)
}

// WarnIfSlow logs entries whose duration exceeds threshold.
func WarnIfSlow(log *slog.Logger, entry PerformanceEntry, threshold time.Duration) bool {
	if entry.Duration <= threshold {
		return false
	}
	log.Warn("slow operation detected", "name", entry.Name, "duration_ms", entry.Duration.Milliseconds())
	return true
}
