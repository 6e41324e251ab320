package daemon

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Self-observability counters, exposed on the status server's /metrics.
// These describe the daemon itself; the process samples stay on disk.
var (
	ticksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sauron_ticks_total",
		Help: "Completed sampling loop iterations.",
	})
	samplesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sauron_samples_total",
		Help: "Process samples appended to the rotating log.",
	})
	deadSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sauron_dead_samples_skipped_total",
		Help: "Dead samples omitted because log_dead_samples is disabled.",
	})
	rotationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sauron_log_rotations_total",
		Help: "Rotations performed by the sample log writer.",
	})
)
