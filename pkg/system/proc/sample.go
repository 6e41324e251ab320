package proc

import (
	"time"

	"github.com/ja7ad/sauron/pkg/types"
)

// Sample is one per-tick reading of a single process. It is immutable
// after Collect returns and is not retained beyond serialization.
type Sample struct {
	PID        int             `json:"pid"`
	Name       string          `json:"name"`
	State      State           `json:"state"`
	Threads    int             `json:"threads"`
	RSS        types.KiloBytes `json:"rss_kb"`
	VSZ        types.KiloBytes `json:"vsz_kb"`
	PSS        types.KiloBytes `json:"pss_kb"`
	CPUPercent float64         `json:"cpu_pct"`
	UptimeSec  float64         `json:"uptime_sec"`
	CheckedAt  time.Time       `json:"last_checked"`
}

// DeadSample is the degraded, all-zero sample produced when a process
// vanished (or its stat file could not be parsed) during collection.
func DeadSample(pid int, name string, at time.Time) Sample {
	return Sample{
		PID:       pid,
		Name:      name,
		State:     Dead,
		CheckedAt: at,
	}
}
