// Package samplelog defines the on-disk text format for process samples:
// one sample per line, pipe-and-space delimited "Label: value" fields,
// written through a size-bounded rotating writer and read back by a
// tolerant line parser.
package samplelog

import (
	"fmt"
	"time"

	"github.com/ja7ad/sauron/pkg/system/proc"
)

const (
	fieldSep = " | "
	labelSep = ": "

	// minFields is the legacy field count; both the full and the legacy
	// layouts satisfy it.
	minFields = 7
)

// Field labels, fixed by the wire format.
const (
	labelPID     = "PID"
	labelName    = "Name"
	labelState   = "State"
	labelThreads = "Threads"
	labelRSS     = "RSS (MB)"
	labelVSZ     = "VSZ (MB)"
	labelPSS     = "PSS (MB)"
	labelCPU     = "CPU (%)"
	labelUptime  = "Uptime (sec)"
	labelChecked = "Last Checked"
)

// Format serializes a sample as one log line (without trailing newline).
// Memory figures are converted from KB to MB (÷1024) here and nowhere
// else; timestamps are RFC3339 with nanosecond precision.
//
// legacy selects the minimal field set (no PID/VSZ/PSS) kept for
// compatibility with logs produced by older deployments.
func Format(s proc.Sample, legacy bool) string {
	if legacy {
		return fmt.Sprintf(
			"Name: %s | State: %s | Threads: %d | RSS (MB): %.2f | CPU (%%): %.2f | Uptime (sec): %.2f | Last Checked: %s",
			s.Name, s.State, s.Threads, s.RSS.MB(), s.CPUPercent, s.UptimeSec,
			s.CheckedAt.Format(time.RFC3339Nano),
		)
	}
	return fmt.Sprintf(
		"PID: %d | Name: %s | State: %s | Threads: %d | RSS (MB): %.2f | VSZ (MB): %.2f | PSS (MB): %.2f | CPU (%%): %.2f | Uptime (sec): %.2f | Last Checked: %s",
		s.PID, s.Name, s.State, s.Threads, s.RSS.MB(), s.VSZ.MB(), s.PSS.MB(),
		s.CPUPercent, s.UptimeSec, s.CheckedAt.Format(time.RFC3339Nano),
	)
}
