// Package aggregate replays serialized process samples into per-process
// running statistics. It is a one-shot, single-goroutine batch consumer
// holding O(distinct process names) memory.
package aggregate

import (
	"bufio"
	"io"
	"time"

	"github.com/ja7ad/sauron/pkg/samplelog"
)

// Stat keeps the running statistics for one process name. Averages are
// never computed mid-stream; only the totals are carried and divided at
// report time.
type Stat struct {
	Count int
	State string

	TotalCPU float64
	TotalRSS float64

	MinCPU   float64
	MaxCPU   float64
	MaxCPUAt time.Time

	MinRSS   float64
	MaxRSS   float64
	MaxRSSAt time.Time

	LatestCPU float64
	LatestRSS float64
	LatestAt  time.Time
}

// AvgCPU returns the mean CPU% over all consumed entries.
func (s *Stat) AvgCPU() float64 { return s.TotalCPU / float64(s.Count) }

// AvgRSS returns the mean RSS in MB over all consumed entries.
func (s *Stat) AvgRSS() float64 { return s.TotalRSS / float64(s.Count) }

// Aggregator folds parsed log entries, arriving in arbitrary order,
// into per-name Stats.
type Aggregator struct {
	stats map[string]*Stat
}

func New() *Aggregator {
	return &Aggregator{stats: make(map[string]*Stat)}
}

// Consume folds one entry into the statistics for its process name.
//
// Extremes update only on strictly new values, so on a tie the
// first-seen timestamp sticks. Latest follows the entry timestamp, not
// arrival order: it moves only when the entry's timestamp is strictly
// after the stored one (the very first entry for a name seeds it).
func (a *Aggregator) Consume(e *samplelog.Entry) {
	s, ok := a.stats[e.Name]
	if !ok {
		s = &Stat{
			State:     e.State,
			MinCPU:    e.CPUPercent,
			MaxCPU:    e.CPUPercent,
			MaxCPUAt:  e.CheckedAt,
			MinRSS:    e.RSSMB,
			MaxRSS:    e.RSSMB,
			MaxRSSAt:  e.CheckedAt,
			LatestCPU: e.CPUPercent,
			LatestRSS: e.RSSMB,
			LatestAt:  e.CheckedAt,
		}
		a.stats[e.Name] = s
	} else {
		if e.CPUPercent < s.MinCPU {
			s.MinCPU = e.CPUPercent
		}
		if e.CPUPercent > s.MaxCPU {
			s.MaxCPU = e.CPUPercent
			s.MaxCPUAt = e.CheckedAt
		}
		if e.RSSMB < s.MinRSS {
			s.MinRSS = e.RSSMB
		}
		if e.RSSMB > s.MaxRSS {
			s.MaxRSS = e.RSSMB
			s.MaxRSSAt = e.CheckedAt
		}
		if e.CheckedAt.After(s.LatestAt) {
			s.LatestCPU = e.CPUPercent
			s.LatestRSS = e.RSSMB
			s.LatestAt = e.CheckedAt
			s.State = e.State
		}
	}

	s.TotalCPU += e.CPUPercent
	s.TotalRSS += e.RSSMB
	s.Count++
}

// Run scans log text line by line, skipping anything the parser
// rejects. Interrupted daemon writes leave partial trailing lines;
// replay tolerates them without aborting.
func (a *Aggregator) Run(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		e, err := samplelog.ParseEntry(sc.Text())
		if err != nil {
			continue
		}
		a.Consume(e)
	}
	return sc.Err()
}

// Stat returns the statistics accumulated for a process name.
func (a *Aggregator) Stat(name string) (Stat, bool) {
	s, ok := a.stats[name]
	if !ok {
		return Stat{}, false
	}
	return *s, true
}

// Len returns the number of distinct process names seen.
func (a *Aggregator) Len() int { return len(a.stats) }
