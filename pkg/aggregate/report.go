package aggregate

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
)

// atLayout is the display format for "(At: ...)" annotations.
const atLayout = "2006-01-02 15:04:05"

// Report writes the formatted per-process statistics. Names are sorted
// so repeated runs over the same logs diff cleanly.
func (a *Aggregator) Report(w io.Writer) {
	names := make([]string, 0, len(a.stats))
	for name := range a.stats {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, name := range names {
		s := a.stats[name]
		latestAt := s.LatestAt.Format(atLayout)

		// Fixed-width value strings for lines that carry a parenthetical
		// timestamp, so the At columns line up.
		maxCPUVal := fmt.Sprintf("%-10s", fmt.Sprintf("%.2f%%", s.MaxCPU))
		latestCPUVal := fmt.Sprintf("%-10s", fmt.Sprintf("%.2f%%", s.LatestCPU))
		maxRSSVal := fmt.Sprintf("%-10s", fmt.Sprintf("%.2f MB", s.MaxRSS))
		latestRSSVal := fmt.Sprintf("%-10s", fmt.Sprintf("%.2f MB", s.LatestRSS))

		fmt.Fprintf(tw, "Process %s:\n", name)
		fmt.Fprintf(tw, "  %-22s\t%s\n", "State:", s.State)
		fmt.Fprintf(tw, "  %-22s\t%d\n", "Samples:", s.Count)
		fmt.Fprintf(tw, "  %-22s\t%.2f%%\n", "Avg CPU Usage:", s.AvgCPU())
		fmt.Fprintf(tw, "  %-22s\t%.2f%%\n", "Min CPU Usage:", s.MinCPU)
		fmt.Fprintf(tw, "  %-22s\t%s (At: %s)\n", "Max CPU Usage:", maxCPUVal, s.MaxCPUAt.Format(atLayout))
		fmt.Fprintf(tw, "  %-22s\t%s (At: %s)\n", "Latest CPU Usage:", latestCPUVal, latestAt)
		fmt.Fprintf(tw, "  %-22s\t%.2f MB\n", "Avg Memory Usage:", s.AvgRSS())
		fmt.Fprintf(tw, "  %-22s\t%.2f MB\n", "Min Memory Usage:", s.MinRSS)
		fmt.Fprintf(tw, "  %-22s\t%s (At: %s)\n", "Max Memory Usage:", maxRSSVal, s.MaxRSSAt.Format(atLayout))
		fmt.Fprintf(tw, "  %-22s\t%s (At: %s)\n", "Latest Memory Usage:", latestRSSVal, latestAt)
		fmt.Fprintln(tw)
	}
	tw.Flush()
}
