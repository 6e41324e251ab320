package aggregate

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja7ad/sauron/pkg/samplelog"
)

func entry(name string, cpu, rss float64, at time.Time) *samplelog.Entry {
	return &samplelog.Entry{Name: name, State: "Sleeping", CPUPercent: cpu, RSSMB: rss, CheckedAt: at}
}

func logLine(name string, cpu, rss float64, at time.Time) string {
	return fmt.Sprintf(
		"PID: 1 | Name: %s | State: Sleeping | Threads: 2 | RSS (MB): %.2f | VSZ (MB): 0.00 | PSS (MB): 0.00 | CPU (%%): %.2f | Uptime (sec): 1.00 | Last Checked: %s",
		name, rss, cpu, at.Format(time.RFC3339Nano))
}

func TestAggregator_BasicStats(t *testing.T) {
	// httpd with CPU% [1.0, 5.0, 3.0] at t1<t2<t3:
	// avg=3.00, min=1.0, max=5.0 (at t2), latest=3.0 (at t3).
	t1 := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(10 * time.Second)
	t3 := t1.Add(20 * time.Second)

	a := New()
	a.Consume(entry("httpd", 1.0, 10, t1))
	a.Consume(entry("httpd", 5.0, 12, t2))
	a.Consume(entry("httpd", 3.0, 11, t3))

	s, ok := a.Stat("httpd")
	require.True(t, ok)
	assert.Equal(t, 3, s.Count)
	assert.InDelta(t, 3.00, s.AvgCPU(), 1e-9)
	assert.Equal(t, 1.0, s.MinCPU)
	assert.Equal(t, 5.0, s.MaxCPU)
	assert.True(t, s.MaxCPUAt.Equal(t2))
	assert.Equal(t, 3.0, s.LatestCPU)
	assert.True(t, s.LatestAt.Equal(t3))
}

func TestAggregator_OrderInsensitive(t *testing.T) {
	t0 := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	entries := []*samplelog.Entry{
		entry("httpd", 1.0, 10, t0),
		entry("httpd", 5.0, 12, t0.Add(10*time.Second)),
		entry("httpd", 3.0, 11, t0.Add(20*time.Second)),
	}

	perms := [][]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}

	var want Stat
	for i, p := range perms {
		a := New()
		for _, idx := range p {
			a.Consume(entries[idx])
		}
		got, ok := a.Stat("httpd")
		require.True(t, ok)
		if i == 0 {
			want = got
			continue
		}
		assert.Equal(t, want, got, "permutation %v must not change the statistics", p)
	}

	// Latest is defined by the true maximum timestamp, not arrival order.
	assert.Equal(t, 3.0, want.LatestCPU)
	assert.True(t, want.LatestAt.Equal(t0.Add(20*time.Second)))
}

func TestAggregator_MaxTieKeepsFirstTimestamp(t *testing.T) {
	t1 := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)

	a := New()
	a.Consume(entry("httpd", 5.0, 12, t1))
	a.Consume(entry("httpd", 5.0, 12, t2))

	s, _ := a.Stat("httpd")
	assert.True(t, s.MaxCPUAt.Equal(t1), "equal max must not move the At timestamp")
	assert.True(t, s.MaxRSSAt.Equal(t1))
}

func TestAggregator_FirstSampleSeedsLatest(t *testing.T) {
	t1 := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	a := New()
	a.Consume(entry("solo", 2.5, 8, t1))

	s, ok := a.Stat("solo")
	require.True(t, ok)
	assert.Equal(t, 1, s.Count)
	assert.Equal(t, 2.5, s.LatestCPU)
	assert.True(t, s.LatestAt.Equal(t1))
	assert.Equal(t, 2.5, s.MinCPU)
	assert.Equal(t, 2.5, s.MaxCPU)
}

func TestRun_MalformedLinesDoNotPerturbStats(t *testing.T) {
	t0 := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	valid := []string{
		logLine("httpd", 1.0, 10, t0),
		logLine("httpd", 5.0, 12, t0.Add(10*time.Second)),
		logLine("sshd", 0.5, 4, t0.Add(5*time.Second)),
		logLine("httpd", 3.0, 11, t0.Add(20*time.Second)),
	}
	malformed := []string{
		"",
		"PID: 9 | Name: torn",
		"PID: 9 | Name: h | State: S | Threads: 1 | RSS (MB): x | CPU (%): 1 | Last Checked: 2026-08-25T10:00:00Z",
		strings.Repeat("#", 200),
	}

	// Interleave malformed lines between every valid one.
	var mixed []string
	for i, v := range valid {
		mixed = append(mixed, malformed[i%len(malformed)], v)
	}
	mixed = append(mixed, malformed...)

	clean := New()
	require.NoError(t, clean.Run(strings.NewReader(strings.Join(valid, "\n"))))

	dirty := New()
	require.NoError(t, dirty.Run(strings.NewReader(strings.Join(mixed, "\n"))))

	require.Equal(t, clean.Len(), dirty.Len())
	for _, name := range []string{"httpd", "sshd"} {
		want, ok := clean.Stat(name)
		require.True(t, ok)
		got, ok := dirty.Stat(name)
		require.True(t, ok)
		assert.Equal(t, want, got, "stats for %s", name)
	}
}

func TestReport_EachNameExactlyOnceAndSorted(t *testing.T) {
	t0 := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	a := New()
	a.Consume(entry("zsh", 1.0, 5, t0))
	a.Consume(entry("httpd", 2.0, 10, t0))
	a.Consume(entry("httpd", 4.0, 20, t0.Add(time.Second)))

	var sb strings.Builder
	a.Report(&sb)
	out := sb.String()

	assert.Equal(t, 1, strings.Count(out, "Process httpd:"))
	assert.Equal(t, 1, strings.Count(out, "Process zsh:"))
	assert.Less(t, strings.Index(out, "Process httpd:"), strings.Index(out, "Process zsh:"))
	assert.Contains(t, out, "Avg CPU Usage:")
	assert.Contains(t, out, "3.00%") // (2+4)/2
	assert.Contains(t, out, "(At: 2026-08-25 10:00:01)")
}
