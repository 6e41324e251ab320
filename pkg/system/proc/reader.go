package proc

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/phuslu/log"

	"github.com/ja7ad/sauron/pkg/system/util"
	"github.com/ja7ad/sauron/pkg/types"
)

// DefaultRoot is the standard mount point of the proc pseudo-filesystem.
const DefaultRoot = "/proc"

// Reader derives per-process samples from a proc pseudo-filesystem
// rooted at an arbitrary directory. The root is injectable so tests can
// run against a fabricated tree.
//
// The contract of Collect is that it never fails outright: a vanished
// process or an unreadable kernel file degrades the affected fields to
// their zero values (or the whole sample to Dead), and the caller's
// tick continues.
type Reader struct {
	root string
	clk  int
	log  log.Logger
	now  func() time.Time
}

// NewReader returns a Reader over the given procfs root ("" means
// DefaultRoot).
func NewReader(root string, logger log.Logger) *Reader {
	if root == "" {
		root = DefaultRoot
	}
	return &Reader{
		root: root,
		clk:  ClockTicks(),
		log:  logger,
		now:  time.Now,
	}
}

func (r *Reader) pidPath(pid int, file string) string {
	return filepath.Join(r.root, strconv.Itoa(pid), file)
}

// Exists reports whether a given PID currently has a directory under
// the procfs root.
func (r *Reader) Exists(pid int) bool {
	_, err := os.Stat(filepath.Join(r.root, strconv.Itoa(pid)))
	return err == nil
}

// Collect builds a Sample for one PID. Any single missing or unreadable
// kernel file degrades the affected field to its default; an unreadable
// stat file degrades the whole sample to Dead with zeroed metrics.
func (r *Reader) Collect(pid int) Sample {
	now := r.now()

	st, err := r.readStat(pid)
	if err != nil {
		return DeadSample(pid, "", now)
	}

	s := Sample{
		PID:       pid,
		Name:      st.comm,
		State:     StateFromChar(st.state),
		CheckedAt: now,
	}

	sysUp, approx := r.Uptime()
	if approx {
		// Wall-clock fallback: keeps the sample usable but skews the
		// process uptime and therefore CPU%.
		r.log.Warn().Int("pid", pid).Msg("uptime file unreadable, using wall clock epoch; cpu% is approximate")
	}

	procUp := sysUp - float64(st.startTicks)/float64(r.clk)
	if procUp < 0 {
		procUp = 0
	}
	s.UptimeSec = util.Round2(procUp)

	// CPU% is total CPU seconds over process lifetime; 0 when the
	// process just started (uptime 0) to avoid a divide by zero.
	cpuSec := float64(st.utime+st.stime) / float64(r.clk)
	s.CPUPercent = util.Round2(util.SafeDiv(cpuSec, procUp) * 100)

	s.Threads, s.RSS, s.VSZ = r.readStatus(pid)
	s.PSS = r.readPSS(pid)

	return s
}

// Uptime returns the system uptime in seconds from the procfs uptime
// file. When the file is unreadable it falls back to wall-clock epoch
// seconds and reports the approximation via the second return value.
func (r *Reader) Uptime() (float64, bool) {
	b, err := os.ReadFile(filepath.Join(r.root, "uptime"))
	if err == nil {
		fs := strings.Fields(string(b))
		if len(fs) > 0 {
			if v, perr := strconv.ParseFloat(fs[0], 64); perr == nil {
				return v, false
			}
		}
	}
	return float64(r.now().Unix()), true
}

// statFields are the positional fields Collect needs from the per-PID
// stat file.
type statFields struct {
	comm       string
	state      byte
	utime      uint64
	stime      uint64
	startTicks uint64
}

// readStat parses the single-line stat file. The comm field sits inside
// the first '(' and the *last* ')' so names containing parentheses or
// spaces survive. After the closing paren the fields are positional:
// state at 0, utime at 11, stime at 12, starttime at 19.
func (r *Reader) readStat(pid int) (statFields, error) {
	b, err := os.ReadFile(r.pidPath(pid, "stat"))
	if err != nil {
		return statFields{}, err
	}
	line := strings.TrimSpace(string(b))

	open := strings.Index(line, "(")
	end := strings.LastIndex(line, ")")
	if open < 0 || end < open {
		return statFields{}, ErrNoStat
	}

	st := statFields{comm: line[open+1 : end]}

	fields := strings.Fields(line[end+1:])
	if len(fields) < 20 {
		return statFields{}, ErrShortStat
	}
	st.state = fields[0][0]
	st.utime, _ = strconv.ParseUint(fields[11], 10, 64)
	st.stime, _ = strconv.ParseUint(fields[12], 10, 64)
	st.startTicks, _ = strconv.ParseUint(fields[19], 10, 64)
	return st, nil
}

// readStatus scans the per-PID status file for the Threads/VmRSS/VmSize
// lines and parses the first numeric token after each prefix. A missing
// file or key leaves the field at zero rather than failing the sample.
func (r *Reader) readStatus(pid int) (threads int, rss, vsz types.KiloBytes) {
	f, err := os.Open(r.pidPath(pid, "status"))
	if err != nil {
		return 0, 0, 0
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "Threads:"):
			threads = int(firstUint(line, "Threads:"))
		case strings.HasPrefix(line, "VmRSS:"):
			rss = types.KiloBytes(firstUint(line, "VmRSS:"))
		case strings.HasPrefix(line, "VmSize:"):
			vsz = types.KiloBytes(firstUint(line, "VmSize:"))
		}
	}
	return threads, rss, vsz
}

// readPSS prefers the aggregate Pss line of smaps_rollup (kernel 4.14+,
// O(1)). When the rollup is unavailable it falls back to summing every
// Pss line across the full smaps file, which is O(number of mappings).
func (r *Reader) readPSS(pid int) types.KiloBytes {
	if f, err := os.Open(r.pidPath(pid, "smaps_rollup")); err == nil {
		defer f.Close()
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			if strings.HasPrefix(sc.Text(), "Pss:") {
				return types.KiloBytes(firstUint(sc.Text(), "Pss:"))
			}
		}
		return 0
	}

	f, err := os.Open(r.pidPath(pid, "smaps"))
	if err != nil {
		return 0
	}
	defer f.Close()

	var sum uint64
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if strings.HasPrefix(sc.Text(), "Pss:") {
			sum += firstUint(sc.Text(), "Pss:")
		}
	}
	return types.KiloBytes(sum)
}

// firstUint parses the first numeric token after a line prefix, e.g.
// "VmRSS:    1234 kB" → 1234. Unparsable input yields 0.
func firstUint(line, prefix string) uint64 {
	fs := strings.Fields(strings.TrimPrefix(line, prefix))
	if len(fs) == 0 {
		return 0
	}
	v, _ := strconv.ParseUint(fs[0], 10, 64)
	return v
}
