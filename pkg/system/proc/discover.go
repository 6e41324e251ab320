package proc

import (
	"os"
	"sort"
	"strconv"
)

// FindPIDs enumerates every live PID under the procfs root whose comm
// equals name exactly. Zero matches is a normal outcome, not an error.
//
// Cost is O(total live processes) per call, so a tick over P patterns
// is O(P × processes). Fine at the tens-of-processes scale this daemon
// targets; revisit before pointing it at a busy server.
func (r *Reader) FindPIDs(name string) []int {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		return nil
	}

	var pids []int
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(e.Name())
		if err != nil || pid <= 0 {
			continue
		}
		st, err := r.readStat(pid)
		if err != nil {
			// raced with process exit between ReadDir and the read
			continue
		}
		if st.comm == name {
			pids = append(pids, pid)
		}
	}
	sort.Ints(pids)
	return pids
}
