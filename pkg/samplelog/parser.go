package samplelog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrShortLine indicates a line with fewer than the minimum field count,
	// typically a partial trailing line from an interrupted write.
	ErrShortLine = errors.New("samplelog: too few fields")

	// ErrBadEntry indicates a line whose required fields are missing or
	// fail to parse.
	ErrBadEntry = errors.New("samplelog: malformed entry")
)

// Entry is the subset of a serialized sample that replay consumes.
type Entry struct {
	Name       string
	State      string
	RSSMB      float64
	CPUPercent float64
	CheckedAt  time.Time
}

// ParseEntry parses one log line. Fields are located by label rather
// than position so both the full and the legacy layouts round-trip.
// Callers are expected to skip lines that return an error; replay must
// tolerate torn writes without aborting.
func ParseEntry(line string) (*Entry, error) {
	parts := strings.Split(line, fieldSep)
	if len(parts) < minFields {
		return nil, ErrShortLine
	}

	kv := make(map[string]string, len(parts))
	for _, p := range parts {
		if label, value, ok := strings.Cut(p, labelSep); ok {
			kv[label] = value
		}
	}

	name := kv[labelName]
	if name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrBadEntry)
	}

	rss, err := strconv.ParseFloat(kv[labelRSS], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: rss: %v", ErrBadEntry, err)
	}
	cpu, err := strconv.ParseFloat(kv[labelCPU], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: cpu: %v", ErrBadEntry, err)
	}
	ts, err := time.Parse(time.RFC3339Nano, kv[labelChecked])
	if err != nil {
		return nil, fmt.Errorf("%w: timestamp: %v", ErrBadEntry, err)
	}

	return &Entry{
		Name:       name,
		State:      kv[labelState],
		RSSMB:      rss,
		CPUPercent: cpu,
		CheckedAt:  ts,
	}, nil
}
