// Package daemon owns the sampling loop: per tick it resolves the
// configured process names to live PIDs, collects one sample per PID,
// appends each to the rotating log and refreshes the in-memory snapshot
// served by the status endpoint.
package daemon

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/phuslu/log"

	"github.com/ja7ad/sauron/pkg/config"
	"github.com/ja7ad/sauron/pkg/samplelog"
	"github.com/ja7ad/sauron/pkg/system/proc"
)

// Daemon is the explicit owner of the sampling state: the log handle is
// reachable only through the writer's Append, and the latest-sample
// snapshot only through Snapshot.
type Daemon struct {
	cfg    *config.Config
	reader *proc.Reader
	writer *samplelog.Writer
	log    log.Logger

	// mu guards latest only; it is never held across file or socket
	// I/O, so status readers cannot stall the sampling loop.
	mu     sync.RWMutex
	latest []proc.Sample

	seenRotations int64
}

func New(cfg *config.Config, reader *proc.Reader, writer *samplelog.Writer, logger log.Logger) *Daemon {
	return &Daemon{
		cfg:    cfg,
		reader: reader,
		writer: writer,
		log:    logger,
	}
}

// Run executes the sampling loop until ctx is cancelled or a log write
// fails (fatal: the rotation scheme depends on durable appends).
//
// Scheduling is fixed-rate and self-correcting: each sleep is the
// configured interval minus the tick's own processing time, floored at
// zero, so a slow tick triggers the next one immediately instead of
// accumulating drift.
func (d *Daemon) Run(ctx context.Context) error {
	for {
		start := time.Now()
		if err := d.Tick(); err != nil {
			return err
		}

		sleep := d.cfg.Interval() - time.Since(start)
		if sleep < 0 {
			sleep = 0
		}
		timer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			d.log.Info().Msg("sampling loop stopped")
			return nil
		case <-timer.C:
		}
	}
}

// Tick performs one discovery + sampling + append pass. Per-PID procfs
// failures degrade individual samples; only log I/O errors abort.
func (d *Daemon) Tick() error {
	latest := make([]proc.Sample, 0, len(d.cfg.Processes))

	for _, name := range d.cfg.Processes {
		pids := d.reader.FindPIDs(name)
		if len(pids) == 0 {
			// no live process matches this pattern right now; normal
			continue
		}
		for _, pid := range pids {
			s := d.reader.Collect(pid)
			if s.Name == "" {
				s.Name = name
			}
			if s.State == proc.Dead && !d.cfg.LogDeadSamples {
				deadSkippedTotal.Inc()
				d.log.Debug().Int("pid", pid).Str("name", name).Msg("process vanished mid-tick, sample omitted")
				continue
			}

			if err := d.writer.Append(samplelog.Format(s, d.cfg.LegacyFields)); err != nil {
				return fmt.Errorf("append sample for %s[%d]: %w", s.Name, pid, err)
			}
			samplesTotal.Inc()
			latest = append(latest, s)
		}
	}

	d.mu.Lock()
	d.latest = latest
	d.mu.Unlock()

	if n := d.writer.Rotations(); n > d.seenRotations {
		rotationsTotal.Add(float64(n - d.seenRotations))
		d.seenRotations = n
	}
	ticksTotal.Inc()

	d.log.Debug().Int("samples", len(latest)).Msg("tick complete")
	return nil
}

// Snapshot returns a copy of the most recently computed sample per
// tracked PID. The lock covers only the copy.
func (d *Daemon) Snapshot() []proc.Sample {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.latest)
}
