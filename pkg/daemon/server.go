package daemon

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ja7ad/sauron/pkg/system/proc"
)

// Handler serves the status surface:
//
//	GET /         → JSON array of the latest sample per tracked PID
//	GET /metrics  → Prometheus self-metrics
func (d *Daemon) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", d.handleSnapshot)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (d *Daemon) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Copy under RLock, marshal outside it.
	snap := d.Snapshot()
	if snap == nil {
		snap = []proc.Sample{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		d.log.Warn().Err(err).Msg("write status response")
	}
}
