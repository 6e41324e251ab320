//go:build linux

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"github.com/ja7ad/sauron/pkg/config"
	"github.com/ja7ad/sauron/pkg/daemon"
	"github.com/ja7ad/sauron/pkg/samplelog"
	"github.com/ja7ad/sauron/pkg/system/proc"
)

const defaultConfigPath = "/etc/sauron/config.yaml"

func main() {
	var cfgPath string

	root := &cobra.Command{
		Use:   "sauron",
		Short: "Always-on process telemetry daemon",
		Long: `Sauron watches a configured set of named processes through the proc
pseudo-filesystem, derives CPU%, memory footprint and uptime per tick,
and appends every sample to a size-bounded rotating text log.

A missing config file is written with defaults on first start. Replay
the logs with sauronlens for per-process aggregate statistics.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfgPath)
		},
	}
	root.Flags().StringVarP(&cfgPath, "config", "c", defaultConfigPath, "path to the YAML config file")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("sauron exited")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	configureLogging(cfg.LogLevel)

	writer, err := samplelog.NewWriter(cfg.LogPath, cfg.MaxLogSize, cfg.MaxLogFiles)
	if err != nil {
		return fmt.Errorf("open sample log: %w", err)
	}
	defer writer.Close()

	reader := proc.NewReader(proc.DefaultRoot, moduleLogger("proc"))
	d := daemon.New(cfg, reader, writer, moduleLogger("daemon"))

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.ListenAddress != "" {
		srv := &http.Server{Addr: cfg.ListenAddress, Handler: d.Handler()}
		go func() {
			log.Info().Str("addr", cfg.ListenAddress).Msg("status endpoint listening")
			if serr := srv.ListenAndServe(); serr != nil && serr != http.ErrServerClosed {
				log.Error().Err(serr).Msg("status endpoint failed")
			}
		}()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	log.Info().
		Str("config", cfgPath).
		Float64("interval_sec", cfg.CheckInterval).
		Strs("processes", cfg.Processes).
		Str("log_path", cfg.LogPath).
		Msg("sauron started")

	return d.Run(ctx)
}
