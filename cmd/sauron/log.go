package main

import (
	"os"

	"github.com/phuslu/log"
)

// parseLogLevel converts the configured level string to a log.Level.
func parseLogLevel(levelStr string) log.Level {
	switch levelStr {
	case "trace":
		return log.TraceLevel
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// configureLogging sets up the global logger used by the daemon.
func configureLogging(level string) {
	log.DefaultLogger = log.Logger{
		Level:      parseLogLevel(level),
		TimeFormat: "15:04:05",
		Writer: &log.ConsoleWriter{
			ColorOutput:    log.IsTerminal(os.Stderr.Fd()),
			EndWithMessage: true,
			Writer:         os.Stderr,
		},
	}
}

// moduleLogger derives a logger tagged with a module name.
func moduleLogger(name string) log.Logger {
	l := log.DefaultLogger
	l.Context = log.NewContext(nil).Str("module", name).Value()
	return l
}
