package logging

import (
	"io"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"pdfcompress/internal/config"
)

// New builds a go-kit logger writing to w in the configured format and
// filtered to the configured level. Unknown formats fall back to logfmt and
// unknown levels to info.
func New(w io.Writer, cfg config.LogConfig) log.Logger {
	var logger log.Logger
	switch strings.ToLower(cfg.Format) {
	case "json":
		logger = log.NewJSONLogger(log.NewSyncWriter(w))
	default:
		logger = log.NewLogfmtLogger(log.NewSyncWriter(w))
	}
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	return level.NewFilter(logger, allowed(cfg.Level))
}

// Component tags every line of logger with the emitting component.
func Component(logger log.Logger, name string) log.Logger {
	return log.With(logger, "component", name)
}

func allowed(lvl string) level.Option {
	switch strings.ToLower(lvl) {
	case "debug":
		return level.AllowDebug()
	case "warn", "warning":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}
