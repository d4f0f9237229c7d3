package app

import (
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

// NewLogger настраивает logrus по LOG_LEVEL и LOG_FORMAT.
func NewLogger(cfg Config, out io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	logger := log.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	switch strings.ToLower(cfg.LogFormat) {
	case "json":
		logger.SetFormatter(&log.JSONFormatter{})
	case "", "text":
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unsupported log format %q", cfg.LogFormat)
	}
	return logger, nil
}
