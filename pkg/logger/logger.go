package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Config holds logger settings.
type Config struct {
	Level  string
	Format string // "text" or "json"
	Output io.Writer
}

// Init configures the standard logrus logger and returns it.
func Init(cfg Config) *logrus.Logger {
	log := logrus.StandardLogger()
	Configure(log, cfg)
	return log
}

// Configure applies cfg to an existing logger.
func Configure(log *logrus.Logger, cfg Config) {
	level, err := logrus.ParseLevel(strings.TrimSpace(cfg.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if cfg.Output != nil {
		log.SetOutput(cfg.Output)
	} else {
		log.SetOutput(os.Stdout)
	}
}
