// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"stackplan/pkg/config"
)

// Init applies level, format and output to logger. An unusable setting falls
// back to its default and is reported as a warning rather than failing the
// command. The returned closer releases a log file, if one was opened.
func Init(logger *logrus.Logger, cfg config.LoggingConfig) io.Closer {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logger.Warnf("Invalid log level '%s', using '%s' instead", cfg.Level, config.DefaultLogLevel)
		level, _ = logrus.ParseLevel(config.DefaultLogLevel)
	}
	logger.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	output, closer := openOutput(logger, cfg.Output)
	logger.SetOutput(output)

	logger.WithFields(logrus.Fields{
		"level":  level.String(),
		"format": cfg.Format,
	}).Debug("logger initialized")

	return closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func openOutput(logger *logrus.Logger, output string) (io.Writer, io.Closer) {
	switch strings.ToLower(output) {
	case "", "stderr":
		return os.Stderr, nopCloser{}
	case "stdout":
		return os.Stdout, nopCloser{}
	}

	file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logger.Warnf("Failed to open log file '%s', using stderr instead: %v", output, err)
		return os.Stderr, nopCloser{}
	}
	return file, file
}

// ParseLevel validates a level name for command-line flags
func ParseLevel(name string) (logrus.Level, error) {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}
