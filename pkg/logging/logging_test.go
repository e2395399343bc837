package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackplan/pkg/config"
)

func TestInit_LevelAndFormat(t *testing.T) {
	logger := logrus.New()
	closer := Init(logger, config.LoggingConfig{Level: "debug", Format: "json", Output: "stdout"})
	defer closer.Close()

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
	assert.Equal(t, os.Stdout, logger.Out)
}

func TestInit_InvalidLevelFallsBack(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	closer := Init(logger, config.LoggingConfig{Level: "chatty", Format: "text"})
	defer closer.Close()

	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
	assert.Equal(t, os.Stderr, logger.Out)

	require.NotEmpty(t, hook.AllEntries())
	assert.Contains(t, hook.AllEntries()[0].Message, "chatty")
}

func TestInit_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stackplan.log")

	logger := logrus.New()
	closer := Init(logger, config.LoggingConfig{Level: "info", Format: "json", Output: path})
	logger.WithField("app", "shop").Info("planned")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	assert.Equal(t, "planned", entry["msg"])
	assert.Equal(t, "shop", entry["app"])
}

func TestInit_UnwritableFileFallsBack(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)

	closer := Init(logger, config.LoggingConfig{Level: "info", Output: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
	defer closer.Close()

	assert.Equal(t, os.Stderr, logger.Out)
	assert.Contains(t, buf.String(), "Failed to open log file")
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("error")
	require.NoError(t, err)
	assert.Equal(t, logrus.ErrorLevel, level)

	_, err = ParseLevel("nope")
	assert.Error(t, err)
}
