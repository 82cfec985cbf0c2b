package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/go-kit/log/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfcompress/internal/config"
	"pdfcompress/internal/logging"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, config.LogConfig{Level: "info", Format: "json"})

	level.Info(logger).Log("msg", "hello")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "info", line["level"])
	assert.Contains(t, line, "ts")
}

func TestNew_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, config.LogConfig{Level: "warn", Format: "logfmt"})

	level.Info(logger).Log("msg", "dropped")
	level.Debug(logger).Log("msg", "dropped")
	assert.Empty(t, buf.String())

	level.Warn(logger).Log("msg", "kept")
	assert.Contains(t, buf.String(), "msg=kept")
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Component(logging.New(&buf, config.LogConfig{Level: "debug"}), "reducer")

	level.Debug(logger).Log("msg", "x")
	assert.Contains(t, buf.String(), "component=reducer")
}
