package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depot/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func newBufferedLogger(t *testing.T) (*bytes.Buffer, interface {
	Info(string)
	Warn(string)
	Error(error)
	SetJSON(bool)
}) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := new(bytes.Buffer)
	l := logger.New()
	l.SetOutput(buf)
	return buf, l
}

func TestLogger_Info(t *testing.T) {
	buf, l := newBufferedLogger(t)

	l.Info("publishing demo")
	assert.Contains(t, buf.String(), "publishing demo")
}

func TestLogger_Warn(t *testing.T) {
	buf, l := newBufferedLogger(t)

	l.Warn("skipping non-library package")
	assert.Contains(t, buf.String(), "skipping non-library package")
}

func TestLogger_ErrorChain(t *testing.T) {
	buf, l := newBufferedLogger(t)

	err := zerr.Wrap(errors.New("permission denied"), "failed to append to package index")
	l.Error(err)

	out := buf.String()
	assert.Contains(t, out, "Error: failed to append to package index")
	assert.Contains(t, out, "Caused by:")
	assert.Contains(t, out, "permission denied")
}

func TestLogger_ErrorNil(t *testing.T) {
	buf, l := newBufferedLogger(t)

	l.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSONMode(t *testing.T) {
	buf, l := newBufferedLogger(t)
	l.SetJSON(true)

	l.Info("hello")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "INFO", record["level"])
}
