package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   Debug,
		" INFO ":  Info,
		"":        Info,
		"warning": Warn,
		"error":   Error,
		"loud":    Info,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatText, ParseFormat("yaml"))
}

func TestNew_JSONIncludesBaseAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Info, Format: FormatJSON, App: "clinic", Output: &buf})

	log.With(map[string]any{"request_id": "r-1"}).Info("listo", map[string]any{
		"status": 200,
		"err":    errors.New("boom"),
		" ":      "ignorado",
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "listo", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "clinic", entry["app"])
	assert.Equal(t, "r-1", entry["request_id"])
	assert.EqualValues(t, 200, entry["status"])
	assert.Equal(t, "boom", entry["err"])
	assert.NotContains(t, entry, " ")
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Warn, Format: FormatText, Output: &buf})

	log.Debug("nada", nil)
	log.Info("nada", nil)
	assert.Zero(t, buf.Len())

	log.Warn("cuidado", map[string]any{"k": "v"})
	assert.True(t, strings.Contains(buf.String(), "cuidado"))
	assert.True(t, strings.Contains(buf.String(), "WARN"))
}

func TestNop(t *testing.T) {
	log := Nop()
	assert.NotPanics(t, func() {
		log.With(map[string]any{"a": 1}).Error("x", nil)
		Sync(log)
	})
}
