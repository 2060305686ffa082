package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("chatty"))
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")
	log.Info().Msg("hidden")
	log.Warn().Str("vehicle", "A3").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "vehicle=A3")
}

func TestNewJSON_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(&buf, "info")
	log.Info().Float64("elapsed_s", 12.5).Msg("round won")
	assert.Contains(t, buf.String(), `"elapsed_s":12.5`)
	assert.Contains(t, buf.String(), `"message":"round won"`)
}
