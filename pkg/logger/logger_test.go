package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-discount-dashboard/pkg/logger"
)

func TestNew_ProduccionEscribeJSONConComponente(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})

	log.Component("cooldown").Info().Str("company_id", "c1").Msg("cooldown activo")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "cooldown", line["component"])
	assert.Equal(t, "c1", line["company_id"])
	assert.Equal(t, "info", line["level"])
}

func TestNew_NivelFiltraEventos(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})

	log.Info().Msg("no se escribe")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("sí se escribe")
	assert.NotZero(t, buf.Len())
}
