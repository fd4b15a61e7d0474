package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	t.Run("json output at the chosen level", func(t *testing.T) {
		var buf bytes.Buffer
		InitTo(&buf, "warn", false)

		log.Info().Msg("hidden")
		log.Warn().Int("turn", 3).Msg("shown")

		out := buf.String()
		require.NotContains(t, out, "hidden")
		require.Contains(t, out, `"turn":3`)
		require.Contains(t, out, `"message":"shown"`)
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer
		InitTo(&buf, "loud", false)
		require.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
		require.Contains(t, buf.String(), "unknown log level")
	})

	t.Run("pretty output is not json", func(t *testing.T) {
		var buf bytes.Buffer
		InitTo(&buf, "debug", true)
		log.Debug().Msg("placement")
		require.Contains(t, buf.String(), "placement")
		require.NotContains(t, buf.String(), `"message"`)
	})
}
