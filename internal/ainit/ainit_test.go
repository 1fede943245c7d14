package ainit

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestApplyLevel(t *testing.T) {
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	})

	t.Run("known level", func(t *testing.T) {
		assert.Equal(t, zerolog.WarnLevel, ApplyLevel("warn"))
		assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		assert.Equal(t, zerolog.InfoLevel, ApplyLevel("loud"))
	})

	t.Run("empty level falls back to info", func(t *testing.T) {
		assert.Equal(t, zerolog.InfoLevel, ApplyLevel(""))
	})

	t.Run("debug env var wins", func(t *testing.T) {
		t.Setenv("DEBUG_LOG", "true")
		assert.Equal(t, zerolog.TraceLevel, ApplyLevel("error"))
		assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
	})
}

func TestLoaded(t *testing.T) {
	assert.True(t, Loaded())
}
