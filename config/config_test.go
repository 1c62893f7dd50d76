package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "llama3-70b-8192", cfg.Model)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, 2000, cfg.ReplyDelayMS)
	assert.NotEmpty(t, cfg.DataDir)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GROQ_API_KEY", "gsk-test")
	t.Setenv("DARIJACODE_LANG", "darija")
	t.Setenv("DARIJACODE_REPLY_DELAY_MS", "150")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gsk-test", cfg.GroqAPIKey)
	assert.Equal(t, "darija", cfg.Language)
	assert.Equal(t, 150*time.Millisecond, cfg.ReplyDelay())
}
