package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvLoaderPrefix(t *testing.T) {
	t.Setenv("PODIUM_REDIS_PASSWORD", "hunter2")

	env := NewEnvLoader("PODIUM")
	assert.Equal(t, "hunter2", env.GetString("REDIS_PASSWORD", ""))
	assert.Equal(t, "fallback", env.GetString("MISSING", "fallback"))
}

func TestEnvLoaderTypedGetters(t *testing.T) {
	t.Setenv("PODIUM_PORT", "9090")
	t.Setenv("PODIUM_DEBUG", "true")
	t.Setenv("PODIUM_TICK", "45s")
	t.Setenv("PODIUM_BAD_INT", "nope")

	env := NewEnvLoader("PODIUM")
	assert.Equal(t, 9090, env.GetInt("PORT", 0))
	assert.True(t, env.GetBool("DEBUG", false))
	assert.Equal(t, 45*time.Second, env.GetDuration("TICK", time.Minute))

	// Unparseable values fall back to the default.
	assert.Equal(t, 7, env.GetInt("BAD_INT", 7))
}

func TestEnvLoaderRequired(t *testing.T) {
	env := NewEnvLoader("PODIUM")

	_, err := env.GetStringRequired("NOT_SET_ANYWHERE")
	assert.Error(t, err)

	t.Setenv("PODIUM_TABLE", "podium-tournaments")
	value, err := env.GetStringRequired("TABLE")
	assert.NoError(t, err)
	assert.Equal(t, "podium-tournaments", value)
}
