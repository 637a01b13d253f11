package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Azizyco/WarmindoGenzC/internal/config"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "warmindo")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "warmindo")
}

func TestNewConfig_Redis(t *testing.T) {
	t.Run("db_read_from_environment", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("REDIS_DB", "3")

		cfg, err := config.NewConfig()

		assert.NoError(t, err)
		assert.Equal(t, 3, cfg.Redis.DB)
	})

	t.Run("db_defaults_to_zero", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("REDIS_DB", "")

		cfg, err := config.NewConfig()

		assert.NoError(t, err)
		assert.Zero(t, cfg.Redis.DB)
	})

	t.Run("non_numeric_db_is_an_error", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("REDIS_DB", "three")

		_, err := config.NewConfig()

		assert.Error(t, err)
	})
}

func TestNewConfig_RequiredVars(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_PASSWORD", "")

	_, err := config.NewConfig()

	assert.ErrorContains(t, err, "DB_PASSWORD")
}
