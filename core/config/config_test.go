package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeserve/routeserve/core/config"
)

// Each test declares its own config type: parsed values are cached per
// type, so sharing one type across tests would leak state between them.

func TestLoad(t *testing.T) {
	t.Run("parses env tags with defaults", func(t *testing.T) {
		type serverConfig struct {
			Addr    string        `env:"TEST_SERVER_ADDR" envDefault:":8080"`
			Timeout time.Duration `env:"TEST_SERVER_TIMEOUT" envDefault:"30s"`
			Debug   bool          `env:"TEST_SERVER_DEBUG" envDefault:"false"`
		}

		t.Setenv("TEST_SERVER_ADDR", ":9090")
		t.Setenv("TEST_SERVER_DEBUG", "true")

		var cfg serverConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, ":9090", cfg.Addr)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
		assert.True(t, cfg.Debug)
	})

	t.Run("caches per type", func(t *testing.T) {
		type cachedConfig struct {
			Value string `env:"TEST_CACHED_VALUE" envDefault:"first"`
		}

		var first cachedConfig
		require.NoError(t, config.Load(&first))
		assert.Equal(t, "first", first.Value)

		// The environment changed, but the type was already parsed.
		t.Setenv("TEST_CACHED_VALUE", "second")

		var second cachedConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "first", second.Value)
	})

	t.Run("cache stores a detached snapshot", func(t *testing.T) {
		type snapshotConfig struct {
			Value string `env:"TEST_SNAPSHOT_VALUE" envDefault:"original"`
		}

		var first snapshotConfig
		require.NoError(t, config.Load(&first))
		first.Value = "mutated"

		var second snapshotConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "original", second.Value)
	})

	t.Run("rejects non-pointer destinations", func(t *testing.T) {
		type badConfig struct {
			Value string `env:"TEST_BAD_VALUE"`
		}

		assert.Error(t, config.Load(badConfig{}))
		assert.Error(t, config.Load(nil))

		var ptr *badConfig
		assert.Error(t, config.Load(ptr))
	})

	t.Run("reports required variables that are missing", func(t *testing.T) {
		type requiredConfig struct {
			Secret string `env:"TEST_REQUIRED_SECRET,required"`
		}

		var cfg requiredConfig
		assert.Error(t, config.Load(&cfg))
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on failure", func(t *testing.T) {
		type mustConfig struct {
			Token string `env:"TEST_MUST_TOKEN,required"`
		}

		assert.Panics(t, func() {
			var cfg mustConfig
			config.MustLoad(&cfg)
		})
	})

	t.Run("populates on success", func(t *testing.T) {
		type okConfig struct {
			Name string `env:"TEST_OK_NAME" envDefault:"routeserve"`
		}

		var cfg okConfig
		assert.NotPanics(t, func() { config.MustLoad(&cfg) })
		assert.Equal(t, "routeserve", cfg.Name)
	})
}
