package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	dotenvOnce sync.Once

	// cache holds one parsed value per configuration type, so every
	// Load of the same type observes identical configuration.
	cache sync.Map // reflect.Type -> reflect.Value
)

// Load populates cfg from environment variables. cfg must be a non-nil
// pointer to a struct with `env` tags. A .env file, when present, is
// loaded into the environment once per process before the first parse.
// Each configuration type is parsed once and cached; subsequent calls
// for the same type receive the cached value.
func Load(cfg any) error {
	dotenvOnce.Do(func() {
		// Missing .env files are fine; the environment is authoritative.
		_ = godotenv.Load()
	})

	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("config: destination must be a non-nil struct pointer, got %T", cfg)
	}

	t := v.Elem().Type()
	if cached, ok := cache.Load(t); ok {
		v.Elem().Set(cached.(reflect.Value))
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", t, err)
	}

	// Store a detached copy so later mutations of cfg don't leak into
	// the cache.
	snapshot := reflect.New(t).Elem()
	snapshot.Set(v.Elem())
	if prev, loaded := cache.LoadOrStore(t, snapshot); loaded {
		v.Elem().Set(prev.(reflect.Value))
	}

	return nil
}

// MustLoad is like Load but panics on failure. Useful at startup.
func MustLoad(cfg any) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
