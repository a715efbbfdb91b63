// Package config provides type-safe environment variable loading with
// per-type caching.
//
// Configuration structs declare their environment bindings with `env`
// tags and load once per process:
//
//	type ServerConfig struct {
//		Addr string `env:"ADDR" envDefault:":8080"`
//		Root string `env:"ROOT,required"`
//	}
//
//	var cfg ServerConfig
//	config.MustLoad(&cfg)
//
// A .env file in the working directory is applied to the environment
// before the first parse. Each struct type is parsed exactly once;
// later loads of the same type return the cached value.
package config
