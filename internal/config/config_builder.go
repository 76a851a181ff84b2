package config

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"dario.cat/mergo"
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	config, err := b.merge()
	if err != nil {
		return nil, err
	}

	return config, config.validate()
}

// buildSeed is build with the narrower seed validation.
func (b *configBuilder) buildSeed() (*StructuredConfig, error) {
	config, err := b.merge()
	if err != nil {
		return nil, err
	}

	return config, config.validateSeed()
}

func (b *configBuilder) merge() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	config.resolveDriver()

	return config, nil
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, defaultConfig())
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags() *configBuilder {
	flags := ParseFlags()

	b.configs = append(b.configs, flags)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
		}
	}

	if jsonPath == "" {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, jsonCfg)

	return b
}

// defaultConfig returns the values every deployment starts from.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			LogLevel: "debug",
			Version:  "dev",
		},
		Session: Session{
			Issuer:     "chronos",
			Lifetime:   SessionLifetime,
			UpdateAge:  24 * time.Hour,
			CookieName: "chronos.session-token",
			LoginPath:  "/auth/login",
			HomePath:   "/",
		},
		Hasher: Hasher{
			Cost:    DefaultHashCost,
			Workers: runtime.NumCPU(),
		},
		Server: Server{
			HTTPAddress:    ":8080",
			RequestTimeout: 30 * time.Second,
		},
	}
}

// resolveDriver picks a storage driver when none was configured explicitly.
func (cfg *StructuredConfig) resolveDriver() {
	if cfg.Storage.DB.Driver != "" {
		return
	}

	if cfg.Storage.DB.DSN != "" {
		cfg.Storage.DB.Driver = DriverPostgres
		return
	}
	cfg.Storage.DB.Driver = DriverMemory
}
