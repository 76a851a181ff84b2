package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ClientAdapter holds network settings used by the CLI client transport.
type ClientAdapter struct {
	// HTTPAddress is the base address of the chronos server.
	// Env: CHRONOS_ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
	// RequestTimeout is the default timeout for outbound client requests.
	// Env: CHRONOS_ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// ClientConfig is the top-level CLI client configuration.
type ClientConfig struct {
	// Adapter contains the server address and timeout.
	Adapter ClientAdapter `envPrefix:"ADAPTER_"`

	// TokenFile keeps the session token between invocations.
	// Env: CHRONOS_TOKEN_FILE
	TokenFile string `env:"TOKEN_FILE"`
}

// GetClientConfig builds and validates the client configuration from the
// CHRONOS_ prefixed environment, falling back to a local server.
func GetClientConfig() (*ClientConfig, error) {
	cfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 10 * time.Second,
		},
		TokenFile: defaultTokenFile(),
	}

	if err := parseEnvWithPrefix(cfg, "CHRONOS_"); err != nil {
		return nil, fmt.Errorf("error getting client configs: %w", err)
	}

	return cfg, cfg.validate()
}

// defaultTokenFile is <user config dir>/chronos/session-token, or a file in
// the working directory when no config dir is known.
func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".chronos-session-token"
	}
	return filepath.Join(dir, "chronos", "session-token")
}
