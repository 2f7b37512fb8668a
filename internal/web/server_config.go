package web

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvListenAddr = "GIRDER_LISTEN"
	EnvDevMode    = "GIRDER_DEV"
)

// ServerConfig contains settings for running the HTTP server.
//
// The intended defaults differ per binary:
// - sign:      :80
// - simulator: :8080
type ServerConfig struct {
	ListenAddr string
	DevMode    bool
}

// ApplyEnv overrides cfg with GIRDER_LISTEN and GIRDER_DEV when set.
func (cfg ServerConfig) ApplyEnv() (ServerConfig, error) {
	if addr := os.Getenv(EnvListenAddr); addr != "" {
		cfg.ListenAddr = addr
	}
	if raw := os.Getenv(EnvDevMode); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("%s must be a boolean (got %q): %w", EnvDevMode, raw, err)
		}
		cfg.DevMode = parsed
	}
	return cfg, nil
}

func DefaultServerConfigFromEnv(defaultListenAddr string) (ServerConfig, error) {
	return ServerConfig{ListenAddr: defaultListenAddr}.ApplyEnv()
}
