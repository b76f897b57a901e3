package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the console configuration loaded from YAML.
type Config struct {
	// Servers maps a short name to a connection address, e.g.
	//
	//	servers:
	//	  libera: ircs://irc.libera.chat:6697
	//	  local: irc://127.0.0.1
	Servers map[string]string `yaml:"servers"`
}

// loadConfig reads the YAML config at path. An empty path yields an empty
// config.
func loadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// resolveServer maps a configured server name to its address; anything not
// in the config is treated as a literal address.
func (c Config) resolveServer(nameOrAddress string) string {
	if addr, ok := c.Servers[nameOrAddress]; ok {
		return addr
	}
	return nameOrAddress
}
