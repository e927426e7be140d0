package config

import (
	"fmt"
	"strconv"
)

// ServerConfig holds settings for the reference lobby fixture server
type ServerConfig struct {
	Port string
	// SeedRooms pre-populates the lobby so the empty state is replaced by a room list
	SeedRooms int
}

// LoadServerConfig loads fixture server configuration from environment variables
func LoadServerConfig(getenv func(string) string) (ServerConfig, error) {
	port := getenv("PORT")
	if port == "" {
		port = "3000" // The verification runner targets localhost:3000 by default
	}

	config := ServerConfig{Port: port}

	if v := getenv("FIXTURE_SEED_ROOMS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return config, fmt.Errorf("FIXTURE_SEED_ROOMS must be a non-negative integer, got %q", v)
		}
		config.SeedRooms = n
	}

	return config, nil
}
