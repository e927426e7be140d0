package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Supported browser drivers
const (
	DriverPlaywright = "playwright"
	DriverRod        = "rod"
)

// RunnerConfig holds configuration for a verification run
type RunnerConfig struct {
	BaseURL        string        `yaml:"base_url"`
	Driver         string        `yaml:"driver"`
	ScreenshotDir  string        `yaml:"screenshot_dir"`
	ViewportWidth  int           `yaml:"viewport_width"`
	ViewportHeight int           `yaml:"viewport_height"`
	Headless       bool          `yaml:"headless"`
	Timeout        time.Duration `yaml:"timeout"`
	LogLevel       string        `yaml:"log_level"`
}

// DefaultRunnerConfig returns the settings the verification script was written against
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		BaseURL:        "http://localhost:3000",
		Driver:         DriverPlaywright,
		ScreenshotDir:  "verification",
		ViewportWidth:  1280,
		ViewportHeight: 720,
		Headless:       true,
		LogLevel:       "info",
	}
}

// LoadRunnerConfig loads runner configuration from environment variables
func LoadRunnerConfig(getenv func(string) string) (RunnerConfig, error) {
	config := DefaultRunnerConfig()

	if v := getenv("UXVERIFY_BASE_URL"); v != "" {
		config.BaseURL = v
	}
	if v := getenv("UXVERIFY_DRIVER"); v != "" {
		config.Driver = v
	}
	if v := getenv("UXVERIFY_SCREENSHOT_DIR"); v != "" {
		config.ScreenshotDir = v
	}
	if v := getenv("UXVERIFY_LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}
	if v := getenv("UXVERIFY_VIEWPORT_WIDTH"); v != "" {
		width, err := strconv.Atoi(v)
		if err != nil {
			return config, fmt.Errorf("UXVERIFY_VIEWPORT_WIDTH must be an integer: %w", err)
		}
		config.ViewportWidth = width
	}
	if v := getenv("UXVERIFY_VIEWPORT_HEIGHT"); v != "" {
		height, err := strconv.Atoi(v)
		if err != nil {
			return config, fmt.Errorf("UXVERIFY_VIEWPORT_HEIGHT must be an integer: %w", err)
		}
		config.ViewportHeight = height
	}
	if v := getenv("UXVERIFY_HEADLESS"); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return config, fmt.Errorf("UXVERIFY_HEADLESS must be a boolean: %w", err)
		}
		config.Headless = headless
	}
	if v := getenv("UXVERIFY_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return config, fmt.Errorf("UXVERIFY_TIMEOUT must be a duration: %w", err)
		}
		config.Timeout = timeout
	}

	return config, nil
}

// LoadRunnerConfigFile overlays the YAML file at path on top of base.
// Keys missing from the file keep their value from base.
func LoadRunnerConfigFile(path string, base RunnerConfig) (RunnerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read config file: %w", err)
	}

	config := base
	if err := yaml.Unmarshal(data, &config); err != nil {
		return base, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return config, nil
}

// Validate checks that the configuration can drive a run
func (c RunnerConfig) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base URL %q must use http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("base URL %q has no host", c.BaseURL)
	}
	if c.Driver != DriverPlaywright && c.Driver != DriverRod {
		return fmt.Errorf("unknown driver %q (want %s or %s)", c.Driver, DriverPlaywright, DriverRod)
	}
	if c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", c.ViewportWidth, c.ViewportHeight)
	}
	if c.ScreenshotDir == "" {
		return fmt.Errorf("screenshot directory is required")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}
	return nil
}
