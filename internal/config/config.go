// Package config provides YAML-based configuration with sane defaults for
// running the converter without any config file at all.
package config

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the config file location when set.
const EnvConfigPath = "CONVERTD_CONFIG"

// EnvSofficePath overrides the external converter binary when set.
const EnvSofficePath = "SOFFICE_PATH"

// Config is the root configuration structure.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Limits  LimitsConfig  `yaml:"limits"`
	Convert ConvertConfig `yaml:"convert"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int    `yaml:"port"`
	BindAddress  string `yaml:"bind_address"`
	EnableCORS   bool   `yaml:"enable_cors"`
	AllowOrigins string `yaml:"allow_origins"`
	ReadTimeout  int    `yaml:"read_timeout_seconds"`
	WriteTimeout int    `yaml:"write_timeout_seconds"`
	IdleTimeout  int    `yaml:"idle_timeout_seconds"`
	BodyLimit    string `yaml:"body_limit"`
}

// LimitsConfig contains admission and upload ceilings.
type LimitsConfig struct {
	RateLimit            int   `yaml:"rate_limit"`
	RateWindowSeconds    int   `yaml:"rate_window_seconds"`
	SweepIntervalMinutes int   `yaml:"sweep_interval_minutes"`
	SingleFileMaxBytes   int64 `yaml:"single_file_max_bytes"`
	MultiFileMaxBytes    int64 `yaml:"multi_file_max_bytes"`
	MaxMergeFiles        int   `yaml:"max_merge_files"`
}

// ConvertConfig contains external converter settings.
type ConvertConfig struct {
	ScratchDirectory string `yaml:"scratch_directory"`
	SofficePath      string `yaml:"soffice_path"`
	TimeoutSeconds   int    `yaml:"timeout_seconds"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         8080,
			BindAddress:  "0.0.0.0",
			EnableCORS:   true,
			AllowOrigins: "*",
			ReadTimeout:  120,
			WriteTimeout: 120,
			IdleTimeout:  120,
			BodyLimit:    "256M",
		},
		Limits: LimitsConfig{
			RateLimit:            10,
			RateWindowSeconds:    60,
			SweepIntervalMinutes: 5,
			SingleFileMaxBytes:   25 << 20,
			MultiFileMaxBytes:    20 << 20,
			MaxMergeFiles:        10,
		},
		Convert: ConvertConfig{
			ScratchDirectory: "./tmp",
			SofficePath:      defaultSofficePath(),
			TimeoutSeconds:   120,
		},
	}
}

// defaultSofficePath resolves the LibreOffice binary name per platform,
// relying on PATH lookup rather than a literal install location.
func defaultSofficePath() string {
	if runtime.GOOS == "windows" {
		return "soffice.exe"
	}
	return "soffice"
}

// LoadConfig reads the YAML config at path, falling back to defaults when
// the file does not exist. Environment overrides are applied last.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No file: run on defaults.
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if p := os.Getenv(EnvSofficePath); p != "" {
		cfg.Convert.SofficePath = p
	}
	return cfg, nil
}

// EnsureDirectories creates the scratch directory if missing.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Convert.ScratchDirectory, 0o755); err != nil {
		return fmt.Errorf("creating scratch directory: %w", err)
	}
	return nil
}

// GetServerAddr returns the host:port the server binds to.
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddress, c.Server.Port)
}

// RateWindow returns the sliding-window duration.
func (c *Config) RateWindow() time.Duration {
	return time.Duration(c.Limits.RateWindowSeconds) * time.Second
}

// SweepInterval returns how often stale rate-limit entries are evicted.
func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.Limits.SweepIntervalMinutes) * time.Minute
}

// ConvertTimeout returns the external converter deadline.
func (c *Config) ConvertTimeout() time.Duration {
	return time.Duration(c.Convert.TimeoutSeconds) * time.Second
}
