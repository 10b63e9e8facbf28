package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Catalog CatalogConfig `yaml:"catalog"`
	Images  ImagesConfig  `yaml:"images"`
	Uploads UploadsConfig `yaml:"uploads"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type CatalogConfig struct {
	// File is a CSV of static assets. Empty means built-in defaults.
	File      string `yaml:"file"`
	AssetsDir string `yaml:"assets_dir"`
	Watch     bool   `yaml:"watch"`
}

type ImagesConfig struct {
	ResizeQuality    int           `yaml:"resize_quality"`
	ThumbnailQuality int           `yaml:"thumbnail_quality"`
	FetchTimeout     time.Duration `yaml:"fetch_timeout"`
	// MaxPixels rejects images whose header declares more pixels.
	MaxPixels        int           `yaml:"max_pixels"`
}

type UploadsConfig struct {
	MaxBytes int64 `yaml:"max_bytes"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		Catalog: CatalogConfig{
			File:      "data/catalog.csv",
			AssetsDir: "data/assets",
			Watch:     true,
		},
		Images: ImagesConfig{
			ResizeQuality:    90,
			ThumbnailQuality: 80,
			FetchTimeout:     10 * time.Second,
			MaxPixels:        50_000_000,
		},
		Uploads: UploadsConfig{MaxBytes: 50 << 20},
	}
}

// Load reads and parses the configuration file. Values missing from the
// file keep their defaults; a missing file yields Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration fields are set
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	if c.Catalog.AssetsDir == "" {
		return fmt.Errorf("catalog.assets_dir is required")
	}
	for name, q := range map[string]int{
		"images.resize_quality":    c.Images.ResizeQuality,
		"images.thumbnail_quality": c.Images.ThumbnailQuality,
	} {
		if q < 1 || q > 100 {
			return fmt.Errorf("%s must be within 1-100, got %d", name, q)
		}
	}
	if c.Images.MaxPixels <= 0 {
		return fmt.Errorf("images.max_pixels must be positive")
	}
	if c.Uploads.MaxBytes <= 0 {
		return fmt.Errorf("uploads.max_bytes must be positive")
	}
	return nil
}
