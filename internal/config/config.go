// Package config provides configuration loading and structs for the Glance server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Search    SearchConfig    `yaml:"search"`
	Watch     WatchConfig     `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds paths for the metadata database and indices.
type StorageConfig struct {
	DatabasePath   string `yaml:"database_path"`
	BleveIndexPath string `yaml:"bleve_index_path"`
	SnapshotPath   string `yaml:"snapshot_path"`
	ManifestPath   string `yaml:"manifest_path"`
}

// EmbeddingConfig holds image embedder settings.
type EmbeddingConfig struct {
	ModelPath string `yaml:"model_path"`
	// ModelID identifies the model for manifest validation; a snapshot
	// built with a different model is rebuilt.
	ModelID    string `yaml:"model_id"`
	Dimensions int    `yaml:"dimensions"`
	BatchSize  int    `yaml:"batch_size"`
	CacheSize  int    `yaml:"cache_size"`
}

// CatalogConfig holds the catalog image directory and listing limits.
type CatalogConfig struct {
	Dir             string `yaml:"dir"`
	DefaultPageSize int    `yaml:"default_page_size"`
	MaxPageSize     int    `yaml:"max_page_size"`
}

// SearchConfig holds visual search and query augmentation settings.
type SearchConfig struct {
	DefaultTopK   int     `yaml:"default_top_k"`
	MaxTopK       int     `yaml:"max_top_k"`
	MinSimilarity float64 `yaml:"min_similarity"`
	// HorizontalFlip and CenterCrop default to true when unset.
	HorizontalFlip *bool   `yaml:"use_horizontal_flip"`
	CenterCrop     *bool   `yaml:"use_center_crop"`
	CropRatio      float64 `yaml:"crop_ratio"`
}

// HorizontalFlipOrDefault returns whether flip augmentation is enabled; defaults to true when unset.
func (s *SearchConfig) HorizontalFlipOrDefault() bool {
	if s.HorizontalFlip != nil {
		return *s.HorizontalFlip
	}
	return true
}

// CenterCropOrDefault returns whether crop augmentation is enabled; defaults to true when unset.
func (s *SearchConfig) CenterCropOrDefault() bool {
	if s.CenterCrop != nil {
		return *s.CenterCrop
	}
	return true
}

// WatchConfig holds catalog directory watch settings.
type WatchConfig struct {
	// Enabled defaults to true when unset.
	Enabled    *bool `yaml:"enabled"`
	DebounceMS int   `yaml:"debounce_ms"`
}

// EnabledOrDefault returns whether the directory watcher runs; defaults to true when unset.
func (w *WatchConfig) EnabledOrDefault() bool {
	if w.Enabled != nil {
		return *w.Enabled
	}
	return true
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	cfg.Storage.BleveIndexPath = expandPath(cfg.Storage.BleveIndexPath, configDir)
	cfg.Storage.SnapshotPath = expandPath(cfg.Storage.SnapshotPath, configDir)
	cfg.Storage.ManifestPath = expandPath(cfg.Storage.ManifestPath, configDir)
	cfg.Embedding.ModelPath = expandPath(cfg.Embedding.ModelPath, configDir)
	cfg.Catalog.Dir = expandPath(cfg.Catalog.Dir, configDir)

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
