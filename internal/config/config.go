package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/htmlindex"
	"gopkg.in/yaml.v3"

	"github.com/yiblet/txtreader/internal/pager"
)

const (
	// AppDir is the configuration directory under the user's home.
	AppDir = ".config/txtreader"

	// EnvPrefix prefixes environment variable overrides, e.g.
	// TXTREADER_PAGE_SIZE.
	EnvPrefix = "TXTREADER_"

	defaultText = "[default]"
)

// Config represents the txtreader configuration
type Config struct {
	LibraryLocation    string `yaml:"library_location,omitempty"`
	DatabasePath       string `yaml:"database_path,omitempty"`
	PageSize           int    `yaml:"page_size"`
	InitialLoadSize    int    `yaml:"initial_load_size"`
	BatchSize          int    `yaml:"batch_size"`
	ThrottleIntervalMs int    `yaml:"throttle_interval_ms"`
	FallbackEncoding   string `yaml:"fallback_encoding,omitempty"`
	LogLevel           string `yaml:"log_level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		PageSize:           pager.DefaultPageSize,
		InitialLoadSize:    pager.DefaultInitialLoadSize,
		BatchSize:          pager.DefaultBatchSize,
		ThrottleIntervalMs: int(pager.DefaultThrottleInterval / time.Millisecond),
		LogLevel:           "info",
	}
}

// PagerConfig converts the configuration to pager settings.
func (c *Config) PagerConfig() pager.Config {
	return pager.Config{
		PageSize:         c.PageSize,
		InitialLoadSize:  c.InitialLoadSize,
		BatchSize:        c.BatchSize,
		ThrottleInterval: time.Duration(c.ThrottleIntervalMs) * time.Millisecond,
	}
}

// DataDir returns ~/.config/txtreader.
func DataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, AppDir), nil
}

// ResolveDatabasePath returns the database path, defaulting to
// ~/.config/txtreader/txtreader.db.
func (c *Config) ResolveDatabasePath() (string, error) {
	if c.DatabasePath != "" {
		return expandHome(c.DatabasePath)
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "txtreader.db"), nil
}

// ResolveLibraryLocation expands a leading ~ in library_location. An empty
// or relative result is interpreted by libfs.New.
func (c *Config) ResolveLibraryLocation() (string, error) {
	return expandHome(c.LibraryLocation)
}

// LogPath returns the file the TUI logs to.
func LogPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "txtreader.log"), nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
}

// ConfigManager manages configuration persistence
type ConfigManager struct {
	configPath string
	getenv     func(string) string
}

// NewConfigManager creates a configuration manager for
// ~/.config/txtreader/config.yaml.
func NewConfigManager() (*ConfigManager, error) {
	dir, err := DataDir()
	if err != nil {
		return nil, err
	}
	return NewConfigManagerWithPath(filepath.Join(dir, "config.yaml")), nil
}

// NewConfigManagerWithPath creates a config manager with custom config path
func NewConfigManagerWithPath(configPath string) *ConfigManager {
	return &ConfigManager{
		configPath: configPath,
		getenv:     os.Getenv,
	}
}

// Load reads the configuration file, or the defaults if it doesn't exist,
// and applies TXTREADER_* environment overrides.
func (cm *ConfigManager) Load() (*Config, error) {
	config, err := cm.loadFile()
	if err != nil {
		return nil, err
	}
	if err := cm.applyEnv(config); err != nil {
		return nil, err
	}
	if err := validateAndSetDefaults(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func (cm *ConfigManager) loadFile() (*Config, error) {
	if _, err := os.Stat(cm.configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(cm.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validateAndSetDefaults(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Save writes the configuration to file
func (cm *ConfigManager) Save(config *Config) error {
	if err := validateAndSetDefaults(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	configDir := filepath.Dir(cm.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(cm.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// validateAndSetDefaults validates configuration and sets defaults for missing fields
func validateAndSetDefaults(config *Config) error {
	def := DefaultConfig()
	sizes := []struct {
		name  string
		value *int
		def   int
	}{
		{"page_size", &config.PageSize, def.PageSize},
		{"initial_load_size", &config.InitialLoadSize, def.InitialLoadSize},
		{"batch_size", &config.BatchSize, def.BatchSize},
		{"throttle_interval_ms", &config.ThrottleIntervalMs, def.ThrottleIntervalMs},
	}
	for _, s := range sizes {
		if *s.value < 0 {
			return fmt.Errorf("%s cannot be negative", s.name)
		}
		if *s.value == 0 {
			*s.value = s.def
		}
	}

	if config.PageSize > 1_000_000 {
		return fmt.Errorf("page_size cannot exceed 1000000 characters")
	}

	switch strings.ToLower(config.LogLevel) {
	case "":
		config.LogLevel = def.LogLevel
	case "debug", "info", "warn", "error":
		config.LogLevel = strings.ToLower(config.LogLevel)
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error")
	}

	if config.FallbackEncoding != "" {
		if _, err := htmlindex.Get(config.FallbackEncoding); err != nil {
			return fmt.Errorf("unknown fallback_encoding %q", config.FallbackEncoding)
		}
	}

	return nil
}

// GetConfigPath returns the path to the config file
func (cm *ConfigManager) GetConfigPath() string {
	return cm.configPath
}

// Keys returns every configuration key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Update modifies a specific configuration value and saves the file.
func (cm *ConfigManager) Update(key, value string) error {
	config, err := cm.loadFile()
	if err != nil {
		return err
	}

	f, ok := fields[normalizeKey(key)]
	if !ok {
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	if err := f.set(config, value); err != nil {
		return err
	}

	return cm.Save(config)
}

// Get returns the effective value for a specific configuration key
func (cm *ConfigManager) Get(key string) (string, error) {
	config, err := cm.Load()
	if err != nil {
		return "", err
	}

	f, ok := fields[normalizeKey(key)]
	if !ok {
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
	return display(f.get(config)), nil
}

// List returns all effective configuration keys and values
func (cm *ConfigManager) List() (map[string]string, error) {
	config, err := cm.Load()
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, len(fields))
	for key, f := range fields {
		result[key] = display(f.get(config))
	}
	return result, nil
}

func (cm *ConfigManager) applyEnv(config *Config) error {
	for key, f := range fields {
		envVar := EnvPrefix + strings.ToUpper(key)
		value := cm.getenv(envVar)
		if value == "" {
			continue
		}
		if err := f.set(config, value); err != nil {
			return fmt.Errorf("invalid value for %s: %w", envVar, err)
		}
	}
	return nil
}

func display(v string) string {
	if v == "" {
		return defaultText
	}
	return v
}

func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
}

type field struct {
	get func(*Config) string
	set func(*Config, string) error
}

func stringField(p func(*Config) *string) field {
	return field{
		get: func(c *Config) string { return *p(c) },
		set: func(c *Config, v string) error {
			*p(c) = v
			return nil
		},
	}
}

func intField(name string, p func(*Config) *int) field {
	return field{
		get: func(c *Config) string { return strconv.Itoa(*p(c)) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("invalid integer value for %s: %s", name, v)
			}
			*p(c) = n
			return nil
		},
	}
}

var fields = map[string]field{
	"library_location":     stringField(func(c *Config) *string { return &c.LibraryLocation }),
	"database_path":        stringField(func(c *Config) *string { return &c.DatabasePath }),
	"fallback_encoding":    stringField(func(c *Config) *string { return &c.FallbackEncoding }),
	"log_level":            stringField(func(c *Config) *string { return &c.LogLevel }),
	"page_size":            intField("page_size", func(c *Config) *int { return &c.PageSize }),
	"initial_load_size":    intField("initial_load_size", func(c *Config) *int { return &c.InitialLoadSize }),
	"batch_size":           intField("batch_size", func(c *Config) *int { return &c.BatchSize }),
	"throttle_interval_ms": intField("throttle_interval_ms", func(c *Config) *int { return &c.ThrottleIntervalMs }),
}
