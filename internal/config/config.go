// Package config loads stitch configuration from a YAML file, the
// environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Manager handles loading and hot-reloading configuration.
type Manager struct {
	v *viper.Viper

	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewManager loads .env, then the config file and STITCH_ environment
// variables. An empty cfgFile searches ./stitch.yaml and ~/.stitch/.
func NewManager(cfgFile string) (*Manager, error) {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	cm := &Manager{
		v:         viper.New(),
		callbacks: make([]func(*Config), 0),
	}

	if err := cm.initViper(cfgFile); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg

	return cm, nil
}

// initViper sets up viper with defaults and config file.
func (cm *Manager) initViper(cfgFile string) error {
	for key, value := range defaults() {
		cm.v.SetDefault(key, value)
	}

	// Environment variables with STITCH_ prefix, e.g. STITCH_TABLES_MAX_SEPARATION
	cm.v.SetEnvPrefix("STITCH")
	cm.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cm.v.AutomaticEnv()

	if cfgFile != "" {
		cm.v.SetConfigFile(cfgFile)
	} else {
		cm.v.SetConfigName("stitch")
		cm.v.SetConfigType("yaml")
		cm.v.AddConfigPath(".")
		cm.v.AddConfigPath("$HOME/.stitch")
	}

	// Try to read config file (not required)
	if err := cm.v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// load parses the current viper state into a Config struct.
func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := cm.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// File returns the config file in use, or "" when running on defaults.
func (cm *Manager) File() string {
	return cm.v.ConfigFileUsed()
}

// Get returns the current configuration (thread-safe).
func (cm *Manager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

// OnChange registers a callback for config changes.
func (cm *Manager) OnChange(fn func(*Config)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.callbacks = append(cm.callbacks, fn)
}

// WatchConfig enables hot-reloading of configuration. Invalid edits are
// ignored and the previous configuration stays active.
func (cm *Manager) WatchConfig() {
	cm.v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := cm.load()
		if err != nil {
			return
		}

		cm.mu.Lock()
		cm.config = cfg
		callbacks := make([]func(*Config), len(cm.callbacks))
		copy(callbacks, cm.callbacks)
		cm.mu.Unlock()

		for _, fn := range callbacks {
			fn(cfg)
		}
	})
	cm.v.WatchConfig()
}

var (
	namingProviders = []string{"none", "header", "openai", "gemini"}
	exportFormats   = []string{"csv", "xlsx", "postgres", "s3"}
)

// Validate checks the configuration for values the pipeline cannot use.
func (c *Config) Validate() error {
	var errs []error
	if c.Tables.TitleProximity < 0 {
		errs = append(errs, fmt.Errorf("tables.title_proximity must not be negative"))
	}
	if c.Tables.MaxSeparation < 0 {
		errs = append(errs, fmt.Errorf("tables.max_separation must not be negative"))
	}
	for key, t := range map[string]float64{
		"columns.numeric_threshold":  c.Columns.NumericThreshold,
		"columns.temporal_threshold": c.Columns.TemporalThreshold,
	} {
		if t < 0 || t > 1 {
			errs = append(errs, fmt.Errorf("%s must be between 0 and 1, got %v", key, t))
		}
	}
	if !slices.Contains(namingProviders, c.Naming.Provider) {
		errs = append(errs, fmt.Errorf("naming.provider %q is not one of %v", c.Naming.Provider, namingProviders))
	}
	for _, f := range c.Export.Formats {
		if !slices.Contains(exportFormats, f) {
			errs = append(errs, fmt.Errorf("export format %q is not one of %v", f, exportFormats))
		}
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1"))
	}
	return errors.Join(errs...)
}

// ResolveEnvVars expands ${ENV_VAR} references in a string.
func ResolveEnvVars(value string) string {
	if value == "" {
		return value
	}
	pattern := regexp.MustCompile(`\$\{([^}]+)\}`)
	return pattern.ReplaceAllStringFunc(value, func(match string) string {
		varName := match[2 : len(match)-1]
		return os.Getenv(varName)
	})
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# Stitch configuration
# Secrets use ${ENV_VAR} syntax to reference environment variables.
# Any key can be overridden with STITCH_<SECTION>_<KEY>, e.g. STITCH_TABLES_MAX_SEPARATION.

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
