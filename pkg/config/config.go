// Package config provides configuration management for the puzzle-scout service.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Solver   SolverConfig   `mapstructure:"solver"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	WebUI    WebUIConfig    `mapstructure:"webui"`
	Log      LogConfig      `mapstructure:"log"`
}

// SolverConfig holds exploration-related configuration.
type SolverConfig struct {
	// MaxIterations bounds the number of Process calls per solve.
	// Zero means explore until the queue is drained.
	MaxIterations int `mapstructure:"max_iterations"`
	// GhostDepths are the look-ahead distances rendered into the report.
	GhostDepths []int `mapstructure:"ghost_depths"`
	// BucketLoadFactor sizes the intern table relative to the map cell count.
	BucketLoadFactor float64 `mapstructure:"bucket_load_factor"`
}

// DatabaseConfig holds database connection configuration.
type DatabaseConfig struct {
	Type     string `mapstructure:"type"` // sqlite, postgres or mysql
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	MaxConns int    `mapstructure:"max_conns"`
}

// StorageConfig holds object storage configuration.
type StorageConfig struct {
	Type      string `mapstructure:"type"` // cos or local
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	SecretID  string `mapstructure:"secret_id"`
	SecretKey string `mapstructure:"secret_key"`
	Domain    string `mapstructure:"domain"`
	Scheme    string `mapstructure:"scheme"`
	LocalPath string `mapstructure:"local_path"`
}

// WebUIConfig holds web server configuration.
type WebUIConfig struct {
	Port int `mapstructure:"port"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from the specified file path.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/puzzle-scout")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found, use defaults
		} else if os.IsNotExist(err) {
			// File specified but doesn't exist, use defaults
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("PUZZLE_SCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("solver.max_iterations", 0)
	v.SetDefault("solver.ghost_depths", []int{1, 2, 3})
	v.SetDefault("solver.bucket_load_factor", 1.0)

	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.database", "puzzle-scout.db")
	v.SetDefault("database.max_conns", 10)

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local_path", "./reports")

	v.SetDefault("webui.port", 8080)

	v.SetDefault("log.level", "info")
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Solver.MaxIterations < 0 {
		return fmt.Errorf("solver.max_iterations must not be negative")
	}
	if c.Solver.BucketLoadFactor <= 0 {
		return fmt.Errorf("solver.bucket_load_factor must be positive")
	}
	for _, d := range c.Solver.GhostDepths {
		if d < 0 {
			return fmt.Errorf("solver.ghost_depths must not contain negative depths")
		}
	}

	switch c.Database.Type {
	case "sqlite":
		if c.Database.Database == "" {
			return fmt.Errorf("database.database is required for sqlite")
		}
	case "mysql", "postgres", "postgresql":
		if c.Database.Host == "" {
			return fmt.Errorf("database.host is required for %s", c.Database.Type)
		}
	default:
		return fmt.Errorf("unsupported database type: %s", c.Database.Type)
	}

	switch c.Storage.Type {
	case "", "local":
		if c.Storage.LocalPath == "" {
			return fmt.Errorf("storage.local_path is required for local storage")
		}
	case "cos":
		if c.Storage.Bucket == "" || c.Storage.Region == "" {
			return fmt.Errorf("storage.bucket and storage.region are required for cos")
		}
		if c.Storage.SecretID == "" || c.Storage.SecretKey == "" {
			return fmt.Errorf("storage credentials are required for cos")
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}

	if c.WebUI.Port <= 0 || c.WebUI.Port > 65535 {
		return fmt.Errorf("webui.port out of range: %d", c.WebUI.Port)
	}

	return nil
}
