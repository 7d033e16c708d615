// Package config loads the application configuration from config.yaml,
// environment variables and an optional .env file.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the root configuration of the service.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Ingest   IngestConfig   `mapstructure:"ingest"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port         int `mapstructure:"port"`          // listen port
	ReadTimeout  int `mapstructure:"read_timeout"`  // seconds
	WriteTimeout int `mapstructure:"write_timeout"` // seconds
}

// DatabaseConfig holds the storage settings.
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"` // only "sqlite" is supported
	DSN             string `mapstructure:"dsn"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // seconds
}

// LogConfig holds the logging settings.
type LogConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, text
	Output     string `mapstructure:"output"`      // console, file, both
	FilePath   string `mapstructure:"file_path"`   // log file location
	MaxSize    int    `mapstructure:"max_size"`    // MB before rotation
	MaxAge     int    `mapstructure:"max_age"`     // days to keep rotated files
	MaxBackups int    `mapstructure:"max_backups"` // rotated files to keep
	Compress   bool   `mapstructure:"compress"`    // gzip rotated files
}

// IngestConfig holds the upload and import-watcher settings.
type IngestConfig struct {
	MaxFileSize  int64  `mapstructure:"max_file_size"` // bytes, 0 disables the limit
	WatchEnabled bool   `mapstructure:"watch_enabled"` // auto-ingest from WatchDir
	WatchDir     string `mapstructure:"watch_dir"`
	ScanInterval int    `mapstructure:"scan_interval"` // seconds between directory scans
}

// Load reads configuration from config.yaml in the working directory,
// overridden by APP_* environment variables. A missing config file is not an
// error: defaults cover every setting.
func Load() (*Config, error) {
	// .env is optional and only used for local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers the default value of every setting.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 30)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "app.db")
	v.SetDefault("database.max_idle_conns", 1)
	v.SetDefault("database.max_open_conns", 1)
	v.SetDefault("database.conn_max_lifetime", 3600)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.output", "console")
	v.SetDefault("log.file_path", "logs/app.log")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_age", 30)
	v.SetDefault("log.max_backups", 10)
	v.SetDefault("log.compress", true)

	v.SetDefault("ingest.max_file_size", int64(32<<20))
	v.SetDefault("ingest.watch_enabled", false)
	v.SetDefault("ingest.watch_dir", "import")
	v.SetDefault("ingest.scan_interval", 10)
}
