package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/dunamismax/go-cli/models"
)

// LoadConfig reads configuration from an optional YAML file, the
// environment (GOCLI_ prefix) and built-in defaults, in that order of
// precedence. An empty path means config.yaml in the working directory,
// if present. The data and logs directories are created on load.
func LoadConfig(path string) (*models.AppConfig, error) {
	// Make .env values visible to AutomaticEnv below.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("app_name", "Go CLI App")
	v.SetDefault("debug", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("data_dir", "data")
	v.SetDefault("logs_dir", "logs")
	v.SetDefault("db_path", filepath.Join("data", "app.db"))
	v.SetDefault("todo_file", "todos.json")
	v.SetDefault("session_ttl", 30)
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8000)
	v.SetDefault("worker.count", 0)
	v.SetDefault("worker.poll_interval", 2)
	v.SetDefault("worker.retain_days", 7)

	v.SetEnvPrefix("GOCLI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg models.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	for _, dir := range []string{cfg.DataDir, cfg.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	return &cfg, nil
}
