// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Upload  UploadConfig  `yaml:"upload"`
	Queue   QueueConfig   `yaml:"queue"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Port              string `yaml:"port"`
	CORSAllowedOrigin string `yaml:"cors_allowed_origin"`
}

type UploadConfig struct {
	MaxSizeMB int64  `yaml:"max_size_mb"`
	TempDir   string `yaml:"temp_dir"`
}

type QueueConfig struct {
	AMQPURL string `yaml:"amqp_url"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              "8080",
			CORSAllowedOrigin: "*",
		},
		Upload: UploadConfig{
			MaxSizeMB: 10,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the optional yaml config file, then applies environment
// variable overrides on top. A missing file just means defaults.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Override with environment variables if they exist
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if origin := os.Getenv("CORS_ALLOWED_ORIGIN"); origin != "" {
		cfg.Server.CORSAllowedOrigin = origin
	}
	if maxSize := os.Getenv("UPLOAD_MAX_SIZE_MB"); maxSize != "" {
		if mb, err := strconv.ParseInt(maxSize, 10, 64); err == nil && mb > 0 {
			cfg.Upload.MaxSizeMB = mb
		}
	}
	if tempDir := os.Getenv("UPLOAD_TEMP_DIR"); tempDir != "" {
		cfg.Upload.TempDir = tempDir
	}
	if amqpURL := os.Getenv("AMQP_URL"); amqpURL != "" {
		cfg.Queue.AMQPURL = amqpURL
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}

	return cfg, nil
}

// MaxSizeBytes is the upload cap in bytes.
func (u UploadConfig) MaxSizeBytes() int64 {
	return u.MaxSizeMB * 1024 * 1024
}
