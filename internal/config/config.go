// Package config loads application configuration from environment variables
// (VS_ prefix) merged with an optional YAML file. Environment values win.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Export    ExportConfig    `yaml:"export" envconfig:"EXPORT"`
	Narrative NarrativeConfig `yaml:"narrative" envconfig:"NARRATIVE"`
	Research  ResearchConfig  `yaml:"research" envconfig:"RESEARCH"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`

	// MaxUploadBytes bounds one multipart upload across all files.
	MaxUploadBytes int64 `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES" default:"52428800" validate:"min=1"`

	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"50"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"25"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/venturescope.log"`
}

// ExportConfig configures the CSV export.
type ExportConfig struct {
	// Product names the export download: <product>_analysis.csv.
	Product   string `yaml:"product" envconfig:"PRODUCT" default:"venturescope" validate:"required"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"data/exports"`
	BOMPrefix bool   `yaml:"bom_prefix" envconfig:"BOM_PREFIX" default:"true"`
}

// NarrativeConfig configures the external generative-text collaborator. An
// empty APIKey is not a configuration error: the narrative service degrades
// to fixed placeholder payloads instead.
type NarrativeConfig struct {
	BaseURL string        `yaml:"base_url" envconfig:"BASE_URL" default:"https://generativelanguage.googleapis.com/v1beta" validate:"omitempty,url"`
	APIKey  string        `yaml:"api_key" envconfig:"API_KEY"`
	Model   string        `yaml:"model" envconfig:"MODEL" default:"gemini-2.0-flash"`
	Timeout time.Duration `yaml:"timeout" envconfig:"TIMEOUT" default:"30s"`
}

// ResearchConfig configures the citation-backed research collaborator.
type ResearchConfig struct {
	APIKey   string        `yaml:"api_key" envconfig:"API_KEY"`
	EngineID string        `yaml:"engine_id" envconfig:"ENGINE_ID"`
	Timeout  time.Duration `yaml:"timeout" envconfig:"TIMEOUT" default:"15s"`
}

// Load loads configuration from an optional YAML file overlaid with
// environment variables.
func Load() (*Config, error) {
	return LoadFromFile(configFilePath())
}

// LoadFromFile loads configuration, reading path when it exists.
// Environment values (with their defaults) take precedence; the file fills
// in what the environment left unset — API keys in particular.
func LoadFromFile(path string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process("VS", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			fileCfg, err := loadFromFile(path)
			if err != nil {
				return nil, fmt.Errorf("load config from file: %w", err)
			}
			cfg = mergeConfigs(*fileCfg, cfg)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs fills env-config gaps from the file config.
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Narrative.APIKey == "" {
		envConfig.Narrative.APIKey = fileConfig.Narrative.APIKey
	}
	if envConfig.Research.APIKey == "" {
		envConfig.Research.APIKey = fileConfig.Research.APIKey
	}
	if envConfig.Research.EngineID == "" {
		envConfig.Research.EngineID = fileConfig.Research.EngineID
	}
	if envConfig.Server.Port == 0 {
		envConfig.Server.Port = fileConfig.Server.Port
	}
	if envConfig.Logging.FilePath == "" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}
	return envConfig
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}

// configFilePath resolves the config file location, overridable via
// VS_CONFIG_FILE.
func configFilePath() string {
	if path := os.Getenv("VS_CONFIG_FILE"); path != "" {
		return path
	}
	return "venturescope.yaml"
}
