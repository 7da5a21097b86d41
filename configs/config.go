package configs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/i2y/striker/internal/adapter/outbound/github"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "striker"

// FileConfig defines the structure loaded from the YAML configuration file.
type FileConfig struct {
	FixtureFile string `yaml:"fixture_file"`
	ListenAddr  string `yaml:"listen_addr"`
	AdminAddr   string `yaml:"admin_addr"`
	BaseURL     string `yaml:"base_url"`
	LogLevel    string `yaml:"log_level"`
}

// Config holds the final application configuration, merged from file and environment variables.
// Fields are loaded from environment variables with the prefix "STRIKER_"; a variable that is set
// always wins over the file.
type Config struct {
	// Config File Path (optional; local path or github:// URL)
	ConfigFilePath string `envconfig:"CONFIG_FILE"`

	// Fixture document with catalog, players and bundle configuration.
	// Empty selects the built-in fixture.
	FixtureFile string `envconfig:"FIXTURE_FILE"`

	ListenAddr               string        `envconfig:"LISTEN_ADDR" default:":8080"`
	AdminAddr                string        `envconfig:"ADMIN_ADDR" default:":8081"`
	BaseURL                  string        `envconfig:"BASE_URL"`
	ShutdownTimeout          time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
	ServerReadTimeout        time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"5s"`
	ServerWriteTimeout       time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"10s"`
	ServerIdleTimeout        time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"120s"`
	OtelExporterOtlpEndpoint string        `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelExporterOtlpInsecure bool          `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`
	LogLevel                 string        `envconfig:"LOG_LEVEL" default:"info"`
}

// ParsedLogLevel returns the slog.Level based on the configured LogLevel string.
func (c *Config) ParsedLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		fallthrough
	default:
		return slog.LevelInfo
	}
}

// SSEBaseURL is the externally visible base URL of the SSE transport.
func (c *Config) SSEBaseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	addr := c.ListenAddr
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}

// Load reads environment variables, then the optional YAML file they point to.
// File values fill only the fields whose environment variable is unset.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if cfg.ConfigFilePath == "" {
		slog.Debug("No config file path specified (STRIKER_CONFIG_FILE), using defaults/env vars only.")
		return &cfg, nil
	}

	content, err := github.ReadFile(ctx, cfg.ConfigFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	var fileCfg FileConfig
	if err := yaml.Unmarshal(content, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file '%s': %w", cfg.ConfigFilePath, err)
	}
	slog.Info("Loaded configuration from file.", "path", cfg.ConfigFilePath)

	applyFileValue(&cfg.FixtureFile, "FIXTURE_FILE", fileCfg.FixtureFile)
	applyFileValue(&cfg.ListenAddr, "LISTEN_ADDR", fileCfg.ListenAddr)
	applyFileValue(&cfg.AdminAddr, "ADMIN_ADDR", fileCfg.AdminAddr)
	applyFileValue(&cfg.BaseURL, "BASE_URL", fileCfg.BaseURL)
	applyFileValue(&cfg.LogLevel, "LOG_LEVEL", fileCfg.LogLevel)

	return &cfg, nil
}

func applyFileValue(dst *string, key, fileValue string) {
	if fileValue == "" {
		return
	}
	if _, set := os.LookupEnv(strings.ToUpper(EnvPrefix) + "_" + key); set {
		return
	}
	*dst = fileValue
}
