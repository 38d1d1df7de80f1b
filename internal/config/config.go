package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"invext/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Extractor ExtractorConfig
	Batch     BatchConfig
	CORS      CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ExtractorConfig holds the extraction pipeline settings: the review
// threshold, the layout classifier, and the learned fallback sidecar.
type ExtractorConfig struct {
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold"`
	LayoutEnabled       bool    `mapstructure:"layout_enabled"`
	LayoutModelPath     string  `mapstructure:"layout_model_path"`
	MLEnabled           bool    `mapstructure:"ml_enabled"`
	MLMinConfidence     float64 `mapstructure:"ml_min_confidence"`
	PreferRegex         bool    `mapstructure:"prefer_regex"`
	NERURL              string  `mapstructure:"ner_url"`
	NERTimeoutSecs      int     `mapstructure:"ner_timeout_secs"`
}

// BatchConfig holds batch CLI settings.
type BatchConfig struct {
	Concurrency  int    `mapstructure:"concurrency"`
	OutputFormat string `mapstructure:"output_format"`
	OutputDir    string `mapstructure:"output_dir"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the INVEXT_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INVEXT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Extractor defaults
	v.SetDefault("extractor.confidence_threshold", 0.9)
	v.SetDefault("extractor.layout_enabled", true)
	v.SetDefault("extractor.layout_model_path", "")
	v.SetDefault("extractor.ml_enabled", false)
	v.SetDefault("extractor.ml_min_confidence", 0.5)
	v.SetDefault("extractor.prefer_regex", true)
	v.SetDefault("extractor.ner_url", "http://localhost:8090/entities")
	v.SetDefault("extractor.ner_timeout_secs", 10)

	// Batch defaults
	v.SetDefault("batch.concurrency", 4)
	v.SetDefault("batch.output_format", "csv")
	v.SetDefault("batch.output_dir", ".")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "INVEXT_SERVER_PORT",
		"server.read_timeout":            "INVEXT_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "INVEXT_SERVER_WRITE_TIMEOUT",
		"server.environment":             "INVEXT_SERVER_ENVIRONMENT",
		"log.level":                      "INVEXT_LOG_LEVEL",
		"log.format":                     "INVEXT_LOG_FORMAT",
		"extractor.confidence_threshold": "INVEXT_EXTRACTOR_CONFIDENCE_THRESHOLD",
		"extractor.layout_enabled":       "INVEXT_EXTRACTOR_LAYOUT_ENABLED",
		"extractor.layout_model_path":    "INVEXT_EXTRACTOR_LAYOUT_MODEL_PATH",
		"extractor.ml_enabled":           "INVEXT_EXTRACTOR_ML_ENABLED",
		"extractor.ml_min_confidence":    "INVEXT_EXTRACTOR_ML_MIN_CONFIDENCE",
		"extractor.prefer_regex":         "INVEXT_EXTRACTOR_PREFER_REGEX",
		"extractor.ner_url":              "INVEXT_EXTRACTOR_NER_URL",
		"extractor.ner_timeout_secs":     "INVEXT_EXTRACTOR_NER_TIMEOUT_SECS",
		"batch.concurrency":              "INVEXT_BATCH_CONCURRENCY",
		"batch.output_format":            "INVEXT_BATCH_OUTPUT_FORMAT",
		"batch.output_dir":               "INVEXT_BATCH_OUTPUT_DIR",
		"cors.allowed_origins":           "INVEXT_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if INVEXT_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("INVEXT_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Extractor = ExtractorConfig{
		ConfidenceThreshold: v.GetFloat64("extractor.confidence_threshold"),
		LayoutEnabled:       v.GetBool("extractor.layout_enabled"),
		LayoutModelPath:     v.GetString("extractor.layout_model_path"),
		MLEnabled:           v.GetBool("extractor.ml_enabled"),
		MLMinConfidence:     v.GetFloat64("extractor.ml_min_confidence"),
		PreferRegex:         v.GetBool("extractor.prefer_regex"),
		NERURL:              v.GetString("extractor.ner_url"),
		NERTimeoutSecs:      v.GetInt("extractor.ner_timeout_secs"),
	}
	cfg.Batch = BatchConfig{
		Concurrency:  v.GetInt("batch.concurrency"),
		OutputFormat: v.GetString("batch.output_format"),
		OutputDir:    v.GetString("batch.output_dir"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges. Thresholds must sit in [0,1] and the
// batch concurrency must be positive.
func (c *Config) Validate() error {
	if c.Extractor.ConfidenceThreshold < 0 || c.Extractor.ConfidenceThreshold > 1 {
		return fmt.Errorf("%w: confidence_threshold %.2f outside [0,1]",
			domain.ErrInvalidConfig, c.Extractor.ConfidenceThreshold)
	}
	if c.Extractor.MLMinConfidence < 0 || c.Extractor.MLMinConfidence > 1 {
		return fmt.Errorf("%w: ml_min_confidence %.2f outside [0,1]",
			domain.ErrInvalidConfig, c.Extractor.MLMinConfidence)
	}
	if c.Extractor.MLEnabled && c.Extractor.NERURL == "" {
		return fmt.Errorf("%w: ml_enabled requires ner_url", domain.ErrInvalidConfig)
	}
	if c.Batch.Concurrency < 1 {
		return fmt.Errorf("%w: batch concurrency must be positive", domain.ErrInvalidConfig)
	}
	switch c.Batch.OutputFormat {
	case "csv", "xlsx":
	default:
		return fmt.Errorf("%w: batch output_format %q (want csv or xlsx)",
			domain.ErrInvalidConfig, c.Batch.OutputFormat)
	}
	return nil
}
