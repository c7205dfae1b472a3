package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration. It is built once at
// process start and treated as immutable for the process lifetime.
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	CORS     CORSConfig
	Pipeline PipelineConfig
	OCR      BackendConfig
	LLM      BackendConfig

	// Location is the resolved Pipeline.Timezone.
	Location *time.Location
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

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// PipelineConfig holds the timezone and the per-stage confidence gates.
// Thresholds are fixed for the lifetime of a process.
type PipelineConfig struct {
	Timezone                   string  `mapstructure:"timezone"`
	OCRMinConfidence           float64 `mapstructure:"ocr_min_confidence"`
	ExtractionMinConfidence    float64 `mapstructure:"extraction_min_confidence"`
	NormalizationMinConfidence float64 `mapstructure:"normalization_min_confidence"`
}

// BackendConfig holds settings for a single external collaborator
// (OCR engine or LLM completion API).
type BackendConfig struct {
	Provider    string `mapstructure:"provider"`
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// Load reads configuration from environment variables with the SCHEDO_
// prefix and validates the configured timezone.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SCHEDO")
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

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Pipeline defaults
	v.SetDefault("pipeline.timezone", "Asia/Kolkata")
	v.SetDefault("pipeline.ocr_min_confidence", 0.5)
	v.SetDefault("pipeline.extraction_min_confidence", 0.6)
	v.SetDefault("pipeline.normalization_min_confidence", 0.7)

	// OCR backend defaults
	v.SetDefault("ocr.provider", "gemini")
	v.SetDefault("ocr.api_key", "")
	v.SetDefault("ocr.model", "gemini-2.0-flash")
	v.SetDefault("ocr.timeout_secs", 60)

	// LLM backend defaults
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "gemini-2.0-flash")
	v.SetDefault("llm.timeout_secs", 60)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                            "SCHEDO_SERVER_PORT",
		"server.read_timeout":                    "SCHEDO_SERVER_READ_TIMEOUT",
		"server.write_timeout":                   "SCHEDO_SERVER_WRITE_TIMEOUT",
		"server.environment":                     "SCHEDO_SERVER_ENVIRONMENT",
		"log.level":                              "SCHEDO_LOG_LEVEL",
		"log.format":                             "SCHEDO_LOG_FORMAT",
		"cors.allowed_origins":                   "SCHEDO_CORS_ALLOWED_ORIGINS",
		"pipeline.timezone":                      "SCHEDO_PIPELINE_TIMEZONE",
		"pipeline.ocr_min_confidence":            "SCHEDO_PIPELINE_OCR_MIN_CONFIDENCE",
		"pipeline.extraction_min_confidence":     "SCHEDO_PIPELINE_EXTRACTION_MIN_CONFIDENCE",
		"pipeline.normalization_min_confidence":  "SCHEDO_PIPELINE_NORMALIZATION_MIN_CONFIDENCE",
		"ocr.provider":                           "SCHEDO_OCR_PROVIDER",
		"ocr.api_key":                            "SCHEDO_OCR_API_KEY",
		"ocr.model":                              "SCHEDO_OCR_MODEL",
		"ocr.timeout_secs":                       "SCHEDO_OCR_TIMEOUT_SECS",
		"llm.provider":                           "SCHEDO_LLM_PROVIDER",
		"llm.api_key":                            "SCHEDO_LLM_API_KEY",
		"llm.model":                              "SCHEDO_LLM_MODEL",
		"llm.timeout_secs":                       "SCHEDO_LLM_TIMEOUT_SECS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if SCHEDO_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("SCHEDO_SERVER_PORT") == "" {
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

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Pipeline = PipelineConfig{
		Timezone:                   v.GetString("pipeline.timezone"),
		OCRMinConfidence:           v.GetFloat64("pipeline.ocr_min_confidence"),
		ExtractionMinConfidence:    v.GetFloat64("pipeline.extraction_min_confidence"),
		NormalizationMinConfidence: v.GetFloat64("pipeline.normalization_min_confidence"),
	}
	cfg.OCR = BackendConfig{
		Provider:    v.GetString("ocr.provider"),
		APIKey:      v.GetString("ocr.api_key"),
		Model:       v.GetString("ocr.model"),
		TimeoutSecs: v.GetInt("ocr.timeout_secs"),
	}
	cfg.LLM = BackendConfig{
		Provider:    v.GetString("llm.provider"),
		APIKey:      v.GetString("llm.api_key"),
		Model:       v.GetString("llm.model"),
		TimeoutSecs: v.GetInt("llm.timeout_secs"),
	}

	loc, err := time.LoadLocation(cfg.Pipeline.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid pipeline timezone %q: %w", cfg.Pipeline.Timezone, err)
	}
	cfg.Location = loc

	return cfg, nil
}
