package config

import (
	"errors"
	"fmt"
	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"os"
	"time"
)

// EnvFileName is the optional dotenv file read before parsing the environment.
const EnvFileName = "server.env"

// Config holds the application configuration parameters.
// Each field corresponds to an expected environment variable.
type Config struct {
	EnvLogsLevel        string        `env:"LOG_LEVEL" envDefault:"info"`                  // Log level for the application (e.g., DEBUG, INFO)
	EnvLogFileName      string        `env:"LOG_FILE_NAME" envDefault:"server.log"`        // File's name for log (e.g., server.log)
	HTTPServer          string        `env:"HTTP_SERVER" envDefault:":3000"`               // Address of the HTTP server
	UploadDir           string        `env:"UPLOAD_DIR" envDefault:"uploads"`              // Directory for transient uploads
	MaxUploadMB         int           `env:"MAX_UPLOAD_MB" envDefault:"0"`                 // Largest accepted attachment in megabytes, 0 means unlimited
	GenerativeName      string        `env:"GENERATIVE_NAME" envDefault:"gemini"`          // Name of the generative AI provider (e.g., gemini, openai)
	GenerativeApiKey    string        `env:"GENERATIVE_API_KEY"`                           // API key of the generative AI provider
	GeminiApiKey        string        `env:"GEMINI_API_KEY"`                               // Fallback API key when GENERATIVE_API_KEY is empty
	GenerativeModel     string        `env:"GENERATIVE_MODEL" envDefault:"gemini-2.5-pro"` // Model name (e.g., gemini-2.5-pro)
	GenerativeMaxTokens int           `env:"GENERATIVE_MAX_TOKENS" envDefault:"0"`         // Max output tokens, 0 keeps the provider default
	GenerativeTemp      float64       `env:"GENERATIVE_TEMPERATURE" envDefault:"-1"`       // Temperature in [0,1], negative keeps the provider default
	GenerativeTimeout   time.Duration `env:"GENERATIVE_TIMEOUT" envDefault:"0s"`           // Bound of one model call, 0 means none
	ShutdownTimeout     time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`             // Grace period of the HTTP server shutdown
	MetricsNamespace    string        `env:"METRICS_NAMESPACE" envDefault:"genapi"`        // Prefix of the prometheus metrics
}

// NewConfig initializes a new Config instance by loading environment variables from an optional
// server.env file and the process environment.
// It returns a pointer to the Config struct and an error if any of the variables are missing or invalid.
func NewConfig() (*Config, error) {
	return Load(EnvFileName)
}

// Load reads the given dotenv files (missing files are skipped) and parses the environment.
func Load(files ...string) (*Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				logrus.Infof("env file %s was not found, using process environment", f)
				continue
			}
			return nil, fmt.Errorf("new load .env: %w", err)
		}
	}

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if config.GenerativeApiKey == "" {
		config.GenerativeApiKey = config.GeminiApiKey
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the values that have no usable default.
func (c *Config) Validate() error {
	if c.GenerativeApiKey == "" {
		return errors.New("GENERATIVE_API_KEY (or GEMINI_API_KEY) must be set")
	}
	if c.GenerativeModel == "" {
		return errors.New("GENERATIVE_MODEL can't be empty")
	}
	if c.MaxUploadMB < 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must not be negative: %d", c.MaxUploadMB)
	}
	return nil
}

// MaxUploadBytes returns the attachment size limit in bytes, 0 when uploads are unlimited.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}
