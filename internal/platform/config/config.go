package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	apperrors "clinote/internal/platform/errors"
)

const (
	GeneratorMock   = "mock"
	GeneratorOpenAI = "openai"
)

type Config struct {
	APIURL      string
	CatalogPath string
	Timeout     time.Duration
	LogLevel    string
	LogFile     string
	Server      ServerConfig
}

// ServerConfig drives the local reference note service.
type ServerConfig struct {
	Addr       string
	DBPath     string
	Generator  string
	CORSOrigin string
	MockDelay  time.Duration
	OpenAI     OpenAIConfig
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Load reads .env files (missing files are ignored) and builds defaults from the
// environment. Flags are expected to override the returned values.
func Load(envFiles ...string) Config {
	_ = godotenv.Load(envFiles...)

	return Config{
		APIURL:      getEnv("CLINOTE_API_URL", "http://localhost:8000"),
		CatalogPath: getEnv("CLINOTE_CATALOG", ""),
		Timeout:     getEnvDuration("CLINOTE_TIMEOUT", 0),
		LogLevel:    getEnv("CLINOTE_LOG_LEVEL", "info"),
		LogFile:     getEnv("CLINOTE_LOG_FILE", ""),
		Server: ServerConfig{
			Addr:       getEnv("CLINOTE_ADDR", "localhost:8000"),
			DBPath:     getEnv("CLINOTE_DB_PATH", filepath.Join(".clinote", "clinote.db")),
			Generator:  getEnv("CLINOTE_GENERATOR", GeneratorMock),
			CORSOrigin: getEnv("CLINOTE_CORS_ORIGIN", "http://localhost:3000"),
			MockDelay:  getEnvDuration("CLINOTE_MOCK_DELAY", 0),
			OpenAI: OpenAIConfig{
				APIKey:  getEnv("OPENAI_API_KEY", ""),
				Model:   getEnv("CLINOTE_OPENAI_MODEL", "gpt-3.5-turbo"),
				BaseURL: getEnv("OPENAI_BASE_URL", ""),
			},
		},
	}
}

// Validate checks the client side settings.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIURL) == "" {
		return fmt.Errorf("%w: api url is required", apperrors.ErrInvalidConfig)
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: api url %q must be absolute", apperrors.ErrInvalidConfig, c.APIURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must be non-negative", apperrors.ErrInvalidConfig)
	}
	return nil
}

// Validate checks the reference service settings.
func (c ServerConfig) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: listen address is required", apperrors.ErrInvalidConfig)
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("%w: db path is required", apperrors.ErrInvalidConfig)
	}
	switch c.Generator {
	case GeneratorMock:
	case GeneratorOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("%w: OPENAI_API_KEY is required for the openai generator", apperrors.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown generator %q (mock|openai)", apperrors.ErrInvalidConfig, c.Generator)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
