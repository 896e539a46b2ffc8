package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Sentiment backends.
const (
	SentimentModel   = "model"
	SentimentGemini  = "gemini"
	SentimentOpenAI  = "openai"
	SentimentLexicon = "lexicon"
)

// Storage backends.
const (
	StorageMemory    = "memory"
	StorageSQLite    = "sqlite"
	StoragePostgres  = "postgres"
	StorageFirestore = "firestore"
)

type Config struct {
	Port string `yaml:"port"`

	// Seed for reply selection; 0 means seeded from the clock.
	Seed uint64 `yaml:"seed"`

	// ContentPath points to a YAML response catalog. Empty uses the
	// embedded one.
	ContentPath string `yaml:"content_path"`

	LogLevel string `yaml:"log_level"`

	Sentiment SentimentConfig `yaml:"sentiment"`
	Storage   StorageConfig   `yaml:"storage"`
}

type SentimentConfig struct {
	Backend   string `yaml:"backend"` // model, gemini, openai, lexicon
	ModelPath string `yaml:"model_path"`

	GeminiAPIKey string `yaml:"gemini_api_key"`
	GeminiModel  string `yaml:"gemini_model"`

	OpenAIAPIKey string `yaml:"openai_api_key"`
	OpenAIModel  string `yaml:"openai_model"`

	Timeout time.Duration `yaml:"timeout"`
}

type StorageConfig struct {
	Backend    string `yaml:"backend"` // memory, sqlite, postgres, firestore
	DSN        string `yaml:"dsn"`
	GCPProject string `yaml:"gcp_project"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Port:     "8080",
		LogLevel: "info",
		Sentiment: SentimentConfig{
			Backend:     SentimentModel,
			ModelPath:   "sentiment_model.json",
			GeminiModel: "gemini-2.5-flash-lite",
			OpenAIModel: "gpt-4o-mini",
			Timeout:     5 * time.Second,
		},
		Storage: StorageConfig{
			Backend: StorageMemory,
		},
	}
}

// Load builds the config: defaults, then the YAML file at path (if any),
// then environment overrides. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Port = getEnv("HAVEN_PORT", c.Port)
	c.ContentPath = getEnv("HAVEN_CONTENT_PATH", c.ContentPath)
	c.LogLevel = getEnv("HAVEN_LOG_LEVEL", c.LogLevel)

	if v := os.Getenv("HAVEN_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("HAVEN_SEED: %w", err)
		}
		c.Seed = seed
	}

	s := &c.Sentiment
	s.Backend = getEnv("HAVEN_SENTIMENT_BACKEND", s.Backend)
	s.ModelPath = getEnv("HAVEN_MODEL_PATH", s.ModelPath)
	s.GeminiAPIKey = getEnv("GEMINI_API_KEY", s.GeminiAPIKey)
	s.GeminiModel = getEnv("HAVEN_GEMINI_MODEL", s.GeminiModel)
	s.OpenAIAPIKey = getEnv("OPENAI_API_KEY", s.OpenAIAPIKey)
	s.OpenAIModel = getEnv("HAVEN_OPENAI_MODEL", s.OpenAIModel)
	if v := os.Getenv("HAVEN_SENTIMENT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("HAVEN_SENTIMENT_TIMEOUT: %w", err)
		}
		s.Timeout = d
	}

	st := &c.Storage
	st.Backend = getEnv("HAVEN_STORAGE_BACKEND", st.Backend)
	st.DSN = getEnv("HAVEN_STORAGE_DSN", st.DSN)
	st.GCPProject = getEnv("HAVEN_GCP_PROJECT", st.GCPProject)

	return nil
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.Sentiment.Backend) {
	case SentimentModel, SentimentGemini, SentimentOpenAI, SentimentLexicon:
	default:
		errs = append(errs, fmt.Errorf("unknown sentiment backend %q", c.Sentiment.Backend))
	}
	if c.Sentiment.Timeout <= 0 {
		errs = append(errs, errors.New("sentiment timeout must be positive"))
	}

	switch strings.ToLower(c.Storage.Backend) {
	case StorageMemory:
	case StorageSQLite, StoragePostgres:
		if c.Storage.DSN == "" {
			errs = append(errs, fmt.Errorf("storage backend %s requires a dsn", c.Storage.Backend))
		}
	case StorageFirestore:
		if c.Storage.GCPProject == "" {
			errs = append(errs, errors.New("storage backend firestore requires gcp_project"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q", c.Storage.Backend))
	}

	if c.Port == "" {
		errs = append(errs, errors.New("port must be set"))
	}

	return errors.Join(errs...)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
