package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

func defaultConfig() *Config {
	return &Config{
		Env:              "development",
		Port:             "8080",
		InferenceBaseURL: "https://api-inference.huggingface.co/models",
		ChatBaseURL:      "https://router.huggingface.co/v1",
		ProviderTimeout:  25 * time.Second,
		ProviderRetries:  1,
		HistoryLimit:     10,
		Translation: TranslationConfig{
			LengthTolerance:  3,
			ShortOutputRunes: 60,
		},
		MaxRequestBytes: 1 << 20,
		ShutdownTimeout: 15 * time.Second,
	}
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := defaultConfig()

	if v := env("LOG_MODE"); v != "" {
		cfg.Env = v
	}
	if v := env("PORT"); v != "" {
		cfg.Port = v
	}
	cfg.DatabaseURL = env("DATABASE_URL")
	cfg.HuggingFaceAPIKey = env("HUGGINGFACE_API_KEY")
	if v := env("INFERENCE_BASE_URL"); v != "" {
		cfg.InferenceBaseURL = strings.TrimRight(v, "/")
	}
	if v := env("CHAT_BASE_URL"); v != "" {
		cfg.ChatBaseURL = strings.TrimRight(v, "/")
	}
	cfg.CatalogPath = env("CATALOG_PATH")

	var err error
	if cfg.ProviderTimeout, err = durationEnv("PROVIDER_TIMEOUT", cfg.ProviderTimeout); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = durationEnv("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout); err != nil {
		return nil, err
	}
	if cfg.ProviderRetries, err = intEnv("PROVIDER_RETRIES", cfg.ProviderRetries); err != nil {
		return nil, err
	}
	if cfg.HistoryLimit, err = intEnv("HISTORY_LIMIT", cfg.HistoryLimit); err != nil {
		return nil, err
	}
	if cfg.Translation.LengthTolerance, err = intEnv("TRANSLATION_LENGTH_TOLERANCE", cfg.Translation.LengthTolerance); err != nil {
		return nil, err
	}
	if cfg.Translation.ShortOutputRunes, err = intEnv("TRANSLATION_SHORT_OUTPUT", cfg.Translation.ShortOutputRunes); err != nil {
		return nil, err
	}
	maxBytes, err := intEnv("MAX_REQUEST_BYTES", int(cfg.MaxRequestBytes))
	if err != nil {
		return nil, err
	}
	cfg.MaxRequestBytes = int64(maxBytes)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func env(name string) string {
	return strings.TrimSpace(os.Getenv(name))
}

func intEnv(name string, def int) (int, error) {
	v := env(name)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return i, nil
}

// durationEnv accepts Go durations ("30s") or plain seconds ("30").
func durationEnv(name string, def time.Duration) (time.Duration, error) {
	v := env(name)
	if v == "" {
		return def, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return d, nil
}
