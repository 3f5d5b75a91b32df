package config

import "time"

type TranslationConfig struct {
	// LengthTolerance is the rune-length difference under which an output that contains the input
	// (or is contained by it) counts as an echo.
	LengthTolerance int `validate:"gte=0,lte=50"`
	// ShortOutputRunes bounds the wrong-script check: outputs at most this long that lack the target
	// script but carry the source script are rejected.
	ShortOutputRunes int `validate:"gte=1"`
}

type Config struct {
	Env  string `validate:"required"`
	Port string `validate:"required,numeric"`

	// DatabaseURL is optional. Without it student context falls back to the default snapshot and
	// transcripts are not stored.
	DatabaseURL string

	// HuggingFaceAPIKey gates every provider call.
	HuggingFaceAPIKey string
	InferenceBaseURL  string `validate:"required,url"`
	ChatBaseURL       string `validate:"required,url"`
	CatalogPath       string

	ProviderTimeout time.Duration `validate:"gt=0"`
	ProviderRetries int           `validate:"gte=0,lte=5"`
	HistoryLimit    int           `validate:"gte=1,lte=50"`

	Translation TranslationConfig

	MaxRequestBytes int64         `validate:"gt=0"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
}

func (c *Config) ProvidersEnabled() bool {
	return c != nil && c.HuggingFaceAPIKey != ""
}
