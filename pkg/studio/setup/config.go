package setup

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
)

var ErrMissingCredential = errors.New("missing credential")

type Config struct {
	GeminiApiKey string `env:"GEMINI_API_KEY"`
	OpenAiApiKey string `env:"OPENAI_API_KEY"`

	TextProvider  string `env:"TEXT_PROVIDER" envDefault:"gemini"`
	ImageProvider string `env:"IMAGE_PROVIDER" envDefault:"pollinations"`

	GeminiTextModel  string `env:"GEMINI_TEXT_MODEL" envDefault:"gemini-2.5-flash"`
	ImagenModel      string `env:"IMAGEN_MODEL" envDefault:"imagen-4.0-generate-001"`
	OpenAiTextModel  string `env:"OPENAI_TEXT_MODEL" envDefault:"gpt-4o-mini"`
	OpenAiImageModel string `env:"OPENAI_IMAGE_MODEL" envDefault:"dall-e-3"`

	PollinationsBaseUrl string `env:"POLLINATIONS_BASE_URL" envDefault:"https://image.pollinations.ai/prompt/"`
	PollinationsProbe   bool   `env:"POLLINATIONS_PROBE" envDefault:"true"`

	ApiIpPort             string        `env:"API_IP_PORT" envDefault:":8080"`
	SessionCacheSize      int           `env:"SESSION_CACHE_SIZE" envDefault:"1000"`
	SessionTTL            time.Duration `env:"SESSION_TTL" envDefault:"1h"`
	MaxConcurrentRequests int           `env:"MAX_CONCURRENT_REQUESTS" envDefault:"16"`
}

// NewConfigFromEnv reads a .env file from the working directory when one
// exists, then the process environment. Variables already set win.
func NewConfigFromEnv() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}

	err := config.Validate()
	if err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	var result *multierror.Error

	c.TextProvider = strings.ToLower(strings.TrimSpace(c.TextProvider))
	c.ImageProvider = strings.ToLower(strings.TrimSpace(c.ImageProvider))

	if !lo.Contains(TextProviders, c.TextProvider) {
		result = multierror.Append(result, fmt.Errorf("%s must be one of %v, got %q", EnvTextProvider, TextProviders, c.TextProvider))
	}
	if !lo.Contains(ImageProviders, c.ImageProvider) {
		result = multierror.Append(result, fmt.Errorf("%s must be one of %v, got %q", EnvImageProvider, ImageProviders, c.ImageProvider))
	}

	if c.NeedsGemini() && strings.TrimSpace(c.GeminiApiKey) == "" {
		result = multierror.Append(result, fmt.Errorf("%w: %s is required", ErrMissingCredential, EnvGeminiApiKey))
	}
	if c.NeedsOpenAi() && strings.TrimSpace(c.OpenAiApiKey) == "" {
		result = multierror.Append(result, fmt.Errorf("%w: %s is required", ErrMissingCredential, EnvOpenAiApiKey))
	}

	if c.SessionCacheSize <= 0 {
		result = multierror.Append(result, fmt.Errorf("%s must be positive", EnvSessionCacheSize))
	}
	if c.SessionTTL <= 0 {
		result = multierror.Append(result, fmt.Errorf("%s must be positive", EnvSessionTTL))
	}
	if c.MaxConcurrentRequests <= 0 {
		result = multierror.Append(result, fmt.Errorf("%s must be positive", EnvMaxConcurrentRequests))
	}

	return result.ErrorOrNil()
}

func (c *Config) NeedsGemini() bool {
	return c.TextProvider == ProviderGemini || c.ImageProvider == ProviderImagen
}

func (c *Config) NeedsOpenAi() bool {
	return c.TextProvider == ProviderOpenAi || c.ImageProvider == ProviderOpenAi
}
