package setup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/NethermindEth/prompt-studio/pkg/studio/debug"
)

type SetupResult struct {
	GeminiApiKey string
	OpenAiApiKey string

	TextProvider  string
	ImageProvider string

	GeminiTextModel  string
	ImagenModel      string
	OpenAiTextModel  string
	OpenAiImageModel string

	PollinationsBaseUrl string
	PollinationsProbe   bool

	ApiIpPort             string
	SessionCacheSize      int
	SessionTTL            time.Duration
	MaxConcurrentRequests int
}

// Setup is the explicit bootstrap step: it reads and validates the
// configuration once, before anything is served.
func Setup(ctx context.Context) (*SetupResult, error) {
	config, err := NewConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to get config from env: %w", err)
	}

	setupResult := generateSetup(config)

	slog.Info("loaded setup", "textProvider", setupResult.TextProvider, "imageProvider", setupResult.ImageProvider)

	if debug.IsDebugShowSetup() {
		slog.Info("setup output", "setupOutput", setupResult)
	}

	return setupResult, nil
}

func generateSetup(config *Config) *SetupResult {
	return &SetupResult{
		GeminiApiKey: config.GeminiApiKey,
		OpenAiApiKey: config.OpenAiApiKey,

		TextProvider:  config.TextProvider,
		ImageProvider: config.ImageProvider,

		GeminiTextModel:  config.GeminiTextModel,
		ImagenModel:      config.ImagenModel,
		OpenAiTextModel:  config.OpenAiTextModel,
		OpenAiImageModel: config.OpenAiImageModel,

		PollinationsBaseUrl: config.PollinationsBaseUrl,
		PollinationsProbe:   config.PollinationsProbe,

		ApiIpPort:             config.ApiIpPort,
		SessionCacheSize:      config.SessionCacheSize,
		SessionTTL:            config.SessionTTL,
		MaxConcurrentRequests: config.MaxConcurrentRequests,
	}
}

// LogValue keeps credentials out of logs.
func (r *SetupResult) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("geminiApiKey", redact(r.GeminiApiKey)),
		slog.String("openAiApiKey", redact(r.OpenAiApiKey)),
		slog.String("textProvider", r.TextProvider),
		slog.String("imageProvider", r.ImageProvider),
		slog.String("geminiTextModel", r.GeminiTextModel),
		slog.String("imagenModel", r.ImagenModel),
		slog.String("openAiTextModel", r.OpenAiTextModel),
		slog.String("openAiImageModel", r.OpenAiImageModel),
		slog.String("pollinationsBaseUrl", r.PollinationsBaseUrl),
		slog.Bool("pollinationsProbe", r.PollinationsProbe),
		slog.String("apiIpPort", r.ApiIpPort),
		slog.Int("sessionCacheSize", r.SessionCacheSize),
		slog.Duration("sessionTTL", r.SessionTTL),
		slog.Int("maxConcurrentRequests", r.MaxConcurrentRequests),
	)
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return "[REDACTED]"
}
