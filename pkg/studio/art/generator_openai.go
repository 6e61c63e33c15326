package art

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const (
	DefaultOpenAiModel = openai.CreateImageModelDallE3

	openAiMimeType = "image/png"
)

type OpenAiOptions struct {
	ApiKey     string
	Model      string
	BaseUrl    string
	HttpClient *http.Client
}

type OpenAiGenerator struct {
	model  string
	client *openai.Client
}

var _ ArtGenerator = (*OpenAiGenerator)(nil)

func NewOpenAiGenerator(opts OpenAiOptions) (*OpenAiGenerator, error) {
	if strings.TrimSpace(opts.ApiKey) == "" {
		return nil, ErrMissingApiKey
	}

	if opts.Model == "" {
		opts.Model = DefaultOpenAiModel
	}

	config := openai.DefaultConfig(opts.ApiKey)
	if opts.BaseUrl != "" {
		config.BaseURL = opts.BaseUrl
	}
	if opts.HttpClient != nil {
		config.HTTPClient = opts.HttpClient
	}

	return &OpenAiGenerator{
		model:  opts.Model,
		client: openai.NewClientWithConfig(config),
	}, nil
}

func (g *OpenAiGenerator) Name() string {
	return "openai"
}

func (g *OpenAiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	req := openai.ImageRequest{
		Prompt:         prompt,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
		N:              1,
		Model:          g.model,
	}

	resp, err := g.client.CreateImage(ctx, req)
	if err != nil {
		slog.Error("error generating image from openai", "model", g.model, "error", err)
		return "", wrapProviderError(err)
	}

	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return "", wrapProviderError(ErrNoImages)
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return "", wrapProviderError(fmt.Errorf("failed to decode image data: %w", err))
	}

	return DataUri(openAiMimeType, data), nil
}
