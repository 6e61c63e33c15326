package text

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/NethermindEth/prompt-studio/pkg/studio/content"
)

const DefaultGeminiModel = "gemini-2.5-flash"

// ContentModels is the part of genai.Models used for text completion.
type ContentModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type GeminiGenerator struct {
	model  string
	models ContentModels
}

var _ content.Generator = (*GeminiGenerator)(nil)

// NewGenaiClient creates a Gemini API client. The key is checked here so a
// missing credential fails at startup instead of on the first request.
func NewGenaiClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingApiKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return client, nil
}

func NewGeminiGenerator(models ContentModels, model string) (*GeminiGenerator, error) {
	if models == nil {
		return nil, errors.New("models is nil")
	}

	if model == "" {
		model = DefaultGeminiModel
	}

	return &GeminiGenerator{
		model:  model,
		models: models,
	}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		slog.Error("error generating content from gemini", "model", g.model, "error", err)
		return "", wrapProviderError(err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", wrapProviderError(errors.New("no response candidates returned"))
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		if candidate.FinishReason != "" {
			return "", wrapProviderError(fmt.Errorf("empty response content (%s)", candidate.FinishReason))
		}
		return "", wrapProviderError(errors.New("empty response content"))
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}

	return sb.String(), nil
}

func (g *GeminiGenerator) Model() string {
	return g.model
}
