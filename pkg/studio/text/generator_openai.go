package text

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/NethermindEth/prompt-studio/pkg/studio/content"
)

const DefaultOpenAiModel = openai.GPT4oMini

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

var _ content.Generator = (*OpenAiGenerator)(nil)

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

func (g *OpenAiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		slog.Error("error generating content from openai", "model", g.model, "error", err)
		return "", wrapProviderError(err)
	}

	if len(resp.Choices) == 0 {
		return "", wrapProviderError(errors.New("no response choices returned"))
	}

	return resp.Choices[0].Message.Content, nil
}

func (g *OpenAiGenerator) Model() string {
	return g.model
}
