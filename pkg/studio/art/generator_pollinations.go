package art

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

const DefaultPollinationsBaseUrl = "https://image.pollinations.ai/prompt/"

var ErrPollinations = errors.New("failed to generate image using Pollinations.ai")

type PollinationsOptions struct {
	BaseUrl    string
	HttpClient *http.Client
	// SkipProbe returns the rendered URL without checking that it is reachable.
	SkipProbe bool
}

// PollinationsGenerator does not fetch the image. The URL it returns is
// rendered lazily by whoever dereferences it.
type PollinationsGenerator struct {
	baseUrl    string
	httpClient *http.Client
	skipProbe  bool
}

var _ ArtGenerator = (*PollinationsGenerator)(nil)

func NewPollinationsGenerator(opts PollinationsOptions) *PollinationsGenerator {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultPollinationsBaseUrl
	}
	if !strings.HasSuffix(opts.BaseUrl, "/") {
		opts.BaseUrl += "/"
	}
	if opts.HttpClient == nil {
		opts.HttpClient = http.DefaultClient
	}

	return &PollinationsGenerator{
		baseUrl:    opts.BaseUrl,
		httpClient: opts.HttpClient,
		skipProbe:  opts.SkipProbe,
	}
}

func (g *PollinationsGenerator) Name() string {
	return "pollinations"
}

func (g *PollinationsGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	imageUrl := g.BuildUrl(prompt)

	if g.skipProbe {
		return imageUrl, nil
	}

	if err := g.Probe(ctx, imageUrl); err != nil {
		slog.Warn("pollinations probe failed", "url", imageUrl, "error", err)
		return "", ErrPollinations
	}

	return imageUrl, nil
}

func (g *PollinationsGenerator) BuildUrl(prompt string) string {
	return g.baseUrl + EncodeUriComponent(prompt)
}

// Probe checks that url answers a HEAD request with a 2xx status.
func (g *PollinationsGenerator) Probe(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create HEAD request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to perform HEAD request: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil
}
