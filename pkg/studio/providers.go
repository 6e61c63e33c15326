package studio

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"google.golang.org/genai"

	"github.com/NethermindEth/prompt-studio/pkg/studio/art"
	"github.com/NethermindEth/prompt-studio/pkg/studio/content"
	"github.com/NethermindEth/prompt-studio/pkg/studio/setup"
	"github.com/NethermindEth/prompt-studio/pkg/studio/text"
)

// newGenerators builds the text generator and the single active image
// generator named by the setup. One genai client is shared when both use Gemini.
func newGenerators(ctx context.Context, setupResult *setup.SetupResult) (content.Generator, content.Generator, error) {
	var genaiClient *genai.Client
	if setupResult.TextProvider == setup.ProviderGemini || setupResult.ImageProvider == setup.ProviderImagen {
		client, err := text.NewGenaiClient(ctx, setupResult.GeminiApiKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		genaiClient = client
	}

	textGenerator, err := newTextGenerator(setupResult, genaiClient)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create text generator: %w", err)
	}

	imageGenerator, err := newImageGenerator(setupResult, genaiClient)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create image generator: %w", err)
	}

	slog.Info("generators ready", "text", setupResult.TextProvider, "image", imageGenerator.Name())

	return textGenerator, imageGenerator, nil
}

func newTextGenerator(setupResult *setup.SetupResult, genaiClient *genai.Client) (content.Generator, error) {
	switch setupResult.TextProvider {
	case setup.ProviderGemini:
		return text.NewGeminiGenerator(genaiClient.Models, setupResult.GeminiTextModel)
	case setup.ProviderOpenAi:
		return text.NewOpenAiGenerator(text.OpenAiOptions{
			ApiKey: setupResult.OpenAiApiKey,
			Model:  setupResult.OpenAiTextModel,
		})
	default:
		return nil, fmt.Errorf("unknown text provider: %s", setupResult.TextProvider)
	}
}

func newImageGenerator(setupResult *setup.SetupResult, genaiClient *genai.Client) (art.ArtGenerator, error) {
	switch setupResult.ImageProvider {
	case setup.ProviderPollinations:
		return art.NewPollinationsGenerator(art.PollinationsOptions{
			BaseUrl:    setupResult.PollinationsBaseUrl,
			HttpClient: http.DefaultClient,
			SkipProbe:  !setupResult.PollinationsProbe,
		}), nil
	case setup.ProviderImagen:
		return art.NewImagenGenerator(genaiClient.Models, setupResult.ImagenModel)
	case setup.ProviderOpenAi:
		return art.NewOpenAiGenerator(art.OpenAiOptions{
			ApiKey: setupResult.OpenAiApiKey,
			Model:  setupResult.OpenAiImageModel,
		})
	default:
		return nil, fmt.Errorf("unknown image provider: %s", setupResult.ImageProvider)
	}
}
