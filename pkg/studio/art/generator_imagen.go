package art

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/genai"
)

const (
	DefaultImagenModel = "imagen-4.0-generate-001"

	imagenMimeType    = "image/jpeg"
	imagenAspectRatio = "1:1"
)

// ImageModels is the part of genai.Models used for image synthesis.
type ImageModels interface {
	GenerateImages(ctx context.Context, model string, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

type ImagenGenerator struct {
	model  string
	models ImageModels
}

var _ ArtGenerator = (*ImagenGenerator)(nil)

func NewImagenGenerator(models ImageModels, model string) (*ImagenGenerator, error) {
	if models == nil {
		return nil, errors.New("models is nil")
	}

	if model == "" {
		model = DefaultImagenModel
	}

	return &ImagenGenerator{
		model:  model,
		models: models,
	}, nil
}

func (g *ImagenGenerator) Name() string {
	return "imagen"
}

func (g *ImagenGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.models.GenerateImages(ctx, g.model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		OutputMIMEType: imagenMimeType,
		AspectRatio:    imagenAspectRatio,
	})
	if err != nil {
		slog.Error("error generating image from imagen", "model", g.model, "error", err)
		return "", wrapProviderError(err)
	}

	if resp == nil || len(resp.GeneratedImages) == 0 {
		return "", wrapProviderError(ErrNoImages)
	}

	image := resp.GeneratedImages[0].Image
	if image == nil || len(image.ImageBytes) == 0 {
		return "", wrapProviderError(ErrNoImages)
	}

	mimeType := image.MIMEType
	if mimeType == "" {
		mimeType = imagenMimeType
	}

	return DataUri(mimeType, image.ImageBytes), nil
}
