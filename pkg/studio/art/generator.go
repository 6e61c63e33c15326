package art

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/NethermindEth/prompt-studio/pkg/studio/content"
)

// ArtGenerator turns a prompt into an image URI: a remote URL or a data URI.
type ArtGenerator interface {
	content.Generator
	Name() string
}

var (
	ErrMissingApiKey = errors.New("api key is required")
	ErrEmptyPrompt   = errors.New("prompt cannot be empty")
	ErrNoImages      = errors.New("image generation failed, no images were returned")
	ErrUnknown       = errors.New("an unknown error occurred while generating content")
)

func DataUri(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

func wrapProviderError(err error) error {
	if err == nil || err.Error() == "" {
		return ErrUnknown
	}

	return fmt.Errorf("failed to generate content: %w", err)
}
