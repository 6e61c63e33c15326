package text

import (
	"errors"
	"fmt"
)

var (
	ErrMissingApiKey = errors.New("api key is required")
	ErrUnknown       = errors.New("an unknown error occurred while generating content")
)

func wrapProviderError(err error) error {
	if err == nil || err.Error() == "" {
		return ErrUnknown
	}

	return fmt.Errorf("failed to generate content: %w", err)
}
