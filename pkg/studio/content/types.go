package content

import (
	"errors"
	"fmt"
	"strings"
)

type Type string

const (
	TypeText  Type = "text"
	TypeImage Type = "image"
)

var ErrUnknownType = errors.New("unknown content type")

func (t Type) String() string {
	return string(t)
}

func (t Type) Valid() bool {
	return t == TypeText || t == TypeImage
}

// ParseType parses user input into a Type. Anything other than "text" or
// "image" (case-insensitive, surrounding whitespace ignored) is rejected.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
	}

	return t, nil
}
