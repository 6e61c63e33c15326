package content

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// Dispatcher routes a prompt to the generator registered for its content type.
type Dispatcher struct {
	generators map[Type]Generator
}

func NewDispatcher(generators map[Type]Generator) (*Dispatcher, error) {
	if generators == nil {
		return nil, errors.New("generators is nil")
	}

	for _, t := range []Type{TypeText, TypeImage} {
		if generators[t] == nil {
			return nil, fmt.Errorf("no generator registered for %q", t)
		}
	}

	for t := range generators {
		if !t.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
		}
	}

	copied := make(map[Type]Generator, len(generators))
	for t, g := range generators {
		copied[t] = g
	}

	return &Dispatcher{generators: copied}, nil
}

// Generate panics on a type that was never registered: callers parse user
// input with ParseType first, so reaching here with one is a bug.
func (d *Dispatcher) Generate(ctx context.Context, prompt string, t Type) (string, error) {
	generator, ok := d.generators[t]
	if !ok {
		panic(fmt.Sprintf("content: no generator for type %q", t))
	}

	return generator.Generate(ctx, prompt)
}

func (d *Dispatcher) Types() []Type {
	types := lo.Keys(d.generators)
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
