package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/alitto/pond/v2"

	"github.com/NethermindEth/prompt-studio/pkg/studio/content"
)

const (
	EmptyPromptMessage = "⚠️ Please enter a prompt first."
	FallbackMessage    = "Something went wrong."
)

var ErrBusy = errors.New("a request is already in flight")

type Dispatcher interface {
	Generate(ctx context.Context, prompt string, t content.Type) (string, error)
}

type Controller struct {
	dispatcher Dispatcher
	pool       pond.Pool

	mu       sync.Mutex
	prompt   string
	selected content.Type
	state    State
	// seq identifies the latest submitted request; settlements of older ones are dropped.
	seq uint64
}

type ControllerConfig struct {
	Dispatcher Dispatcher
	Pool       pond.Pool
}

func NewController(config *ControllerConfig) (*Controller, error) {
	if config == nil {
		return nil, errors.New("config is nil")
	}
	if config.Dispatcher == nil {
		return nil, errors.New("dispatcher is nil")
	}
	if config.Pool == nil {
		return nil, errors.New("pool is nil")
	}

	return &Controller{
		dispatcher: config.Dispatcher,
		pool:       config.Pool,
		selected:   content.TypeText,
		state:      State{Status: StatusIdle},
	}, nil
}

func (c *Controller) SetPrompt(prompt string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Busy() {
		return ErrBusy
	}

	c.prompt = prompt
	return nil
}

func (c *Controller) SetType(t content.Type) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", content.ErrUnknownType, t)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Busy() {
		return ErrBusy
	}

	c.selected = t
	return nil
}

// Submit starts a generation request for the current prompt and type. It
// returns ErrBusy while a request is in flight. When the prompt is empty the
// controller fails locally and returns a nil task.
func (c *Controller) Submit(ctx context.Context) (pond.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Busy() {
		return nil, ErrBusy
	}

	c.state = State{Status: StatusValidating, Type: c.selected}

	prompt := strings.TrimSpace(c.prompt)
	if prompt == "" {
		c.state = State{Status: StatusFailed, Type: c.selected, Error: EmptyPromptMessage}
		return nil, nil
	}

	c.seq++
	seq := c.seq
	t := c.selected
	c.state = State{Status: StatusLoading, Type: t}

	return c.pool.Submit(func() {
		c.run(ctx, seq, prompt, t)
	}), nil
}

func (c *Controller) run(ctx context.Context, seq uint64, prompt string, t content.Type) {
	var (
		result string
		err    error
	)

	defer func() {
		if r := recover(); r != nil {
			slog.Error("generation panicked", "type", t, "panic", r)
			c.settle(seq, t, "", errors.New(""))
			return
		}
		c.settle(seq, t, result, err)
	}()

	result, err = c.dispatcher.Generate(ctx, prompt, t)
}

func (c *Controller) settle(seq uint64, t content.Type, result string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		slog.Warn("dropping stale generation result", "seq", seq, "current", c.seq)
		return
	}

	if err != nil {
		message := err.Error()
		if message == "" {
			message = FallbackMessage
		}
		slog.Info("generation failed", "type", t, "error", err)
		c.state = State{Status: StatusFailed, Type: t, Error: message}
		return
	}

	c.state = State{Status: StatusSucceeded, Type: t, Result: result}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

func (c *Controller) Prompt() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.prompt
}

func (c *Controller) Type() content.Type {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.selected
}

func (c *Controller) Busy() bool {
	return c.State().Busy()
}
