package controller_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/alitto/pond/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NethermindEth/prompt-studio/pkg/studio/content"
	"github.com/NethermindEth/prompt-studio/pkg/studio/controller"
)

type mockDispatcher struct {
	calls    atomic.Int32
	generate func(ctx context.Context, prompt string, t content.Type) (string, error)
}

func (m *mockDispatcher) Generate(ctx context.Context, prompt string, t content.Type) (string, error) {
	m.calls.Add(1)
	return m.generate(ctx, prompt, t)
}

func setupTestController(t *testing.T, dispatcher *mockDispatcher) *controller.Controller {
	pool := pond.NewPool(1)
	t.Cleanup(pool.StopAndWait)

	c, err := controller.NewController(&controller.ControllerConfig{
		Dispatcher: dispatcher,
		Pool:       pool,
	})
	require.NoError(t, err)
	return c
}

func submitAndWait(t *testing.T, c *controller.Controller) {
	task, err := c.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, task)
	require.NoError(t, task.Wait())
}

func TestNewController(t *testing.T) {
	pool := pond.NewPool(1)
	defer pool.StopAndWait()

	tests := []struct {
		name    string
		config  *controller.ControllerConfig
		wantErr bool
	}{
		{name: "valid config", config: &controller.ControllerConfig{Dispatcher: &mockDispatcher{}, Pool: pool}},
		{name: "nil config", config: nil, wantErr: true},
		{name: "nil dispatcher", config: &controller.ControllerConfig{Pool: pool}, wantErr: true},
		{name: "nil pool", config: &controller.ControllerConfig{Dispatcher: &mockDispatcher{}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := controller.NewController(tt.config)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, c)
			} else {
				require.NoError(t, err)
				assert.Equal(t, controller.State{Status: controller.StatusIdle}, c.State())
				assert.Equal(t, content.TypeText, c.Type())
			}
		})
	}
}

func TestController_EmptyPrompt(t *testing.T) {
	for _, prompt := range []string{"", "   ", "\n\t"} {
		for _, typ := range []content.Type{content.TypeText, content.TypeImage} {
			dispatcher := &mockDispatcher{}
			c := setupTestController(t, dispatcher)

			require.NoError(t, c.SetPrompt(prompt))
			require.NoError(t, c.SetType(typ))

			task, err := c.Submit(context.Background())
			require.NoError(t, err)
			assert.Nil(t, task)

			state := c.State()
			assert.Equal(t, controller.StatusFailed, state.Status)
			assert.Equal(t, "⚠️ Please enter a prompt first.", state.Error)
			assert.Empty(t, state.Result)
			assert.Equal(t, int32(0), dispatcher.calls.Load())
		}
	}
}

func TestController_TextSuccess(t *testing.T) {
	dispatcher := &mockDispatcher{
		generate: func(ctx context.Context, prompt string, typ content.Type) (string, error) {
			assert.Equal(t, "A serene forest", prompt)
			assert.Equal(t, content.TypeText, typ)
			return "A misty valley...", nil
		},
	}
	c := setupTestController(t, dispatcher)

	require.NoError(t, c.SetPrompt("  A serene forest "))
	submitAndWait(t, c)

	assert.Equal(t, controller.State{
		Status: controller.StatusSucceeded,
		Type:   content.TypeText,
		Result: "A misty valley...",
	}, c.State())
	assert.False(t, c.Busy())
}

func TestController_Failure(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{name: "error with message", err: errors.New("failed to generate content: boom"), message: "failed to generate content: boom"},
		{name: "error without message", err: errors.New(""), message: "Something went wrong."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := setupTestController(t, &mockDispatcher{
				generate: func(ctx context.Context, prompt string, typ content.Type) (string, error) {
					return "", tt.err
				},
			})

			require.NoError(t, c.SetPrompt("prompt"))
			submitAndWait(t, c)

			state := c.State()
			assert.Equal(t, controller.StatusFailed, state.Status)
			assert.Equal(t, tt.message, state.Error)
			assert.Empty(t, state.Result)
		})
	}
}

func TestController_PanicIsContained(t *testing.T) {
	c := setupTestController(t, &mockDispatcher{
		generate: func(ctx context.Context, prompt string, typ content.Type) (string, error) {
			panic("unknown content type")
		},
	})

	require.NoError(t, c.SetPrompt("prompt"))
	submitAndWait(t, c)

	assert.Equal(t, controller.StatusFailed, c.State().Status)
	assert.Equal(t, controller.FallbackMessage, c.State().Error)
}

func TestController_BusyWhileLoading(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	dispatcher := &mockDispatcher{
		generate: func(ctx context.Context, prompt string, typ content.Type) (string, error) {
			close(started)
			<-release
			return "https://image.pollinations.ai/prompt/A%20cat", nil
		},
	}
	c := setupTestController(t, dispatcher)

	require.NoError(t, c.SetPrompt("A cat"))
	require.NoError(t, c.SetType(content.TypeImage))

	task, err := c.Submit(context.Background())
	require.NoError(t, err)
	<-started

	assert.Equal(t, controller.State{Status: controller.StatusLoading, Type: content.TypeImage}, c.State())
	assert.True(t, c.Busy())

	_, err = c.Submit(context.Background())
	assert.ErrorIs(t, err, controller.ErrBusy)
	assert.ErrorIs(t, c.SetPrompt("other"), controller.ErrBusy)
	assert.ErrorIs(t, c.SetType(content.TypeText), controller.ErrBusy)
	assert.Equal(t, "A cat", c.Prompt())
	assert.Equal(t, content.TypeImage, c.Type())

	close(release)
	require.NoError(t, task.Wait())

	assert.Equal(t, controller.State{
		Status: controller.StatusSucceeded,
		Type:   content.TypeImage,
		Result: "https://image.pollinations.ai/prompt/A%20cat",
	}, c.State())
	assert.Equal(t, int32(1), dispatcher.calls.Load())
}

func TestController_ResultKeepsSubmittedType(t *testing.T) {
	c := setupTestController(t, &mockDispatcher{
		generate: func(ctx context.Context, prompt string, typ content.Type) (string, error) {
			return "result", nil
		},
	})

	require.NoError(t, c.SetPrompt("prompt"))
	require.NoError(t, c.SetType(content.TypeImage))
	submitAndWait(t, c)

	require.NoError(t, c.SetType(content.TypeText))
	assert.Equal(t, content.TypeImage, c.State().Type)
	assert.Equal(t, content.TypeText, c.Type())
}

func TestController_NewSubmitClearsPreviousResult(t *testing.T) {
	release := make(chan struct{})
	calls := 0

	c := setupTestController(t, &mockDispatcher{
		generate: func(ctx context.Context, prompt string, typ content.Type) (string, error) {
			calls++
			if calls == 2 {
				<-release
				return "", errors.New("second failed")
			}
			return "first", nil
		},
	})

	require.NoError(t, c.SetPrompt("prompt"))
	submitAndWait(t, c)
	assert.Equal(t, "first", c.State().Result)

	task, err := c.Submit(context.Background())
	require.NoError(t, err)

	state := c.State()
	assert.Equal(t, controller.StatusLoading, state.Status)
	assert.Empty(t, state.Result)
	assert.Empty(t, state.Error)

	close(release)
	require.NoError(t, task.Wait())
	assert.Equal(t, "second failed", c.State().Error)
}

func TestController_SetTypeRejectsUnknown(t *testing.T) {
	c := setupTestController(t, &mockDispatcher{})
	assert.ErrorIs(t, c.SetType(content.Type("video")), content.ErrUnknownType)
	assert.Equal(t, content.TypeText, c.Type())
}
