package studio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/NethermindEth/prompt-studio/pkg/studio/content"
	"github.com/NethermindEth/prompt-studio/pkg/studio/controller"
	"github.com/NethermindEth/prompt-studio/pkg/studio/debug"
	"github.com/NethermindEth/prompt-studio/pkg/studio/session"
	"github.com/NethermindEth/prompt-studio/pkg/studio/setup"
)

type Studio struct {
	dispatcher *content.Dispatcher
	sessions   *session.Store
	pool       pond.Pool
	apiRouter  *gin.Engine

	apiIpPort  string
	sessionTTL time.Duration
}

type StudioConfig struct {
	TextGenerator  content.Generator
	ImageGenerator content.Generator

	ApiIpPort             string
	SessionCacheSize      int
	SessionTTL            time.Duration
	MaxConcurrentRequests int
}

const (
	defaultMaxConcurrentRequests = 16
	shutdownTimeout              = 10 * time.Second
)

func NewStudio(ctx context.Context, config *StudioConfig) (*Studio, error) {
	if config == nil {
		return nil, errors.New("config is nil")
	}

	dispatcher, err := content.NewDispatcher(map[content.Type]content.Generator{
		content.TypeText:  config.TextGenerator,
		content.TypeImage: config.ImageGenerator,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create dispatcher: %w", err)
	}

	if config.MaxConcurrentRequests <= 0 {
		config.MaxConcurrentRequests = defaultMaxConcurrentRequests
	}
	if config.SessionTTL <= 0 {
		config.SessionTTL = session.DefaultTTL
	}

	pool := pond.NewPool(config.MaxConcurrentRequests)

	sessions, err := session.NewStore(session.StoreOptions{
		Size: config.SessionCacheSize,
		TTL:  config.SessionTTL,
		NewController: func() (*controller.Controller, error) {
			return controller.NewController(&controller.ControllerConfig{
				Dispatcher: dispatcher,
				Pool:       pool,
			})
		},
	})
	if err != nil {
		pool.StopAndWait()
		return nil, fmt.Errorf("failed to create session store: %w", err)
	}

	studio := &Studio{
		dispatcher: dispatcher,
		sessions:   sessions,
		pool:       pool,
		apiRouter:  nil,

		apiIpPort:  config.ApiIpPort,
		sessionTTL: config.SessionTTL,
	}

	if !debug.IsDebugGin() {
		gin.SetMode(gin.ReleaseMode)
	}
	studio.apiRouter = studio.generateRouter()

	return studio, nil
}

func NewStudioConfigFromSetupResult(ctx context.Context, setupResult *setup.SetupResult) (*StudioConfig, error) {
	if setupResult == nil {
		return nil, errors.New("setup result is nil")
	}

	textGenerator, imageGenerator, err := newGenerators(ctx, setupResult)
	if err != nil {
		return nil, err
	}

	return &StudioConfig{
		TextGenerator:  textGenerator,
		ImageGenerator: imageGenerator,

		ApiIpPort:             setupResult.ApiIpPort,
		SessionCacheSize:      setupResult.SessionCacheSize,
		SessionTTL:            setupResult.SessionTTL,
		MaxConcurrentRequests: setupResult.MaxConcurrentRequests,
	}, nil
}

// Start serves until ctx is done, then drains in-flight generations.
func (s *Studio) Start(ctx context.Context) error {
	defer s.pool.StopAndWait()

	group, ctx := errgroup.WithContext(ctx)

	s.StartServer(ctx, group)

	group.Go(func() error {
		<-ctx.Done()
		return ctx.Err()
	})

	return group.Wait()
}

func (s *Studio) StartServer(ctx context.Context, group *errgroup.Group) {
	slog.Info("starting server", "port", s.apiIpPort)

	if s.apiIpPort == "" {
		slog.Info("api ip port is empty, skipping server")
		return
	}

	server := &http.Server{
		Addr:    s.apiIpPort,
		Handler: s.apiRouter,
	}

	group.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
		return nil
	})
}

func (s *Studio) ApiIpPort() string {
	return s.apiIpPort
}

func (s *Studio) Sessions() int {
	return s.sessions.Len()
}
