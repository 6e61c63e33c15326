package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/NethermindEth/prompt-studio/pkg/studio"
	"github.com/NethermindEth/prompt-studio/pkg/studio/setup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	setupResult, err := setup.Setup(ctx)
	if err != nil {
		slog.Error("failed to setup", "error", err)
		os.Exit(1)
	}

	studioConfig, err := studio.NewStudioConfigFromSetupResult(ctx, setupResult)
	if err != nil {
		slog.Error("failed to create studio config", "error", err)
		os.Exit(1)
	}

	s, err := studio.NewStudio(ctx, studioConfig)
	if err != nil {
		slog.Error("failed to create studio", "error", err)
		os.Exit(1)
	}

	if err := s.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("studio stopped", "error", err)
		os.Exit(1)
	}

	slog.Info("shutdown complete")
}
