package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/koopa0/askdocs/internal/chat"
	"github.com/koopa0/askdocs/internal/config"
	"github.com/koopa0/askdocs/internal/gemini"
	"github.com/koopa0/askdocs/internal/log"
	"github.com/koopa0/askdocs/internal/shell"
	"github.com/koopa0/askdocs/internal/store"
)

// runChat initializes the Gemini client and starts the interactive shell.
func runChat() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := log.New(log.Config{Level: logLevel()})

	client, err := gemini.NewClient(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing Gemini client: %w", err)
	}

	manager, err := store.NewManager(client, cfg.StorePrefix, logger)
	if err != nil {
		return fmt.Errorf("initializing store manager: %w", err)
	}

	chatClient, err := chat.NewClient(client, logger)
	if err != nil {
		return fmt.Errorf("initializing chat client: %w", err)
	}

	sh, err := shell.New(cfg, manager, chatClient, os.Stdin, os.Stdout, AppVersion, logger)
	if err != nil {
		return fmt.Errorf("initializing shell: %w", err)
	}

	return sh.Run(ctx)
}

func logLevel() slog.Level {
	if os.Getenv("DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
