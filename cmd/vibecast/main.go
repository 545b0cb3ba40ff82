package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"

	"github.com/yanqian/vibecast/internal/domain/session"
	"github.com/yanqian/vibecast/internal/infra/config"
	"github.com/yanqian/vibecast/internal/interface/tui"
	"github.com/yanqian/vibecast/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "vibecast: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logOut, closeLog, err := openLog(os.Getenv("VIBECAST_LOG_FILE"))
	if err != nil {
		return err
	}
	defer closeLog()
	appLogger := logger.NewWithWriter(logOut)

	parts := initializeComponents(cfg, appLogger)

	sess := session.New(ctx, "terminal", parts.sessionCfg, parts.weather, parts.advisor, appLogger)
	defer sess.Close()

	updates, unsubscribe := sess.Subscribe()
	defer unsubscribe()
	sess.Activate()

	program := tea.NewProgram(tui.New(sess, updates, tui.EnvLocator{}), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal ui: %w", err)
	}
	return nil
}

func openLog(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
