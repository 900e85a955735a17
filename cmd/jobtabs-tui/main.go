package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/lei/jobtabs/internal/render"
	"github.com/lei/jobtabs/internal/tui"
	"github.com/lei/jobtabs/pkg/jobtabs"
	"github.com/lei/jobtabs/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "jobtabs-tui: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	configFile := flag.String("config", os.Getenv("CONFIG_FILE"), "path to YAML config (environment only when empty)")
	logFile := flag.String("log", "jobtabs-tui.log", "file receiving diagnostics")
	plain := flag.Bool("plain", false, "print the text view once loaded and exit")
	flag.Parse()

	cfg, err := jobtabs.LoadConfig(*configFile)
	if err != nil {
		return err
	}

	// The terminal belongs to the UI, so logs go to a file
	f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	log := logger.NewWithWriter(cfg.Logging.Level, "console", f)

	jt, err := jobtabs.NewWithLogger(cfg, log)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	w := jt.Widget()
	states, unsubscribe := w.Subscribe()
	defer unsubscribe()

	if err := jt.Mount(ctx); err != nil {
		return err
	}
	defer jt.Unmount()

	if *plain {
		select {
		case <-w.Ready():
		case <-ctx.Done():
			return ctx.Err()
		}
		fmt.Print(render.Text(w.Snapshot()))
		return nil
	}

	p := tea.NewProgram(tui.NewModel(w, states), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
