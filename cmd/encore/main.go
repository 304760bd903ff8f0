package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/encore/internal/cli"
	"github.com/alexanderramin/encore/internal/cli/formatter"
	"github.com/alexanderramin/encore/internal/config"
	"github.com/alexanderramin/encore/internal/content"
	"github.com/alexanderramin/encore/internal/db"
	"github.com/alexanderramin/encore/internal/kv"
	"github.com/alexanderramin/encore/internal/launcher"
	"github.com/alexanderramin/encore/internal/repository"
	"github.com/alexanderramin/encore/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	catalog, err := loadCatalog(ctx, cfg.ContentDir)
	if err != nil {
		return err
	}

	// Wire repositories and stores
	journalRepo := repository.NewSQLiteJournalRepo(database)
	progressRepo := repository.NewSQLiteProgressRepo(database)
	store := kv.NewSQLiteStore(database, db.NewSQLiteUnitOfWork(database))

	var observers []service.UseCaseObserver
	if cfg.Log.UseCases {
		observers = append(observers, service.NewSlogUseCaseObserver(logger))
	}

	app := &cli.App{
		Config:   cfg,
		Catalog:  catalog,
		Journal:  service.NewJournalService(journalRepo, nil, observers...),
		Progress: service.NewProgressService(progressRepo, logger, observers...),
		Quiz:     service.NewQuizService(store, nil, observers...),
		History:  service.NewHistoryService(store, nil),

		Clipboard: launcher.SystemClipboard{},
		Markdown:  formatter.NewMarkdown(cfg.MarkdownStyle),
		Logger:    logger,
	}
	if cfg.OpenLinks {
		app.Opener = launcher.NewOSOpener()
	} else {
		app.Opener = launcher.DisabledOpener{}
	}

	// Detect interactive terminal for the bare entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}

// loadCatalog reads paths from dir, or the built-in catalog when dir is
// empty.
func loadCatalog(ctx context.Context, dir string) (*content.Catalog, error) {
	if dir == "" {
		return content.Default(ctx)
	}
	catalog, err := content.LoadDir(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("loading content from %s: %w", dir, err)
	}
	return catalog, nil
}
