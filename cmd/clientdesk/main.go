package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alexanderramin/clientdesk/internal/cli"
	"github.com/alexanderramin/clientdesk/internal/cli/formatter"
	"github.com/alexanderramin/clientdesk/internal/config"
	"github.com/alexanderramin/clientdesk/internal/db"
	"github.com/alexanderramin/clientdesk/internal/intelligence"
	"github.com/alexanderramin/clientdesk/internal/llm"
	"github.com/alexanderramin/clientdesk/internal/repository"
	"github.com/alexanderramin/clientdesk/internal/service"
	"github.com/juju/clock"
	"github.com/mattn/go-isatty"
)

func main() {
	formatter.UseColor(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, formatter.FormatError(err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(cfg.Log.Level)}))

	var observers []service.UseCaseObserver
	if cfg.Log.UseCases {
		observers = append(observers, service.NewLogUseCaseObserver(logger))
	}
	rt := service.NewRuntime(store, clock.WallClock, observers...)

	// Module generation is only wired when the LLM is enabled.
	var generator intelligence.ModuleGenerator
	llmCfg := cfg.LLMSettings()
	if llmCfg.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewSlogObserver(logger)
		}
		generator = intelligence.NewModuleGenerator(llm.NewOllamaClient(llmCfg, observer))
	}

	app := &cli.App{
		Projects:     service.NewProjectService(rt),
		Modules:      service.NewModuleService(rt, generator),
		Changes:      service.NewChangeRequestService(rt),
		Requirements: service.NewRequirementService(rt),
		Leads:        service.NewLeadService(rt),
		Portal:       service.NewClientPortalService(rt),
		Clock:        clock.WallClock,
		HTTPAddr:     cfg.HTTP.Addr,
		PublicURL:    cfg.HTTP.PublicURL,
		Logger:       logger,
	}
	return cli.NewRootCmd(app).Execute()
}

func openStore(cfg config.StoreConfig) (repository.Store, func(), error) {
	if cfg.Backend == config.BackendJSON {
		return repository.NewJSONStore(cfg.Path), func() {}, nil
	}
	database, err := db.OpenDB(cfg.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return repository.NewSQLiteStore(database), func() { _ = database.Close() }, nil
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
