package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/bachlog/internal/catalog"
	"github.com/alexanderramin/bachlog/internal/cli"
	"github.com/alexanderramin/bachlog/internal/compliance"
	"github.com/alexanderramin/bachlog/internal/config"
	"github.com/alexanderramin/bachlog/internal/curriculum"
	"github.com/alexanderramin/bachlog/internal/db"
	"github.com/alexanderramin/bachlog/internal/repository"
	"github.com/alexanderramin/bachlog/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("BACHLOG_CONFIG"))
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var catalogObserver catalog.Observer = catalog.NoopObserver{}
	if cfg.Catalog.LogCalls {
		catalogObserver = catalog.NewLogObserver(logger)
	}
	var useCaseObserver service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		useCaseObserver = service.NewSlogUseCaseObserver(logger)
	}

	chooser := catalog.NewPreferredChooser(cfg.PreferredCurriculum)
	catalogClient := catalog.NewHTTPClient(cfg.Catalog.ClientConfig(), chooser, catalogObserver)

	courseRepo := repository.NewSQLiteCourseRepo(database)
	extractor := curriculum.NewExtractor(curriculum.NewTitleClassifier(cfg.ElectiveLabel, cfg.ThesisLabel))
	checker := compliance.NewChecker(courseRepo, catalogClient, extractor, cfg.Modules)

	app := &cli.App{
		Courses:    service.NewCourseService(courseRepo, catalogClient, cfg.Modules),
		Import:     service.NewImportService(courseRepo, catalogClient, cfg.Modules, useCaseObserver),
		Export:     service.NewExportService(courseRepo, cfg.Modules),
		Compliance: service.NewComplianceService(courseRepo, checker, useCaseObserver),
		Catalog:    catalogClient,
		Modules:    cfg.Modules,
	}

	// Confirmation prompts only make sense on a terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
