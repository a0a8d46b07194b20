package app

import (
	"context"
	"fmt"
	"log/slog"

	"JobAdsMiner/internal/catalog"
	"JobAdsMiner/internal/config"
	"JobAdsMiner/internal/geo"
	"JobAdsMiner/internal/infrastructure/assets"
	"JobAdsMiner/internal/infrastructure/chart"
	"JobAdsMiner/internal/infrastructure/storage"
	"JobAdsMiner/internal/infrastructure/telegram"
	"JobAdsMiner/internal/jobtitle"
	"JobAdsMiner/internal/logging"
	"JobAdsMiner/internal/skills"
	"JobAdsMiner/internal/stage"
	"JobAdsMiner/internal/usecase"
)

// Application wires configs to the miner stages.
type Application struct {
	cfg      config.Config
	registry *stage.Registry
	logger   *slog.Logger
}

// New loads the catalogs, compiles the classifiers and registers every stage.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	cat, err := catalog.Load(cfg.Paths.CatalogDir)
	if err != nil {
		return nil, fmt.Errorf("load catalogs: %w", err)
	}
	jobs, err := jobtitle.New(cat.Jobs)
	if err != nil {
		return nil, fmt.Errorf("compile job rules: %w", err)
	}
	extractor, err := skills.New(cat.Skills)
	if err != nil {
		return nil, fmt.Errorf("compile skill rules: %w", err)
	}
	tagger, err := geo.New(cat.Geo)
	if err != nil {
		return nil, fmt.Errorf("compile geo rules: %w", err)
	}
	renderer, err := chart.NewRenderer(cfg.Charts.Width, cfg.Charts.FontPath)
	if err != nil {
		return nil, fmt.Errorf("init chart renderer: %w", err)
	}

	miner := usecase.NewMiner(usecase.Deps{
		Source:     telegram.NewExportSource(cfg.Paths.InputDir, baseLogger.With("component", "source.telegram")),
		Store:      storage.NewCSVStore(cfg.Paths.OutputDir),
		Visualizer: renderer,
		Fetcher:    assets.NewHTTPFetcher(nil),
		Catalog:    cat,
		Jobs:       jobs,
		Skills:     extractor,
		Geo:        tagger,
		Logger:     baseLogger.With("component", "miner"),
	}, usecase.OptionsFromConfig(cfg))

	registry := stage.NewRegistry()
	for _, s := range miner.Stages() {
		registry.Register(s)
	}
	return &Application{cfg: cfg, registry: registry, logger: baseLogger}, nil
}

// Stages lists the registered stage names.
func (a *Application) Stages() []string {
	return a.registry.Names()
}

// Run executes one stage by name.
func (a *Application) Run(ctx context.Context, name string) error {
	s, err := a.registry.Resolve(name)
	if err != nil {
		return err
	}
	a.logger.Info("run stage", "stage", s.Name(), "input", a.cfg.Paths.InputDir, "output", a.cfg.Paths.OutputDir)
	return s.Run(ctx)
}
