package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/salecaption/internal/common"
	"github.com/ternarybob/salecaption/internal/interfaces"
	"github.com/ternarybob/salecaption/internal/models"
	"github.com/ternarybob/salecaption/internal/services/captions"
	"github.com/ternarybob/salecaption/internal/services/dates"
	"github.com/ternarybob/salecaption/internal/services/extraction"
	"github.com/ternarybob/salecaption/internal/services/holidays"
	"github.com/ternarybob/salecaption/internal/services/llm"
	"github.com/ternarybob/salecaption/internal/services/stores"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Model providers
	Providers *llm.ProviderFactory

	// Pipeline services
	Catalog   *stores.Catalog
	Resolver  *dates.Resolver
	Calendar  *holidays.Calendar
	Analyzer  *extraction.Analyzer
	Assembler *captions.Assembler
	Generator *captions.Generator

	// Session is the batch the CLI and MCP tools work on
	Session *captions.Session
}

// New initializes the application with Gemini/Claude backed services
func New(ctx context.Context, cfg *common.Config, logger arbor.ILogger) (*App, error) {
	providers := llm.NewProviderFactory(cfg, logger)
	app, err := NewWithServices(ctx, cfg, logger, llm.NewVisionService(providers), llm.NewCaptionService(providers))
	if err != nil {
		return nil, err
	}
	app.Providers = providers
	return app, nil
}

// NewWithServices initializes the application around the given model services
func NewWithServices(ctx context.Context, cfg *common.Config, logger arbor.ILogger, vision interfaces.VisionService, generator interfaces.CaptionGenerator) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		Logger: logger,
	}

	sources := make([]interfaces.CatalogSource, 0, len(cfg.Catalog.CustomFiles))
	for _, path := range cfg.Catalog.CustomFiles {
		sources = append(sources, stores.NewFileSource(path))
	}

	catalog, err := stores.NewCatalog(ctx, logger, sources...)
	if err != nil {
		return nil, fmt.Errorf("failed to load store catalog: %w", err)
	}
	app.Catalog = catalog

	app.Resolver = dates.NewResolver()
	app.Calendar = holidays.NewCalendar()
	app.Analyzer = extraction.NewAnalyzer(vision, app.Resolver, logger,
		extraction.WithMaxFrames(cfg.Analysis.MaxFrames),
		extraction.WithMaxFileBytes(cfg.Analysis.MaxFileBytes),
	)
	app.Assembler = captions.NewAssembler(app.Calendar)
	app.Generator = captions.NewGenerator(generator, app.Assembler, logger)

	tone, err := ResolveTone(cfg.Captions.Tone)
	if err != nil {
		return nil, err
	}

	snapshot := catalog.Snapshot()
	if key := cfg.Catalog.DefaultStore; key != "" {
		if _, ok := snapshot.Store(key); !ok {
			return nil, fmt.Errorf("default store %q: %w", key, captions.ErrStoreNotFound)
		}
	}

	app.Session = captions.NewSession(snapshot, app.Analyzer, app.Generator, logger,
		captions.WithResolver(app.Resolver),
		captions.WithTone(tone),
		captions.WithDefaultStore(cfg.Catalog.DefaultStore),
	)

	logger.Info().
		Str("session", app.Session.ID()).
		Int("stores", len(snapshot.Stores)).
		Int("custom_files", len(cfg.Catalog.CustomFiles)).
		Str("tone", string(tone)).
		Str("default_store", app.Session.DefaultStoreKey()).
		Msg("Application initialized")

	return app, nil
}

// ResolveTone accepts a tone value or label; empty means Simple.
func ResolveTone(s string) (models.Tone, error) {
	if strings.TrimSpace(s) == "" {
		return models.ToneSimple, nil
	}
	tone, ok := models.ParseTone(strings.TrimSpace(s))
	if !ok {
		return "", fmt.Errorf("unknown tone %q", s)
	}
	return tone, nil
}

// Close releases provider clients
func (a *App) Close() error {
	if a.Providers != nil {
		return a.Providers.Close()
	}
	return nil
}
