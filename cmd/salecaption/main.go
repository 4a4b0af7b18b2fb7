package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/salecaption/internal/app"
	"github.com/ternarybob/salecaption/internal/common"
	"github.com/ternarybob/salecaption/internal/services/report"
)

// multiFlag is a custom flag type that allows a flag to be given multiple times
type multiFlag []string

func (m *multiFlag) String() string {
	return fmt.Sprintf("%v", *m)
}

func (m *multiFlag) Set(value string) error {
	*m = append(*m, value)
	return nil
}

var (
	// Command-line flags
	configFiles  multiFlag // Multiple -config flags supported
	catalogFiles multiFlag
	tone         = flag.String("tone", "", "Caption tone value or label (overrides config)")
	store        = flag.String("store", "", "Default store key for unrecognized stores (overrides config)")
	provider     = flag.String("provider", "", "Default model provider: gemini or claude (overrides config)")
	logLevel     = flag.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	reportPath   = flag.String("report", "", "Write a review report (.md or .html)")
	listStores   = flag.Bool("stores", false, "List the store catalog and exit")
	showVersion  = flag.Bool("version", false, "Print version information")
	showVersionV = flag.Bool("v", false, "Print version information (shorthand)")
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
	flag.Var(&catalogFiles, "catalog", "Custom store catalog file (.yaml, .json or .toml, repeatable)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: salecaption [flags] <image|frames-dir>...\n\n")
		fmt.Fprintf(os.Stderr, "A directory is treated as one video whose image files are its frames.\n\n")
		flag.PrintDefaults()
	}
}

func main() {
	defer common.RecoverWithCrashFile("logs")

	flag.Parse()

	if *showVersion || *showVersionV {
		fmt.Printf("SaleCaption version %s\n", common.GetFullVersion())
		os.Exit(0)
	}

	// Startup sequence:
	// 1. Load config (defaults -> file1 -> file2 -> ... -> .env -> env)
	// 2. Apply CLI overrides (highest priority)
	// 3. Initialize logger
	// 4. Print banner
	if len(configFiles) == 0 {
		if _, err := os.Stat("salecaption.toml"); err == nil {
			configFiles = append(configFiles, "salecaption.toml")
		}
	}

	config, err := common.LoadFromFiles(configFiles...)
	if err != nil {
		tempLogger := arbor.NewLogger()
		tempLogger.Fatal().Strs("paths", configFiles).Err(err).Msg("Failed to load configuration files")
		os.Exit(1)
	}

	common.ApplyFlagOverrides(config, common.FlagOverrides{
		Tone:         *tone,
		DefaultStore: *store,
		Provider:     *provider,
		LogLevel:     *logLevel,
		CustomFiles:  catalogFiles,
	})

	logger := common.InitLogger(config)
	common.PrintBanner(common.GetVersion())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer application.Close()

	if *listStores {
		printStores(os.Stdout, application.Session.Catalog())
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(ctx, application, flag.Args()); err != nil {
		logger.Error().Err(err).Msg("Caption run failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, application *app.App, paths []string) error {
	logger := application.Logger
	session := application.Session

	uploads, err := app.LoadUploads(paths)
	if err != nil {
		return err
	}

	started := time.Now()
	if err := session.ReplaceFiles(ctx, uploads); err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	logger.Info().Int("files", len(uploads)).Dur("elapsed", time.Since(started)).Msg("Analysis complete")

	session.SelectAll()
	result, err := session.GenerateBatch(ctx)
	if err != nil {
		return fmt.Errorf("caption generation failed: %w", err)
	}
	logger.Info().
		Int("generated", result.Generated).
		Int("failed", result.Failed).
		Strs("stores", result.StoreKeys).
		Dur("elapsed", time.Since(started)).
		Msg("Caption batch complete")

	items := session.Items()
	printCaptions(os.Stdout, items)

	if *reportPath != "" {
		r := report.Report{
			GeneratedAt: time.Now(),
			Tone:        session.Tone(),
			Catalog:     session.Catalog(),
			Items:       items,
		}
		if err := r.WriteFile(*reportPath); err != nil {
			return err
		}
		logger.Info().Str("path", *reportPath).Msg("Review report written")
	}

	if result.Failed > 0 {
		return fmt.Errorf("%d of %d captions failed", result.Failed, len(items))
	}
	return nil
}
