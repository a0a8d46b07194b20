package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"JobAdsMiner/internal/app"
	"JobAdsMiner/internal/config"
	"JobAdsMiner/internal/logging"
)

func main() {
	cfg := config.Load()

	flag.StringVar(&cfg.Paths.InputDir, "input", cfg.Paths.InputDir, "directory with Telegram HTML exports")
	flag.StringVar(&cfg.Paths.OutputDir, "output", cfg.Paths.OutputDir, "directory for CSV artifacts")
	flag.StringVar(&cfg.Paths.FiguresDir, "figures", cfg.Paths.FiguresDir, "directory for PNG figures")
	flag.StringVar(&cfg.Paths.CatalogDir, "catalogs", cfg.Paths.CatalogDir, "directory with catalog overrides")
	flag.StringVar(&cfg.SkillsColumn, "skills-column", cfg.SkillsColumn, "skills column used by role-skill stages")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "parallel workers for per-ad tagging")
	flag.BoolVar(&cfg.Charts.Offline, "offline", cfg.Charts.Offline, "never download the map background")
	flag.StringVar(&cfg.Charts.FontPath, "font", cfg.Charts.FontPath, "TrueType font for figure labels")
	flag.StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "debug, info, warn or error")
	flag.StringVar(&cfg.Logging.Format, "log-format", cfg.Logging.Format, "text or json")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [stage]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	stageName := "all"
	if flag.NArg() > 0 {
		stageName = strings.TrimSpace(flag.Arg(0))
	}

	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("application init failed", "error", err)
		os.Exit(1)
	}

	if err := application.Run(ctx, stageName); err != nil {
		logger.Error("application stopped", "stage", stageName, "error", err, "stages", application.Stages())
		os.Exit(1)
	}
}
