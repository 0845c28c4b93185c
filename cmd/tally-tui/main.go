// Command tally-tui is the interactive counter board. Counters are exported to data.json.
//
// Usage:
//
//	tally-tui [flags]
//
// Flags:
//
//	--config      Path to a YAML config file
//	--store       Counter store: memory or sqlite
//	--export-dir  Directory data.json is written to
//	--log-file    Log destination (the TUI owns the terminal)
//	--log-level   debug, info, warn or error
//	--metrics     Address to serve Prometheus metrics on (disabled when empty)
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mr-Dark-debug/tally/internal/config"
	"github.com/Mr-Dark-debug/tally/internal/database"
	"github.com/Mr-Dark-debug/tally/internal/export"
	"github.com/Mr-Dark-debug/tally/internal/log"
	"github.com/Mr-Dark-debug/tally/internal/metrics"
	"github.com/Mr-Dark-debug/tally/internal/registry"
	"github.com/Mr-Dark-debug/tally/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	storeKind := flag.String("store", "", "Counter store: memory or sqlite")
	exportDir := flag.String("export-dir", "", "Directory data.json is written to")
	logFile := flag.String("log-file", "", "Log file path")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	metricsAddr := flag.String("metrics", "", "Address to serve Prometheus metrics on")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fatal(err)
		}
	}
	if *storeKind != "" {
		cfg.Store = *storeKind
	}
	if *exportDir != "" {
		cfg.Export.Dir = *exportDir
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}

	lg, err := log.New(
		log.WithLevel(cfg.Log.Level),
		log.WithFormat(cfg.Log.Format),
		log.WithOutputPaths(cfg.Log.File),
		log.WithFields("app", "tally-tui"),
	)
	if err != nil {
		fatal(err)
	}
	defer lg.Sync()

	var store registry.Store
	switch cfg.Store {
	case config.StoreSQLite:
		db, err := database.NewDBService(cfg.SQLitePath)
		if err != nil {
			fatal(fmt.Errorf("opening sqlite store at %s: %w", cfg.SQLitePath, err))
		}
		store = db
	default:
		store = registry.NewMemoryStore()
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := metrics.NewPrometheus()
	go func() {
		if err := rec.Serve(ctx, cfg.MetricsAddr, lg); err != nil {
			lg.Errorw("metrics server stopped", "error", err)
		}
	}()

	reg := registry.New(store, registry.WithRecorder(rec))
	exporter := export.New(reg, cfg.Export.Dir, cfg.Export.FileName, rec)

	model, err := tui.NewModel(reg, exporter, tui.WithLogger(lg))
	if err != nil {
		fatal(err)
	}

	lg.Infow("starting", "store", cfg.Store, "export", exporter.Path())
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		lg.Errorw("tui exited", "error", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "tally-tui: %v\n", err)
	os.Exit(1)
}
