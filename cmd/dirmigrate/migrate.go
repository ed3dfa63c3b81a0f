package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bamsammich/dirmigrate/internal/config"
	"github.com/bamsammich/dirmigrate/internal/engine"
	"github.com/bamsammich/dirmigrate/internal/event"
	"github.com/bamsammich/dirmigrate/internal/filter"
	"github.com/bamsammich/dirmigrate/internal/platform"
	"github.com/bamsammich/dirmigrate/internal/ui"
)

type migrateOpts struct {
	statusDir     string
	chunkSize     string
	workers       int
	minimal       bool
	minimalFile   string
	corruptFile   string
	bwLimit       string
	mtimeXattr    string
	atimeXattr    string
	logFile       string
	configFile    string
	verbose       bool
	quiet         bool
	noProgressHUD bool
}

func newMigrateCmd() *cobra.Command {
	cmd, _ := migrateCommand()
	return cmd
}

// migrateCommand returns the command along with the options its flags
// parse into.
func migrateCommand() (*cobra.Command, *migrateOpts) {
	o := &migrateOpts{}
	cmd := &cobra.Command{
		Use:   "migrate [flags] <from> <to>",
		Short: "Move every entry of <from> into <to>, deleting the source as it goes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, *o, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&o.statusDir, "status-dir", "", "directory for the started marker (required)")
	cmd.Flags().StringVar(&o.chunkSize, "chunk-size", "128M", "largest chunk moved at a time (e.g. 64M)")
	cmd.Flags().
		IntVarP(&o.workers, "workers", "n", 0, "number of file workers (default: min(NumCPU*2, 32); 0 with --inline)")
	cmd.Flags().BoolVar(&o.minimal, "minimal", false, "migrate only the minimal whitelist")
	cmd.Flags().
		StringVar(&o.minimalFile, "minimal-paths-file", "", "read the minimal whitelist from FILE, one pattern per line")
	cmd.Flags().
		StringVar(&o.corruptFile, "known-corruptions-file", "", "read skippable corrupt-file patterns from FILE")
	cmd.Flags().StringVar(&o.bwLimit, "bwlimit", "", "aggregate copy bandwidth limit (e.g. 50M)")
	cmd.Flags().StringVar(&o.mtimeXattr, "mtime-xattr", engine.DefaultMtimeXattr, "xattr holding the original mtime")
	cmd.Flags().StringVar(&o.atimeXattr, "atime-xattr", engine.DefaultAtimeXattr, "xattr holding the original atime")
	cmd.Flags().StringVar(&o.logFile, "log", "", "write structured JSON log to FILE")
	cmd.Flags().StringVar(&o.configFile, "config", "", "config file (default: $XDG_CONFIG_HOME/dirmigrate/config.toml)")
	cmd.Flags().BoolVarP(&o.verbose, "verbose", "v", false, "verbose output")
	cmd.Flags().BoolVarP(&o.quiet, "quiet", "q", false, "suppress all output except errors")
	cmd.Flags().BoolVar(&o.noProgressHUD, "no-hud", false, "print plain progress lines even on a terminal")
	cmd.Flags().Bool("inline", false, "migrate files on the walking goroutine instead of a worker pool")
	return cmd, o
}

//nolint:gocyclo,revive // cyclomatic,cognitive-complexity: entry point wires flags, config and presenter
func runMigrate(cmd *cobra.Command, o migrateOpts, from, to string) error {
	if o.statusDir == "" {
		return errors.New("--status-dir is required")
	}

	var (
		cfg config.Config
		err error
	)
	if o.configFile != "" {
		cfg, err = config.LoadFile(o.configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	} else if cfg, err = config.Load(); err != nil {
		slog.Warn("failed to load config", "error", err)
	}

	ecfg, err := buildEngineConfig(cmd.Flags(), o, cfg, from, to)
	if err != nil {
		return err
	}

	// Configure logging.
	logLevel := slog.LevelWarn
	if o.verbose {
		logLevel = slog.LevelDebug
	} else if !o.quiet {
		logLevel = slog.LevelInfo
	}
	textHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	var logHandler slog.Handler = textHandler
	if o.logFile != "" {
		lf, lfErr := os.Create(o.logFile)
		if lfErr != nil {
			return fmt.Errorf("open log file: %w", lfErr)
		}
		defer lf.Close()
		jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{Level: slog.LevelDebug})
		logHandler = ui.NewMultiHandler(textHandler, jsonHandler)
	}
	logger := slog.New(logHandler)
	slog.SetDefault(logger)
	ecfg.Logger = logger

	m, err := engine.New(platform.NewOS(), ecfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	isTTY := ui.IsTTY(os.Stderr.Fd()) && !o.noProgressHUD
	presenter := ui.NewPresenter(ui.Config{
		Writer: os.Stderr,
		Stats:  m.Stats(),
		Width:  ui.TermWidth(os.Stderr.Fd()),
		IsTTY:  isTTY,
		Quiet:  o.quiet,
	})

	events := make(chan event.Progress, 64)
	var presenterErr error
	var presenterWg sync.WaitGroup
	presenterWg.Add(1)
	go func() {
		defer presenterWg.Done()
		presenterErr = presenter.Run(events)
	}()

	err = m.Migrate(ctx, forwardProgress(events, logger))
	stop()
	close(events)
	presenterWg.Wait()
	if presenterErr != nil {
		fmt.Fprintf(os.Stderr, "presenter: %v\n", presenterErr)
	}

	if !o.quiet {
		if summary := presenter.Summary(); summary != "" {
			fmt.Fprintln(os.Stderr, summary)
		}
	}

	if err != nil {
		slog.Error("migration failed", "error", err)
		if errors.Is(err, engine.ErrCancelled) {
			return &exitError{code: 130}
		}
		return &exitError{code: 1}
	}
	return nil
}

// forwardProgress adapts the engine callback to a presenter channel. The
// callback runs under the engine's progress lock, so IN_PROGRESS reports are
// dropped rather than stall the run when the presenter falls behind. Phase
// changes always get through.
func forwardProgress(events chan<- event.Progress, logger *slog.Logger) engine.ProgressFunc {
	return func(p event.Progress) {
		logger.Debug("dirmigrate.progress",
			"status", p.Status.String(),
			"migrated", p.Migrated,
			"total", p.Total,
		)
		if p.Status != event.InProgress {
			events <- p
			return
		}
		select {
		case events <- p:
		default:
		}
	}
}

// buildEngineConfig merges flags over the config file. Config values apply
// only to flags not explicitly set on the command line.
func buildEngineConfig(
	flags *pflag.FlagSet,
	o migrateOpts,
	cfg config.Config,
	from, to string,
) (engine.Config, error) {
	var paths [3]string
	for i, p := range []string{from, to, o.statusDir} {
		abs, err := filepath.Abs(p)
		if err != nil {
			return engine.Config{}, err
		}
		paths[i] = abs
	}

	ecfg := engine.Config{
		From:             paths[0],
		To:               paths[1],
		StatusDir:        paths[2],
		Mode:             engine.Full,
		MtimeXattr:       o.mtimeXattr,
		AtimeXattr:       o.atimeXattr,
		MinimalPaths:     cfg.Minimal.Paths,
		KnownCorruptions: cfg.Skip.KnownCorruptions,
	}

	chunk, err := filter.ParseSize(o.chunkSize)
	if err != nil {
		return engine.Config{}, fmt.Errorf("invalid --chunk-size: %w", err)
	}
	if cfgChunk, _ := cfg.ChunkSize(); !flags.Changed("chunk-size") && cfgChunk > 0 { //nolint:errcheck // validated on load
		chunk = cfgChunk
	}
	ecfg.ChunkSize = chunk

	if o.bwLimit != "" {
		if ecfg.IOLimit, err = filter.ParseSize(o.bwLimit); err != nil {
			return engine.Config{}, fmt.Errorf("invalid --bwlimit: %w", err)
		}
	} else {
		ecfg.IOLimit, _ = cfg.IOLimit() //nolint:errcheck // validated on load
	}

	workers := o.workers
	if !flags.Changed("workers") && cfg.Defaults.Workers != nil {
		workers = *cfg.Defaults.Workers
	}
	if inline, _ := flags.GetBool("inline"); inline { //nolint:errcheck // flag name is hardcoded
		workers = 0
	} else if workers <= 0 {
		workers = min(runtime.NumCPU()*2, 32)
	}
	ecfg.Workers = workers

	if o.minimal || (!flags.Changed("minimal") && cfg.Defaults.Mode != nil && *cfg.Defaults.Mode == "minimal") {
		ecfg.Mode = engine.Minimal
	}
	if !flags.Changed("mtime-xattr") && cfg.Xattr.Mtime != nil {
		ecfg.MtimeXattr = *cfg.Xattr.Mtime
	}
	if !flags.Changed("atime-xattr") && cfg.Xattr.Atime != nil {
		ecfg.AtimeXattr = *cfg.Xattr.Atime
	}

	if o.minimalFile != "" {
		if ecfg.MinimalPaths, err = filter.LoadPatterns(o.minimalFile); err != nil {
			return engine.Config{}, err
		}
	}
	if o.corruptFile != "" {
		if ecfg.KnownCorruptions, err = filter.LoadPatterns(o.corruptFile); err != nil {
			return engine.Config{}, err
		}
	}
	return ecfg, nil
}
