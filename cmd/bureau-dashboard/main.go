// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// bureau-dashboard is a terminal dashboard of security widgets grouped
// into categories. Widgets can be searched by name, added through a
// slide-over form and removed from their cards.
//
// Two modes of operation:
//
// Interactive (default): a full-screen bubbletea viewer over an
// in-memory store seeded from the built-in CSPM/CWPP dashboard or a
// JSONC seed file. Changes live for the lifetime of the process.
//
// Print mode (--print): renders the seeded dashboard once to stdout,
// optionally filtered by --search, and exits. With --digest, the
// snapshot digest follows so two runs can be compared.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/dashboard/lib/config"
	"github.com/bureau-foundation/dashboard/lib/dashboardstore"
	"github.com/bureau-foundation/dashboard/lib/dashboardui"
	"github.com/bureau-foundation/dashboard/lib/seed"
	"github.com/bureau-foundation/dashboard/lib/version"
)

const binaryName = "bureau-dashboard"

// defaultPrintWidth is used for --print when stdout is not a terminal.
const defaultPrintWidth = 120

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// options holds the parsed command line.
type options struct {
	configPath string
	seedPath   string
	search     string
	print      bool
	width      int
	digest     bool
	logOutput  string
}

func run(args []string, stdout io.Writer) error {
	var opts options

	flagSet := pflag.NewFlagSet(binaryName, pflag.ContinueOnError)
	flagSet.StringVar(&opts.configPath, "config", "", "path to YAML config (default: $"+config.EnvironmentVariable+", else built-in defaults)")
	flagSet.StringVar(&opts.seedPath, "seed", "", "path to JSONC seed file (overrides seed.path)")
	flagSet.StringVar(&opts.search, "search", "", "initial search term")
	flagSet.BoolVar(&opts.print, "print", false, "render the dashboard once to stdout and exit")
	flagSet.IntVar(&opts.width, "width", 0, "output width for --print (default: terminal width)")
	flagSet.BoolVar(&opts.digest, "digest", false, "with --print, append the snapshot digest")
	flagSet.StringVar(&opts.logOutput, "log-output", "", "write JSON log records to this file")
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing to match the other binaries.
	if len(args) > 0 && args[0] == "--version" {
		version.Fprint(stdout, binaryName)
		return nil
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return err
	}

	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}
	if opts.digest && !opts.print {
		return fmt.Errorf("--digest requires --print")
	}
	if opts.width < 0 {
		return fmt.Errorf("--width must be positive, got %d", opts.width)
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.seedPath != "" {
		cfg.Seed.Path = opts.seedPath
	}
	if opts.logOutput != "" {
		cfg.Logging.Output = opts.logOutput
	}
	if !flagSet.Changed("search") {
		opts.search = cfg.Search.Initial
	}

	if opts.print {
		return runPrint(cfg, opts, stdout)
	}
	return runViewer(cfg, opts)
}

// loadConfig loads from an explicit path when given, otherwise from
// DASHBOARD_CONFIG or the defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadSeed returns the categories from the configured seed file, or
// the built-in seed.
func loadSeed(cfg *config.Config) (*seed.Seed, error) {
	if cfg.Seed.Path == "" {
		return seed.Default(), nil
	}
	return seed.LoadFile(cfg.Seed.Path)
}

// newStore builds the store with the configured ID strategy.
func newStore(cfg *config.Config, logger *slog.Logger) (*dashboardstore.Store, error) {
	loaded, err := loadSeed(cfg)
	if err != nil {
		return nil, err
	}

	var generator dashboardstore.IDGenerator = dashboardstore.UUIDGenerator{}
	if cfg.IDs.Strategy == config.IDStrategySequence {
		generator = dashboardstore.NewSequenceGenerator(1)
	}

	store, err := dashboardstore.New(loaded.Categories,
		dashboardstore.WithIDGenerator(generator),
		dashboardstore.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("seeding dashboard: %w", err)
	}
	logger.Debug("dashboard seeded",
		"categories", len(loaded.Categories),
		"widgets", loaded.WidgetCount(),
		"seed", cfg.Seed.Path,
	)
	return store, nil
}

// runPrint renders the seeded dashboard once. Warnings go to stderr so
// stdout carries only the dashboard.
func runPrint(cfg *config.Config, opts options, stdout io.Writer) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	store, err := newStore(cfg, logger)
	if err != nil {
		return err
	}

	width := opts.width
	if width == 0 {
		width = defaultPrintWidth
		if file, ok := stdout.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
			if columns, _, sizeErr := term.GetSize(int(file.Fd())); sizeErr == nil && columns > 0 {
				width = columns
			}
		}
	}

	// Colors only when stdout is a terminal that supports them; piped
	// output stays plain.
	lipgloss.SetColorProfile(termenv.NewOutput(stdout).EnvColorProfile())

	snapshot := store.Snapshot()
	fmt.Fprint(stdout, dashboardui.RenderStatic(snapshot, dashboardui.StaticOptions{
		Term:      opts.search,
		Width:     width,
		CardWidth: cfg.UI.CardWidth,
	}))

	if opts.digest {
		digest, err := snapshot.Digest()
		if err != nil {
			return fmt.Errorf("computing digest: %w", err)
		}
		fmt.Fprintf(stdout, "\ndigest %s (version %d)\n", digest, snapshot.Version)
	}
	return nil
}

// runViewer runs the interactive viewer until the operator quits.
func runViewer(cfg *config.Config, opts options) error {
	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}

	// Warnings and errors show up in the status line; the log file, if
	// any, gets everything at the configured level.
	tuiHandler := dashboardui.NewTUILogHandler(max(level, slog.LevelWarn))
	var handler slog.Handler = tuiHandler
	if cfg.Logging.Output != "" {
		fileHandler, closeFile, err := openFileLogHandler(cfg.Logging.Output, level)
		if err != nil {
			return fmt.Errorf("opening log output: %w", err)
		}
		defer closeFile()
		handler = fanoutHandler{tuiHandler, fileHandler}
	}
	logger := slog.New(handler)

	store, err := newStore(cfg, logger)
	if err != nil {
		return err
	}

	model := dashboardui.NewModel(store, dashboardui.Options{
		CardWidth:     cfg.UI.CardWidth,
		InitialSearch: opts.search,
		Version:       version.Short(),
	})
	defer model.Close()

	programOptions := []tea.ProgramOption{}
	if cfg.AltScreen() {
		programOptions = append(programOptions, tea.WithAltScreen())
	}
	if cfg.Mouse() {
		programOptions = append(programOptions, tea.WithMouseCellMotion())
	}
	program := tea.NewProgram(model, programOptions...)
	tuiHandler.SetProgram(program)

	logger.Info("dashboard viewer started", "version", version.Info())
	_, err = program.Run()
	return err
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Bureau dashboard - interactive terminal dashboard of security widgets.

By default, shows the built-in CSPM and CWPP dashboard. Use --seed to
load categories from a JSONC file instead. Changes made in the viewer
are kept in memory only.

Usage:
  %s [flags]

Keys:
  arrows/hjkl  move between cards     /      search widgets
  a            add widget             x      remove focused widget
  Enter        activate add tile      q      quit

Flags:
`, binaryName)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
