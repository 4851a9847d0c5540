// Package main is the kuizu CLI entry point.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hyperjump/kuizu/internal/cli"
	"github.com/hyperjump/kuizu/internal/config"
	"github.com/hyperjump/kuizu/internal/deck"
	"github.com/hyperjump/kuizu/internal/extract"
	"github.com/hyperjump/kuizu/internal/generation"
	"github.com/hyperjump/kuizu/internal/models"
	"github.com/hyperjump/kuizu/internal/server"
	"github.com/hyperjump/kuizu/internal/watcher"
	"github.com/hyperjump/kuizu/pkg/utils"
)

var version = "dev"

const (
	defaultConfigPath = "/usr/local/etc/kuizu/config.yaml"
	// stdinArg reads the document text from standard input.
	stdinArg = "-"
	// defaultBuildWorkers bounds concurrent builds when max_concurrent is unset.
	defaultBuildWorkers = 4
)

// loadConfig loads config from path. When path is the default, config.yaml in
// the current directory wins if present, and built-in defaults are used when
// neither file exists. Environment overrides are applied last. Returns the
// config and the path that was actually loaded ("" for defaults).
func loadConfig(path string) (*config.Config, string, error) {
	resolved := path
	if path == defaultConfigPath {
		if cwd, err := os.Getwd(); err == nil {
			local := filepath.Join(cwd, "config.yaml")
			if _, err := os.Stat(local); err == nil {
				resolved = local
			}
		}
		if resolved == defaultConfigPath {
			if _, err := os.Stat(defaultConfigPath); errors.Is(err, os.ErrNotExist) {
				cfg := config.Default()
				config.ApplyEnv(cfg)
				return cfg, "", nil
			}
		}
	}
	cfg, err := config.Load(resolved)
	if err != nil {
		return nil, "", err
	}
	config.ApplyEnv(cfg)
	return cfg, resolved, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "build":
		runBuild()
	case "watch":
		runWatch()
	case "version", "--version", "-v":
		fmt.Printf("kuizu version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// app holds what every subcommand needs.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	pipeline *deck.Pipeline
	docs     *extract.Extractor
}

func setup(ctx context.Context, configPath string, debug bool) *app {
	cfg, resolved, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	logger.Info("config loaded",
		zap.String("config_path", resolved),
		zap.Bool("debug", debugMode),
		zap.String("provider", cfg.Generation.Provider),
		zap.String("model", cfg.Generation.Model),
	)

	p, err := newPipeline(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize generator", zap.Error(err))
	}
	return &app{
		cfg:      cfg,
		logger:   logger,
		pipeline: p,
		docs:     extract.NewExtractor(extract.WithExtensions(cfg.Extract.Extensions), extract.WithLogger(logger)),
	}
}

func newPipeline(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*deck.Pipeline, error) {
	gen, err := generation.New(ctx, &cfg.Generation, logger)
	if err != nil {
		return nil, err
	}
	return deck.NewPipeline(gen, &cfg.Deck,
		deck.WithLogger(logger),
		deck.WithTimeout(cfg.Generation.Timeout),
		deck.WithGenerationOptions(generation.OptionsFrom(&cfg.Generation)),
	), nil
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	port := fs.Int("port", 0, "listen port (overrides config)")
	_ = fs.Parse(os.Args[2:])

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a := setup(ctx, *configPath, *debug)
	defer a.logger.Sync()
	if *port > 0 {
		a.cfg.Server.Port = *port
	}

	if len(a.cfg.Watch.Directories) > 0 {
		inbox := watcher.NewInbox(a.pipeline, a.docs, a.cfg.Watch.OutputDir, a.cfg.Deck.DefaultCount, a.logger)
		w := inbox.Watch(ctx, a.cfg.Watch.Directories, a.cfg.Extract.Extensions, a.cfg.Watch.RecursiveOrDefault())
		if err := w.Start(ctx); err != nil {
			a.logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		defer w.Stop()
		go w.SyncExistingFiles()
	}

	srv := server.NewServer(a.pipeline, a.docs, a.cfg, a.logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	waitForSignal()
	a.logger.Info("Shutting down...")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
}

type deckBuilder interface {
	BuildDeck(ctx context.Context, text string, target int) (*models.Deck, error)
}

// buildResult is the outcome for one input of the build command.
type buildResult struct {
	source string
	deck   *models.Deck
	err    error
}

// buildDecks builds one deck per input, at most workers at a time. Results
// keep the order of inputs; a failed input does not stop the others.
func buildDecks(ctx context.Context, p deckBuilder, docs *extract.Extractor, inputs []string, count, workers int, stdin io.Reader) []buildResult {
	results := make([]buildResult, len(inputs))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, input := range inputs {
		g.Go(func() error {
			res := buildResult{source: input}
			var text string
			if input == stdinArg {
				data, err := io.ReadAll(stdin)
				if err != nil {
					res.err = fmt.Errorf("read stdin: %w", err)
				}
				text = string(data)
				res.source = "stdin"
			} else {
				text, res.err = docs.Extract(input)
			}
			if res.err == nil {
				res.deck, res.err = p.BuildDeck(ctx, text, count)
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// writeResults prints every deck to w and every failure to errW. It returns
// the number of failed inputs.
func writeResults(w, errW io.Writer, results []buildResult, format cli.OutputFormat) int {
	failed := 0
	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(errW, "%s: %v\n", r.source, r.err)
			failed++
			continue
		}
		source := r.source
		if len(results) == 1 {
			source = ""
		}
		if err := cli.WriteDeck(w, source, r.deck, format); err != nil {
			fmt.Fprintf(errW, "%s: write: %v\n", r.source, err)
			failed++
		}
	}
	return failed
}

// argsReorder moves flags given after positional arguments to the front so
// "kuizu build notes.pdf -count 5" parses like "kuizu build -count 5 notes.pdf".
func argsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 1 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func runBuild() {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	count := fs.Int("count", 0, "questions per deck (default from config)")
	output := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(argsReorder(os.Args[2:]))

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: kuizu build [flags] <file|->...")
		fs.PrintDefaults()
		os.Exit(1)
	}
	format, err := cli.ParseOutputFormat(*output)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	a := setup(ctx, *configPath, *debug)
	defer a.logger.Sync()

	workers := a.cfg.Generation.MaxConcurrent
	if workers <= 0 {
		workers = defaultBuildWorkers
	}
	results := buildDecks(ctx, a.pipeline, a.docs, fs.Args(), a.cfg.Deck.ClampCount(*count), workers, os.Stdin)
	if failed := writeResults(os.Stdout, os.Stderr, results, format); failed > 0 {
		os.Exit(1)
	}
}

func runWatch() {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	outDir := fs.String("out", "", "directory for deck files (default from config)")
	count := fs.Int("count", 0, "questions per deck (default from config)")
	_ = fs.Parse(argsReorder(os.Args[2:]))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a := setup(ctx, *configPath, *debug)
	defer a.logger.Sync()

	dirs := a.cfg.Watch.Directories
	if fs.NArg() > 0 {
		dirs = fs.Args()
	}
	if len(dirs) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: kuizu watch [flags] <dir>...  (or set watch.directories in config)")
		os.Exit(1)
	}
	out := a.cfg.Watch.OutputDir
	if *outDir != "" {
		out = *outDir
	}

	inbox := watcher.NewInbox(a.pipeline, a.docs, out, a.cfg.Deck.ClampCount(*count), a.logger)
	w := inbox.Watch(ctx, dirs, a.cfg.Extract.Extensions, a.cfg.Watch.RecursiveOrDefault())
	if err := w.Start(ctx); err != nil {
		a.logger.Fatal("Failed to start watcher", zap.Error(err))
	}
	defer w.Stop()
	a.logger.Info("watching", zap.Strings("directories", dirs), zap.String("output", out))
	w.SyncExistingFiles()

	waitForSignal()
	a.logger.Info("Shutting down...")
}

func waitForSignal() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
}

func printUsage() {
	fmt.Println(strings.TrimSpace(`
kuizu - Multiple-choice quiz decks from documents

Usage:
  kuizu server [flags]                 Start the HTTP server
  kuizu build [flags] <file|->...      Build decks and print them
  kuizu watch [flags] [dir...]         Build a deck for every document dropped into dir
  kuizu version                        Show version
  kuizu help                           Show this help

Common Flags:
  --config string    Config file path (default: /usr/local/etc/kuizu/config.yaml, or ./config.yaml)
  --debug            Enable debug logging

Server Flags:
  --port int         Listen port (overrides config)

Build Flags:
  --count int        Questions per deck (default from config)
  --output string    Output format: text or json (default: text)

Watch Flags:
  --out string       Directory for <file>-<digest>.deck.json files (default from config)
  --count int        Questions per deck (default from config)

Environment:
  KUIZU_PROVIDER, KUIZU_MODEL, KUIZU_BASE_URL, KUIZU_API_KEY, KUIZU_PORT, KUIZU_DEBUG
  OPENAI_API_KEY, ANTHROPIC_API_KEY, GEMINI_API_KEY, OLLAMA_HOST

Examples:
  kuizu server
  kuizu build notes.pdf
  kuizu build --count 5 --output json chapter1.docx chapter2.pdf
  cat notes.txt | kuizu build -
  KUIZU_PROVIDER=none kuizu build slides.pptx   # offline, fallback decks only
  kuizu watch ~/inbox --out ~/decks`))
}
