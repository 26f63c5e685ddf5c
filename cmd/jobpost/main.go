package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"google.golang.org/genai"

	"github.com/mwalto/jobpost"
	"github.com/mwalto/jobpost/fetch"
	"github.com/mwalto/jobpost/gemini"
	"github.com/mwalto/jobpost/heuristic"
	"github.com/mwalto/jobpost/htmltomarkdown"
	jobhttp "github.com/mwalto/jobpost/http"
	"github.com/mwalto/jobpost/llm"
	"github.com/mwalto/jobpost/pipeline"
	"github.com/mwalto/jobpost/rod"
	"github.com/mwalto/jobpost/schema"
	jobslog "github.com/mwalto/jobpost/slog"
	"github.com/mwalto/jobpost/sqlite"
	"github.com/mwalto/jobpost/trafilatura"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	PostingService  jobpost.PostingService
	AttemptService  jobpost.AttemptService
	SelectorService jobpost.SelectorService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("jobpost"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'jobpost --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set JOBPOST_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.PostingService = sqlite.NewPostingService(m.DB)
	m.AttemptService = sqlite.NewAttemptService(m.DB)
	m.SelectorService = sqlite.NewSelectorService(m.DB)
	deps.DB = m.DB
	deps.Postings = m.PostingService
	deps.Attempts = m.AttemptService
	deps.Selectors = m.SelectorService

	if cmd == "add" {
		logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
			Level: logLevel(cli.Verbose),
		}))

		queue, cleanup, err := m.buildPipeline(ctx, cli, logger, stderr)
		if err != nil {
			return err
		}
		defer cleanup()
		deps.Queue = queue
	}

	return kongCtx.Run(deps)
}

// buildPipeline wires the fetching and extraction stack for the add
// command. The browser fetcher is optional: without a local Chrome the
// pipeline degrades to plain HTTP fetching.
func (m *Main) buildPipeline(ctx context.Context, cli *CLI, logger *slog.Logger, stderr io.Writer) (*pipeline.Queue, func(), error) {
	plain := jobhttp.NewFetcher()

	var browser jobpost.Fetcher
	rodFetcher, err := rod.NewFetcher()
	if err != nil {
		fmt.Fprintln(stderr, "Warning: browser unavailable, JavaScript-rendered pages will not be escalated")
		fmt.Fprintln(stderr, "Hint: install Chrome or Chromium to enable browser rendering")
	} else {
		browser = rodFetcher
	}

	fetcher := jobslog.NewLoggingFetcher(
		fetch.NewFetcher(plain, browser, fetch.WithDomainLimiter(fetch.NewDomainLimiter(1.0))),
		logger,
	)

	extractors := []jobpost.Extractor{
		jobslog.NewLoggingExtractor(schema.NewExtractor(htmltomarkdown.NewConverter()), logger),
		jobslog.NewLoggingExtractor(
			heuristic.NewExtractor(heuristic.WithContentRecoverer(
				trafilatura.NewExtractor(trafilatura.WithConverter(htmltomarkdown.NewConverter())))), logger),
	}

	if cli.Add.LLM {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return nil, nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		var llmOpts []llm.Option
		if browser != nil {
			llmOpts = append(llmOpts, llm.WithBrowserFetcher(browser))
		}
		extractors = append(extractors,
			jobslog.NewLoggingExtractor(llm.NewExtractor(gemini.NewCompleter(client), llmOpts...), logger))
	}

	p := pipeline.New(fetcher, extractors, m.PostingService, m.AttemptService, m.SelectorService,
		pipeline.WithNotifier(jobslog.NewNotifier(logger)),
		pipeline.WithLogger(logger),
	)
	queue := pipeline.NewQueue(p,
		pipeline.WithConcurrency(cli.Add.Concurrency),
		pipeline.WithQueueLogger(logger),
	)

	cleanup := func() {
		queue.Wait()
		_ = fetcher.Close()
	}
	return queue, cleanup, nil
}

func logLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func defaultDBPath() string {
	if path := os.Getenv("JOBPOST_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "jobpost.db"
	}
	dir := filepath.Join(home, ".jobpost")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "jobpost.db")
}
