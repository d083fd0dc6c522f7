package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/eventsift"
	"github.com/fwojciec/eventsift/gemini"
	"github.com/fwojciec/eventsift/goquery"
	eshttp "github.com/fwojciec/eventsift/http"
	"github.com/fwojciec/eventsift/rod"
	esslog "github.com/fwojciec/eventsift/slog"
	"github.com/fwojciec/eventsift/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// APIKey for the Gemini API. Empty disables model-backed answers.
	APIKey string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		APIKey: os.Getenv("GEMINI_API_KEY"),
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
		kong.Name("eventsift"),
		kong.Description("Extract structured event records from event web pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'eventsift --help' to see available commands")
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
	cmd = kongCtx.Selected().Name

	level := slog.LevelError
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if needsDB(cmd, cli) {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set EVENTSIFT_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()
		deps.Events = esslog.NewLoggingEventService(sqlite.NewEventService(m.DB), deps.Logger)
	}

	deps.Normalizer = goquery.NewNormalizer()
	deps.Synthesizer = goquery.NewSynthesizer()
	deps.Sitemaps = esslog.NewLoggingSitemapService(eshttp.NewSitemapService(nil), deps.Logger)

	switch cmd {
	case "extract", "selectors":
		js := cli.Extract.JS
		timeout := cli.Extract.FetchTimeout
		if cmd == "selectors" {
			js = cli.Selectors.JS
			timeout = eshttp.DefaultFetchTimeout
		}

		fetcher, err := newFetcher(js, timeout)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --js")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer fetcher.Close()
		deps.Fetcher = esslog.NewLoggingFetcher(fetcher, deps.Logger)
	}

	if cmd == "extract" {
		capability, err := m.newCapability(ctx, cli.Model)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		if m.APIKey == "" {
			fmt.Fprintln(stderr, "warning: GEMINI_API_KEY not set; extracted fields will be empty. Get a key at https://aistudio.google.com/apikey")
		}
		deps.Capability = esslog.NewLoggingCapability(capability, deps.Logger)
	}

	return kongCtx.Run(deps)
}

// needsDB reports whether the parsed command reads or writes saved events.
func needsDB(cmd string, cli *CLI) bool {
	switch cmd {
	case "list", "stats", "delete":
		return true
	case "extract":
		return cli.Extract.Save
	}
	return false
}

func newFetcher(js bool, timeout time.Duration) (eventsift.Fetcher, error) {
	if js {
		return rod.NewFetcher()
	}
	return eshttp.NewFetcher(eshttp.WithTimeout(timeout)), nil
}

// newCapability connects to Gemini, or returns a NopCapability when no API
// key is configured.
func (m *Main) newCapability(ctx context.Context, model string) (eventsift.Capability, error) {
	if m.APIKey == "" {
		return eventsift.NopCapability{}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  m.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return gemini.NewCapability(client, gemini.WithModel(model)), nil
}

func defaultDBPath() string {
	if path := os.Getenv("EVENTSIFT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "eventsift.db"
	}
	dir := filepath.Join(home, ".eventsift")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "eventsift.db")
}
