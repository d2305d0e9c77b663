package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/vipbot"
	"github.com/fwojciec/vipbot/bot"
	"github.com/fwojciec/vipbot/fs"
	"github.com/fwojciec/vipbot/gemini"
	vipbothttp "github.com/fwojciec/vipbot/http"
	"github.com/fwojciec/vipbot/inmem"
	"github.com/fwojciec/vipbot/prometheus"
	"github.com/fwojciec/vipbot/refresh"
	vipslog "github.com/fwojciec/vipbot/slog"
	"github.com/fwojciec/vipbot/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Overridden by --db or VIPBOT_DB.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
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
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("vipbot"),
		kong.Description("Catalog assistant answering product, stock and FAQ questions"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'vipbot --help' to see available commands")
	}
	if args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	if cli.DB != "" {
		m.DBPath = cli.DB
	}
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set VIPBOT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	interactions := sqlite.NewInteractionService(m.DB)
	updates := sqlite.NewUpdateService(m.DB)
	deps.Interactions = interactions
	deps.Updates = updates

	cache := inmem.NewCache()
	deps.Assistant = &bot.Assistant{
		Catalog: cache,
		Interactions: vipbot.MultiInteractionLog{
			fs.NewInteractionLog(cli.LogFile),
			interactions,
		},
		Logger: logger,
	}

	switch cmd {
	case "history", "updates", "help":
		return kongCtx.Run(deps)
	}

	if cli.DataURL == "" || cli.CommitsURL == "" {
		fmt.Fprintln(stderr, "Hint: Set DATA_URL and COMMITS_URL to the published dataset and its commits document")
		return vipbot.Errorf(vipbot.EINVALID, "configuration missing: DATA_URL and COMMITS_URL are required")
	}

	src := vipbothttp.NewSource(vipbothttp.NewFetcher(), cli.DataURL, cli.CommitsURL)
	src.Logger = logger
	var source vipbot.Source = vipslog.NewLoggingSource(src, logger)

	notifiers := vipbot.MultiNotifier{updates}
	if cli.WebhookURL != "" {
		notifiers = append(notifiers, vipslog.NewLoggingNotifier(vipbothttp.NewWebhookNotifier(cli.WebhookURL), logger))
	}

	if cmd == "serve" || cmd == "ask" {
		if cli.GeminiAPIKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return vipbot.Errorf(vipbot.EINVALID, "configuration missing: GEMINI_API_KEY is required")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cli.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		deps.Assistant.Asker = vipslog.NewLoggingAsker(gemini.NewAsker(client, cli.Model), logger)
	}

	if cmd == "serve" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(prometheus.NewCatalogCollector(cache))
		source = prometheus.NewMetricsSource(source, reg)

		deps.Assistant.Limiter = bot.NewUserLimiter(cli.Serve.AskRate, cli.Serve.AskBurst)

		server := vipbothttp.NewServer(deps.Assistant, logger)
		server.Metrics = prometheus.NewHTTPMetrics(reg).Middleware(vipbothttp.RoutePattern)
		server.MetricsHandler = prometheus.Handler(reg)
		deps.Server = server
	}

	refresher := &refresh.Refresher{
		Source:   source,
		Catalog:  cache,
		Notifier: notifiers,
		Logger:   logger,
		Interval: cli.Serve.Interval,
	}
	deps.Refresher = refresher
	deps.Assistant.Refresh = refresher

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "vipbot.db"
	}
	dir := filepath.Join(home, ".vipbot")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "vipbot.db")
}
