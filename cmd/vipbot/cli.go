package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/vipbot"
	"github.com/fwojciec/vipbot/bot"
)

// Refresher runs refresh cycles against the upstream source.
type Refresher interface {
	Refresh(ctx context.Context) (*vipbot.RefreshResult, error)
	Run(ctx context.Context) error
}

// Server serves the command API until its context is canceled.
type Server interface {
	Run(ctx context.Context, addr string) error
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Assistant    *bot.Assistant
	Refresher    Refresher
	Server       Server
	Interactions vipbot.InteractionService
	Updates      vipbot.UpdateService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DataURL      string `name:"data-url" env:"DATA_URL" help:"URL of the published dataset"`
	CommitsURL   string `name:"commits-url" env:"COMMITS_URL" help:"URL of the commits document holding the revision marker"`
	GeminiAPIKey string `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	Model        string `default:"gemini-2.5-flash" env:"GEMINI_MODEL" help:"Gemini model used to answer questions"`
	WebhookURL   string `name:"webhook-url" env:"UPDATE_WEBHOOK_URL" help:"Webhook notified when the catalog changes"`
	LogFile      string `name:"log-file" default:"logs.txt" env:"LOG_FILE" help:"File that records every answered question"`
	DB           string `name:"db" env:"VIPBOT_DB" help:"SQLite database path"`
	Verbose      bool   `short:"v" help:"Enable debug logging"`

	Serve   ServeCmd   `cmd:"" help:"Run the refresh loop and the HTTP command API"`
	Ask     AskCmd     `cmd:"" help:"Ask a question about the catalog"`
	FAQ     FAQCmd     `cmd:"" name:"faq" help:"List FAQ questions or show one answer"`
	Stock   StockCmd   `cmd:"" help:"Show categories or the products of one category"`
	Help    HelpCmd    `cmd:"" help:"Show the assistant's help or one help topic"`
	Status  StatusCmd  `cmd:"" help:"Show catalog and refresh status"`
	History HistoryCmd `cmd:"" help:"List recent answered questions"`
	Updates UpdatesCmd `cmd:"" help:"List recent catalog updates"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr     string        `default:":8080" env:"VIPBOT_ADDR" help:"HTTP listen address"`
	Interval time.Duration `default:"5m" help:"Revision check interval"`
	AskRate  float64       `name:"ask-rate" default:"0.2" help:"Questions per second allowed per user"`
	AskBurst int           `name:"ask-burst" default:"3" help:"Questions a user may ask in a burst"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question []string `arg:"" help:"Question to ask"`
	UserID   string   `name:"user-id" default:"cli" help:"ID recorded for the asking user"`
	UserName string   `name:"user-name" default:"cli" help:"Name recorded for the asking user"`
}

// FAQCmd is the "faq" subcommand.
type FAQCmd struct {
	Index int `arg:"" optional:"" help:"FAQ number to answer"`
}

// StockCmd is the "stock" subcommand.
type StockCmd struct {
	Category []string `arg:"" optional:"" help:"Category name"`
}

// HelpCmd is the "help" subcommand.
type HelpCmd struct {
	Topic string `arg:"" optional:"" help:"Help topic (faq, stock, ask, about)"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct{}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	User  string `help:"Only show questions from this user ID"`
	Limit int    `short:"n" default:"20" help:"Maximum number of interactions"`
}

// UpdatesCmd is the "updates" subcommand.
type UpdatesCmd struct {
	Limit int `short:"n" default:"10" help:"Maximum number of updates"`
}
