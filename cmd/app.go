// Package cmd implements the dprompt command line.
//
// A main package calls Register, then Execute on the user-selected subcommand.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/dailyprompt"
	"github.com/etnz/dailyprompt/config"
	"github.com/etnz/dailyprompt/eodhd"
	"github.com/etnz/dailyprompt/logger"
	"github.com/etnz/dailyprompt/yahoo"
	"github.com/google/subcommands"
)

// Register the subcommands.
func Register(c *subcommands.Commander) {
	c.Register(&generateCmd{}, "prompt")
	c.Register(&askCmd{}, "prompt")

	c.Register(&searchCmd{}, "market")

	c.Register(&configCmd{}, "settings")
	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	dataDir = flag.String("d", ".", "data directory holding the ledger and the settings")
	source  = flag.String("source", "", "price source (yahoo, eodhd or offline), overrides the settings")
	verbose = flag.Bool("v", false, "verbose logging")
)

// Execute runs the selected subcommand, Ctrl-C cancels its context.
func Execute(c *subcommands.Commander) subcommands.ExitStatus {
	ctx, stop := interruptible(context.Background())
	defer stop()
	return c.Execute(ctx)
}

// interruptible returns a context canceled on the first interrupt signal.
func interruptible(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}

// SetupLogger configures the global logger from the command line flags.
func SetupLogger() {
	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger.SetGlobalLogger(logger.New(logger.Config{Level: level, Pretty: true}))
}

// loadConfig loads the settings of the data directory, the -source flag wins.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*dataDir)
	if err != nil {
		return nil, err
	}
	if *source != "" {
		cfg.Market.Source = *source
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// newSource returns the price source selected by cfg.
func newSource(cfg *config.Config) (dailyprompt.PriceSource, error) {
	switch cfg.Market.Source {
	case config.SourceEODHD:
		cacheDir, err := os.UserCacheDir()
		if err == nil {
			cacheDir = filepath.Join(cacheDir, "dailyprompt")
		}
		c, err := eodhd.NewClient(cfg.Market.EODHDKey, cacheDir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.SourceOffline:
		return new(dailyprompt.StaticSource), nil
	case config.SourceYahoo:
		return yahoo.NewClient(), nil
	}
	return nil, fmt.Errorf("unknown price source %q", cfg.Market.Source)
}

// printMarkdown renders markdown on the terminal.
func printMarkdown(md string) { fmt.Print(renderMarkdown(md)) }

// renderMarkdown renders markdown for the terminal, as is when it cannot.
func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return md + "\n"
	}
	out, err := r.Render(md)
	if err != nil {
		return md + "\n"
	}
	return out
}
