package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/dailyprompt/agent"
	"github.com/etnz/dailyprompt/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// askCmd sends the daily prompt to the assistant.
type askCmd struct {
	startingEquity string
	once           bool
	today          string
}

func (*askCmd) Name() string     { return "ask" }
func (*askCmd) Synopsis() string { return "send the daily prompt to the AI portfolio manager" }
func (*askCmd) Usage() string {
	return `dprompt ask [-once] [-starting-equity <amount>] [<message>...]

  Builds the daily prompt and sends it to a Gemini portfolio manager, then
  starts an interactive session. The manager can consult a trader for market
  news and an accountant for the ledger history.

  Extra arguments are sent as a second message.
  Requires the GEMINI_API_KEY environment variable.
`
}

func (c *askCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.startingEquity, "starting-equity", "", "compare the portfolio to the index from this starting equity")
	f.BoolVar(&c.once, "once", false, "print the reply to the prompt and exit")
	f.StringVar(&c.today, "today", "", "day of the prompt (YYYY-MM-DD), today if empty")
}

func (c *askCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	today, err := parseToday(c.today)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	start := startingEquity(os.Stdout, c.startingEquity, cfg.Market.IndexName)

	ledger, report, err := buildReport(ctx, cfg, start, today)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	prompts := []string{renderer.PromptText(report)}
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	model := cfg.Assistant.Model
	a := agent.New(os.Stdout, os.Stdin, model, agent.NewTrader(model), agent.NewAccountant(model, ledger))
	a.Print = func(w io.Writer, md string) { fmt.Fprint(w, renderMarkdown(md)) }

	if c.once {
		err = sendAll(ctx, a, client, prompts)
	} else {
		err = a.Run(ctx, client, prompts...)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// sendAll sends every prompt without waiting for the user.
func sendAll(ctx context.Context, a *agent.Agent, client *genai.Client, prompts []string) error {
	if err := a.Start(ctx, client); err != nil {
		return err
	}
	for _, p := range prompts {
		if err := a.Send(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
