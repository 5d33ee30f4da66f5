// Package agent sends the daily prompt to a Gemini portfolio manager backed by experts.
//
// The manager is a facilitator: it can ask the Trader for market news and the
// Accountant for the ledger history through function calls.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent is the AI assistant that handles the chat session.
type Agent struct {
	w           io.Writer
	r           *bufio.Reader
	Facilitator *Expert
	Experts     []*Expert

	// Print writes a reply, as is if nil.
	Print func(w io.Writer, markdown string)
}

// New creates a new Agent whose facilitator uses model.
//
// It takes an io.Writer for the agent's output (e.g., os.Stdout), and an
// io.Reader for user input (e.g., os.Stdin).
func New(w io.Writer, r io.Reader, model string, experts ...*Expert) *Agent {
	return &Agent{
		w:           w,
		r:           bufio.NewReader(r),
		Experts:     experts,
		Facilitator: newManager(model, experts...),
	}
}

// Start creates the chats of every expert and the facilitator.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.Experts {
		if err := e.Start(ctx, client); err != nil {
			return err
		}
	}
	return a.Facilitator.Start(ctx, client)
}

// Send sends a message to the facilitator and prints its reply.
func (a *Agent) Send(ctx context.Context, message string) error {
	content, err := a.Facilitator.Ask(ctx, &genai.Part{Text: message})
	if err != nil {
		return err
	}
	a.print(Text(content))
	return nil
}

func (a *Agent) print(reply string) {
	if a.Print != nil {
		a.Print(a.w, reply)
		return
	}
	fmt.Fprintln(a.w, reply)
}

const prompt = "manager> "

// Run starts the interactive REPL session for the agent.
//
// prompts are sent first, as if typed by the user.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Talk to your portfolio manager. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)
		var input string

		// Flush prompts from the list and then ask for the user.
		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, firstLine(input))
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // Clean exit on Ctrl+D
				}
				return err
			}
		}

		input = strings.TrimSpace(input)
		if input == "bye" {
			return nil
		}
		if input == "" {
			continue
		}

		if err := a.Send(ctx, input); err != nil {
			return err
		}
	}
}

// firstLine shortens a multi-line prompt for the echo.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " [...]"
	}
	return s
}
