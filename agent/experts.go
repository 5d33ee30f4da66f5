package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/dailyprompt"
	"github.com/etnz/dailyprompt/date"
	"github.com/etnz/dailyprompt/docs"
	"google.golang.org/genai"
)

// DefaultModel is used by experts created with an empty model name.
const DefaultModel = "gemini-2.5-flash"

func instruction(text string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: text}}}
}

func modelOrDefault(model string) string {
	if model == "" {
		return DefaultModel
	}
	return model
}

// newManager creates the facilitator, the portfolio manager receiving the daily prompt.
func newManager(model string, experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Manager",
		ModelName: modelOrDefault(model),
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: instruction(`
			You are a professional portfolio manager in charge of a small real money portfolio.
			Every trading day you receive an update with the closing prices of the holdings and
			benchmarks, risk ratios, the total equity, the holdings with their stop losses and
			the cash balance.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			Decide on the trades for the next session: buys, sells and stop loss updates. State
			each order clearly with ticker, shares, limit price and stop loss, and explain your
			reasoning shortly. Only use the available cash, no margin, no fractional shares.`),
		},
		Library: NewLibrary(experts),
	}
}

// NewTrader creates an expert grounded on Google Search for market news.
func NewTrader(model string) *Expert {
	return &Expert{
		Name: "Trader",
		Description: `This is an expert trader,
		Very well aware of all the financial products and institutions,
		about the latest news about the different funds or companies.
		Ask the Trader whenever you need recent or grounding information.`,
		ModelName: modelOrDefault(model),
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: instruction(`
			You are a expert in Trading, you can search and find about anything related to
			financial institutions, companies, markets, funds etc. You Leverage Google Search to
			ground your assertions in a solid truth.
			You can get the latests news too, and you know how to relate them to the user's request.`),
		},
	}
}

// NewAccountant creates an expert answering questions on the ledger history.
func NewAccountant(model string, ledger *dailyprompt.Ledger) *Expert {
	lib := LedgerFunctions(ledger)
	return &Expert{
		Name: "Accountant",
		Description: `This is the Accountant. He is in charge of reading the portfolio's daily ledger.
		He knows the holdings, cash and equity of every past day.`,
		ModelName: modelOrDefault(model),
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: instruction(`
			You are an accountant in charge of the portfolio's daily ledger.
			You know how to use the Tools to extract relevant information about the portfolio.
			You are part of a team of experts, yours is everything about the portfolio history.

			` + must(docs.GetTopic("ledger"))),
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

var dateParameter = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"date": {
			Type:        genai.TypeString,
			Description: `The date in YYYY-MM-DD format. The latest ledger date is the default.`,
		},
	},
}

// LedgerFunctions returns the tools reading the ledger.
func LedgerFunctions(ledger *dailyprompt.Ledger) []Function {
	statement := &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Statement",
			Description: `Statement returns the holdings, cash balance and total equity recorded in the ledger on the given day, or the closest day before.`,
			Parameters:  dateParameter,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The statement as plain text, one holding per line.",
			},
		},
	}
	statement.Func = func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		name := statement.Decl.Name
		on, err := parseDate(ledger, args)
		if err != nil {
			return errorResponse(id, name, err)
		}
		st, err := ledger.At(on)
		if err != nil {
			return errorResponse(id, name, err)
		}
		return outputResponse(id, name, FormatStatement(st))
	}

	history := &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "EquityHistory",
			Description: `EquityHistory returns the total equity of the portfolio for every day of the ledger.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "One 'date equity' pair per line, in chronological order.",
			},
		},
	}
	history.Func = func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		var b strings.Builder
		for on, equity := range ledger.EquitySeries().Values() {
			fmt.Fprintf(&b, "%s %.2f\n", on, equity)
		}
		return outputResponse(id, history.Decl.Name, b.String())
	}

	return []Function{statement, history}
}

// FormatStatement renders a statement as plain text.
func FormatStatement(st *dailyprompt.Statement) string {
	var b strings.Builder
	fmt.Fprintf(&b, "statement on %s\n", st.Date)
	fmt.Fprintln(&b, "ticker shares buy_price stop_loss cost_basis")
	for _, h := range st.Holdings {
		fmt.Fprintln(&b, h)
	}
	fmt.Fprintf(&b, "cash balance: %s\n", dailyprompt.M(st.Cash).Fixed())
	fmt.Fprintf(&b, "total equity: %s\n", dailyprompt.M(st.Equity).Fixed())
	return b.String()
}

func parseDate(ledger *dailyprompt.Ledger, args map[string]any) (date.Date, error) {
	latest, _ := ledger.LatestDate()
	idate, hasDate := args["date"]
	if !hasDate {
		return latest, nil
	}
	sdate, ok := idate.(string)
	if !ok {
		return latest, fmt.Errorf("argument 'date' is not a string as expected but %T", idate)
	}
	if sdate == "" {
		return latest, nil
	}
	on, err := date.Parse(sdate)
	if err != nil {
		return latest, fmt.Errorf("argument 'date' must be a valid YYYY-MM-DD date got %q", sdate)
	}
	return on, nil
}
