// Package dailyprompt builds the daily update of a portfolio managed by an AI
// assistant.
//
// The portfolio lives in a ledger, a CSV file where every trading day appends
// one line per holding and a TOTAL line with the cash balance and the total
// equity. From the latest TOTAL line, the package gathers in a Report:
//   - the last sessions of every holding and benchmark, fetched from a
//     PriceSource,
//   - the Sharpe and Sortino ratios of the equity curve,
//   - optionally, the value of a starting equity invested in an index since
//     the first ledger date.
//
// Only ledger problems are errors. Market data problems degrade the report,
// a symbol without prices is reported as not available.
//
// The renderer package turns a Report into the plain text prompt, the cmd
// package wires everything in the dprompt command line.
package dailyprompt
