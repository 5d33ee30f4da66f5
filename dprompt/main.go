// Command dprompt writes the daily prompt of an AI managed portfolio.
package main

import (
	"flag"
	"os"
	"path"

	"github.com/etnz/dailyprompt/cmd"
	"github.com/google/subcommands"
)

func main() {
	// no-op unless the shell is asking for completions.
	cmd.Completion().Complete("dprompt")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	cmd.SetupLogger()
	os.Exit(int(cmd.Execute(commander)))
}
