package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/etnz/dailyprompt/config"
	"github.com/google/subcommands"
	"gopkg.in/yaml.v3"
)

type configCmd struct {
	force bool
}

func (*configCmd) Name() string     { return "config" }
func (*configCmd) Synopsis() string { return "write or show the settings" }
func (*configCmd) Usage() string {
	return `dprompt config init [-f] | show

  init: writes the default settings in dailyprompt.yaml of the data directory.
  show: prints the settings in use, after the files and the environment.
`
}

func (c *configCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "f", false, "overwrite an existing settings file")
}

func (c *configCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}

	switch f.Arg(0) {
	case "init":
		path := filepath.Join(*dataDir, config.FileName)
		if err := initConfig(path, c.force); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Configuration saved to: %s\n", path)
	case "show":
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Print(string(data))
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown action %q\n", f.Arg(0))
		return subcommands.ExitUsageError
	}
	return subcommands.ExitSuccess
}

// initConfig writes the default settings to path.
func initConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return config.Default().SaveToFile(path)
}
