// Package config holds the settings of the daily prompt generator.
//
// Settings come, by increasing priority, from the built-in defaults, the
// dailyprompt.yaml and tickers.json files of the data directory, and the
// environment (a .env file is honored).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/dailyprompt"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// File names looked up in the data directory.
const (
	FileName         = "dailyprompt.yaml"
	BenchmarksFile   = "tickers.json"
	EnvFile          = ".env"
	DefaultLedger    = "Daily Updates.csv"
	DefaultOutput    = "prompt.md"
	DefaultModel     = "gemini-2.5-flash"
	DefaultIndex     = "^GSPC"
	DefaultIndexName = "S&P 500"
	DefaultPortfolio = "Gemini"
)

// Environment variables overriding the files.
const (
	EnvSource   = "DAILYPROMPT_SOURCE"
	EnvEODHDKey = "EODHD_API_KEY"
	EnvModel    = "DAILYPROMPT_MODEL"
)

// Price sources.
const (
	SourceYahoo   = "yahoo"
	SourceEODHD   = "eodhd"
	SourceOffline = "offline"
)

// Sources lists the supported price sources.
var Sources = []string{SourceYahoo, SourceEODHD, SourceOffline}

// DefaultBenchmarks are compared to the portfolio every day.
var DefaultBenchmarks = []string{"IWO", "XBI", "SPY", "IWM"}

// Config represents the complete configuration.
type Config struct {
	Portfolio PortfolioConfig `json:"portfolio" yaml:"portfolio"`
	Market    MarketConfig    `json:"market" yaml:"market"`
	Report    ReportConfig    `json:"report" yaml:"report"`
	Assistant AssistantConfig `json:"assistant" yaml:"assistant"`

	// DataDir is the directory the relative paths are resolved against.
	DataDir string `json:"-" yaml:"-"`
}

// PortfolioConfig describes the ledger.
type PortfolioConfig struct {
	Name       string `json:"name" yaml:"name"`
	LedgerFile string `json:"ledger_file" yaml:"ledger_file"`
}

// MarketConfig describes where prices come from and what the portfolio is compared to.
type MarketConfig struct {
	Source     string   `json:"source" yaml:"source"`
	Benchmarks []string `json:"benchmarks" yaml:"benchmarks"`
	Index      string   `json:"index" yaml:"index"`
	IndexName  string   `json:"index_name" yaml:"index_name"`
	RiskFree   float64  `json:"risk_free" yaml:"risk_free"`

	// EODHDKey is only read from the environment.
	EODHDKey string `json:"-" yaml:"-"`
}

// ReportConfig describes the generated prompt.
type ReportConfig struct {
	OutputFile string `json:"output_file" yaml:"output_file"`
	Preamble   string `json:"preamble" yaml:"preamble"`
}

// AssistantConfig describes the assistant the prompt is sent to.
type AssistantConfig struct {
	Model string `json:"model" yaml:"model"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Portfolio: PortfolioConfig{
			Name:       DefaultPortfolio,
			LedgerFile: DefaultLedger,
		},
		Market: MarketConfig{
			Source:     SourceYahoo,
			Benchmarks: slices.Clone(DefaultBenchmarks),
			Index:      DefaultIndex,
			IndexName:  DefaultIndexName,
			RiskFree:   dailyprompt.DefaultRiskFree,
		},
		Report: ReportConfig{
			OutputFile: DefaultOutput,
			Preamble:   dailyprompt.DefaultPreamble,
		},
		Assistant: AssistantConfig{Model: DefaultModel},
		DataDir:   ".",
	}
}

// Load builds the configuration of a data directory.
func Load(dataDir string) (*Config, error) {
	// .env files are optional.
	_ = godotenv.Load(filepath.Join(dataDir, EnvFile))
	_ = godotenv.Load()

	cfg := Default()
	path := filepath.Join(dataDir, FileName)
	if _, err := os.Stat(path); err == nil {
		if cfg, err = LoadFromFile(path); err != nil {
			return nil, err
		}
	}
	cfg.DataDir = dataDir

	benchmarks, err := LoadBenchmarks(filepath.Join(dataDir, BenchmarksFile))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		log.Warn().Err(err).Msg("ignoring benchmarks file")
	case len(benchmarks) > 0:
		cfg.Market.Benchmarks = benchmarks
	}

	cfg.Market.Source = getEnvDefault(EnvSource, cfg.Market.Source)
	cfg.Market.EODHDKey = os.Getenv(EnvEODHDKey)
	cfg.Assistant.Model = getEnvDefault(EnvModel, cfg.Assistant.Model)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a YAML or JSON file.
//
// Settings missing from the file keep their default value.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile saves configuration to a file, JSON unless the extension is .yaml or .yml.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Portfolio.LedgerFile == "" {
		return fmt.Errorf("portfolio.ledger_file is required")
	}
	if c.Report.OutputFile == "" {
		return fmt.Errorf("report.output_file is required")
	}
	if !slices.Contains(Sources, c.Market.Source) {
		return fmt.Errorf("market.source must be one of %s, got %q", strings.Join(Sources, ", "), c.Market.Source)
	}
	if c.Market.Index == "" {
		return fmt.Errorf("market.index is required")
	}
	if c.Market.RiskFree < 0 || c.Market.RiskFree >= 1 {
		return fmt.Errorf("market.risk_free must be in [0, 1), got %v", c.Market.RiskFree)
	}
	for _, b := range c.Market.Benchmarks {
		if strings.TrimSpace(b) == "" {
			return fmt.Errorf("market.benchmarks contains an empty symbol")
		}
	}
	return nil
}

// LedgerPath returns the path of the ledger file.
func (c *Config) LedgerPath() string { return c.resolve(c.Portfolio.LedgerFile) }

// OutputPath returns the path of the generated prompt.
func (c *Config) OutputPath() string { return c.resolve(c.Report.OutputFile) }

// Index returns the index the portfolio is compared to.
func (c *Config) Index() dailyprompt.Index {
	return dailyprompt.Index{Symbol: c.Market.Index, Name: c.Market.IndexName}
}

func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// LoadBenchmarks reads the benchmark symbols of a tickers.json file:
//
//	{"benchmarks": ["IWO", "XBI", "SPY", "IWM"]}
//
// Symbols are upper cased and blanks are dropped.
func LoadBenchmarks(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	jval, err := jsonpath.Get("$.benchmarks", jobj)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	list, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("parse %s: benchmarks is not a list", path)
	}
	var symbols []string
	for _, v := range list {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("parse %s: benchmark %v is not a string", path, v)
		}
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			symbols = append(symbols, s)
		}
	}
	return symbols, nil
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
