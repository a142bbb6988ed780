package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-screener/internal/analyzer"
	"github.com/rxtech-lab/argo-screener/internal/backtest"
	"github.com/rxtech-lab/argo-screener/internal/config"
	"github.com/rxtech-lab/argo-screener/internal/datasource"
	"github.com/rxtech-lab/argo-screener/internal/indicator"
	"github.com/rxtech-lab/argo-screener/internal/logger"
	"github.com/rxtech-lab/argo-screener/internal/types"
	"github.com/rxtech-lab/argo-screener/internal/version"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// openDataSource picks the backend from the data path: a .db or .duckdb file
// serves every ticker, anything else is treated as a directory of
// <ticker>.csv files.
func openDataSource(dataPath, ticker string, logInstance *logger.Logger) (datasource.DataSource, error) {
	ext := strings.ToLower(filepath.Ext(dataPath))
	if ext == ".db" || ext == ".duckdb" {
		return datasource.NewDuckDBDataSource(dataPath, logInstance)
	}

	return datasource.NewCSVDataSource(filepath.Join(dataPath, ticker+".csv")), nil
}

// analyzeAction runs the indicator, signal and risk pipeline over the
// configured ticker universe and writes per-ticker results as YAML.
func analyzeAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.LoadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	logInstance, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logInstance.Sync()

	pipeline, err := analyzer.NewAnalyzer(cfg, logInstance)
	if err != nil {
		return err
	}

	dataPath := cmd.String("data")
	sentiment := cmd.Float("sentiment")

	results := make([]analyzer.Result, 0, len(cfg.Tickers))
	bar := progressbar.Default(int64(len(cfg.Tickers)))

	for _, ticker := range cfg.Tickers {
		source, err := openDataSource(dataPath, ticker, logInstance)
		if err != nil {
			return err
		}

		series, err := source.Load(ticker)
		source.Close()

		if err != nil {
			logInstance.Warn("skipping ticker, failed to load series",
				zap.String("ticker", ticker),
				zap.Error(err),
			)
			results = append(results, analyzer.Result{Ticker: ticker, Err: err.Error()})
			bar.Add(1)

			continue
		}

		results = append(results, pipeline.Analyze(analyzer.Input{
			Ticker:    ticker,
			Series:    series,
			Chain:     optional.None[types.OptionChain](),
			Sentiment: optional.Some(sentiment),
			Portfolio: optional.None[types.Portfolio](),
		}))
		bar.Add(1)
	}

	return writeYAML(cmd.String("output"), results)
}

// backtestAction replays every configured ticker through the chosen rule and
// writes the reports as YAML.
func backtestAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.LoadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	rule := backtest.Rule(cmd.String("rule"))

	logInstance, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logInstance.Sync()

	indicators, err := indicator.NewEngine(cfg.Indicator)
	if err != nil {
		return err
	}

	engine := backtest.NewEngine(cfg.Backtest, logInstance)
	dataPath := cmd.String("data")

	reports := make([]types.BacktestReport, 0, len(cfg.Tickers))
	bar := progressbar.Default(int64(len(cfg.Tickers)))

	for _, ticker := range cfg.Tickers {
		reports = append(reports, runBacktest(engine, indicators, dataPath, ticker, rule, logInstance))
		bar.Add(1)
	}

	output := cmd.String("output")
	if output == "" {
		return writeYAML("", reports)
	}

	return types.WriteBacktestReports(output, reports)
}

// runBacktest produces one report per ticker; load or indicator faults are
// recorded on the report rather than aborting the run.
func runBacktest(engine *backtest.Engine, indicators *indicator.Engine, dataPath, ticker string, rule backtest.Rule, logInstance *logger.Logger) types.BacktestReport {
	source, err := openDataSource(dataPath, ticker, logInstance)
	if err != nil {
		return engine.Run(ticker, nil, types.IndicatorSet{}, rule)
	}

	series, err := source.Load(ticker)
	source.Close()

	if err != nil {
		logInstance.Warn("failed to load series for backtest",
			zap.String("ticker", ticker),
			zap.Error(err),
		)

		return engine.Run(ticker, nil, types.IndicatorSet{}, rule)
	}

	set, err := indicators.Compute(series)
	if err != nil {
		return engine.Run(ticker, series, types.IndicatorSet{}, rule)
	}

	return engine.Run(ticker, series, set, rule)
}

// schemaAction prints the JSON schema of the config file, or writes it to the
// output path when one is given.
func schemaAction(ctx context.Context, cmd *cli.Command) error {
	cfg := config.DefaultConfig()

	schemaJSON, err := cfg.GenerateSchemaJSON()
	if err != nil {
		return err
	}

	output := cmd.String("output")
	if output == "" {
		fmt.Println(schemaJSON)

		return nil
	}

	return os.WriteFile(output, []byte(schemaJSON), 0644)
}

func writeYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if path == "" {
		fmt.Println(string(data))

		return nil
	}

	return os.WriteFile(path, data, 0644)
}

func main() {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to the screener config file",
		Value:   "config/screener.yaml",
	}
	dataFlag := &cli.StringFlag{
		Name:    "data",
		Aliases: []string{"d"},
		Usage:   "Directory of <ticker>.csv files, or a .duckdb database",
		Value:   "data",
	}
	outputFlag := &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path. Empty prints to stdout.",
	}

	cmd := &cli.Command{
		Name:    "screener",
		Usage:   "Deterministic market analytics over a ticker universe",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			{
				Name:  "analyze",
				Usage: "Compute indicators, signals and risk verdicts for the configured tickers",
				Flags: []cli.Flag{
					configFlag,
					dataFlag,
					outputFlag,
					&cli.FloatFlag{
						Name:  "sentiment",
						Usage: "Sentiment score in [0,1] applied to strategy selection",
						Value: 0.5,
					},
				},
				Action: analyzeAction,
			},
			{
				Name:  "backtest",
				Usage: "Replay the configured tickers through a trading rule",
				Flags: []cli.Flag{
					configFlag,
					dataFlag,
					outputFlag,
					&cli.StringFlag{
						Name:    "rule",
						Aliases: []string{"r"},
						Usage:   fmt.Sprintf("Replay rule (%s, %s)", backtest.RuleMomentum, backtest.RuleMeanReversion),
						Value:   string(backtest.RuleMomentum),
					},
				},
				Action: backtestAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON schema of the config file",
				Flags:  []cli.Flag{outputFlag},
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
