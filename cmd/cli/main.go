package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mamasphere/pricing-service/config"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  *zerolog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pricing-service",
	Short: "Pricing Service CLI - location-aware grocery price estimation",
	Long: `A CLI tool for estimating grocery prices and market insights for a
location. Prices are synthesized from a static base-price table with
city multipliers and optionally enriched with real market quotes.`,
	PersistentPreRunE: persistentPreRun,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml or ./config.yaml)")
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
	}
}

// persistentPreRun runs before each command and initializes the logger.
func persistentPreRun(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "help" || cmd.Name() == "completion" {
		return nil
	}
	if cfg == nil {
		return fmt.Errorf("config required for %s command but not loaded", cmd.Name())
	}
	logger = initLogger()
	return nil
}

func initLogger() *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.WarnLevel
	if cfg != nil && cfg.Logging.Level != "" {
		if parsedLevel, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
			level = parsedLevel
		}
	}

	// Always use console format for the CLI.
	var output io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, NoColor: cfg != nil && cfg.Logging.NoColor}

	log := zerolog.New(output).Level(level).With().Timestamp().Logger()
	return &log
}
