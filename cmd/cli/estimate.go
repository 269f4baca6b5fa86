package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mamasphere/pricing-service/internal/app"
	"github.com/mamasphere/pricing-service/internal/location"
)

var estimateCity string

var estimateCmd = &cobra.Command{
	Use:   "estimate [item]",
	Short: "Estimate prices for a grocery item",
	Long: `Estimates the price of a grocery item across market channels for a
city. When no city is given the location resolver's fallback chain is
used, ending at the default location.`,
	Args: cobra.ExactArgs(1),
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().StringVar(&estimateCity, "city", "", "city to price for (default: resolved location)")
	rootCmd.AddCommand(estimateCmd)
}

func runEstimate(cmd *cobra.Command, args []string) error {
	item := args[0]

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	a, err := app.Build(ctx, cfg, logger, nil)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	defer a.Close()

	loc := cliLocation(ctx, a, estimateCity)
	result := a.Estimator.Estimate(ctx, item, loc)

	return printJSON(result)
}

// cliLocation returns the location to price for. An explicit city wins
// over the resolver chain.
func cliLocation(ctx context.Context, a *app.App, city string) location.Location {
	if city != "" {
		return location.Location{City: city}
	}
	return a.Resolver.Resolve(ctx)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
