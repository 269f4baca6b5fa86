package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mamasphere/pricing-service/internal/app"
)

var insightCity string

var insightCmd = &cobra.Command{
	Use:   "insight",
	Short: "Summarize the local grocery market",
	Long: `Builds a market insight for a city: price level classification,
deal candidates over the staple basket, and a price alert message.`,
	RunE: runInsight,
}

func init() {
	insightCmd.Flags().StringVar(&insightCity, "city", "", "city to summarize (default: resolved location)")
	rootCmd.AddCommand(insightCmd)
}

func runInsight(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	a, err := app.Build(ctx, cfg, logger, nil)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	defer a.Close()

	loc := cliLocation(ctx, a, insightCity)
	insight := a.Aggregator.Summarize(ctx, loc)

	return printJSON(insight)
}
