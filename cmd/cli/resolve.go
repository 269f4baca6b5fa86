package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mamasphere/pricing-service/internal/app"
	"github.com/mamasphere/pricing-service/internal/location"
)

var (
	resolveLat float64
	resolveLon float64
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a location through the detection chain",
	Long: `Runs the location detection chain: device coordinates (when --lat
and --lon are given), credentialed IP lookup, free IP lookup, then the
default location. Prints the first location that resolves.`,
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().Float64Var(&resolveLat, "lat", 0, "device latitude")
	resolveCmd.Flags().Float64Var(&resolveLon, "lon", 0, "device longitude")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	var coords location.CoordinateSource
	if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lon") {
		coords = &location.StaticCoordinateSource{
			Coords: location.Coordinates{Latitude: resolveLat, Longitude: resolveLon},
		}
	}

	a, err := app.Build(ctx, cfg, logger, coords)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	defer a.Close()

	return printJSON(a.Resolver.Resolve(ctx))
}
