package cli

import (
	"fmt"
	"io"
	"vending-route-service/internal/domain"
	"vending-route-service/internal/services"

	"github.com/spf13/cobra"
)

var (
	latFlag      float64
	lonFlag      float64
	maxStopsFlag int
)

var stopsCmd = &cobra.Command{
	Use:   "stops",
	Short: "List every vending machine in the data set",
	Args:  cobra.NoArgs,
	RunE:  runStops,
}

var nearestCmd = &cobra.Command{
	Use:   "nearest",
	Short: "Find the vending machine closest to a position",
	Example: `  vendroute nearest --lat 33.4484 --lon -112.074
  vendroute nearest --lat 33.4484 --lon -112.074 --maps google --json`,
	Args: cobra.NoArgs,
	RunE: runNearest,
}

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Order several nearby vending machines into a walking route",
	Long: `route greedily visits the closest remaining machine at each step.

The ordering is a nearest-neighbor approximation, not an optimal tour.`,
	Example: `  vendroute route --lat 33.4484 --lon -112.074 --max-stops 3`,
	Args:    cobra.NoArgs,
	RunE:    runRoute,
}

func init() {
	for _, c := range []*cobra.Command{nearestCmd, routeCmd} {
		c.Flags().Float64Var(&latFlag, "lat", 0, "Latitude of the starting position in degrees")
		c.Flags().Float64Var(&lonFlag, "lon", 0, "Longitude of the starting position in degrees")
		_ = c.MarkFlagRequired("lat")
		_ = c.MarkFlagRequired("lon")
	}
	routeCmd.Flags().IntVar(&maxStopsFlag, "max-stops", services.DefaultMaxStops, "Maximum number of machines to visit")
}

func runStops(cmd *cobra.Command, args []string) error {
	stops, err := newTripPlanner().ListStops(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, stops)
	}

	headingColor.Fprintf(out, "%d vending machines\n", len(stops))
	for _, s := range stops {
		fmt.Fprintf(out, "  %-6s %s\n", s.ID, describe(s))
	}
	return nil
}

func runNearest(cmd *cobra.Command, args []string) error {
	origin := domain.Coordinates{Lat: latFlag, Lon: lonFlag}

	plan, err := newTripPlanner().FindNearest(cmd.Context(), origin, mapsName)
	if err != nil {
		return err
	}
	return printPlan(cmd.OutOrStdout(), "Nearest vending machine", plan)
}

func runRoute(cmd *cobra.Command, args []string) error {
	if maxStopsFlag < 1 {
		return fmt.Errorf("--max-stops must be at least 1, got %d", maxStopsFlag)
	}

	plan, err := newTripPlanner().PlanTrip(cmd.Context(), services.TripRequest{
		Origin:   domain.Coordinates{Lat: latFlag, Lon: lonFlag},
		MaxStops: maxStopsFlag,
		Maps:     mapsName,
	})
	if err != nil {
		return err
	}
	return printPlan(cmd.OutOrStdout(), "Route", plan)
}

func printPlan(out io.Writer, title string, plan *domain.RoutePlan) error {
	if jsonOutput {
		return writeJSON(out, plan)
	}

	headingColor.Fprintf(out, "%s from %s\n", title, plan.Origin)
	if len(plan.Stops) == 0 {
		fmt.Fprintln(out, "  no vending machines found")
		return nil
	}

	for i, s := range plan.Stops {
		fmt.Fprintf(out, "  %d. %s (%.2f km)\n", i+1, describe(s.Stop), s.LegDistanceKm)
	}
	fmt.Fprintf(out, "Total: %.2f km\n", plan.TotalDistanceKm)
	fmt.Fprintln(out, plan.DeepLink)
	return nil
}

func describe(s domain.Stop) string {
	label := s.Retailer
	if s.Address != "" {
		label += ", " + s.Address
	}
	if s.City != "" {
		label += ", " + s.City
	}
	return label
}
