package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"vending-route-service/internal/adapters/deeplink"
	"vending-route-service/internal/adapters/repositories"
	"vending-route-service/internal/config"
	"vending-route-service/internal/services"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	dataPath   string
	jsonOutput bool
	mapsName   string

	headingColor = color.New(color.FgCyan, color.Bold)
)

// rootCmd is the root command for vendroute.
var rootCmd = &cobra.Command{
	Use:     "vendroute",
	Version: "dev",
	Short:   "Find and route to nearby vending machines",
	Long: `vendroute plans walks to nearby vending machines from a position you give it.

It reads the vending machine data set from a JSON file, picks the nearest
machine or greedily orders several into a short route, and prints a deep link
that opens the route in Apple Maps or Google Maps.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", config.Get("DATA_PATH", "data/seeds/vending_machines.json"), "Path to the vending machine JSON data set")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&mapsName, "maps", config.Get("MAPS_PROVIDER", deeplink.Apple), "Deep link provider (apple or google)")

	rootCmd.AddCommand(stopsCmd, nearestCmd, routeCmd)
}

// newTripPlanner wires the planner against the JSON data set named by --data.
func newTripPlanner() *services.TripPlanner {
	repo := repositories.NewJSONStopRepository(dataPath)
	return services.NewTripPlanner(repo, deeplink.Formatters(), services.WithDefaultMaps(mapsName))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
