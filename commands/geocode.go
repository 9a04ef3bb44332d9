package commands

import (
	"github.com/spf13/cobra"
)

// GeocodeCmd turns the curated sheet into the map data file, looking up
// coordinates for every row that lacks them.
func GeocodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "geocode",
		Short: "Geocode the sheet and write the map data file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd)
			logger := newLogger(cmd)
			return runGeocodePass(cmd.Context(), cfg, logger)
		},
	}

	cmd.Flags().String("csv", "", "Input sheet (defaults to CSV_PATH)")
	cmd.Flags().String("json", "", "Output map data file (defaults to JSON_PATH)")
	cmd.Flags().BoolP("verbose", "v", false, "Enable debug output")

	return cmd
}
