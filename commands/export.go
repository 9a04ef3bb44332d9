package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"apartment-map/storage"
)

// ExportCmd writes the enriched listings as a downloadable artifact, to a
// file or to stdout. The same codecs back the server's export endpoints.
func ExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the enriched listings as CSV or JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd)
			format, _ := cmd.Flags().GetString("format")
			out, _ := cmd.Flags().GetString("out")

			listings := loadListings(cmd.Context(), cfg)

			switch format {
			case "csv":
				if out == "" {
					return storage.WriteCSV(os.Stdout, listings)
				}
				if err := storage.WriteCSVFile(out, listings); err != nil {
					return err
				}
			case "json":
				if out == "" {
					return storage.WriteJSON(os.Stdout, listings)
				}
				if err := storage.WriteJSONFile(out, listings); err != nil {
					return err
				}
			default:
				return fmt.Errorf("export: unknown format %q (want csv or json)", format)
			}

			fmt.Printf("Wrote %s (%d rows)\n", out, len(listings))
			return nil
		},
	}

	cmd.Flags().String("format", "csv", "Output format: csv or json")
	cmd.Flags().String("out", "", "Output file (defaults to stdout)")
	cmd.Flags().String("json", "", "Enriched listings to read (defaults to JSON_PATH)")
	cmd.Flags().BoolP("verbose", "v", false, "Enable debug output")

	return cmd
}
