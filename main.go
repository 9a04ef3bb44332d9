package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"apartment-map/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "apartment-map",
		Short: "Curate, geocode and map apartment listings",
		Long: "apartment-map maintains a small curated sheet of apartment listings,\n" +
			"fills in coordinates through a geocoding service and feeds the result\n" +
			"to a Leaflet map page.",
	}

	rootCmd.AddCommand(
		commands.GeocodeCmd(),
		commands.AddCmd(),
		commands.ListCmd(),
		commands.ExportCmd(),
		commands.ServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
