package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"apartment-map/scraper/seloger"
	"apartment-map/services"
	"apartment-map/storage"
)

// AddCmd fetches one announce page, extracts what it can and appends the
// row to the sheet. Flags override or complete whatever the page did not
// yield; fields left empty stay empty in the sheet.
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <url>",
		Short: "Fetch an announce page and append it to the sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd)
			logger := newLogger(cmd)
			url := args[0]

			page, err := seloger.New(cfg, logger).Fetch(cmd.Context(), url)
			if err != nil {
				return err
			}

			x := services.NewExtractor(logger).Extract(page)
			applyFieldFlags(cmd, &x)

			if missing := missingFields(x); len(missing) > 0 {
				logger.Warn("[add] Page yielded no %s; the row keeps them empty", strings.Join(missing, ", "))
			}

			label, _ := cmd.Flags().GetString("label")
			listing := x.Listing(url, label)

			if err := storage.AppendCSVFile(cfg.CSVPath, listing); err != nil {
				return err
			}
			fmt.Printf("Added to %s\n", cfg.CSVPath)

			if runGeo, _ := cmd.Flags().GetBool("geocode"); runGeo {
				return runGeocodePass(cmd.Context(), cfg, logger)
			}
			return nil
		},
	}

	cmd.Flags().String("csv", "", "Sheet to append to (defaults to CSV_PATH)")
	cmd.Flags().String("label", "", "Short display label (neighbourhood)")
	cmd.Flags().Int("loyer", 0, "Monthly rent in euros")
	cmd.Flags().String("adresse", "", "Full street address")
	cmd.Flags().Int("chambres", 0, "Number of bedrooms")
	cmd.Flags().Float64("surface", 0, "Surface in square meters")
	cmd.Flags().String("type", "", "Property type (T1/T2/T3/...)")
	cmd.Flags().String("cuisine", "", "Equipped kitchen (oui/non)")
	cmd.Flags().String("parking", "", "Parking (oui/non)")
	cmd.Flags().Bool("geocode", false, "Run the geocode pass after appending")
	cmd.Flags().BoolP("verbose", "v", false, "Enable debug output")

	return cmd
}

// applyFieldFlags lets explicit flags win over extracted values. The type
// is re-derived when the bedroom count changes unless the flag pins it.
func applyFieldFlags(cmd *cobra.Command, x *services.Extraction) {
	if cmd.Flags().Changed("loyer") {
		n, _ := cmd.Flags().GetInt("loyer")
		x.Rent = &n
	}
	if adresse, _ := cmd.Flags().GetString("adresse"); adresse != "" {
		x.Address = adresse
	}
	if cmd.Flags().Changed("chambres") {
		n, _ := cmd.Flags().GetInt("chambres")
		x.Bedrooms = &n
		if !cmd.Flags().Changed("type") {
			x.Type = services.TypeFromBedrooms(x.Bedrooms)
		}
	}
	if cmd.Flags().Changed("surface") {
		f, _ := cmd.Flags().GetFloat64("surface")
		x.SurfaceM2 = &f
	}
	if t, _ := cmd.Flags().GetString("type"); t != "" {
		x.Type = strings.ToUpper(strings.TrimSpace(t))
	}
	if c, _ := cmd.Flags().GetString("cuisine"); c != "" {
		x.Kitchen = strings.ToLower(strings.TrimSpace(c))
	}
	if p, _ := cmd.Flags().GetString("parking"); p != "" {
		x.Parking = strings.ToLower(strings.TrimSpace(p))
	}
}

func missingFields(x services.Extraction) []string {
	var missing []string
	if x.Rent == nil {
		missing = append(missing, "rent")
	}
	if x.Address == "" {
		missing = append(missing, "address")
	}
	if x.SurfaceM2 == nil {
		missing = append(missing, "surface")
	}
	if x.Bedrooms == nil {
		missing = append(missing, "bedrooms")
	}
	if x.Kitchen == "" {
		missing = append(missing, "kitchen")
	}
	if x.Parking == "" {
		missing = append(missing, "parking")
	}
	return missing
}
