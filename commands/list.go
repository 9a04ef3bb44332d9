package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"apartment-map/models"
	"apartment-map/services"
)

// ListCmd prints the enriched sheet after a filter pass, split the way
// the map splits it: matching rows first, unlocated rows after.
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Filter the enriched listings and print them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd)

			var criteria models.Criteria
			if cmd.Flags().Changed("max-rent") {
				n, _ := cmd.Flags().GetInt("max-rent")
				criteria.MaxRent = &n
			}
			criteria.PropertyType, _ = cmd.Flags().GetString("type")
			criteria.Parking, _ = cmd.Flags().GetString("parking")

			listings := loadListings(cmd.Context(), cfg)
			visible, unlocated := services.Filter(listings, criteria)
			printListings(visible, unlocated)
			return nil
		},
	}

	cmd.Flags().Int("max-rent", 0, "Keep rows at or under this monthly rent")
	cmd.Flags().String("type", "", "Keep rows of this property type (T1/T2/...)")
	cmd.Flags().String("parking", "", "Keep rows with this parking value (oui/non)")
	cmd.Flags().String("json", "", "Enriched listings to read (defaults to JSON_PATH)")
	cmd.Flags().BoolP("verbose", "v", false, "Enable debug output")

	return cmd
}

func printListings(visible, unlocated []models.Listing) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🏠 APARTMENT SHEET\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Matching Listings\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(visible) == 0 {
		fmt.Printf("  Nothing matches the current criteria\n")
	} else {
		for i, l := range visible {
			fmt.Printf("  \033[1m%d.\033[0m %-34s %-4s \033[1;32m%s\033[0m\n",
				i+1, truncate(displayName(l), 32), l.Type, rentLabel(l.Rent))
			if detail := detailLine(l); detail != "" {
				fmt.Printf("     %s\n", detail)
			}
		}
	}
	fmt.Println()

	if len(unlocated) > 0 {
		fmt.Printf("\033[1;33m  Unlocated (no usable coordinates)\033[0m\n")
		fmt.Printf("  %s\n", thin)
		for _, l := range unlocated {
			fmt.Printf("  %-38s %s\n", truncate(displayName(l), 36), truncate(l.URL, 40))
		}
		fmt.Println()
	}

	fmt.Printf("\033[1;33m  Summary\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Matching  : \033[1m%d\033[0m\n", len(visible))
	fmt.Printf("  Unlocated : \033[1m%d\033[0m\n", len(unlocated))
	if avg, ok := averageRent(visible); ok {
		fmt.Printf("  Average rent : \033[1;32m%d €\033[0m\n", avg)
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func displayName(l models.Listing) string {
	if l.Address != "" {
		return l.Address
	}
	if l.Label != "" {
		return l.Label
	}
	return l.URL
}

func detailLine(l models.Listing) string {
	var parts []string
	if l.SurfaceM2 != nil {
		parts = append(parts, strconv.FormatFloat(*l.SurfaceM2, 'f', -1, 64)+" m²")
	}
	if l.Bedrooms != nil {
		parts = append(parts, fmt.Sprintf("%d ch.", *l.Bedrooms))
	}
	if l.Kitchen != "" {
		parts = append(parts, "cuisine équipée: "+l.Kitchen)
	}
	if l.Parking != "" {
		parts = append(parts, "parking: "+l.Parking)
	}
	return strings.Join(parts, " · ")
}

func rentLabel(rent *int) string {
	if rent == nil {
		return "—"
	}
	return strconv.Itoa(*rent) + " €"
}

func averageRent(listings []models.Listing) (int, bool) {
	var total, n int
	for _, l := range listings {
		if l.Rent != nil {
			total += *l.Rent
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return total / n, true
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
