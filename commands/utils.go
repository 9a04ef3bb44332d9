package commands

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"apartment-map/config"
	"apartment-map/geocode"
	"apartment-map/models"
	"apartment-map/services"
	"apartment-map/storage"
	"apartment-map/utils"
)

func newLogger(cmd *cobra.Command) *utils.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return utils.NewLogger(verbose)
}

// loadConfig reads the environment configuration and applies the path
// flags the command declares.
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg := config.Load()
	if path, _ := cmd.Flags().GetString("csv"); path != "" {
		cfg.CSVPath = path
	}
	if path, _ := cmd.Flags().GetString("json"); path != "" {
		cfg.JSONPath = path
	}
	return cfg
}

// loadListings reads the enriched collection. The source is normally the
// local data file, but a full URL works too and is fetched with a
// cache-busting parameter, the way the map page loads its data.
func loadListings(ctx context.Context, cfg *config.Config) []models.Listing {
	if strings.HasPrefix(cfg.JSONPath, "http://") || strings.HasPrefix(cfg.JSONPath, "https://") {
		client := &http.Client{Timeout: 15 * time.Second}
		return storage.FetchJSON(ctx, client, cfg.JSONPath)
	}
	return storage.LoadJSONFile(cfg.JSONPath)
}

// runGeocodePass reads the sheet, fills in missing coordinates and writes
// the map data file. Shared by the geocode command and add --geocode.
func runGeocodePass(ctx context.Context, cfg *config.Config, logger *utils.Logger) error {
	listings, err := storage.LoadCSVFile(cfg.CSVPath)
	if err != nil {
		return err
	}
	if len(listings) == 0 {
		logger.Warn("[geocode] No rows found in %s", cfg.CSVPath)
	}

	cache := geocode.LoadCache(cfg.CachePath)
	client := geocode.New(cfg, cache, logger)
	enricher := services.NewEnricher(client, cfg.CityHint, logger)

	enriched, stats := enricher.Enrich(ctx, listings)

	if err := storage.WriteJSONFile(cfg.JSONPath, enriched); err != nil {
		return err
	}
	if err := cache.Save(); err != nil {
		logger.Warn("[geocode] Could not save cache: %v", err)
	}

	fmt.Printf("Wrote %s (%d rows); unresolved: %d\n", cfg.JSONPath, len(enriched), stats.Unresolved)
	return nil
}
