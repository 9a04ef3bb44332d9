package commands

import (
	"time"

	"github.com/spf13/cobra"

	"apartment-map/geocode"
	"apartment-map/server"
	"apartment-map/services"
	"apartment-map/storage"
	"apartment-map/utils"
)

// ServeCmd runs the local viewer: the map page plus the JSON API the page
// talks to. Listings load once at startup from the enriched data file;
// rows added through the API live in memory until exported or saved.
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the map page and the listings API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd)
			logger := newLogger(cmd)

			if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
				cfg.ListenAddr = listen
			}

			store := storage.NewStore()
			store.ReplaceAll(loadListings(cmd.Context(), cfg))
			logger.Info("[serve] Loaded %d listings from %s", store.Len(), cfg.JSONPath)

			cache := geocode.LoadCache(cfg.CachePath)
			client := geocode.New(cfg, cache, logger)
			enricher := services.NewEnricher(client, cfg.CityHint, logger)

			guard := utils.NewMinIntervalGuard(time.Duration(cfg.SubmitWindowMs) * time.Millisecond)
			drafter := services.NewIssueDrafter(cfg.IssueRepo, cfg.IssueLabel, guard)
			linked := storage.NewLinkedFile()

			srv := server.New(cfg, store, enricher, drafter, linked, logger)
			err := srv.Run()

			if saveErr := cache.Save(); saveErr != nil {
				logger.Warn("[serve] Could not save cache: %v", saveErr)
			}
			return err
		},
	}

	cmd.Flags().String("listen", "", "Listen address (defaults to LISTEN_ADDR)")
	cmd.Flags().String("json", "", "Enriched listings to read (defaults to JSON_PATH)")
	cmd.Flags().BoolP("verbose", "v", false, "Enable debug output")

	return cmd
}
