package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"apartment-map/config"
	"apartment-map/services"
	"apartment-map/storage"
	"apartment-map/utils"
)

// Server exposes the listing pipeline over HTTP for the map page: filter
// queries, appends, exports, linked-file saves and issue drafts. State
// lives in the in-memory store; nothing is persisted unless a handler is
// explicitly asked to.
type Server struct {
	cfg      *config.Config
	store    *storage.Store
	enricher *services.Enricher
	drafter  *services.IssueDrafter
	linked   *storage.LinkedFile
	logger   *utils.Logger
}

// New wires a Server around the shared store and services.
func New(cfg *config.Config, store *storage.Store, enricher *services.Enricher,
	drafter *services.IssueDrafter, linked *storage.LinkedFile, logger *utils.Logger) *Server {
	return &Server{
		cfg:      cfg,
		store:    store,
		enricher: enricher,
		drafter:  drafter,
		linked:   linked,
		logger:   logger,
	}
}

// Router builds the route table. The API routes come first; everything
// else falls through to the static map page.
func (s *Server) Router() *mux.Router {
	h := &handler{
		store:    s.store,
		enricher: s.enricher,
		drafter:  s.drafter,
		linked:   s.linked,
		logger:   s.logger,
	}

	router := mux.NewRouter()
	router.HandleFunc("/healthz", h.ReportHealth).Methods("GET")
	router.HandleFunc("/api/listings", h.ListListings).Methods("GET")
	router.HandleFunc("/api/listings", h.AppendListing).Methods("POST")
	router.HandleFunc("/api/export.csv", h.ExportCSV).Methods("GET")
	router.HandleFunc("/api/export.json", h.ExportJSON).Methods("GET")
	router.HandleFunc("/api/link", h.LinkFile).Methods("POST")
	router.HandleFunc("/api/save", h.SaveLinked).Methods("POST")
	router.HandleFunc("/api/issue", h.DraftIssue).Methods("POST")

	if s.cfg.StaticDir != "" {
		router.PathPrefix("/").Handler(http.FileServer(http.Dir(s.cfg.StaticDir)))
	}

	return router
}

// Run serves until the process is interrupted or the listener fails,
// then drains in-flight requests before returning.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:    s.cfg.ListenAddr,
		Handler: s.Router(),
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("[server] Listening on %s", s.cfg.ListenAddr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server: listen: %w", err)
	case <-shutdown:
		s.logger.Info("[server] Shutdown signal received")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
	}

	return nil
}
