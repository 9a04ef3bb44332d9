package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"apartment-map/models"
	"apartment-map/services"
	"apartment-map/storage"
	"apartment-map/utils"
)

type handler struct {
	store    *storage.Store
	enricher *services.Enricher
	drafter  *services.IssueDrafter
	linked   *storage.LinkedFile
	logger   *utils.Logger
}

// HealthReport tells the map page the backend is up.
type HealthReport struct {
	Status   string `json:"status"`
	Listings int    `json:"listings"`
}

// ErrorResponse reports an error.
type ErrorResponse struct {
	Message string `json:"message"`
}

// ListingsResponse is the split the map page renders: markers for the
// visible rows, a side list for the unlocated ones.
type ListingsResponse struct {
	Visible   []models.Listing `json:"visible"`
	Unlocated []models.Listing `json:"unlocated"`
}

// LinkResponse reports the linked-file state after an acquire.
type LinkResponse struct {
	Linked bool   `json:"linked"`
	Path   string `json:"path"`
}

// SaveResponse reports a completed linked-file write.
type SaveResponse struct {
	Saved bool   `json:"saved"`
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// IssueResponse carries the prefilled issue link for the page to open.
type IssueResponse struct {
	URL string `json:"url"`
}

func (h *handler) ReportHealth(w http.ResponseWriter, req *http.Request) {
	sendJSON(w, HealthReport{Status: "ok", Listings: h.store.Len()})
}

// ListListings applies the filter criteria from the query string and
// returns the visible/unlocated split.
func (h *handler) ListListings(w http.ResponseWriter, req *http.Request) {
	criteria, err := parseCriteria(req)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	visible, unlocated := services.Filter(h.store.Snapshot(), criteria)
	if visible == nil {
		visible = []models.Listing{}
	}
	if unlocated == nil {
		unlocated = []models.Listing{}
	}
	sendJSON(w, ListingsResponse{Visible: visible, Unlocated: unlocated})
}

// AppendListing adds one listing to the in-memory collection, geocoding
// it first when it arrives without usable coordinates. A listing with
// nothing to geocode is appended as-is.
func (h *handler) AppendListing(w http.ResponseWriter, req *http.Request) {
	var l models.Listing
	if err := json.NewDecoder(req.Body).Decode(&l); err != nil {
		h.logger.Warn("[server] Bad append payload: %v", err)
		sendError(w, "error decoding request body as listing", http.StatusBadRequest)
		return
	}

	enriched, _ := h.enricher.Enrich(req.Context(), []models.Listing{l})
	h.store.Append(enriched[0])
	sendJSON(w, enriched[0])
}

func (h *handler) ExportCSV(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="apartments.csv"`)
	if err := storage.WriteCSV(w, h.store.Snapshot()); err != nil {
		h.logger.Error("[server] CSV export failed: %v", err)
	}
}

func (h *handler) ExportJSON(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="apartments.json"`)
	if err := storage.WriteJSON(w, h.store.Snapshot()); err != nil {
		h.logger.Error("[server] JSON export failed: %v", err)
	}
}

// LinkFile grants the overwrite-in-place capability for one local sheet.
// An unwritable path counts as a denied permission prompt.
func (h *handler) LinkFile(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Path string `json:"path"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil || strings.TrimSpace(body.Path) == "" {
		sendError(w, "body must carry a non-empty path", http.StatusBadRequest)
		return
	}

	if err := h.linked.Acquire(body.Path); err != nil {
		h.logger.Warn("[server] Link denied: %v", err)
		sendError(w, "link denied: "+err.Error(), http.StatusForbidden)
		return
	}

	h.logger.Info("[server] Linked sheet: %s", h.linked.Path())
	sendJSON(w, LinkResponse{Linked: true, Path: h.linked.Path()})
}

// SaveLinked overwrites the linked sheet with the full current
// collection. Without a link the caller is pointed at the export routes;
// a failed write keeps the link for the next attempt.
func (h *handler) SaveLinked(w http.ResponseWriter, req *http.Request) {
	listings := h.store.Snapshot()

	err := h.linked.Write(listings)
	if errors.Is(err, storage.ErrNotLinked) {
		sendError(w, "no linked file; download /api/export.csv instead", http.StatusConflict)
		return
	}
	if err != nil {
		h.logger.Error("[server] Linked save failed: %v", err)
		sendError(w, "write failed; the link is kept", http.StatusInternalServerError)
		return
	}

	sendJSON(w, SaveResponse{Saved: true, Path: h.linked.Path(), Count: len(listings)})
}

// DraftIssue builds the prefilled issue link for the submitted form
// values. Rapid-fire duplicates inside the submit window are dropped.
func (h *handler) DraftIssue(w http.ResponseWriter, req *http.Request) {
	if !h.drafter.Enabled() {
		sendError(w, "issue submission is not configured", http.StatusServiceUnavailable)
		return
	}

	var l models.Listing
	if err := json.NewDecoder(req.Body).Decode(&l); err != nil {
		sendError(w, "error decoding request body as listing", http.StatusBadRequest)
		return
	}

	draft, ok := h.drafter.Draft(l)
	if !ok {
		sendError(w, "a submission just went out; try again shortly", http.StatusTooManyRequests)
		return
	}

	sendJSON(w, IssueResponse{URL: draft})
}

func parseCriteria(req *http.Request) (models.Criteria, error) {
	var c models.Criteria
	q := req.URL.Query()

	if raw := q.Get("max_rent"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c, errors.New("max_rent must be a whole number")
		}
		c.MaxRent = &n
	}
	c.PropertyType = q.Get("type")
	c.Parking = q.Get("parking")
	return c, nil
}

func sendError(w http.ResponseWriter, msg string, status int) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Message: msg})
}

func sendJSON(w http.ResponseWriter, object any) {
	w.Header().Add("Content-Type", "application/json")
	json.NewEncoder(w).Encode(object)
}
