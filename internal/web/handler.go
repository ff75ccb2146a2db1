// Package web serves the campaign manager pages and its JSON API.
//
// Every API response carries the {"ok": bool} envelope. Success payloads
// merge extra fields into it, failures carry a single "error" message.
package web

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/plotgod/internal/platform/errors"
	"github.com/louisbranch/plotgod/internal/platform/httpx"
	"github.com/louisbranch/plotgod/internal/storage"
)

// Generator produces session prep text from a user prompt.
type Generator interface {
	Generate(ctx context.Context, userPrompt string) (string, error)
}

// Handler routes campaign manager requests.
type Handler struct {
	store     storage.Store
	generator Generator
}

// NewHandler wires the page and API routes around the store and the
// prep generator.
func NewHandler(store storage.Store, generator Generator) http.Handler {
	h := &Handler{store: store, generator: generator}
	return h.routes()
}

func (h *Handler) routes() http.Handler {
	postOnly := httpx.RequireMethod(http.MethodPost)

	mux := http.NewServeMux()
	mux.Handle("/", http.HandlerFunc(h.handleIndex))
	mux.Handle("/generate", postOnly(http.HandlerFunc(h.handleGenerate)))
	mux.Handle("/overview", postOnly(http.HandlerFunc(h.handleOverview)))
	mux.Handle("/api/campaigns", http.HandlerFunc(h.handleCampaigns))
	mux.Handle("/api/campaigns/", http.HandlerFunc(h.handleCampaignRoutes))
	mux.Handle("/api/locations", http.HandlerFunc(h.handleLocations))
	mux.Handle("/api/locations/", http.HandlerFunc(h.handleLocationRoutes))
	return httpx.Chain(mux, httpx.RecoverPanic(), httpx.RequestID())
}

var errRouteNotFound = apperrors.E(apperrors.KindNotFound, "not found")

// handleCampaignRoutes dispatches everything under /api/campaigns/{id}.
func (h *Handler) handleCampaignRoutes(w http.ResponseWriter, r *http.Request) {
	parts := splitPathParts(strings.TrimPrefix(r.URL.Path, "/api/campaigns/"))
	if len(parts) == 0 {
		writeError(w, errRouteNotFound)
		return
	}
	campaignID, ok := parseID(parts[0])
	if !ok {
		writeError(w, errRouteNotFound)
		return
	}

	switch {
	// /api/campaigns/{id}
	case len(parts) == 1:
		h.handleCampaignItem(w, r, campaignID)
	// /api/campaigns/{id}/delete
	case len(parts) == 2 && parts[1] == "delete":
		h.handleCampaignDelete(w, r, campaignID)
	// /api/campaigns/{id}/last-session
	case len(parts) == 2 && parts[1] == "last-session":
		h.handleCampaignLastSession(w, r, campaignID)
	// /api/campaigns/{id}/sessions...
	case parts[1] == "sessions":
		h.handleSessionRoutes(w, r, campaignID, parts[2:])
	// /api/campaigns/{id}/party...
	case parts[1] == "party":
		h.handlePartyRoutes(w, r, campaignID, parts[2:])
	// /api/campaigns/{id}/npcs...
	case parts[1] == "npcs":
		h.handleNPCRoutes(w, r, campaignID, parts[2:])
	default:
		writeError(w, errRouteNotFound)
	}
}

// handleLocationRoutes dispatches /api/locations/{id} and its delete form.
func (h *Handler) handleLocationRoutes(w http.ResponseWriter, r *http.Request) {
	parts := splitPathParts(strings.TrimPrefix(r.URL.Path, "/api/locations/"))
	if len(parts) == 0 {
		writeError(w, errRouteNotFound)
		return
	}
	locationID, ok := parseID(parts[0])
	if !ok {
		writeError(w, errRouteNotFound)
		return
	}

	switch {
	// /api/locations/{id}
	case len(parts) == 1:
		h.handleLocationItem(w, r, locationID)
	// /api/locations/{id}/delete
	case len(parts) == 2 && parts[1] == "delete":
		h.handleLocationDelete(w, r, locationID)
	default:
		writeError(w, errRouteNotFound)
	}
}

func splitPathParts(path string) []string {
	rawParts := strings.Split(path, "/")
	parts := make([]string, 0, len(rawParts))
	for _, part := range rawParts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		parts = append(parts, trimmed)
	}
	return parts
}

func parseID(part string) (int64, bool) {
	id, err := strconv.ParseInt(part, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
