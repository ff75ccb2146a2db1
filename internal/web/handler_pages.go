package web

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/louisbranch/plotgod/internal/platform/requestctx"
	"github.com/louisbranch/plotgod/internal/prep"
	"github.com/louisbranch/plotgod/internal/storage"
	"github.com/louisbranch/plotgod/internal/web/templates"
)

// handleIndex renders the landing page. The root pattern also catches
// every path no other route claims, so anything but "/" is a 404.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	campaigns, err := h.store.ListCampaigns(r.Context())
	if err != nil {
		// The page still renders with an empty picker.
		log.Printf("load campaigns for index request_id=%s: %v", requestctx.RequestIDFromContext(r.Context()), err)
		campaigns = nil
	}
	page := templates.IndexPage(campaigns, r.URL.Query().Get("error"))
	templ.Handler(page).ServeHTTP(w, r)
}

// handleGenerate runs the prep pipeline for the selected campaign: load
// the newest session transcript, build the prompt, call the model, and
// render the notes. Input problems bounce back to the landing page with
// a message; a generation failure renders its text in place of notes.
func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, "Please select a campaign first.")
		return
	}
	rawID := strings.TrimSpace(r.FormValue("campaign_id"))
	if rawID == "" {
		redirectWithError(w, r, "Please select a campaign first.")
		return
	}
	campaignID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		redirectWithError(w, r, "Invalid campaign ID.")
		return
	}

	last, err := h.store.CampaignLastSession(r.Context(), campaignID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			redirectWithError(w, r, "No stored session found for this campaign.")
			return
		}
		log.Printf("load last session for campaign %d request_id=%s: %v", campaignID, requestctx.RequestIDFromContext(r.Context()), err)
		redirectWithError(w, r, "Error loading campaign data.")
		return
	}
	if last.Content == nil || strings.TrimSpace(*last.Content) == "" {
		redirectWithError(w, r, "No stored session found for this campaign.")
		return
	}

	party, err := h.store.ListPartyMembers(r.Context(), campaignID)
	if err != nil {
		log.Printf("load party for campaign %d request_id=%s: %v", campaignID, requestctx.RequestIDFromContext(r.Context()), err)
		redirectWithError(w, r, "Error loading campaign data.")
		return
	}

	userPrompt := prep.BuildUserPrompt(last.Campaign.Name, party, *last.Content)
	output, err := h.generator.Generate(r.Context(), userPrompt)
	if err != nil {
		output = "Error calling OpenAI: " + err.Error()
	}
	page := templates.SessionPrepPage(last.Campaign.Name, output)
	templ.Handler(page).ServeHTTP(w, r)
}

// handleOverview echoes the submitted planning form back as a page.
func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	page := templates.OverviewPage{
		CampaignID:      strings.TrimSpace(r.FormValue("campaign_id")),
		PartyIDs:        strings.TrimSpace(r.FormValue("party_ids")),
		NPCIDs:          strings.TrimSpace(r.FormValue("npc_ids")),
		LocationIDs:     strings.TrimSpace(r.FormValue("location_ids")),
		LastSessionText: strings.TrimSpace(r.FormValue("last_session_text")),
	}
	templ.Handler(page.Component()).ServeHTTP(w, r)
}

func redirectWithError(w http.ResponseWriter, r *http.Request, message string) {
	http.Redirect(w, r, "/?error="+url.QueryEscape(message), http.StatusSeeOther)
}
