package web

import (
	"errors"
	"net/http"

	apperrors "github.com/louisbranch/plotgod/internal/platform/errors"
	"github.com/louisbranch/plotgod/internal/storage"
	"github.com/louisbranch/plotgod/internal/validate"
)

const campaignNameMax = 100

var errCampaignNotFound = apperrors.E(apperrors.KindNotFound, "Campaign not found.")

// handleCampaigns serves the /api/campaigns collection.
func (h *Handler) handleCampaigns(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listCampaigns(w, r)
	case http.MethodPost:
		h.createCampaign(w, r)
	default:
		writeMethodNotAllowed(w, "GET, POST")
	}
}

func (h *Handler) listCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.store.ListCampaigns(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	items := make([]map[string]any, 0, len(campaigns))
	for _, campaign := range campaigns {
		items = append(items, campaignJSON(campaign))
	}
	writeOK(w, http.StatusOK, map[string]any{"campaigns": items})
}

func (h *Handler) createCampaign(w http.ResponseWriter, r *http.Request) {
	values, err := payloadValues(r)
	if err != nil {
		writeError(w, err)
		return
	}
	name, err := validate.Name(values["name"], "name", campaignNameMax, true)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := h.store.CreateCampaign(r.Context(), *name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, http.StatusCreated, map[string]any{"id": id})
}

// handleCampaignItem serves GET and update POST on /api/campaigns/{id}.
func (h *Handler) handleCampaignItem(w http.ResponseWriter, r *http.Request, campaignID int64) {
	switch r.Method {
	case http.MethodGet:
		campaign, err := h.store.GetCampaign(r.Context(), campaignID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, errCampaignNotFound)
				return
			}
			writeError(w, err)
			return
		}
		writeOK(w, http.StatusOK, map[string]any{"campaign": campaignJSON(campaign)})
	case http.MethodPost:
		values, err := payloadValues(r)
		if err != nil {
			writeError(w, err)
			return
		}
		name, err := validate.Name(values["name"], "name", campaignNameMax, true)
		if err != nil {
			writeError(w, err)
			return
		}
		updated, err := h.store.UpdateCampaign(r.Context(), campaignID, *name)
		if err != nil {
			writeError(w, err)
			return
		}
		if !updated {
			writeError(w, apperrors.E(apperrors.KindNotFound, "Campaign could not be updated."))
			return
		}
		writeOK(w, http.StatusOK, nil)
	default:
		writeMethodNotAllowed(w, "GET, POST")
	}
}

// handleCampaignDelete serves POST /api/campaigns/{id}/delete. The store
// removes the campaign together with its sessions, party, and NPCs.
func (h *Handler) handleCampaignDelete(w http.ResponseWriter, r *http.Request, campaignID int64) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, "POST")
		return
	}
	deleted, err := h.store.DeleteCampaign(r.Context(), campaignID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !deleted {
		writeError(w, apperrors.E(apperrors.KindNotFound, "Campaign could not be deleted."))
		return
	}
	writeOK(w, http.StatusOK, nil)
}

// handleCampaignLastSession serves GET /api/campaigns/{id}/last-session,
// the landing page helper that feeds the prep form.
func (h *Handler) handleCampaignLastSession(w http.ResponseWriter, r *http.Request, campaignID int64) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, "GET")
		return
	}
	last, err := h.store.CampaignLastSession(r.Context(), campaignID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, errCampaignNotFound)
			return
		}
		writeError(w, err)
		return
	}
	text := ""
	if last.Content != nil {
		text = *last.Content
	}
	writeOK(w, http.StatusOK, map[string]any{
		"campaign":          campaignJSON(last.Campaign),
		"last_session_text": text,
	})
}
