package web

import (
	"errors"
	"net/http"

	apperrors "github.com/louisbranch/plotgod/internal/platform/errors"
	"github.com/louisbranch/plotgod/internal/storage"
	"github.com/louisbranch/plotgod/internal/validate"
)

const (
	npcNameMax    = 100
	npcSpeciesMax = 100
	npcGenderMax  = 50
	npcNotesMax   = 4000
)

// handleNPCRoutes dispatches /api/campaigns/{id}/npcs paths.
func (h *Handler) handleNPCRoutes(w http.ResponseWriter, r *http.Request, campaignID int64, rest []string) {
	// /api/campaigns/{id}/npcs
	if len(rest) == 0 {
		h.handleNPCs(w, r, campaignID)
		return
	}
	npcID, ok := parseID(rest[0])
	if !ok {
		writeError(w, errRouteNotFound)
		return
	}
	switch {
	// /api/campaigns/{id}/npcs/{nid}
	case len(rest) == 1:
		h.handleNPCItem(w, r, campaignID, npcID)
	// /api/campaigns/{id}/npcs/{nid}/delete
	case len(rest) == 2 && rest[1] == "delete":
		h.handleNPCDelete(w, r, campaignID, npcID)
	default:
		writeError(w, errRouteNotFound)
	}
}

// npcFromValues validates the shared create and update fields.
func npcFromValues(campaignID int64, values map[string]string) (storage.NPC, error) {
	name, err := validate.Name(values["name"], "name", npcNameMax, true)
	if err != nil {
		return storage.NPC{}, err
	}
	species, err := validate.Name(values["species"], "species", npcSpeciesMax, false)
	if err != nil {
		return storage.NPC{}, err
	}
	gender, err := validate.Name(values["gender"], "gender", npcGenderMax, false)
	if err != nil {
		return storage.NPC{}, err
	}
	notes, err := validate.LongText(values["notes"], "notes", npcNotesMax, false)
	if err != nil {
		return storage.NPC{}, err
	}
	return storage.NPC{
		CampaignID: campaignID,
		Name:       *name,
		Species:    species,
		Gender:     gender,
		Notes:      notes,
	}, nil
}

func (h *Handler) handleNPCs(w http.ResponseWriter, r *http.Request, campaignID int64) {
	switch r.Method {
	case http.MethodGet:
		npcs, err := h.store.ListNPCs(r.Context(), campaignID)
		if err != nil {
			writeError(w, err)
			return
		}
		items := make([]map[string]any, 0, len(npcs))
		for _, npc := range npcs {
			items = append(items, npcJSON(npc))
		}
		writeOK(w, http.StatusOK, map[string]any{"npcs": items})
	case http.MethodPost:
		values, err := payloadValues(r)
		if err != nil {
			writeError(w, err)
			return
		}
		npc, err := npcFromValues(campaignID, values)
		if err != nil {
			writeError(w, err)
			return
		}
		id, err := h.store.CreateNPC(r.Context(), npc)
		if err != nil {
			writeError(w, err)
			return
		}
		writeOK(w, http.StatusCreated, map[string]any{"id": id})
	default:
		writeMethodNotAllowed(w, "GET, POST")
	}
}

func (h *Handler) handleNPCItem(w http.ResponseWriter, r *http.Request, campaignID, npcID int64) {
	switch r.Method {
	case http.MethodGet:
		npc, err := h.store.GetNPC(r.Context(), campaignID, npcID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, apperrors.E(apperrors.KindNotFound, "NPC not found."))
				return
			}
			writeError(w, err)
			return
		}
		writeOK(w, http.StatusOK, map[string]any{"npc": npcJSON(npc)})
	case http.MethodPost:
		values, err := payloadValues(r)
		if err != nil {
			writeError(w, err)
			return
		}
		npc, err := npcFromValues(campaignID, values)
		if err != nil {
			writeError(w, err)
			return
		}
		npc.ID = npcID
		updated, err := h.store.UpdateNPC(r.Context(), npc)
		if err != nil {
			writeError(w, err)
			return
		}
		if !updated {
			writeError(w, apperrors.E(apperrors.KindNotFound, "NPC could not be updated."))
			return
		}
		writeOK(w, http.StatusOK, nil)
	default:
		writeMethodNotAllowed(w, "GET, POST")
	}
}

func (h *Handler) handleNPCDelete(w http.ResponseWriter, r *http.Request, campaignID, npcID int64) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, "POST")
		return
	}
	deleted, err := h.store.DeleteNPC(r.Context(), campaignID, npcID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !deleted {
		writeError(w, apperrors.E(apperrors.KindNotFound, "NPC could not be deleted."))
		return
	}
	writeOK(w, http.StatusOK, nil)
}
