package web

import (
	"errors"
	"net/http"

	apperrors "github.com/louisbranch/plotgod/internal/platform/errors"
	"github.com/louisbranch/plotgod/internal/storage"
	"github.com/louisbranch/plotgod/internal/validate"
)

const (
	partyNameMax  = 100
	partyNotesMax = 4000
)

var (
	partyLevelMin = 0
	partyLevelMax = 30
)

// handlePartyRoutes dispatches /api/campaigns/{id}/party paths.
func (h *Handler) handlePartyRoutes(w http.ResponseWriter, r *http.Request, campaignID int64, rest []string) {
	// /api/campaigns/{id}/party
	if len(rest) == 0 {
		h.handleParty(w, r, campaignID)
		return
	}
	memberID, ok := parseID(rest[0])
	if !ok {
		writeError(w, errRouteNotFound)
		return
	}
	switch {
	// /api/campaigns/{id}/party/{mid}
	case len(rest) == 1:
		h.handlePartyMemberItem(w, r, campaignID, memberID)
	// /api/campaigns/{id}/party/{mid}/delete
	case len(rest) == 2 && rest[1] == "delete":
		h.handlePartyMemberDelete(w, r, campaignID, memberID)
	default:
		writeError(w, errRouteNotFound)
	}
}

// partyMemberFromValues validates the shared create and update fields.
func partyMemberFromValues(campaignID int64, values map[string]string) (storage.PartyMember, error) {
	name, err := validate.Name(values["name"], "name", partyNameMax, true)
	if err != nil {
		return storage.PartyMember{}, err
	}
	playerName, err := validate.Name(values["player_name"], "player_name", partyNameMax, false)
	if err != nil {
		return storage.PartyMember{}, err
	}
	species, err := validate.Name(values["character_species"], "character_species", partyNameMax, false)
	if err != nil {
		return storage.PartyMember{}, err
	}
	class, err := validate.Name(values["character_class"], "character_class", partyNameMax, false)
	if err != nil {
		return storage.PartyMember{}, err
	}
	level, err := validate.Integer(values["level"], "level", false, &partyLevelMin, &partyLevelMax)
	if err != nil {
		return storage.PartyMember{}, err
	}
	notes, err := validate.LongText(values["notes"], "notes", partyNotesMax, false)
	if err != nil {
		return storage.PartyMember{}, err
	}
	return storage.PartyMember{
		CampaignID:       campaignID,
		Name:             *name,
		PlayerName:       playerName,
		CharacterSpecies: species,
		CharacterClass:   class,
		Level:            level,
		Notes:            notes,
	}, nil
}

func (h *Handler) handleParty(w http.ResponseWriter, r *http.Request, campaignID int64) {
	switch r.Method {
	case http.MethodGet:
		members, err := h.store.ListPartyMembers(r.Context(), campaignID)
		if err != nil {
			writeError(w, err)
			return
		}
		items := make([]map[string]any, 0, len(members))
		for _, member := range members {
			items = append(items, partyMemberJSON(member))
		}
		writeOK(w, http.StatusOK, map[string]any{"party_members": items})
	case http.MethodPost:
		values, err := payloadValues(r)
		if err != nil {
			writeError(w, err)
			return
		}
		member, err := partyMemberFromValues(campaignID, values)
		if err != nil {
			writeError(w, err)
			return
		}
		id, err := h.store.CreatePartyMember(r.Context(), member)
		if err != nil {
			writeError(w, err)
			return
		}
		writeOK(w, http.StatusCreated, map[string]any{"id": id})
	default:
		writeMethodNotAllowed(w, "GET, POST")
	}
}

func (h *Handler) handlePartyMemberItem(w http.ResponseWriter, r *http.Request, campaignID, memberID int64) {
	switch r.Method {
	case http.MethodGet:
		member, err := h.store.GetPartyMember(r.Context(), campaignID, memberID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, apperrors.E(apperrors.KindNotFound, "Party member not found."))
				return
			}
			writeError(w, err)
			return
		}
		writeOK(w, http.StatusOK, map[string]any{"party_member": partyMemberJSON(member)})
	case http.MethodPost:
		values, err := payloadValues(r)
		if err != nil {
			writeError(w, err)
			return
		}
		member, err := partyMemberFromValues(campaignID, values)
		if err != nil {
			writeError(w, err)
			return
		}
		member.ID = memberID
		updated, err := h.store.UpdatePartyMember(r.Context(), member)
		if err != nil {
			writeError(w, err)
			return
		}
		if !updated {
			writeError(w, apperrors.E(apperrors.KindNotFound, "Party member could not be updated."))
			return
		}
		writeOK(w, http.StatusOK, nil)
	default:
		writeMethodNotAllowed(w, "GET, POST")
	}
}

func (h *Handler) handlePartyMemberDelete(w http.ResponseWriter, r *http.Request, campaignID, memberID int64) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, "POST")
		return
	}
	deleted, err := h.store.DeletePartyMember(r.Context(), campaignID, memberID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !deleted {
		writeError(w, apperrors.E(apperrors.KindNotFound, "Party member could not be deleted."))
		return
	}
	writeOK(w, http.StatusOK, nil)
}
