package web

import (
	"log"
	"net/http"
	"time"

	apperrors "github.com/louisbranch/plotgod/internal/platform/errors"
	"github.com/louisbranch/plotgod/internal/platform/httpx"
	"github.com/louisbranch/plotgod/internal/storage"
)

// writeOK emits the success envelope with extra payload fields merged in.
func writeOK(w http.ResponseWriter, status int, extra map[string]any) {
	body := map[string]any{"ok": true}
	for key, value := range extra {
		body[key] = value
	}
	if err := httpx.WriteJSON(w, status, body); err != nil {
		log.Printf("write response: %v", err)
	}
}

// writeError emits the failure envelope. Errors arriving without a kind
// come from the store and are tagged as storage failures before the kind
// picks the status.
func writeError(w http.ResponseWriter, err error) {
	if apperrors.KindOf(err) == apperrors.KindUnknown {
		err = apperrors.Wrap(apperrors.KindStorage, "", err)
	}
	body := map[string]any{"ok": false, "error": err.Error()}
	if writeErr := httpx.WriteJSON(w, apperrors.HTTPStatus(err), body); writeErr != nil {
		log.Printf("write error response: %v", writeErr)
	}
}

func writeMethodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	body := map[string]any{"ok": false, "error": "method not allowed"}
	if err := httpx.WriteJSON(w, http.StatusMethodNotAllowed, body); err != nil {
		log.Printf("write error response: %v", err)
	}
}

func campaignJSON(campaign storage.Campaign) map[string]any {
	return map[string]any{"id": campaign.ID, "name": campaign.Name}
}

func sessionJSON(session storage.Session) map[string]any {
	return map[string]any{
		"id":         session.ID,
		"content":    session.Content,
		"created_at": session.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func partyMemberJSON(member storage.PartyMember) map[string]any {
	return map[string]any{
		"id":                member.ID,
		"name":              member.Name,
		"player_name":       member.PlayerName,
		"character_species": member.CharacterSpecies,
		"character_class":   member.CharacterClass,
		"level":             member.Level,
		"notes":             member.Notes,
	}
}

func npcJSON(npc storage.NPC) map[string]any {
	return map[string]any{
		"id":      npc.ID,
		"name":    npc.Name,
		"species": npc.Species,
		"gender":  npc.Gender,
		"notes":   npc.Notes,
	}
}

func locationJSON(location storage.Location) map[string]any {
	return map[string]any{
		"id":            location.ID,
		"name":          location.Name,
		"location_type": location.LocationType,
		"notes":         location.Notes,
	}
}
