package web

import (
	"errors"
	"net/http"

	apperrors "github.com/louisbranch/plotgod/internal/platform/errors"
	"github.com/louisbranch/plotgod/internal/storage"
	"github.com/louisbranch/plotgod/internal/validate"
)

const sessionContentMax = 50000

// handleSessionRoutes dispatches /api/campaigns/{id}/sessions paths.
func (h *Handler) handleSessionRoutes(w http.ResponseWriter, r *http.Request, campaignID int64, rest []string) {
	// /api/campaigns/{id}/sessions
	if len(rest) == 0 {
		h.handleSessions(w, r, campaignID)
		return
	}
	sessionID, ok := parseID(rest[0])
	if !ok {
		writeError(w, errRouteNotFound)
		return
	}
	switch {
	// /api/campaigns/{id}/sessions/{sid}
	case len(rest) == 1:
		h.handleSessionItem(w, r, campaignID, sessionID)
	// /api/campaigns/{id}/sessions/{sid}/delete
	case len(rest) == 2 && rest[1] == "delete":
		h.handleSessionDelete(w, r, campaignID, sessionID)
	default:
		writeError(w, errRouteNotFound)
	}
}

func (h *Handler) handleSessions(w http.ResponseWriter, r *http.Request, campaignID int64) {
	switch r.Method {
	case http.MethodGet:
		sessions, err := h.store.ListSessions(r.Context(), campaignID)
		if err != nil {
			writeError(w, err)
			return
		}
		items := make([]map[string]any, 0, len(sessions))
		for _, session := range sessions {
			items = append(items, sessionJSON(session))
		}
		writeOK(w, http.StatusOK, map[string]any{"sessions": items})
	case http.MethodPost:
		values, err := payloadValues(r)
		if err != nil {
			writeError(w, err)
			return
		}
		content, err := validate.LongText(values["content"], "content", sessionContentMax, true)
		if err != nil {
			writeError(w, err)
			return
		}
		id, err := h.store.CreateSession(r.Context(), campaignID, *content)
		if err != nil {
			writeError(w, err)
			return
		}
		writeOK(w, http.StatusCreated, map[string]any{"id": id})
	default:
		writeMethodNotAllowed(w, "GET, POST")
	}
}

func (h *Handler) handleSessionItem(w http.ResponseWriter, r *http.Request, campaignID, sessionID int64) {
	switch r.Method {
	case http.MethodGet:
		session, err := h.store.GetSession(r.Context(), campaignID, sessionID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, apperrors.E(apperrors.KindNotFound, "Session not found."))
				return
			}
			writeError(w, err)
			return
		}
		writeOK(w, http.StatusOK, map[string]any{"session": sessionJSON(session)})
	case http.MethodPost:
		values, err := payloadValues(r)
		if err != nil {
			writeError(w, err)
			return
		}
		content, err := validate.LongText(values["content"], "content", sessionContentMax, true)
		if err != nil {
			writeError(w, err)
			return
		}
		updated, err := h.store.UpdateSession(r.Context(), campaignID, sessionID, *content)
		if err != nil {
			writeError(w, err)
			return
		}
		if !updated {
			writeError(w, apperrors.E(apperrors.KindNotFound, "Session could not be updated."))
			return
		}
		writeOK(w, http.StatusOK, nil)
	default:
		writeMethodNotAllowed(w, "GET, POST")
	}
}

func (h *Handler) handleSessionDelete(w http.ResponseWriter, r *http.Request, campaignID, sessionID int64) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, "POST")
		return
	}
	deleted, err := h.store.DeleteSession(r.Context(), campaignID, sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !deleted {
		writeError(w, apperrors.E(apperrors.KindNotFound, "Session could not be deleted."))
		return
	}
	writeOK(w, http.StatusOK, nil)
}
