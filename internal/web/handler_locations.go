package web

import (
	"errors"
	"net/http"

	apperrors "github.com/louisbranch/plotgod/internal/platform/errors"
	"github.com/louisbranch/plotgod/internal/storage"
	"github.com/louisbranch/plotgod/internal/validate"
)

const (
	locationNameMax  = 150
	locationTypeMax  = 50
	locationNotesMax = 8000
)

// locationFromValues validates the shared create and update fields.
func locationFromValues(values map[string]string) (storage.Location, error) {
	name, err := validate.Name(values["name"], "name", locationNameMax, true)
	if err != nil {
		return storage.Location{}, err
	}
	locationType, err := validate.Name(values["location_type"], "location_type", locationTypeMax, false)
	if err != nil {
		return storage.Location{}, err
	}
	notes, err := validate.LongText(values["notes"], "notes", locationNotesMax, false)
	if err != nil {
		return storage.Location{}, err
	}
	return storage.Location{
		Name:         *name,
		LocationType: locationType,
		Notes:        notes,
	}, nil
}

// handleLocations serves the /api/locations collection. Locations are
// global, not scoped to a campaign.
func (h *Handler) handleLocations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		locations, err := h.store.ListLocations(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		items := make([]map[string]any, 0, len(locations))
		for _, location := range locations {
			items = append(items, locationJSON(location))
		}
		writeOK(w, http.StatusOK, map[string]any{"locations": items})
	case http.MethodPost:
		values, err := payloadValues(r)
		if err != nil {
			writeError(w, err)
			return
		}
		location, err := locationFromValues(values)
		if err != nil {
			writeError(w, err)
			return
		}
		id, err := h.store.CreateLocation(r.Context(), location)
		if err != nil {
			writeError(w, err)
			return
		}
		writeOK(w, http.StatusCreated, map[string]any{"id": id})
	default:
		writeMethodNotAllowed(w, "GET, POST")
	}
}

func (h *Handler) handleLocationItem(w http.ResponseWriter, r *http.Request, locationID int64) {
	switch r.Method {
	case http.MethodGet:
		location, err := h.store.GetLocation(r.Context(), locationID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, apperrors.E(apperrors.KindNotFound, "Location not found."))
				return
			}
			writeError(w, err)
			return
		}
		writeOK(w, http.StatusOK, map[string]any{"location": locationJSON(location)})
	case http.MethodPost:
		values, err := payloadValues(r)
		if err != nil {
			writeError(w, err)
			return
		}
		location, err := locationFromValues(values)
		if err != nil {
			writeError(w, err)
			return
		}
		location.ID = locationID
		updated, err := h.store.UpdateLocation(r.Context(), location)
		if err != nil {
			writeError(w, err)
			return
		}
		if !updated {
			writeError(w, apperrors.E(apperrors.KindNotFound, "Location could not be updated."))
			return
		}
		writeOK(w, http.StatusOK, nil)
	default:
		writeMethodNotAllowed(w, "GET, POST")
	}
}

func (h *Handler) handleLocationDelete(w http.ResponseWriter, r *http.Request, locationID int64) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, "POST")
		return
	}
	deleted, err := h.store.DeleteLocation(r.Context(), locationID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !deleted {
		writeError(w, apperrors.E(apperrors.KindNotFound, "Location could not be deleted."))
		return
	}
	writeOK(w, http.StatusOK, nil)
}
