package web

import (
	"net/http"
	"net/url"
	"testing"
)

func TestCreatePartyMemberWithOptionals(t *testing.T) {
	t.Parallel()

	handler, store := newTestHandler(t)
	mustCreateCampaign(t, store, "Aanur Rising")

	recorder := doJSON(t, handler, http.MethodPost, "/api/campaigns/1/party", map[string]any{
		"name":              "Brina",
		"player_name":       "Sam",
		"character_species": "Dwarf",
		"character_class":   "Cleric",
		"level":             7,
		"notes":             "Carries the lantern.",
	})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d (body %s)", recorder.Code, http.StatusCreated, recorder.Body.String())
	}

	got := doForm(t, handler, http.MethodGet, "/api/campaigns/1/party/1", nil)
	if got.Code != http.StatusOK {
		t.Fatalf("get status = %d, want %d", got.Code, http.StatusOK)
	}
	member, ok := decodeBody(t, got)["party_member"].(map[string]any)
	if !ok {
		t.Fatalf("party_member payload missing: %s", got.Body.String())
	}
	if member["name"] != "Brina" {
		t.Fatalf("name = %v, want %q", member["name"], "Brina")
	}
	if member["player_name"] != "Sam" {
		t.Fatalf("player_name = %v, want %q", member["player_name"], "Sam")
	}
	if level, _ := member["level"].(float64); level != 7 {
		t.Fatalf("level = %v, want 7", member["level"])
	}
}

func TestCreatePartyMemberLevelBounds(t *testing.T) {
	t.Parallel()

	handler, store := newTestHandler(t)
	mustCreateCampaign(t, store, "Aanur Rising")

	recorder := doJSON(t, handler, http.MethodPost, "/api/campaigns/1/party", map[string]any{
		"name":  "Brina",
		"level": 31,
	})
	assertEnvelopeError(t, recorder, http.StatusBadRequest, "level must be at most 30.")

	recorder = doForm(t, handler, http.MethodPost, "/api/campaigns/1/party", url.Values{
		"name":  {"Brina"},
		"level": {"abc"},
	})
	assertEnvelopeError(t, recorder, http.StatusBadRequest, "level must be a number.")
}

func TestUpdatePartyMemberClearsOmittedOptionals(t *testing.T) {
	t.Parallel()

	handler, store := newTestHandler(t)
	mustCreateCampaign(t, store, "Aanur Rising")

	create := doJSON(t, handler, http.MethodPost, "/api/campaigns/1/party", map[string]any{
		"name":        "Brina",
		"player_name": "Sam",
		"level":       7,
	})
	if create.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d", create.Code, http.StatusCreated)
	}

	update := doJSON(t, handler, http.MethodPost, "/api/campaigns/1/party/1", map[string]any{"name": "Brina"})
	if update.Code != http.StatusOK {
		t.Fatalf("update status = %d, want %d (body %s)", update.Code, http.StatusOK, update.Body.String())
	}

	got := doForm(t, handler, http.MethodGet, "/api/campaigns/1/party/1", nil)
	member, _ := decodeBody(t, got)["party_member"].(map[string]any)
	if member["player_name"] != nil {
		t.Fatalf("player_name = %v, want null after overwrite", member["player_name"])
	}
	if member["level"] != nil {
		t.Fatalf("level = %v, want null after overwrite", member["level"])
	}
}

func TestPartyMemberScopedLookup(t *testing.T) {
	t.Parallel()

	handler, store := newTestHandler(t)
	mustCreateCampaign(t, store, "Aanur Rising")
	mustCreateCampaign(t, store, "Mirefall")

	create := doForm(t, handler, http.MethodPost, "/api/campaigns/1/party", url.Values{"name": {"Brina"}})
	if create.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d", create.Code, http.StatusCreated)
	}

	cross := doForm(t, handler, http.MethodGet, "/api/campaigns/2/party/1", nil)
	assertEnvelopeError(t, cross, http.StatusNotFound, "Party member not found.")
}

func TestListPartyMembersKey(t *testing.T) {
	t.Parallel()

	handler, store := newTestHandler(t)
	mustCreateCampaign(t, store, "Aanur Rising")

	create := doForm(t, handler, http.MethodPost, "/api/campaigns/1/party", url.Values{"name": {"Brina"}})
	if create.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d", create.Code, http.StatusCreated)
	}

	recorder := doForm(t, handler, http.MethodGet, "/api/campaigns/1/party", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("list status = %d, want %d", recorder.Code, http.StatusOK)
	}
	members, ok := decodeBody(t, recorder)["party_members"].([]any)
	if !ok || len(members) != 1 {
		t.Fatalf("party_members = %v, want one entry", members)
	}
}

func TestDeletePartyMemberReportsMissing(t *testing.T) {
	t.Parallel()

	handler, store := newTestHandler(t)
	mustCreateCampaign(t, store, "Aanur Rising")

	recorder := doForm(t, handler, http.MethodPost, "/api/campaigns/1/party/4/delete", url.Values{})
	assertEnvelopeError(t, recorder, http.StatusNotFound, "Party member could not be deleted.")
}
