package sqlite

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/louisbranch/plotgod/internal/storage"
)

func TestCreateSessionMissingCampaignFailsWithConstraint(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	_, err := store.CreateSession(context.Background(), 999, "Orphaned notes.")
	if err == nil {
		t.Fatal("expected foreign-key error")
	}
	if errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("error = %v, want a storage failure rather than not found", err)
	}
	if !strings.Contains(err.Error(), "campaign 999 does not exist") {
		t.Fatalf("error = %v, want missing-campaign message", err)
	}
}

func TestGetSessionScopedToCampaign(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	owner := mustCreateCampaign(t, store, "Owner Campaign")
	other := mustCreateCampaign(t, store, "Other Campaign")

	sessionID, err := store.CreateSession(context.Background(), owner, "The heist begins.")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	got, err := store.GetSession(context.Background(), owner, sessionID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got.Content != "The heist begins." {
		t.Fatalf("content = %q, want %q", got.Content, "The heist begins.")
	}
	if got.CampaignID != owner {
		t.Fatalf("campaign id = %d, want %d", got.CampaignID, owner)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("expected created at timestamp")
	}

	if _, err := store.GetSession(context.Background(), other, sessionID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("cross-campaign get error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestListSessionsNewestFirst(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	id := mustCreateCampaign(t, store, "Tales of Aanur")
	var ids []int64
	for _, content := range []string{"One.", "Two.", "Three."} {
		sessionID, err := store.CreateSession(context.Background(), id, content)
		if err != nil {
			t.Fatalf("create session: %v", err)
		}
		ids = append(ids, sessionID)
	}

	sessions, err := store.ListSessions(context.Background(), id)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("session count = %d, want 3", len(sessions))
	}
	for i, session := range sessions {
		want := ids[len(ids)-1-i]
		if session.ID != want {
			t.Fatalf("session[%d].ID = %d, want %d", i, session.ID, want)
		}
	}
	if sessions[0].Content != "Three." {
		t.Fatalf("newest content = %q, want %q", sessions[0].Content, "Three.")
	}
}

func TestUpdateSessionScopedToCampaign(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	owner := mustCreateCampaign(t, store, "Owner Campaign")
	other := mustCreateCampaign(t, store, "Other Campaign")
	sessionID, err := store.CreateSession(context.Background(), owner, "Draft notes.")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	updated, err := store.UpdateSession(context.Background(), other, sessionID, "Hijacked notes.")
	if err != nil {
		t.Fatalf("cross-campaign update: %v", err)
	}
	if updated {
		t.Fatal("expected cross-campaign update to match nothing")
	}

	updated, err = store.UpdateSession(context.Background(), owner, sessionID, "Final notes.")
	if err != nil {
		t.Fatalf("update session: %v", err)
	}
	if !updated {
		t.Fatal("expected update to match the session")
	}
	got, err := store.GetSession(context.Background(), owner, sessionID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got.Content != "Final notes." {
		t.Fatalf("content = %q, want %q", got.Content, "Final notes.")
	}
}

func TestDeleteSessionScopedToCampaign(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	owner := mustCreateCampaign(t, store, "Owner Campaign")
	other := mustCreateCampaign(t, store, "Other Campaign")
	sessionID, err := store.CreateSession(context.Background(), owner, "Deletable notes.")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	deleted, err := store.DeleteSession(context.Background(), other, sessionID)
	if err != nil {
		t.Fatalf("cross-campaign delete: %v", err)
	}
	if deleted {
		t.Fatal("expected cross-campaign delete to match nothing")
	}

	deleted, err = store.DeleteSession(context.Background(), owner, sessionID)
	if err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if !deleted {
		t.Fatal("expected delete to match the session")
	}
	if _, err := store.GetSession(context.Background(), owner, sessionID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get deleted session error = %v, want %v", err, storage.ErrNotFound)
	}
}
