package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/louisbranch/plotgod/internal/storage"
)

func TestLocationRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	locationID, err := store.CreateLocation(context.Background(), storage.Location{
		Name:         "Aanur Undercity",
		LocationType: stringRef("city"),
		Notes:        stringRef("Flooded tunnels below the old capital."),
	})
	if err != nil {
		t.Fatalf("create location: %v", err)
	}

	got, err := store.GetLocation(context.Background(), locationID)
	if err != nil {
		t.Fatalf("get location: %v", err)
	}
	if got.Name != "Aanur Undercity" {
		t.Fatalf("name = %q, want %q", got.Name, "Aanur Undercity")
	}
	if got.LocationType == nil || *got.LocationType != "city" {
		t.Fatalf("location type = %v, want city", got.LocationType)
	}
}

func TestListLocationsOrdersByName(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	for _, name := range []string{"Silverpine", "Aanur Undercity", "Mirefall Docks"} {
		if _, err := store.CreateLocation(context.Background(), storage.Location{Name: name}); err != nil {
			t.Fatalf("create location %s: %v", name, err)
		}
	}

	locations, err := store.ListLocations(context.Background())
	if err != nil {
		t.Fatalf("list locations: %v", err)
	}
	want := []string{"Aanur Undercity", "Mirefall Docks", "Silverpine"}
	if len(locations) != len(want) {
		t.Fatalf("location count = %d, want %d", len(locations), len(want))
	}
	for i, location := range locations {
		if location.Name != want[i] {
			t.Fatalf("location[%d] = %q, want %q", i, location.Name, want[i])
		}
	}
}

func TestUpdateLocationClearsOptionals(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	locationID, err := store.CreateLocation(context.Background(), storage.Location{
		Name:         "Mirefall Docks",
		LocationType: stringRef("harbor"),
		Notes:        stringRef("Smuggler traffic after dusk."),
	})
	if err != nil {
		t.Fatalf("create location: %v", err)
	}

	updated, err := store.UpdateLocation(context.Background(), storage.Location{
		ID:   locationID,
		Name: "Mirefall Docks (Ruined)",
	})
	if err != nil {
		t.Fatalf("update location: %v", err)
	}
	if !updated {
		t.Fatal("expected update to match the location")
	}
	got, err := store.GetLocation(context.Background(), locationID)
	if err != nil {
		t.Fatalf("get location: %v", err)
	}
	if got.LocationType != nil {
		t.Fatalf("location type = %q, want cleared", *got.LocationType)
	}
	if got.Notes != nil {
		t.Fatalf("notes = %q, want cleared", *got.Notes)
	}
}

func TestDeleteLocationReportsMatch(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	locationID, err := store.CreateLocation(context.Background(), storage.Location{Name: "Silverpine"})
	if err != nil {
		t.Fatalf("create location: %v", err)
	}

	deleted, err := store.DeleteLocation(context.Background(), locationID)
	if err != nil {
		t.Fatalf("delete location: %v", err)
	}
	if !deleted {
		t.Fatal("expected delete to match the location")
	}
	deleted, err = store.DeleteLocation(context.Background(), locationID)
	if err != nil {
		t.Fatalf("second delete location: %v", err)
	}
	if deleted {
		t.Fatal("expected second delete to match nothing")
	}
	if _, err := store.GetLocation(context.Background(), locationID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get deleted location error = %v, want %v", err, storage.ErrNotFound)
	}
}
