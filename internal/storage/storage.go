// Package storage defines persistence contracts for campaign state.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// Campaign is a named tabletop-game continuity. It is the root owner of
// sessions, party members, and NPCs.
type Campaign struct {
	ID   int64
	Name string
}

// Session is one stored transcript of played game time, timestamped at
// insertion. The highest ID is the latest session.
type Session struct {
	ID         int64
	CampaignID int64
	Content    string
	CreatedAt  time.Time
}

// PartyMember is a player-controlled character record. Optional fields are
// nil when they were never provided.
type PartyMember struct {
	ID               int64
	CampaignID       int64
	Name             string
	PlayerName       *string
	CharacterSpecies *string
	CharacterClass   *string
	Level            *int
	Notes            *string
}

// NPC is a non-player character record.
type NPC struct {
	ID         int64
	CampaignID int64
	Name       string
	Species    *string
	Gender     *string
	Notes      *string
}

// Location is a world location shared across campaigns.
type Location struct {
	ID           int64
	Name         string
	LocationType *string
	Notes        *string
}

// LastSession pairs a campaign with the content of its most recently
// inserted session. Content and CreatedAt are nil when the campaign has
// no sessions yet.
type LastSession struct {
	Campaign  Campaign
	Content   *string
	CreatedAt *time.Time
}

// CampaignStore persists campaigns.
type CampaignStore interface {
	// CreateCampaign inserts a campaign and returns its new ID.
	CreateCampaign(ctx context.Context, name string) (int64, error)
	// GetCampaign returns one campaign or ErrNotFound.
	GetCampaign(ctx context.Context, id int64) (Campaign, error)
	// ListCampaigns returns all campaigns ordered by name.
	ListCampaigns(ctx context.Context) ([]Campaign, error)
	// UpdateCampaign overwrites the campaign name, reporting whether a
	// row matched.
	UpdateCampaign(ctx context.Context, id int64, name string) (bool, error)
	// DeleteCampaign removes the campaign and everything it owns in one
	// transaction, reporting whether the campaign existed.
	DeleteCampaign(ctx context.Context, id int64) (bool, error)
	// CampaignLastSession returns the campaign plus the content of its
	// newest session, or ErrNotFound when the campaign itself is missing.
	CampaignLastSession(ctx context.Context, id int64) (LastSession, error)
}

// SessionStore persists session transcripts scoped to a campaign.
type SessionStore interface {
	CreateSession(ctx context.Context, campaignID int64, content string) (int64, error)
	GetSession(ctx context.Context, campaignID, sessionID int64) (Session, error)
	// ListSessions returns a campaign's sessions newest-first.
	ListSessions(ctx context.Context, campaignID int64) ([]Session, error)
	UpdateSession(ctx context.Context, campaignID, sessionID int64, content string) (bool, error)
	DeleteSession(ctx context.Context, campaignID, sessionID int64) (bool, error)
}

// PartyMemberStore persists party members scoped to a campaign.
type PartyMemberStore interface {
	CreatePartyMember(ctx context.Context, member PartyMember) (int64, error)
	GetPartyMember(ctx context.Context, campaignID, memberID int64) (PartyMember, error)
	ListPartyMembers(ctx context.Context, campaignID int64) ([]PartyMember, error)
	UpdatePartyMember(ctx context.Context, member PartyMember) (bool, error)
	DeletePartyMember(ctx context.Context, campaignID, memberID int64) (bool, error)
}

// NPCStore persists non-player characters scoped to a campaign.
type NPCStore interface {
	CreateNPC(ctx context.Context, npc NPC) (int64, error)
	GetNPC(ctx context.Context, campaignID, npcID int64) (NPC, error)
	ListNPCs(ctx context.Context, campaignID int64) ([]NPC, error)
	UpdateNPC(ctx context.Context, npc NPC) (bool, error)
	DeleteNPC(ctx context.Context, campaignID, npcID int64) (bool, error)
}

// LocationStore persists world locations.
type LocationStore interface {
	CreateLocation(ctx context.Context, location Location) (int64, error)
	GetLocation(ctx context.Context, id int64) (Location, error)
	ListLocations(ctx context.Context) ([]Location, error)
	UpdateLocation(ctx context.Context, location Location) (bool, error)
	DeleteLocation(ctx context.Context, id int64) (bool, error)
}

// Store is the full persistence surface required by the application.
type Store interface {
	CampaignStore
	SessionStore
	PartyMemberStore
	NPCStore
	LocationStore
	Close() error
}
