package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/plotgod/internal/prep"
	"github.com/louisbranch/plotgod/internal/storage"
	"github.com/louisbranch/plotgod/internal/validate"
)

const (
	campaignNameMax   = 100
	sessionContentMax = 50000
)

// CampaignEntry is a campaign record in tool results.
type CampaignEntry struct {
	ID   int64  `json:"id" jsonschema:"campaign identifier"`
	Name string `json:"name" jsonschema:"campaign name"`
}

// CampaignListInput represents the campaign_list tool input.
type CampaignListInput struct{}

// CampaignListResult represents the campaign_list tool output.
type CampaignListResult struct {
	Campaigns []CampaignEntry `json:"campaigns"`
}

// CampaignCreateInput represents the campaign_create tool input.
type CampaignCreateInput struct {
	Name string `json:"name" jsonschema:"campaign name"`
}

// CampaignCreateResult represents the campaign_create tool output.
type CampaignCreateResult struct {
	ID int64 `json:"id" jsonschema:"new campaign identifier"`
}

// SessionLatestInput represents the session_latest tool input.
type SessionLatestInput struct {
	CampaignID int64 `json:"campaign_id" jsonschema:"campaign identifier"`
}

// SessionLatestResult represents the session_latest tool output.
type SessionLatestResult struct {
	Campaign        CampaignEntry `json:"campaign"`
	LastSessionText string        `json:"last_session_text" jsonschema:"newest stored transcript, empty when none"`
	CreatedAt       string        `json:"created_at,omitempty" jsonschema:"RFC3339 timestamp of the newest session"`
}

// SessionAddInput represents the session_add tool input.
type SessionAddInput struct {
	CampaignID int64  `json:"campaign_id" jsonschema:"campaign identifier"`
	Content    string `json:"content" jsonschema:"session transcript or summary"`
}

// SessionAddResult represents the session_add tool output.
type SessionAddResult struct {
	ID int64 `json:"id" jsonschema:"new session identifier"`
}

// PartyListInput represents the party_list tool input.
type PartyListInput struct {
	CampaignID int64 `json:"campaign_id" jsonschema:"campaign identifier"`
}

// PartyMemberEntry is a party member record in tool results.
type PartyMemberEntry struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	PlayerName       *string `json:"player_name,omitempty"`
	CharacterSpecies *string `json:"character_species,omitempty"`
	CharacterClass   *string `json:"character_class,omitempty"`
	Level            *int    `json:"level,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

// PartyListResult represents the party_list tool output.
type PartyListResult struct {
	PartyMembers []PartyMemberEntry `json:"party_members"`
}

// NPCListInput represents the npc_list tool input.
type NPCListInput struct {
	CampaignID int64 `json:"campaign_id" jsonschema:"campaign identifier"`
}

// NPCEntry is an NPC record in tool results.
type NPCEntry struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Species *string `json:"species,omitempty"`
	Gender  *string `json:"gender,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

// NPCListResult represents the npc_list tool output.
type NPCListResult struct {
	NPCs []NPCEntry `json:"npcs"`
}

// LocationListInput represents the location_list tool input.
type LocationListInput struct{}

// LocationEntry is a location record in tool results.
type LocationEntry struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	LocationType *string `json:"location_type,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// LocationListResult represents the location_list tool output.
type LocationListResult struct {
	Locations []LocationEntry `json:"locations"`
}

// SessionPrepInput represents the session_prep tool input.
type SessionPrepInput struct {
	CampaignID int64 `json:"campaign_id" jsonschema:"campaign identifier"`
}

// SessionPrepResult represents the session_prep tool output.
type SessionPrepResult struct {
	Campaign CampaignEntry `json:"campaign"`
	Notes    string        `json:"notes" jsonschema:"generated session prep notes"`
}

func campaignListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "campaign_list",
		Description: "Lists all campaigns with their identifiers.",
	}
}

func campaignListHandler(store storage.Store) mcp.ToolHandlerFor[CampaignListInput, CampaignListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ CampaignListInput) (*mcp.CallToolResult, CampaignListResult, error) {
		campaigns, err := store.ListCampaigns(ctx)
		if err != nil {
			return nil, CampaignListResult{}, fmt.Errorf("list campaigns: %w", err)
		}
		entries := make([]CampaignEntry, 0, len(campaigns))
		for _, campaign := range campaigns {
			entries = append(entries, CampaignEntry{ID: campaign.ID, Name: campaign.Name})
		}
		return nil, CampaignListResult{Campaigns: entries}, nil
	}
}

func campaignCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "campaign_create",
		Description: "Creates a campaign and returns its identifier.",
	}
}

func campaignCreateHandler(store storage.Store) mcp.ToolHandlerFor[CampaignCreateInput, CampaignCreateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CampaignCreateInput) (*mcp.CallToolResult, CampaignCreateResult, error) {
		name, err := validate.Name(input.Name, "name", campaignNameMax, true)
		if err != nil {
			return nil, CampaignCreateResult{}, err
		}
		id, err := store.CreateCampaign(ctx, *name)
		if err != nil {
			return nil, CampaignCreateResult{}, fmt.Errorf("create campaign: %w", err)
		}
		return nil, CampaignCreateResult{ID: id}, nil
	}
}

func sessionLatestTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "session_latest",
		Description: "Returns a campaign with the text of its most recent session. The text is empty when no session is stored.",
	}
}

func sessionLatestHandler(store storage.Store) mcp.ToolHandlerFor[SessionLatestInput, SessionLatestResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SessionLatestInput) (*mcp.CallToolResult, SessionLatestResult, error) {
		last, err := store.CampaignLastSession(ctx, input.CampaignID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, SessionLatestResult{}, fmt.Errorf("campaign %d not found", input.CampaignID)
			}
			return nil, SessionLatestResult{}, fmt.Errorf("load last session: %w", err)
		}
		result := SessionLatestResult{
			Campaign: CampaignEntry{ID: last.Campaign.ID, Name: last.Campaign.Name},
		}
		if last.Content != nil {
			result.LastSessionText = *last.Content
		}
		if last.CreatedAt != nil {
			result.CreatedAt = last.CreatedAt.UTC().Format(time.RFC3339)
		}
		return nil, result, nil
	}
}

func sessionAddTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "session_add",
		Description: "Stores a session transcript for a campaign and returns the new session identifier.",
	}
}

func sessionAddHandler(store storage.Store) mcp.ToolHandlerFor[SessionAddInput, SessionAddResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SessionAddInput) (*mcp.CallToolResult, SessionAddResult, error) {
		content, err := validate.LongText(input.Content, "content", sessionContentMax, true)
		if err != nil {
			return nil, SessionAddResult{}, err
		}
		id, err := store.CreateSession(ctx, input.CampaignID, *content)
		if err != nil {
			return nil, SessionAddResult{}, fmt.Errorf("add session: %w", err)
		}
		return nil, SessionAddResult{ID: id}, nil
	}
}

func partyListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "party_list",
		Description: "Lists the party members of a campaign.",
	}
}

func partyListHandler(store storage.Store) mcp.ToolHandlerFor[PartyListInput, PartyListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PartyListInput) (*mcp.CallToolResult, PartyListResult, error) {
		members, err := store.ListPartyMembers(ctx, input.CampaignID)
		if err != nil {
			return nil, PartyListResult{}, fmt.Errorf("list party members: %w", err)
		}
		entries := make([]PartyMemberEntry, 0, len(members))
		for _, member := range members {
			entries = append(entries, PartyMemberEntry{
				ID:               member.ID,
				Name:             member.Name,
				PlayerName:       member.PlayerName,
				CharacterSpecies: member.CharacterSpecies,
				CharacterClass:   member.CharacterClass,
				Level:            member.Level,
				Notes:            member.Notes,
			})
		}
		return nil, PartyListResult{PartyMembers: entries}, nil
	}
}

func npcListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "npc_list",
		Description: "Lists the NPCs of a campaign.",
	}
}

func npcListHandler(store storage.Store) mcp.ToolHandlerFor[NPCListInput, NPCListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input NPCListInput) (*mcp.CallToolResult, NPCListResult, error) {
		npcs, err := store.ListNPCs(ctx, input.CampaignID)
		if err != nil {
			return nil, NPCListResult{}, fmt.Errorf("list npcs: %w", err)
		}
		entries := make([]NPCEntry, 0, len(npcs))
		for _, npc := range npcs {
			entries = append(entries, NPCEntry{
				ID:      npc.ID,
				Name:    npc.Name,
				Species: npc.Species,
				Gender:  npc.Gender,
				Notes:   npc.Notes,
			})
		}
		return nil, NPCListResult{NPCs: entries}, nil
	}
}

func locationListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "location_list",
		Description: "Lists all world locations. Locations are shared across campaigns.",
	}
}

func locationListHandler(store storage.Store) mcp.ToolHandlerFor[LocationListInput, LocationListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ LocationListInput) (*mcp.CallToolResult, LocationListResult, error) {
		locations, err := store.ListLocations(ctx)
		if err != nil {
			return nil, LocationListResult{}, fmt.Errorf("list locations: %w", err)
		}
		entries := make([]LocationEntry, 0, len(locations))
		for _, location := range locations {
			entries = append(entries, LocationEntry{
				ID:           location.ID,
				Name:         location.Name,
				LocationType: location.LocationType,
				Notes:        location.Notes,
			})
		}
		return nil, LocationListResult{Locations: entries}, nil
	}
}

func sessionPrepTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "session_prep",
		Description: "Generates next-session prep notes for a campaign from its most recent session transcript.",
	}
}

func sessionPrepHandler(store storage.Store, generator Generator) mcp.ToolHandlerFor[SessionPrepInput, SessionPrepResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SessionPrepInput) (*mcp.CallToolResult, SessionPrepResult, error) {
		last, err := store.CampaignLastSession(ctx, input.CampaignID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, SessionPrepResult{}, fmt.Errorf("campaign %d not found", input.CampaignID)
			}
			return nil, SessionPrepResult{}, fmt.Errorf("load last session: %w", err)
		}
		if last.Content == nil || strings.TrimSpace(*last.Content) == "" {
			return nil, SessionPrepResult{}, fmt.Errorf("no stored session found for campaign %d", input.CampaignID)
		}

		party, err := store.ListPartyMembers(ctx, input.CampaignID)
		if err != nil {
			return nil, SessionPrepResult{}, fmt.Errorf("list party members: %w", err)
		}

		userPrompt := prep.BuildUserPrompt(last.Campaign.Name, party, *last.Content)
		notes, err := generator.Generate(ctx, userPrompt)
		if err != nil {
			return nil, SessionPrepResult{}, fmt.Errorf("generate prep notes: %w", err)
		}

		result := SessionPrepResult{
			Campaign: CampaignEntry{ID: last.Campaign.ID, Name: last.Campaign.Name},
			Notes:    notes,
		}
		return nil, result, nil
	}
}
