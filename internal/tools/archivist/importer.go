package archivist

import (
	"context"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/louisbranch/plotgod/internal/storage"
	"github.com/louisbranch/plotgod/internal/storage/sqlite"
	"github.com/louisbranch/plotgod/internal/validate"
)

// DefaultCampaign is the campaign imported when -campaign is not set.
const DefaultCampaign = "Tales of Aanur"

const (
	campaignNameMax   = 100
	sessionContentMax = 50000
)

// Config holds configuration for the archivist importer.
type Config struct {
	Campaign string
	DBPath   string
	BaseURL  string
	APIKey   string
}

// ParseConfig parses CLI flags into a Config. Fields already set on
// defaults (typically from the environment) seed the flag values.
func ParseConfig(fs *flag.FlagSet, args []string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(cfg.Campaign) == "" {
		cfg.Campaign = DefaultCampaign
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "plotgod.db")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	fs.StringVar(&cfg.Campaign, "campaign", cfg.Campaign, "campaign title to import")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "campaign database path")
	fs.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "archivist API root")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run imports the newest Archivist session summary for the configured
// campaign into the local store and reports the new session on out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = io.Discard
	}

	name, err := validate.Name(cfg.Campaign, "campaign", campaignNameMax, true)
	if err != nil {
		return err
	}

	store, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	client := NewClient(ClientConfig{APIKey: cfg.APIKey, BaseURL: cfg.BaseURL})
	result, err := importLatest(ctx, store, client, *name)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "imported %q as session %d into campaign %d\n", result.SessionTitle, result.SessionID, result.CampaignID)
	return err
}

type importResult struct {
	CampaignID   int64
	SessionID    int64
	SessionTitle string
}

func importLatest(ctx context.Context, store storage.Store, client *Client, campaignName string) (importResult, error) {
	campaigns, err := client.Campaigns(ctx)
	if err != nil {
		return importResult{}, err
	}
	remoteID := ""
	for _, campaign := range campaigns {
		if strings.EqualFold(strings.TrimSpace(campaign.Title), campaignName) {
			remoteID = campaign.ID
			break
		}
	}
	if remoteID == "" {
		return importResult{}, fmt.Errorf("archivist campaign %q not found", campaignName)
	}

	sessions, err := client.Sessions(ctx, remoteID)
	if err != nil {
		return importResult{}, err
	}
	latest, ok := latestSession(sessions)
	if !ok {
		return importResult{}, fmt.Errorf("no archivist sessions found for %q", campaignName)
	}
	title := strings.TrimSpace(latest.Title)
	if title == "" {
		title = "(untitled)"
	}
	if strings.TrimSpace(latest.Summary) == "" {
		return importResult{}, fmt.Errorf("archivist session %q has no summary", title)
	}

	content, err := validate.LongText(fmt.Sprintf("Archivist Summary — %s\n\n%s", title, latest.Summary), "content", sessionContentMax, true)
	if err != nil {
		return importResult{}, err
	}

	campaignID, err := localCampaignID(ctx, store, campaignName)
	if err != nil {
		return importResult{}, err
	}
	sessionID, err := store.CreateSession(ctx, campaignID, *content)
	if err != nil {
		return importResult{}, fmt.Errorf("store session: %w", err)
	}
	return importResult{CampaignID: campaignID, SessionID: sessionID, SessionTitle: title}, nil
}

// latestSession picks the session with the greatest session_date,
// falling back to created_at when unset. Ties keep the earlier entry.
func latestSession(sessions []Session) (Session, bool) {
	var latest Session
	var latestKey string
	found := false
	for _, session := range sessions {
		key := session.SessionDate
		if key == "" {
			key = session.CreatedAt
		}
		if !found || key > latestKey {
			latest = session
			latestKey = key
			found = true
		}
	}
	return latest, found
}

// localCampaignID finds the campaign by name, creating it on first import.
func localCampaignID(ctx context.Context, store storage.Store, name string) (int64, error) {
	campaigns, err := store.ListCampaigns(ctx)
	if err != nil {
		return 0, fmt.Errorf("list campaigns: %w", err)
	}
	for _, campaign := range campaigns {
		if campaign.Name == name {
			return campaign.ID, nil
		}
	}
	id, err := store.CreateCampaign(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("create campaign: %w", err)
	}
	return id, nil
}
