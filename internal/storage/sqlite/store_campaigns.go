package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/plotgod/internal/storage"
)

// CreateCampaign inserts one campaign and returns its new ID.
func (s *Store) CreateCampaign(ctx context.Context, name string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("campaign name is required")
	}

	result, err := s.sqlDB.ExecContext(ctx, `INSERT INTO campaigns (name) VALUES (?)`, name)
	if err != nil {
		return 0, fmt.Errorf("create campaign: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create campaign id: %w", err)
	}
	return id, nil
}

// GetCampaign returns one campaign by ID.
func (s *Store) GetCampaign(ctx context.Context, id int64) (storage.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return storage.Campaign{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Campaign{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(ctx, `SELECT id, name FROM campaigns WHERE id = ?`, id)
	var campaign storage.Campaign
	if err := row.Scan(&campaign.ID, &campaign.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Campaign{}, storage.ErrNotFound
		}
		return storage.Campaign{}, fmt.Errorf("get campaign: %w", err)
	}
	return campaign, nil
}

// ListCampaigns returns all campaigns ordered by name.
func (s *Store) ListCampaigns(ctx context.Context) ([]storage.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT id, name FROM campaigns ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := make([]storage.Campaign, 0)
	for rows.Next() {
		var campaign storage.Campaign
		if err := rows.Scan(&campaign.ID, &campaign.Name); err != nil {
			return nil, fmt.Errorf("list campaigns: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return campaigns, nil
}

// UpdateCampaign overwrites the campaign name, reporting whether a row
// matched.
func (s *Store) UpdateCampaign(ctx context.Context, id int64, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if s == nil || s.sqlDB == nil {
		return false, fmt.Errorf("storage is not configured")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return false, fmt.Errorf("campaign name is required")
	}

	result, err := s.sqlDB.ExecContext(ctx, `UPDATE campaigns SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return false, fmt.Errorf("update campaign: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update campaign rows: %w", err)
	}
	return affected > 0, nil
}

// DeleteCampaign removes the campaign along with its sessions, party
// members, and NPCs in one transaction, reporting whether the campaign
// existed.
func (s *Store) DeleteCampaign(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if s == nil || s.sqlDB == nil {
		return false, fmt.Errorf("storage is not configured")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin delete campaign: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE campaign_id = ?`, id); err != nil {
		return false, fmt.Errorf("delete campaign sessions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM party_member WHERE campaign_id = ?`, id); err != nil {
		return false, fmt.Errorf("delete campaign party members: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM npcs WHERE campaign_id = ?`, id); err != nil {
		return false, fmt.Errorf("delete campaign npcs: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM campaigns WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete campaign: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete campaign rows: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit delete campaign: %w", err)
	}
	return affected > 0, nil
}

// CampaignLastSession returns the campaign plus the content of its most
// recently inserted session. Content stays nil when the campaign has no
// sessions yet.
func (s *Store) CampaignLastSession(ctx context.Context, id int64) (storage.LastSession, error) {
	if err := ctx.Err(); err != nil {
		return storage.LastSession{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.LastSession{}, fmt.Errorf("storage is not configured")
	}

	campaign, err := s.GetCampaign(ctx, id)
	if err != nil {
		return storage.LastSession{}, err
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT content, created_at FROM sessions WHERE campaign_id = ? ORDER BY id DESC LIMIT 1`,
		id,
	)
	var content string
	var createdAt int64
	if err := row.Scan(&content, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.LastSession{Campaign: campaign}, nil
		}
		return storage.LastSession{}, fmt.Errorf("get campaign last session: %w", err)
	}
	created := fromMillis(createdAt)
	return storage.LastSession{Campaign: campaign, Content: &content, CreatedAt: &created}, nil
}
