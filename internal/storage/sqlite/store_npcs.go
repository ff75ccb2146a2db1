package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/plotgod/internal/storage"
)

// CreateNPC inserts one NPC and returns its new ID.
func (s *Store) CreateNPC(ctx context.Context, npc storage.NPC) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	name := strings.TrimSpace(npc.Name)
	if name == "" {
		return 0, fmt.Errorf("npc name is required")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO npcs (campaign_id, name, species, gender, notes) VALUES (?, ?, ?, ?, ?)`,
		npc.CampaignID,
		name,
		nullableString(npc.Species),
		nullableString(npc.Gender),
		nullableString(npc.Notes),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("create npc: campaign %d does not exist: %w", npc.CampaignID, err)
		}
		return 0, fmt.Errorf("create npc: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create npc id: %w", err)
	}
	return id, nil
}

// GetNPC returns one NPC scoped to a campaign.
func (s *Store) GetNPC(ctx context.Context, campaignID, npcID int64) (storage.NPC, error) {
	if err := ctx.Err(); err != nil {
		return storage.NPC{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.NPC{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, campaign_id, name, species, gender, notes FROM npcs WHERE id = ? AND campaign_id = ?`,
		npcID,
		campaignID,
	)
	npc, err := scanNPC(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.NPC{}, storage.ErrNotFound
		}
		return storage.NPC{}, fmt.Errorf("get npc: %w", err)
	}
	return npc, nil
}

// ListNPCs returns a campaign's NPCs ordered by name.
func (s *Store) ListNPCs(ctx context.Context, campaignID int64) ([]storage.NPC, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, campaign_id, name, species, gender, notes
		   FROM npcs
		  WHERE campaign_id = ?
		  ORDER BY name ASC, id ASC`,
		campaignID,
	)
	if err != nil {
		return nil, fmt.Errorf("list npcs: %w", err)
	}
	defer rows.Close()

	npcs := make([]storage.NPC, 0)
	for rows.Next() {
		npc, err := scanNPC(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list npcs: %w", err)
		}
		npcs = append(npcs, npc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list npcs: %w", err)
	}
	return npcs, nil
}

// UpdateNPC overwrites every field of the NPC row, reporting whether a
// row matched within the campaign scope. Nil optional fields clear the
// stored value.
func (s *Store) UpdateNPC(ctx context.Context, npc storage.NPC) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if s == nil || s.sqlDB == nil {
		return false, fmt.Errorf("storage is not configured")
	}
	name := strings.TrimSpace(npc.Name)
	if name == "" {
		return false, fmt.Errorf("npc name is required")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE npcs SET name = ?, species = ?, gender = ?, notes = ? WHERE id = ? AND campaign_id = ?`,
		name,
		nullableString(npc.Species),
		nullableString(npc.Gender),
		nullableString(npc.Notes),
		npc.ID,
		npc.CampaignID,
	)
	if err != nil {
		return false, fmt.Errorf("update npc: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update npc rows: %w", err)
	}
	return affected > 0, nil
}

// DeleteNPC removes one NPC scoped to a campaign, reporting whether it
// existed.
func (s *Store) DeleteNPC(ctx context.Context, campaignID, npcID int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if s == nil || s.sqlDB == nil {
		return false, fmt.Errorf("storage is not configured")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`DELETE FROM npcs WHERE id = ? AND campaign_id = ?`,
		npcID,
		campaignID,
	)
	if err != nil {
		return false, fmt.Errorf("delete npc: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete npc rows: %w", err)
	}
	return affected > 0, nil
}

func scanNPC(scan func(...any) error) (storage.NPC, error) {
	var npc storage.NPC
	var species sql.NullString
	var gender sql.NullString
	var notes sql.NullString
	if err := scan(
		&npc.ID,
		&npc.CampaignID,
		&npc.Name,
		&species,
		&gender,
		&notes,
	); err != nil {
		return storage.NPC{}, err
	}
	npc.Species = stringPtr(species)
	npc.Gender = stringPtr(gender)
	npc.Notes = stringPtr(notes)
	return npc, nil
}
