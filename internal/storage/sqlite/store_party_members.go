package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/plotgod/internal/storage"
)

// CreatePartyMember inserts one party member and returns its new ID.
func (s *Store) CreatePartyMember(ctx context.Context, member storage.PartyMember) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	name := strings.TrimSpace(member.Name)
	if name == "" {
		return 0, fmt.Errorf("party member name is required")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO party_member (
		   campaign_id, name, player_name, character_species, character_class, level, notes
		 ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		member.CampaignID,
		name,
		nullableString(member.PlayerName),
		nullableString(member.CharacterSpecies),
		nullableString(member.CharacterClass),
		nullableInt(member.Level),
		nullableString(member.Notes),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("create party member: campaign %d does not exist: %w", member.CampaignID, err)
		}
		return 0, fmt.Errorf("create party member: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create party member id: %w", err)
	}
	return id, nil
}

// GetPartyMember returns one party member scoped to a campaign.
func (s *Store) GetPartyMember(ctx context.Context, campaignID, memberID int64) (storage.PartyMember, error) {
	if err := ctx.Err(); err != nil {
		return storage.PartyMember{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.PartyMember{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, campaign_id, name, player_name, character_species, character_class, level, notes
		   FROM party_member
		  WHERE id = ? AND campaign_id = ?`,
		memberID,
		campaignID,
	)
	member, err := scanPartyMember(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.PartyMember{}, storage.ErrNotFound
		}
		return storage.PartyMember{}, fmt.Errorf("get party member: %w", err)
	}
	return member, nil
}

// ListPartyMembers returns a campaign's party members ordered by name.
func (s *Store) ListPartyMembers(ctx context.Context, campaignID int64) ([]storage.PartyMember, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, campaign_id, name, player_name, character_species, character_class, level, notes
		   FROM party_member
		  WHERE campaign_id = ?
		  ORDER BY name ASC, id ASC`,
		campaignID,
	)
	if err != nil {
		return nil, fmt.Errorf("list party members: %w", err)
	}
	defer rows.Close()

	members := make([]storage.PartyMember, 0)
	for rows.Next() {
		member, err := scanPartyMember(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list party members: %w", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list party members: %w", err)
	}
	return members, nil
}

// UpdatePartyMember overwrites every field of the member row, reporting
// whether a row matched within the campaign scope. Nil optional fields
// clear the stored value.
func (s *Store) UpdatePartyMember(ctx context.Context, member storage.PartyMember) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if s == nil || s.sqlDB == nil {
		return false, fmt.Errorf("storage is not configured")
	}
	name := strings.TrimSpace(member.Name)
	if name == "" {
		return false, fmt.Errorf("party member name is required")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE party_member
		    SET name = ?, player_name = ?, character_species = ?, character_class = ?, level = ?, notes = ?
		  WHERE id = ? AND campaign_id = ?`,
		name,
		nullableString(member.PlayerName),
		nullableString(member.CharacterSpecies),
		nullableString(member.CharacterClass),
		nullableInt(member.Level),
		nullableString(member.Notes),
		member.ID,
		member.CampaignID,
	)
	if err != nil {
		return false, fmt.Errorf("update party member: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update party member rows: %w", err)
	}
	return affected > 0, nil
}

// DeletePartyMember removes one party member scoped to a campaign,
// reporting whether it existed.
func (s *Store) DeletePartyMember(ctx context.Context, campaignID, memberID int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if s == nil || s.sqlDB == nil {
		return false, fmt.Errorf("storage is not configured")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`DELETE FROM party_member WHERE id = ? AND campaign_id = ?`,
		memberID,
		campaignID,
	)
	if err != nil {
		return false, fmt.Errorf("delete party member: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete party member rows: %w", err)
	}
	return affected > 0, nil
}

func scanPartyMember(scan func(...any) error) (storage.PartyMember, error) {
	var member storage.PartyMember
	var playerName sql.NullString
	var characterSpecies sql.NullString
	var characterClass sql.NullString
	var level sql.NullInt64
	var notes sql.NullString
	if err := scan(
		&member.ID,
		&member.CampaignID,
		&member.Name,
		&playerName,
		&characterSpecies,
		&characterClass,
		&level,
		&notes,
	); err != nil {
		return storage.PartyMember{}, err
	}
	member.PlayerName = stringPtr(playerName)
	member.CharacterSpecies = stringPtr(characterSpecies)
	member.CharacterClass = stringPtr(characterClass)
	member.Level = intPtr(level)
	member.Notes = stringPtr(notes)
	return member, nil
}
