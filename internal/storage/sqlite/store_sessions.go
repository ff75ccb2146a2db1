package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/plotgod/internal/storage"
)

// CreateSession inserts one session transcript and returns its new ID.
func (s *Store) CreateSession(ctx context.Context, campaignID int64, content string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(content) == "" {
		return 0, fmt.Errorf("session content is required")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO sessions (campaign_id, content, created_at) VALUES (?, ?, ?)`,
		campaignID,
		content,
		toMillis(time.Now()),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("create session: campaign %d does not exist: %w", campaignID, err)
		}
		return 0, fmt.Errorf("create session: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create session id: %w", err)
	}
	return id, nil
}

// GetSession returns one session scoped to a campaign.
func (s *Store) GetSession(ctx context.Context, campaignID, sessionID int64) (storage.Session, error) {
	if err := ctx.Err(); err != nil {
		return storage.Session{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Session{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, campaign_id, content, created_at FROM sessions WHERE id = ? AND campaign_id = ?`,
		sessionID,
		campaignID,
	)
	var session storage.Session
	var createdAt int64
	if err := row.Scan(&session.ID, &session.CampaignID, &session.Content, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Session{}, storage.ErrNotFound
		}
		return storage.Session{}, fmt.Errorf("get session: %w", err)
	}
	session.CreatedAt = fromMillis(createdAt)
	return session, nil
}

// ListSessions returns a campaign's sessions newest-first.
func (s *Store) ListSessions(ctx context.Context, campaignID int64) ([]storage.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, campaign_id, content, created_at FROM sessions WHERE campaign_id = ? ORDER BY id DESC`,
		campaignID,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]storage.Session, 0)
	for rows.Next() {
		var session storage.Session
		var createdAt int64
		if err := rows.Scan(&session.ID, &session.CampaignID, &session.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("list sessions: %w", err)
		}
		session.CreatedAt = fromMillis(createdAt)
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// UpdateSession overwrites the session content, reporting whether a row
// matched within the campaign scope.
func (s *Store) UpdateSession(ctx context.Context, campaignID, sessionID int64, content string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if s == nil || s.sqlDB == nil {
		return false, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(content) == "" {
		return false, fmt.Errorf("session content is required")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE sessions SET content = ? WHERE id = ? AND campaign_id = ?`,
		content,
		sessionID,
		campaignID,
	)
	if err != nil {
		return false, fmt.Errorf("update session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update session rows: %w", err)
	}
	return affected > 0, nil
}

// DeleteSession removes one session scoped to a campaign, reporting
// whether it existed.
func (s *Store) DeleteSession(ctx context.Context, campaignID, sessionID int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if s == nil || s.sqlDB == nil {
		return false, fmt.Errorf("storage is not configured")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`DELETE FROM sessions WHERE id = ? AND campaign_id = ?`,
		sessionID,
		campaignID,
	)
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete session rows: %w", err)
	}
	return affected > 0, nil
}
