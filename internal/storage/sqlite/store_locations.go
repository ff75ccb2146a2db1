package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/plotgod/internal/storage"
)

// CreateLocation inserts one location and returns its new ID.
func (s *Store) CreateLocation(ctx context.Context, location storage.Location) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	name := strings.TrimSpace(location.Name)
	if name == "" {
		return 0, fmt.Errorf("location name is required")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO locations (name, location_type, notes) VALUES (?, ?, ?)`,
		name,
		nullableString(location.LocationType),
		nullableString(location.Notes),
	)
	if err != nil {
		return 0, fmt.Errorf("create location: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create location id: %w", err)
	}
	return id, nil
}

// GetLocation returns one location by ID.
func (s *Store) GetLocation(ctx context.Context, id int64) (storage.Location, error) {
	if err := ctx.Err(); err != nil {
		return storage.Location{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Location{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, name, location_type, notes FROM locations WHERE id = ?`,
		id,
	)
	location, err := scanLocation(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Location{}, storage.ErrNotFound
		}
		return storage.Location{}, fmt.Errorf("get location: %w", err)
	}
	return location, nil
}

// ListLocations returns all locations ordered by name.
func (s *Store) ListLocations(ctx context.Context) ([]storage.Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, name, location_type, notes FROM locations ORDER BY name ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	locations := make([]storage.Location, 0)
	for rows.Next() {
		location, err := scanLocation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list locations: %w", err)
		}
		locations = append(locations, location)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return locations, nil
}

// UpdateLocation overwrites every field of the location row, reporting
// whether a row matched. Nil optional fields clear the stored value.
func (s *Store) UpdateLocation(ctx context.Context, location storage.Location) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if s == nil || s.sqlDB == nil {
		return false, fmt.Errorf("storage is not configured")
	}
	name := strings.TrimSpace(location.Name)
	if name == "" {
		return false, fmt.Errorf("location name is required")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE locations SET name = ?, location_type = ?, notes = ? WHERE id = ?`,
		name,
		nullableString(location.LocationType),
		nullableString(location.Notes),
		location.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update location: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update location rows: %w", err)
	}
	return affected > 0, nil
}

// DeleteLocation removes one location by ID, reporting whether it
// existed.
func (s *Store) DeleteLocation(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if s == nil || s.sqlDB == nil {
		return false, fmt.Errorf("storage is not configured")
	}

	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM locations WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete location: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete location rows: %w", err)
	}
	return affected > 0, nil
}

func scanLocation(scan func(...any) error) (storage.Location, error) {
	var location storage.Location
	var locationType sql.NullString
	var notes sql.NullString
	if err := scan(
		&location.ID,
		&location.Name,
		&locationType,
		&notes,
	); err != nil {
		return storage.Location{}, err
	}
	location.LocationType = stringPtr(locationType)
	location.Notes = stringPtr(notes)
	return location, nil
}
