package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"targetonchain/internal/frame/models"
)

// PostgresStore persists frames in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed frame store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) GetByID(ctx context.Context, id int64) (*models.Frame, error) {
	query := `
		SELECT id, shop, title, image, button, matching_criteria
		FROM frames
		WHERE id = $1
	`
	var frame models.Frame
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&frame.ID, &frame.Shop, &frame.Title, &frame.Image, &frame.Button, &frame.MatchingCriteria,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get frame: %w", err)
	}
	return &frame, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]models.Frame, error) {
	query := `
		SELECT id, shop, title, image, button, matching_criteria
		FROM frames
		ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list frames: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var frames []models.Frame
	for rows.Next() {
		var frame models.Frame
		if err := rows.Scan(&frame.ID, &frame.Shop, &frame.Title, &frame.Image, &frame.Button, &frame.MatchingCriteria); err != nil {
			return nil, fmt.Errorf("scan frame: %w", err)
		}
		frames = append(frames, frame)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate frames: %w", err)
	}
	return frames, nil
}

func (s *PostgresStore) Save(ctx context.Context, frame *models.Frame) error {
	if frame == nil {
		return fmt.Errorf("frame is required")
	}
	query := `
		INSERT INTO frames (shop, title, image, button, matching_criteria)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		frame.Shop, frame.Title, frame.Image, frame.Button, string(frame.MatchingCriteria),
	).Scan(&frame.ID)
	if err != nil {
		return fmt.Errorf("save frame: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, frame *models.Frame) error {
	if frame == nil {
		return fmt.Errorf("frame is required")
	}
	query := `
		UPDATE frames
		SET shop = $2, title = $3, image = $4, button = $5, matching_criteria = $6
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		frame.ID, frame.Shop, frame.Title, frame.Image, frame.Button, string(frame.MatchingCriteria),
	)
	if err != nil {
		return fmt.Errorf("update frame: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update frame rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM frames WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete frame: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete frame rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Verify interface is satisfied.
var _ Store = (*PostgresStore)(nil)
