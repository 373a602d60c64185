package photo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines photo data access interface
type Repository interface {
	// Create inserts the photo; created_at is assigned by the database and
	// written back into the entity.
	Create(ctx context.Context, photo *Photo) error
	GetByID(ctx context.Context, id uuid.UUID) (*Photo, error)
	// ListOrdered returns all photos newest first (created_at desc, id as
	// tiebreak).
	ListOrdered(ctx context.Context) ([]*Photo, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*Photo, error)
	// ReplaceLikeCount writes an absolute like count. This is deliberately a
	// field replacement, not an increment: callers compute the target from
	// their own copy, and concurrent callers racing on a stale count can
	// lose an update.
	ReplaceLikeCount(ctx context.Context, id uuid.UUID, count int) error
	// AppendComment appends a single comment to the photo's jsonb sequence
	// in one statement, safe under concurrent appends from other writers.
	AppendComment(ctx context.Context, id uuid.UUID, comment Comment) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new photo repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, photo *Photo) error {
	query := `
		INSERT INTO photos (id, url, description, author_id, author_name, author_avatar_url, like_count, comments)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		photo.ID,
		photo.URL,
		photo.Description,
		photo.AuthorID,
		photo.AuthorName,
		photo.AuthorAvatarURL,
		photo.LikeCount,
		photo.Comments,
	).Scan(&photo.CreatedAt)
	if err != nil {
		return fmt.Errorf("photo repository create: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Photo, error) {
	query := `SELECT * FROM photos WHERE id = $1`
	var photo Photo
	err := r.db.GetContext(ctx, &photo, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &photo, nil
}

func (r *repository) ListOrdered(ctx context.Context) ([]*Photo, error) {
	query := `SELECT * FROM photos ORDER BY created_at DESC, id DESC`
	var photos []*Photo
	err := r.db.SelectContext(ctx, &photos, query)
	return photos, err
}

func (r *repository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*Photo, error) {
	query := `SELECT * FROM photos WHERE author_id = $1 ORDER BY created_at DESC, id DESC`
	var photos []*Photo
	err := r.db.SelectContext(ctx, &photos, query, authorID)
	return photos, err
}

func (r *repository) ReplaceLikeCount(ctx context.Context, id uuid.UUID, count int) error {
	query := `UPDATE photos SET like_count = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, count)
	if err != nil {
		return fmt.Errorf("photo repository replace like count: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrPhotoNotFound
	}
	return nil
}

func (r *repository) AppendComment(ctx context.Context, id uuid.UUID, comment Comment) error {
	payload, err := json.Marshal(comment)
	if err != nil {
		return fmt.Errorf("photo repository marshal comment: %w", err)
	}

	// jsonb || concatenation appends in a single statement, so concurrent
	// appends from other clients are never clobbered.
	query := `UPDATE photos SET comments = comments || $2::jsonb WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, payload)
	if err != nil {
		return fmt.Errorf("photo repository append comment: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrPhotoNotFound
	}
	return nil
}
