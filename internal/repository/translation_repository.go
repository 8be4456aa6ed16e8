package repository

import (
	"context"
	"database/sql"
	"time"

	"lirik/internal/model"
	"lirik/internal/snowflake"
)

// TranslationRepository caches lyric translations per song and direction.
type TranslationRepository interface {
	Get(ctx context.Context, songID int64, direction string) (*model.Translation, error)
	Save(ctx context.Context, songID int64, direction, content string) error
	DeleteBySongID(ctx context.Context, songID int64) error
	DeleteAll(ctx context.Context) (int64, error)
}

type translationRepository struct {
	db dbtx
}

func NewTranslationRepository(db dbtx) TranslationRepository {
	return &translationRepository{db: db}
}

func (r *translationRepository) Get(ctx context.Context, songID int64, direction string) (*model.Translation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, song_id, direction, content, created_at
		FROM translations WHERE song_id = ? AND direction = ?
	`, songID, direction)

	var t model.Translation
	var createdAt string
	err := row.Scan(&t.ID, &t.SongID, &t.Direction, &t.Content, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	t.CreatedAt, _ = parseTime(createdAt)
	return &t, nil
}

func (r *translationRepository) Save(ctx context.Context, songID int64, direction, content string) error {
	id := snowflake.NextID()
	now := formatTime(time.Now())

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO translations (id, song_id, direction, content, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(song_id, direction) DO UPDATE SET
		  content = excluded.content,
		  created_at = excluded.created_at
	`, id, songID, direction, content, now)
	return err
}

func (r *translationRepository) DeleteBySongID(ctx context.Context, songID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM translations WHERE song_id = ?`, songID)
	return err
}

func (r *translationRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM translations`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
