package repository

import (
	"context"
	"database/sql"
	"time"

	"lirik/internal/model"
	"lirik/internal/snowflake"
)

type SongRepository interface {
	Create(ctx context.Context, song model.Song) (model.Song, error)
	GetByID(ctx context.Context, id int64) (model.Song, error)
	GetByShareToken(ctx context.Context, token string) (model.Song, error)
	List(ctx context.Context) ([]model.Song, error)
	Update(ctx context.Context, song model.Song) (model.Song, error)
	Delete(ctx context.Context, id int64) error
}

type songRepository struct {
	db dbtx
}

func NewSongRepository(db dbtx) SongRepository {
	return &songRepository{db: db}
}

const songColumns = `id, title, artist, source_url, lyrics, language, share_token, created_at, updated_at`

func (r *songRepository) Create(ctx context.Context, song model.Song) (model.Song, error) {
	song.ID = snowflake.NextID()
	now := time.Now().UTC()
	song.CreatedAt = now
	song.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO songs (id, title, artist, source_url, lyrics, language, share_token, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, song.ID, song.Title, song.Artist, song.SourceURL, song.Lyrics, song.Language,
		song.ShareToken, formatTime(now), formatTime(now))
	if err != nil {
		return model.Song{}, err
	}
	return song, nil
}

func (r *songRepository) GetByID(ctx context.Context, id int64) (model.Song, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+songColumns+` FROM songs WHERE id = ?`, id)
	return scanSong(row)
}

func (r *songRepository) GetByShareToken(ctx context.Context, token string) (model.Song, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+songColumns+` FROM songs WHERE share_token = ?`, token)
	return scanSong(row)
}

func (r *songRepository) List(ctx context.Context) ([]model.Song, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+songColumns+` FROM songs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var songs []model.Song
	for rows.Next() {
		song, err := scanSongRows(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, rows.Err()
}

func (r *songRepository) Update(ctx context.Context, song model.Song) (model.Song, error) {
	song.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `
		UPDATE songs SET title = ?, artist = ?, source_url = ?, lyrics = ?, language = ?, updated_at = ?
		WHERE id = ?
	`, song.Title, song.Artist, song.SourceURL, song.Lyrics, song.Language,
		formatTime(song.UpdatedAt), song.ID)
	if err != nil {
		return model.Song{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return model.Song{}, err
	}
	if affected == 0 {
		return model.Song{}, sql.ErrNoRows
	}
	return song, nil
}

func (r *songRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM songs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSong(row *sql.Row) (model.Song, error) {
	return scanSongRows(row)
}

func scanSongRows(row rowScanner) (model.Song, error) {
	var s model.Song
	var createdAt, updatedAt string
	err := row.Scan(&s.ID, &s.Title, &s.Artist, &s.SourceURL, &s.Lyrics, &s.Language,
		&s.ShareToken, &createdAt, &updatedAt)
	if err != nil {
		return model.Song{}, err
	}
	s.CreatedAt, _ = parseTime(createdAt)
	s.UpdatedAt, _ = parseTime(updatedAt)
	return s, nil
}
