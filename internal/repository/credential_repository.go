package repository

import (
	"context"
	"database/sql"
	"time"

	"lirik/internal/model"
)

// CredentialRepository stores per-user LLM API keys.
type CredentialRepository interface {
	// Get returns nil when no credential is stored for the user.
	Get(ctx context.Context, userID string) (*model.Credential, error)
	Set(ctx context.Context, userID, apiKey string) error
	Delete(ctx context.Context, userID string) error
}

type credentialRepository struct {
	db dbtx
}

func NewCredentialRepository(db dbtx) CredentialRepository {
	return &credentialRepository{db: db}
}

func (r *credentialRepository) Get(ctx context.Context, userID string) (*model.Credential, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, api_key, updated_at FROM credentials WHERE user_id = ?
	`, userID)

	var c model.Credential
	var updatedAt string
	if err := row.Scan(&c.UserID, &c.APIKey, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	c.UpdatedAt, _ = parseTime(updatedAt)
	return &c, nil
}

func (r *credentialRepository) Set(ctx context.Context, userID, apiKey string) error {
	now := formatTime(time.Now())
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO credentials (user_id, api_key, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET api_key = excluded.api_key, updated_at = excluded.updated_at
	`, userID, apiKey, now)
	return err
}

func (r *credentialRepository) Delete(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE user_id = ?`, userID)
	return err
}
