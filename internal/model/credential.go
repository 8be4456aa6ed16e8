package model

import "time"

// Credential is a per-user secret used to call the configured LLM provider.
type Credential struct {
	UserID    string    `json:"userId"`
	APIKey    string    `json:"-"`
	UpdatedAt time.Time `json:"updatedAt"`
}
