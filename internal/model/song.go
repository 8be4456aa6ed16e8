package model

import "time"

// Song is a saved song with its cleaned lyrics.
type Song struct {
	ID         int64     `json:"id,string"`
	Title      string    `json:"title"`
	Artist     *string   `json:"artist"`
	SourceURL  *string   `json:"sourceUrl"`
	Lyrics     string    `json:"lyrics"`
	Language   string    `json:"language"`
	ShareToken string    `json:"shareToken"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
