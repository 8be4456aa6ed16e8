package model

import "time"

// Translation directions.
const (
	DirectionENToID = "en-id"
	DirectionIDToEN = "id-en"
)

// Translation is a cached lyric translation for a saved song.
type Translation struct {
	ID        int64     `json:"id,string"`
	SongID    int64     `json:"songId,string"`
	Direction string    `json:"direction"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
