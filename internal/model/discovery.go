package model

import "time"

// SearchResult is one hit from the lyric web search.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// TrendingSong is one entry from the discovery feeds.
type TrendingSong struct {
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Source      string     `json:"source"`
	PublishedAt *time.Time `json:"publishedAt"`
}
