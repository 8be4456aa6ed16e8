package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"lirik/internal/logger"
	"lirik/internal/lyrics"
	"lirik/internal/model"
	"lirik/internal/repository"
)

// SongInput is the payload for creating or updating a song.
type SongInput struct {
	Title     string  `json:"title"`
	Artist    *string `json:"artist"`
	SourceURL *string `json:"sourceUrl"`
	Lyrics    string  `json:"lyrics"`
	Language  string  `json:"language"`
}

// LyricsPreview is a fetched, cleaned lyrics page before saving.
type LyricsPreview struct {
	Title     string `json:"title"`
	SourceURL string `json:"sourceUrl"`
	Lyrics    string `json:"lyrics"`
	Language  string `json:"language"`
}

// LyricsService is the core song workflow: search for lyrics pages, fetch
// and clean them, and manage the saved library.
type LyricsService interface {
	// Search finds candidate lyrics pages for a song.
	Search(ctx context.Context, title, artist string) ([]model.SearchResult, error)
	// Preview fetches a lyrics page and returns the cleaned lyrics without
	// saving anything.
	Preview(ctx context.Context, pageURL string) (*LyricsPreview, error)
	// Create saves a song, running the lyrics through the cleanup pipeline.
	Create(ctx context.Context, input SongInput) (*model.Song, error)
	// Get returns a saved song.
	Get(ctx context.Context, id int64) (*model.Song, error)
	// GetByShareToken returns a saved song by its public share token.
	GetByShareToken(ctx context.Context, token string) (*model.Song, error)
	// List returns all saved songs, newest first.
	List(ctx context.Context) ([]model.Song, error)
	// Update updates a saved song, re-cleaning the lyrics.
	Update(ctx context.Context, id int64, input SongInput) (*model.Song, error)
	// Delete removes a saved song and its cached translations.
	Delete(ctx context.Context, id int64) error
	// Clean runs raw text through the lyrics cleanup pipeline.
	Clean(text string) string
}

type lyricsService struct {
	songs   repository.SongRepository
	search  SearchService
	extract ExtractService
}

// NewLyricsService creates a new lyrics service.
func NewLyricsService(songs repository.SongRepository, search SearchService, extract ExtractService) LyricsService {
	return &lyricsService{
		songs:   songs,
		search:  search,
		extract: extract,
	}
}

// Search finds candidate lyrics pages for a song.
func (s *lyricsService) Search(ctx context.Context, title, artist string) ([]model.SearchResult, error) {
	return s.search.Search(ctx, title, artist)
}

// Preview fetches a lyrics page and returns the cleaned lyrics without
// saving anything.
func (s *lyricsService) Preview(ctx context.Context, pageURL string) (*LyricsPreview, error) {
	page, err := s.extract.ExtractPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	cleaned := lyrics.Clean(page.Text)
	if cleaned == "" {
		return nil, ErrNoLyrics
	}

	logger.Info("lyrics fetched", "module", "lyrics", "action", "fetch", "resource", "song", "result", "ok", "url", pageURL, "chars", len(cleaned))
	return &LyricsPreview{
		Title:     page.Title,
		SourceURL: pageURL,
		Lyrics:    cleaned,
		Language:  detectLanguage(cleaned),
	}, nil
}

// Create saves a song, running the lyrics through the cleanup pipeline.
func (s *lyricsService) Create(ctx context.Context, input SongInput) (*model.Song, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrInvalid
	}

	cleaned := lyrics.Clean(input.Lyrics)
	if cleaned == "" {
		return nil, ErrNoLyrics
	}

	language := input.Language
	if language == "" {
		language = detectLanguage(cleaned)
	}

	song, err := s.songs.Create(ctx, model.Song{
		Title:      title,
		Artist:     input.Artist,
		SourceURL:  input.SourceURL,
		Lyrics:     cleaned,
		Language:   language,
		ShareToken: uuid.NewString(),
	})
	if err != nil {
		return nil, err
	}

	logger.Info("song saved", "module", "lyrics", "action", "create", "resource", "song", "result", "ok", "id", song.ID)
	return &song, nil
}

// Get returns a saved song.
func (s *lyricsService) Get(ctx context.Context, id int64) (*model.Song, error) {
	song, err := s.songs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &song, nil
}

// GetByShareToken returns a saved song by its public share token.
func (s *lyricsService) GetByShareToken(ctx context.Context, token string) (*model.Song, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrInvalid
	}
	song, err := s.songs.GetByShareToken(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &song, nil
}

// List returns all saved songs, newest first.
func (s *lyricsService) List(ctx context.Context) ([]model.Song, error) {
	return s.songs.List(ctx)
}

// Update updates a saved song, re-cleaning the lyrics.
func (s *lyricsService) Update(ctx context.Context, id int64, input SongInput) (*model.Song, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrInvalid
	}

	cleaned := lyrics.Clean(input.Lyrics)
	if cleaned == "" {
		return nil, ErrNoLyrics
	}

	existing.Title = title
	existing.Artist = input.Artist
	existing.SourceURL = input.SourceURL
	existing.Lyrics = cleaned
	if input.Language != "" {
		existing.Language = input.Language
	}

	updated, err := s.songs.Update(ctx, *existing)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

// Delete removes a saved song. Cached translations go with it via the
// foreign key cascade.
func (s *lyricsService) Delete(ctx context.Context, id int64) error {
	if err := s.songs.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	logger.Info("song deleted", "module", "lyrics", "action", "delete", "resource", "song", "result", "ok", "id", id)
	return nil
}

// Clean runs raw text through the lyrics cleanup pipeline.
func (s *lyricsService) Clean(text string) string {
	return lyrics.Clean(text)
}

// Common short words used to guess whether lyrics are Indonesian or
// English. Crude, but the guess is only a default the user can override.
var indonesianHints = map[string]struct{}{
	"aku": {}, "kamu": {}, "kau": {}, "cinta": {}, "yang": {}, "tidak": {},
	"tak": {}, "ini": {}, "itu": {}, "dan": {}, "di": {}, "ke": {},
	"hati": {}, "sayang": {}, "bila": {}, "akan": {}, "ada": {}, "saat": {},
}

func detectLanguage(text string) string {
	hits := 0
	words := strings.Fields(strings.ToLower(text))
	for _, w := range words {
		w = strings.Trim(w, ".,!?;:\"'()")
		if _, ok := indonesianHints[w]; ok {
			hits++
		}
	}
	if len(words) > 0 && hits*20 >= len(words) {
		return "id"
	}
	return "en"
}
