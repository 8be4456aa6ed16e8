package service

import (
	"context"
	"fmt"
	"strings"

	"lirik/internal/logger"
	"lirik/internal/lyrics"
	"lirik/internal/model"
	"lirik/internal/repository"
	"lirik/internal/service/ai"
)

// notFoundSentinel is what the extraction prompt instructs the model to
// output when the page holds no lyrics.
const notFoundSentinel = "NOT_FOUND"

// TranslateService runs lyrics through the configured LLM provider:
// streaming translation, refinement, and extraction fallback.
type TranslateService interface {
	// Direction returns the translation direction for a song based on its
	// language, and the target language code.
	Direction(song *model.Song) (direction, target string)
	// GetCachedTranslation returns a cached translation if available.
	GetCachedTranslation(ctx context.Context, songID int64, direction string) (*model.Translation, error)
	// TranslateStream translates a song's lyrics using AI streaming.
	// Returns channels for text chunks and errors.
	TranslateStream(ctx context.Context, song *model.Song) (<-chan string, <-chan error, error)
	// SaveTranslation saves a completed translation to cache.
	SaveTranslation(ctx context.Context, songID int64, direction, content string) error
	// Refine runs an LLM cleanup pass over a song's lyrics and saves the
	// result. Cached translations are invalidated.
	Refine(ctx context.Context, songID int64) (*model.Song, error)
	// ExtractLyrics asks the LLM to pull lyrics out of page text when the
	// mechanical pipeline finds nothing usable.
	ExtractLyrics(ctx context.Context, pageText, title, artist string) (string, error)
	// ClearCache deletes all cached translations.
	ClearCache(ctx context.Context) (int64, error)
}

type translateService struct {
	songs        repository.SongRepository
	translations repository.TranslationRepository
	settings     SettingsService
	rateLimiter  *ai.RateLimiter
}

// NewTranslateService creates a new translate service.
func NewTranslateService(
	songs repository.SongRepository,
	translations repository.TranslationRepository,
	settings SettingsService,
	rateLimiter *ai.RateLimiter,
) TranslateService {
	return &translateService{
		songs:        songs,
		translations: translations,
		settings:     settings,
		rateLimiter:  rateLimiter,
	}
}

// Direction returns the translation direction for a song based on its
// language, and the target language code. Anything not Indonesian is
// treated as English source.
func (s *translateService) Direction(song *model.Song) (string, string) {
	if song.Language == "id" {
		return model.DirectionIDToEN, "en"
	}
	return model.DirectionENToID, "id"
}

// GetCachedTranslation returns a cached translation if available.
func (s *translateService) GetCachedTranslation(ctx context.Context, songID int64, direction string) (*model.Translation, error) {
	translation, err := s.translations.Get(ctx, songID, direction)
	if err != nil {
		logger.Warn("translation cache lookup failed", "module", "translate", "action", "fetch", "resource", "translation", "result", "failed", "song_id", songID, "error", err)
		return nil, err
	}
	return translation, nil
}

// TranslateStream translates a song's lyrics using AI streaming.
func (s *translateService) TranslateStream(ctx context.Context, song *model.Song) (<-chan string, <-chan error, error) {
	provider, err := s.newProvider(ctx)
	if err != nil {
		return nil, nil, err
	}

	if err := s.rateLimiter.Wait(ctx); err != nil {
		logger.Warn("llm rate limit wait failed", "module", "translate", "action", "fetch", "resource", "ai", "result", "failed", "error", err)
		return nil, nil, fmt.Errorf("rate limit: %w", err)
	}

	_, target := s.Direction(song)
	artist := ""
	if song.Artist != nil {
		artist = *song.Artist
	}
	systemPrompt := ai.GetTranslateLyricsPrompt(song.Title, artist, target)

	textCh, errCh := provider.CompleteStream(ctx, systemPrompt, ai.WrapInput(song.Lyrics))
	logger.Info("translation stream started", "module", "translate", "action", "fetch", "resource", "ai", "result", "ok", "song_id", song.ID, "target", target)

	return textCh, errCh, nil
}

// SaveTranslation saves a completed translation to cache.
func (s *translateService) SaveTranslation(ctx context.Context, songID int64, direction, content string) error {
	if err := s.translations.Save(ctx, songID, direction, content); err != nil {
		logger.Warn("translation save failed", "module", "translate", "action", "save", "resource", "translation", "result", "failed", "song_id", songID, "error", err)
		return err
	}
	logger.Info("translation saved", "module", "translate", "action", "save", "resource", "translation", "result", "ok", "song_id", songID, "direction", direction)
	return nil
}

// Refine runs an LLM cleanup pass over a song's lyrics and saves the result.
func (s *translateService) Refine(ctx context.Context, songID int64) (*model.Song, error) {
	song, err := s.songs.GetByID(ctx, songID)
	if err != nil {
		return nil, ErrNotFound
	}

	provider, err := s.newProvider(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	refined, err := provider.Complete(ctx, ai.GetRefinePrompt(), ai.WrapInput(song.Lyrics))
	if err != nil {
		return nil, fmt.Errorf("refine lyrics: %w", err)
	}

	// Re-run the pipeline: the model occasionally reintroduces stray
	// whitespace or leftover labels.
	cleaned := lyrics.Clean(refined)
	if cleaned == "" {
		return nil, ErrNoLyrics
	}

	song.Lyrics = cleaned
	updated, err := s.songs.Update(ctx, song)
	if err != nil {
		return nil, err
	}

	// Lyrics changed, cached translations are stale
	if err := s.translations.DeleteBySongID(ctx, songID); err != nil {
		logger.Warn("translation invalidate failed", "module", "translate", "action", "delete", "resource", "translation", "result", "failed", "song_id", songID, "error", err)
	}

	logger.Info("lyrics refined", "module", "translate", "action", "update", "resource", "song", "result", "ok", "song_id", songID)
	return &updated, nil
}

// ExtractLyrics asks the LLM to pull lyrics out of page text.
func (s *translateService) ExtractLyrics(ctx context.Context, pageText, title, artist string) (string, error) {
	provider, err := s.newProvider(ctx)
	if err != nil {
		return "", err
	}

	if err := s.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	extracted, err := provider.Complete(ctx, ai.GetExtractLyricsPrompt(title, artist), ai.WrapInput(pageText))
	if err != nil {
		return "", fmt.Errorf("extract lyrics: %w", err)
	}

	if strings.TrimSpace(extracted) == notFoundSentinel {
		return "", ErrNoLyrics
	}

	cleaned := lyrics.Clean(extracted)
	if cleaned == "" {
		return "", ErrNoLyrics
	}
	return cleaned, nil
}

// ClearCache deletes all cached translations.
func (s *translateService) ClearCache(ctx context.Context) (int64, error) {
	deleted, err := s.translations.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear translations: %w", err)
	}
	logger.Info("translation cache cleared", "module", "translate", "action", "clear", "resource", "translation", "result", "ok", "deleted", deleted)
	return deleted, nil
}

func (s *translateService) newProvider(ctx context.Context) (ai.Provider, error) {
	cfg, err := s.settings.ProviderConfig(ctx)
	if err != nil {
		return nil, err
	}

	provider, err := ai.NewProvider(cfg)
	if err != nil {
		logger.Warn("llm provider create failed", "module", "translate", "action", "fetch", "resource", "ai", "result", "failed", "provider", cfg.Provider, "model", cfg.Model, "error", err)
		return nil, fmt.Errorf("create provider: %w", err)
	}
	return provider, nil
}
