package service

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"lirik/internal/config"
	"lirik/internal/logger"
	"lirik/internal/model"
	"lirik/internal/network"
)

// ErrAlreadyRefreshing is returned when a refresh is requested while one is
// in progress.
var ErrAlreadyRefreshing = errors.New("refresh already in progress")

// maxFeedConcurrency bounds parallel feed fetches.
const maxFeedConcurrency = 4

// maxTrendingPerFeed caps how many items each feed contributes.
const maxTrendingPerFeed = 20

// DiscoveryService surfaces trending songs from configured music feeds.
type DiscoveryService interface {
	// Trending returns the cached trending songs, refreshing first if the
	// cache is empty.
	Trending(ctx context.Context) ([]model.TrendingSong, error)
	// Refresh re-fetches all configured feeds.
	Refresh(ctx context.Context) error
	// IsRefreshing reports whether a refresh is in progress.
	IsRefreshing() bool
}

type discoveryService struct {
	settings SettingsService
	factory  *network.ClientFactory

	mu           sync.RWMutex
	cache        []model.TrendingSong
	refreshedAt  time.Time
	isRefreshing bool
}

// NewDiscoveryService creates a new discovery service.
func NewDiscoveryService(settings SettingsService, factory *network.ClientFactory) DiscoveryService {
	return &discoveryService{
		settings: settings,
		factory:  factory,
	}
}

// Trending returns the cached trending songs, refreshing first if the cache
// is empty.
func (s *discoveryService) Trending(ctx context.Context) ([]model.TrendingSong, error) {
	s.mu.RLock()
	cached := s.cache
	empty := s.refreshedAt.IsZero()
	s.mu.RUnlock()

	if !empty {
		return cached, nil
	}

	if err := s.Refresh(ctx); err != nil && !errors.Is(err, ErrAlreadyRefreshing) {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache, nil
}

// IsRefreshing reports whether a refresh is in progress.
func (s *discoveryService) IsRefreshing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRefreshing
}

// Refresh re-fetches all configured feeds. Feeds that fail are logged and
// skipped; the refresh succeeds if any feed parses.
func (s *discoveryService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.isRefreshing {
		s.mu.Unlock()
		return ErrAlreadyRefreshing
	}
	s.isRefreshing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isRefreshing = false
		s.mu.Unlock()
	}()

	cfg, err := s.settings.GetDiscoverySettings(ctx)
	if err != nil {
		return err
	}
	if len(cfg.FeedURLs) == 0 {
		s.mu.Lock()
		s.cache = nil
		s.refreshedAt = time.Now()
		s.mu.Unlock()
		return nil
	}

	var (
		resultMu sync.Mutex
		songs    []model.TrendingSong
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxFeedConcurrency)

	for _, feedURL := range cfg.FeedURLs {
		feedURL := feedURL
		g.Go(func() error {
			items, err := s.fetchFeed(gctx, feedURL)
			if err != nil {
				logger.Warn("trending feed fetch failed", "module", "discovery", "action", "refresh", "resource", "feed", "result", "failed", "url", feedURL, "error", err)
				return nil // skip failed feeds
			}
			resultMu.Lock()
			songs = append(songs, items...)
			resultMu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	// Newest first; undated items sink to the end
	sort.SliceStable(songs, func(i, j int) bool {
		a, b := songs[i].PublishedAt, songs[j].PublishedAt
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.After(*b)
	})

	s.mu.Lock()
	s.cache = songs
	s.refreshedAt = time.Now()
	s.mu.Unlock()

	logger.Info("trending refresh completed", "module", "discovery", "action", "refresh", "resource", "feed", "result", "ok", "feeds", len(cfg.FeedURLs), "songs", len(songs))
	return nil
}

func (s *discoveryService) fetchFeed(ctx context.Context, feedURL string) ([]model.TrendingSong, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", config.DefaultUserAgent)

	client := s.factory.NewHTTPClient(ctx, 30*time.Second)
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(resp.Status)
	}

	parsed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, err
	}

	source := parsed.Title
	if source == "" {
		source = feedURL
	}

	var songs []model.TrendingSong
	for _, item := range parsed.Items {
		if item.Title == "" || item.Link == "" {
			continue
		}
		songs = append(songs, model.TrendingSong{
			Title:       item.Title,
			URL:         item.Link,
			Source:      source,
			PublishedAt: item.PublishedParsed,
		})
		if len(songs) >= maxTrendingPerFeed {
			break
		}
	}
	return songs, nil
}
