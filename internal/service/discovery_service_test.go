package service_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"lirik/internal/network"
	"lirik/internal/service"
	"lirik/internal/service/ai"
)

// stubSettings overrides the pieces of SettingsService a test needs.
type stubSettings struct {
	service.SettingsService
	discovery *service.DiscoverySettings
	cfg       ai.Config
	cfgErr    error
}

func (s *stubSettings) GetDiscoverySettings(ctx context.Context) (*service.DiscoverySettings, error) {
	if s.discovery == nil {
		return &service.DiscoverySettings{RefreshMinutes: service.DefaultDiscoveryRefreshMinutes}, nil
	}
	return s.discovery, nil
}

func (s *stubSettings) ProviderConfig(ctx context.Context) (ai.Config, error) {
	return s.cfg, s.cfgErr
}

const trendingFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Top Songs This Week</title>
<item>
  <title>SomeBand - Empty Street</title>
  <link>https://charts.example.com/songs/empty-street</link>
  <pubDate>Mon, 24 Aug 2026 10:00:00 GMT</pubDate>
</item>
<item>
  <title>Penyanyi - Kisah Kasih</title>
  <link>https://charts.example.com/songs/kisah-kasih</link>
  <pubDate>Tue, 25 Aug 2026 10:00:00 GMT</pubDate>
</item>
</channel>
</rss>`

func TestDiscoveryService_Refresh(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, trendingFeedXML)
	}))
	defer server.Close()

	settings := &stubSettings{discovery: &service.DiscoverySettings{FeedURLs: []string{server.URL}}}
	factory := network.NewClientFactoryForTest(server.Client())
	svc := service.NewDiscoveryService(settings, factory)

	require.NoError(t, svc.Refresh(context.Background()))

	songs, err := svc.Trending(context.Background())
	require.NoError(t, err)
	require.Len(t, songs, 2)

	// Newest first
	require.Equal(t, "Penyanyi - Kisah Kasih", songs[0].Title)
	require.Equal(t, "SomeBand - Empty Street", songs[1].Title)
	require.Equal(t, "Top Songs This Week", songs[0].Source)
	require.False(t, svc.IsRefreshing())
}

func TestDiscoveryService_Trending_RefreshesWhenEmpty(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, trendingFeedXML)
	}))
	defer server.Close()

	settings := &stubSettings{discovery: &service.DiscoverySettings{FeedURLs: []string{server.URL}}}
	factory := network.NewClientFactoryForTest(server.Client())
	svc := service.NewDiscoveryService(settings, factory)

	songs, err := svc.Trending(context.Background())
	require.NoError(t, err)
	require.Len(t, songs, 2)
	require.Equal(t, 1, requests)

	// Second call serves from cache
	songs, err = svc.Trending(context.Background())
	require.NoError(t, err)
	require.Len(t, songs, 2)
	require.Equal(t, 1, requests)
}

func TestDiscoveryService_Refresh_SkipsBrokenFeeds(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, trendingFeedXML)
	}))
	defer good.Close()
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()

	settings := &stubSettings{discovery: &service.DiscoverySettings{
		FeedURLs: []string{broken.URL, good.URL},
	}}
	factory := network.NewClientFactoryForTest(good.Client())
	svc := service.NewDiscoveryService(settings, factory)

	require.NoError(t, svc.Refresh(context.Background()))

	songs, err := svc.Trending(context.Background())
	require.NoError(t, err)
	require.Len(t, songs, 2)
}

func TestDiscoveryService_Refresh_NoFeeds(t *testing.T) {
	settings := &stubSettings{}
	factory := network.NewClientFactoryForTest(http.DefaultClient)
	svc := service.NewDiscoveryService(settings, factory)

	require.NoError(t, svc.Refresh(context.Background()))

	songs, err := svc.Trending(context.Background())
	require.NoError(t, err)
	require.Empty(t, songs)
}
