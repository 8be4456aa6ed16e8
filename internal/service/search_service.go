package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"lirik/internal/config"
	"lirik/internal/logger"
	"lirik/internal/model"
	"lirik/internal/network"
)

// searchBaseURL is the HTML (no-JS) DuckDuckGo endpoint.
const searchBaseURL = "https://html.duckduckgo.com/html/"

// maxSearchResults caps how many results a search returns.
const maxSearchResults = 10

// SearchService finds candidate lyrics pages for a song.
type SearchService interface {
	// Search runs a web search for the song's lyrics pages.
	Search(ctx context.Context, title, artist string) ([]model.SearchResult, error)
}

type searchService struct {
	factory *network.ClientFactory
	baseURL string
}

// NewSearchService creates a new search service.
func NewSearchService(factory *network.ClientFactory) SearchService {
	return &searchService{factory: factory, baseURL: searchBaseURL}
}

// NewSearchServiceWithBaseURL creates a search service against a custom
// endpoint. This is only for use in tests.
func NewSearchServiceWithBaseURL(factory *network.ClientFactory, baseURL string) SearchService {
	return &searchService{factory: factory, baseURL: baseURL}
}

// Search runs a web search for the song's lyrics pages.
func (s *searchService) Search(ctx context.Context, title, artist string) ([]model.SearchResult, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrInvalid
	}

	query := title + " lyrics"
	if artist := strings.TrimSpace(artist); artist != "" {
		query = title + " " + artist + " lyrics"
	}

	form := url.Values{}
	form.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", config.ChromeUserAgent)

	client := s.factory.NewHTTPClient(ctx, 20*time.Second)
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d", ErrPageFetch, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse search results: %w", err)
	}

	var results []model.SearchResult
	doc.Find(".result").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		link := sel.Find(".result__a").First()
		href, ok := link.Attr("href")
		if !ok {
			return true
		}

		resultURL := resolveRedirect(href)
		if resultURL == "" {
			return true
		}

		results = append(results, model.SearchResult{
			Title:   strings.TrimSpace(link.Text()),
			URL:     resultURL,
			Snippet: strings.TrimSpace(sel.Find(".result__snippet").First().Text()),
		})
		return len(results) < maxSearchResults
	})

	logger.Info("lyrics search completed", "module", "search", "action", "search", "resource", "song", "result", "ok", "query", query, "count", len(results))
	return results, nil
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg= redirect links to the
// destination URL. Direct links pass through unchanged.
func resolveRedirect(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}

	// Query().Get already unescapes the destination URL
	if uddg := parsed.Query().Get("uddg"); uddg != "" {
		href = uddg
	}

	final, err := url.Parse(href)
	if err != nil || (final.Scheme != "http" && final.Scheme != "https") {
		return ""
	}
	return final.String()
}
