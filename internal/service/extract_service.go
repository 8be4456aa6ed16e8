package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	readability "codeberg.org/readeck/go-readability/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"lirik/internal/config"
	"lirik/internal/network"
)

// ExtractedPage is the text content pulled out of a lyrics page.
type ExtractedPage struct {
	Title string
	Text  string
}

// ExtractService fetches a web page and extracts its readable text.
type ExtractService interface {
	// ExtractPage fetches the page at pageURL and returns its title and
	// readable text with line structure preserved.
	ExtractPage(ctx context.Context, pageURL string) (*ExtractedPage, error)
}

type extractService struct {
	factory   *network.ClientFactory
	sanitizer *bluemonday.Policy
}

// NewExtractService creates a new extract service.
func NewExtractService(factory *network.ClientFactory) ExtractService {
	// Sanitize before readability parsing: scripts and embedded widgets on
	// lyrics sites routinely break content detection.
	p := bluemonday.UGCPolicy()
	p.AllowElements("article", "section", "header", "footer", "nav", "aside", "main", "figure", "figcaption")
	p.AllowAttrs("id", "class", "lang", "dir").Globally()

	return &extractService{
		factory:   factory,
		sanitizer: p,
	}
}

// Line-break-bearing tags, replaced with text newlines before parsing so
// goquery's Text() keeps the lyric line structure.
var (
	brTagRe    = regexp.MustCompile(`(?i)<br\s*/?>`)
	blockEndRe = regexp.MustCompile(`(?i)</(?:p|div|h[1-6]|li|tr|blockquote|pre)>`)
)

func (s *extractService) ExtractPage(ctx context.Context, pageURL string) (*ExtractedPage, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil || (parsedURL.Scheme != "http" && parsedURL.Scheme != "https") {
		return nil, ErrInvalid
	}

	body, err := s.fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	sanitized := s.sanitizer.Sanitize(body)

	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(sanitized), parsedURL)
	if err != nil {
		return nil, fmt.Errorf("parse content failed: %w", err)
	}

	var buf bytes.Buffer
	if err := article.RenderHTML(&buf); err != nil {
		return nil, fmt.Errorf("render failed: %w", err)
	}

	text, err := htmlToText(buf.String())
	if err != nil {
		return nil, fmt.Errorf("extract text failed: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoLyrics
	}

	return &ExtractedPage{
		Title: pageTitle(body),
		Text:  text,
	}, nil
}

// fetch retrieves the page body. Plain HTTP with a Chrome user agent first;
// on a bot-protection status, retry with a Chrome TLS fingerprint session.
func (s *extractService) fetch(ctx context.Context, pageURL string) (string, error) {
	client := s.factory.NewHTTPClient(ctx, 30*time.Second)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", ErrPageFetch
	}
	req.Header.Set("User-Agent", config.ChromeUserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9,id;q=0.8")

	resp, err := client.Do(req)
	if err != nil {
		return s.fetchWithFingerprint(ctx, pageURL)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("read body failed: %w", err)
		}
		return string(body), nil
	case http.StatusForbidden, http.StatusTooManyRequests, http.StatusServiceUnavailable:
		return s.fetchWithFingerprint(ctx, pageURL)
	default:
		return "", fmt.Errorf("%w: HTTP %d", ErrPageFetch, resp.StatusCode)
	}
}

func (s *extractService) fetchWithFingerprint(ctx context.Context, pageURL string) (string, error) {
	session := s.factory.NewAzureSession(ctx, 30*time.Second)
	defer session.Close()

	resp, err := session.Get(pageURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageFetch, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: HTTP %d", ErrPageFetch, resp.StatusCode)
	}
	return string(resp.Body), nil
}

// htmlToText converts rendered HTML to plain text, turning <br> and block
// element boundaries into newlines first so the lyric lines survive.
func htmlToText(html string) (string, error) {
	html = brTagRe.ReplaceAllString(html, "\n")
	html = blockEndRe.ReplaceAllString(html, "\n\n$0")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	return doc.Text(), nil
}

// pageTitle pulls the page title out of the raw HTML.
func pageTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && og != "" {
		return strings.TrimSpace(og)
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
