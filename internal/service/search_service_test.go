package service_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"lirik/internal/network"
	"lirik/internal/service"
)

const searchResultsHTML = `<!DOCTYPE html>
<html><body>
<div class="result">
  <a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Flyrics.example.com%2Fhurt&amp;rut=abc">Hurt Lyrics - Johnny Cash</a>
  <a class="result__snippet">I hurt myself today, to see if I still feel...</a>
</div>
<div class="result">
  <a class="result__a" href="https://songs.example.com/hurt-lyrics">Johnny Cash - Hurt</a>
  <a class="result__snippet">Full lyrics with chords.</a>
</div>
<div class="result">
  <a class="result__a" href="javascript:void(0)">Broken result</a>
</div>
</body></html>`

func newSearchTestService(t *testing.T, handler http.HandlerFunc) service.SearchService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	factory := network.NewClientFactoryForTest(server.Client())
	return service.NewSearchServiceWithBaseURL(factory, server.URL)
}

func TestSearchService_Search(t *testing.T) {
	var gotQuery string
	svc := newSearchTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotQuery = r.PostFormValue("q")
		fmt.Fprint(w, searchResultsHTML)
	})

	results, err := svc.Search(context.Background(), "Hurt", "Johnny Cash")
	require.NoError(t, err)
	require.Equal(t, "Hurt Johnny Cash lyrics", gotQuery)
	require.Len(t, results, 2)

	require.Equal(t, "Hurt Lyrics - Johnny Cash", results[0].Title)
	require.Equal(t, "https://lyrics.example.com/hurt", results[0].URL)
	require.Contains(t, results[0].Snippet, "I hurt myself today")

	require.Equal(t, "https://songs.example.com/hurt-lyrics", results[1].URL)
}

func TestSearchService_Search_NoArtist(t *testing.T) {
	var gotQuery string
	svc := newSearchTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotQuery = r.PostFormValue("q")
		fmt.Fprint(w, `<html><body></body></html>`)
	})

	results, err := svc.Search(context.Background(), "Hurt", "")
	require.NoError(t, err)
	require.Equal(t, "Hurt lyrics", gotQuery)
	require.Empty(t, results)
}

func TestSearchService_Search_EmptyTitle(t *testing.T) {
	svc := newSearchTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := svc.Search(context.Background(), "   ", "Johnny Cash")
	require.ErrorIs(t, err, service.ErrInvalid)
}

func TestSearchService_Search_UpstreamError(t *testing.T) {
	svc := newSearchTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := svc.Search(context.Background(), "Hurt", "")
	require.ErrorIs(t, err, service.ErrPageFetch)
}

func TestSearchService_Search_CapsResults(t *testing.T) {
	svc := newSearchTestService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>")
		for i := 0; i < 25; i++ {
			fmt.Fprintf(w, `<div class="result"><a class="result__a" href="https://lyrics.example.com/%d">Result %d</a></div>`, i, i)
		}
		fmt.Fprint(w, "</body></html>")
	})

	results, err := svc.Search(context.Background(), "Popular Song", "")
	require.NoError(t, err)
	require.Len(t, results, 10)
}

func TestSearchService_RedirectDecode(t *testing.T) {
	// The uddg parameter may itself contain an encoded query string
	svc := newSearchTestService(t, func(w http.ResponseWriter, r *http.Request) {
		dest := url.QueryEscape("https://lyrics.example.com/song?id=42&lang=en")
		fmt.Fprintf(w, `<html><body><div class="result"><a class="result__a" href="//duckduckgo.com/l/?uddg=%s">Song</a></div></body></html>`, dest)
	})

	results, err := svc.Search(context.Background(), "Song", "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "https://lyrics.example.com/song?id=42&lang=en", results[0].URL)
}
