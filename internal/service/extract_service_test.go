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
)

const lyricsPageHTML = `<!DOCTYPE html>
<html>
<head>
<title>Empty Street Lyrics | lyrics.example.com</title>
<meta property="og:title" content="Empty Street - SomeBand" />
</head>
<body>
<nav><a href="/">Home</a> <a href="/charts">Charts</a></nav>
<article>
<h1>Empty Street</h1>
<div class="lyrics">
Walking down the empty street tonight<br>
Thinking of the words I never said<br>
Every corner holds a memory of you<br>
And every shadow knows the tears I shed<br>
<br>
The city lights are burning in the rain<br>
A thousand windows and not one is home<br>
I keep on walking through the quiet pain<br>
Another midnight spent out here alone<br>
<br>
Walking down the empty street tonight<br>
Thinking of the words I never said<br>
Every corner holds a memory of you<br>
And every shadow knows the tears I shed<br>
</div>
</article>
<footer>Copyright lyrics.example.com - all lyrics are property of their owners</footer>
</body>
</html>`

func newExtractTestService(t *testing.T, handler http.HandlerFunc) (service.ExtractService, string) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	factory := network.NewClientFactoryForTest(server.Client())
	return service.NewExtractService(factory), server.URL
}

func TestExtractService_ExtractPage(t *testing.T) {
	svc, baseURL := newExtractTestService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, lyricsPageHTML)
	})

	page, err := svc.ExtractPage(context.Background(), baseURL+"/empty-street")
	require.NoError(t, err)

	// og:title wins over <title>
	require.Equal(t, "Empty Street - SomeBand", page.Title)

	require.Contains(t, page.Text, "Walking down the empty street tonight")
	require.Contains(t, page.Text, "Another midnight spent out here alone")

	// <br> boundaries survive as line breaks
	require.NotContains(t, page.Text, "tonight Thinking")
}

func TestExtractService_ExtractPage_InvalidURL(t *testing.T) {
	svc, _ := newExtractTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := svc.ExtractPage(context.Background(), "ftp://lyrics.example.com/song")
	require.ErrorIs(t, err, service.ErrInvalid)

	_, err = svc.ExtractPage(context.Background(), "://bad")
	require.ErrorIs(t, err, service.ErrInvalid)
}

func TestExtractService_ExtractPage_HTTPError(t *testing.T) {
	svc, baseURL := newExtractTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := svc.ExtractPage(context.Background(), baseURL+"/missing")
	require.ErrorIs(t, err, service.ErrPageFetch)
}

func TestExtractService_SendsBrowserHeaders(t *testing.T) {
	var gotUA string
	svc, baseURL := newExtractTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, lyricsPageHTML)
	})

	_, err := svc.ExtractPage(context.Background(), baseURL+"/empty-street")
	require.NoError(t, err)
	require.Contains(t, gotUA, "Chrome")
}
