package trending

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const samplePage = `<!DOCTYPE html>
<html><body>
<article class="Box-row">
  <h2 class="h3 lh-condensed"><a href="/fastapi/fastapi">fastapi / fastapi</a></h2>
  <p class="col-9 color-fg-muted my-1 pr-4">
    FastAPI framework, high performance, easy to learn
  </p>
  <span itemprop="programmingLanguage">Python</span>
  <a href="/fastapi/fastapi/stargazers">70,123</a>
  <a href="/fastapi/fastapi/forks">6,010</a>
  <span class="d-inline-block float-sm-right">
    452 stars today
  </span>
</article>
<article class="Box-row">
  <h2 class="h3 lh-condensed"><a href="/rust-lang/rust">rust-lang / rust</a></h2>
  <a href="/rust-lang/rust/stargazers">90,001</a>
  <span class="d-inline-block float-sm-right">1,102 stars today</span>
</article>
<article class="Box-row">
  <h2 class="h3 lh-condensed"><a href="/broken">broken</a></h2>
</article>
</body></html>`

func TestParseTrendingPage(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(samplePage))
	require.NoError(t, err)

	entries := Parse(doc)
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, 1, first.Rank)
	assert.Equal(t, "fastapi", first.Owner)
	assert.Equal(t, "fastapi", first.Name)
	assert.Equal(t, "fastapi/fastapi", first.FullName)
	assert.Equal(t, "https://github.com/fastapi/fastapi", first.Url)
	assert.Equal(t, "FastAPI framework, high performance, easy to learn", first.Description)
	assert.Equal(t, "Python", first.Language)
	assert.Equal(t, 70123, first.Stars)
	assert.Equal(t, 6010, first.Forks)
	assert.Equal(t, 452, first.StarsToday)

	second := entries[1]
	assert.Equal(t, 2, second.Rank)
	assert.Equal(t, "rust-lang/rust", second.FullName)
	assert.Equal(t, "", second.Language)
	assert.Equal(t, 90001, second.Stars)
	assert.Equal(t, 1102, second.StarsToday)
	assert.Equal(t, 0, second.Forks)
}

func TestFetchBuildsURL(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	s := NewScraper()
	s.BaseURL = srv.URL

	entries, err := s.Fetch(context.Background(), "Go", SinceWeekly)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "/go", gotPath)
	assert.Equal(t, "since=weekly", gotQuery)
}

func TestFetchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := NewScraper()
	s.BaseURL = srv.URL

	_, err := s.Fetch(context.Background(), "", "")
	assert.Error(t, err)
}

func TestParseStarsToday(t *testing.T) {
	assert.Equal(t, 452, parseStarsToday("452 stars today"))
	assert.Equal(t, 1, parseStarsToday("1 star today"))
	assert.Equal(t, 12345, parseStarsToday("12,345 stars today"))
	assert.Equal(t, 678, parseStarsToday("678 stars this week"))
	assert.Equal(t, 0, parseStarsToday("built by"))
	assert.Equal(t, 0, parseStarsToday(""))
}
