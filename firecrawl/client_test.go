package firecrawl_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/scout"
	"github.com/fwojciec/scout/firecrawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("posts scrape request and returns page content", func(t *testing.T) {
		t.Parallel()

		var got map[string]any
		var auth, path string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth = r.Header.Get("Authorization")
			path = r.URL.Path
			_ = json.NewDecoder(r.Body).Decode(&got)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success":true,"data":{"html":"<h1>Go Developer</h1>","markdown":"# Go Developer"}}`))
		}))
		defer server.Close()

		c := firecrawl.NewClient("fc-key", firecrawl.WithBaseURL(server.URL+"/"))
		result, err := c.Scrape(context.Background(), "https://www.indeed.com/jobs?q=go", scout.ScrapeOptions{
			IncludeTags: []string{"h1", "p"},
			ExcludeTags: []string{"nav"},
			WaitFor:     2 * time.Second,
		})

		require.NoError(t, err)
		assert.Equal(t, "<h1>Go Developer</h1>", result.HTML)
		assert.Equal(t, "# Go Developer", result.Markdown)
		assert.Equal(t, "Bearer fc-key", auth)
		assert.Equal(t, "/v1/scrape", path)
		assert.Equal(t, "https://www.indeed.com/jobs?q=go", got["url"])
		assert.Equal(t, []any{"html", "markdown"}, got["formats"])
		assert.Equal(t, []any{"h1", "p"}, got["includeTags"])
		assert.Equal(t, []any{"nav"}, got["excludeTags"])
		assert.Equal(t, float64(2000), got["waitFor"])
	})

	t.Run("returns error on unsuccessful scrape", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":false,"error":"blocked by site"}`))
		}))
		defer server.Close()

		c := firecrawl.NewClient("fc-key", firecrawl.WithBaseURL(server.URL))
		_, err := c.Scrape(context.Background(), "https://example.com", scout.ScrapeOptions{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "blocked by site")
	})

	t.Run("returns error on non-200 status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "payment required", http.StatusPaymentRequired)
		}))
		defer server.Close()

		c := firecrawl.NewClient("fc-key", firecrawl.WithBaseURL(server.URL))
		_, err := c.Scrape(context.Background(), "https://example.com", scout.ScrapeOptions{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 402")
	})

	t.Run("returns error on malformed response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer server.Close()

		c := firecrawl.NewClient("fc-key", firecrawl.WithBaseURL(server.URL))
		_, err := c.Scrape(context.Background(), "https://example.com", scout.ScrapeOptions{})

		require.Error(t, err)
	})

	t.Run("respects timeout", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte(`{"success":true}`))
		}))
		defer server.Close()

		c := firecrawl.NewClient("fc-key",
			firecrawl.WithBaseURL(server.URL),
			firecrawl.WithTimeout(10*time.Millisecond),
		)
		_, err := c.Scrape(context.Background(), "https://example.com", scout.ScrapeOptions{})

		require.Error(t, err)
	})
}
