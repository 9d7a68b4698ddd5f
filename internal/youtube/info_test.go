package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/therealutkarshpriyadarshi/tubeinsight/internal/logging"
	"github.com/therealutkarshpriyadarshi/tubeinsight/pkg/models"
)

const watchPage = `<!DOCTYPE html>
<html><head>
<title>Never Gonna Give You Up - YouTube</title>
<meta property="og:title" content="Never Gonna Give You Up">
<meta property="og:image" content="https://i.ytimg.com/vi/dQw4w9WgXcQ/maxresdefault.jpg">
</head><body>
<span itemprop="author" itemscope itemtype="http://schema.org/Person">
<link itemprop="url" href="http://www.youtube.com/@RickAstleyYT">
<link itemprop="name" content="Rick Astley">
</span>
</body></html>`

func newTestInfoClient(oembed, watch string) *InfoClient {
	return NewInfoClient(oembed, watch, 2*time.Second, logging.NewNopLogger())
}

func TestFetchOEmbed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", r.URL.Query().Get("url"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"title":"Never Gonna Give You Up","author_name":"Rick Astley","author_url":"https://www.youtube.com/@RickAstleyYT","thumbnail_url":"https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg"}`))
	}))
	defer server.Close()

	client := newTestInfoClient(server.URL, server.URL+"/watch")
	info := client.Fetch(context.Background(), "dQw4w9WgXcQ")

	assert.Equal(t, models.VideoInfoSourceOEmbed, info.Source)
	assert.Equal(t, "Never Gonna Give You Up", info.Title)
	assert.Equal(t, "Rick Astley", info.AuthorName)
	assert.Equal(t, "dQw4w9WgXcQ", info.VideoID)
	assert.Equal(t, CanonicalURL("dQw4w9WgXcQ"), info.URL)
}

func TestFetchFallsBackToWatchPage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oembed", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "dQw4w9WgXcQ", r.URL.Query().Get("v"))
		w.Write([]byte(watchPage))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestInfoClient(server.URL+"/oembed", server.URL+"/watch")
	info := client.Fetch(context.Background(), "dQw4w9WgXcQ")

	assert.Equal(t, models.VideoInfoSourcePage, info.Source)
	assert.Equal(t, "Never Gonna Give You Up", info.Title)
	assert.Equal(t, "Rick Astley", info.AuthorName)
	assert.Equal(t, "http://www.youtube.com/@RickAstleyYT", info.AuthorURL)
	assert.Equal(t, "https://i.ytimg.com/vi/dQw4w9WgXcQ/maxresdefault.jpg", info.ThumbnailURL)
}

func TestFetchFallbackWhenAllSourcesFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestInfoClient(server.URL+"/oembed", server.URL+"/watch")
	info := client.Fetch(context.Background(), "dQw4w9WgXcQ")

	assert.Equal(t, models.VideoInfoSourceFallback, info.Source)
	assert.Equal(t, models.UnknownVideoTitle, info.Title)
	assert.Equal(t, ThumbnailURL("dQw4w9WgXcQ"), info.ThumbnailURL)
	assert.Equal(t, CanonicalURL("dQw4w9WgXcQ"), info.URL)
}

func TestFetchOEmbedWithoutTitle(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oembed", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title":"  "}`))
	})
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>Fallback Title - YouTube</title></head></html>`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestInfoClient(server.URL+"/oembed", server.URL+"/watch")
	info := client.Fetch(context.Background(), "dQw4w9WgXcQ")

	assert.Equal(t, models.VideoInfoSourcePage, info.Source)
	assert.Equal(t, "Fallback Title", info.Title)
}

func TestParseWatchPageWithoutMetadata(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><body>nothing</body></html>`))
	require.NoError(t, err)

	info := parseWatchPage(doc, "dQw4w9WgXcQ")
	assert.Empty(t, info.Title)
	assert.Equal(t, ThumbnailURL("dQw4w9WgXcQ"), info.ThumbnailURL)
}
