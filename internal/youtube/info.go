package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/therealutkarshpriyadarshi/tubeinsight/internal/logging"
	"github.com/therealutkarshpriyadarshi/tubeinsight/internal/metrics"
	"github.com/therealutkarshpriyadarshi/tubeinsight/internal/tracing"
	"github.com/therealutkarshpriyadarshi/tubeinsight/pkg/models"
)

const (
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/145.0.0.0 Safari/537.36"
	maxPageBytes     = 2 * 1024 * 1024
)

// InfoClient looks up video metadata. Lookups never fail: when no source
// answers, a fallback record carrying the canonical URL is returned.
type InfoClient struct {
	client    *http.Client
	oembedURL string
	watchURL  string
	logger    *logging.Logger
}

// NewInfoClient creates a metadata client
func NewInfoClient(oembedURL, watchURL string, timeout time.Duration, logger *logging.Logger) *InfoClient {
	return &InfoClient{
		client: &http.Client{
			Timeout: timeout,
		},
		oembedURL: oembedURL,
		watchURL:  watchURL,
		logger:    logger.WithComponent("video_info"),
	}
}

type oembedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	AuthorURL    string `json:"author_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Fetch returns metadata for a video ID
func (c *InfoClient) Fetch(ctx context.Context, videoID string) models.VideoInfo {
	span, ctx := tracing.StartSpan(ctx, "video_info.fetch")
	defer tracing.FinishSpan(span)
	tracing.SetTag(span, "video_id", videoID)

	log := c.logger.WithVideoID(videoID)

	info, err := c.fetchOEmbed(ctx, videoID)
	if err == nil {
		metrics.RecordVideoInfoLookup(models.VideoInfoSourceOEmbed)
		return info
	}
	log.WarnWithErr("oEmbed lookup failed, falling back to watch page", err)

	info, err = c.fetchWatchPage(ctx, videoID)
	if err == nil {
		metrics.RecordVideoInfoLookup(models.VideoInfoSourcePage)
		return info
	}
	log.WarnWithErr("Watch page lookup failed", err)
	tracing.LogError(span, err)

	metrics.RecordVideoInfoLookup(models.VideoInfoSourceFallback)
	return fallbackInfo(videoID)
}

func (c *InfoClient) fetchOEmbed(ctx context.Context, videoID string) (models.VideoInfo, error) {
	q := url.Values{}
	q.Set("url", CanonicalURL(videoID))
	q.Set("format", "json")

	body, err := c.get(ctx, c.oembedURL+"?"+q.Encode(), "application/json")
	if err != nil {
		return models.VideoInfo{}, err
	}
	defer body.Close()

	var resp oembedResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return models.VideoInfo{}, fmt.Errorf("failed to decode oEmbed response: %w", err)
	}
	if strings.TrimSpace(resp.Title) == "" {
		return models.VideoInfo{}, fmt.Errorf("oEmbed response has no title")
	}

	info := fallbackInfo(videoID)
	info.Title = resp.Title
	info.AuthorName = resp.AuthorName
	info.AuthorURL = resp.AuthorURL
	if resp.ThumbnailURL != "" {
		info.ThumbnailURL = resp.ThumbnailURL
	}
	info.Source = models.VideoInfoSourceOEmbed
	return info, nil
}

func (c *InfoClient) fetchWatchPage(ctx context.Context, videoID string) (models.VideoInfo, error) {
	body, err := c.get(ctx, c.watchURL+"?v="+url.QueryEscape(videoID), "text/html")
	if err != nil {
		return models.VideoInfo{}, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(body, maxPageBytes))
	if err != nil {
		return models.VideoInfo{}, fmt.Errorf("failed to parse watch page: %w", err)
	}

	info := parseWatchPage(doc, videoID)
	if info.Title == "" {
		return models.VideoInfo{}, fmt.Errorf("watch page has no title")
	}
	return info, nil
}

// parseWatchPage reads Open Graph and microdata tags from a watch page
func parseWatchPage(doc *goquery.Document, videoID string) models.VideoInfo {
	info := fallbackInfo(videoID)
	info.Source = models.VideoInfoSourcePage

	meta := func(selector string) string {
		v, _ := doc.Find(selector).First().Attr("content")
		return strings.TrimSpace(v)
	}

	info.Title = meta(`meta[property="og:title"]`)
	if info.Title == "" {
		info.Title = meta(`meta[name="title"]`)
	}
	if info.Title == "" {
		info.Title = strings.TrimSuffix(strings.TrimSpace(doc.Find("title").First().Text()), " - YouTube")
	}

	if thumb := meta(`meta[property="og:image"]`); thumb != "" {
		info.ThumbnailURL = thumb
	}

	author := doc.Find(`span[itemprop="author"] link[itemprop="name"]`).First()
	if name, ok := author.Attr("content"); ok {
		info.AuthorName = strings.TrimSpace(name)
	}
	if href, ok := doc.Find(`span[itemprop="author"] link[itemprop="url"]`).First().Attr("href"); ok {
		info.AuthorURL = strings.TrimSpace(href)
	}

	return info
}

func (c *InfoClient) get(ctx context.Context, target, accept string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("User-Agent", browserUserAgent)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.RecordUpstreamRequest("video_info", "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		metrics.RecordUpstreamRequest("video_info", "status", time.Since(start).Seconds())
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	metrics.RecordUpstreamRequest("video_info", "success", time.Since(start).Seconds())
	return resp.Body, nil
}

func fallbackInfo(videoID string) models.VideoInfo {
	return models.VideoInfo{
		VideoID:      videoID,
		Title:        models.UnknownVideoTitle,
		ThumbnailURL: ThumbnailURL(videoID),
		URL:          CanonicalURL(videoID),
		Source:       models.VideoInfoSourceFallback,
	}
}
