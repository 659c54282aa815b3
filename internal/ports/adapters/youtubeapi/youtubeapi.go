// Package youtubeapi implements the Searcher port against the YouTube Data
// API v3. Quota is conserved by batching videos.list and channels.list calls
// at the API maximum of 50 IDs.
package youtubeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/forPelevin/beatcut/internal/domain/research"
	"github.com/forPelevin/beatcut/internal/ports"
	"github.com/forPelevin/beatcut/internal/types"
	"github.com/forPelevin/beatcut/internal/yt"
)

const (
	DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

	// API limits per request.
	maxIDsPerBatch    = 50
	maxResultsPerPage = 50

	defaultMaxResults = 200
)

// Thumbnail qualities in preference order.
var thumbnailQualities = []string{"maxres", "standard", "high", "medium", "default"}

type Adapter struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func New(apiKey, baseURL string) *Adapter {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Adapter{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Search pages through search.list until p.MaxResults IDs are collected, then
// enriches them. A failed page or batch becomes an issue; partial results are
// still returned.
func (a *Adapter) Search(ctx context.Context, p ports.SearchParams) ([]types.VideoInfo, []types.Issue, error) {
	maxResults := p.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	var (
		ids       []string
		issues    []types.Issue
		pageToken string
	)
	for len(ids) < maxResults {
		page, next, err := a.searchPage(ctx, p, min(maxResultsPerPage, maxResults-len(ids)), pageToken)
		if err != nil {
			issues = append(issues, types.Issue{
				Type:       "search_error",
				Identifier: p.Keyword,
				Error:      err.Error(),
			})
			break
		}
		ids = append(ids, page...)
		if next == "" {
			break
		}
		pageToken = next
	}

	videos, enrichIssues, err := a.Lookup(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	return videos, append(issues, enrichIssues...), nil
}

// Lookup enriches explicit video IDs in batches of 50.
func (a *Adapter) Lookup(ctx context.Context, videoIDs []string) ([]types.VideoInfo, []types.Issue, error) {
	var (
		videos []types.VideoInfo
		issues []types.Issue
	)
	for start := 0; start < len(videoIDs); start += maxIDsPerBatch {
		batch := videoIDs[start:min(start+maxIDsPerBatch, len(videoIDs))]

		items, err := a.videosList(ctx, batch)
		if err != nil {
			for _, id := range batch {
				issues = append(issues, types.Issue{Type: "api_error", Identifier: id, Error: err.Error()})
			}
			continue
		}

		channelIDs := uniqueChannelIDs(items)
		channels, err := a.channelsList(ctx, channelIDs)
		if err != nil {
			for _, id := range batch {
				issues = append(issues, types.Issue{Type: "api_error", Identifier: id, Error: err.Error()})
			}
			continue
		}

		for _, item := range items {
			videos = append(videos, buildVideoInfo(item, channels))
		}
	}
	return videos, issues, nil
}

func (a *Adapter) searchPage(ctx context.Context, p ports.SearchParams, pageSize int, pageToken string) ([]string, string, error) {
	q := url.Values{}
	q.Set("part", "id")
	q.Set("q", p.Keyword)
	q.Set("type", "video")
	q.Set("maxResults", strconv.Itoa(pageSize))
	if p.PublishedAfter != "" {
		q.Set("publishedAfter", p.PublishedAfter)
	}
	if p.PublishedBefore != "" {
		q.Set("publishedBefore", p.PublishedBefore)
	}
	if p.RegionCode != "" {
		q.Set("regionCode", p.RegionCode)
	}
	if p.RelevanceLanguage != "" {
		q.Set("relevanceLanguage", p.RelevanceLanguage)
	}
	if pageToken != "" {
		q.Set("pageToken", pageToken)
	}

	var resp searchResponse
	if err := a.getJSON(ctx, "/search", q, &resp); err != nil {
		return nil, "", fmt.Errorf("search.list: %w", err)
	}

	var ids []string
	for _, item := range resp.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}
	return ids, resp.NextPageToken, nil
}

func (a *Adapter) videosList(ctx context.Context, ids []string) ([]videoItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := url.Values{}
	q.Set("part", "snippet,statistics,contentDetails")
	q.Set("id", strings.Join(ids, ","))

	var resp videosResponse
	if err := a.getJSON(ctx, "/videos", q, &resp); err != nil {
		return nil, fmt.Errorf("videos.list: %w", err)
	}
	return resp.Items, nil
}

func (a *Adapter) channelsList(ctx context.Context, ids []string) (map[string]channelItem, error) {
	if len(ids) == 0 {
		return map[string]channelItem{}, nil
	}
	q := url.Values{}
	q.Set("part", "statistics")
	q.Set("id", strings.Join(ids, ","))

	var resp channelsResponse
	if err := a.getJSON(ctx, "/channels", q, &resp); err != nil {
		return nil, fmt.Errorf("channels.list: %w", err)
	}
	byID := make(map[string]channelItem, len(resp.Items))
	for _, c := range resp.Items {
		byID[c.ID] = c
	}
	return byID, nil
}

// getJSON performs a GET with bounded exponential retries on 429 and 5xx.
func (a *Adapter) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	q.Set("key", a.apiKey)
	endpoint := a.baseURL + path + "?" + q.Encode()

	var body []byte
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := a.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		switch {
		case resp.StatusCode == http.StatusOK:
			body = b
			return nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return fmt.Errorf("status %d: %s", resp.StatusCode, truncateBody(b))
		default:
			return backoff.Permanent(fmt.Errorf("status %d: %s", resp.StatusCode, truncateBody(b)))
		}
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = 20 * time.Second
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

func truncateBody(b []byte) string {
	const max = 200
	s := strings.TrimSpace(string(b))
	if len(s) > max {
		return s[:max]
	}
	return s
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
	NextPageToken string `json:"nextPageToken"`
}

type thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type videoItem struct {
	ID      string `json:"id"`
	Snippet struct {
		Title        string               `json:"title"`
		Description  string               `json:"description"`
		ChannelID    string               `json:"channelId"`
		ChannelTitle string               `json:"channelTitle"`
		PublishedAt  string               `json:"publishedAt"`
		Thumbnails   map[string]thumbnail `json:"thumbnails"`
	} `json:"snippet"`
	Statistics struct {
		ViewCount string `json:"viewCount"`
	} `json:"statistics"`
	ContentDetails struct {
		Duration string `json:"duration"`
	} `json:"contentDetails"`
}

type videosResponse struct {
	Items []videoItem `json:"items"`
}

type channelItem struct {
	ID         string `json:"id"`
	Statistics struct {
		SubscriberCount       string `json:"subscriberCount"`
		HiddenSubscriberCount bool   `json:"hiddenSubscriberCount"`
	} `json:"statistics"`
}

type channelsResponse struct {
	Items []channelItem `json:"items"`
}

func uniqueChannelIDs(items []videoItem) []string {
	seen := map[string]bool{}
	var ids []string
	for _, item := range items {
		id := item.Snippet.ChannelID
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

func buildVideoInfo(item videoItem, channels map[string]channelItem) types.VideoInfo {
	viewCount, _ := strconv.ParseInt(item.Statistics.ViewCount, 10, 64)

	var subscriberCount *int64
	if ch, ok := channels[item.Snippet.ChannelID]; ok && !ch.Statistics.HiddenSubscriberCount {
		if n, err := strconv.ParseInt(ch.Statistics.SubscriberCount, 10, 64); err == nil {
			subscriberCount = &n
		}
	}

	thumb := bestThumbnail(item.Snippet.Thumbnails)
	return types.VideoInfo{
		VideoID:         item.ID,
		Title:           item.Snippet.Title,
		Description:     item.Snippet.Description,
		URL:             yt.WatchURL(item.ID),
		ViewCount:       viewCount,
		ChannelID:       item.Snippet.ChannelID,
		ChannelTitle:    item.Snippet.ChannelTitle,
		SubscriberCount: subscriberCount,
		Orientation:     research.Orientation(thumb.Width, thumb.Height),
		ThumbnailURL:    thumb.URL,
		PublishedAt:     item.Snippet.PublishedAt,
		DurationSeconds: research.ParseDuration(item.ContentDetails.Duration),
		ThumbnailWidth:  thumb.Width,
		ThumbnailHeight: thumb.Height,
	}
}

func bestThumbnail(thumbs map[string]thumbnail) thumbnail {
	for _, quality := range thumbnailQualities {
		if t, ok := thumbs[quality]; ok {
			return t
		}
	}
	return thumbnail{}
}
