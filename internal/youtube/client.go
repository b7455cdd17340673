// Package youtube wraps the two remote APIs the collector consumes: the
// YouTube Data API v3 (channel discovery, video listing, lifetime
// statistics) and the YouTube Analytics API v2 (per-day metrics).
//
// All calls are plain REST with an OAuth bearer token from the injected
// token source. There is no retry here: a failed call is the caller's
// problem, and a re-run converges because every store write is an upsert.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/openclaw/yta/internal/store"
)

const (
	defaultDataBaseURL      = "https://www.googleapis.com/youtube/v3"
	defaultAnalyticsBaseURL = "https://youtubeanalytics.googleapis.com/v2"

	userAgent = "openclaw-yta/1.0"

	// MaxPageSize is the largest page the Data API serves, for both
	// search.list and videos.list id batches.
	MaxPageSize = 50
)

type Client struct {
	http             *http.Client
	dataBaseURL      string
	analyticsBaseURL string
	limiter          *rate.Limiter
}

type Option func(*Client)

// WithBaseURLs overrides both API endpoints. Used by tests.
func WithBaseURLs(data, analytics string) Option {
	return func(c *Client) {
		c.dataBaseURL = data
		c.analyticsBaseURL = analytics
	}
}

// WithLimiter replaces the default request pacer.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// NewClient builds a client whose requests carry tokens from ts.
func NewClient(ctx context.Context, ts oauth2.TokenSource, opts ...Option) *Client {
	c := &Client{
		http:             oauth2.NewClient(ctx, ts),
		dataBaseURL:      defaultDataBaseURL,
		analyticsBaseURL: defaultAnalyticsBaseURL,
		// Serial calls only; the limiter just keeps a long catalogue
		// from hammering the quota.
		limiter: rate.NewLimiter(rate.Limit(8), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("youtube: rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("youtube: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("youtube: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("youtube: HTTP %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("youtube: decoding response: %w", err)
	}
	return nil
}

// --- channels.list ---

type channelListResp struct {
	Items []struct {
		ID string `json:"id"`
	} `json:"items"`
}

// ResolveChannelID discovers the channel owned by the authenticated
// identity. Exactly one result is expected; when the account owns several
// the first returned wins.
func (c *Client) ResolveChannelID(ctx context.Context) (string, error) {
	params := url.Values{}
	params.Set("part", "id")
	params.Set("mine", "true")

	var resp channelListResp
	if err := c.getJSON(ctx, c.dataBaseURL+"/channels?"+params.Encode(), &resp); err != nil {
		return "", err
	}
	if len(resp.Items) == 0 {
		return "", fmt.Errorf("youtube: no channel associated with this credential")
	}
	return resp.Items[0].ID, nil
}

// --- search.list ---

type searchListResp struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			PublishedAt string `json:"publishedAt"`
			ChannelID   string `json:"channelId"`
		} `json:"snippet"`
	} `json:"items"`
}

// VideoPage is one page of a channel's catalogue plus the continuation
// token. An empty NextPageToken means the listing is exhausted.
type VideoPage struct {
	Videos        []store.Video
	NextPageToken string
	// Skipped counts listing entries without a video id (channel or
	// playlist results the API slips in), dropped rather than stored.
	Skipped int
}

// ListVideos fetches one page of the channel's videos, newest first.
// Pass the previous page's NextPageToken to continue; "" starts over.
func (c *Client) ListVideos(ctx context.Context, channelID, pageToken string) (VideoPage, error) {
	params := url.Values{}
	params.Set("part", "id,snippet")
	params.Set("channelId", channelID)
	params.Set("type", "video")
	params.Set("order", "date")
	params.Set("maxResults", strconv.Itoa(MaxPageSize))
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	var resp searchListResp
	if err := c.getJSON(ctx, c.dataBaseURL+"/search?"+params.Encode(), &resp); err != nil {
		return VideoPage{}, err
	}

	page := VideoPage{NextPageToken: resp.NextPageToken}
	for _, item := range resp.Items {
		if item.ID.VideoID == "" {
			page.Skipped++
			continue
		}
		chID := item.Snippet.ChannelID
		if chID == "" {
			chID = channelID
		}
		page.Videos = append(page.Videos, store.Video{
			VideoID:     item.ID.VideoID,
			Title:       item.Snippet.Title,
			PublishedAt: item.Snippet.PublishedAt,
			ChannelID:   chID,
		})
	}
	return page, nil
}

// --- videos.list (lifetime statistics) ---

type videoListResp struct {
	Items []struct {
		ID         string `json:"id"`
		Statistics struct {
			ViewCount    string `json:"viewCount"`
			LikeCount    string `json:"likeCount"`
			CommentCount string `json:"commentCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// LifetimeStats are all-time per-video counters from the Data API,
// independent of the date-bounded rows in the local store.
type LifetimeStats struct {
	Views    int64 `json:"views"`
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
}

func (t *LifetimeStats) add(other LifetimeStats) {
	t.Views += other.Views
	t.Likes += other.Likes
	t.Comments += other.Comments
}

// VideoStats fetches lifetime statistics for one batch of video ids,
// summed. The Data API caps a batch at MaxPageSize ids.
func (c *Client) VideoStats(ctx context.Context, ids []string) (LifetimeStats, error) {
	if len(ids) == 0 {
		return LifetimeStats{}, nil
	}
	if len(ids) > MaxPageSize {
		return LifetimeStats{}, fmt.Errorf("youtube: videos.list batch of %d exceeds %d ids", len(ids), MaxPageSize)
	}

	params := url.Values{}
	params.Set("part", "statistics")
	params.Set("id", strings.Join(ids, ","))
	params.Set("maxResults", strconv.Itoa(MaxPageSize))

	var resp videoListResp
	if err := c.getJSON(ctx, c.dataBaseURL+"/videos?"+params.Encode(), &resp); err != nil {
		return LifetimeStats{}, err
	}

	var totals LifetimeStats
	for _, item := range resp.Items {
		totals.add(LifetimeStats{
			Views:    parseCount(item.Statistics.ViewCount),
			Likes:    parseCount(item.Statistics.LikeCount),
			Comments: parseCount(item.Statistics.CommentCount),
		})
	}
	return totals, nil
}

// parseCount is tolerant: counters the API hides (e.g. likeCount on
// videos with ratings disabled) come back empty and count as zero.
func parseCount(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
