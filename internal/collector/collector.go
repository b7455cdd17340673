// Package collector runs one collection: enumerate a channel's videos,
// fetch per-day analytics for each, persist everything through the store,
// and compose the run summary.
//
// The whole run is sequential. Every store write commits on its own, so a
// failed run leaves the rows written so far and re-running is the
// recovery path (all writes are idempotent upserts).
package collector

import (
	"context"
	"fmt"
	"log"

	"github.com/samber/lo"

	"github.com/openclaw/yta/internal/daterange"
	"github.com/openclaw/yta/internal/store"
	"github.com/openclaw/yta/internal/youtube"
)

// maxCataloguePages bounds the listing loop against a misbehaving API
// that keeps handing out continuation tokens. 200 pages of 50 covers any
// real channel.
const maxCataloguePages = 200

// ListingAPI is the Data API surface the collector consumes.
// *youtube.Client implements it.
type ListingAPI interface {
	ResolveChannelID(ctx context.Context) (string, error)
	ListVideos(ctx context.Context, channelID, pageToken string) (youtube.VideoPage, error)
	VideoStats(ctx context.Context, ids []string) (youtube.LifetimeStats, error)
}

// AnalyticsAPI is the reporting surface the collector consumes.
// *youtube.Client implements it.
type AnalyticsAPI interface {
	DailyStats(ctx context.Context, videoID, startDate, endDate string) ([]store.DailyStat, error)
}

type Collector struct {
	store     *store.Store
	listing   ListingAPI
	analytics AnalyticsAPI
}

func New(st *store.Store, listing ListingAPI, analytics AnalyticsAPI) *Collector {
	return &Collector{store: st, listing: listing, analytics: analytics}
}

// ResolveChannel returns the explicit id verbatim when given, otherwise
// discovers the authenticated identity's channel.
func (c *Collector) ResolveChannel(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return c.listing.ResolveChannelID(ctx)
}

// SyncCatalogue walks the channel's full video listing, upserting each
// page before requesting the next, and returns the de-duplicated set of
// videos discovered in this run.
func (c *Collector) SyncCatalogue(ctx context.Context, channelID string) ([]store.Video, error) {
	var videos []store.Video
	seenTokens := map[string]bool{}
	token := ""

	for page := 0; ; page++ {
		if page >= maxCataloguePages {
			return nil, fmt.Errorf("collector: listing did not terminate after %d pages", maxCataloguePages)
		}

		p, err := c.listing.ListVideos(ctx, channelID, token)
		if err != nil {
			return nil, fmt.Errorf("collector: listing page %d: %w", page, err)
		}
		if p.Skipped > 0 {
			log.Printf("catalogue page %d: skipped %d entries without a video id", page, p.Skipped)
		}

		for _, v := range p.Videos {
			if err := c.store.UpsertVideo(ctx, v); err != nil {
				return nil, fmt.Errorf("collector: %w", err)
			}
		}
		videos = append(videos, p.Videos...)

		if p.NextPageToken == "" {
			break
		}
		if seenTokens[p.NextPageToken] {
			return nil, fmt.Errorf("collector: listing repeated page token %q", p.NextPageToken)
		}
		seenTokens[p.NextPageToken] = true
		token = p.NextPageToken
	}

	return lo.UniqBy(videos, func(v store.Video) string { return v.VideoID }), nil
}

// SyncMetrics fetches and upserts daily metric rows for every video over
// the resolved range. Returns the number of rows upserted. Any query
// failure aborts the run; rows already written stay.
func (c *Collector) SyncMetrics(ctx context.Context, videos []store.Video, rng daterange.Range) (int, error) {
	rows := 0
	for _, v := range videos {
		daily, err := c.analytics.DailyStats(ctx, v.VideoID, rng.Start, rng.End)
		if err != nil {
			return rows, fmt.Errorf("collector: metrics for %s: %w", v.VideoID, err)
		}
		for _, row := range daily {
			if err := c.store.UpsertDailyStat(ctx, row); err != nil {
				return rows, fmt.Errorf("collector: %w", err)
			}
			rows++
		}
	}
	return rows, nil
}

// LifetimeTotals sums all-time statistics for the given videos straight
// from the Data API, batched at the API's 50-id ceiling. Independent of
// the store and never persisted.
func (c *Collector) LifetimeTotals(ctx context.Context, videos []store.Video) (youtube.LifetimeStats, error) {
	ids := lo.Map(videos, func(v store.Video, _ int) string { return v.VideoID })

	var totals youtube.LifetimeStats
	for _, chunk := range lo.Chunk(ids, youtube.MaxPageSize) {
		batch, err := c.listing.VideoStats(ctx, chunk)
		if err != nil {
			return youtube.LifetimeStats{}, fmt.Errorf("collector: lifetime stats: %w", err)
		}
		totals.Views += batch.Views
		totals.Likes += batch.Likes
		totals.Comments += batch.Comments
	}
	return totals, nil
}
