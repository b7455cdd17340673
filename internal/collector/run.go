package collector

import (
	"context"
	"log"

	"github.com/openclaw/yta/internal/daterange"
	"github.com/openclaw/yta/internal/store"
	"github.com/openclaw/yta/internal/youtube"
)

// Summary is the structured result of one collection run.
type Summary struct {
	OK               bool                   `json:"ok"`
	ChannelID        string                 `json:"channel_id"`
	Videos           int                    `json:"videos"`
	StatRowsUpserted int                    `json:"stat_rows_upserted"`
	Range            daterange.Range        `json:"range"`
	PeriodTotals     store.PeriodTotals     `json:"period_totals"`
	LifetimeTotals   *youtube.LifetimeStats `json:"lifetime_totals"`
	DBPath           string                 `json:"db_path"`
}

// RunOptions parameterize one collection run.
type RunOptions struct {
	// ChannelID, when empty, triggers discovery.
	ChannelID string
	Range     daterange.Range
	// Lifetime additionally fetches all-time totals from the Data API.
	Lifetime bool
	// DBPath is echoed into the summary.
	DBPath string
}

// Run executes a full collection: catalogue sync, per-video metrics sync,
// then aggregation. It is strictly serial; a failure at any step aborts
// the run with the rows written so far left in place.
func (c *Collector) Run(ctx context.Context, opts RunOptions) (Summary, error) {
	channelID, err := c.ResolveChannel(ctx, opts.ChannelID)
	if err != nil {
		return Summary{}, err
	}

	videos, err := c.SyncCatalogue(ctx, channelID)
	if err != nil {
		return Summary{}, err
	}
	log.Printf("found videos: %d", len(videos))

	statRows, err := c.SyncMetrics(ctx, videos, opts.Range)
	if err != nil {
		return Summary{}, err
	}

	periodTotals, err := c.store.QueryPeriodTotals(ctx, opts.Range.Start, opts.Range.End)
	if err != nil {
		return Summary{}, err
	}

	var lifetime *youtube.LifetimeStats
	if opts.Lifetime {
		totals, err := c.LifetimeTotals(ctx, videos)
		if err != nil {
			return Summary{}, err
		}
		lifetime = &totals
	}

	return Summary{
		OK:               true,
		ChannelID:        channelID,
		Videos:           len(videos),
		StatRowsUpserted: statRows,
		Range:            opts.Range,
		PeriodTotals:     periodTotals,
		LifetimeTotals:   lifetime,
		DBPath:           opts.DBPath,
	}, nil
}
