package store

import (
	"context"
	"fmt"
)

// PeriodTotals are sums over daily_video_stats rows restricted to an
// inclusive stat_date range, across all videos.
type PeriodTotals struct {
	Views                   int64 `json:"views"`
	Likes                   int64 `json:"likes"`
	Comments                int64 `json:"comments"`
	EstimatedMinutesWatched int64 `json:"estimated_minutes_watched"`
	NetSubscribers          int64 `json:"net_subscribers"`
}

// QueryPeriodTotals sums the engagement columns over all rows whose
// stat_date falls within [startDate, endDate]. An empty range yields
// zeroes, never an error.
func (s *Store) QueryPeriodTotals(ctx context.Context, startDate, endDate string) (PeriodTotals, error) {
	if s == nil || s.db == nil {
		return PeriodTotals{}, fmt.Errorf("store: not initialized")
	}

	var totals PeriodTotals
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(views), 0),
			COALESCE(SUM(likes), 0),
			COALESCE(SUM(comments), 0),
			COALESCE(SUM(estimated_minutes_watched), 0),
			COALESCE(SUM(subscribers_gained - subscribers_lost), 0)
		FROM daily_video_stats
		WHERE stat_date BETWEEN ? AND ?
	`, startDate, endDate).Scan(
		&totals.Views,
		&totals.Likes,
		&totals.Comments,
		&totals.EstimatedMinutesWatched,
		&totals.NetSubscribers,
	)
	if err != nil {
		return PeriodTotals{}, fmt.Errorf("store: query period totals: %w", err)
	}
	return totals, nil
}
