package store

import (
	"context"
	"fmt"
)

type StoreStats struct {
	Videos    int64
	DailyRows int64
}

func (s *Store) Stats(ctx context.Context) (StoreStats, error) {
	if s == nil || s.db == nil {
		return StoreStats{}, fmt.Errorf("store: not initialized")
	}
	stats := StoreStats{}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM videos`).Scan(&stats.Videos); err != nil {
		return StoreStats{}, fmt.Errorf("store: count videos: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM daily_video_stats`).Scan(&stats.DailyRows); err != nil {
		return StoreStats{}, fmt.Errorf("store: count daily_video_stats: %w", err)
	}
	return stats, nil
}
