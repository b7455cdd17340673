package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(filepath.Join(t.TempDir(), "yta.db"))
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInit_CreatesTables(t *testing.T) {
	s := openTestStore(t)

	tables := []string{"videos", "daily_video_stats"}
	for _, table := range tables {
		var name string
		err := s.db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}
}

func TestOpenStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "yta.db")

	s, err := OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	if err := s.UpsertVideo(context.Background(), Video{VideoID: "v1", Title: "one", ChannelID: "ch"}); err != nil {
		t.Fatalf("UpsertVideo: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Re-opening against the same file must re-run Init without data loss.
	s2, err := OpenStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	stats, err := s2.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Videos != 1 {
		t.Fatalf("videos after reopen = %d, want 1", stats.Videos)
	}
}

func TestUpsertVideo_Idempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	v := Video{VideoID: "v1", Title: "original title", PublishedAt: "2024-01-01T00:00:00Z", ChannelID: "ch1"}
	if err := s.UpsertVideo(ctx, v); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := s.UpsertVideo(ctx, v); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Videos != 1 {
		t.Fatalf("video count = %d, want 1", stats.Videos)
	}
}

func TestUpsertVideo_OverwritesTitleKeepsID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.UpsertVideo(ctx, Video{VideoID: "v1", Title: "old", ChannelID: "ch1"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := s.UpsertVideo(ctx, Video{VideoID: "v1", Title: "new", ChannelID: "ch1"}); err != nil {
		t.Fatalf("re-upsert: %v", err)
	}

	var title string
	if err := s.db.QueryRow(`SELECT title FROM videos WHERE video_id = 'v1'`).Scan(&title); err != nil {
		t.Fatalf("select: %v", err)
	}
	if title != "new" {
		t.Fatalf("title = %q, want %q", title, "new")
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Videos != 1 {
		t.Fatalf("video count = %d, want 1", stats.Videos)
	}
}

func TestUpsertVideo_RejectsEmptyID(t *testing.T) {
	s := openTestStore(t)
	if err := s.UpsertVideo(context.Background(), Video{Title: "no id"}); err == nil {
		t.Fatal("expected error for empty video_id")
	}
}

func TestUpsertDailyStat_LastWriteWins(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	row := DailyStat{VideoID: "v1", StatDate: "2024-01-01", Views: 100, Likes: 10}
	if err := s.UpsertDailyStat(ctx, row); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	row.Views = 120
	row.AverageViewDuration = 93.5
	if err := s.UpsertDailyStat(ctx, row); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var views int64
	var avg float64
	if err := s.db.QueryRow(
		`SELECT views, average_view_duration FROM daily_video_stats WHERE video_id = 'v1' AND stat_date = '2024-01-01'`,
	).Scan(&views, &avg); err != nil {
		t.Fatalf("select: %v", err)
	}
	if views != 120 || avg != 93.5 {
		t.Fatalf("row = (views=%d, avg=%v), want (120, 93.5)", views, avg)
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.DailyRows != 1 {
		t.Fatalf("daily row count = %d, want 1", stats.DailyRows)
	}
}

func TestQueryPeriodTotals(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rows := []DailyStat{
		{VideoID: "v1", StatDate: "2024-01-01", Views: 100, Likes: 5, Comments: 2, EstimatedMinutesWatched: 40, SubscribersGained: 3, SubscribersLost: 1},
		{VideoID: "v1", StatDate: "2024-01-02", Views: 50, Likes: 1, Comments: 1, EstimatedMinutesWatched: 20, SubscribersGained: 1, SubscribersLost: 2},
		{VideoID: "v2", StatDate: "2024-02-01", Views: 999},
	}
	for _, r := range rows {
		if err := s.UpsertDailyStat(ctx, r); err != nil {
			t.Fatalf("upsert %s/%s: %v", r.VideoID, r.StatDate, err)
		}
	}

	totals, err := s.QueryPeriodTotals(ctx, "2024-01-01", "2024-01-02")
	if err != nil {
		t.Fatalf("QueryPeriodTotals: %v", err)
	}
	if totals.Views != 150 {
		t.Fatalf("views = %d, want 150", totals.Views)
	}
	if totals.Likes != 6 || totals.Comments != 3 {
		t.Fatalf("likes/comments = %d/%d, want 6/3", totals.Likes, totals.Comments)
	}
	if totals.EstimatedMinutesWatched != 60 {
		t.Fatalf("minutes = %d, want 60", totals.EstimatedMinutesWatched)
	}
	if totals.NetSubscribers != 1 {
		t.Fatalf("net subscribers = %d, want 1", totals.NetSubscribers)
	}
}

func TestQueryPeriodTotals_EmptyRangeIsZero(t *testing.T) {
	s := openTestStore(t)

	totals, err := s.QueryPeriodTotals(context.Background(), "1999-01-01", "1999-12-31")
	if err != nil {
		t.Fatalf("QueryPeriodTotals: %v", err)
	}
	if totals != (PeriodTotals{}) {
		t.Fatalf("totals = %+v, want all zeroes", totals)
	}
}
