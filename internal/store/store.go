// Package store persists the collected video catalogue and per-day
// analytics rows in a local SQLite database.
//
// The store is the single owner of the persisted schema. Writes are
// idempotent upserts: the collector can re-run after a partial failure
// and converge on the same rows.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Video is one catalogue entry belonging to a channel.
type Video struct {
	VideoID     string `json:"video_id"`
	Title       string `json:"title"`
	PublishedAt string `json:"published_at,omitempty"`
	ChannelID   string `json:"channel_id"`
}

// DailyStat is one day's measured engagement for one video.
// AverageViewDuration is in seconds.
type DailyStat struct {
	VideoID                 string
	StatDate                string
	Views                   int64
	Likes                   int64
	Comments                int64
	EstimatedMinutesWatched int64
	AverageViewDuration     float64
	SubscribersGained       int64
	SubscribersLost         int64
}

type Store struct {
	db  *sql.DB
	now func() time.Time
}

// OpenStore opens (creating if needed) the SQLite database at path and
// ensures the schema exists. Safe to call repeatedly against the same file.
func OpenStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: creating DB dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: opening DB: %w", err)
	}
	if err := configureSQLiteConnection(db); err != nil {
		db.Close()
		return nil, err
	}

	store := NewStore(db)
	if err := store.Init(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Init creates the schema. Every statement is a no-op when the objects
// already exist.
func (s *Store) Init(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS videos (
			video_id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			published_at TEXT,
			channel_id TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS daily_video_stats (
			video_id TEXT NOT NULL,
			stat_date TEXT NOT NULL,
			views INTEGER NOT NULL DEFAULT 0,
			likes INTEGER NOT NULL DEFAULT 0,
			comments INTEGER NOT NULL DEFAULT 0,
			estimated_minutes_watched INTEGER NOT NULL DEFAULT 0,
			average_view_duration REAL NOT NULL DEFAULT 0,
			subscribers_gained INTEGER NOT NULL DEFAULT 0,
			subscribers_lost INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (video_id, stat_date)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_daily_video_stats_date ON daily_video_stats(stat_date);`,
		`CREATE INDEX IF NOT EXISTS idx_videos_channel ON videos(channel_id);`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("store: init schema: %w", err)
		}
	}
	return nil
}

// UpsertVideo inserts the video or overwrites its mutable fields.
// Each upsert commits on its own, so a crash mid-sync keeps every page
// written so far.
func (s *Store) UpsertVideo(ctx context.Context, v Video) error {
	if v.VideoID == "" {
		return fmt.Errorf("store: upsert video: empty video_id")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO videos (video_id, title, published_at, channel_id)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(video_id) DO UPDATE SET
			title = excluded.title,
			published_at = excluded.published_at,
			channel_id = excluded.channel_id
	`, v.VideoID, v.Title, nullable(v.PublishedAt), v.ChannelID)
	if err != nil {
		return fmt.Errorf("store: upsert video %s: %w", v.VideoID, err)
	}
	return nil
}

// UpsertDailyStat inserts or overwrites the row keyed by
// (video_id, stat_date). The remote API is the source of truth per date,
// so replays are last-write-wins.
func (s *Store) UpsertDailyStat(ctx context.Context, row DailyStat) error {
	if row.VideoID == "" || row.StatDate == "" {
		return fmt.Errorf("store: upsert daily stat: empty key (%q, %q)", row.VideoID, row.StatDate)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO daily_video_stats (
			video_id, stat_date, views, likes, comments,
			estimated_minutes_watched, average_view_duration,
			subscribers_gained, subscribers_lost
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(video_id, stat_date) DO UPDATE SET
			views = excluded.views,
			likes = excluded.likes,
			comments = excluded.comments,
			estimated_minutes_watched = excluded.estimated_minutes_watched,
			average_view_duration = excluded.average_view_duration,
			subscribers_gained = excluded.subscribers_gained,
			subscribers_lost = excluded.subscribers_lost
	`,
		row.VideoID,
		row.StatDate,
		row.Views,
		row.Likes,
		row.Comments,
		row.EstimatedMinutesWatched,
		row.AverageViewDuration,
		row.SubscribersGained,
		row.SubscribersLost,
	)
	if err != nil {
		return fmt.Errorf("store: upsert daily stat (%s, %s): %w", row.VideoID, row.StatDate, err)
	}
	return nil
}

func nullable(v string) interface{} {
	if v == "" {
		return nil
	}
	return v
}
