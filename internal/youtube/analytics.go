package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/openclaw/yta/internal/store"
)

// dailyColumns is the fixed column order requested from the Analytics
// API. Row values map positionally onto store.DailyStat, so this order is
// a data contract: the response's columnHeaders are checked against it
// and any drift fails the sync instead of silently corrupting rows.
var dailyColumns = []string{
	"day",
	"views",
	"likes",
	"comments",
	"estimatedMinutesWatched",
	"averageViewDuration",
	"subscribersGained",
	"subscribersLost",
}

type reportsResp struct {
	ColumnHeaders []struct {
		Name string `json:"name"`
	} `json:"columnHeaders"`
	Rows [][]json.RawMessage `json:"rows"`
}

// DailyStats fetches the per-day metric rows for one video over the
// inclusive date range, sorted ascending by day.
func (c *Client) DailyStats(ctx context.Context, videoID, startDate, endDate string) ([]store.DailyStat, error) {
	params := url.Values{}
	params.Set("ids", "channel==MINE")
	params.Set("startDate", startDate)
	params.Set("endDate", endDate)
	params.Set("metrics", strings.Join(dailyColumns[1:], ","))
	params.Set("dimensions", "day")
	params.Set("filters", "video=="+videoID)
	params.Set("sort", "day")

	var resp reportsResp
	if err := c.getJSON(ctx, c.analyticsBaseURL+"/reports?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	if err := checkColumnHeaders(resp); err != nil {
		return nil, fmt.Errorf("youtube: analytics report for %s: %w", videoID, err)
	}

	rows := make([]store.DailyStat, 0, len(resp.Rows))
	for i, raw := range resp.Rows {
		row, err := mapDailyRow(videoID, raw)
		if err != nil {
			return nil, fmt.Errorf("youtube: analytics report for %s, row %d: %w", videoID, i, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func checkColumnHeaders(resp reportsResp) error {
	// No headers at all (empty report) is fine only when there are no rows.
	if len(resp.ColumnHeaders) == 0 {
		if len(resp.Rows) == 0 {
			return nil
		}
		return fmt.Errorf("response has rows but no columnHeaders")
	}
	if len(resp.ColumnHeaders) != len(dailyColumns) {
		return fmt.Errorf("got %d columns, want %d", len(resp.ColumnHeaders), len(dailyColumns))
	}
	for i, h := range resp.ColumnHeaders {
		if h.Name != dailyColumns[i] {
			return fmt.Errorf("column %d is %q, want %q", i, h.Name, dailyColumns[i])
		}
	}
	return nil
}

func mapDailyRow(videoID string, raw []json.RawMessage) (store.DailyStat, error) {
	if len(raw) != len(dailyColumns) {
		return store.DailyStat{}, fmt.Errorf("got %d values, want %d", len(raw), len(dailyColumns))
	}

	var day string
	if err := json.Unmarshal(raw[0], &day); err != nil {
		return store.DailyStat{}, fmt.Errorf("day value: %w", err)
	}

	nums := make([]float64, len(raw)-1)
	for i, cell := range raw[1:] {
		if err := json.Unmarshal(cell, &nums[i]); err != nil {
			return store.DailyStat{}, fmt.Errorf("%s value: %w", dailyColumns[i+1], err)
		}
	}

	return store.DailyStat{
		VideoID:                 videoID,
		StatDate:                day,
		Views:                   int64(nums[0]),
		Likes:                   int64(nums[1]),
		Comments:                int64(nums[2]),
		EstimatedMinutesWatched: int64(nums[3]),
		AverageViewDuration:     nums[4],
		SubscribersGained:       int64(nums[5]),
		SubscribersLost:         int64(nums[6]),
	}, nil
}
