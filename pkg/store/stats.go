package store

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// UserCount is a (user, warning count) pair for leaderboards.
type UserCount struct {
	UserID       string `json:"userId"`
	WarningCount int64  `json:"warningCount"`
}

// ModeratorCount is a (moderator, warning count) pair.
type ModeratorCount struct {
	ModeratorID  string `json:"moderatorId"`
	WarningCount int64  `json:"warningCount"`
}

// DayCount is the number of warnings issued on one UTC calendar day.
type DayCount struct {
	Day   string `json:"day"` // formato YYYY-MM-DD
	Count int64  `json:"count"`
}

// GuildSummary aggregates a guild's warning activity. Always computed fresh
// from the record set, never from maintained counters.
type GuildSummary struct {
	TotalWarnings     int64       `json:"totalWarnings"`
	UniqueUsersWarned int64       `json:"uniqueUsersWarned"`
	TopUsers          []UserCount `json:"topUsers"`
}

// Summary returns the totals and the top-N most warned users for a guild.
// Top users are ordered by count descending, user id ascending on ties.
func (s *Store) Summary(ctx context.Context, guildID string, topN int) (*GuildSummary, error) {
	total, err := s.TotalWarnings(ctx, guildID)
	if err != nil {
		return nil, err
	}

	var unique int64
	err = s.db.WithContext(ctx).Model(&Warning{}).
		Where("guild_id = ?", guildID).
		Distinct("user_id").
		Count(&unique).Error
	if err != nil {
		return nil, fmt.Errorf("store: counting unique warned users: %w", err)
	}

	top := make([]UserCount, 0, topN)
	err = s.db.WithContext(ctx).Model(&Warning{}).
		Select("user_id, COUNT(*) AS warning_count").
		Where("guild_id = ?", guildID).
		Group("user_id").
		Order("warning_count DESC, user_id ASC").
		Limit(topN).
		Scan(&top).Error
	if err != nil {
		return nil, fmt.Errorf("store: querying top warned users: %w", err)
	}

	return &GuildSummary{
		TotalWarnings:     total,
		UniqueUsersWarned: unique,
		TopUsers:          top,
	}, nil
}

// WarningsPerModerator returns every moderator who has ever warned in the
// guild with their totals, ordered by count descending.
func (s *Store) WarningsPerModerator(ctx context.Context, guildID string) ([]ModeratorCount, error) {
	rows := make([]ModeratorCount, 0)
	err := s.db.WithContext(ctx).Model(&Warning{}).
		Select("moderator_id, COUNT(*) AS warning_count").
		Where("guild_id = ?", guildID).
		Group("moderator_id").
		Order("warning_count DESC, moderator_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("store: querying warnings per moderator: %w", err)
	}
	return rows, nil
}

// WarningsPerDay returns a sparse, ascending list of (UTC day, count) pairs
// for warnings issued in the last windowDays days. Days without warnings are
// omitted. Grouping happens here instead of in SQL so it does not depend on
// any engine-specific date function.
func (s *Store) WarningsPerDay(ctx context.Context, guildID string, windowDays int) ([]DayCount, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -windowDays).Unix()

	var stamps []int64
	err := s.db.WithContext(ctx).Model(&Warning{}).
		Where("guild_id = ? AND timestamp >= ?", guildID, cutoff).
		Pluck("timestamp", &stamps).Error
	if err != nil {
		return nil, fmt.Errorf("store: querying warnings per day: %w", err)
	}

	byDay := make(map[string]int64)
	for _, ts := range stamps {
		day := time.Unix(ts, 0).UTC().Format("2006-01-02")
		byDay[day]++
	}

	rows := make([]DayCount, 0, len(byDay))
	for day, count := range byDay {
		rows = append(rows, DayCount{Day: day, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Day < rows[j].Day })

	return rows, nil
}
