package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/soundbridge/soundbridge-backend/models"
)

// CreatorRepository produces the aggregate engagement stats the ranking
// heuristic consumes
type CreatorRepository struct {
	DB *sql.DB
}

// NewCreatorRepository creates a new CreatorRepository
func NewCreatorRepository(db *sql.DB) *CreatorRepository {
	return &CreatorRepository{DB: db}
}

// GetCreatorStats aggregates per-creator counters in a single query. The
// 30-day window for recent tracks is computed against recentSince.
func (r *CreatorRepository) GetCreatorStats(recentSince time.Time) ([]models.CreatorStats, error) {
	rows, err := r.DB.Query(
		`SELECT u.id, u.display_name, u.follower_count, u.created_at,
		        COUNT(t.id) AS track_count,
		        COUNT(t.id) FILTER (WHERE t.created_at >= $1) AS recent_track_count,
		        COALESCE(SUM(t.play_count) FILTER (WHERE t.created_at >= $1), 0) AS recent_plays,
		        COALESCE(SUM(t.play_count), 0) AS total_plays,
		        COALESCE(SUM(t.like_count), 0) AS total_likes,
		        (SELECT COUNT(*) FROM events e WHERE e.creator_id = u.id) AS event_count,
		        BOOL_OR(t.genre_kind = 'music') AS has_music,
		        BOOL_OR(t.genre_kind = 'podcast') AS has_podcast
		 FROM users u
		 LEFT JOIN tracks t ON t.creator_id = u.id
		 WHERE u.role = 'creator'
		 GROUP BY u.id, u.display_name, u.follower_count, u.created_at`,
		recentSince,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get creator stats: %v", err)
	}
	defer rows.Close()

	var stats []models.CreatorStats
	for rows.Next() {
		var s models.CreatorStats
		var hasMusic, hasPodcast sql.NullBool
		err = rows.Scan(&s.CreatorID, &s.DisplayName, &s.FollowerCount,
			&s.AccountCreatedAt, &s.TrackCount, &s.RecentTrackCount,
			&s.RecentPlays, &s.TotalPlays, &s.TotalLikes, &s.EventCount,
			&hasMusic, &hasPodcast)
		if err != nil {
			return nil, fmt.Errorf("failed to scan creator stats: %v", err)
		}
		s.HasMusic = hasMusic.Valid && hasMusic.Bool
		s.HasPodcast = hasPodcast.Valid && hasPodcast.Bool
		stats = append(stats, s)
	}

	return stats, nil
}
