package models

import "time"

// CreatorStats holds the raw engagement counters the ranking heuristic
// consumes; rows are produced by a single aggregate query
type CreatorStats struct {
	CreatorID        string    `json:"creator_id" db:"creator_id"`
	DisplayName      string    `json:"display_name" db:"display_name"`
	FollowerCount    int64     `json:"follower_count" db:"follower_count"`
	AccountCreatedAt time.Time `json:"account_created_at" db:"account_created_at"`
	TrackCount       int       `json:"track_count" db:"track_count"`
	RecentTrackCount int       `json:"recent_track_count" db:"recent_track_count"`
	RecentPlays      int64     `json:"recent_plays" db:"recent_plays"`
	TotalPlays       int64     `json:"total_plays" db:"total_plays"`
	TotalLikes       int64     `json:"total_likes" db:"total_likes"`
	EventCount       int       `json:"event_count" db:"event_count"`
	HasMusic         bool      `json:"has_music" db:"has_music"`
	HasPodcast       bool      `json:"has_podcast" db:"has_podcast"`
}

// CreatorScore is one scored entry in the hot-creators list
type CreatorScore struct {
	CreatorID        string  `json:"creator_id"`
	DisplayName      string  `json:"display_name"`
	Score            float64 `json:"score"`
	RecentActivity   float64 `json:"recent_activity"`
	EngagementRatio  float64 `json:"engagement_ratio"`
	GrowthRate       float64 `json:"growth_rate"`
	ContentDiversity float64 `json:"content_diversity"`
	FollowerScore    float64 `json:"follower_score"`
}
