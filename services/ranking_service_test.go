package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundbridge/soundbridge-backend/models"
)

func rankingFixture(now time.Time) []models.CreatorStats {
	return []models.CreatorStats{
		{
			// recentActivity: avg 500 plays/track, x1.2 multiplier -> 60
			// engagement: 100/2000 likes/plays -> 50
			// growth: 1000 followers / 100 days x2 -> 20
			// diversity: tracks + events -> 75; followers: 1000 -> 1
			CreatorID:        "creator-alba",
			DisplayName:      "Alba",
			FollowerCount:    1000,
			AccountCreatedAt: now.AddDate(0, 0, -100),
			TrackCount:       5,
			RecentTrackCount: 2,
			RecentPlays:      1000,
			TotalPlays:       2000,
			TotalLikes:       100,
			EventCount:       1,
			HasMusic:         true,
		},
		{
			// engagement and growth both cap at 100; multi-genre boost applies
			CreatorID:        "creator-beck",
			DisplayName:      "Beck",
			FollowerCount:    5000,
			AccountCreatedAt: now.AddDate(0, 0, -50),
			TrackCount:       10,
			TotalPlays:       1000,
			TotalLikes:       200,
			HasMusic:         true,
			HasPodcast:       true,
		},
		{
			// no engagement at all: excluded from the list
			CreatorID:        "creator-idle",
			DisplayName:      "Idle",
			AccountCreatedAt: now.AddDate(0, 0, -30),
		},
	}
}

func TestScoreCreators_WeightedScores(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	scores := ScoreCreators(rankingFixture(now), now)

	// The zero-score creator is excluded
	require.Len(t, scores, 2)

	// Beck: 0.25*100 + 0.20*100 + 0.10*75 + 0.05*5 = 52.75, x1.15 = 60.66
	assert.Equal(t, "creator-beck", scores[0].CreatorID)
	assert.InDelta(t, 60.66, scores[0].Score, 0.01)
	assert.InDelta(t, 100, scores[0].EngagementRatio, 0.01)
	assert.InDelta(t, 100, scores[0].GrowthRate, 0.01)

	// Alba: 0.40*60 + 0.25*50 + 0.20*20 + 0.10*75 + 0.05*1 = 48.05
	assert.Equal(t, "creator-alba", scores[1].CreatorID)
	assert.InDelta(t, 48.05, scores[1].Score, 0.01)
	assert.InDelta(t, 60, scores[1].RecentActivity, 0.01)
	assert.InDelta(t, 50, scores[1].EngagementRatio, 0.01)
	assert.InDelta(t, 20, scores[1].GrowthRate, 0.01)
	assert.Equal(t, 75.0, scores[1].ContentDiversity)
}

func TestScoreCreators_Deterministic(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	stats := rankingFixture(now)

	first := ScoreCreators(stats, now)
	second := ScoreCreators(stats, now)

	assert.Equal(t, first, second)
}

func TestScoreCreators_TieBreaksOnCreatorID(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	twin := func(id string) models.CreatorStats {
		return models.CreatorStats{
			CreatorID:        id,
			FollowerCount:    2000,
			AccountCreatedAt: now.AddDate(0, 0, -10),
			TrackCount:       3,
		}
	}

	scores := ScoreCreators([]models.CreatorStats{twin("creator-b"), twin("creator-a")}, now)
	require.Len(t, scores, 2)
	assert.Equal(t, "creator-a", scores[0].CreatorID)
	assert.Equal(t, "creator-b", scores[1].CreatorID)
	assert.Equal(t, scores[0].Score, scores[1].Score)
}

func TestScoreCreators_CapsComponents(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	stats := []models.CreatorStats{{
		CreatorID:        "creator-huge",
		FollowerCount:    10_000_000,
		AccountCreatedAt: now.AddDate(0, 0, -2),
		TrackCount:       100,
		RecentTrackCount: 100,
		RecentPlays:      100_000_000,
		TotalPlays:       1,
		TotalLikes:       1_000_000,
		EventCount:       5,
		HasMusic:         true,
		HasPodcast:       true,
	}}

	scores := ScoreCreators(stats, now)
	require.Len(t, scores, 1)

	// Every component capped at 100, diversity at its flat 100 maximum:
	// weighted sum 100, then the 1.15 multi-genre boost
	assert.InDelta(t, 100, scores[0].RecentActivity, 0.01)
	assert.InDelta(t, 100, scores[0].EngagementRatio, 0.01)
	assert.InDelta(t, 100, scores[0].GrowthRate, 0.01)
	assert.Equal(t, 100.0, scores[0].ContentDiversity)
	assert.InDelta(t, 100, scores[0].FollowerScore, 0.01)
	assert.InDelta(t, 115, scores[0].Score, 0.01)
}
