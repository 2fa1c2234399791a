package services

import (
	"sort"
	"time"

	"github.com/soundbridge/soundbridge-backend/models"
	"github.com/soundbridge/soundbridge-backend/utils"
)

// Score weights for the hot-creators heuristic
const (
	weightRecentActivity   = 0.40
	weightEngagementRatio  = 0.25
	weightGrowthRate       = 0.20
	weightContentDiversity = 0.10
	weightFollowerCount    = 0.05

	// Multi-genre creators get a flat boost on the final score
	multiGenreMultiplier = 1.15

	// Recent-activity window
	recentWindowDays = 30
)

// CreatorStore produces aggregate engagement stats
type CreatorStore interface {
	GetCreatorStats(recentSince time.Time) ([]models.CreatorStats, error)
}

// RankingService computes the "hot creators" list. Scoring is stateless and
// recomputed fresh on every request.
type RankingService struct {
	creators CreatorStore
}

// NewRankingService creates a new ranking service
func NewRankingService(creators CreatorStore) *RankingService {
	return &RankingService{creators: creators}
}

// GetHotCreators returns the top creators by weighted engagement score
func (s *RankingService) GetHotCreators(limit int) ([]models.CreatorScore, error) {
	if limit <= 0 {
		limit = 10
	}

	now := time.Now()
	stats, err := s.creators.GetCreatorStats(now.AddDate(0, 0, -recentWindowDays))
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}

	scores := ScoreCreators(stats, now)
	if len(scores) > limit {
		scores = scores[:limit]
	}
	return scores, nil
}

// ScoreCreators computes a weighted score per creator, drops zero scores and
// returns the rest in descending order. Ties break on creator id so repeated
// invocations over the same rows produce the same ordering.
func ScoreCreators(stats []models.CreatorStats, now time.Time) []models.CreatorScore {
	var scores []models.CreatorScore
	for _, s := range stats {
		score := scoreCreator(s, now)
		if score.Score <= 0 {
			continue
		}
		scores = append(scores, score)
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].CreatorID < scores[j].CreatorID
	})

	return scores
}

func scoreCreator(s models.CreatorStats, now time.Time) models.CreatorScore {
	recentActivity := recentActivityScore(s)
	engagement := engagementScore(s)
	growth := growthScore(s, now)
	diversity := diversityScore(s)
	followers := utils.Min(float64(s.FollowerCount)/1000.0, 100)

	total := weightRecentActivity*recentActivity +
		weightEngagementRatio*engagement +
		weightGrowthRate*growth +
		weightContentDiversity*diversity +
		weightFollowerCount*followers

	if s.HasMusic && s.HasPodcast {
		total *= multiGenreMultiplier
	}

	return models.CreatorScore{
		CreatorID:        s.CreatorID,
		DisplayName:      s.DisplayName,
		Score:            utils.Round(total),
		RecentActivity:   utils.Round(recentActivity),
		EngagementRatio:  utils.Round(engagement),
		GrowthRate:       utils.Round(growth),
		ContentDiversity: diversity,
		FollowerScore:    utils.Round(followers),
	}
}

// recentActivityScore normalizes average plays-per-track over the recent
// window, scaled by a track-count multiplier capped at 1.5x, capped at 100
func recentActivityScore(s models.CreatorStats) float64 {
	if s.RecentTrackCount == 0 {
		return 0
	}
	avgPlays := float64(s.RecentPlays) / float64(s.RecentTrackCount)
	multiplier := utils.Min(1+float64(s.RecentTrackCount)/10.0, 1.5)
	return utils.Min(avgPlays/10.0*multiplier, 100)
}

// engagementScore is the likes-to-plays ratio as a percentage, scaled x10,
// capped at 100
func engagementScore(s models.CreatorStats) float64 {
	if s.TotalPlays == 0 {
		return 0
	}
	ratio := float64(s.TotalLikes) / float64(s.TotalPlays) * 100
	return utils.Min(ratio*10, 100)
}

// growthScore is followers per account-age day, scaled x2, capped at 100.
// A crude proxy; there is no cohort tracking behind it.
func growthScore(s models.CreatorStats, now time.Time) float64 {
	ageDays := now.Sub(s.AccountCreatedAt).Hours() / 24
	if ageDays < 1 {
		ageDays = 1
	}
	return utils.Min(float64(s.FollowerCount)/ageDays*2, 100)
}

// diversityScore awards flat points: 50 for having tracks, 25 for events,
// 25 for spanning both music and podcast genres
func diversityScore(s models.CreatorStats) float64 {
	var score float64
	if s.TrackCount > 0 {
		score += 50
	}
	if s.EventCount > 0 {
		score += 25
	}
	if s.HasMusic && s.HasPodcast {
		score += 25
	}
	return score
}
