package live

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LeaderboardEntry is one row of the daily step leaderboard.
type LeaderboardEntry struct {
	UserID string  `json:"userId"`
	Steps  float64 `json:"steps"`
	Rank   int     `json:"rank"`
}

func leaderboardKey(day time.Time) string {
	return fmt.Sprintf("leaderboard:steps:%s", day.Format("2006-01-02"))
}

// RecordSteps sets the user's step count on today's leaderboard. The
// key expires after 48 hours so old boards clean themselves up.
func RecordSteps(userID string, steps int) {
	if !Enabled() {
		return
	}
	key := leaderboardKey(time.Now())
	rdb.ZAdd(ctx, key, redis.Z{Score: float64(steps), Member: userID})
	rdb.Expire(ctx, key, 48*time.Hour)
}

// TopSteppers returns the highest step counts for today, best first.
func TopSteppers(limit int) ([]LeaderboardEntry, error) {
	if !Enabled() {
		return nil, nil
	}
	key := leaderboardKey(time.Now())
	results, err := rdb.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(results))
	for i, z := range results {
		userID, _ := z.Member.(string)
		entries = append(entries, LeaderboardEntry{
			UserID: userID,
			Steps:  z.Score,
			Rank:   i + 1,
		})
	}
	return entries, nil
}
