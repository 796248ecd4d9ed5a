package listservice

import (
	"context"
	"fmt"

	listdomain "github.com/Black-And-White-Club/demonlist/app/modules/list/domain"
)

// FetchList returns every level in rank order.
func (s *ListService) FetchList(ctx context.Context) ([]listdomain.Level, error) {
	return withTelemetry(s, ctx, "FetchList", s.levels)
}

// FetchLeaderboard fetches the list and aggregates it into player standings.
// Concurrent callers share one fetch; a FetchError aborts the whole call.
func (s *ListService) FetchLeaderboard(ctx context.Context) ([]listdomain.PlayerStanding, error) {
	return withTelemetry(s, ctx, "FetchLeaderboard", s.standings)
}

// GetLevel returns the level at rank with its completion points.
func (s *ListService) GetLevel(ctx context.Context, rank int) (LevelDetail, error) {
	return withTelemetry(s, ctx, "GetLevel", func(ctx context.Context) (LevelDetail, error) {
		levels, err := s.levels(ctx)
		if err != nil {
			return LevelDetail{}, err
		}
		if rank < 1 || rank > len(levels) {
			return LevelDetail{}, fmt.Errorf("rank %d: %w", rank, ErrLevelNotFound)
		}

		level := levels[rank-1]
		return LevelDetail{
			Rank:   rank,
			Level:  level,
			Points: s.policy.Score(rank, 100, level.PercentToQualify),
		}, nil
	})
}

// GetPlayer returns the standing of user. Matching is exact.
func (s *ListService) GetPlayer(ctx context.Context, user string) (PlayerPosition, error) {
	return withTelemetry(s, ctx, "GetPlayer", func(ctx context.Context) (PlayerPosition, error) {
		standings, err := s.standings(ctx)
		if err != nil {
			return PlayerPosition{}, err
		}

		position := listdomain.Position(standings, user)
		if position == 0 {
			return PlayerPosition{}, fmt.Errorf("player %q: %w", user, ErrPlayerNotFound)
		}
		return PlayerPosition{
			Position:       position,
			PlayerStanding: standings[position-1],
		}, nil
	})
}
