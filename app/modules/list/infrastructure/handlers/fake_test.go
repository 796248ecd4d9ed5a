package listhandlers

import (
	"context"
	"io"

	listservice "github.com/Black-And-White-Club/demonlist/app/modules/list/application"
	listdomain "github.com/Black-And-White-Club/demonlist/app/modules/list/domain"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	FetchListFunc         func(ctx context.Context) ([]listdomain.Level, error)
	FetchLeaderboardFunc  func(ctx context.Context) ([]listdomain.PlayerStanding, error)
	GetLevelFunc          func(ctx context.Context, rank int) (listservice.LevelDetail, error)
	GetPlayerFunc         func(ctx context.Context, user string) (listservice.PlayerPosition, error)
	ExportLeaderboardFunc func(ctx context.Context, w io.Writer) error
	RenderPointsChartFunc func(ctx context.Context) ([]byte, error)
}

func (f *FakeService) FetchList(ctx context.Context) ([]listdomain.Level, error) {
	if f.FetchListFunc != nil {
		return f.FetchListFunc(ctx)
	}
	return []listdomain.Level{}, nil
}

func (f *FakeService) FetchLeaderboard(ctx context.Context) ([]listdomain.PlayerStanding, error) {
	if f.FetchLeaderboardFunc != nil {
		return f.FetchLeaderboardFunc(ctx)
	}
	return []listdomain.PlayerStanding{}, nil
}

func (f *FakeService) GetLevel(ctx context.Context, rank int) (listservice.LevelDetail, error) {
	if f.GetLevelFunc != nil {
		return f.GetLevelFunc(ctx, rank)
	}
	return listservice.LevelDetail{}, listservice.ErrLevelNotFound
}

func (f *FakeService) GetPlayer(ctx context.Context, user string) (listservice.PlayerPosition, error) {
	if f.GetPlayerFunc != nil {
		return f.GetPlayerFunc(ctx, user)
	}
	return listservice.PlayerPosition{}, listservice.ErrPlayerNotFound
}

func (f *FakeService) ExportLeaderboard(ctx context.Context, w io.Writer) error {
	if f.ExportLeaderboardFunc != nil {
		return f.ExportLeaderboardFunc(ctx, w)
	}
	return nil
}

func (f *FakeService) RenderPointsChart(ctx context.Context) ([]byte, error) {
	if f.RenderPointsChartFunc != nil {
		return f.RenderPointsChartFunc(ctx)
	}
	return nil, nil
}

var _ listservice.Service = (*FakeService)(nil)
