package listservice

import (
	"context"
	"io"

	listdomain "github.com/Black-And-White-Club/demonlist/app/modules/list/domain"
)

// Service defines the read operations of the demon list.
type Service interface {
	// FetchList returns every level in rank order.
	FetchList(ctx context.Context) ([]listdomain.Level, error)

	// FetchLeaderboard returns one standing per player, highest total first.
	FetchLeaderboard(ctx context.Context) ([]listdomain.PlayerStanding, error)

	// GetLevel returns the level at the 1-based rank or ErrLevelNotFound.
	GetLevel(ctx context.Context, rank int) (LevelDetail, error)

	// GetPlayer returns a player's standing and position or ErrPlayerNotFound.
	GetPlayer(ctx context.Context, user string) (PlayerPosition, error)

	// ExportLeaderboard writes an XLSX workbook of the leaderboard and the list.
	ExportLeaderboard(ctx context.Context, w io.Writer) error

	// RenderPointsChart renders a PNG of completion points by rank.
	RenderPointsChart(ctx context.Context) ([]byte, error)
}

var _ Service = (*ListService)(nil)
