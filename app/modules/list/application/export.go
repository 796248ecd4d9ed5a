package listservice

import (
	"context"
	"fmt"
	"io"

	listdomain "github.com/Black-And-White-Club/demonlist/app/modules/list/domain"
	"github.com/xuri/excelize/v2"
)

const (
	leaderboardSheet = "Leaderboard"
	listSheet        = "List"
)

// ExportLeaderboard writes a workbook with a "Leaderboard" sheet and a "List"
// sheet computed from a single fetch of the list.
func (s *ListService) ExportLeaderboard(ctx context.Context, w io.Writer) error {
	_, err := withTelemetry(s, ctx, "ExportLeaderboard", func(ctx context.Context) (struct{}, error) {
		levels, err := s.levels(ctx)
		if err != nil {
			return struct{}{}, err
		}
		standings := listdomain.BuildLeaderboard(levels, s.policy)
		return struct{}{}, writeWorkbook(w, levels, standings, s.policy)
	})
	return err
}

func writeWorkbook(w io.Writer, levels []listdomain.Level, standings []listdomain.PlayerStanding, policy listdomain.ScorePolicy) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", leaderboardSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(listSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	if err := writeRow(f, leaderboardSheet, 1, []any{"Position", "Player", "Total", "Verified", "Completed", "Progressed"}); err != nil {
		return err
	}
	for i, standing := range standings {
		row := []any{i + 1, standing.User, standing.Total, len(standing.Verified), len(standing.Completed), len(standing.Progressed)}
		if err := writeRow(f, leaderboardSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := writeRow(f, listSheet, 1, []any{"Rank", "Level", "Verifier", "Qualify %", "Points"}); err != nil {
		return err
	}
	for i, level := range levels {
		rank := i + 1
		points := listdomain.Round(policy.Score(rank, 100, level.PercentToQualify))
		row := []any{rank, level.Name, level.Verifier, level.PercentToQualify, points}
		if err := writeRow(f, listSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
