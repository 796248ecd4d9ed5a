package listservice

import (
	"bytes"
	"context"

	listdomain "github.com/Black-And-White-Club/demonlist/app/modules/list/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette holds the colors used for rendered charts.
type ChartPalette struct {
	Background drawing.Color
	Line       drawing.Color
	Dot        drawing.Color
	Text       drawing.Color
}

// DefaultChartPalette is the palette used by RenderPointsChart.
var DefaultChartPalette = ChartPalette{
	Background: drawing.ColorFromHex("1f1f23"),
	Line:       drawing.ColorFromHex("e44d4d"),
	Dot:        drawing.ColorFromHex("f5c542"),
	Text:       drawing.ColorFromHex("e6e6e6"),
}

// RenderPointsChart renders the completion points of every level by rank.
func (s *ListService) RenderPointsChart(ctx context.Context) ([]byte, error) {
	return withTelemetry(s, ctx, "RenderPointsChart", func(ctx context.Context) ([]byte, error) {
		levels, err := s.levels(ctx)
		if err != nil {
			return nil, err
		}
		return GeneratePointsChart(levels, s.policy, DefaultChartPalette)
	})
}

// GeneratePointsChart produces a PNG line chart of completion points by rank.
func GeneratePointsChart(levels []listdomain.Level, policy listdomain.ScorePolicy, palette ChartPalette) ([]byte, error) {
	if len(levels) == 0 {
		return renderNoDataPlaceholder(palette)
	}

	xValues := make([]float64, len(levels))
	yValues := make([]float64, len(levels))
	for i, level := range levels {
		xValues[i] = float64(i + 1)
		yValues[i] = policy.Score(i+1, 100, level.PercentToQualify)
	}

	// Fixed ranges keep a one-level list renderable.
	maxRank := float64(max(len(levels), 2))

	graph := chart.Chart{
		Width:      800,
		Height:     400,
		Background: chart.Style{FillColor: palette.Background},
		Canvas:     chart.Style{FillColor: palette.Background},
		XAxis: chart.XAxis{
			Name:  "Rank",
			Style: chart.Style{FontColor: palette.Text},
			Range: &chart.ContinuousRange{Min: 1, Max: maxRank},
		},
		YAxis: chart.YAxis{
			Name:  "Points",
			Style: chart.Style{FontColor: palette.Text},
			Range: &chart.ContinuousRange{Min: 0, Max: policy.MaxPoints},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Points",
				XValues: xValues,
				YValues: yValues,
				Style: chart.Style{
					StrokeColor: palette.Line,
					StrokeWidth: 2,
					DotWidth:    3,
					DotColor:    palette.Dot,
				},
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder(palette ChartPalette) ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No levels found"
	)

	graph := chart.Chart{
		Width:          width,
		Height:         height,
		Background:     chart.Style{FillColor: palette.Background},
		Canvas:         chart.Style{FillColor: palette.Background},
		XAxis:          chart.XAxis{Style: chart.Hidden()},
		YAxis:          chart.YAxis{Style: chart.Hidden()},
		YAxisSecondary: chart.YAxis{Style: chart.Hidden()},
		// go-chart refuses to render without a visible series.
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: []float64{0, 1},
				YValues: []float64{0, 1},
				Style:   chart.Style{StrokeColor: drawing.ColorTransparent},
			},
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFont(chartDefaults.GetFont())
				r.SetFontColor(palette.Text)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
