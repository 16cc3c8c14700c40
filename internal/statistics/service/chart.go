package service

import (
	"bytes"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/festy23/softball_scoreboard/internal/statistics/model"
)

const (
	chartWidth  = 800
	chartHeight = 400
)

var (
	chartBackground = drawing.ColorFromHex("0f1f17")
	chartBar        = drawing.ColorFromHex("d4a017")
	chartText       = drawing.ColorFromHex("e8e8e8")
)

// renderStandingsChart draws one bar per team with its winning percentage
// in thousandths. Without rows a single empty bar carries the reason.
func renderStandingsChart(st model.StandingsResponse) ([]byte, error) {
	bars := make([]chart.Value, 0, len(st.Standings))
	for _, r := range st.Standings {
		bars = append(bars, chart.Value{
			Label: r.TeamName + " " + r.PctText,
			Value: float64(r.Pct),
			Style: chart.Style{FillColor: chartBar, StrokeColor: chartBar},
		})
	}
	if len(bars) == 0 {
		msg := "No standings yet"
		if !st.Rankable {
			msg = "Standings blocked by a tied game"
		}
		bars = append(bars, chart.Value{Label: msg})
	}

	graph := chart.BarChart{
		Title:      "Standings",
		TitleStyle: chart.Style{FontColor: chartText},
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   chartWidth / (2*len(bars) + 1),
		Background: chart.Style{
			FillColor: chartBackground,
			Padding:   chart.Box{Top: 40},
		},
		Canvas: chart.Style{FillColor: chartBackground},
		XAxis:  chart.Style{FontColor: chartText},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: chartText},
			Range: &chart.ContinuousRange{Min: 0, Max: 1000},
		},
		Bars: bars,
	}

	buf := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
