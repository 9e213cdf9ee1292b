package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/vicanso/go-charts/v2"

	"StockDuel/internal/engine"
	"StockDuel/internal/model"
)

// RenderChart renders the instrument's price history with its fitted trend
// line overlaid, as a PNG.
func RenderChart(r *model.InstrumentReport, target time.Time) ([]byte, error) {
	bars := r.History
	if len(bars) < 2 {
		return nil, errors.New("not enough data points")
	}

	slope, intercept, err := engine.FitLine(bars)
	if err != nil {
		return nil, err
	}

	labels := make([]string, len(bars))
	closes := make([]float64, len(bars))
	trend := make([]float64, len(bars))
	var yMin, yMax float64
	for i, bar := range bars {
		labels[i] = bar.Time.Format("Jan 06")
		closes[i] = bar.Close
		trend[i] = slope*float64(bar.Time.UTC().Unix())/86400.0 + intercept
		if i == 0 {
			yMin, yMax = bar.Close, bar.Close
			continue
		}
		if bar.Close < yMin {
			yMin = bar.Close
		}
		if bar.Close > yMax {
			yMax = bar.Close
		}
	}

	pad := (yMax - yMin) * 0.05
	if pad < yMax*0.002 {
		pad = yMax * 0.002
	}
	yMin -= pad
	if yMin < 0 {
		yMin = 0
	}
	yMax += pad

	title := fmt.Sprintf("%s • daily close", r.Ticker)
	if r.HasProjection {
		title = fmt.Sprintf("%s • $%.2f projected for %s", r.Ticker, r.ProjectedPrice, target.Format("2006-01-02"))
	}

	painter, err := charts.LineRender([][]float64{closes, trend},
		charts.TitleTextOptionFunc(title),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: labels, BoundaryGap: charts.FalseFlag(), SplitNumber: 8}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}
