package engine

import (
	"errors"
	"time"

	"StockDuel/internal/model"
)

// dayOrdinal converts a timestamp to a day count since the Unix epoch,
// the independent variable for the regression.
func dayOrdinal(t time.Time) float64 {
	return float64(t.UTC().Unix()) / 86400.0
}

// FitLine fits a degree-1 least-squares line of close price over day ordinal.
// Mean-centered normal equations; adequate and stable at this data scale.
func FitLine(bars []model.Bar) (slope, intercept float64, err error) {
	if len(bars) < 2 {
		return 0, 0, errors.New("need at least 2 bars to fit a trend line")
	}

	var sumX, sumY float64
	for _, b := range bars {
		sumX += dayOrdinal(b.Time)
		sumY += b.Close
	}
	n := float64(len(bars))
	meanX := sumX / n
	meanY := sumY / n

	var sxx, sxy float64
	for _, b := range bars {
		dx := dayOrdinal(b.Time) - meanX
		sxx += dx * dx
		sxy += dx * (b.Close - meanY)
	}
	if sxx == 0 {
		return 0, 0, errors.New("all bars share the same date")
	}

	slope = sxy / sxx
	intercept = meanY - slope*meanX
	return slope, intercept, nil
}

// Project evaluates the fitted trend line at the target date. Extrapolating
// beyond the historical window is expected: this is a long-horizon forecast,
// not an interpolation. An error means no projection is available; the zero
// return value must never be shown as a price.
func Project(bars []model.Bar, target time.Time) (float64, error) {
	slope, intercept, err := FitLine(bars)
	if err != nil {
		return 0, err
	}
	return slope*dayOrdinal(target) + intercept, nil
}
