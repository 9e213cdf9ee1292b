package engine

import (
	"errors"
	"math"

	"StockDuel/internal/model"
)

// Tolerance is the shared threshold below which two prices or percentage
// values are treated as effectively equal.
const Tolerance = 0.01

// ResolvePrices determines the current price and the previous close for one
// instrument from its historical bars and an optional out-of-band live quote.
//
// The live quote (when positive) is authoritative for the current price. If it
// differs from the last historical close by more than Tolerance, the series
// has not recorded today's bar yet, so the last close serves as previous
// close. If they match, the series already absorbed today's move and the
// previous close comes from one bar further back. Daily-updating funds and
// intraday tickers publish on different schedules; the two sources cannot be
// assumed time-aligned.
func ResolvePrices(bars []model.Bar, latest float64) (current, prevClose float64, err error) {
	if len(bars) == 0 {
		return 0, 0, errors.New("empty price series")
	}

	lastClose := bars[len(bars)-1].Close
	current = latest
	if current <= 0 {
		current = lastClose
	}
	if current <= 0 {
		return 0, 0, errors.New("no resolvable current price")
	}

	if len(bars) < 2 {
		// With a single bar there is no previous session to diff against;
		// fall back to the current price, yielding a zero daily change.
		return current, current, nil
	}

	if math.Abs(current-lastClose) > Tolerance {
		prevClose = lastClose
	} else {
		prevClose = bars[len(bars)-2].Close
	}
	return current, prevClose, nil
}
