package report

import (
	"fmt"
	"math"
	"strings"

	"StockDuel/internal/engine"
	"StockDuel/internal/model"
)

// FormatDuelReport formats a full refresh cycle into an HTML-tagged text
// report, suitable for both the Telegram notifier and the HTTP dashboard.
func FormatDuelReport(res *model.CycleResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("⚔️ <b>StockDuel</b> | %s\n\n", res.GeneratedAt.Format("2006-01-02 15:04")))

	for _, msg := range res.Failures {
		b.WriteString(fmt.Sprintf("❌ %s\n", msg))
	}

	if res.Degraded() {
		b.WriteString("\n⚠️ Could not load data for both instruments to perform comparison.\n")
		return b.String()
	}

	cmp := res.Comparison
	b.WriteString(fmt.Sprintf("Projection target date: <b>%s</b>\n", cmp.TargetDate.Format("2006-01-02")))

	for _, r := range cmp.Reports() {
		b.WriteString("\n")
		b.WriteString(formatInstrument(r))
	}

	b.WriteString("\n⚔️ <b>Today's Battle Report</b>\n")
	b.WriteString(formatVerdict(cmp.Verdict))

	b.WriteString("\nProjections are a linear regression over the trailing history. Not financial advice.\n")
	return b.String()
}

func formatInstrument(r *model.InstrumentReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📈 <b>%s</b> — %s\n", r.Ticker, r.Name))
	b.WriteString(fmt.Sprintf("Current price: $%.2f (%+.2f%% total gain)\n", r.CurrentPrice, r.TotalGainPct))
	b.WriteString(fmt.Sprintf("Today's move: %+.2f (%+.2f%%)\n", r.DailyChangeAmt, r.DailyChangePct))

	diff := r.MatchPrice - r.CurrentPrice
	switch {
	case math.Abs(diff) < engine.Tolerance:
		b.WriteString(fmt.Sprintf("🎯 Dead heat with %s! 🍺\n", r.RivalTicker))
	case diff > 0:
		b.WriteString(fmt.Sprintf("🎯 Price to match %s: $%.2f (up $%.2f)\n", r.RivalTicker, r.MatchPrice, diff))
	default:
		b.WriteString(fmt.Sprintf("🎯 Already beating %s! (equivalent: $%.2f)\n", r.RivalTicker, r.MatchPrice))
	}

	if r.HasProjection {
		b.WriteString(fmt.Sprintf("🔮 Projected: $%.2f (%+.1f%% vs baseline)\n", r.ProjectedPrice, r.ProjectedGainPct))
	} else {
		b.WriteString("🔮 Projection unavailable (insufficient history)\n")
	}
	return b.String()
}

func formatVerdict(v model.Verdict) string {
	if v.Draw {
		return "It was a draw today! Both instruments moved roughly the same amount.\n"
	}
	return fmt.Sprintf("<b>%s</b> won today! It gained <b>%.2f%%</b> on %s.\n", v.Winner, v.MarginPct, v.Loser)
}
