package notifier

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"InsightDesk/internal/model"
)

// FormatDigest formats the scenario headline figures into a Telegram message.
func FormatDigest(a model.ScenarioAssumptions, table model.ScenarioTable, s model.ScenarioSummary, now time.Time) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📈 <b>Promo Impact Digest</b> | %s\n\n", now.Format("2006-01-02")))

	b.WriteString(fmt.Sprintf("Sessions: %s | Base conversion: %.2f%%\n", humanize.Comma(int64(a.Traffic)), a.BaseConversionRate*100))
	b.WriteString(fmt.Sprintf("List price: %s | Unit cost: %s\n", dollars2(a.BasePrice), dollars2(a.UnitCost)))
	b.WriteString(fmt.Sprintf("Elasticity: %.2f | Units/order: %.2f | Conversion cap: %.2f%%\n", a.Elasticity, a.AvgQuantityPerOrder, a.ConversionCap*100))
	b.WriteString(fmt.Sprintf("Discounts: %g%%–%g%% step %g%% (%d scenarios)\n\n", a.DiscountMinPct, a.DiscountMaxPct, a.DiscountStepPct, len(table.Rows)))

	rev := s.BestRevenue
	b.WriteString(fmt.Sprintf("💰 <b>Max revenue:</b> %s @ %.1f%% discount\n", dollars(rev.Revenue), rev.DiscountRatePct))
	b.WriteString(fmt.Sprintf("   Orders: %s | AOV: %s\n", humanize.Comma(rev.Orders), dollars2(rev.AverageOrderValue)))

	cm := s.BestContribution
	b.WriteString(fmt.Sprintf("📦 <b>Max contribution:</b> %s @ %.1f%% discount\n", dollars(cm.ContributionMargin), cm.DiscountRatePct))

	if last := table.Rows[len(table.Rows)-1]; last.ContributionMargin < 0 {
		b.WriteString(fmt.Sprintf("\n⚠️ Contribution turns negative by %.1f%% discount\n", firstNegative(table)))
	}
	return b.String()
}

// FormatDistribution formats sentiment counts as a short text block.
func FormatDistribution(d model.SentimentDistribution) string {
	var b strings.Builder
	total := d.Total()
	for _, l := range model.Labels {
		n := d.Count(l)
		share := 0.0
		if total > 0 {
			share = float64(n) / float64(total) * 100
		}
		b.WriteString(fmt.Sprintf("%-8s %6s  %5.1f%%\n", l, humanize.Comma(int64(n)), share))
	}
	b.WriteString(fmt.Sprintf("%-8s %6s\n", "Total", humanize.Comma(int64(total))))
	return b.String()
}

// FormatHelp lists the bot commands.
func FormatHelp() string {
	return "Available commands:\n• /forecast — scenario digest for the configured assumptions\n• /help — this message"
}

func firstNegative(t model.ScenarioTable) float64 {
	for _, r := range t.Rows {
		if r.ContributionMargin < 0 {
			return r.DiscountRatePct
		}
	}
	return 0
}

func dollars(v float64) string {
	if v < 0 {
		return "-$" + humanize.Comma(int64(math.Round(-v)))
	}
	return "$" + humanize.Comma(int64(math.Round(v)))
}

func dollars2(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}
