// Package insight turns the stats snapshot into a textual context block and
// answers free-text questions by forwarding context plus question to the
// completion endpoint.
package insight

import (
	"fmt"
	"math"
	"strings"

	"github.com/freelens/freelens/internal/model"
	"github.com/freelens/freelens/internal/stats"
)

// sampleRows is how many cleaned records the context block quotes verbatim.
const sampleRows = 3

// topCategoryCount bounds the per-category listing in the context block.
const topCategoryCount = 5

// BuildContext renders the fixed-structure context block embedded ahead of
// every question. Grouped listings follow the bundle's first-encounter order;
// only the category listing is re-sorted (descending by mean earnings).
func BuildContext(bundle model.StatsBundle, sample []model.Record) string {
	var b strings.Builder

	b.WriteString("Freelancer Data Statistics:\n")
	b.WriteString("- General:\n")
	fmt.Fprintf(&b, "  * Average earnings: %s\n", money(bundle.AvgEarnings))
	fmt.Fprintf(&b, "  * Crypto vs non-crypto earnings: %s vs %s\n",
		money(bundle.CryptoEarnings), money(bundle.NonCryptoEarnings))
	fmt.Fprintf(&b, "  * Rating vs earnings correlation: %s\n", corr(bundle.RatingVsEarnings))
	fmt.Fprintf(&b, "  * Job duration vs rating correlation: %s\n", corr(bundle.DurationVsRating))

	b.WriteString("\n- By Region:\n")
	fmt.Fprintf(&b, "  %s\n", joinGroups(bundle.RegionalEarnings, money))

	b.WriteString("\n- By Experience Level:\n")
	fmt.Fprintf(&b, "  %s\n", joinGroups(bundle.ExperienceEarnings, money))
	fmt.Fprintf(&b, "  Rehire rates: %s\n", joinGroups(bundle.RehireByExperience, percent))

	fmt.Fprintf(&b, "\n- By Job Category (top %d):\n", topCategoryCount)
	fmt.Fprintf(&b, "  %s\n", joinGroups(stats.TopCategories(bundle, topCategoryCount), money))

	b.WriteString("\n- Platform Statistics:\n")
	fmt.Fprintf(&b, "  Success rates: %s\n", joinGroups(bundle.PlatformSuccess, percent))

	b.WriteString("\n- Expert Freelancers:\n")
	if bundle.ExpertProjects.Count > 0 {
		fmt.Fprintf(&b, "  Projects completed: min %.0f, max %.0f, mean %.1f\n",
			bundle.ExpertProjects.Min, bundle.ExpertProjects.Max, bundle.ExpertProjects.Mean)
	} else {
		b.WriteString("  Projects completed: no data\n")
	}

	fmt.Fprintf(&b, "\nSample Data (first %d rows):\n", sampleRows)
	n := len(sample)
	if n > sampleRows {
		n = sampleRows
	}
	for i := 0; i < n; i++ {
		b.WriteString(renderRow(i, sample[i]))
	}

	return b.String()
}

// joinGroups renders grouped stats as "Key: value, Key: value".
func joinGroups(groups []model.GroupStat, format func(float64) string) string {
	if len(groups) == 0 {
		return "no data"
	}
	parts := make([]string, len(groups))
	for i, g := range groups {
		parts[i] = fmt.Sprintf("%s: %s", g.Key, format(g.Mean))
	}
	return strings.Join(parts, ", ")
}

func renderRow(i int, r model.Record) string {
	return fmt.Sprintf("  %d. %s | %s | %s | %s | %s payment | earnings $%.2f | $%.2f/hr | success %.1f%% | rating %.1f | %.0f days | rehire %.1f%% | marketing $%.2f | %.0f jobs\n",
		i+1, r.JobCategory, r.Platform, r.ExperienceLevel, r.ClientRegion,
		r.PaymentMethod, r.EarningsUSD, r.HourlyRate, r.JobSuccessRate*100,
		r.ClientRating, r.JobDurationDays, r.RehireRate*100, r.MarketingSpend,
		r.JobsCompleted)
}

// money formats a dollar amount to 2 decimals; NaN renders as "n/a".
func money(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("$%.2f", v)
}

// percent renders a 0..1 fraction as a percentage with 1 decimal.
func percent(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", v*100)
}

// corr formats a correlation coefficient; undefined values render as "n/a".
func corr(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}
