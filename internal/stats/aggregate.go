// Package stats computes the aggregate snapshot over cleaned records:
// grouped means, a completed-jobs distribution, and two Pearson correlations.
package stats

import (
	"math"
	"sort"

	"github.com/freelens/freelens/internal/model"
)

// Categorical values with dedicated statistics.
const (
	CryptoPayment = "Crypto"
	ExpertTier    = "Expert"
)

// Build computes the full StatsBundle in one pass over the records. The
// result is a value type; callers treat it as immutable.
func Build(records []model.Record) model.StatsBundle {
	earnings := func(r model.Record) float64 { return r.EarningsUSD }

	return model.StatsBundle{
		AvgEarnings: mean(records, nil, earnings),
		CryptoEarnings: mean(records, func(r model.Record) bool {
			return r.PaymentMethod == CryptoPayment
		}, earnings),
		NonCryptoEarnings: mean(records, func(r model.Record) bool {
			return r.PaymentMethod != CryptoPayment
		}, earnings),
		RegionalEarnings: groupMeans(records, func(r model.Record) string {
			return r.ClientRegion
		}, earnings),
		ExperienceEarnings: groupMeans(records, func(r model.Record) string {
			return r.ExperienceLevel
		}, earnings),
		CategoryEarnings: groupMeans(records, func(r model.Record) string {
			return r.JobCategory
		}, earnings),
		PlatformSuccess: groupMeans(records, func(r model.Record) string {
			return r.Platform
		}, func(r model.Record) float64 { return r.JobSuccessRate }),
		RehireByExperience: groupMeans(records, func(r model.Record) string {
			return r.ExperienceLevel
		}, func(r model.Record) float64 { return r.RehireRate }),
		ExpertProjects: distribution(records, func(r model.Record) bool {
			return r.ExperienceLevel == ExpertTier
		}, func(r model.Record) float64 { return r.JobsCompleted }),
		RatingVsEarnings: Pearson(records,
			func(r model.Record) float64 { return r.ClientRating },
			earnings),
		DurationVsRating: Pearson(records,
			func(r model.Record) float64 { return r.JobDurationDays },
			func(r model.Record) float64 { return r.ClientRating }),
		RecordCount: len(records),
	}
}

// TopCategories returns the n highest-earning categories, descending by mean.
// Ties keep their first-encounter order. Fewer than n categories returns all
// of them, still sorted.
func TopCategories(bundle model.StatsBundle, n int) []model.GroupStat {
	top := make([]model.GroupStat, len(bundle.CategoryEarnings))
	copy(top, bundle.CategoryEarnings)

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Mean > top[j].Mean
	})

	if n > 0 && len(top) > n {
		top = top[:n]
	}
	return top
}

// mean computes the arithmetic mean of value over records matching filter.
// A nil filter matches everything. An empty selection yields NaN, the marker
// for an undefined statistic.
func mean(records []model.Record, filter func(model.Record) bool, value func(model.Record) float64) float64 {
	var sum float64
	var n int
	for _, r := range records {
		if filter != nil && !filter(r) {
			continue
		}
		sum += value(r)
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// groupMeans partitions records by key and averages value per partition.
// Groups appear in first-encounter order; keys with no rows are absent.
func groupMeans(records []model.Record, key func(model.Record) string, value func(model.Record) float64) []model.GroupStat {
	type acc struct {
		sum float64
		n   int
	}
	sums := make(map[string]*acc)
	var order []string

	for _, r := range records {
		k := key(r)
		a, ok := sums[k]
		if !ok {
			a = &acc{}
			sums[k] = a
			order = append(order, k)
		}
		a.sum += value(r)
		a.n++
	}

	groups := make([]model.GroupStat, 0, len(order))
	for _, k := range order {
		a := sums[k]
		groups = append(groups, model.GroupStat{
			Key:   k,
			Mean:  a.sum / float64(a.n),
			Count: a.n,
		})
	}
	return groups
}

// distribution summarizes value over the records matching filter.
func distribution(records []model.Record, filter func(model.Record) bool, value func(model.Record) float64) model.Distribution {
	var d model.Distribution
	for _, r := range records {
		if !filter(r) {
			continue
		}
		v := value(r)
		if d.Count == 0 || v < d.Min {
			d.Min = v
		}
		if d.Count == 0 || v > d.Max {
			d.Max = v
		}
		d.Mean += v
		d.Count++
	}
	if d.Count > 0 {
		d.Mean /= float64(d.Count)
	}
	return d
}

// Pearson computes the ordinary Pearson correlation coefficient between two
// numeric columns over all records. Zero variance in either column makes the
// coefficient undefined; that propagates as NaN rather than a crash.
func Pearson(records []model.Record, x, y func(model.Record) float64) float64 {
	n := float64(len(records))
	if n == 0 {
		return math.NaN()
	}

	var sumX, sumY float64
	for _, r := range records {
		sumX += x(r)
		sumY += y(r)
	}
	meanX := sumX / n
	meanY := sumY / n

	var cov, varX, varY float64
	for _, r := range records {
		dx := x(r) - meanX
		dy := y(r) - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(varX*varY)
}
