package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freelens/freelens/internal/model"
)

func rec(overrides func(*model.Record)) model.Record {
	r := model.Record{
		PaymentMethod:   "PayPal",
		ClientRegion:    "Europe",
		ExperienceLevel: "Expert",
		JobCategory:     "Web Development",
		Platform:        "Upwork",
		EarningsUSD:     1000,
		HourlyRate:      40,
		JobSuccessRate:  0.9,
		ClientRating:    4.5,
		JobDurationDays: 20,
		RehireRate:      0.5,
		MarketingSpend:  100,
		JobsCompleted:   50,
	}
	if overrides != nil {
		overrides(&r)
	}
	return r
}

func TestBuild_ExperienceGroupMeans(t *testing.T) {
	records := []model.Record{
		rec(func(r *model.Record) { r.ExperienceLevel = "Beginner"; r.EarningsUSD = 100 }),
		rec(func(r *model.Record) { r.ExperienceLevel = "Expert"; r.EarningsUSD = 300 }),
		rec(func(r *model.Record) { r.ExperienceLevel = "Expert"; r.EarningsUSD = 500 }),
	}

	bundle := Build(records)

	require.Len(t, bundle.ExperienceEarnings, 2)
	assert.Equal(t, "Beginner", bundle.ExperienceEarnings[0].Key)
	assert.InDelta(t, 100.0, bundle.ExperienceEarnings[0].Mean, 1e-9)
	assert.Equal(t, "Expert", bundle.ExperienceEarnings[1].Key)
	assert.InDelta(t, 400.0, bundle.ExperienceEarnings[1].Mean, 1e-9)
}

func TestBuild_AbsentGroupProducesNoEntry(t *testing.T) {
	records := []model.Record{
		rec(func(r *model.Record) { r.ClientRegion = "Asia" }),
	}

	bundle := Build(records)

	require.Len(t, bundle.RegionalEarnings, 1)
	assert.Equal(t, "Asia", bundle.RegionalEarnings[0].Key)
	for _, g := range bundle.RegionalEarnings {
		assert.NotEqual(t, "Europe", g.Key)
	}
}

func TestBuild_CryptoSplit(t *testing.T) {
	records := []model.Record{
		rec(func(r *model.Record) { r.PaymentMethod = "Crypto"; r.EarningsUSD = 2000 }),
		rec(func(r *model.Record) { r.PaymentMethod = "Crypto"; r.EarningsUSD = 4000 }),
		rec(func(r *model.Record) { r.PaymentMethod = "PayPal"; r.EarningsUSD = 1000 }),
	}

	bundle := Build(records)

	assert.InDelta(t, 3000.0, bundle.CryptoEarnings, 1e-9)
	assert.InDelta(t, 1000.0, bundle.NonCryptoEarnings, 1e-9)
	assert.InDelta(t, 7000.0/3, bundle.AvgEarnings, 1e-9)
}

func TestBuild_EmptyCryptoSplitIsNaN(t *testing.T) {
	records := []model.Record{
		rec(func(r *model.Record) { r.PaymentMethod = "Bank Transfer" }),
	}

	bundle := Build(records)

	assert.True(t, math.IsNaN(bundle.CryptoEarnings))
	assert.False(t, math.IsNaN(bundle.NonCryptoEarnings))
}

func TestBuild_ExpertProjectsDistribution(t *testing.T) {
	records := []model.Record{
		rec(func(r *model.Record) { r.ExperienceLevel = "Expert"; r.JobsCompleted = 10 }),
		rec(func(r *model.Record) { r.ExperienceLevel = "Expert"; r.JobsCompleted = 250 }),
		rec(func(r *model.Record) { r.ExperienceLevel = "Expert"; r.JobsCompleted = 40 }),
		rec(func(r *model.Record) { r.ExperienceLevel = "Beginner"; r.JobsCompleted = 9999 }),
	}

	bundle := Build(records)

	assert.InDelta(t, 10.0, bundle.ExpertProjects.Min, 1e-9)
	assert.InDelta(t, 250.0, bundle.ExpertProjects.Max, 1e-9)
	assert.InDelta(t, 100.0, bundle.ExpertProjects.Mean, 1e-9)
	assert.Equal(t, 3, bundle.ExpertProjects.Count)
}

func TestBuild_NoExpertsYieldsEmptyDistribution(t *testing.T) {
	records := []model.Record{
		rec(func(r *model.Record) { r.ExperienceLevel = "Beginner" }),
	}

	bundle := Build(records)
	assert.Equal(t, 0, bundle.ExpertProjects.Count)
}

func TestTopCategories(t *testing.T) {
	records := []model.Record{
		rec(func(r *model.Record) { r.JobCategory = "Writing"; r.EarningsUSD = 200 }),
		rec(func(r *model.Record) { r.JobCategory = "Design"; r.EarningsUSD = 500 }),
		rec(func(r *model.Record) { r.JobCategory = "Data Science"; r.EarningsUSD = 900 }),
		rec(func(r *model.Record) { r.JobCategory = "Marketing"; r.EarningsUSD = 500 }),
		rec(func(r *model.Record) { r.JobCategory = "Translation"; r.EarningsUSD = 100 }),
		rec(func(r *model.Record) { r.JobCategory = "Video Editing"; r.EarningsUSD = 300 }),
	}

	bundle := Build(records)
	top := TopCategories(bundle, 5)

	require.Len(t, top, 5)
	assert.Equal(t, "Data Science", top[0].Key)
	// Design and Marketing tie at 500; Design was encountered first
	assert.Equal(t, "Design", top[1].Key)
	assert.Equal(t, "Marketing", top[2].Key)
	assert.Equal(t, "Video Editing", top[3].Key)
	assert.Equal(t, "Writing", top[4].Key)
}

func TestTopCategories_FewerThanRequested(t *testing.T) {
	records := []model.Record{
		rec(func(r *model.Record) { r.JobCategory = "Writing"; r.EarningsUSD = 200 }),
		rec(func(r *model.Record) { r.JobCategory = "Design"; r.EarningsUSD = 500 }),
	}

	top := TopCategories(Build(records), 5)

	require.Len(t, top, 2)
	assert.Equal(t, "Design", top[0].Key)
	assert.Equal(t, "Writing", top[1].Key)
}

func TestPearson(t *testing.T) {
	tests := []struct {
		name    string
		x       []float64
		y       []float64
		want    float64
		wantNaN bool
	}{
		{
			name: "perfect positive correlation",
			x:    []float64{1, 2, 3, 4},
			y:    []float64{10, 20, 30, 40},
			want: 1,
		},
		{
			name: "perfect negative correlation",
			x:    []float64{1, 2, 3, 4},
			y:    []float64{40, 30, 20, 10},
			want: -1,
		},
		{
			name:    "zero variance is undefined",
			x:       []float64{5, 5, 5},
			y:       []float64{1, 2, 3},
			wantNaN: true,
		},
		{
			name:    "no records is undefined",
			x:       nil,
			y:       nil,
			wantNaN: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := make([]model.Record, len(tt.x))
			for i := range tt.x {
				xi, yi := tt.x[i], tt.y[i]
				records[i] = rec(func(r *model.Record) {
					r.ClientRating = xi
					r.EarningsUSD = yi
				})
			}

			got := Pearson(records,
				func(r model.Record) float64 { return r.ClientRating },
				func(r model.Record) float64 { return r.EarningsUSD })

			if tt.wantNaN {
				assert.True(t, math.IsNaN(got))
			} else {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestPearson_StaysInRange(t *testing.T) {
	records := []model.Record{
		rec(func(r *model.Record) { r.ClientRating = 3.1; r.EarningsUSD = 900 }),
		rec(func(r *model.Record) { r.ClientRating = 4.9; r.EarningsUSD = 150 }),
		rec(func(r *model.Record) { r.ClientRating = 4.2; r.EarningsUSD = 4800 }),
		rec(func(r *model.Record) { r.ClientRating = 2.5; r.EarningsUSD = 2300 }),
	}

	got := Pearson(records,
		func(r model.Record) float64 { return r.ClientRating },
		func(r model.Record) float64 { return r.EarningsUSD })

	assert.GreaterOrEqual(t, got, -1.0)
	assert.LessOrEqual(t, got, 1.0)
}
