package model

// GroupStat is the mean of a numeric column for one categorical key.
type GroupStat struct {
	Key   string
	Mean  float64
	Count int
}

// Distribution summarizes the spread of a numeric column.
type Distribution struct {
	Min   float64
	Max   float64
	Mean  float64
	Count int
}

// StatsBundle is the precomputed aggregate snapshot derived from the cleaned
// record set. It is built once after loading and never mutated.
//
// Grouped stats are ordered slices rather than maps: entries appear in the
// order their key was first encountered in the dataset, so rendering is
// deterministic. Keys with no matching rows are simply absent.
type StatsBundle struct {
	AvgEarnings        float64
	CryptoEarnings     float64 // NaN when no crypto-paid rows exist
	NonCryptoEarnings  float64 // NaN when every row is crypto-paid
	RegionalEarnings   []GroupStat
	ExperienceEarnings []GroupStat
	CategoryEarnings   []GroupStat
	PlatformSuccess    []GroupStat
	RehireByExperience []GroupStat
	ExpertProjects     Distribution
	RatingVsEarnings   float64 // Pearson; NaN on zero variance
	DurationVsRating   float64 // Pearson; NaN on zero variance
	RecordCount        int
}
