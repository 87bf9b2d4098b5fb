// Package model defines the core domain types shared across the application.
package model

// Record is one cleaned freelancer engagement row. Every numeric field is
// guaranteed to have parsed successfully; partial records never survive
// cleaning.
type Record struct {
	PaymentMethod   string
	ClientRegion    string
	ExperienceLevel string
	JobCategory     string
	Platform        string
	EarningsUSD     float64
	HourlyRate      float64
	JobSuccessRate  float64
	ClientRating    float64
	JobDurationDays float64
	RehireRate      float64
	MarketingSpend  float64
	JobsCompleted   float64
}

// Column names as they appear in the dataset header.
const (
	ColEarningsUSD     = "Earnings_USD"
	ColHourlyRate      = "Hourly_Rate"
	ColJobSuccessRate  = "Job_Success_Rate"
	ColClientRating    = "Client_Rating"
	ColJobDurationDays = "Job_Duration_Days"
	ColRehireRate      = "Rehire_Rate"
	ColMarketingSpend  = "Marketing_Spend"
	ColJobsCompleted   = "Job_Completed"
	ColPaymentMethod   = "Payment_Method"
	ColClientRegion    = "Client_Region"
	ColExperienceLevel = "Experience_Level"
	ColJobCategory     = "Job_Category"
	ColPlatform        = "Platform"
)

// RequiredColumns lists every column a row must carry to survive cleaning.
func RequiredColumns() []string {
	return []string{
		ColEarningsUSD,
		ColPaymentMethod,
		ColClientRegion,
		ColExperienceLevel,
		ColJobCategory,
		ColPlatform,
		ColJobSuccessRate,
		ColClientRating,
		ColJobDurationDays,
		ColRehireRate,
		ColMarketingSpend,
		ColJobsCompleted,
		ColHourlyRate,
	}
}

// NumericColumns lists the columns that must coerce to float64.
func NumericColumns() []string {
	return []string{
		ColEarningsUSD,
		ColHourlyRate,
		ColJobSuccessRate,
		ColClientRating,
		ColJobDurationDays,
		ColRehireRate,
		ColMarketingSpend,
		ColJobsCompleted,
	}
}
