package models

import "math"

// Column names of the freelancer earnings dataset.
const (
	ColFreelancerID    = "Freelancer_ID"
	ColJobCategory     = "Job_Category"
	ColPlatform        = "Platform"
	ColExperienceLevel = "Experience_Level"
	ColClientRegion    = "Client_Region"
	ColPaymentMethod   = "Payment_Method"
	ColJobCompleted    = "Job_Completed"
	ColEarningsUSD     = "Earnings_USD"
	ColHourlyRate      = "Hourly_Rate"
	ColJobSuccessRate  = "Job_Success_Rate"
	ColClientRating    = "Client_Rating"
	ColJobDurationDays = "Job_Duration_Days"
	ColProjectType     = "Project_Type"
	ColRehireRate      = "Rehire_Rate"
	ColMarketingSpend  = "Marketing_Spend"
)

// Well-known categorical values.
const (
	PaymentCrypto = "Crypto"

	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelExpert       = "Expert"
)

// RequiredColumns must all be present for any analysis to run.
var RequiredColumns = []string{
	ColFreelancerID,
	ColJobCategory,
	ColPlatform,
	ColExperienceLevel,
	ColClientRegion,
	ColPaymentMethod,
	ColJobCompleted,
	ColEarningsUSD,
	ColHourlyRate,
	ColJobSuccessRate,
	ColClientRating,
}

// CanonicalColumns is the full schema, in file order.
var CanonicalColumns = []string{
	ColFreelancerID,
	ColJobCategory,
	ColPlatform,
	ColExperienceLevel,
	ColClientRegion,
	ColPaymentMethod,
	ColJobCompleted,
	ColEarningsUSD,
	ColHourlyRate,
	ColJobSuccessRate,
	ColClientRating,
	ColJobDurationDays,
	ColProjectType,
	ColRehireRate,
	ColMarketingSpend,
}

// Freelancer is one observation from the earnings dataset.
// Missing numeric cells are NaN; missing categorical cells are "".
type Freelancer struct {
	ID              string  `json:"freelancer_id"`
	JobCategory     string  `json:"job_category"`
	Platform        string  `json:"platform"`
	ExperienceLevel string  `json:"experience_level"`
	ClientRegion    string  `json:"client_region"`
	PaymentMethod   string  `json:"payment_method"`
	JobsCompleted   float64 `json:"job_completed"`
	EarningsUSD     float64 `json:"earnings_usd"`
	HourlyRate      float64 `json:"hourly_rate"`
	JobSuccessRate  float64 `json:"job_success_rate"`
	ClientRating    float64 `json:"client_rating"`
	JobDurationDays float64 `json:"job_duration_days"`
	ProjectType     string  `json:"project_type"`
	RehireRate      float64 `json:"rehire_rate"`
	MarketingSpend  float64 `json:"marketing_spend"`
}

// Missing is the marker for an absent numeric cell.
func Missing() float64 { return math.NaN() }

// Text returns the categorical value stored under column, or "" for numeric
// or unknown columns.
func (f *Freelancer) Text(column string) string {
	switch column {
	case ColFreelancerID:
		return f.ID
	case ColJobCategory:
		return f.JobCategory
	case ColPlatform:
		return f.Platform
	case ColExperienceLevel:
		return f.ExperienceLevel
	case ColClientRegion:
		return f.ClientRegion
	case ColPaymentMethod:
		return f.PaymentMethod
	case ColProjectType:
		return f.ProjectType
	}
	return ""
}

// Number returns the numeric value stored under column, or NaN for
// categorical or unknown columns.
func (f *Freelancer) Number(column string) float64 {
	switch column {
	case ColJobCompleted:
		return f.JobsCompleted
	case ColEarningsUSD:
		return f.EarningsUSD
	case ColHourlyRate:
		return f.HourlyRate
	case ColJobSuccessRate:
		return f.JobSuccessRate
	case ColClientRating:
		return f.ClientRating
	case ColJobDurationDays:
		return f.JobDurationDays
	case ColRehireRate:
		return f.RehireRate
	case ColMarketingSpend:
		return f.MarketingSpend
	}
	return math.NaN()
}

// IsNumericColumn reports whether column holds a measure rather than a label.
func IsNumericColumn(column string) bool {
	switch column {
	case ColJobCompleted, ColEarningsUSD, ColHourlyRate, ColJobSuccessRate,
		ColClientRating, ColJobDurationDays, ColRehireRate, ColMarketingSpend:
		return true
	}
	return false
}
