package models

// Result types for the seven analytical views. Groups are kept as ordered
// slices (first-encounter order in the dataset) instead of maps so output is
// stable. NaN fields mean "no data" and serialize to null.

// Share is a group's row count and its percentage of all rows.
type Share struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// RankEntry is one position in an ordered ranking.
type RankEntry struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ── crypto_payment ──────────────────────────────────────────────────────────

type EarningsStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Count  int     `json:"count"`
	Std    float64 `json:"std"`
}

type PaymentMethodStats struct {
	PaymentMethod string `json:"payment_method"`
	EarningsStats
}

// CryptoComparison holds the crypto vs everything-else split. The percent
// differences are nil when the "other" denominator is zero.
type CryptoComparison struct {
	CryptoEarnings          EarningsStats `json:"crypto_earnings"`
	OtherEarnings           EarningsStats `json:"other_earnings"`
	MeanDifferencePercent   *float64      `json:"mean_difference_percent"`
	MedianDifferencePercent *float64      `json:"median_difference_percent"`
	CryptoHigher            bool          `json:"crypto_higher"`
}

type CryptoPaymentAnalysis struct {
	CryptoVsOthers         CryptoComparison     `json:"crypto_vs_others"`
	PaymentMethodBreakdown []PaymentMethodStats `json:"payment_method_breakdown"`
	Summary                string               `json:"summary"`
}

// ── regional_income ─────────────────────────────────────────────────────────

type RegionStats struct {
	Region string  `json:"region"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Count  int     `json:"count"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

type RegionPercentiles struct {
	Region string  `json:"region"`
	P25    float64 `json:"p25"`
	P50    float64 `json:"p50"`
	P75    float64 `json:"p75"`
	P90    float64 `json:"p90"`
}

type RegionLeader struct {
	Region          string  `json:"region"`
	AverageEarnings float64 `json:"average_earnings"`
}

type RegionLeaders struct {
	HighestEarningRegion RegionLeader `json:"highest_earning_region"`
	LowestEarningRegion  RegionLeader `json:"lowest_earning_region"`
}

type EarningsRange struct {
	GlobalMin  float64 `json:"global_min"`
	GlobalMax  float64 `json:"global_max"`
	GlobalMean float64 `json:"global_mean"`
}

type RegionalIncomeAnalysis struct {
	RegionalStatistics  []RegionStats       `json:"regional_statistics"`
	RegionalPercentiles []RegionPercentiles `json:"regional_percentiles"`
	MarketLeaders       RegionLeaders       `json:"market_leaders"`
	MarketShareByRegion []Share             `json:"market_share_by_region"`
	EarningsRange       EarningsRange       `json:"earnings_range"`
}

// ── expert_projects ─────────────────────────────────────────────────────────

type ExpertProjectSummary struct {
	TotalExperts            int     `json:"total_experts"`
	ExpertsUnder100Projects int     `json:"experts_under_100_projects"`
	PercentageUnder100      float64 `json:"percentage_under_100"`
	Experts100PlusProjects  int     `json:"experts_100_plus_projects"`
}

type ProjectRangeBreakdown struct {
	Under50   int `json:"0-49"`
	From50    int `json:"50-99"`
	From100   int `json:"100-199"`
	From200Up int `json:"200+"`
}

// Total is the number of experts across all buckets.
func (b ProjectRangeBreakdown) Total() int {
	return b.Under50 + b.From50 + b.From100 + b.From200Up
}

type LevelProjectStats struct {
	ExperienceLevel string  `json:"experience_level"`
	Mean            float64 `json:"mean"`
	Median          float64 `json:"median"`
	Count           int     `json:"count"`
	Min             float64 `json:"min"`
	Max             float64 `json:"max"`
}

type ExpertPerformance struct {
	AverageEarnings     float64 `json:"average_earnings"`
	AverageHourlyRate   float64 `json:"average_hourly_rate"`
	AverageSuccessRate  float64 `json:"average_success_rate"`
	AverageClientRating float64 `json:"average_client_rating"`
}

type ExpertInsights struct {
	ExpertCompletionRate  string `json:"expert_completion_rate"`
	MostProductiveExperts int    `json:"most_productive_experts"`
}

type ExpertProjectsAnalysis struct {
	ExpertProjectAnalysis     ExpertProjectSummary  `json:"expert_project_analysis"`
	ProjectRangeBreakdown     ProjectRangeBreakdown `json:"project_range_breakdown"`
	ExperienceLevelComparison []LevelProjectStats   `json:"experience_level_comparison"`
	ExpertPerformanceMetrics  ExpertPerformance     `json:"expert_performance_metrics"`
	Insights                  ExpertInsights        `json:"insights"`
}

// ── experience_rates ────────────────────────────────────────────────────────

type ExperienceLevelStats struct {
	ExperienceLevel  string  `json:"experience_level"`
	HourlyRateMean   float64 `json:"hourly_rate_mean"`
	HourlyRateMedian float64 `json:"hourly_rate_median"`
	HourlyRateStd    float64 `json:"hourly_rate_std"`
	HourlyRateMin    float64 `json:"hourly_rate_min"`
	HourlyRateMax    float64 `json:"hourly_rate_max"`
	EarningsMean     float64 `json:"earnings_mean"`
	EarningsMedian   float64 `json:"earnings_median"`
	SuccessRateMean  float64 `json:"success_rate_mean"`
	ClientRatingMean float64 `json:"client_rating_mean"`
	FreelancerCount  int     `json:"freelancer_count"`
}

type RateProgression struct {
	ExperienceLevel string  `json:"experience_level"`
	AvgHourlyRate   float64 `json:"avg_hourly_rate"`
	AvgEarnings     float64 `json:"avg_earnings"`
	FreelancerCount int     `json:"freelancer_count"`
}

type SkillPremium struct {
	ExpertVsBeginnerRate     float64 `json:"expert_vs_beginner_rate"`
	ExpertVsIntermediateRate float64 `json:"expert_vs_intermediate_rate"`
}

type ExperienceRatesAnalysis struct {
	ExperienceStatistics []ExperienceLevelStats `json:"experience_statistics"`
	RateProgression      []RateProgression      `json:"rate_progression"`
	SkillPremium         SkillPremium           `json:"skill_premium"`
}

// ── specialization_earnings ─────────────────────────────────────────────────

type CategoryStats struct {
	Category         string  `json:"category"`
	EarningsMean     float64 `json:"earnings_mean"`
	EarningsMedian   float64 `json:"earnings_median"`
	EarningsStd      float64 `json:"earnings_std"`
	HourlyRateMean   float64 `json:"hourly_rate_mean"`
	HourlyRateMedian float64 `json:"hourly_rate_median"`
	SuccessRateMean  float64 `json:"success_rate_mean"`
	ClientRatingMean float64 `json:"client_rating_mean"`
	FreelancerCount  int     `json:"freelancer_count"`
}

type CategoryLeader struct {
	Category        string  `json:"category"`
	AverageEarnings float64 `json:"average_earnings"`
}

type CategoryLeaders struct {
	HighestPayingCategory CategoryLeader `json:"highest_paying_category"`
	LowestPayingCategory  CategoryLeader `json:"lowest_paying_category"`
}

type SpecializationAnalysis struct {
	CategoryStatistics []CategoryStats `json:"category_statistics"`
	MarketLeaders      CategoryLeaders `json:"market_leaders"`
	MarketDemand       []Share         `json:"market_demand"`
}

// ── platform_performance ────────────────────────────────────────────────────

type PlatformStats struct {
	Platform         string  `json:"platform"`
	EarningsMean     float64 `json:"earnings_mean"`
	EarningsMedian   float64 `json:"earnings_median"`
	HourlyRateMean   float64 `json:"hourly_rate_mean"`
	HourlyRateMedian float64 `json:"hourly_rate_median"`
	SuccessRateMean  float64 `json:"success_rate_mean"`
	ClientRatingMean float64 `json:"client_rating_mean"`
	RehireRateMean   float64 `json:"rehire_rate_mean"`
	FreelancerCount  int     `json:"freelancer_count"`
}

type PlatformRanking struct {
	ByEarnings    []RankEntry `json:"by_earnings"`
	BySuccessRate []RankEntry `json:"by_success_rate"`
}

type PlatformAnalysis struct {
	PlatformStatistics []PlatformStats `json:"platform_statistics"`
	MarketShare        []Share         `json:"market_share"`
	PlatformRanking    PlatformRanking `json:"platform_ranking"`
}

// ── summary ─────────────────────────────────────────────────────────────────

type DatasetOverview struct {
	TotalFreelancers   int     `json:"total_freelancers"`
	AverageEarnings    float64 `json:"average_earnings"`
	MedianEarnings     float64 `json:"median_earnings"`
	AverageHourlyRate  float64 `json:"average_hourly_rate"`
	AverageSuccessRate float64 `json:"average_success_rate"`
}

type MarketDistribution struct {
	Platforms      int `json:"platforms"`
	JobCategories  int `json:"job_categories"`
	Regions        int `json:"regions"`
	PaymentMethods int `json:"payment_methods"`
}

type TopPerformers struct {
	HighestEarner         float64 `json:"highest_earner"`
	HighestHourlyRate     float64 `json:"highest_hourly_rate"`
	MostProjectsCompleted int     `json:"most_projects_completed"`
}

type ComprehensiveSummary struct {
	DatasetOverview    DatasetOverview    `json:"dataset_overview"`
	MarketDistribution MarketDistribution `json:"market_distribution"`
	TopPerformers      TopPerformers      `json:"top_performers"`
}
