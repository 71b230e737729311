package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"freelancer-analyzer/dataset"
	"freelancer-analyzer/models"
	"freelancer-analyzer/utils"
)

// AnalysisKind names one of the fixed analytical views.
type AnalysisKind string

const (
	KindCryptoPayment          AnalysisKind = "crypto_payment"
	KindRegionalIncome         AnalysisKind = "regional_income"
	KindExpertProjects         AnalysisKind = "expert_projects"
	KindExperienceRates        AnalysisKind = "experience_rates"
	KindSpecializationEarnings AnalysisKind = "specialization_earnings"
	KindPlatformPerformance    AnalysisKind = "platform_performance"
	KindSummary                AnalysisKind = "summary"
)

// AllKinds lists every view in display order.
var AllKinds = []AnalysisKind{
	KindCryptoPayment,
	KindRegionalIncome,
	KindExpertProjects,
	KindExperienceRates,
	KindSpecializationEarnings,
	KindPlatformPerformance,
	KindSummary,
}

// ErrUnknownAnalysis is returned for a kind outside AllKinds.
var ErrUnknownAnalysis = errors.New("unknown analysis")

// ParseAnalysisKind validates a view name.
func ParseAnalysisKind(s string) (AnalysisKind, error) {
	for _, k := range AllKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAnalysis, s)
}

// Thresholds used by the expert project breakdown.
const (
	projectsThreshold = 100
	prolificThreshold = 200
)

// Analyzer computes the analytical views over a loaded dataset. It never
// modifies the records and is safe for concurrent use.
type Analyzer struct {
	records []models.Freelancer
	logger  *utils.Logger
}

// NewAnalyzer binds an Analyzer to ds.
func NewAnalyzer(ds *dataset.Dataset, logger *utils.Logger) (*Analyzer, error) {
	records, err := ds.Records()
	if err != nil {
		return nil, fmt.Errorf("analyzer: %w", err)
	}
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &Analyzer{records: records, logger: logger}, nil
}

// Total is the number of records analysed.
func (a *Analyzer) Total() int { return len(a.records) }

// Run executes the view named by kind.
func (a *Analyzer) Run(kind AnalysisKind) (any, error) {
	a.logger.Debug("[analyzer] Running %s", kind)
	switch kind {
	case KindCryptoPayment:
		return a.CryptoPaymentEarnings(), nil
	case KindRegionalIncome:
		return a.RegionalIncomeDistribution(), nil
	case KindExpertProjects:
		return a.ExpertProjectsCompletion(), nil
	case KindExperienceRates:
		return a.ExperienceVsRates(), nil
	case KindSpecializationEarnings:
		return a.SpecializationEarnings(), nil
	case KindPlatformPerformance:
		return a.PlatformPerformance(), nil
	case KindSummary:
		return a.ComprehensiveSummary(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAnalysis, kind)
}

// MeanEarningsBy returns the rounded mean earnings for every value of a
// categorical column, in first-encounter order.
func (a *Analyzer) MeanEarningsBy(column string) ([]string, []float64) {
	groups := groupBy(a.records, column)
	labels := make([]string, len(groups))
	means := make([]float64, len(groups))
	for i, g := range groups {
		labels[i] = g.key
		means[i] = meanOf(g.rows, models.ColEarningsUSD)
	}
	return labels, means
}

func earningsStats(rows []*models.Freelancer) models.EarningsStats {
	return models.EarningsStats{
		Mean:   meanOf(rows, models.ColEarningsUSD),
		Median: medianOf(rows, models.ColEarningsUSD),
		Count:  len(rows),
		Std:    stdOf(rows, models.ColEarningsUSD),
	}
}

// CryptoPaymentEarnings compares crypto-paid earnings with every other
// payment method.
func (a *Analyzer) CryptoPaymentEarnings() *models.CryptoPaymentAnalysis {
	isCrypto := func(f *models.Freelancer) bool { return f.PaymentMethod == models.PaymentCrypto }
	crypto := earningsStats(filter(a.records, isCrypto))
	other := earningsStats(filter(a.records, func(f *models.Freelancer) bool { return !isCrypto(f) }))

	meanPct := percentDiff(crypto.Mean, other.Mean)
	result := &models.CryptoPaymentAnalysis{
		CryptoVsOthers: models.CryptoComparison{
			CryptoEarnings:          crypto,
			OtherEarnings:           other,
			MeanDifferencePercent:   meanPct,
			MedianDifferencePercent: percentDiff(crypto.Median, other.Median),
			CryptoHigher:            crypto.Mean > other.Mean,
		},
		PaymentMethodBreakdown: []models.PaymentMethodStats{},
	}

	for _, g := range groupBy(a.records, models.ColPaymentMethod) {
		stats := earningsStats(g.rows)
		stats.Count = utils.Count(values(g.rows, models.ColEarningsUSD))
		result.PaymentMethodBreakdown = append(result.PaymentMethodBreakdown, models.PaymentMethodStats{
			PaymentMethod: g.key,
			EarningsStats: stats,
		})
	}

	if meanPct == nil {
		result.Summary = "Crypto payments difference undefined: no earnings from other payment methods to compare against"
	} else {
		direction := "lower"
		if *meanPct > 0 {
			direction = "higher"
		}
		result.Summary = fmt.Sprintf("Crypto payments %s by %.1f%% on average", direction, math.Abs(*meanPct))
	}
	return result
}

// RegionalIncomeDistribution summarises earnings per client region.
func (a *Analyzer) RegionalIncomeDistribution() *models.RegionalIncomeAnalysis {
	groups := groupBy(a.records, models.ColClientRegion)
	result := &models.RegionalIncomeAnalysis{
		RegionalStatistics:  make([]models.RegionStats, 0, len(groups)),
		RegionalPercentiles: make([]models.RegionPercentiles, 0, len(groups)),
		MarketShareByRegion: shares(groups, len(a.records)),
	}

	highest := models.RegionLeader{AverageEarnings: math.NaN()}
	lowest := models.RegionLeader{AverageEarnings: math.NaN()}

	for _, g := range groups {
		earnings := values(g.rows, models.ColEarningsUSD)
		mean := utils.Round2(utils.Mean(earnings))
		result.RegionalStatistics = append(result.RegionalStatistics, models.RegionStats{
			Region: g.key,
			Mean:   mean,
			Median: utils.Round2(utils.Median(earnings)),
			Count:  utils.Count(earnings),
			Std:    utils.Round2(utils.StdDev(earnings)),
			Min:    utils.Round2(utils.Min(earnings)),
			Max:    utils.Round2(utils.Max(earnings)),
		})
		result.RegionalPercentiles = append(result.RegionalPercentiles, models.RegionPercentiles{
			Region: g.key,
			P25:    utils.Round2(utils.Percentile(earnings, 25)),
			P50:    utils.Round2(utils.Percentile(earnings, 50)),
			P75:    utils.Round2(utils.Percentile(earnings, 75)),
			P90:    utils.Round2(utils.Percentile(earnings, 90)),
		})

		if math.IsNaN(mean) {
			continue
		}
		if math.IsNaN(highest.AverageEarnings) || mean > highest.AverageEarnings {
			highest = models.RegionLeader{Region: g.key, AverageEarnings: mean}
		}
		if math.IsNaN(lowest.AverageEarnings) || mean < lowest.AverageEarnings {
			lowest = models.RegionLeader{Region: g.key, AverageEarnings: mean}
		}
	}
	result.MarketLeaders = models.RegionLeaders{HighestEarningRegion: highest, LowestEarningRegion: lowest}

	all := pointers(a.records)
	result.EarningsRange = models.EarningsRange{
		GlobalMin:  minOf(all, models.ColEarningsUSD),
		GlobalMax:  maxOf(all, models.ColEarningsUSD),
		GlobalMean: meanOf(all, models.ColEarningsUSD),
	}
	return result
}

// ExpertProjectsCompletion breaks down completed jobs for expert-level
// freelancers and compares them with the other levels.
func (a *Analyzer) ExpertProjectsCompletion() *models.ExpertProjectsAnalysis {
	experts := filter(a.records, func(f *models.Freelancer) bool {
		return f.ExperienceLevel == models.LevelExpert
	})

	var summary models.ExpertProjectSummary
	var buckets models.ProjectRangeBreakdown
	summary.TotalExperts = len(experts)
	for _, e := range experts {
		jobs := e.JobsCompleted
		switch {
		case jobs < 50:
			buckets.Under50++
		case jobs < projectsThreshold:
			buckets.From50++
		case jobs < prolificThreshold:
			buckets.From100++
		case jobs >= prolificThreshold:
			buckets.From200Up++
		}
		switch {
		case jobs < projectsThreshold:
			summary.ExpertsUnder100Projects++
		case jobs >= projectsThreshold:
			summary.Experts100PlusProjects++
		}
	}
	summary.PercentageUnder100 = percentOf(summary.ExpertsUnder100Projects, summary.TotalExperts)

	levels := groupBy(a.records, models.ColExperienceLevel)
	comparison := make([]models.LevelProjectStats, 0, len(levels))
	for _, g := range levels {
		comparison = append(comparison, models.LevelProjectStats{
			ExperienceLevel: g.key,
			Mean:            meanOf(g.rows, models.ColJobCompleted),
			Median:          medianOf(g.rows, models.ColJobCompleted),
			Count:           utils.Count(values(g.rows, models.ColJobCompleted)),
			Min:             minOf(g.rows, models.ColJobCompleted),
			Max:             maxOf(g.rows, models.ColJobCompleted),
		})
	}

	return &models.ExpertProjectsAnalysis{
		ExpertProjectAnalysis:     summary,
		ProjectRangeBreakdown:     buckets,
		ExperienceLevelComparison: comparison,
		ExpertPerformanceMetrics: models.ExpertPerformance{
			AverageEarnings:     meanOf(experts, models.ColEarningsUSD),
			AverageHourlyRate:   meanOf(experts, models.ColHourlyRate),
			AverageSuccessRate:  meanOf(experts, models.ColJobSuccessRate),
			AverageClientRating: meanOf(experts, models.ColClientRating),
		},
		Insights: models.ExpertInsights{
			ExpertCompletionRate: fmt.Sprintf("%s%% of experts have completed less than %d projects",
				formatPercent(summary.PercentageUnder100), projectsThreshold),
			MostProductiveExperts: buckets.From200Up,
		},
	}
}

// ExperienceVsRates relates experience level to hourly rates and earnings.
func (a *Analyzer) ExperienceVsRates() *models.ExperienceRatesAnalysis {
	result := &models.ExperienceRatesAnalysis{
		ExperienceStatistics: []models.ExperienceLevelStats{},
		RateProgression:      []models.RateProgression{},
	}
	avgRate := make(map[string]float64, 3)

	for _, level := range []string{models.LevelBeginner, models.LevelIntermediate, models.LevelExpert} {
		rows := filter(a.records, func(f *models.Freelancer) bool { return f.ExperienceLevel == level })
		if len(rows) == 0 {
			continue
		}

		rate := meanOf(rows, models.ColHourlyRate)
		earnings := meanOf(rows, models.ColEarningsUSD)
		avgRate[level] = rate

		result.ExperienceStatistics = append(result.ExperienceStatistics, models.ExperienceLevelStats{
			ExperienceLevel:  level,
			HourlyRateMean:   rate,
			HourlyRateMedian: medianOf(rows, models.ColHourlyRate),
			HourlyRateStd:    stdOf(rows, models.ColHourlyRate),
			HourlyRateMin:    minOf(rows, models.ColHourlyRate),
			HourlyRateMax:    maxOf(rows, models.ColHourlyRate),
			EarningsMean:     earnings,
			EarningsMedian:   medianOf(rows, models.ColEarningsUSD),
			SuccessRateMean:  meanOf(rows, models.ColJobSuccessRate),
			ClientRatingMean: meanOf(rows, models.ColClientRating),
			FreelancerCount:  len(rows),
		})
		result.RateProgression = append(result.RateProgression, models.RateProgression{
			ExperienceLevel: level,
			AvgHourlyRate:   rate,
			AvgEarnings:     earnings,
			FreelancerCount: len(rows),
		})
	}

	// absent levels count as zero
	result.SkillPremium = models.SkillPremium{
		ExpertVsBeginnerRate:     utils.Round2(avgRate[models.LevelExpert] - avgRate[models.LevelBeginner]),
		ExpertVsIntermediateRate: utils.Round2(avgRate[models.LevelExpert] - avgRate[models.LevelIntermediate]),
	}
	return result
}

// SpecializationEarnings compares job categories by pay and demand.
func (a *Analyzer) SpecializationEarnings() *models.SpecializationAnalysis {
	groups := groupBy(a.records, models.ColJobCategory)
	result := &models.SpecializationAnalysis{
		CategoryStatistics: make([]models.CategoryStats, 0, len(groups)),
		MarketDemand:       shares(groups, len(a.records)),
	}

	var highest, lowest *models.CategoryLeader
	var highestRaw, lowestRaw float64
	for _, g := range groups {
		result.CategoryStatistics = append(result.CategoryStatistics, models.CategoryStats{
			Category:         g.key,
			EarningsMean:     meanOf(g.rows, models.ColEarningsUSD),
			EarningsMedian:   medianOf(g.rows, models.ColEarningsUSD),
			EarningsStd:      stdOf(g.rows, models.ColEarningsUSD),
			HourlyRateMean:   meanOf(g.rows, models.ColHourlyRate),
			HourlyRateMedian: medianOf(g.rows, models.ColHourlyRate),
			SuccessRateMean:  meanOf(g.rows, models.ColJobSuccessRate),
			ClientRatingMean: meanOf(g.rows, models.ColClientRating),
			FreelancerCount:  len(g.rows),
		})

		raw := utils.Mean(values(g.rows, models.ColEarningsUSD))
		if math.IsNaN(raw) {
			continue
		}
		leader := models.CategoryLeader{Category: g.key, AverageEarnings: utils.Round2(raw)}
		if highest == nil || raw > highestRaw {
			highest, highestRaw = &leader, raw
		}
		if lowest == nil || raw < lowestRaw {
			lowest, lowestRaw = &leader, raw
		}
	}

	if highest != nil {
		result.MarketLeaders.HighestPayingCategory = *highest
	}
	if lowest != nil {
		result.MarketLeaders.LowestPayingCategory = *lowest
	}
	return result
}

// PlatformPerformance compares freelancing platforms.
func (a *Analyzer) PlatformPerformance() *models.PlatformAnalysis {
	groups := groupBy(a.records, models.ColPlatform)
	result := &models.PlatformAnalysis{
		PlatformStatistics: make([]models.PlatformStats, 0, len(groups)),
		MarketShare:        shares(groups, len(a.records)),
	}

	byEarnings := make([]models.RankEntry, 0, len(groups))
	bySuccess := make([]models.RankEntry, 0, len(groups))
	for _, g := range groups {
		stats := models.PlatformStats{
			Platform:         g.key,
			EarningsMean:     meanOf(g.rows, models.ColEarningsUSD),
			EarningsMedian:   medianOf(g.rows, models.ColEarningsUSD),
			HourlyRateMean:   meanOf(g.rows, models.ColHourlyRate),
			HourlyRateMedian: medianOf(g.rows, models.ColHourlyRate),
			SuccessRateMean:  meanOf(g.rows, models.ColJobSuccessRate),
			ClientRatingMean: meanOf(g.rows, models.ColClientRating),
			RehireRateMean:   meanOf(g.rows, models.ColRehireRate),
			FreelancerCount:  len(g.rows),
		}
		result.PlatformStatistics = append(result.PlatformStatistics, stats)
		byEarnings = append(byEarnings, models.RankEntry{Name: g.key, Value: stats.EarningsMean})
		bySuccess = append(bySuccess, models.RankEntry{Name: g.key, Value: stats.SuccessRateMean})
	}

	result.PlatformRanking = models.PlatformRanking{
		ByEarnings:    ranking(byEarnings),
		BySuccessRate: ranking(bySuccess),
	}
	return result
}

// ComprehensiveSummary gives the headline numbers of the whole dataset.
func (a *Analyzer) ComprehensiveSummary() *models.ComprehensiveSummary {
	all := pointers(a.records)

	mostJobs := utils.Max(values(all, models.ColJobCompleted))
	if math.IsNaN(mostJobs) {
		mostJobs = 0
	}

	return &models.ComprehensiveSummary{
		DatasetOverview: models.DatasetOverview{
			TotalFreelancers:   len(a.records),
			AverageEarnings:    meanOf(all, models.ColEarningsUSD),
			MedianEarnings:     medianOf(all, models.ColEarningsUSD),
			AverageHourlyRate:  meanOf(all, models.ColHourlyRate),
			AverageSuccessRate: meanOf(all, models.ColJobSuccessRate),
		},
		MarketDistribution: models.MarketDistribution{
			Platforms:      distinctCount(a.records, models.ColPlatform),
			JobCategories:  distinctCount(a.records, models.ColJobCategory),
			Regions:        distinctCount(a.records, models.ColClientRegion),
			PaymentMethods: distinctCount(a.records, models.ColPaymentMethod),
		},
		TopPerformers: models.TopPerformers{
			HighestEarner:         maxOf(all, models.ColEarningsUSD),
			HighestHourlyRate:     maxOf(all, models.ColHourlyRate),
			MostProjectsCompleted: int(mostJobs),
		},
	}
}

// formatPercent prints whole numbers with one decimal ("0.0", "50.0") and
// keeps other values as they are ("33.33").
func formatPercent(p float64) string {
	if p == math.Trunc(p) {
		return strconv.FormatFloat(p, 'f', 1, 64)
	}
	return strconv.FormatFloat(p, 'f', -1, 64)
}
