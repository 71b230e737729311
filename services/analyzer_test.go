package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freelancer-analyzer/dataset"
	"freelancer-analyzer/models"
	"freelancer-analyzer/serialize"
	"freelancer-analyzer/utils"
)

const header = "Freelancer_ID,Job_Category,Platform,Experience_Level,Client_Region,Payment_Method,Job_Completed,Earnings_USD,Hourly_Rate,Job_Success_Rate,Client_Rating,Job_Duration_Days,Project_Type,Rehire_Rate,Marketing_Spend\n"

const threeRows = header +
	"FL1,Web Development,Fiverr,Expert,USA,Crypto,150,8000,95,92,4.8,30,Fixed,40,200\n" +
	"FL2,Graphic Design,Upwork,Beginner,Asia,PayPal,20,1500,20,75,4.1,10,Hourly,15,50\n" +
	"FL3,Writing,Fiverr,Intermediate,Europe,Bank Transfer,75,4500,45,88,4.5,20,Fixed,25,100\n"

const marketRows = header +
	"FL1,Web Development,Fiverr,Expert,USA,Crypto,150,8000,95,92,4.8,30,Fixed,40,200\n" +
	"FL2,Graphic Design,Upwork,Beginner,Asia,PayPal,20,1500,20,75,4.1,10,Hourly,15,50\n" +
	"FL3,Web Development,Toptal,Intermediate,Europe,Bank Transfer,75,4500,45,88,4.5,20,Fixed,25,100\n" +
	"FL4,Data Entry,Fiverr,Beginner,Asia,PayPal,5,500,12,60,3.9,3,Hourly,5,0\n" +
	"FL5,Data Entry,Upwork,Expert,USA,Crypto,300,12000,110,97,4.9,45,Fixed,70,500\n" +
	"FL6,Web Development,Upwork,Expert,Europe,Mobile Banking,40,3000,60,85,4.4,15,Hourly,30,80\n" +
	"FL7,Graphic Design,Toptal,Expert,Asia,Bank Transfer,60,2500,70,90,4.6,12,Fixed,35,60\n" +
	"FL8,Writing,Fiverr,Intermediate,Australia,Crypto,90,4000,35,80,4.2,9,Hourly,20,40\n"

func newAnalyzer(t *testing.T, csv string) *Analyzer {
	t.Helper()
	ds, err := dataset.NewLoader(utils.NewNopLogger()).LoadFromReader(strings.NewReader(csv), "test")
	require.NoError(t, err)
	a, err := NewAnalyzer(ds, utils.NewNopLogger())
	require.NoError(t, err)
	return a
}

func TestNewAnalyzerRequiresDataset(t *testing.T) {
	_, err := NewAnalyzer(nil, nil)
	assert.ErrorIs(t, err, dataset.ErrNotLoaded)
}

func TestThreeRowScenario(t *testing.T) {
	a := newAnalyzer(t, threeRows)

	crypto := a.CryptoPaymentEarnings().CryptoVsOthers
	assert.Equal(t, 1, crypto.CryptoEarnings.Count)
	assert.Equal(t, 8000.0, crypto.CryptoEarnings.Mean)
	assert.Equal(t, 2, crypto.OtherEarnings.Count)
	assert.Equal(t, 3000.0, crypto.OtherEarnings.Mean)
	assert.True(t, crypto.CryptoHigher)
	require.NotNil(t, crypto.MeanDifferencePercent)
	assert.Equal(t, 166.67, *crypto.MeanDifferencePercent)

	experts := a.ExpertProjectsCompletion()
	assert.Equal(t, 1, experts.ExpertProjectAnalysis.TotalExperts)
	assert.Equal(t, 0, experts.ExpertProjectAnalysis.ExpertsUnder100Projects)
	assert.Equal(t, 0.0, experts.ExpertProjectAnalysis.PercentageUnder100)
	assert.Equal(t, 1, experts.ProjectRangeBreakdown.From100)
	assert.Equal(t, "0.0% of experts have completed less than 100 projects", experts.Insights.ExpertCompletionRate)
}

func TestCryptoPartitionAndPercent(t *testing.T) {
	a := newAnalyzer(t, marketRows)
	r := a.CryptoPaymentEarnings()
	c := r.CryptoVsOthers

	assert.Equal(t, a.Total(), c.CryptoEarnings.Count+c.OtherEarnings.Count)
	assert.Equal(t, 8000.0, c.CryptoEarnings.Mean)
	assert.Equal(t, 2400.0, c.OtherEarnings.Mean)

	require.NotNil(t, c.MeanDifferencePercent)
	recomputed := (c.CryptoEarnings.Mean - c.OtherEarnings.Mean) / c.OtherEarnings.Mean * 100
	assert.InDelta(t, recomputed, *c.MeanDifferencePercent, 0.01)
	assert.Equal(t, "Crypto payments higher by 233.3% on average", r.Summary)

	methods := make([]string, 0, len(r.PaymentMethodBreakdown))
	for _, m := range r.PaymentMethodBreakdown {
		methods = append(methods, m.PaymentMethod)
	}
	assert.Equal(t, []string{"Crypto", "PayPal", "Bank Transfer", "Mobile Banking"}, methods)
}

func TestCryptoZeroDenominatorIsNull(t *testing.T) {
	allCrypto := header +
		"FL1,Web Development,Fiverr,Expert,USA,Crypto,150,8000,95,92,4.8,30,Fixed,40,200\n" +
		"FL2,Writing,Upwork,Beginner,Asia,Crypto,20,1500,20,75,4.1,10,Hourly,15,50\n"
	zeroOther := header +
		"FL1,Web Development,Fiverr,Expert,USA,Crypto,150,8000,95,92,4.8,30,Fixed,40,200\n" +
		"FL2,Writing,Upwork,Beginner,Asia,PayPal,20,0,20,75,4.1,10,Hourly,15,50\n"

	for name, csv := range map[string]string{"no others": allCrypto, "others earn zero": zeroOther} {
		t.Run(name, func(t *testing.T) {
			r := newAnalyzer(t, csv).CryptoPaymentEarnings()
			assert.Nil(t, r.CryptoVsOthers.MeanDifferencePercent)
			assert.Nil(t, r.CryptoVsOthers.MedianDifferencePercent)
			assert.Contains(t, r.Summary, "undefined")

			out, err := serialize.ToJSON(r, "")
			require.NoError(t, err)
			assert.Contains(t, string(out), `"mean_difference_percent":null`)
		})
	}
}

func TestRegionalIncomeDistribution(t *testing.T) {
	r := newAnalyzer(t, marketRows).RegionalIncomeDistribution()

	require.Len(t, r.RegionalStatistics, 4)
	assert.Equal(t, "USA", r.RegionalStatistics[0].Region)
	assert.Equal(t, 10000.0, r.RegionalStatistics[0].Mean)

	asia := r.RegionalPercentiles[1]
	assert.Equal(t, "Asia", asia.Region)
	assert.Equal(t, 1000.0, asia.P25)
	assert.Equal(t, 1500.0, asia.P50)
	assert.Equal(t, 2000.0, asia.P75)
	assert.Equal(t, 2300.0, asia.P90)

	assert.Equal(t, models.RegionLeader{Region: "USA", AverageEarnings: 10000}, r.MarketLeaders.HighestEarningRegion)
	assert.Equal(t, models.RegionLeader{Region: "Asia", AverageEarnings: 1500}, r.MarketLeaders.LowestEarningRegion)

	var total float64
	for _, s := range r.MarketShareByRegion {
		total += s.Percent
	}
	assert.InDelta(t, 100, total, 0.05)
	assert.Equal(t, "Asia", r.MarketShareByRegion[0].Name)
	assert.Equal(t, 37.5, r.MarketShareByRegion[0].Percent)

	assert.Equal(t, models.EarningsRange{GlobalMin: 500, GlobalMax: 12000, GlobalMean: 4500}, r.EarningsRange)
}

func TestRegionalTieBreaksOnFirstEncounter(t *testing.T) {
	csv := header +
		"FL1,Writing,Fiverr,Expert,North,PayPal,10,100,20,90,4.5,5,Fixed,10,0\n" +
		"FL2,Writing,Fiverr,Expert,South,PayPal,10,100,20,90,4.5,5,Fixed,10,0\n"
	r := newAnalyzer(t, csv).RegionalIncomeDistribution()

	assert.Equal(t, "North", r.MarketLeaders.HighestEarningRegion.Region)
	assert.Equal(t, "North", r.MarketLeaders.LowestEarningRegion.Region)
}

func TestExpertBucketsSumToTotal(t *testing.T) {
	r := newAnalyzer(t, marketRows).ExpertProjectsCompletion()

	s := r.ExpertProjectAnalysis
	assert.Equal(t, 4, s.TotalExperts)
	assert.Equal(t, 2, s.ExpertsUnder100Projects)
	assert.Equal(t, 2, s.Experts100PlusProjects)
	assert.Equal(t, 50.0, s.PercentageUnder100)
	assert.Equal(t, s.TotalExperts, r.ProjectRangeBreakdown.Total())
	assert.Equal(t, models.ProjectRangeBreakdown{Under50: 1, From50: 1, From100: 1, From200Up: 1}, r.ProjectRangeBreakdown)
	assert.Equal(t, 1, r.Insights.MostProductiveExperts)
	assert.Equal(t, "50.0% of experts have completed less than 100 projects", r.Insights.ExpertCompletionRate)
	assert.Len(t, r.ExperienceLevelComparison, 3)
}

func TestExpertsAbsent(t *testing.T) {
	csv := header + "FL1,Writing,Fiverr,Beginner,North,PayPal,10,100,20,90,4.5,5,Fixed,10,0\n"
	r := newAnalyzer(t, csv).ExpertProjectsCompletion()

	assert.Equal(t, 0, r.ExpertProjectAnalysis.TotalExperts)
	assert.Equal(t, 0.0, r.ExpertProjectAnalysis.PercentageUnder100)

	out, err := serialize.ToJSON(r.ExpertPerformanceMetrics, "")
	require.NoError(t, err)
	assert.Equal(t, `{"average_earnings":null,"average_hourly_rate":null,"average_success_rate":null,"average_client_rating":null}`, string(out))
}

func TestExperienceVsRates(t *testing.T) {
	r := newAnalyzer(t, marketRows).ExperienceVsRates()

	require.Len(t, r.RateProgression, 3)
	assert.Equal(t, models.RateProgression{ExperienceLevel: "Beginner", AvgHourlyRate: 16, AvgEarnings: 1000, FreelancerCount: 2}, r.RateProgression[0])
	assert.Equal(t, 83.75, r.ExperienceStatistics[2].HourlyRateMean)
	assert.Equal(t, 67.75, r.SkillPremium.ExpertVsBeginnerRate)
	assert.Equal(t, 43.75, r.SkillPremium.ExpertVsIntermediateRate)
}

func TestSkillPremiumTreatsMissingLevelAsZero(t *testing.T) {
	csv := header + "FL1,Writing,Fiverr,Expert,North,PayPal,10,100,50,90,4.5,5,Fixed,10,0\n"
	r := newAnalyzer(t, csv).ExperienceVsRates()

	assert.Len(t, r.ExperienceStatistics, 1)
	assert.Equal(t, 50.0, r.SkillPremium.ExpertVsBeginnerRate)
	assert.Equal(t, 50.0, r.SkillPremium.ExpertVsIntermediateRate)
}

func TestSpecializationEarnings(t *testing.T) {
	r := newAnalyzer(t, marketRows).SpecializationEarnings()

	require.Len(t, r.CategoryStatistics, 4)
	assert.Equal(t, 5166.67, r.CategoryStatistics[0].EarningsMean)
	assert.Equal(t, models.CategoryLeader{Category: "Data Entry", AverageEarnings: 6250}, r.MarketLeaders.HighestPayingCategory)
	assert.Equal(t, models.CategoryLeader{Category: "Graphic Design", AverageEarnings: 2000}, r.MarketLeaders.LowestPayingCategory)

	names := make([]string, len(r.MarketDemand))
	for i, s := range r.MarketDemand {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"Web Development", "Graphic Design", "Data Entry", "Writing"}, names)
	assert.Equal(t, 37.5, r.MarketDemand[0].Percent)
}

func TestPlatformPerformance(t *testing.T) {
	r := newAnalyzer(t, marketRows).PlatformPerformance()

	require.Len(t, r.PlatformStatistics, 3)
	assert.Equal(t, "Fiverr", r.PlatformStatistics[0].Platform)
	assert.Equal(t, 4166.67, r.PlatformStatistics[0].EarningsMean)
	assert.Equal(t, 21.67, r.PlatformStatistics[0].RehireRateMean)

	assert.Equal(t, []models.RankEntry{
		{Name: "Upwork", Value: 5500},
		{Name: "Fiverr", Value: 4166.67},
		{Name: "Toptal", Value: 3500},
	}, r.PlatformRanking.ByEarnings)
	assert.Equal(t, "Toptal", r.PlatformRanking.BySuccessRate[0].Name)
	assert.Equal(t, "Fiverr", r.PlatformRanking.BySuccessRate[2].Name)

	var total float64
	for _, s := range r.MarketShare {
		total += s.Percent
	}
	assert.InDelta(t, 100, total, 0.05)
}

func TestComprehensiveSummary(t *testing.T) {
	r := newAnalyzer(t, marketRows).ComprehensiveSummary()

	assert.Equal(t, models.DatasetOverview{
		TotalFreelancers:   8,
		AverageEarnings:    4500,
		MedianEarnings:     3500,
		AverageHourlyRate:  55.88,
		AverageSuccessRate: 83.38,
	}, r.DatasetOverview)
	assert.Equal(t, models.MarketDistribution{Platforms: 3, JobCategories: 4, Regions: 4, PaymentMethods: 4}, r.MarketDistribution)
	assert.Equal(t, models.TopPerformers{HighestEarner: 12000, HighestHourlyRate: 110, MostProjectsCompleted: 300}, r.TopPerformers)
}

func TestRunIsIdempotent(t *testing.T) {
	a := newAnalyzer(t, marketRows)

	for _, kind := range AllKinds {
		first, err := a.Run(kind)
		require.NoError(t, err)
		second, err := a.Run(kind)
		require.NoError(t, err)

		x, err := serialize.ToJSON(first, "")
		require.NoError(t, err)
		y, err := serialize.ToJSON(second, "")
		require.NoError(t, err)
		assert.Equal(t, string(x), string(y), "kind %s", kind)
	}
}

func TestRunUnknownKind(t *testing.T) {
	a := newAnalyzer(t, threeRows)
	_, err := a.Run(AnalysisKind("weather"))
	assert.ErrorIs(t, err, ErrUnknownAnalysis)

	_, err = ParseAnalysisKind("weather")
	assert.ErrorIs(t, err, ErrUnknownAnalysis)
	kind, err := ParseAnalysisKind("summary")
	require.NoError(t, err)
	assert.Equal(t, KindSummary, kind)
}

func TestMeanEarningsBy(t *testing.T) {
	a := newAnalyzer(t, threeRows)

	labels, means := a.MeanEarningsBy(models.ColPlatform)
	assert.Equal(t, []string{"Fiverr", "Upwork"}, labels)
	assert.Equal(t, []float64{6250, 1500}, means)

	labels, means = a.MeanEarningsBy("No_Such_Column")
	assert.Empty(t, labels)
	assert.Empty(t, means)
}
