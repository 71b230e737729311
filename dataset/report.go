package dataset

import (
	"sort"

	"freelancer-analyzer/models"
	"freelancer-analyzer/utils"
)

// DescribedColumns are summarised by Describe, in this order.
var DescribedColumns = []string{
	models.ColJobCompleted,
	models.ColEarningsUSD,
	models.ColHourlyRate,
	models.ColJobSuccessRate,
	models.ColClientRating,
	models.ColJobDurationDays,
	models.ColRehireRate,
	models.ColMarketingSpend,
}

// CategoricalColumns have their distinct values listed by Inspect.
var CategoricalColumns = []string{
	models.ColJobCategory,
	models.ColPlatform,
	models.ColExperienceLevel,
	models.ColClientRegion,
	models.ColPaymentMethod,
	models.ColProjectType,
}

// ColumnStats summarises one numeric column.
type ColumnStats struct {
	Column string  `json:"column"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Count  int     `json:"count"`
}

// Info describes the shape of the table.
type Info struct {
	TotalRecords       int                 `json:"total_records"`
	Columns            []string            `json:"columns"`
	DataTypes          map[string]string   `json:"data_types"`
	MissingValues      map[string]int      `json:"missing_values"`
	UniqueValues       map[string]int      `json:"unique_values"`
	CategoricalColumns map[string][]string `json:"categorical_columns"`
}

type EarningsAnomalies struct {
	ZeroEarnings          int `json:"zero_earnings"`
	NegativeEarnings      int `json:"negative_earnings"`
	ExtremelyHighEarnings int `json:"extremely_high_earnings"`
}

type RatingAnomalies struct {
	OutOfRangeRatings int `json:"out_of_range_ratings"`
}

// QualityReport counts suspicious rows. Nothing is rejected or removed.
type QualityReport struct {
	TotalRecords             int               `json:"total_records"`
	DuplicateFreelancerIDs   int               `json:"duplicate_freelancer_ids"`
	RecordsWithMissingValues int               `json:"records_with_missing_values"`
	EarningsAnomalies        EarningsAnomalies `json:"earnings_anomalies"`
	RatingAnomalies          RatingAnomalies   `json:"rating_anomalies"`
}

// Earnings above this are reported as extremely high.
const extremeEarningsUSD = 10000

// Describe returns rounded summary statistics for the numeric columns that
// are present.
func (d *Dataset) Describe() ([]ColumnStats, error) {
	if d == nil {
		return nil, ErrNotLoaded
	}

	out := make([]ColumnStats, 0, len(DescribedColumns))
	for _, name := range DescribedColumns {
		col, ok := d.table.Column(name)
		if !ok {
			continue
		}
		xs := col.Floats()
		out = append(out, ColumnStats{
			Column: name,
			Mean:   utils.Round2(utils.Mean(xs)),
			Median: utils.Round2(utils.Median(xs)),
			Std:    utils.Round2(utils.StdDev(xs)),
			Min:    utils.Round2(utils.Min(xs)),
			Max:    utils.Round2(utils.Max(xs)),
			Count:  utils.Count(xs),
		})
	}
	return out, nil
}

// Inspect reports column names, types, null and distinct counts, and the
// sorted distinct values of the categorical columns.
func (d *Dataset) Inspect() (Info, error) {
	if d == nil {
		return Info{}, ErrNotLoaded
	}

	t := d.table
	info := Info{
		TotalRecords:       t.Len(),
		Columns:            t.Columns(),
		DataTypes:          make(map[string]string, len(t.columns)),
		MissingValues:      make(map[string]int, len(t.columns)),
		UniqueValues:       make(map[string]int, len(t.columns)),
		CategoricalColumns: make(map[string][]string, len(CategoricalColumns)),
	}

	for _, col := range t.columns {
		info.DataTypes[col.Name] = string(col.Type)
		info.MissingValues[col.Name] = col.NullCount()
		info.UniqueValues[col.Name] = len(distinct(col))
	}

	for _, name := range CategoricalColumns {
		values := []string{}
		if col, ok := t.Column(name); ok {
			values = distinct(col)
			sort.Strings(values)
		}
		info.CategoricalColumns[name] = values
	}
	return info, nil
}

// CheckQuality counts duplicate ids, incomplete rows and out-of-range
// earnings and ratings.
func (d *Dataset) CheckQuality() (QualityReport, error) {
	if d == nil {
		return QualityReport{}, ErrNotLoaded
	}

	report := QualityReport{TotalRecords: d.table.Len()}

	ids := utils.NewStringSet()
	for i, rec := range d.records {
		if !ids.Add(rec.ID) {
			report.DuplicateFreelancerIDs++
		}
		if d.table.RowHasNull(i) {
			report.RecordsWithMissingValues++
		}

		switch e := rec.EarningsUSD; {
		case e == 0:
			report.EarningsAnomalies.ZeroEarnings++
		case e < 0:
			report.EarningsAnomalies.NegativeEarnings++
		case e > extremeEarningsUSD:
			report.EarningsAnomalies.ExtremelyHighEarnings++
		}

		if r := rec.ClientRating; r < 1 || r > 5 {
			report.RatingAnomalies.OutOfRangeRatings++
		}
	}
	return report, nil
}

// distinct returns the non-null values of col, first occurrence first.
func distinct(col *Column) []string {
	seen := make(map[string]struct{})
	var out []string
	for i := 0; i < col.Len(); i++ {
		if col.IsNull(i) {
			continue
		}
		k := col.key(i)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, col.Text(i))
	}
	return out
}
