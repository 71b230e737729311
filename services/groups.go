package services

import (
	"math"
	"sort"

	"freelancer-analyzer/models"
	"freelancer-analyzer/utils"
)

// group is the set of rows sharing one categorical value.
type group struct {
	key  string
	rows []*models.Freelancer
}

// groupBy partitions records by the text of column, keeping groups in
// first-encounter order. Rows with an empty key belong to no group.
func groupBy(records []models.Freelancer, column string) []group {
	index := make(map[string]int)
	var groups []group
	for i := range records {
		rec := &records[i]
		key := rec.Text(column)
		if key == "" {
			continue
		}
		gi, ok := index[key]
		if !ok {
			gi = len(groups)
			index[key] = gi
			groups = append(groups, group{key: key})
		}
		groups[gi].rows = append(groups[gi].rows, rec)
	}
	return groups
}

func filter(records []models.Freelancer, keep func(*models.Freelancer) bool) []*models.Freelancer {
	var out []*models.Freelancer
	for i := range records {
		if keep(&records[i]) {
			out = append(out, &records[i])
		}
	}
	return out
}

func pointers(records []models.Freelancer) []*models.Freelancer {
	out := make([]*models.Freelancer, len(records))
	for i := range records {
		out[i] = &records[i]
	}
	return out
}

// values extracts a numeric column; missing cells stay NaN.
func values(rows []*models.Freelancer, column string) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r.Number(column)
	}
	return out
}

func meanOf(rows []*models.Freelancer, column string) float64 {
	return utils.Round2(utils.Mean(values(rows, column)))
}

func medianOf(rows []*models.Freelancer, column string) float64 {
	return utils.Round2(utils.Median(values(rows, column)))
}

func stdOf(rows []*models.Freelancer, column string) float64 {
	return utils.Round2(utils.StdDev(values(rows, column)))
}

func minOf(rows []*models.Freelancer, column string) float64 {
	return utils.Round2(utils.Min(values(rows, column)))
}

func maxOf(rows []*models.Freelancer, column string) float64 {
	return utils.Round2(utils.Max(values(rows, column)))
}

// shares turns group sizes into percentages of total, largest group first.
// Equal counts keep encounter order.
func shares(groups []group, total int) []models.Share {
	out := make([]models.Share, len(groups))
	for i, g := range groups {
		out[i] = models.Share{
			Name:    g.key,
			Count:   len(g.rows),
			Percent: percentOf(len(g.rows), total),
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

func percentOf(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return utils.Round2(float64(part) / float64(total) * 100)
}

// percentDiff is (a-b)/b*100 rounded, or nil when b is zero or either side
// is missing.
func percentDiff(a, b float64) *float64 {
	if b == 0 || math.IsNaN(a) || math.IsNaN(b) {
		return nil
	}
	p := utils.Round2((a - b) / b * 100)
	return &p
}

// ranking orders entries by value descending; missing values sink to the
// bottom and equal values keep encounter order.
func ranking(entries []models.RankEntry) []models.RankEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Value, entries[j].Value
		if math.IsNaN(b) {
			return !math.IsNaN(a)
		}
		return a > b
	})
	return entries
}

// distinctCount counts non-empty distinct values of a categorical column.
func distinctCount(records []models.Freelancer, column string) int {
	set := utils.NewStringSet()
	for i := range records {
		if v := records[i].Text(column); v != "" {
			set.Add(v)
		}
	}
	return set.Size()
}
