// Package dataset loads the freelancer earnings table and reports on its
// contents and quality.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"freelancer-analyzer/models"
	"freelancer-analyzer/utils"
)

// Dataset is a successfully loaded, validated table together with its
// typed records. It can only be obtained from a Loader, so holding one
// means the data is loaded.
type Dataset struct {
	source  string
	table   *Table
	records []models.Freelancer
}

// Loader reads datasets from CSV files, readers or record slices.
type Loader struct {
	logger *utils.Logger
}

// NewLoader creates a Loader with the given logger.
func NewLoader(logger *utils.Logger) *Loader {
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &Loader{logger: logger}
}

// Load reads and validates the CSV file at path.
func (l *Loader) Load(path string) (*Dataset, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("dataset: %w: %s", ErrNotFound, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()

	return l.LoadFromReader(f, path)
}

// LoadFromReader parses CSV from r. source names the data in logs and errors.
func (l *Loader) LoadFromReader(r io.Reader, source string) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("dataset: %s: %w", source, ErrEmptyData)
	}
	if err != nil {
		return nil, fmt.Errorf("dataset: read header of %s: %w", source, err)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: read %s: %w", source, err)
		}
		if len(row) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("dataset: %s line %d: expected %d fields, saw %d",
				source, line, len(header), len(row))
		}
		rows = append(rows, row)
	}

	return l.build(source, header, rows)
}

// FromRecords builds a Dataset from already typed records, using the
// canonical column set.
func (l *Loader) FromRecords(records []models.Freelancer, source string) (*Dataset, error) {
	rows := make([][]string, len(records))
	for i := range records {
		rec := &records[i]
		row := make([]string, len(models.CanonicalColumns))
		for ci, col := range models.CanonicalColumns {
			if models.IsNumericColumn(col) {
				row[ci] = formatNumber(rec.Number(col))
			} else {
				row[ci] = rec.Text(col)
			}
		}
		rows[i] = row
	}
	return l.build(source, models.CanonicalColumns, rows)
}

func (l *Loader) build(source string, header []string, rows [][]string) (*Dataset, error) {
	if len(header) == 0 || len(rows) == 0 {
		return nil, fmt.Errorf("dataset: %s: %w", source, ErrEmptyData)
	}

	table := newTable(header, rows)

	var missing []string
	for _, col := range models.RequiredColumns {
		if !table.Has(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("dataset: %s: %w", source, &SchemaError{Missing: missing})
	}

	ds := &Dataset{
		source:  source,
		table:   table,
		records: buildRecords(table),
	}
	l.logger.Info("[dataset] Loaded %d records from %s", table.Len(), source)
	return ds, nil
}

func buildRecords(t *Table) []models.Freelancer {
	text := func(name string, i int) string {
		if c, ok := t.Column(name); ok {
			return c.Text(i)
		}
		return ""
	}
	num := func(name string, i int) float64 {
		if c, ok := t.Column(name); ok {
			return c.Float(i)
		}
		return math.NaN()
	}

	records := make([]models.Freelancer, t.Len())
	for i := range records {
		records[i] = models.Freelancer{
			ID:              text(models.ColFreelancerID, i),
			JobCategory:     text(models.ColJobCategory, i),
			Platform:        text(models.ColPlatform, i),
			ExperienceLevel: text(models.ColExperienceLevel, i),
			ClientRegion:    text(models.ColClientRegion, i),
			PaymentMethod:   text(models.ColPaymentMethod, i),
			JobsCompleted:   num(models.ColJobCompleted, i),
			EarningsUSD:     num(models.ColEarningsUSD, i),
			HourlyRate:      num(models.ColHourlyRate, i),
			JobSuccessRate:  num(models.ColJobSuccessRate, i),
			ClientRating:    num(models.ColClientRating, i),
			JobDurationDays: num(models.ColJobDurationDays, i),
			ProjectType:     text(models.ColProjectType, i),
			RehireRate:      num(models.ColRehireRate, i),
			MarketingSpend:  num(models.ColMarketingSpend, i),
		}
	}
	return records
}

func formatNumber(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Source is the path or label the data was loaded from.
func (d *Dataset) Source() string {
	if d == nil {
		return ""
	}
	return d.source
}

// Len is the number of records; 0 for a nil Dataset.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return d.table.Len()
}

// Table exposes the parsed columns.
func (d *Dataset) Table() (*Table, error) {
	if d == nil {
		return nil, ErrNotLoaded
	}
	return d.table, nil
}

// Records returns the typed rows in file order. Callers must not modify
// the returned slice.
func (d *Dataset) Records() ([]models.Freelancer, error) {
	if d == nil {
		return nil, ErrNotLoaded
	}
	return d.records, nil
}
