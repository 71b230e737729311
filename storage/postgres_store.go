package storage

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/lib/pq"

	"freelancer-analyzer/models"
	"freelancer-analyzer/utils"
)

const (
	freelancersTable = "freelancers"
	batchSize        = 50
)

// storedColumns maps table columns to dataset columns, in select order.
var storedColumns = []struct {
	table   string
	dataset string
}{
	{"freelancer_id", models.ColFreelancerID},
	{"job_category", models.ColJobCategory},
	{"platform", models.ColPlatform},
	{"experience_level", models.ColExperienceLevel},
	{"client_region", models.ColClientRegion},
	{"payment_method", models.ColPaymentMethod},
	{"job_completed", models.ColJobCompleted},
	{"earnings_usd", models.ColEarningsUSD},
	{"hourly_rate", models.ColHourlyRate},
	{"job_success_rate", models.ColJobSuccessRate},
	{"client_rating", models.ColClientRating},
	{"job_duration_days", models.ColJobDurationDays},
	{"project_type", models.ColProjectType},
	{"rehire_rate", models.ColRehireRate},
	{"marketing_spend", models.ColMarketingSpend},
}

// PostgresStore persists freelancer records to PostgreSQL.
type PostgresStore struct {
	db     *sql.DB
	qb     goqu.DialectWrapper
	logger *utils.Logger
}

// NewPostgresStore opens a connection to PostgreSQL, waits for it to accept
// connections, runs schema migrations and returns a ready-to-use store.
func NewPostgresStore(dsn string, logger *utils.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	retry := utils.RetryConfig{MaxAttempts: 5, BaseDelay: time.Second, Logger: logger}
	if err := retry.Do(context.Background(), "postgres ping", db.Ping); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	ps, err := OpenPostgresStore(db, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return ps, nil
}

// OpenPostgresStore wraps an existing connection and migrates the schema.
func OpenPostgresStore(db *sql.DB, logger *utils.Logger) (*PostgresStore, error) {
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	ps := &PostgresStore{db: db, qb: goqu.Dialect("postgres"), logger: logger}
	if err := ps.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return ps, nil
}

func (ps *PostgresStore) migrate() error {
	_, err := ps.db.Exec(`
		CREATE TABLE IF NOT EXISTS freelancers (
			id                SERIAL PRIMARY KEY,
			freelancer_id     TEXT NOT NULL DEFAULT '',
			job_category      TEXT NOT NULL DEFAULT '',
			platform          TEXT NOT NULL DEFAULT '',
			experience_level  TEXT NOT NULL DEFAULT '',
			client_region     TEXT NOT NULL DEFAULT '',
			payment_method    TEXT NOT NULL DEFAULT '',
			job_completed     DOUBLE PRECISION,
			earnings_usd      DOUBLE PRECISION,
			hourly_rate       DOUBLE PRECISION,
			job_success_rate  DOUBLE PRECISION,
			client_rating     DOUBLE PRECISION,
			job_duration_days DOUBLE PRECISION,
			project_type      TEXT NOT NULL DEFAULT '',
			rehire_rate       DOUBLE PRECISION,
			marketing_spend   DOUBLE PRECISION
		);

		CREATE INDEX IF NOT EXISTS idx_freelancers_platform ON freelancers(platform);
		CREATE INDEX IF NOT EXISTS idx_freelancers_region   ON freelancers(client_region);
		CREATE INDEX IF NOT EXISTS idx_freelancers_category ON freelancers(job_category);
	`)
	return err
}

// Write replaces the table contents with records. The delete and every
// insert batch share one transaction.
func (ps *PostgresStore) Write(records []models.Freelancer) error {
	tx, err := ps.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM freelancers`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("postgres: clear: %w", err)
	}

	for i := 0; i < len(records); i += batchSize {
		end := min(i+batchSize, len(records))
		if err := ps.insertBatch(tx, records[i:end]); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	ps.logger.Info("[postgres] Stored %d records in table %s", len(records), freelancersTable)
	return nil
}

func (ps *PostgresStore) insertBatch(tx *sql.Tx, batch []models.Freelancer) error {
	rows := make([]any, 0, len(batch))
	for i := range batch {
		rows = append(rows, toRecord(&batch[i]))
	}

	query, args, err := ps.qb.Insert(freelancersTable).Rows(rows...).ToSQL()
	if err != nil {
		return fmt.Errorf("postgres: build insert: %w", err)
	}
	if _, err := tx.Exec(query, args...); err != nil {
		return fmt.Errorf("postgres: insert batch: %w", err)
	}
	return nil
}

func toRecord(f *models.Freelancer) goqu.Record {
	rec := make(goqu.Record, len(storedColumns))
	for _, c := range storedColumns {
		if models.IsNumericColumn(c.dataset) {
			rec[c.table] = nullable(f.Number(c.dataset))
		} else {
			rec[c.table] = f.Text(c.dataset)
		}
	}
	return rec
}

// nullable stores a missing measure as SQL NULL.
func nullable(v float64) any {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

// FetchAll retrieves every stored record in insertion order.
func (ps *PostgresStore) FetchAll() ([]models.Freelancer, error) {
	cols := make([]any, len(storedColumns))
	for i, c := range storedColumns {
		cols[i] = c.table
	}
	query, args, err := ps.qb.From(freelancersTable).Select(cols...).Order(goqu.I("id").Asc()).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("postgres: build select: %w", err)
	}

	rows, err := ps.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var records []models.Freelancer
	for rows.Next() {
		var f models.Freelancer
		var jobs, earnings, rate, success, rating, days, rehire, spend sql.NullFloat64
		if err := rows.Scan(
			&f.ID, &f.JobCategory, &f.Platform, &f.ExperienceLevel, &f.ClientRegion, &f.PaymentMethod,
			&jobs, &earnings, &rate, &success, &rating, &days,
			&f.ProjectType, &rehire, &spend,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		f.JobsCompleted = orMissing(jobs)
		f.EarningsUSD = orMissing(earnings)
		f.HourlyRate = orMissing(rate)
		f.JobSuccessRate = orMissing(success)
		f.ClientRating = orMissing(rating)
		f.JobDurationDays = orMissing(days)
		f.RehireRate = orMissing(rehire)
		f.MarketingSpend = orMissing(spend)
		records = append(records, f)
	}
	return records, rows.Err()
}

func orMissing(v sql.NullFloat64) float64 {
	if !v.Valid {
		return models.Missing()
	}
	return v.Float64
}

func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
