package storage

import "freelancer-analyzer/models"

// RecordWriter is the interface any storage backend must satisfy.
type RecordWriter interface {
	Write(records []models.Freelancer) error
	Close() error
}

// RecordSource is implemented by backends the analyzer can read from.
type RecordSource interface {
	FetchAll() ([]models.Freelancer, error)
	Close() error
}
