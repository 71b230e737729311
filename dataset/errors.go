package dataset

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound means the data path does not point to an existing file.
	ErrNotFound = errors.New("data file not found")
	// ErrEmptyData means the file has no header or no data rows.
	ErrEmptyData = errors.New("data file is empty")
	// ErrSchema is matched by every *SchemaError.
	ErrSchema = errors.New("missing required columns")
	// ErrNotLoaded is returned by methods called on a nil *Dataset.
	ErrNotLoaded = errors.New("data not loaded")
)

// SchemaError lists every required column absent from the header, in
// declaration order.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}
