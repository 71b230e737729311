package storage

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freelancer-analyzer/dataset"
	"freelancer-analyzer/models"
	"freelancer-analyzer/utils"
)

func TestCSVWriterOutputLoadsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump", "freelancers.csv")

	w, err := NewCSVWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Write([]models.Freelancer{sampleRecord("FL1"), sampleRecord("FL2")}))
	require.NoError(t, w.Close())

	ds, err := dataset.NewLoader(utils.NewNopLogger()).Load(path)
	require.NoError(t, err)
	got, err := ds.Records()
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "FL1", got[0].ID)
	assert.Equal(t, 55.5, got[0].HourlyRate)
	assert.True(t, math.IsNaN(got[0].MarketingSpend))
	assert.Equal(t, "FL2", got[1].ID)
}

var _ RecordWriter = (*CSVWriter)(nil)
var _ RecordWriter = (*PostgresStore)(nil)
var _ RecordSource = (*PostgresStore)(nil)
