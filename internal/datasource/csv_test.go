package datasource

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/argo-screener/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestCSV(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bars.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

func TestCSVLoad(t *testing.T) {
	path := writeTestCSV(t, `time,open,high,low,close,volume
2024-01-01,100,105,99,104,10000
2024-01-02,104,106,103,105,12000
2024-01-03,105,107,104,106,9000
`)

	series, err := NewCSVDataSource(path).Load("AAPL")
	require.NoError(t, err)
	require.Len(t, series, 3)

	assert.InDelta(t, 104.0, series[0].Close, 1e-9)
	assert.InDelta(t, 12000.0, series[1].Volume, 1e-9)
	assert.True(t, series[1].Time.After(series[0].Time))
}

func TestCSVLoadReorderedColumns(t *testing.T) {
	path := writeTestCSV(t, `close,time,volume,open,high,low
104,2024-01-01,10000,100,105,99
`)

	series, err := NewCSVDataSource(path).Load("AAPL")
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.InDelta(t, 104.0, series[0].Close, 1e-9)
	assert.InDelta(t, 99.0, series[0].Low, 1e-9)
}

func TestCSVLoadRFC3339Timestamps(t *testing.T) {
	path := writeTestCSV(t, `time,open,high,low,close,volume
2024-01-01T09:30:00Z,100,105,99,104,10000
2024-01-01T09:31:00Z,104,106,103,105,12000
`)

	series, err := NewCSVDataSource(path).Load("AAPL")
	require.NoError(t, err)
	require.Len(t, series, 2)
}

func TestCSVLoadMissingFile(t *testing.T) {
	_, err := NewCSVDataSource("/nonexistent/bars.csv").Load("AAPL")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeDataSourceUnavailable))
}

func TestCSVLoadMissingColumn(t *testing.T) {
	path := writeTestCSV(t, `time,open,high,low,close
2024-01-01,100,105,99,104
`)

	_, err := NewCSVDataSource(path).Load("AAPL")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeDataParseFailed))
}

func TestCSVLoadBadValue(t *testing.T) {
	path := writeTestCSV(t, `time,open,high,low,close,volume
2024-01-01,100,105,99,not-a-number,10000
`)

	_, err := NewCSVDataSource(path).Load("AAPL")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeDataParseFailed))
}

func TestCSVLoadEmptyFile(t *testing.T) {
	path := writeTestCSV(t, `time,open,high,low,close,volume
`)

	_, err := NewCSVDataSource(path).Load("AAPL")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNoDataFound))
}

func TestCSVLoadUnorderedTimestamps(t *testing.T) {
	path := writeTestCSV(t, `time,open,high,low,close,volume
2024-01-02,104,106,103,105,12000
2024-01-01,100,105,99,104,10000
`)

	_, err := NewCSVDataSource(path).Load("AAPL")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidPriceSeries))
}

func TestCSVClose(t *testing.T) {
	assert.NoError(t, NewCSVDataSource("anything.csv").Close())
}
