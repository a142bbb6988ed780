package datasource

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rxtech-lab/argo-screener/internal/types"
	"github.com/rxtech-lab/argo-screener/pkg/errors"
)

// csvColumns is the expected header of a bar file:
// time,open,high,low,close,volume.
var csvColumns = []string{"time", "open", "high", "low", "close", "volume"}

// CSVDataSource reads one bar file per call. The ticker argument to Load is
// informational only; a CSV file carries a single ticker's series.
type CSVDataSource struct {
	FilePath string
}

// NewCSVDataSource creates a CSV-backed data source for the given file.
func NewCSVDataSource(filePath string) DataSource {
	return &CSVDataSource{FilePath: filePath}
}

// Load implements DataSource.
func (c *CSVDataSource) Load(ticker string) (types.PriceSeries, error) {
	file, err := os.Open(c.FilePath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to open bar file %s", c.FilePath)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataParseFailed, "failed to read CSV header", err)
	}

	columns, err := columnIndexes(header)
	if err != nil {
		return nil, err
	}

	series := make(types.PriceSeries, 0)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeDataParseFailed, "failed to read CSV record", err)
		}

		bar, err := parseBar(record, columns)
		if err != nil {
			return nil, err
		}

		series = append(series, bar)
	}

	if len(series) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "no bars found for %s in %s", ticker, c.FilePath)
	}

	if err := series.Validate(); err != nil {
		return nil, err
	}

	return series, nil
}

// Close implements DataSource. CSV files are opened per Load, so there is
// nothing to release.
func (c *CSVDataSource) Close() error {
	return nil
}

func columnIndexes(header []string) (map[string]int, error) {
	indexes := make(map[string]int, len(header))
	for i, name := range header {
		indexes[name] = i
	}

	for _, required := range csvColumns {
		if _, ok := indexes[required]; !ok {
			return nil, errors.Newf(errors.ErrCodeDataParseFailed, "CSV header is missing required column %q", required)
		}
	}

	return indexes, nil
}

func parseBar(record []string, columns map[string]int) (types.PriceBar, error) {
	barTime, err := time.Parse(time.RFC3339, record[columns["time"]])
	if err != nil {
		// Daily bar files commonly carry dates only.
		barTime, err = time.Parse("2006-01-02", record[columns["time"]])
		if err != nil {
			return types.PriceBar{}, errors.Wrapf(errors.ErrCodeDataParseFailed, err,
				"failed to parse bar time %q", record[columns["time"]])
		}
	}

	fields := make(map[string]float64, 5)

	for _, name := range csvColumns[1:] {
		value, err := strconv.ParseFloat(record[columns[name]], 64)
		if err != nil {
			return types.PriceBar{}, errors.Wrapf(errors.ErrCodeDataParseFailed, err,
				"failed to parse %s value %q", name, record[columns[name]])
		}

		fields[name] = value
	}

	return types.PriceBar{
		Time:   barTime,
		Open:   fields["open"],
		High:   fields["high"],
		Low:    fields["low"],
		Close:  fields["close"],
		Volume: fields["volume"],
	}, nil
}
