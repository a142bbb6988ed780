package datasource

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-screener/internal/logger"
	"github.com/rxtech-lab/argo-screener/internal/types"
	"github.com/rxtech-lab/argo-screener/pkg/errors"
	"go.uber.org/zap"
)

// DuckDBDataSource serves bars from a DuckDB database with a market_data
// table (ticker, time, open, high, low, close, volume), as produced by the
// download tooling that sits outside this repository.
type DuckDBDataSource struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDuckDBDataSource opens the database at path.
func NewDuckDBDataSource(path string, log *logger.Logger) (DataSource, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to open duckdb database %s", path)
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &DuckDBDataSource{
		db:     db,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Load implements DataSource.
func (d *DuckDBDataSource) Load(ticker string) (types.PriceSeries, error) {
	query := d.sq.
		Select("time", "open", "high", "low", "close", "volume").
		From("market_data").
		Where(squirrel.Eq{"ticker": ticker}).
		OrderBy("time ASC").
		RunWith(d.db)

	rows, err := query.Query()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to query bars for %s", ticker)
	}
	defer rows.Close()

	series := make(types.PriceSeries, 0)

	for rows.Next() {
		var bar types.PriceBar
		if err := rows.Scan(&bar.Time, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume); err != nil {
			return nil, errors.Wrap(errors.ErrCodeDataParseFailed, "failed to scan bar row", err)
		}

		series = append(series, bar)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeQueryFailed, err, "row iteration failed for %s", ticker)
	}

	if len(series) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "no bars found for ticker %s", ticker)
	}

	if err := series.Validate(); err != nil {
		return nil, err
	}

	d.logger.Debug("loaded bars from duckdb",
		zap.String("ticker", ticker),
		zap.Int("bars", len(series)),
	)

	return series, nil
}

// Close implements DataSource.
func (d *DuckDBDataSource) Close() error {
	return d.db.Close()
}
