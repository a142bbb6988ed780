// Package datasource loads price series for the CLI from already-downloaded
// files. Fetching data from market-data providers is a collaborator concern
// and lives outside this repository.
package datasource

import (
	"github.com/rxtech-lab/argo-screener/internal/types"
)

// DataSource yields a validated PriceSeries for a ticker.
type DataSource interface {
	// Load reads the full series for the given ticker, ordered by time.
	Load(ticker string) (types.PriceSeries, error)
	// Close releases any underlying resources.
	Close() error
}
