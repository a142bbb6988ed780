package types

import (
	"time"

	"github.com/rxtech-lab/argo-screener/pkg/errors"
)

// PriceBar represents a single OHLCV bar of a price series.
type PriceBar struct {
	Time   time.Time `yaml:"time" json:"time" csv:"time"`
	Open   float64   `yaml:"open" json:"open" csv:"open" validate:"gt=0"`
	High   float64   `yaml:"high" json:"high" csv:"high" validate:"gt=0"`
	Low    float64   `yaml:"low" json:"low" csv:"low" validate:"gt=0"`
	Close  float64   `yaml:"close" json:"close" csv:"close" validate:"gt=0"`
	Volume float64   `yaml:"volume" json:"volume" csv:"volume" validate:"gte=0"`
}

// PriceSeries is an ordered sequence of price bars with strictly increasing
// timestamps and no duplicates.
type PriceSeries []PriceBar

// Validate checks the ordering invariant of the series. An empty series is
// valid; it is up to the consumer to decide whether it has enough history.
func (s PriceSeries) Validate() error {
	for i := 1; i < len(s); i++ {
		if !s[i].Time.After(s[i-1].Time) {
			return errors.Newf(errors.ErrCodeInvalidPriceSeries,
				"bar %d timestamp %s is not after bar %d timestamp %s",
				i, s[i].Time.Format(time.RFC3339), i-1, s[i-1].Time.Format(time.RFC3339))
		}
	}

	return nil
}

// Closes returns the close prices of the series, index-aligned with the bars.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, bar := range s {
		closes[i] = bar.Close
	}

	return closes
}

// MeanClose returns the arithmetic mean of close prices, 0 for an empty series.
func (s PriceSeries) MeanClose() float64 {
	if len(s) == 0 {
		return 0
	}

	sum := 0.0
	for _, bar := range s {
		sum += bar.Close
	}

	return sum / float64(len(s))
}

// MeanVolume returns the arithmetic mean of volumes, 0 for an empty series.
func (s PriceSeries) MeanVolume() float64 {
	if len(s) == 0 {
		return 0
	}

	sum := 0.0
	for _, bar := range s {
		sum += bar.Volume
	}

	return sum / float64(len(s))
}
