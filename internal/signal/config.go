package signal

import (
	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-screener/pkg/errors"
)

// Weights are the discrete confidence contributions. They are configuration,
// not embedded constants; the defaults reproduce the conventional fusion
// (oversold +0.2, momentum +0.15, volume +0.10, strong trend +0.25, weak
// trend +0.10) with bearish contributions mirrored negative.
type Weights struct {
	Oversold    float64 `yaml:"oversold" json:"oversold" validate:"gte=0,lte=1"`
	Overbought  float64 `yaml:"overbought" json:"overbought" validate:"gte=0,lte=1"`
	Momentum    float64 `yaml:"momentum" json:"momentum" validate:"gte=0,lte=1"`
	VolumeSpike float64 `yaml:"volume_spike" json:"volume_spike" validate:"gte=0,lte=1"`
	StrongTrend float64 `yaml:"strong_trend" json:"strong_trend" validate:"gte=0,lte=1"`
	WeakTrend   float64 `yaml:"weak_trend" json:"weak_trend" validate:"gte=0,lte=1"`
}

// Thresholds classify raw indicator values into states.
type Thresholds struct {
	// RSIOversold and RSIOverbought bound the neutral RSI band.
	RSIOversold   float64 `yaml:"rsi_oversold" json:"rsi_oversold" validate:"gt=0,lt=100"`
	RSIOverbought float64 `yaml:"rsi_overbought" json:"rsi_overbought" validate:"gt=0,lt=100,gtfield=RSIOversold"`
	// VolumeSpikeMargin is the fraction by which the recent 5-bar average
	// volume must exceed the long-run average to count as a spike.
	VolumeSpikeMargin float64 `yaml:"volume_spike_margin" json:"volume_spike_margin" validate:"gte=0"`
	// TrendStrengthMin separates strong from weak trends; the strength is
	// |sma_short - sma_long| / mean_close * 100.
	TrendStrengthMin float64 `yaml:"trend_strength_min" json:"trend_strength_min" validate:"gte=0"`
}

// Config bundles weights and thresholds for the generator.
type Config struct {
	Weights    Weights    `yaml:"weights" json:"weights"`
	Thresholds Thresholds `yaml:"thresholds" json:"thresholds"`
}

// DefaultConfig returns the standard fusion parameters.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Oversold:    0.20,
			Overbought:  0.20,
			Momentum:    0.15,
			VolumeSpike: 0.10,
			StrongTrend: 0.25,
			WeakTrend:   0.10,
		},
		Thresholds: Thresholds{
			RSIOversold:       30,
			RSIOverbought:     70,
			VolumeSpikeMargin: 0.10,
			TrendStrengthMin:  1.0,
		},
	}
}

// Validate validates the Config struct.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid signal config", err)
	}

	return nil
}
