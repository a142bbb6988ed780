package indicator

import (
	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-screener/pkg/errors"
)

// Config holds the rolling-window parameters of the engine. Defaults mirror
// the conventional 20/50 SMA, 12/26 EMA, 14 RSI, 12/26/9 MACD, 20/2 Bollinger
// and 14 stochastic setup.
type Config struct {
	SMAShortWindow   int     `yaml:"sma_short_window" json:"sma_short_window" validate:"gt=0"`
	SMALongWindow    int     `yaml:"sma_long_window" json:"sma_long_window" validate:"gt=0,gtfield=SMAShortWindow"`
	EMAShortSpan     int     `yaml:"ema_short_span" json:"ema_short_span" validate:"gt=0"`
	EMALongSpan      int     `yaml:"ema_long_span" json:"ema_long_span" validate:"gt=0,gtfield=EMAShortSpan"`
	RSIPeriod        int     `yaml:"rsi_period" json:"rsi_period" validate:"gt=1"`
	MACDFastSpan     int     `yaml:"macd_fast_span" json:"macd_fast_span" validate:"gt=0"`
	MACDSlowSpan     int     `yaml:"macd_slow_span" json:"macd_slow_span" validate:"gt=0,gtfield=MACDFastSpan"`
	MACDSignalSpan   int     `yaml:"macd_signal_span" json:"macd_signal_span" validate:"gt=0"`
	BollingerWindow  int     `yaml:"bollinger_window" json:"bollinger_window" validate:"gt=1"`
	BollingerK       float64 `yaml:"bollinger_k" json:"bollinger_k" validate:"gt=0"`
	StochasticWindow int     `yaml:"stochastic_window" json:"stochastic_window" validate:"gt=0"`
}

// DefaultConfig returns the standard parameter set.
func DefaultConfig() Config {
	return Config{
		SMAShortWindow:   20,
		SMALongWindow:    50,
		EMAShortSpan:     12,
		EMALongSpan:      26,
		RSIPeriod:        14,
		MACDFastSpan:     12,
		MACDSlowSpan:     26,
		MACDSignalSpan:   9,
		BollingerWindow:  20,
		BollingerK:       2.0,
		StochasticWindow: 14,
	}
}

// Validate validates the Config struct.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid indicator config", err)
	}

	return nil
}
