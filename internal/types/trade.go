package types

import (
	"time"
)

// Trade is one closed round trip in a backtest ledger.
type Trade struct {
	EntryDate  time.Time `yaml:"entry_date" json:"entry_date" csv:"entry_date"`
	ExitDate   time.Time `yaml:"exit_date" json:"exit_date" csv:"exit_date"`
	EntryPrice float64   `yaml:"entry_price" json:"entry_price" csv:"entry_price"`
	ExitPrice  float64   `yaml:"exit_price" json:"exit_price" csv:"exit_price"`
	// PnL is exit_price - entry_price for the single-unit replay position.
	PnL float64 `yaml:"pnl" json:"pnl" csv:"pnl"`
	// PnLPct is PnL / entry_price * 100.
	PnLPct float64 `yaml:"pnl_pct" json:"pnl_pct" csv:"pnl_pct"`
	// HoldingPeriodDays is exit_date - entry_date in whole days.
	HoldingPeriodDays int `yaml:"holding_period_days" json:"holding_period_days" csv:"holding_period_days"`
	// Strategy tags which replay rule produced the trade.
	Strategy string `yaml:"strategy" json:"strategy" csv:"strategy"`
}
