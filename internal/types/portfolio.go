package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-screener/pkg/errors"
)

type TradeAction string

const (
	TradeActionBuy  TradeAction = "BUY"
	TradeActionSell TradeAction = "SELL"
)

// Position is a read-only snapshot of one open holding supplied by the
// broker collaborator.
type Position struct {
	Quantity      float64 `yaml:"quantity" json:"quantity"`
	AvgEntryPrice float64 `yaml:"avg_entry_price" json:"avg_entry_price"`
	CurrentPrice  float64 `yaml:"current_price" json:"current_price"`
	StopLoss      float64 `yaml:"stop_loss" json:"stop_loss"`
}

// Risk returns |current_price - stop_loss| * quantity, the dollar amount at
// risk if the stop is hit. Non-positive inputs contribute zero risk; the
// owning risk check fails closed on the candidate side instead.
func (p Position) Risk() float64 {
	if p.CurrentPrice <= 0 || p.StopLoss <= 0 || p.Quantity <= 0 {
		return 0
	}

	risk := p.CurrentPrice - p.StopLoss
	if risk < 0 {
		risk = -risk
	}

	return risk * p.Quantity
}

// Portfolio is a read-only account snapshot supplied by the broker
// collaborator. It is never mutated by the core.
type Portfolio struct {
	Cash           float64             `yaml:"cash" json:"cash"`
	PortfolioValue float64             `yaml:"portfolio_value" json:"portfolio_value"`
	Positions      map[string]Position `yaml:"positions" json:"positions"`
}

// AggregateRisk sums the stop-loss risk of every open position.
func (p Portfolio) AggregateRisk() float64 {
	total := 0.0
	for _, position := range p.Positions {
		total += position.Risk()
	}

	return total
}

// RiskLimits is immutable risk configuration.
type RiskLimits struct {
	// MaxPositionFraction caps a single position at this fraction of
	// portfolio value.
	MaxPositionFraction float64 `yaml:"max_position_fraction" json:"max_position_fraction" validate:"gt=0,lte=1"`
	// MaxPortfolioRiskFraction caps aggregate stop-loss risk at this
	// fraction of portfolio value.
	MaxPortfolioRiskFraction float64 `yaml:"max_portfolio_risk_fraction" json:"max_portfolio_risk_fraction" validate:"gt=0,lte=1"`
}

// TradeCandidate is a proposed trade to be risk-checked.
type TradeCandidate struct {
	Ticker   string      `yaml:"ticker" json:"ticker" validate:"required"`
	Action   TradeAction `yaml:"action" json:"action" validate:"required,oneof=BUY SELL"`
	Price    float64     `yaml:"price" json:"price" validate:"gt=0"`
	Quantity float64     `yaml:"quantity" json:"quantity" validate:"gt=0"`
	StopLoss float64     `yaml:"stop_loss" json:"stop_loss" validate:"gt=0"`
}

// Risk returns |price - stop_loss| * quantity for the candidate, 0 when any
// input is non-positive.
func (c TradeCandidate) Risk() float64 {
	if c.Price <= 0 || c.StopLoss <= 0 || c.Quantity <= 0 {
		return 0
	}

	risk := c.Price - c.StopLoss
	if risk < 0 {
		risk = -risk
	}

	return risk * c.Quantity
}

// Validate validates the TradeCandidate struct.
func (c *TradeCandidate) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidCandidate, "invalid trade candidate", err)
	}

	return nil
}
