// Package risk validates trade candidates against portfolio limits and
// computes admissible position sizes. Every function is a pure evaluation
// over the supplied snapshots; there is no internal state, and missing or
// non-positive inputs make the owning check fail closed rather than raise.
package risk

import (
	"github.com/rxtech-lab/argo-screener/internal/types"
)

// ValidateTrade reports whether the candidate passes all three independent
// risk checks: buying power, position-size cap and aggregate portfolio risk.
func ValidateTrade(candidate types.TradeCandidate, portfolio types.Portfolio, limits types.RiskLimits) bool {
	if !checkBuyingPower(candidate, portfolio) {
		return false
	}

	if !checkPositionSize(candidate, portfolio, limits) {
		return false
	}

	return checkPortfolioRisk(candidate, portfolio, limits)
}

// checkBuyingPower requires price*quantity <= available cash.
func checkBuyingPower(candidate types.TradeCandidate, portfolio types.Portfolio) bool {
	if candidate.Price <= 0 || candidate.Quantity <= 0 {
		return false
	}

	return candidate.Price*candidate.Quantity <= portfolio.Cash
}

// checkPositionSize caps the position value at the configured fraction of
// portfolio value.
func checkPositionSize(candidate types.TradeCandidate, portfolio types.Portfolio, limits types.RiskLimits) bool {
	if candidate.Price <= 0 || candidate.Quantity <= 0 || portfolio.PortfolioValue <= 0 {
		return false
	}

	return candidate.Price*candidate.Quantity <= portfolio.PortfolioValue*limits.MaxPositionFraction
}

// checkPortfolioRisk requires the aggregate stop-loss risk of the open
// positions plus the candidate to stay within the configured fraction of
// portfolio value. A candidate without a positive stop loss carries no
// measurable risk and fails this check closed.
func checkPortfolioRisk(candidate types.TradeCandidate, portfolio types.Portfolio, limits types.RiskLimits) bool {
	if candidate.StopLoss <= 0 || portfolio.PortfolioValue <= 0 {
		return false
	}

	currentRisk := portfolio.AggregateRisk()
	tradeRisk := candidate.Risk()

	return currentRisk+tradeRisk <= portfolio.PortfolioValue*limits.MaxPortfolioRiskFraction
}

// CalculatePositionSize returns the share count whose value equals the
// configured fraction of portfolio value at the current price:
//
//	size = portfolio_value * max_position_fraction / current_price
//
// It returns 0 when portfolio value or price is non-positive.
func CalculatePositionSize(portfolio types.Portfolio, limits types.RiskLimits, currentPrice float64) float64 {
	if portfolio.PortfolioValue <= 0 || currentPrice <= 0 {
		return 0
	}

	return portfolio.PortfolioValue * limits.MaxPositionFraction / currentPrice
}
