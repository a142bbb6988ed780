package backtest

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-screener/internal/types"
)

// PositionState is the replay position state. The machine has exactly two
// states and no terminal state; replay simply ends, and an open position at
// series end is discarded, not counted.
type PositionState string

const (
	PositionStateFlat PositionState = "FLAT"
	PositionStateLong PositionState = "LONG"
)

// Action is what a rule asks the state machine to do at one bar.
type Action string

const (
	ActionHold  Action = "HOLD"
	ActionEnter Action = "ENTER"
	ActionExit  Action = "EXIT"
)

// Position is the single-position state machine driven bar by bar. It is a
// value; Apply returns the successor state instead of mutating, which keeps
// the transition function independently testable without running a replay.
type Position struct {
	State      PositionState
	EntryPrice float64
	EntryDate  time.Time
}

// NewPosition returns the initial FLAT state.
func NewPosition() Position {
	return Position{
		State:      PositionStateFlat,
		EntryPrice: 0,
		EntryDate:  time.Time{},
	}
}

// Apply advances the machine with one action at one bar. ENTER transitions
// FLAT to LONG at the bar's close; EXIT transitions LONG to FLAT and emits
// the closed trade. ENTER while LONG is ignored (no pyramiding), as is EXIT
// while FLAT.
func (p Position) Apply(action Action, bar types.PriceBar, strategy string) (Position, optional.Option[types.Trade]) {
	switch action {
	case ActionEnter:
		if p.State != PositionStateFlat {
			return p, optional.None[types.Trade]()
		}

		return Position{
			State:      PositionStateLong,
			EntryPrice: bar.Close,
			EntryDate:  bar.Time,
		}, optional.None[types.Trade]()

	case ActionExit:
		if p.State != PositionStateLong {
			return p, optional.None[types.Trade]()
		}

		pnl := bar.Close - p.EntryPrice
		pnlPct := 0.0

		if p.EntryPrice != 0 {
			pnlPct = pnl / p.EntryPrice * 100
		}

		trade := types.Trade{
			EntryDate:         p.EntryDate,
			ExitDate:          bar.Time,
			EntryPrice:        p.EntryPrice,
			ExitPrice:         bar.Close,
			PnL:               pnl,
			PnLPct:            pnlPct,
			HoldingPeriodDays: int(bar.Time.Sub(p.EntryDate).Hours() / 24),
			Strategy:          strategy,
		}

		return NewPosition(), optional.Some(trade)

	case ActionHold:
		return p, optional.None[types.Trade]()
	}

	return p, optional.None[types.Trade]()
}
