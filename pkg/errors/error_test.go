package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "price must be positive")

	assert.Equal(t, ErrCodeInvalidInput, err.Code)
	assert.Equal(t, "[100] price must be positive", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestNewf(t *testing.T) {
	err := Newf(ErrCodeNoDataFound, "no bars found for %s", "AAPL")

	assert.Contains(t, err.Error(), "no bars found for AAPL")
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(ErrCodeQueryFailed, "failed to execute query", cause)

	assert.Contains(t, err.Error(), "failed to execute query")
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, Is(err, cause))
}

func TestWrapf(t *testing.T) {
	cause := fmt.Errorf("no such file")
	err := Wrapf(ErrCodeDataSourceUnavailable, cause, "failed to open %s", "bars.csv")

	assert.Contains(t, err.Error(), "failed to open bars.csv")
	assert.True(t, Is(err, cause))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, ErrCodeEmptySeries, GetCode(New(ErrCodeEmptySeries, "empty")))
	assert.Equal(t, ErrCodeUnknown, GetCode(fmt.Errorf("plain error")))
	assert.Equal(t, ErrCodeUnknown, GetCode(nil))
}

func TestGetCodeThroughWrapping(t *testing.T) {
	inner := New(ErrCodeInvalidPeriod, "period must be positive")
	outer := fmt.Errorf("computing indicators: %w", inner)

	assert.Equal(t, ErrCodeInvalidPeriod, GetCode(outer))
	assert.True(t, HasCode(outer, ErrCodeInvalidPeriod))
	assert.False(t, HasCode(outer, ErrCodeEmptySeries))
}

func TestInsufficientHistoryError(t *testing.T) {
	err := NewInsufficientHistoryErrorf(50, 30, "AAPL", "need %d bars, have %d", 50, 30)

	assert.Equal(t, 50, err.Required)
	assert.Equal(t, 30, err.Actual)
	assert.Equal(t, "AAPL", err.Ticker)
	assert.Equal(t, "need 50 bars, have 30", err.Error())
	assert.True(t, IsInsufficientHistoryError(err))
}

func TestIsInsufficientHistoryErrorThroughChain(t *testing.T) {
	inner := NewInsufficientHistoryError(50, 30, "AAPL", "not enough bars")
	wrapped := fmt.Errorf("indicator pass: %w", inner)

	require.True(t, IsInsufficientHistoryError(wrapped))
	assert.False(t, IsInsufficientHistoryError(fmt.Errorf("plain error")))

	var target *InsufficientHistoryError
	require.True(t, As(wrapped, &target))
	assert.Equal(t, 50, target.Required)
}
