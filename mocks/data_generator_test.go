package mocks

import (
	"testing"
)

func TestDataGenerator_Generate(t *testing.T) {
	gen := NewDataGenerator(42) // Fixed seed for reproducibility
	config := DefaultConfig()
	config.Count = 100

	series := gen.Generate(config)

	if len(series) != 100 {
		t.Errorf("expected 100 bars, got %d", len(series))
	}

	// Verify bars are in chronological order
	for i := 1; i < len(series); i++ {
		if !series[i].Time.After(series[i-1].Time) {
			t.Errorf("bars not in chronological order at index %d", i)
		}
	}

	// Verify OHLC values are positive
	for i, bar := range series {
		if bar.Open <= 0 || bar.High <= 0 || bar.Low <= 0 || bar.Close <= 0 {
			t.Errorf("invalid OHLC values at index %d: O=%f H=%f L=%f C=%f",
				i, bar.Open, bar.High, bar.Low, bar.Close)
		}
	}

	// Verify High >= Low
	for i, bar := range series {
		if bar.High < bar.Low {
			t.Errorf("High < Low at index %d: H=%f L=%f", i, bar.High, bar.Low)
		}
	}

	// Verify the series passes its own ordering invariant
	if err := series.Validate(); err != nil {
		t.Errorf("generated series failed validation: %v", err)
	}
}

func TestDataGenerator_Reproducibility(t *testing.T) {
	// Same seed should produce same results
	config := DefaultConfig()
	config.Count = 50

	first := NewDataGenerator(7).Generate(config)
	second := NewDataGenerator(7).Generate(config)

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("series diverge at index %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestGenerateTrending(t *testing.T) {
	gen := NewDataGenerator(42)

	bullish := gen.GenerateTrending(252, 0.001)
	if bullish[len(bullish)-1].Close <= bullish[0].Close {
		t.Errorf("bullish drift did not trend up: first=%f last=%f",
			bullish[0].Close, bullish[len(bullish)-1].Close)
	}

	bearish := gen.GenerateTrending(252, -0.001)
	if bearish[len(bearish)-1].Close >= bearish[0].Close {
		t.Errorf("bearish drift did not trend down: first=%f last=%f",
			bearish[0].Close, bearish[len(bearish)-1].Close)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	closes := []float64{100, 101, 102}
	series := GenerateDeterministic(closes)

	if len(series) != 3 {
		t.Fatalf("expected 3 bars, got %d", len(series))
	}

	for i, close := range closes {
		if series[i].Close != close {
			t.Errorf("close mismatch at index %d: expected %f, got %f", i, close, series[i].Close)
		}

		if series[i].Volume != 1000 {
			t.Errorf("expected default volume 1000 at index %d, got %f", i, series[i].Volume)
		}
	}

	if err := series.Validate(); err != nil {
		t.Errorf("deterministic series failed validation: %v", err)
	}
}

func TestGenerate10K(t *testing.T) {
	series := Generate10K()

	if len(series) != 10000 {
		t.Errorf("expected 10000 bars, got %d", len(series))
	}
}
