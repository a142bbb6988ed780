package indicator

import (
	"math"

	"github.com/moznion/go-optional"
)

// rollingMean computes the simple moving average of values with the given
// window using a running sum, so the whole pass is O(N). Indices before
// window-1 are None.
func rollingMean(values []float64, window int) []optional.Option[float64] {
	out := make([]optional.Option[float64], len(values))

	sum := 0.0

	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}

		if i >= window-1 {
			out[i] = optional.Some(sum / float64(window))
		} else {
			out[i] = optional.None[float64]()
		}
	}

	return out
}

// rollingStd computes the sample standard deviation (n-1 denominator, the
// same convention pandas uses) over the given window, maintaining running
// sum and sum-of-squares. Indices before window-1 are None.
func rollingStd(values []float64, window int) []optional.Option[float64] {
	out := make([]optional.Option[float64], len(values))

	if window < 2 {
		for i := range out {
			out[i] = optional.None[float64]()
		}

		return out
	}

	sum := 0.0
	sumSq := 0.0

	for i, v := range values {
		sum += v
		sumSq += v * v

		if i >= window {
			old := values[i-window]
			sum -= old
			sumSq -= old * old
		}

		if i >= window-1 {
			n := float64(window)
			variance := (sumSq - sum*sum/n) / (n - 1)
			// Floating point cancellation can push a tiny variance below zero.
			if variance < 0 {
				variance = 0
			}

			out[i] = optional.Some(math.Sqrt(variance))
		} else {
			out[i] = optional.None[float64]()
		}
	}

	return out
}

// ema computes the exponential moving average with smoothing factor
// alpha = 2/(span+1), seeded with the first value and defined from index 0.
func ema(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	alpha := 2.0 / (float64(span) + 1.0)
	out[0] = values[0]

	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}

	return out
}

// rollingExtremum computes the rolling min (max=false) or max (max=true) of
// values over the window using a monotonic index deque, O(N) total.
// Indices before window-1 are None.
func rollingExtremum(values []float64, window int, max bool) []optional.Option[float64] {
	out := make([]optional.Option[float64], len(values))
	deque := make([]int, 0, len(values))

	better := func(a, b float64) bool {
		if max {
			return a >= b
		}

		return a <= b
	}

	for i, v := range values {
		// Drop indices that fell out of the window.
		for len(deque) > 0 && deque[0] <= i-window {
			deque = deque[1:]
		}
		// Drop dominated values from the back.
		for len(deque) > 0 && better(v, values[deque[len(deque)-1]]) {
			deque = deque[:len(deque)-1]
		}

		deque = append(deque, i)

		if i >= window-1 {
			out[i] = optional.Some(values[deque[0]])
		} else {
			out[i] = optional.None[float64]()
		}
	}

	return out
}
