// Package signalmath holds the numeric primitives shared by the analyzers:
// series statistics, Butterworth high-pass filtering, and frame-rate
// alignment of high-rate signals.
package signalmath

import (
	"math"
)

// MinFilterSamples is the floor below which the high-pass response is not
// stable. Callers skip filtering and default the dependent metric instead
// of filtering a too-short series.
const MinFilterSamples = 100

// Mean returns the arithmetic mean, 0 for an empty series.
func Mean(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	var sum float64
	for _, v := range series {
		sum += v
	}
	return sum / float64(len(series))
}

// MeanAbs returns the mean absolute value, 0 for an empty series.
func MeanAbs(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	var sum float64
	for _, v := range series {
		sum += math.Abs(v)
	}
	return sum / float64(len(series))
}

// Variance returns the population variance, 0 for an empty series.
func Variance(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	avg := Mean(series)
	var sum float64
	for _, v := range series {
		d := v - avg
		sum += d * d
	}
	return sum / float64(len(series))
}

// Std returns the population standard deviation.
func Std(series []float64) float64 {
	return math.Sqrt(Variance(series))
}

// biquad is one second-order filter section with normalized coefficients
// (a0 = 1).
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
}

// highpassSections designs an order-n Butterworth high-pass as cascaded
// second-order sections. cutoff is the normalized cutoff as a fraction of
// Nyquist. The order must be even.
func highpassSections(order int, cutoff float64) []biquad {
	// Pre-warped analog cutoff for the bilinear transform.
	k := math.Tan(math.Pi * cutoff / 2)
	k2 := k * k

	sections := make([]biquad, 0, order/2)
	for i := 0; i < order/2; i++ {
		// Butterworth pole-pair angle for this section.
		q := 2 * math.Sin(math.Pi*float64(2*i+1)/float64(2*order))
		a0 := 1 + q*k + k2
		sections = append(sections, biquad{
			b0: 1 / a0,
			b1: -2 / a0,
			b2: 1 / a0,
			a1: 2 * (k2 - 1) / a0,
			a2: (1 - q*k + k2) / a0,
		})
	}
	return sections
}

// HighPass applies an order-4 Butterworth high-pass filter (single forward
// pass, zero initial state) to a series. cutoff is a fraction of Nyquist in
// (0, 1). Series shorter than MinFilterSamples produce a degenerate filter
// response; callers are expected to check the floor first, but a too-short
// or empty series is still returned filtered rather than failing.
func HighPass(series []float64, cutoff float64) []float64 {
	return HighPassOrder(series, cutoff, 4)
}

// HighPassOrder is HighPass with an explicit even filter order.
func HighPassOrder(series []float64, cutoff float64, order int) []float64 {
	out := make([]float64, len(series))
	copy(out, series)
	if len(series) == 0 || cutoff <= 0 || cutoff >= 1 || order < 2 {
		return out
	}
	if order%2 != 0 {
		order++
	}

	// Direct form II transposed, section by section.
	for _, s := range highpassSections(order, cutoff) {
		var z1, z2 float64
		for i, x := range out {
			y := s.b0*x + z1
			z1 = s.b1*x - s.a1*y + z2
			z2 = s.b2*x - s.a2*y
			out[i] = y
		}
	}
	return out
}

// WindowedMeanAbs downsamples a high-rate series to targetLen values by
// splitting it into contiguous windows and emitting the mean absolute value
// of each. The trailing partial window is dropped; output is truncated or
// zero-padded to exactly targetLen.
func WindowedMeanAbs(series []float64, targetLen int) []float64 {
	if targetLen <= 0 {
		return nil
	}
	out := make([]float64, 0, targetLen)
	if len(series) > 0 {
		window := len(series) / targetLen
		if window < 1 {
			window = 1
		}
		for i := 0; i+window <= len(series) && len(out) < targetLen; i += window {
			out = append(out, MeanAbs(series[i:i+window]))
		}
	}
	for len(out) < targetLen {
		out = append(out, 0)
	}
	return out
}
