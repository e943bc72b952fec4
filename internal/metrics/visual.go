package metrics

import (
	"math"

	"github.com/CameronDeb/meta-aria-2/internal/models"
	"github.com/CameronDeb/meta-aria-2/internal/signalmath"
)

// maxFramePairs caps the number of consecutive frame pairs compared, to
// bound the per-session cost.
const maxFramePairs = 50

// AnalyzeVisualStability derives frame-to-frame jitter metrics from the
// sampled luminance frames. Fewer than two frames yields the zero-valued
// result.
func AnalyzeVisualStability(frames []models.Frame) models.StabilityMetrics {
	var stability models.StabilityMetrics
	if len(frames) < 2 {
		return stability
	}

	diffs := make([]float64, 0, maxFramePairs)
	for i := 1; i < len(frames) && i < maxFramePairs; i++ {
		diffs = append(diffs, meanAbsFrameDiff(frames[i-1].Luminance, frames[i].Luminance))
	}

	stability.FrameJitter = signalmath.Std(diffs)
	stability.VisualStability = clampScore(10 - stability.FrameJitter/10)

	// Placeholder until sharpness-based focus detection exists.
	stability.FocusScore = 7.5

	return stability
}

// meanAbsFrameDiff is the mean absolute per-pixel luminance difference
// between two frames. Mismatched dimensions are compared over the
// overlapping region.
func meanAbsFrameDiff(a, b [][]float64) float64 {
	rows := len(a)
	if len(b) < rows {
		rows = len(b)
	}

	var sum float64
	var count int
	for r := 0; r < rows; r++ {
		cols := len(a[r])
		if len(b[r]) < cols {
			cols = len(b[r])
		}
		for c := 0; c < cols; c++ {
			sum += math.Abs(a[r][c] - b[r][c])
			count++
		}
	}

	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
