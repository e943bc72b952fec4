package metrics

import (
	"math"

	"github.com/CameronDeb/meta-aria-2/internal/models"
	"github.com/CameronDeb/meta-aria-2/internal/signalmath"
)

// saccadeThresholdRad is the per-sample pitch change above which a gaze
// shift counts as a saccade.
const saccadeThresholdRad = 0.1

// gazeFallbackRateHz is the assumed gaze sampling rate when per-sample
// timestamps are unavailable.
const gazeFallbackRateHz = 10.0

// ComputeGazeMetrics derives gaze-stability, focus-consistency, and saccade
// metrics from an eye-tracking stream. An empty track yields an empty map,
// not an error.
func ComputeGazeMetrics(track *models.GazeTrack) map[string]float64 {
	result := map[string]float64{}
	if track == nil || len(track.Samples) == 0 {
		return result
	}

	// Rows with empty or malformed cells arrive as NaN samples; computing
	// over them would poison every aggregate, so they are dropped first.
	valid := make([]models.GazeSample, 0, len(track.Samples))
	for _, s := range track.Samples {
		if s.Valid() {
			valid = append(valid, s)
		}
	}
	if len(valid) == 0 {
		return result
	}

	n := len(valid)
	pitch := make([]float64, n)
	leftYaw := make([]float64, n)
	rightYaw := make([]float64, n)
	depth := make([]float64, n)
	for i, s := range valid {
		pitch[i] = s.Pitch
		leftYaw[i] = s.LeftYaw
		rightYaw[i] = s.RightYaw
		depth[i] = s.DepthM
	}

	gazeVariance := (signalmath.Variance(pitch) + signalmath.Variance(leftYaw) + signalmath.Variance(rightYaw)) / 3
	result["gaze_stability"] = clampScore(10 - gazeVariance*100)

	result["avg_gaze_depth_m"] = signalmath.Mean(depth)
	result["gaze_focus_consistency"] = 1.0 / (1.0 + signalmath.Std(depth))

	// Frame-to-frame gaze shifts; combined yaw averages both eyes.
	pitchDiffs := make([]float64, 0, n-1)
	yawDiffs := make([]float64, 0, n-1)
	saccades := 0
	for i := 1; i < n; i++ {
		dPitch := math.Abs(pitch[i] - pitch[i-1])
		combined := (leftYaw[i] + rightYaw[i]) / 2
		prevCombined := (leftYaw[i-1] + rightYaw[i-1]) / 2

		pitchDiffs = append(pitchDiffs, dPitch)
		yawDiffs = append(yawDiffs, math.Abs(combined-prevCombined))
		if dPitch > saccadeThresholdRad {
			saccades++
		}
	}

	result["avg_gaze_shift"] = (signalmath.Mean(pitchDiffs) + signalmath.Mean(yawDiffs)) / 2
	result["saccades_per_second"] = float64(saccades) / gazeDurationS(track)

	return result
}

// gazeDurationS is the track's span in seconds, derived from timestamps
// when the source carried them and from the fixed-rate assumption
// otherwise.
func gazeDurationS(track *models.GazeTrack) float64 {
	n := len(track.Samples)
	if track.HasTimestamps && n > 1 {
		span := float64(track.Samples[n-1].TimestampUs-track.Samples[0].TimestampUs) / 1e6
		if span > 0 {
			return span
		}
	}
	return float64(n) / gazeFallbackRateHz
}
