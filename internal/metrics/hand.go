package metrics

import (
	"github.com/CameronDeb/meta-aria-2/internal/models"
	"github.com/CameronDeb/meta-aria-2/internal/signalmath"
)

// minValidHandSamples is the floor below which position-derived metrics are
// omitted entirely rather than zeroed, so a sparse track never implies a
// measurement that was not made.
const minValidHandSamples = 10

// handFallbackRateHz is the assumed hand-tracking rate when per-sample
// timestamps are unavailable.
const handFallbackRateHz = 10.0

// handTremorCutoff is the normalized high-pass cutoff applied to the wrist
// velocity series.
const handTremorCutoff = 0.2

// ComputeHandMetrics derives kinematic metrics from a wrist-position track.
// Position metrics are computed over the valid sub-sequence only; tracking
// confidence and task duration come from the full track when the source
// columns existed. An empty or absent track yields an empty map.
func ComputeHandMetrics(track *models.HandTrack) map[string]float64 {
	result := map[string]float64{}
	if track == nil || len(track.Samples) == 0 {
		return result
	}

	valid := make([]models.HandSample, 0, len(track.Samples))
	for _, s := range track.Samples {
		if s.Valid() {
			valid = append(valid, s)
		}
	}

	if len(valid) >= minValidHandSamples {
		computePositionMetrics(valid, track.HasTimestamps, result)
	}

	if track.HasTimestamps {
		first := track.Samples[0].TimestampUs
		last := track.Samples[len(track.Samples)-1].TimestampUs
		result["task_duration_s"] = float64(last-first) / 1e6
	}

	if track.HasConfidence {
		confidence := make([]float64, len(track.Samples))
		for i, s := range track.Samples {
			confidence[i] = s.Confidence
		}
		result["avg_confidence"] = signalmath.Mean(confidence)
	}

	return result
}

func computePositionMetrics(valid []models.HandSample, hasTimestamps bool, result map[string]float64) {
	distances := make([]float64, len(valid)-1)
	for i := 1; i < len(valid); i++ {
		distances[i-1] = valid[i].Wrist.Sub(valid[i-1].Wrist).Norm()
	}

	rate := handFallbackRateHz
	if hasTimestamps {
		span := float64(valid[len(valid)-1].TimestampUs-valid[0].TimestampUs) / 1e6
		if span > 0 {
			rate = float64(len(valid)-1) / span
		}
	}

	var pathLength float64
	for _, d := range distances {
		pathLength += d
	}
	result["path_length_m"] = pathLength
	result["avg_speed_m_s"] = signalmath.Mean(distances) * rate

	velocities := make([]float64, len(distances))
	for i, d := range distances {
		velocities[i] = d * rate
	}
	result["velocity_variance"] = signalmath.Variance(velocities)
	result["smoothness_score"] = clampScore(10 - result["velocity_variance"]*1000)

	if len(velocities) >= signalmath.MinFilterSamples {
		result["hand_tremor"] = signalmath.MeanAbs(signalmath.HighPass(velocities, handTremorCutoff))
	} else {
		result["hand_tremor"] = 0
	}

	result["workspace_volume_m3"] = workspaceVolume(valid)

	// Straight-line distance over path length; a zero-length path means
	// the hand never moved, so efficiency is defined as 0 rather than NaN.
	if pathLength > 0 {
		result["efficiency"] = valid[len(valid)-1].Wrist.Sub(valid[0].Wrist).Norm() / pathLength
	} else {
		result["efficiency"] = 0
	}
}

// workspaceVolume is the axis-aligned bounding-box volume of the valid
// wrist positions.
func workspaceVolume(valid []models.HandSample) float64 {
	min := valid[0].Wrist
	max := valid[0].Wrist
	for _, s := range valid[1:] {
		w := s.Wrist
		if w.X < min.X {
			min.X = w.X
		}
		if w.Y < min.Y {
			min.Y = w.Y
		}
		if w.Z < min.Z {
			min.Z = w.Z
		}
		if w.X > max.X {
			max.X = w.X
		}
		if w.Y > max.Y {
			max.Y = w.Y
		}
		if w.Z > max.Z {
			max.Z = w.Z
		}
	}
	return (max.X - min.X) * (max.Y - min.Y) * (max.Z - min.Z)
}
