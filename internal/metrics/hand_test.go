package metrics

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"

	"github.com/CameronDeb/meta-aria-2/internal/models"
)

// straightLineTrack builds n valid samples moving along x at equal spacing,
// starting at x=step to keep every position valid.
func straightLineTrack(n int, step float64) *models.HandTrack {
	track := &models.HandTrack{}
	for i := 0; i < n; i++ {
		track.Samples = append(track.Samples, models.HandSample{
			Wrist: r3.Vector{X: step * float64(i+1), Y: 0.1, Z: 0.2},
		})
	}
	return track
}

func TestHandMetricsEmpty(t *testing.T) {
	for _, track := range []*models.HandTrack{nil, {}} {
		if result := ComputeHandMetrics(track); len(result) != 0 {
			t.Errorf("empty track: want empty map, got %v", result)
		}
	}
}

func TestHandMetricsStraightLine(t *testing.T) {
	track := straightLineTrack(20, 0.05)

	result := ComputeHandMetrics(track)

	if got := result["path_length_m"]; math.Abs(got-0.95) > 1e-9 {
		t.Errorf("path_length_m = %v, want 0.95", got)
	}
	// No backtracking: straight-line distance equals path length.
	if got := result["efficiency"]; math.Abs(got-1.0) > 1e-9 {
		t.Errorf("efficiency = %v, want 1.0", got)
	}
	// Fixed 10 Hz fallback: constant 0.05 m steps give 0.5 m/s.
	if got := result["avg_speed_m_s"]; math.Abs(got-0.5) > 1e-9 {
		t.Errorf("avg_speed_m_s = %v, want 0.5", got)
	}
	// Constant velocity: perfectly smooth.
	if got := result["smoothness_score"]; math.Abs(got-10) > 1e-9 {
		t.Errorf("smoothness_score = %v, want 10", got)
	}
	// Movement along one axis only: degenerate bounding box.
	if got := result["workspace_volume_m3"]; got != 0 {
		t.Errorf("workspace_volume_m3 = %v, want 0", got)
	}
	if got := result["hand_tremor"]; got != 0 {
		t.Errorf("hand_tremor = %v, want 0 below the filter floor", got)
	}
}

func TestHandMetricsStationaryHand(t *testing.T) {
	track := &models.HandTrack{}
	for i := 0; i < 15; i++ {
		track.Samples = append(track.Samples, models.HandSample{
			Wrist: r3.Vector{X: 0.5, Y: 0.5, Z: 0.5},
		})
	}

	result := ComputeHandMetrics(track)
	if result["path_length_m"] != 0 {
		t.Errorf("path_length_m = %v, want 0", result["path_length_m"])
	}
	// Zero path length must define efficiency as 0, never NaN.
	if got := result["efficiency"]; got != 0 || math.IsNaN(got) {
		t.Errorf("efficiency = %v, want exactly 0", got)
	}
}

func TestHandMetricsTooFewValidSamples(t *testing.T) {
	track := &models.HandTrack{HasTimestamps: true, HasConfidence: true}
	for i := 0; i < 30; i++ {
		sample := models.HandSample{
			TimestampUs: int64(i) * 100_000,
			Confidence:  0.8,
		}
		// Only five samples carry a usable position.
		if i < 5 {
			sample.Wrist = r3.Vector{X: 0.1 * float64(i+1), Y: 0.1, Z: 0.1}
		}
		track.Samples = append(track.Samples, sample)
	}

	result := ComputeHandMetrics(track)

	for _, key := range []string{"path_length_m", "smoothness_score", "efficiency", "hand_tremor", "workspace_volume_m3", "avg_speed_m_s", "velocity_variance"} {
		if _, ok := result[key]; ok {
			t.Errorf("%s present with <10 valid samples; position metrics must be omitted", key)
		}
	}
	if got := result["avg_confidence"]; math.Abs(got-0.8) > 1e-12 {
		t.Errorf("avg_confidence = %v, want 0.8", got)
	}
	if got := result["task_duration_s"]; math.Abs(got-2.9) > 1e-9 {
		t.Errorf("task_duration_s = %v, want 2.9", got)
	}
}

func TestHandMetricsFiltersInvalidSamples(t *testing.T) {
	track := straightLineTrack(20, 0.05)

	// Interleave dropped-tracking markers; they must not contribute to the
	// path.
	invalid := []models.HandSample{
		{Wrist: r3.Vector{}},
		{Wrist: r3.Vector{X: -1, Y: 0.3, Z: 0.3}},
		{Wrist: r3.Vector{X: math.NaN(), Y: 0.3, Z: 0.3}},
	}
	track.Samples = append(invalid, track.Samples...)
	track.Samples = append(track.Samples, invalid...)

	result := ComputeHandMetrics(track)
	if got := result["path_length_m"]; math.Abs(got-0.95) > 1e-9 {
		t.Errorf("path_length_m = %v, want 0.95 over valid samples only", got)
	}
	if got := result["efficiency"]; math.Abs(got-1.0) > 1e-9 {
		t.Errorf("efficiency = %v, want 1.0", got)
	}
}

func TestHandMetricsTimestampDerivedRate(t *testing.T) {
	// 20 valid samples spanning 0.95 s: rate = 19/0.95 = 20 Hz, so the
	// constant 0.05 m step becomes 1.0 m/s.
	track := straightLineTrack(20, 0.05)
	track.HasTimestamps = true
	for i := range track.Samples {
		track.Samples[i].TimestampUs = int64(i) * 50_000
	}

	result := ComputeHandMetrics(track)
	if got := result["avg_speed_m_s"]; math.Abs(got-1.0) > 1e-9 {
		t.Errorf("avg_speed_m_s = %v, want 1.0 from timestamp-derived rate", got)
	}
}

func TestHandMetricsWorkspaceVolume(t *testing.T) {
	track := &models.HandTrack{}
	// Corners of a 0.2 x 0.1 x 0.05 box, repeated to clear the sample
	// floor.
	corners := []r3.Vector{
		{X: 0.1, Y: 0.1, Z: 0.1},
		{X: 0.3, Y: 0.2, Z: 0.15},
	}
	for i := 0; i < 12; i++ {
		track.Samples = append(track.Samples, models.HandSample{Wrist: corners[i%2]})
	}

	result := ComputeHandMetrics(track)
	want := 0.2 * 0.1 * 0.05
	if got := result["workspace_volume_m3"]; math.Abs(got-want) > 1e-12 {
		t.Errorf("workspace_volume_m3 = %v, want %v", got, want)
	}
}
