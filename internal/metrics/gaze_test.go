package metrics

import (
	"math"
	"testing"

	"github.com/CameronDeb/meta-aria-2/internal/models"
)

func TestComputeGazeMetricsEmpty(t *testing.T) {
	for _, track := range []*models.GazeTrack{nil, {}} {
		result := ComputeGazeMetrics(track)
		if len(result) != 0 {
			t.Errorf("empty track: want empty map, got %v", result)
		}
	}
}

func TestComputeGazeMetricsSteadyGaze(t *testing.T) {
	track := &models.GazeTrack{}
	for i := 0; i < 40; i++ {
		track.Samples = append(track.Samples, models.GazeSample{
			Pitch:    0.1,
			LeftYaw:  -0.05,
			RightYaw: 0.05,
			DepthM:   0.4,
		})
	}

	result := ComputeGazeMetrics(track)
	if result["gaze_stability"] != 10 {
		t.Errorf("gaze_stability = %v, want 10 for a steady gaze", result["gaze_stability"])
	}
	if math.Abs(result["avg_gaze_depth_m"]-0.4) > 1e-12 {
		t.Errorf("avg_gaze_depth_m = %v, want 0.4", result["avg_gaze_depth_m"])
	}
	if result["gaze_focus_consistency"] != 1 {
		t.Errorf("gaze_focus_consistency = %v, want 1 for constant depth", result["gaze_focus_consistency"])
	}
	if result["saccades_per_second"] != 0 {
		t.Errorf("saccades_per_second = %v, want 0", result["saccades_per_second"])
	}
}

func TestComputeGazeMetricsDropsNaNSamples(t *testing.T) {
	// Empty CSV cells arrive as NaN samples; aggregates must come from the
	// remaining rows instead of poisoning every metric.
	track := &models.GazeTrack{}
	for i := 0; i < 20; i++ {
		track.Samples = append(track.Samples, models.GazeSample{
			Pitch:    0.1,
			LeftYaw:  -0.05,
			RightYaw: 0.05,
			DepthM:   0.4,
		})
	}
	track.Samples[7].DepthM = math.NaN()
	track.Samples[13].Pitch = math.NaN()

	result := ComputeGazeMetrics(track)
	for key, value := range result {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			t.Errorf("%s = %v, want a finite value", key, value)
		}
	}
	if math.Abs(result["avg_gaze_depth_m"]-0.4) > 1e-12 {
		t.Errorf("avg_gaze_depth_m = %v, want 0.4 over the valid samples", result["avg_gaze_depth_m"])
	}
	if result["gaze_stability"] != 10 {
		t.Errorf("gaze_stability = %v, want 10 for a steady gaze", result["gaze_stability"])
	}
}

func TestComputeGazeMetricsAllNaN(t *testing.T) {
	track := &models.GazeTrack{
		Samples: []models.GazeSample{
			{Pitch: math.NaN(), DepthM: 0.4},
			{Pitch: 0.1, DepthM: math.NaN()},
		},
	}
	if result := ComputeGazeMetrics(track); len(result) != 0 {
		t.Errorf("want empty map when no sample is valid, got %v", result)
	}
}

func TestSaccadeRateFixedRateFallback(t *testing.T) {
	// Pitch alternates by 0.2 rad, so every transition is a saccade. Four
	// samples without timestamps assume 10 Hz: 3 events / 0.4 s = 7.5.
	track := &models.GazeTrack{}
	for i := 0; i < 4; i++ {
		pitch := 0.0
		if i%2 == 1 {
			pitch = 0.2
		}
		track.Samples = append(track.Samples, models.GazeSample{Pitch: pitch, DepthM: 0.5})
	}

	result := ComputeGazeMetrics(track)
	if got := result["saccades_per_second"]; math.Abs(got-7.5) > 1e-12 {
		t.Errorf("saccades_per_second = %v, want 7.5", got)
	}
}

func TestSaccadeRatePrefersTimestamps(t *testing.T) {
	// Same events over a 2-second timestamped span: 3 events / 2 s = 1.5.
	track := &models.GazeTrack{HasTimestamps: true}
	for i := 0; i < 4; i++ {
		pitch := 0.0
		if i%2 == 1 {
			pitch = 0.2
		}
		track.Samples = append(track.Samples, models.GazeSample{
			TimestampUs: int64(i) * 666_667,
			Pitch:       pitch,
			DepthM:      0.5,
		})
	}

	result := ComputeGazeMetrics(track)
	want := 3.0 / 2.000001
	if got := result["saccades_per_second"]; math.Abs(got-want) > 1e-6 {
		t.Errorf("saccades_per_second = %v, want %v from timestamps", got, want)
	}
}

func TestGazeShiftBelowThresholdIsNotSaccade(t *testing.T) {
	track := &models.GazeTrack{}
	for i := 0; i < 10; i++ {
		pitch := 0.0
		if i%2 == 1 {
			pitch = 0.05
		}
		track.Samples = append(track.Samples, models.GazeSample{Pitch: pitch})
	}

	result := ComputeGazeMetrics(track)
	if result["saccades_per_second"] != 0 {
		t.Errorf("saccades_per_second = %v, want 0 below threshold", result["saccades_per_second"])
	}
	if result["avg_gaze_shift"] <= 0 {
		t.Errorf("avg_gaze_shift = %v, want > 0 for a moving gaze", result["avg_gaze_shift"])
	}
}
