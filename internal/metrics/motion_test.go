package metrics

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"

	"github.com/CameronDeb/meta-aria-2/internal/models"
)

func stationarySession(samples, frames int) *models.SensorSession {
	session := &models.SensorSession{FrameCount: frames}
	for i := 0; i < samples; i++ {
		session.IMU = append(session.IMU, models.IMUSample{
			TimestampNs: int64(i) * 1_000_000,
			Accel:       r3.Vector{X: 0, Y: 0, Z: 9.81},
			Gyro:        r3.Vector{},
		})
	}
	return session
}

func TestAnalyzeMotionStationary(t *testing.T) {
	motion := AnalyzeMotion(stationarySession(150, 30))

	if motion.HeadMovementTotal != 0 {
		t.Errorf("head_movement_total = %v, want 0", motion.HeadMovementTotal)
	}
	if motion.HeadStabilityScore != 10 {
		t.Errorf("head_stability_score = %v, want 10", motion.HeadStabilityScore)
	}
	if math.Abs(motion.AvgTremor) > 1e-9 {
		t.Errorf("avg_tremor = %v, want ~0", motion.AvgTremor)
	}
	if len(motion.TremorPerFrame) != 30 {
		t.Errorf("tremor_per_frame length = %d, want 30", len(motion.TremorPerFrame))
	}
}

func TestAnalyzeMotionNoIMU(t *testing.T) {
	motion := AnalyzeMotion(&models.SensorSession{FrameCount: 10})

	if motion.HeadMovementTotal != 0 || motion.HeadStabilityScore != 0 || motion.AvgTremor != 0 {
		t.Errorf("missing IMU should yield zero defaults, got %+v", motion)
	}
	if motion.TremorPerFrame == nil || len(motion.TremorPerFrame) != 0 {
		t.Errorf("tremor_per_frame = %v, want empty sequence", motion.TremorPerFrame)
	}
}

func TestHeadStabilityClampsAtZero(t *testing.T) {
	session := &models.SensorSession{FrameCount: 10}
	for i := 0; i < 150; i++ {
		// Alternating large gyro magnitudes give std well above 1.
		mag := 0.0
		if i%2 == 0 {
			mag = 5.0
		}
		session.IMU = append(session.IMU, models.IMUSample{
			Accel: r3.Vector{Z: 9.81},
			Gyro:  r3.Vector{X: mag},
		})
	}

	motion := AnalyzeMotion(session)
	if motion.HeadStabilityScore != 0 {
		t.Errorf("head_stability_score = %v, want clamp to 0", motion.HeadStabilityScore)
	}
	if motion.HeadMovementTotal <= 0 {
		t.Errorf("head_movement_total = %v, want > 0", motion.HeadMovementTotal)
	}
}

func TestHeadStabilityMonotoneInGyroStd(t *testing.T) {
	score := func(mag float64) float64 {
		session := &models.SensorSession{}
		for i := 0; i < 120; i++ {
			m := 0.0
			if i%2 == 0 {
				m = mag
			}
			session.IMU = append(session.IMU, models.IMUSample{
				Accel: r3.Vector{Z: 9.81},
				Gyro:  r3.Vector{X: m},
			})
		}
		return AnalyzeMotion(session).HeadStabilityScore
	}

	prev := score(0)
	if prev != 10 {
		t.Fatalf("score at zero std = %v, want exactly 10", prev)
	}
	for _, mag := range []float64{0.2, 0.5, 1.0, 4.0} {
		cur := score(mag)
		if cur > prev {
			t.Errorf("score increased from %v to %v as gyro std grew", prev, cur)
		}
		if cur < 0 {
			t.Errorf("score = %v, must never go below 0", cur)
		}
		prev = cur
	}
}

func TestTremorSkippedBelowFilterFloor(t *testing.T) {
	// 50 samples of noisy acceleration stay below the filter floor, so
	// tremor metrics keep their zero defaults.
	session := &models.SensorSession{FrameCount: 10}
	for i := 0; i < 50; i++ {
		session.IMU = append(session.IMU, models.IMUSample{
			Accel: r3.Vector{X: float64(i % 3), Z: 9.81},
		})
	}

	motion := AnalyzeMotion(session)
	if motion.AvgTremor != 0 {
		t.Errorf("avg_tremor = %v, want 0 below the sample floor", motion.AvgTremor)
	}
	if len(motion.TremorPerFrame) != 0 {
		t.Errorf("tremor_per_frame = %v, want empty below the sample floor", motion.TremorPerFrame)
	}
}
