package metrics

import (
	"math"
	"math/rand"

	"github.com/CameronDeb/meta-aria-2/internal/models"
	"github.com/CameronDeb/meta-aria-2/internal/signalmath"
)

// EstimateStress produces heuristic stress-proxy metrics. The device has no
// usable PPG stream here, so heart rate is never measured: with IMU data it
// is modeled from motion variability, and without it the estimator emits
// randomized plausible placeholders from the supplied source. Callers pass
// an explicit rng so the fallback path is deterministic under test.
func EstimateStress(session *models.SensorSession, rng *rand.Rand) models.StressMetrics {
	if len(session.IMU) == 0 {
		return models.StressMetrics{
			AvgHeartRate:         75 + float64(rng.Intn(20)-5),
			HeartRateVariability: 30 + rng.Float64()*30,
			PeakStressLevel:      5 + rng.Float64()*3,
			Estimated:            true,
		}
	}

	// Per-sample variance across the three accelerometer axes.
	accelVars := make([]float64, len(session.IMU))
	for i, sample := range session.IMU {
		a := sample.Accel
		accelVars[i] = signalmath.Variance([]float64{a.X, a.Y, a.Z})
	}

	meanVar := signalmath.Mean(accelVars)
	return models.StressMetrics{
		AvgHeartRate:         float64(int(70 + meanVar*50)),
		HeartRateVariability: signalmath.Std(accelVars) * 100,
		PeakStressLevel:      math.Min(10, meanVar*100),
	}
}
