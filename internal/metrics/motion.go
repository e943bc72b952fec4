package metrics

import (
	"github.com/golang/geo/r3"

	"github.com/CameronDeb/meta-aria-2/internal/models"
	"github.com/CameronDeb/meta-aria-2/internal/signalmath"
)

// gravity in the device frame, subtracted before tremor analysis.
var gravity = r3.Vector{X: 0, Y: 0, Z: 9.81}

// tremorCutoff is the normalized high-pass cutoff (fraction of Nyquist)
// that isolates the tremor band from the linear-acceleration magnitude.
const tremorCutoff = 0.1

// AnalyzeMotion derives head movement and tremor metrics from the session's
// IMU stream. A session without IMU data yields the zero-valued result; the
// analyzer never fails on missing input.
func AnalyzeMotion(session *models.SensorSession) models.MotionMetrics {
	motion := models.MotionMetrics{TremorPerFrame: []float64{}}
	if len(session.IMU) == 0 {
		return motion
	}

	gyroMags := make([]float64, len(session.IMU))
	accelMags := make([]float64, len(session.IMU))
	for i, sample := range session.IMU {
		gyroMags[i] = sample.Gyro.Norm()
		accelMags[i] = sample.Accel.Sub(gravity).Norm()
	}

	// Rectified sum, not a true angular integral: grows with sample count,
	// so it is only comparable within one session.
	var total float64
	for _, m := range gyroMags {
		total += m
	}
	motion.HeadMovementTotal = total

	motion.HeadStabilityScore = clampScore(10 - signalmath.Std(gyroMags)*10)

	// The filter response degenerates on short windows, so tremor metrics
	// stay at their zero defaults below the floor.
	if len(accelMags) >= signalmath.MinFilterSamples {
		tremor := signalmath.HighPass(accelMags, tremorCutoff)
		motion.AvgTremor = signalmath.MeanAbs(tremor)
		motion.TremorPerFrame = signalmath.WindowedMeanAbs(tremor, session.FrameCount)
	}

	return motion
}

// clampScore keeps a 0-10 score from going negative.
func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	return score
}
