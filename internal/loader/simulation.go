package loader

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r3"

	"github.com/CameronDeb/meta-aria-2/internal/models"
)

// Simulated session shape: ten seconds at 30 fps with IMU at ten times the
// frame rate, matching a short recording.
const (
	simFrameCount = 300
	simFrameRows  = 60
	simFrameCols  = 80
)

// SimulatedSession builds a synthetic session for development and tests
// when no device recording is available: a bright blob orbiting a dark
// frame, and IMU noise around gravity. The caller supplies the random
// source so runs are reproducible.
func SimulatedSession(rng *rand.Rand, opts Options) *models.SensorSession {
	session := &models.SensorSession{
		RecordingPath: "simulation",
		FrameCount:    simFrameCount,
		DurationS:     float64(simFrameCount) / assumedFrameRate,
	}

	stride := 1
	if opts.MaxFrames > 0 && simFrameCount > opts.MaxFrames {
		stride = simFrameCount / opts.MaxFrames
	}
	for i := 0; i < simFrameCount; i += stride {
		session.Frames = append(session.Frames, models.Frame{
			Index:       i,
			TimestampNs: int64(i) * 33_333_333,
			Luminance:   simFrame(i),
		})
	}

	imuCount := simFrameCount * 10
	imuStride := 1
	if opts.MaxIMUSamples > 0 && imuCount > opts.MaxIMUSamples {
		imuStride = imuCount / opts.MaxIMUSamples
	}
	for i := 0; i < imuCount; i += imuStride {
		session.IMU = append(session.IMU, models.IMUSample{
			TimestampNs: int64(i) * 3_333_333,
			Accel: r3.Vector{
				X: rng.NormFloat64() * 0.1,
				Y: rng.NormFloat64() * 0.1,
				Z: 9.81 + rng.NormFloat64()*0.1,
			},
			Gyro: r3.Vector{
				X: rng.NormFloat64() * 0.05,
				Y: rng.NormFloat64() * 0.05,
				Z: rng.NormFloat64() * 0.05,
			},
		})
	}

	return session
}

// simFrame renders frame i: dark background with a bright blob moving on a
// slow orbit, so consecutive frames differ by a small, steady amount.
func simFrame(i int) [][]float64 {
	cx := float64(simFrameCols)/2 + 20*math.Sin(float64(i)*0.1)
	cy := float64(simFrameRows)/2 + 10*math.Cos(float64(i)*0.1)

	lum := make([][]float64, simFrameRows)
	for r := 0; r < simFrameRows; r++ {
		row := make([]float64, simFrameCols)
		for c := 0; c < simFrameCols; c++ {
			dx := float64(c) - cx
			dy := float64(r) - cy
			if dx*dx+dy*dy < 25 {
				row[c] = 220
			} else {
				row[c] = 15
			}
		}
		lum[r] = row
	}
	return lum
}
