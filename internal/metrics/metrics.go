// Package metrics turns raw per-sample sensor streams into the session's
// performance scores. Each analyzer is a pure function over its own slice
// of input; missing or short input degrades to defaults instead of failing.
package metrics

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/CameronDeb/meta-aria-2/internal/models"
)

// Calculator bundles the analyzers with a logger, the injected benchmark
// table, and the random source used by the simulated stress fallback.
type Calculator struct {
	log        *zap.Logger
	benchmarks *models.BenchmarkTable
	rng        *rand.Rand
}

// NewCalculator creates a Calculator. A nil table falls back to the
// compiled-in defaults; a nil rng gets a time-seeded source.
func NewCalculator(log *zap.Logger, table *models.BenchmarkTable, rng *rand.Rand) *Calculator {
	if table == nil {
		table = models.DefaultBenchmarkTable()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Calculator{log: log, benchmarks: table, rng: rng}
}

// Benchmarks exposes the injected reference table.
func (c *Calculator) Benchmarks() *models.BenchmarkTable {
	return c.benchmarks
}

// ComputeSessionMetrics runs every analyzer over one session and aggregates
// the result. Motion, stability, stress and performance categories are
// always present.
func (c *Calculator) ComputeSessionMetrics(session *models.SensorSession) *models.SessionMetrics {
	result := &models.SessionMetrics{}

	result.Motion = AnalyzeMotion(session)
	c.log.Debug("Motion analysis complete",
		zap.Float64("head_stability", result.Motion.HeadStabilityScore),
		zap.Float64("avg_tremor", result.Motion.AvgTremor),
	)

	result.Stability = AnalyzeVisualStability(session.Frames)
	c.log.Debug("Stability analysis complete",
		zap.Float64("visual_stability", result.Stability.VisualStability),
	)

	result.Stress = EstimateStress(session, c.rng)
	if result.Stress.Estimated {
		c.log.Info("No IMU data; stress metrics are simulated placeholders")
	}

	result.Performance = AggregatePerformance(result.Motion, result.Stability, result.Stress)
	c.log.Info("Session metrics computed",
		zap.Float64("overall_score", result.Performance.OverallScore),
	)

	return result
}

// AttachCompanionMetrics computes and attaches hand- and eye-tracking
// metrics when companion data was loaded. Nil tracks leave the result
// untouched.
func (c *Calculator) AttachCompanionMetrics(result *models.SessionMetrics, hand *models.HandTrack, gaze *models.GazeTrack) {
	if hand != nil {
		result.HandTracking = ComputeHandMetrics(hand)
		c.log.Debug("Hand-tracking metrics computed", zap.Int("count", len(result.HandTracking)))
	}
	if gaze != nil {
		result.EyeTracking = ComputeGazeMetrics(gaze)
		c.log.Debug("Eye-tracking metrics computed", zap.Int("count", len(result.EyeTracking)))
	}
}

// Recommendations computes the benchmark-gap training priorities for a
// session result.
func (c *Calculator) Recommendations(result *models.SessionMetrics) []TrainingRecommendation {
	return ComputeBenchmarkGaps(result, c.benchmarks)
}
