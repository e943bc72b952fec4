package metrics

import (
	"github.com/CameronDeb/meta-aria-2/internal/models"
)

// Weights for the overall score.
const (
	technicalSkillWeight   = 0.4
	stressManagementWeight = 0.3
	consistencyWeight      = 0.3
)

// AggregatePerformance combines the component scores into the weighted
// overall performance result on a 0-100 scale.
func AggregatePerformance(motion models.MotionMetrics, stability models.StabilityMetrics, stress models.StressMetrics) models.PerformanceMetrics {
	perf := models.PerformanceMetrics{}

	perf.TechnicalSkill = (motion.HeadStabilityScore + stability.VisualStability) / 2
	perf.StressManagement = clampScore(10 - stress.PeakStressLevel)
	perf.Consistency = clampScore(10 - (motion.AvgTremor*100 + stability.FrameJitter/10))

	overall := (perf.TechnicalSkill*technicalSkillWeight +
		perf.StressManagement*stressManagementWeight +
		perf.Consistency*consistencyWeight) * 10
	if overall > 100 {
		overall = 100
	}
	if overall < 0 {
		overall = 0
	}
	perf.OverallScore = overall

	return perf
}
