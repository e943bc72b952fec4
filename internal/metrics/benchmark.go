package metrics

import (
	"sort"

	"github.com/CameronDeb/meta-aria-2/internal/models"
)

// TrainingRecommendation is one prioritized gap against the expert
// benchmark table.
type TrainingRecommendation struct {
	Area     string  `json:"area"`
	Metric   string  `json:"metric"`
	Issue    string  `json:"issue"`
	Priority string  `json:"priority"`
	Advice   string  `json:"advice"`
	Value    float64 `json:"value"`
	Expert   float64 `json:"expert"`
	Gap      float64 `json:"gap"`
}

var priorityRank = map[string]int{
	models.PriorityHigh:   0,
	models.PriorityMedium: 1,
	models.PriorityLow:    2,
}

// ComputeBenchmarkGaps compares a session's metrics against the expert
// reference table and returns the priority training areas, ordered
// HIGH→MEDIUM→LOW and by gap size within a priority. Metrics missing from
// the session or with gaps below the table's floor are excluded.
func ComputeBenchmarkGaps(m *models.SessionMetrics, table *models.BenchmarkTable) []TrainingRecommendation {
	recs := make([]TrainingRecommendation, 0, len(table.Benchmarks))

	for _, b := range table.Benchmarks {
		value, ok := lookupMetric(m, b.Metric)
		if !ok {
			continue
		}

		// A tripped threshold always flags the metric; the gap floor only
		// suppresses noise on metrics inside their threshold. Without the
		// distinction, small-scale metrics like hand_tremor could never
		// clear an absolute floor sized for the 0-10 scores.
		gap := b.Gap(value)
		triggered := b.Triggered(value)
		if !triggered && gap <= table.MinGap {
			continue
		}

		// Inside its threshold a metric still shows up when the gap is
		// large enough, but only as low priority.
		priority := models.PriorityLow
		if triggered {
			priority = b.Priority
		}

		recs = append(recs, TrainingRecommendation{
			Area:     b.Area,
			Metric:   b.Metric,
			Issue:    b.Issue,
			Priority: priority,
			Advice:   b.Advice,
			Value:    value,
			Expert:   b.Expert,
			Gap:      gap,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if priorityRank[recs[i].Priority] != priorityRank[recs[j].Priority] {
			return priorityRank[recs[i].Priority] < priorityRank[recs[j].Priority]
		}
		return recs[i].Gap > recs[j].Gap
	})

	return recs
}

// lookupMetric resolves a benchmark metric name against the session result.
// Hand and eye metrics live in the optional maps; the rest map to fixed
// result fields.
func lookupMetric(m *models.SessionMetrics, metric string) (float64, bool) {
	if v, ok := m.HandTracking[metric]; ok {
		return v, true
	}
	if v, ok := m.EyeTracking[metric]; ok {
		return v, true
	}

	switch metric {
	case "head_stability_score":
		return m.Motion.HeadStabilityScore, true
	case "head_movement_total":
		return m.Motion.HeadMovementTotal, true
	case "avg_tremor":
		return m.Motion.AvgTremor, true
	case "visual_stability":
		return m.Stability.VisualStability, true
	case "frame_jitter":
		return m.Stability.FrameJitter, true
	case "overall_score":
		return m.Performance.OverallScore, true
	case "technical_skill":
		return m.Performance.TechnicalSkill, true
	case "consistency":
		return m.Performance.Consistency, true
	}
	return 0, false
}
