package models

import (
	"time"

	"github.com/google/uuid"
)

// MotionMetrics come from the IMU streams.
type MotionMetrics struct {
	HeadMovementTotal  float64   `json:"head_movement_total"`
	HeadStabilityScore float64   `json:"head_stability_score"`
	AvgTremor          float64   `json:"avg_tremor"`
	TremorPerFrame     []float64 `json:"tremor_per_frame"`
}

// StabilityMetrics come from frame-to-frame differences of the sampled RGB
// frames.
type StabilityMetrics struct {
	FocusScore      float64 `json:"focus_score"`
	VisualStability float64 `json:"visual_stability"`
	FrameJitter     float64 `json:"frame_jitter"`
}

// StressMetrics are heuristic proxies derived from motion variability. None
// of these is a physiological measurement; Estimated marks values produced
// by the randomized fallback when no IMU data exists.
type StressMetrics struct {
	AvgHeartRate         float64 `json:"avg_heart_rate"`
	HeartRateVariability float64 `json:"heart_rate_variability"`
	PeakStressLevel      float64 `json:"peak_stress_level"`
	Estimated            bool    `json:"estimated"`
}

// PerformanceMetrics aggregate the component scores.
type PerformanceMetrics struct {
	OverallScore     float64 `json:"overall_score"`
	TechnicalSkill   float64 `json:"technical_skill"`
	StressManagement float64 `json:"stress_management"`
	Consistency      float64 `json:"consistency"`
}

// SessionMetrics is the full result for one recording. Motion, Stability,
// Stress and Performance are always present; HandTracking and EyeTracking
// are only populated when companion data existed, and their maps omit any
// metric that could not be computed rather than zeroing it.
type SessionMetrics struct {
	Motion       MotionMetrics      `json:"motion"`
	Stability    StabilityMetrics   `json:"stability"`
	Stress       StressMetrics      `json:"stress"`
	Performance  PerformanceMetrics `json:"performance"`
	HandTracking map[string]float64 `json:"hand_tracking,omitempty"`
	EyeTracking  map[string]float64 `json:"eye_tracking,omitempty"`
}

// Flatten returns the scalar metrics grouped by category name, skipping
// per-frame sequences. The metrics store and the report JSON both consume
// this shape.
func (m *SessionMetrics) Flatten() map[string]map[string]float64 {
	flat := map[string]map[string]float64{
		"motion": {
			"head_movement_total":  m.Motion.HeadMovementTotal,
			"head_stability_score": m.Motion.HeadStabilityScore,
			"avg_tremor":           m.Motion.AvgTremor,
		},
		"stability": {
			"focus_score":      m.Stability.FocusScore,
			"visual_stability": m.Stability.VisualStability,
			"frame_jitter":     m.Stability.FrameJitter,
		},
		"stress": {
			"avg_heart_rate":         m.Stress.AvgHeartRate,
			"heart_rate_variability": m.Stress.HeartRateVariability,
			"peak_stress_level":      m.Stress.PeakStressLevel,
		},
		"performance": {
			"overall_score":     m.Performance.OverallScore,
			"technical_skill":   m.Performance.TechnicalSkill,
			"stress_management": m.Performance.StressManagement,
			"consistency":       m.Performance.Consistency,
		},
	}
	if len(m.HandTracking) > 0 {
		flat["hand_tracking"] = m.HandTracking
	}
	if len(m.EyeTracking) > 0 {
		flat["eye_tracking"] = m.EyeTracking
	}
	return flat
}

// SessionRecord is the persisted summary row for one analyzed session.
type SessionRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionName   string    `gorm:"index"`
	RecordingPath string
	DurationS     float64
	FrameCount    int
	OverallScore  float64
	CreatedAt     time.Time
}

// SessionMetricRecord is one scalar metric row, keyed the same way the
// report JSON is (category + metric key).
type SessionMetricRecord struct {
	ID          int       `gorm:"primaryKey"`
	SessionID   uuid.UUID `gorm:"type:uuid;index"`
	Category    string
	MetricKey   string
	MetricValue float64
	CreatedAt   time.Time
}
