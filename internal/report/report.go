// Package report renders the per-session HTML dashboard and the metrics
// JSON consumed by downstream tooling.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-echarts/go-echarts/v2/components"
	"go.uber.org/zap"

	"github.com/CameronDeb/meta-aria-2/internal/metrics"
	"github.com/CameronDeb/meta-aria-2/internal/models"
)

// Generator writes session reports.
type Generator struct {
	log *zap.Logger
}

func NewGenerator(log *zap.Logger) *Generator {
	return &Generator{log: log}
}

// sessionJSON is the shape of the metrics.json dump.
type sessionJSON struct {
	Timestamp   string `json:"timestamp"`
	SessionInfo struct {
		Duration      float64 `json:"duration"`
		NumFrames     int     `json:"num_frames"`
		RecordingPath string  `json:"recording_path"`
	} `json:"session_info"`
	Metrics         map[string]map[string]float64    `json:"metrics"`
	Badge           string                           `json:"badge"`
	Strengths       []string                         `json:"strengths"`
	Improvements    []string                         `json:"improvements"`
	Recommendations []metrics.TrainingRecommendation `json:"recommendations"`

	// StressNote flags the simulated heart-rate path; these values must
	// never read as measurements.
	StressNote string `json:"stress_note,omitempty"`
}

// Generate writes report.html and metrics.json for a session into
// outputDir and returns the report path.
func (g *Generator) Generate(sessionName string, session *models.SensorSession, m *models.SessionMetrics, recs []metrics.TrainingRecommendation, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("could not create report directory: %w", err)
	}

	reportPath := filepath.Join(outputDir, "report.html")
	f, err := os.Create(reportPath)
	if err != nil {
		return "", fmt.Errorf("could not create report file: %w", err)
	}
	defer f.Close()

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(
		overallGauge(m.Performance.OverallScore),
		performanceChart(m.Performance),
		tremorChart(m.Motion.TremorPerFrame),
	)
	if len(recs) > 0 {
		page.AddCharts(benchmarkChart(recs))
	}
	if err := page.Render(f); err != nil {
		return "", fmt.Errorf("could not render report charts: %w", err)
	}

	if err := g.writeJSON(sessionName, session, m, recs, filepath.Join(outputDir, "metrics.json")); err != nil {
		return "", err
	}

	g.log.Info("Report generated",
		zap.String("session", sessionName),
		zap.String("path", reportPath),
	)
	return reportPath, nil
}

func (g *Generator) writeJSON(sessionName string, session *models.SensorSession, m *models.SessionMetrics, recs []metrics.TrainingRecommendation, path string) error {
	var doc sessionJSON
	doc.Timestamp = time.Now().Format(time.RFC3339)
	doc.SessionInfo.Duration = session.DurationS
	doc.SessionInfo.NumFrames = session.FrameCount
	doc.SessionInfo.RecordingPath = session.RecordingPath
	doc.Metrics = m.Flatten()
	doc.Badge = PerformanceBadge(m.Performance.OverallScore)
	doc.Strengths = Strengths(m)
	doc.Improvements = Improvements(m)
	doc.Recommendations = recs
	if m.Stress.Estimated {
		doc.StressNote = "Heart-rate values are simulated placeholders, not measurements"
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal metrics JSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("could not write metrics JSON: %w", err)
	}
	return nil
}

// PerformanceBadge maps an overall score to its report label.
func PerformanceBadge(score float64) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}

// Strengths lists the session's standout qualities.
func Strengths(m *models.SessionMetrics) []string {
	var strengths []string
	if m.Motion.HeadStabilityScore >= 7 {
		strengths = append(strengths, "Excellent head stability")
	}
	if m.Motion.AvgTremor < 0.05 {
		strengths = append(strengths, "Minimal hand tremor")
	}
	if m.Stress.PeakStressLevel < 5 {
		strengths = append(strengths, "Good stress management")
	}
	if len(strengths) == 0 {
		strengths = append(strengths, "Continue building core skills")
	}
	return strengths
}

// Improvements lists the session's weak points.
func Improvements(m *models.SessionMetrics) []string {
	var improvements []string
	if m.Motion.HeadStabilityScore < 5 {
		improvements = append(improvements, "Work on maintaining steady head position")
	}
	if m.Motion.AvgTremor > 0.1 {
		improvements = append(improvements, "Practice hand steadiness exercises")
	}
	if m.Stress.PeakStressLevel > 7 {
		improvements = append(improvements, "Develop stress management techniques")
	}
	if len(improvements) == 0 {
		improvements = append(improvements, "Maintain current performance level")
	}
	return improvements
}
