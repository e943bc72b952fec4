package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Training priorities for benchmark gaps.
const (
	PriorityHigh   = "HIGH"
	PriorityMedium = "MEDIUM"
	PriorityLow    = "LOW"
)

// Benchmark is one reference entry: the expert value for a metric, the
// direction of improvement, and the threshold at which the gap becomes a
// flagged training priority.
type Benchmark struct {
	Metric        string  `yaml:"metric"`
	Expert        float64 `yaml:"expert"`
	LowerIsBetter bool    `yaml:"lower_is_better"`
	Threshold     float64 `yaml:"threshold"`
	Priority      string  `yaml:"priority"`
	Area          string  `yaml:"area"`
	Issue         string  `yaml:"issue"`
	Advice        string  `yaml:"advice"`
}

// Triggered reports whether the session value crosses the entry's priority
// threshold. For lower-is-better metrics the threshold is an upper bound,
// otherwise a lower bound.
func (b Benchmark) Triggered(value float64) bool {
	if b.LowerIsBetter {
		return value > b.Threshold
	}
	return value < b.Threshold
}

// Gap is how far the session value falls short of the expert reference,
// positive when there is room to improve.
func (b Benchmark) Gap(value float64) float64 {
	if b.LowerIsBetter {
		return value - b.Expert
	}
	return b.Expert - value
}

// BenchmarkTable is the read-only reference set injected into the
// aggregator. MinGap excludes metrics whose gap is too small to be worth
// flagging.
type BenchmarkTable struct {
	MinGap     float64     `yaml:"min_gap"`
	Benchmarks []Benchmark `yaml:"benchmarks"`
}

// LoadBenchmarkTable reads and parses a benchmark YAML file.
func LoadBenchmarkTable(path string) (*BenchmarkTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read benchmark file: %w", err)
	}

	var table BenchmarkTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to unmarshal benchmark YAML: %w", err)
	}
	if table.MinGap == 0 {
		table.MinGap = 0.05
	}

	return &table, nil
}

// DefaultBenchmarkTable returns the compiled-in expert reference set, used
// when no benchmark file is configured.
func DefaultBenchmarkTable() *BenchmarkTable {
	return &BenchmarkTable{
		MinGap: 0.05,
		Benchmarks: []Benchmark{
			{
				Metric:        "path_length_m",
				Expert:        1.5,
				LowerIsBetter: true,
				Threshold:     3.0,
				Priority:      PriorityHigh,
				Area:          "Movement Economy",
				Issue:         "Hand path is much longer than the expert reference",
				Advice:        "Practice deliberate, planned instrument moves to shorten total hand travel",
			},
			{
				Metric:    "smoothness_score",
				Expert:    8.5,
				Threshold: 5.0,
				Priority:  PriorityHigh,
				Area:      "Movement Smoothness",
				Issue:     "Velocity profile is uneven",
				Advice:    "Slow down and work on continuous, fluid motions without velocity spikes",
			},
			{
				Metric:    "efficiency",
				Expert:    0.85,
				Threshold: 0.3,
				Priority:  PriorityMedium,
				Area:      "Movement Efficiency",
				Issue:     "Hand travels far off the direct line between start and end",
				Advice:    "Reduce backtracking and repositioning between task steps",
			},
			{
				Metric:        "hand_tremor",
				Expert:        0.003,
				LowerIsBetter: true,
				Threshold:     0.01,
				Priority:      PriorityMedium,
				Area:          "Hand Steadiness",
				Issue:         "High-frequency hand tremor above the expert reference",
				Advice:        "Use supported grips and practice sustained steady-hold exercises",
			},
			{
				Metric:    "head_stability_score",
				Expert:    9.0,
				Threshold: 8.0,
				Priority:  PriorityMedium,
				Area:      "Head Stability",
				Issue:     "Head position drifts during the task",
				Advice:    "Keep a fixed viewing posture and move eyes rather than the head",
			},
			{
				Metric:    "gaze_stability",
				Expert:    9.0,
				Threshold: 8.0,
				Priority:  PriorityLow,
				Area:      "Visual Focus",
				Issue:     "Gaze wanders from the working area",
				Advice:    "Anchor gaze on the active instrument tip and limit glances away",
			},
		},
	}
}
