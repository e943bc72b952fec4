package loader

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/golang/geo/r3"
	"go.uber.org/zap"

	"github.com/CameronDeb/meta-aria-2/internal/models"
)

// Companion CSV filenames written by the perception service.
const (
	gazeFileName        = "general_eye_gaze.csv"
	handFileName        = "hand_tracking_results.csv"
	handFileNameAlt     = "hand_tracking.csv"
	timestampColumn     = "tracking_timestamp_us"
	confidenceColumn    = "right_tracking_confidence"
	confidenceColumnAlt = "confidence"
)

// Wrist column variants: the landmark export names the right wrist as
// landmark 0 in the device frame; older exports use plain wrist_position
// columns.
var wristColumns = [][3]string{
	{"tx_right_landmark_0_device", "ty_right_landmark_0_device", "tz_right_landmark_0_device"},
	{"wrist_position_x", "wrist_position_y", "wrist_position_z"},
}

// LoadCompanionData loads whatever perception outputs exist in a companion
// directory. Missing files yield nil tracks; only malformed files are
// reported.
func LoadCompanionData(dir string, log *zap.Logger) (*models.HandTrack, *models.GazeTrack) {
	var hand *models.HandTrack
	var gaze *models.GazeTrack

	handPath := filepath.Join(dir, handFileName)
	if _, err := os.Stat(handPath); err != nil {
		handPath = filepath.Join(dir, handFileNameAlt)
	}
	if _, err := os.Stat(handPath); err == nil {
		track, err := LoadHandTrack(handPath)
		if err != nil {
			log.Warn("Could not parse hand-tracking CSV", zap.String("path", handPath), zap.Error(err))
		} else {
			log.Info("Hand-tracking data loaded", zap.Int("samples", len(track.Samples)))
			hand = track
		}
	}

	gazePath := filepath.Join(dir, gazeFileName)
	if _, err := os.Stat(gazePath); err == nil {
		track, err := LoadGazeTrack(gazePath)
		if err != nil {
			log.Warn("Could not parse eye-gaze CSV", zap.String("path", gazePath), zap.Error(err))
		} else {
			log.Info("Eye-gaze data loaded", zap.Int("samples", len(track.Samples)))
			gaze = track
		}
	}

	return hand, gaze
}

// LoadGazeTrack parses an eye-gaze CSV into a normalized track.
func LoadGazeTrack(path string) (*models.GazeTrack, error) {
	rows, cols, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	for _, name := range []string{"pitch_rads_cpf", "left_yaw_rads_cpf", "right_yaw_rads_cpf", "depth_m"} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("eye-gaze CSV missing column %q", name)
		}
	}
	_, hasTimestamps := cols[timestampColumn]

	track := &models.GazeTrack{HasTimestamps: hasTimestamps}
	for _, row := range rows {
		sample := models.GazeSample{
			Pitch:    parseFloat(row, cols, "pitch_rads_cpf"),
			LeftYaw:  parseFloat(row, cols, "left_yaw_rads_cpf"),
			RightYaw: parseFloat(row, cols, "right_yaw_rads_cpf"),
			DepthM:   parseFloat(row, cols, "depth_m"),
		}
		if hasTimestamps {
			sample.TimestampUs, _ = strconv.ParseInt(row[cols[timestampColumn]], 10, 64)
		}
		track.Samples = append(track.Samples, sample)
	}
	return track, nil
}

// LoadHandTrack parses a hand-tracking CSV into a normalized track. Rows
// with unparseable positions become NaN samples, which the analyzer's
// validity filter drops.
func LoadHandTrack(path string) (*models.HandTrack, error) {
	rows, cols, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	var wrist [3]string
	found := false
	for _, variant := range wristColumns {
		if _, ok := cols[variant[0]]; ok {
			wrist = variant
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("hand-tracking CSV has no wrist position columns")
	}

	confCol := ""
	for _, name := range []string{confidenceColumn, confidenceColumnAlt} {
		if _, ok := cols[name]; ok {
			confCol = name
			break
		}
	}
	_, hasTimestamps := cols[timestampColumn]

	track := &models.HandTrack{
		HasTimestamps: hasTimestamps,
		HasConfidence: confCol != "",
	}
	for _, row := range rows {
		sample := models.HandSample{
			Wrist: r3.Vector{
				X: parseFloat(row, cols, wrist[0]),
				Y: parseFloat(row, cols, wrist[1]),
				Z: parseFloat(row, cols, wrist[2]),
			},
		}
		if confCol != "" {
			sample.Confidence = parseFloat(row, cols, confCol)
		}
		if hasTimestamps {
			sample.TimestampUs, _ = strconv.ParseInt(row[cols[timestampColumn]], 10, 64)
		}
		track.Samples = append(track.Samples, sample)
	}
	return track, nil
}

// readCSV loads a CSV file and returns its data rows plus a header index.
func readCSV(path string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open CSV: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(rows) < 1 {
		return nil, nil, fmt.Errorf("CSV file is empty")
	}
	return rows[1:], columnIndex(rows[0]), nil
}

func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	return cols
}

// parseFloat reads one named cell, mapping missing or malformed values to
// NaN so downstream validity filters treat them as dropped tracking.
func parseFloat(row []string, cols map[string]int, name string) float64 {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(row[idx], 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
