// Package loader reads extracted recording directories and companion
// perception CSVs into the normalized in-memory shapes the analyzers
// consume. All shape branching (column variants, channel counts) happens
// here; the core never sees vendor quirks.
package loader

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	// Frame decoders for the extracted image files.
	_ "image/jpeg"
	_ "image/png"

	"github.com/golang/geo/r3"
	"go.uber.org/zap"

	"github.com/CameronDeb/meta-aria-2/internal/models"
)

// assumedFrameRate is the RGB stream's nominal rate, used for the duration
// fallback when the metadata carries no timestamps.
const assumedFrameRate = 30.0

// sessionMetadata mirrors metadata.json written by the extraction step.
type sessionMetadata struct {
	RecordingPath    string  `json:"recording_path"`
	NumFrames        int     `json:"num_frames"`
	FirstTimestampNs int64   `json:"first_timestamp_ns"`
	LastTimestampNs  int64   `json:"last_timestamp_ns"`
	FrameTimestamps  []int64 `json:"frame_timestamps_ns"`
}

// Options bound per-session work via fixed-ratio sub-sampling.
type Options struct {
	MaxFrames     int
	MaxIMUSamples int
}

// DefaultOptions match the extractor's sampling ratios.
var DefaultOptions = Options{MaxFrames: 100, MaxIMUSamples: 1000}

// LoadSession reads one extracted recording directory: metadata.json,
// imu.csv, and the sampled frames under frames/. Missing IMU data or
// frames degrade to empty streams; missing metadata is a hard failure.
func LoadSession(dir string, opts Options, log *zap.Logger) (*models.SensorSession, error) {
	meta, err := readMetadata(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return nil, err
	}

	session := &models.SensorSession{
		RecordingPath: meta.RecordingPath,
		FrameCount:    meta.NumFrames,
	}
	if session.RecordingPath == "" {
		session.RecordingPath = dir
	}

	if meta.LastTimestampNs > meta.FirstTimestampNs {
		session.DurationS = float64(meta.LastTimestampNs-meta.FirstTimestampNs) / 1e9
	} else {
		session.DurationS = float64(meta.NumFrames) / assumedFrameRate
	}

	session.Frames, err = loadFrames(filepath.Join(dir, "frames"), meta.FrameTimestamps, opts.MaxFrames)
	if err != nil {
		log.Warn("Could not load frames; visual metrics will degrade", zap.String("dir", dir), zap.Error(err))
		session.Frames = nil
	}

	session.IMU, err = loadIMU(filepath.Join(dir, "imu.csv"), opts.MaxIMUSamples)
	if err != nil {
		log.Info("No IMU data available; motion metrics will use defaults", zap.String("dir", dir), zap.Error(err))
		session.IMU = nil
	}

	log.Info("Session loaded",
		zap.String("dir", dir),
		zap.Int("frames_sampled", len(session.Frames)),
		zap.Int("imu_samples", len(session.IMU)),
		zap.Float64("duration_s", session.DurationS),
	)
	return session, nil
}

func readMetadata(path string) (*sessionMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read session metadata: %w", err)
	}
	var meta sessionMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse session metadata: %w", err)
	}
	return &meta, nil
}

// loadFrames decodes the extracted frame images in filename order,
// sub-sampling every Nth file to stay under maxFrames.
func loadFrames(dir string, timestamps []int64, maxFrames int) ([]models.Frame, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".png", ".jpg", ".jpeg":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	stride := 1
	if maxFrames > 0 && len(names) > maxFrames {
		stride = len(names) / maxFrames
	}

	frames := make([]models.Frame, 0, maxFrames)
	for i := 0; i < len(names); i += stride {
		lum, err := decodeLuminance(filepath.Join(dir, names[i]))
		if err != nil {
			// A single unreadable frame is not worth failing the session.
			continue
		}
		frame := models.Frame{Index: i, Luminance: lum}
		if i < len(timestamps) {
			frame.TimestampNs = timestamps[i]
		}
		frames = append(frames, frame)
	}
	return frames, nil
}

// decodeLuminance reads an image file into a 0-255 luminance grid,
// averaging the color channels.
func decodeLuminance(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	lum := make([][]float64, bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := make([]float64, bounds.Dx())
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// 16-bit channels down to the 0-255 range.
			row[x-bounds.Min.X] = (float64(r>>8) + float64(g>>8) + float64(b>>8)) / 3
		}
		lum[y-bounds.Min.Y] = row
	}
	return lum, nil
}

// loadIMU parses imu.csv (timestamp_ns, accel_x/y/z, gyro_x/y/z),
// sub-sampling every Nth row to stay under maxSamples.
func loadIMU(path string, maxSamples int) ([]models.IMUSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse IMU CSV: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("IMU CSV has no data rows")
	}

	cols := columnIndex(rows[0])
	required := []string{"timestamp_ns", "accel_x", "accel_y", "accel_z", "gyro_x", "gyro_y", "gyro_z"}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("IMU CSV missing column %q", name)
		}
	}

	data := rows[1:]
	stride := 1
	if maxSamples > 0 && len(data) > maxSamples {
		stride = len(data) / maxSamples
	}

	samples := make([]models.IMUSample, 0, maxSamples)
	for i := 0; i < len(data); i += stride {
		row := data[i]
		ts, err := strconv.ParseInt(row[cols["timestamp_ns"]], 10, 64)
		if err != nil {
			continue
		}
		samples = append(samples, models.IMUSample{
			TimestampNs: ts,
			Accel: r3.Vector{
				X: parseFloat(row, cols, "accel_x"),
				Y: parseFloat(row, cols, "accel_y"),
				Z: parseFloat(row, cols, "accel_z"),
			},
			Gyro: r3.Vector{
				X: parseFloat(row, cols, "gyro_x"),
				Y: parseFloat(row, cols, "gyro_y"),
				Z: parseFloat(row, cols, "gyro_z"),
			},
		})
	}
	return samples, nil
}
