package models

import (
	"github.com/golang/geo/r3"
)

// IMUSample holds one inertial measurement from the device's right IMU stream.
type IMUSample struct {
	TimestampNs int64     `json:"timestamp_ns"`
	Accel       r3.Vector `json:"accel"` // m/s²
	Gyro        r3.Vector `json:"gyro"`  // rad/s
}

// Frame is a decoded RGB frame reduced to a single-channel luminance grid.
// Multi-channel pixels are averaged at decode time so the analyzers never
// branch on channel count.
type Frame struct {
	TimestampNs int64       `json:"timestamp_ns"`
	Index       int         `json:"index"`
	Luminance   [][]float64 `json:"-"`
}

// SensorSession is the extracted content of one device recording. IMU and
// frame sequences are sorted by timestamp ascending. Frames are sparse: the
// loader samples every Nth frame, so len(Frames) is usually much smaller
// than FrameCount.
type SensorSession struct {
	RecordingPath string      `json:"recording_path"`
	FrameCount    int         `json:"num_frames"`
	DurationS     float64     `json:"duration"`
	Frames        []Frame     `json:"-"`
	IMU           []IMUSample `json:"-"`
}

// HandSample is one wrist observation from the hand-tracking companion data.
type HandSample struct {
	TimestampUs int64     `json:"timestamp_us"`
	Wrist       r3.Vector `json:"wrist"` // meters, device frame
	Confidence  float64   `json:"confidence"`
}

// Valid reports whether the sample carries a usable wrist position. The
// tracker marks dropped frames with exact zeros or -1 in an axis; NaN shows
// up when the source column was empty.
func (s HandSample) Valid() bool {
	w := s.Wrist
	if w.X != w.X || w.Y != w.Y || w.Z != w.Z {
		return false
	}
	if w.X == -1 || w.Y == -1 || w.Z == -1 {
		return false
	}
	if w.X == 0 && w.Y == 0 && w.Z == 0 {
		return false
	}
	return true
}

// HandTrack is the ordered wrist-position stream for one recording.
type HandTrack struct {
	Samples []HandSample `json:"samples"`

	// HasTimestamps and HasConfidence record whether the source columns
	// existed, so absent data is distinguishable from zero values.
	HasTimestamps bool `json:"has_timestamps"`
	HasConfidence bool `json:"has_confidence"`
}

// GazeSample is one eye-gaze observation in the central pupil frame.
type GazeSample struct {
	TimestampUs int64   `json:"timestamp_us"`
	Pitch       float64 `json:"pitch_rads"`
	LeftYaw     float64 `json:"left_yaw_rads"`
	RightYaw    float64 `json:"right_yaw_rads"`
	DepthM      float64 `json:"depth_m"`
}

// Valid reports whether the sample carries usable gaze angles and depth.
// Empty or malformed source cells arrive as NaN.
func (s GazeSample) Valid() bool {
	for _, v := range []float64{s.Pitch, s.LeftYaw, s.RightYaw, s.DepthM} {
		if v != v {
			return false
		}
	}
	return true
}

// GazeTrack is the ordered gaze stream for one recording.
type GazeTrack struct {
	Samples       []GazeSample `json:"samples"`
	HasTimestamps bool         `json:"has_timestamps"`
}
